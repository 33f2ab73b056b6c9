// Package postgresengine provides the SQL implementation of eventstore.Repository.
//
// It supports the same database adapters as the persistence package (pgx, sql.DB, sqlx), so the
// audit trail can share the connection pool with the business tables or use its own:
//
//	db, _ := pgxpool.New(context.Background(), dsn)
//	repository, _ := postgresengine.NewStoredEventRepositoryFromPGXPool(
//		db,
//		postgresengine.WithTableName("stored_events"),
//		postgresengine.WithLogger(logger),
//	)
//
//	store, _ := eventstore.NewEventStore(repository, identity.ContextProvider{})
//
// Stored events are only ever inserted. Reads (QueryByAggregate, ListRecent, Get) serve audit
// inspection tooling.
package postgresengine
