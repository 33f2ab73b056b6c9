// Package persistence provides the SQL side of the command pipeline: a Database handle that
// works on top of pgx.Pool, sql.DB or sqlx.DB, and the UnitOfWork that commits all statements
// registered by the repositories of one command in a single transaction.
//
// Statements are built with goqu and rendered with interpolated values, the same way for
// PostgreSQL and for SQLite (used by tests):
//
//	db, err := persistence.NewDatabaseFromPGXPool(pool, persistence.WithLogger(slog.Default()))
//	uow := db.NewUnitOfWork()
//
//	err = uow.Register(db.Builder().Insert("identity_resources").Rows(row))
//	committed, err := uow.Commit(ctx)
package persistence
