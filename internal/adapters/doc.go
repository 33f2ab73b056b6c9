// Package adapters provides database adapter implementations shared by the persistence layer and the audit store.
//
// It supports three PostgreSQL access libraries: pgx.Pool, sql.DB, and sqlx.DB. All adapters provide
// equivalent functionality through the DBAdapter interface, so repositories and the unit of work
// stay independent of the connection type. sql.DB and sqlx.DB also work with any other database/sql
// driver, which the tests use to run against an in-memory SQLite database.
package adapters
