package helper

import (
	"context"
	"database/sql"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	_ "modernc.org/sqlite" // registers the "sqlite" driver

	"github.com/AntonStoeckl/command-mediator-go/persistence"
)

// GivenSQLiteDB opens a private in-memory SQLite database which is closed when the test ends.
//
// The pool is limited to one connection: every connection of an in-memory database would
// otherwise see its own empty database.
func GivenSQLiteDB(t testing.TB) *sql.DB {
	t.Helper()

	db, err := sql.Open("sqlite", ":memory:")
	require.NoError(t, err, "error in arranging test data")

	db.SetMaxOpenConns(1)

	t.Cleanup(func() {
		_ = db.Close()
	})

	return db
}

// GivenDatabase returns a persistence.Database on a fresh SQLite database with the administration schema applied.
func GivenDatabase(t testing.TB, options ...persistence.Option) (*persistence.Database, *sql.DB) {
	t.Helper()

	sqlDB := GivenSQLiteDB(t)

	allOptions := append([]persistence.Option{persistence.WithDialect(persistence.DialectSQLite)}, options...)
	db, err := persistence.NewDatabaseFromSQLDB(sqlDB, allOptions...)
	require.NoError(t, err, "error in arranging test data")

	require.NoError(t, db.EnsureSchema(context.Background()), "error in arranging test data")

	return db, sqlDB
}

// CountRows returns the number of rows in table.
func CountRows(t testing.TB, db *sql.DB, table string) int {
	t.Helper()

	var count int
	require.NoError(t, db.QueryRow("SELECT COUNT(*) FROM "+table).Scan(&count))

	return count
}

// GivenUniqueID returns a fresh time-ordered id.
func GivenUniqueID(t testing.TB) uuid.UUID {
	t.Helper()

	id, err := uuid.NewV7()
	require.NoError(t, err, "error in arranging test data")

	return id
}
