package persistence

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/command-mediator-go/internal/adapters"
)

const (
	// DialectPostgres is the default dialect.
	DialectPostgres = "postgres"

	// DialectSQLite renders statements for SQLite, used for in-memory test databases.
	DialectSQLite = "sqlite3"
)

// Statement is anything goqu can render to SQL: select, insert, update and delete datasets.
type Statement interface {
	ToSQL() (sql string, params []any, err error)
}

// Rows is the result set of a read query. It must be closed by the caller.
type Rows = adapters.DBRows

// Timestamp scans timestamp columns independent of the driver.
type Timestamp = adapters.Timestamp

// Database bundles a connection adapter with the goqu dialect used to render statements.
type Database struct {
	db               adapters.DBAdapter
	dialectName      string
	dialect          goqu.DialectWrapper
	logger           Logger
	contextualLogger ContextualLogger
}

// Option defines a functional option for configuring a Database.
type Option func(*Database) error

// WithDialect selects the goqu dialect, either DialectPostgres or DialectSQLite.
func WithDialect(name string) Option {
	return func(d *Database) error {
		switch name {
		case DialectPostgres, DialectSQLite:
			d.dialectName = name
			d.dialect = goqu.Dialect(name)
			return nil

		default:
			return ErrUnsupportedDialect
		}
	}
}

// WithLogger sets the logger for the Database and every UnitOfWork it creates.
//
// Debug level: SQL statements with execution timing
// Info level: commit results
// Warn level: failed rollbacks
// Error level: failed queries and commits.
func WithLogger(logger Logger) Option {
	return func(d *Database) error {
		d.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger which takes precedence over the plain logger.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(d *Database) error {
		d.contextualLogger = logger
		return nil
	}
}

// NewDatabaseFromPGXPool creates a Database using a pgx Pool with optional configuration.
func NewDatabaseFromPGXPool(pool *pgxpool.Pool, options ...Option) (*Database, error) {
	if pool == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newDatabase(adapters.NewPGXAdapter(pool), options...)
}

// NewDatabaseFromSQLDB creates a Database using a sql.DB with optional configuration.
func NewDatabaseFromSQLDB(db *sql.DB, options ...Option) (*Database, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newDatabase(adapters.NewSQLAdapter(db), options...)
}

// NewDatabaseFromSQLX creates a Database using a sqlx.DB with optional configuration.
func NewDatabaseFromSQLX(db *sqlx.DB, options ...Option) (*Database, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newDatabase(adapters.NewSQLXAdapter(db), options...)
}

func newDatabase(adapter adapters.DBAdapter, options ...Option) (*Database, error) {
	d := &Database{
		db:          adapter,
		dialectName: DialectPostgres,
		dialect:     goqu.Dialect(DialectPostgres),
	}

	for _, option := range options {
		if err := option(d); err != nil {
			return nil, err
		}
	}

	return d, nil
}

// Builder returns the goqu dialect wrapper used to build statements for this Database.
func (d *Database) Builder() goqu.DialectWrapper {
	return d.dialect
}

// DialectName returns the configured dialect name.
func (d *Database) DialectName() string {
	return d.dialectName
}

// Query renders stmt and runs it as a read query outside any unit of work.
func (d *Database) Query(ctx context.Context, stmt Statement) (Rows, error) {
	sqlQuery, err := render(stmt)
	if err != nil {
		d.logError(ctx, logMsgBuildFailed, err)
		return nil, err
	}

	start := time.Now()
	rows, queryErr := d.db.Query(ctx, sqlQuery)
	d.logQueryWithDuration(ctx, sqlQuery, logActionQuery, time.Since(start))

	if queryErr != nil {
		d.logError(ctx, logMsgQueryFailed, queryErr, logAttrQuery, sqlQuery)
		return nil, errors.Join(ErrQueryFailed, queryErr)
	}

	return rows, nil
}

// CloseRows closes rows and logs a failure at warn level.
func (d *Database) CloseRows(ctx context.Context, rows Rows) {
	if closeErr := rows.Close(); closeErr != nil {
		d.logWarn(ctx, logMsgQueryFailed, closeErr)
	}
}

// NewUnitOfWork starts an empty UnitOfWork bound to this Database.
func (d *Database) NewUnitOfWork() *UnitOfWork {
	return &UnitOfWork{db: d}
}

func render(stmt Statement) (string, error) {
	sqlQuery, _, err := stmt.ToSQL()
	if err != nil {
		return "", errors.Join(ErrBuildingStatementFailed, err)
	}

	return sqlQuery, nil
}
