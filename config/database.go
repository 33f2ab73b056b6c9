package config

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"  // postgres driver
	_ "modernc.org/sqlite" // sqlite driver

	"github.com/AntonStoeckl/command-mediator-go/eventstore/postgresengine"
	"github.com/AntonStoeckl/command-mediator-go/persistence"
)

const (
	driverPostgres = "postgres"
	driverSQLite   = "sqlite"
)

// NewPGXPool creates and pings a *pgxpool.Pool configured from cfg.
func NewPGXPool(ctx context.Context, cfg Config) (*pgxpool.Pool, error) {
	poolConfig, err := pgxpool.ParseConfig(cfg.DatabaseDSN)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	poolConfig.MaxConns = int32(cfg.MaxOpenConns)
	poolConfig.MinConns = cfg.MinConns
	poolConfig.MaxConnLifetime = cfg.ConnMaxLifetime
	poolConfig.MaxConnIdleTime = cfg.ConnMaxIdleTime
	poolConfig.ConnConfig.ConnectTimeout = cfg.ConnectTimeout

	pool, err := pgxpool.NewWithConfig(ctx, poolConfig)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	if pingErr := pool.Ping(ctx); pingErr != nil {
		pool.Close()
		return nil, errors.Join(ErrOpeningDatabaseFailed, pingErr)
	}

	return pool, nil
}

// NewSQLDB creates and pings a *sql.DB configured from cfg.
// The sqlite adapter uses the modernc driver, every other adapter lib/pq.
func NewSQLDB(ctx context.Context, cfg Config) (*sql.DB, error) {
	db, err := sql.Open(driverName(cfg), cfg.DatabaseDSN)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	configurePool(db, cfg)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, errors.Join(ErrOpeningDatabaseFailed, pingErr)
	}

	return db, nil
}

// NewSQLX creates and pings a *sqlx.DB configured from cfg.
func NewSQLX(ctx context.Context, cfg Config) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName(cfg), cfg.DatabaseDSN)
	if err != nil {
		return nil, errors.Join(ErrOpeningDatabaseFailed, err)
	}

	configurePool(db.DB, cfg)

	if pingErr := db.PingContext(ctx); pingErr != nil {
		_ = db.Close()
		return nil, errors.Join(ErrOpeningDatabaseFailed, pingErr)
	}

	return db, nil
}

// Connection bundles the handles built on one physical connection pool.
type Connection struct {
	Database        *persistence.Database
	AuditRepository *postgresengine.StoredEventRepository
	close           func()
}

// Close releases the underlying pool.
func (c Connection) Close() {
	if c.close != nil {
		c.close()
	}
}

// Connect opens the configured adapter and builds the Database and the audit repository on it.
// logger may be nil.
func Connect(ctx context.Context, cfg Config, logger persistence.ContextualLogger) (Connection, error) {
	dialect := postgresengine.DialectPostgres
	if cfg.DatabaseAdapter == AdapterSQLite {
		dialect = postgresengine.DialectSQLite
	}

	dbOptions := []persistence.Option{persistence.WithDialect(dialect)}
	repoOptions := []postgresengine.Option{
		postgresengine.WithDialect(dialect),
		postgresengine.WithTableName(cfg.AuditTableName),
	}

	if logger != nil {
		dbOptions = append(dbOptions, persistence.WithContextualLogger(logger))
		repoOptions = append(repoOptions, postgresengine.WithContextualLogger(logger))
	}

	switch cfg.DatabaseAdapter {
	case AdapterPGXPool:
		pool, err := NewPGXPool(ctx, cfg)
		if err != nil {
			return Connection{}, err
		}

		return build(
			func() (*persistence.Database, error) { return persistence.NewDatabaseFromPGXPool(pool, dbOptions...) },
			func() (*postgresengine.StoredEventRepository, error) {
				return postgresengine.NewStoredEventRepositoryFromPGXPool(pool, repoOptions...)
			},
			pool.Close,
		)

	case AdapterSQLX:
		db, err := NewSQLX(ctx, cfg)
		if err != nil {
			return Connection{}, err
		}

		return build(
			func() (*persistence.Database, error) { return persistence.NewDatabaseFromSQLX(db, dbOptions...) },
			func() (*postgresengine.StoredEventRepository, error) {
				return postgresengine.NewStoredEventRepositoryFromSQLX(db, repoOptions...)
			},
			func() { _ = db.Close() },
		)

	case AdapterSQLDB, AdapterSQLite:
		db, err := NewSQLDB(ctx, cfg)
		if err != nil {
			return Connection{}, err
		}

		return build(
			func() (*persistence.Database, error) { return persistence.NewDatabaseFromSQLDB(db, dbOptions...) },
			func() (*postgresengine.StoredEventRepository, error) {
				return postgresengine.NewStoredEventRepositoryFromSQLDB(db, repoOptions...)
			},
			func() { _ = db.Close() },
		)

	default:
		return Connection{}, ErrUnsupportedAdapter
	}
}

func build(
	newDatabase func() (*persistence.Database, error),
	newRepository func() (*postgresengine.StoredEventRepository, error),
	closePool func(),
) (Connection, error) {

	database, err := newDatabase()
	if err != nil {
		closePool()
		return Connection{}, err
	}

	repository, err := newRepository()
	if err != nil {
		closePool()
		return Connection{}, err
	}

	return Connection{Database: database, AuditRepository: repository, close: closePool}, nil
}

func configurePool(db *sql.DB, cfg Config) {
	maxOpen := cfg.MaxOpenConns
	if cfg.DatabaseAdapter == AdapterSQLite {
		// a :memory: database exists per connection
		maxOpen = 1
	}

	db.SetMaxOpenConns(maxOpen)
	db.SetMaxIdleConns(cfg.MaxIdleConns)
	db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	db.SetConnMaxIdleTime(cfg.ConnMaxIdleTime)
}

func driverName(cfg Config) string {
	if cfg.DatabaseAdapter == AdapterSQLite {
		return driverSQLite
	}

	return driverPostgres
}
