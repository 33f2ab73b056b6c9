package postgresengine

import (
	"github.com/doug-martin/goqu/v9"

	"github.com/AntonStoeckl/command-mediator-go/eventstore"
)

// Option defines a functional option for configuring StoredEventRepository.
type Option func(*StoredEventRepository) error

// WithTableName sets the table name for the StoredEventRepository.
func WithTableName(tableName string) Option {
	return func(r *StoredEventRepository) error {
		if tableName == "" {
			return ErrEmptyTableName
		}

		r.tableName = tableName

		return nil
	}
}

// WithDialect selects the goqu dialect, either DialectPostgres or DialectSQLite.
func WithDialect(name string) Option {
	return func(r *StoredEventRepository) error {
		switch name {
		case DialectPostgres, DialectSQLite:
			r.dialectName = name
			r.dialect = goqu.Dialect(name)
			return nil

		default:
			return ErrUnsupportedDialect
		}
	}
}

// WithLogger sets the logger for the StoredEventRepository.
// The logger will receive messages at different levels based on the logger's configured level:
//
// Debug level: SQL queries with execution timing (development use)
// Info level: stored and queried event counts with durations (production-safe)
// Warn level: Non-critical issues like cleanup failures
// Error level: Critical failures that cause operation failures.
func WithLogger(logger eventstore.Logger) Option {
	return func(r *StoredEventRepository) error {
		r.logger = logger
		return nil
	}
}

// WithContextualLogger sets the contextual logger for the StoredEventRepository.
// It takes precedence over the plain logger and correlates log records with active traces.
func WithContextualLogger(logger eventstore.ContextualLogger) Option {
	return func(r *StoredEventRepository) error {
		r.contextualLogger = logger
		return nil
	}
}
