package persistence

import "errors"

var (
	// ErrNilDatabaseConnection is returned by the constructors when the connection is nil.
	ErrNilDatabaseConnection = errors.New("database connection must not be nil")

	// ErrUnsupportedDialect is returned by WithDialect for dialects other than postgres and sqlite3.
	ErrUnsupportedDialect = errors.New("unsupported sql dialect")

	// ErrBuildingStatementFailed wraps goqu errors while rendering a statement.
	ErrBuildingStatementFailed = errors.New("building sql statement failed")

	// ErrQueryFailed wraps driver errors of read queries.
	ErrQueryFailed = errors.New("sql query failed")

	// ErrCommitFailed wraps every error that aborted a UnitOfWork commit.
	ErrCommitFailed = errors.New("unit of work commit failed")

	// ErrUnitOfWorkCompleted is returned when Register or Commit is called after Commit.
	ErrUnitOfWorkCompleted = errors.New("unit of work was already committed")

	// ErrApplyingSchemaFailed wraps errors of EnsureSchema.
	ErrApplyingSchemaFailed = errors.New("applying schema failed")
)
