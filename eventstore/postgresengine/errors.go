package postgresengine

import "errors"

var (
	ErrNilDatabaseConnection       = errors.New("database connection must not be nil")
	ErrEmptyTableName              = errors.New("table name must not be empty")
	ErrUnsupportedDialect          = errors.New("unsupported sql dialect")
	ErrBuildingQueryFailed         = errors.New("building sql query failed")
	ErrQueryingEventsFailed        = errors.New("querying stored events failed")
	ErrScanningDBRowFailed         = errors.New("scanning db row failed")
	ErrBuildingStoredEventFailed   = errors.New("building stored event from db row failed")
	ErrAppendingEventFailed        = errors.New("appending stored event failed")
	ErrGettingRowsAffectedFailed   = errors.New("getting rows affected failed")
	ErrStoredEventNotFound         = errors.New("stored event not found")
	ErrApplyingSchemaFailed        = errors.New("applying schema failed")
	ErrUnexpectedRowsAffectedCount = errors.New("unexpected rows affected count")
)
