package postgresengine

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres" // dialect registration
	_ "github.com/doug-martin/goqu/v9/dialect/sqlite3"  // dialect registration
	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/jmoiron/sqlx"

	"github.com/AntonStoeckl/command-mediator-go/eventstore"
	"github.com/AntonStoeckl/command-mediator-go/internal/adapters"
)

const (
	// DialectPostgres is the default dialect.
	DialectPostgres = "postgres"

	// DialectSQLite renders statements for SQLite, used for in-memory test databases.
	DialectSQLite = "sqlite3"

	defaultTableName = "stored_events"

	logMsgBuildSelectQueryFailed = "failed to build select query"
	logMsgBuildInsertQueryFailed = "failed to build insert query"
	logMsgDBQueryFailed          = "database query execution failed"
	logMsgCloseRowsFailed        = "failed to close database rows"
	logMsgScanRowFailed          = "failed to scan database row"
	logMsgBuildStoredEventFailed = "failed to build stored event from database row"
	logMsgDBExecFailed           = "database execution failed during event append"
	logMsgRowsAffectedFailed     = "failed to get rows affected count"
	logMsgQueryCompleted         = "query completed"
	logMsgEventStored            = "event stored"
	logMsgSQLExecuted            = "executed sql for: "
	logMsgOperation              = "stored event repository operation: "
	logAttrError                 = "error"
	logAttrQuery                 = "query"
	logAttrMessageType           = "message_type"
	logAttrEventCount            = "event_count"
	logAttrDurationMS            = "duration_ms"
	logAttrRowsAffected          = "rows_affected"
	logActionQuery               = "query"
	logActionAppend              = "append"
	logActionSchema              = "schema"
	colID                        = "id"
	colAggregateID               = "aggregate_id"
	colMessageType               = "message_type"
	colEventKind                 = "event_kind"
	colMessage                   = "message"
	colLocalIP                   = "local_ip"
	colRemoteIP                  = "remote_ip"
	colData                      = "data"
	colUsername                  = "username"
	colCreatedAt                 = "created_at"
)

type (
	sqlQueryString = string
	queryDuration  = time.Duration
)

// StoredEventRepository appends StoredEvents to a SQL table and reads them back for inspection.
type StoredEventRepository struct {
	db               adapters.DBAdapter
	tableName        string
	dialectName      string
	dialect          goqu.DialectWrapper
	logger           eventstore.Logger
	contextualLogger eventstore.ContextualLogger
}

type queryResultRow struct {
	id          string
	aggregateID string
	messageType string
	eventKind   string
	message     string
	localIP     string
	remoteIP    string
	data        []byte
	username    string
	createdAt   adapters.Timestamp
}

// NewStoredEventRepositoryFromPGXPool creates a StoredEventRepository using a pgx Pool with optional configuration.
func NewStoredEventRepositoryFromPGXPool(db *pgxpool.Pool, options ...Option) (*StoredEventRepository, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStoredEventRepository(adapters.NewPGXAdapter(db), options...)
}

// NewStoredEventRepositoryFromSQLDB creates a StoredEventRepository using a sql.DB with optional configuration.
func NewStoredEventRepositoryFromSQLDB(db *sql.DB, options ...Option) (*StoredEventRepository, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStoredEventRepository(adapters.NewSQLAdapter(db), options...)
}

// NewStoredEventRepositoryFromSQLX creates a StoredEventRepository using a sqlx.DB with optional configuration.
func NewStoredEventRepositoryFromSQLX(db *sqlx.DB, options ...Option) (*StoredEventRepository, error) {
	if db == nil {
		return nil, ErrNilDatabaseConnection
	}

	return newStoredEventRepository(adapters.NewSQLXAdapter(db), options...)
}

func newStoredEventRepository(db adapters.DBAdapter, options ...Option) (*StoredEventRepository, error) {
	r := &StoredEventRepository{
		db:          db,
		tableName:   defaultTableName,
		dialectName: DialectPostgres,
		dialect:     goqu.Dialect(DialectPostgres),
	}

	for _, option := range options {
		if err := option(r); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Store appends one StoredEvent. It implements eventstore.Repository.
func (r *StoredEventRepository) Store(ctx context.Context, event eventstore.StoredEvent) error {
	insertStmt := r.dialect.
		Insert(r.tableName).
		Rows(goqu.Record{
			colID:          event.ID.String(),
			colAggregateID: event.AggregateID,
			colMessageType: event.MessageType,
			colEventKind:   event.EventKind,
			colMessage:     event.Message,
			colLocalIP:     event.LocalIP,
			colRemoteIP:    event.RemoteIP,
			colData:        string(event.Data),
			colUsername:    event.User,
			colCreatedAt:   event.CreatedAt.UTC(),
		})

	sqlQuery, _, toSQLErr := insertStmt.ToSQL()
	if toSQLErr != nil {
		r.logError(ctx, logMsgBuildInsertQueryFailed, toSQLErr, logAttrMessageType, event.MessageType)
		return errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	start := time.Now()
	result, execErr := r.db.Exec(ctx, sqlQuery)
	duration := time.Since(start)
	r.logQueryWithDuration(ctx, sqlQuery, logActionAppend, duration)

	if execErr != nil {
		r.logError(ctx, logMsgDBExecFailed, execErr, logAttrQuery, sqlQuery)
		return errors.Join(ErrAppendingEventFailed, execErr)
	}

	rowsAffected, rowsAffectedErr := result.RowsAffected()
	if rowsAffectedErr != nil {
		r.logError(ctx, logMsgRowsAffectedFailed, rowsAffectedErr)
		return errors.Join(ErrGettingRowsAffectedFailed, rowsAffectedErr)
	}

	if rowsAffected != 1 {
		return ErrUnexpectedRowsAffectedCount
	}

	r.logOperation(
		ctx,
		logMsgEventStored,
		logAttrMessageType, event.MessageType,
		logAttrDurationMS, toMilliseconds(duration),
	)

	return nil
}

// QueryByAggregate returns all StoredEvents of one aggregate in the order they were created.
func (r *StoredEventRepository) QueryByAggregate(ctx context.Context, aggregateID string) (eventstore.StoredEvents, error) {
	return r.query(ctx, goqu.Ex{colAggregateID: aggregateID}, 0)
}

// ListRecent returns the most recent StoredEvents, newest last. A limit of zero or less returns all.
func (r *StoredEventRepository) ListRecent(ctx context.Context, limit uint) (eventstore.StoredEvents, error) {
	events, err := r.queryDescending(ctx, limit)
	if err != nil {
		return nil, err
	}

	for i, j := 0, len(events)-1; i < j; i, j = i+1, j-1 {
		events[i], events[j] = events[j], events[i]
	}

	return events, nil
}

// Get returns the StoredEvent with the given id or ErrStoredEventNotFound.
func (r *StoredEventRepository) Get(ctx context.Context, id uuid.UUID) (eventstore.StoredEvent, error) {
	events, err := r.query(ctx, goqu.Ex{colID: id.String()}, 1)
	if err != nil {
		return eventstore.StoredEvent{}, err
	}

	if len(events) == 0 {
		return eventstore.StoredEvent{}, ErrStoredEventNotFound
	}

	return events[0], nil
}

func (r *StoredEventRepository) selectStmt() *goqu.SelectDataset {
	return r.dialect.
		From(r.tableName).
		Select(
			colID, colAggregateID, colMessageType, colEventKind, colMessage,
			colLocalIP, colRemoteIP, colData, colUsername, colCreatedAt,
		)
}

func (r *StoredEventRepository) query(ctx context.Context, where goqu.Ex, limit uint) (eventstore.StoredEvents, error) {
	stmt := r.selectStmt().
		Where(where).
		Order(goqu.I(colCreatedAt).Asc(), goqu.I(colID).Asc())

	if limit > 0 {
		stmt = stmt.Limit(limit)
	}

	return r.run(ctx, stmt)
}

func (r *StoredEventRepository) queryDescending(ctx context.Context, limit uint) (eventstore.StoredEvents, error) {
	stmt := r.selectStmt().
		Order(goqu.I(colCreatedAt).Desc(), goqu.I(colID).Desc())

	if limit > 0 {
		stmt = stmt.Limit(limit)
	}

	return r.run(ctx, stmt)
}

func (r *StoredEventRepository) run(ctx context.Context, stmt *goqu.SelectDataset) (eventstore.StoredEvents, error) {
	sqlQuery, _, toSQLErr := stmt.ToSQL()
	if toSQLErr != nil {
		r.logError(ctx, logMsgBuildSelectQueryFailed, toSQLErr)
		return nil, errors.Join(ErrBuildingQueryFailed, toSQLErr)
	}

	rows, duration, queryErr := r.executeQuery(ctx, sqlQuery)
	if queryErr != nil {
		return nil, queryErr
	}
	defer r.closeRows(ctx, rows)

	events, scanErr := r.processQueryResults(ctx, rows)
	if scanErr != nil {
		return nil, scanErr
	}

	r.logOperation(
		ctx,
		logMsgQueryCompleted,
		logAttrEventCount, len(events),
		logAttrDurationMS, toMilliseconds(duration),
	)

	return events, nil
}

// executeQuery executes the SQL query and returns rows with timing information.
func (r *StoredEventRepository) executeQuery(ctx context.Context, sqlQuery sqlQueryString) (adapters.DBRows, queryDuration, error) {
	start := time.Now()
	rows, queryErr := r.db.Query(ctx, sqlQuery)
	duration := time.Since(start)
	r.logQueryWithDuration(ctx, sqlQuery, logActionQuery, duration)

	if queryErr != nil {
		r.logError(ctx, logMsgDBQueryFailed, queryErr, logAttrQuery, sqlQuery)
		return nil, duration, errors.Join(ErrQueryingEventsFailed, queryErr)
	}

	return rows, duration, nil
}

// closeRows closes database rows and logs any errors.
func (r *StoredEventRepository) closeRows(ctx context.Context, rows adapters.DBRows) {
	if closeErr := rows.Close(); closeErr != nil {
		r.logWarn(ctx, logMsgCloseRowsFailed, closeErr)
	}
}

// processQueryResults converts database rows to StoredEvents.
func (r *StoredEventRepository) processQueryResults(ctx context.Context, rows adapters.DBRows) (eventstore.StoredEvents, error) {
	events := make(eventstore.StoredEvents, 0)

	for rows.Next() {
		row := queryResultRow{}

		rowScanErr := rows.Scan(
			&row.id, &row.aggregateID, &row.messageType, &row.eventKind, &row.message,
			&row.localIP, &row.remoteIP, &row.data, &row.username, &row.createdAt,
		)
		if rowScanErr != nil {
			r.logError(ctx, logMsgScanRowFailed, rowScanErr)
			return nil, errors.Join(ErrScanningDBRowFailed, rowScanErr)
		}

		event, buildErr := r.toStoredEvent(row)
		if buildErr != nil {
			r.logError(ctx, logMsgBuildStoredEventFailed, buildErr, logAttrMessageType, row.messageType)
			return nil, errors.Join(ErrBuildingStoredEventFailed, buildErr)
		}

		events = append(events, event)
	}

	if err := rows.Err(); err != nil {
		r.logError(ctx, logMsgScanRowFailed, err)
		return nil, errors.Join(ErrScanningDBRowFailed, err)
	}

	return events, nil
}

func (r *StoredEventRepository) toStoredEvent(row queryResultRow) (eventstore.StoredEvent, error) {
	id, err := uuid.Parse(row.id)
	if err != nil {
		return eventstore.StoredEvent{}, err
	}

	return eventstore.RestoreStoredEvent(
		id,
		row.aggregateID,
		row.messageType,
		row.eventKind,
		row.message,
		row.localIP,
		row.remoteIP,
		row.data,
		row.username,
		row.createdAt.Time,
	)
}
