package persistence

import (
	"context"
	"math"
	"time"
)

const (
	logMsgSQLExecuted     = "executed sql for: "
	logMsgQueryFailed     = "database query execution failed"
	logMsgBuildFailed     = "failed to build sql statement"
	logMsgBeginFailed     = "failed to begin transaction"
	logMsgExecFailed      = "statement execution failed during commit"
	logMsgRollbackFailed  = "rollback failed"
	logMsgCommitFailed    = "transaction commit failed"
	logMsgCommitted       = "unit of work committed"
	logMsgNothingToCommit = "unit of work had nothing to commit"
	logAttrError          = "error"
	logAttrQuery          = "query"
	logAttrDurationMS     = "duration_ms"
	logAttrStatementCount = "statement_count"
	logAttrRowsAffected   = "rows_affected"
	logActionQuery        = "query"
	logActionCommit       = "commit"
	logActionSchema       = "schema"
)

// Logger interface for SQL query logging, operational information, warnings, and error reporting.
type Logger interface {
	Debug(msg string, args ...any)
	Info(msg string, args ...any)
	Warn(msg string, args ...any)
	Error(msg string, args ...any)
}

// ContextualLogger interface for context-aware logging with automatic trace correlation.
type ContextualLogger interface {
	DebugContext(ctx context.Context, msg string, args ...any)
	InfoContext(ctx context.Context, msg string, args ...any)
	WarnContext(ctx context.Context, msg string, args ...any)
	ErrorContext(ctx context.Context, msg string, args ...any)
}

func (d *Database) logQueryWithDuration(ctx context.Context, sqlQuery string, action string, duration time.Duration) {
	args := []any{logAttrDurationMS, toMilliseconds(duration), logAttrQuery, sqlQuery}

	if d.contextualLogger != nil {
		d.contextualLogger.DebugContext(ctx, logMsgSQLExecuted+action, args...)
		return
	}

	if d.logger != nil {
		d.logger.Debug(logMsgSQLExecuted+action, args...)
	}
}

func (d *Database) logInfo(ctx context.Context, msg string, args ...any) {
	if d.contextualLogger != nil {
		d.contextualLogger.InfoContext(ctx, msg, args...)
		return
	}

	if d.logger != nil {
		d.logger.Info(msg, args...)
	}
}

func (d *Database) logWarn(ctx context.Context, msg string, err error) {
	if d.contextualLogger != nil {
		d.contextualLogger.WarnContext(ctx, msg, logAttrError, err.Error())
		return
	}

	if d.logger != nil {
		d.logger.Warn(msg, logAttrError, err.Error())
	}
}

func (d *Database) logError(ctx context.Context, msg string, err error, args ...any) {
	allArgs := []any{logAttrError, err.Error()}
	allArgs = append(allArgs, args...)

	if d.contextualLogger != nil {
		d.contextualLogger.ErrorContext(ctx, msg, allArgs...)
		return
	}

	if d.logger != nil {
		d.logger.Error(msg, allArgs...)
	}
}

// toMilliseconds converts a time.Duration to float64 milliseconds with 3 decimal places.
func toMilliseconds(d time.Duration) float64 {
	return math.Round(float64(d.Nanoseconds())/1e6*1000) / 1000
}
