package postgresengine

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Schema returns the DDL statements for a stored events table in the given dialect.
// All statements are idempotent.
func Schema(dialect string, tableName string) ([]string, error) {
	var dataType, timestampType string

	switch dialect {
	case DialectPostgres:
		dataType, timestampType = "JSONB", "TIMESTAMPTZ"
	case DialectSQLite:
		dataType, timestampType = "TEXT", "TEXT"
	default:
		return nil, ErrUnsupportedDialect
	}

	if tableName == "" {
		return nil, ErrEmptyTableName
	}

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			aggregate_id TEXT NOT NULL DEFAULT '',
			message_type TEXT NOT NULL,
			event_kind TEXT NOT NULL,
			message TEXT NOT NULL DEFAULT '',
			local_ip TEXT NOT NULL DEFAULT '',
			remote_ip TEXT NOT NULL DEFAULT '',
			data %s NOT NULL,
			username TEXT NOT NULL DEFAULT '',
			created_at %s NOT NULL
		)`, tableName, dataType, timestampType),

		fmt.Sprintf(`CREATE INDEX IF NOT EXISTS %s_aggregate_id_idx ON %s (aggregate_id, created_at)`, tableName, tableName),
	}, nil
}

// EnsureSchema creates the stored events table of this repository if it does not exist yet.
func (r *StoredEventRepository) EnsureSchema(ctx context.Context) error {
	statements, err := Schema(r.dialectName, r.tableName)
	if err != nil {
		return errors.Join(ErrApplyingSchemaFailed, err)
	}

	for _, ddl := range statements {
		start := time.Now()
		_, execErr := r.db.Exec(ctx, ddl)
		r.logQueryWithDuration(ctx, ddl, logActionSchema, time.Since(start))

		if execErr != nil {
			r.logError(ctx, ErrApplyingSchemaFailed.Error(), execErr)
			return errors.Join(ErrApplyingSchemaFailed, execErr)
		}
	}

	return nil
}
