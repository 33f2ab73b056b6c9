package persistence

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// Table names of the administration model.
const (
	TableIdentityResources      = "identity_resources"
	TableIdentityResourceClaims = "identity_resource_claims"
	TableAPIResources           = "api_resources"
	TableAPISecrets             = "api_secrets"
	TablePersistedGrants        = "persisted_grants"
)

// Schema returns the DDL statements for the administration tables in the given dialect.
// All statements are idempotent.
func Schema(dialect string) ([]string, error) {
	var timestampType string

	switch dialect {
	case DialectPostgres:
		timestampType = "TIMESTAMPTZ"
	case DialectSQLite:
		timestampType = "TEXT"
	default:
		return nil, ErrUnsupportedDialect
	}

	return []string{
		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			display_name TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			enabled BOOLEAN NOT NULL DEFAULT TRUE,
			required BOOLEAN NOT NULL DEFAULT FALSE,
			emphasize BOOLEAN NOT NULL DEFAULT FALSE,
			show_in_discovery_document BOOLEAN NOT NULL DEFAULT TRUE,
			created_at %s NOT NULL
		)`, TableIdentityResources, timestampType),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			identity_resource_id TEXT NOT NULL,
			type TEXT NOT NULL,
			PRIMARY KEY (identity_resource_id, type)
		)`, TableIdentityResourceClaims),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			display_name TEXT NOT NULL DEFAULT '',
			description TEXT NOT NULL DEFAULT '',
			enabled BOOLEAN NOT NULL DEFAULT TRUE,
			created_at %s NOT NULL
		)`, TableAPIResources, timestampType),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			id TEXT PRIMARY KEY,
			api_resource_id TEXT NOT NULL,
			type TEXT NOT NULL,
			value TEXT NOT NULL,
			description TEXT NOT NULL DEFAULT '',
			expiration %s NULL,
			created_at %s NOT NULL
		)`, TableAPISecrets, timestampType, timestampType),

		fmt.Sprintf(`CREATE TABLE IF NOT EXISTS %s (
			grant_key TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			subject_id TEXT NOT NULL DEFAULT '',
			client_id TEXT NOT NULL,
			creation_time %s NOT NULL,
			expiration %s NULL,
			data TEXT NOT NULL DEFAULT ''
		)`, TablePersistedGrants, timestampType, timestampType),
	}, nil
}

// EnsureSchema creates the administration tables if they do not exist yet.
func (d *Database) EnsureSchema(ctx context.Context) error {
	statements, err := Schema(d.dialectName)
	if err != nil {
		return errors.Join(ErrApplyingSchemaFailed, err)
	}

	for _, ddl := range statements {
		start := time.Now()
		_, execErr := d.db.Exec(ctx, ddl)
		d.logQueryWithDuration(ctx, ddl, logActionSchema, time.Since(start))

		if execErr != nil {
			d.logError(ctx, ErrApplyingSchemaFailed.Error(), execErr)
			return errors.Join(ErrApplyingSchemaFailed, execErr)
		}
	}

	return nil
}
