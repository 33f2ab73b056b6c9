// Package config loads the process configuration from the environment and opens the database
// connections the mediator, its unit of work and the audit trail run on.
//
// Supported adapters are pgx.pool, sql.db and sqlx.db (all PostgreSQL) plus sqlite for local tooling.
package config
