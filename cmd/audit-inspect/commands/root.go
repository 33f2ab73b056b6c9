// Package commands holds the cobra command tree of audit-inspect.
package commands

import (
	"context"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/command-mediator-go/config"
)

// inspector carries the state shared by all subcommands of one invocation.
type inspector struct {
	adapter string
	dsn     string
	table   string

	conn config.Connection
}

// Execute runs the command tree against os.Args.
func Execute() error {
	return NewRootCommand().ExecuteContext(context.Background())
}

// NewRootCommand builds a fresh command tree. Each call has its own state, so tests can run several.
func NewRootCommand() *cobra.Command {
	in := &inspector{}

	root := &cobra.Command{
		Use:          "audit-inspect",
		Short:        "Inspect the audit trail of administrative commands",
		SilenceUsage: true,
	}

	root.PersistentFlags().StringVar(&in.adapter, "adapter", "", "database adapter: pgx.pool, sql.db, sqlx.db or sqlite (default $DATABASE_ADAPTER)")
	root.PersistentFlags().StringVar(&in.dsn, "dsn", "", "database DSN (default $DATABASE_DSN)")
	root.PersistentFlags().StringVar(&in.table, "table", "", "audit table name (default $AUDIT_TABLE_NAME)")

	root.AddCommand(in.listCmd(), in.showCmd(), in.schemaCmd())

	return root
}

// connected opens the configured database for the duration of run.
func (in *inspector) connected(run func(cmd *cobra.Command) error) func(*cobra.Command, []string) error {
	return func(cmd *cobra.Command, _ []string) error {
		if err := in.connect(cmd); err != nil {
			return err
		}
		defer in.conn.Close()

		return run(cmd)
	}
}

func (in *inspector) connect(cmd *cobra.Command) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}

	if in.adapter != "" {
		cfg.DatabaseAdapter = in.adapter
	}

	if in.dsn != "" {
		cfg.DatabaseDSN = in.dsn
	}

	if in.table != "" {
		cfg.AuditTableName = in.table
	}

	if err = cfg.Validate(); err != nil {
		return err
	}

	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))

	in.conn, err = config.Connect(cmd.Context(), cfg, logger)

	return err
}
