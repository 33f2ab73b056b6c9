package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

func (in *inspector) schemaCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "schema",
		Short: "Create the administration and audit tables if they do not exist",
		Args:  cobra.NoArgs,
		RunE: in.connected(func(cmd *cobra.Command) error {
			if err := in.conn.Database.EnsureSchema(cmd.Context()); err != nil {
				return err
			}

			if err := in.conn.AuditRepository.EnsureSchema(cmd.Context()); err != nil {
				return err
			}

			_, err := fmt.Fprintln(cmd.OutOrStdout(), "schema is up to date")

			return err
		}),
	}
}
