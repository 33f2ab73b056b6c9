// Command audit-inspect prints the audit trail written by the mediator's EventStore.
//
// The database connection is configured through the environment (see package config),
// and can be overridden with the --adapter, --dsn and --table flags.
package main

import (
	"os"

	"github.com/AntonStoeckl/command-mediator-go/cmd/audit-inspect/commands"
)

func main() {
	if err := commands.Execute(); err != nil {
		os.Exit(1)
	}
}
