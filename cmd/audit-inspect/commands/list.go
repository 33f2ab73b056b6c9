package commands

import (
	"fmt"
	"text/tabwriter"
	"time"

	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/command-mediator-go/eventstore"
)

const defaultListLimit = 20

func (in *inspector) listCmd() *cobra.Command {
	var (
		aggregate string
		limit     uint
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List stored events, oldest first",
		Long:  "Lists the stored events of one aggregate with --aggregate, otherwise the most recent --limit events (0 lists all).",
		Args:  cobra.NoArgs,
		RunE: in.connected(func(cmd *cobra.Command) error {
			var (
				events eventstore.StoredEvents
				err    error
			)

			if aggregate != "" {
				events, err = in.conn.AuditRepository.QueryByAggregate(cmd.Context(), aggregate)
			} else {
				events, err = in.conn.AuditRepository.ListRecent(cmd.Context(), limit)
			}

			if err != nil {
				return err
			}

			return writeEventTable(cmd, events)
		}),
	}

	cmd.Flags().StringVarP(&aggregate, "aggregate", "a", "", "aggregate id, e.g. the resource name")
	cmd.Flags().UintVarP(&limit, "limit", "n", defaultListLimit, "number of recent events without --aggregate")

	return cmd
}

func writeEventTable(cmd *cobra.Command, events eventstore.StoredEvents) error {
	if len(events) == 0 {
		_, err := fmt.Fprintln(cmd.OutOrStdout(), "no stored events")
		return err
	}

	w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
	_, _ = fmt.Fprintln(w, "CREATED AT\tID\tAGGREGATE\tTYPE\tKIND\tUSER\tMESSAGE")

	for _, e := range events {
		_, _ = fmt.Fprintf(
			w,
			"%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			e.CreatedAt.UTC().Format(time.RFC3339),
			e.ID,
			e.AggregateID,
			e.MessageType,
			e.EventKind,
			e.User,
			e.Message,
		)
	}

	return w.Flush()
}
