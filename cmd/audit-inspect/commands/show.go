package commands

import (
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
	"github.com/spf13/cobra"

	"github.com/AntonStoeckl/command-mediator-go/eventstore"
)

// ErrInvalidEventID is returned when --id is not a UUID.
var ErrInvalidEventID = errors.New("invalid event id")

func (in *inspector) showCmd() *cobra.Command {
	var id string

	cmd := &cobra.Command{
		Use:   "show",
		Short: "Print one stored event with its decoded payload",
		Args:  cobra.NoArgs,
		RunE: in.connected(func(cmd *cobra.Command) error {
			eventID, err := uuid.Parse(id)
			if err != nil {
				return errors.Join(ErrInvalidEventID, err)
			}

			event, err := in.conn.AuditRepository.Get(cmd.Context(), eventID)
			if err != nil {
				return err
			}

			return writeEvent(cmd, event)
		}),
	}

	cmd.Flags().StringVar(&id, "id", "", "stored event id")
	_ = cmd.MarkFlagRequired("id")

	return cmd
}

func writeEvent(cmd *cobra.Command, event eventstore.StoredEvent) error {
	var payload any
	if err := eventstore.DecodePayload(event.Data, &payload); err != nil {
		return err
	}

	pretty, err := jsoniter.ConfigCompatibleWithStandardLibrary.MarshalIndent(payload, "", "  ")
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	_, _ = fmt.Fprintf(out, "ID:         %s\n", event.ID)
	_, _ = fmt.Fprintf(out, "Aggregate:  %s\n", event.AggregateID)
	_, _ = fmt.Fprintf(out, "Type:       %s\n", event.MessageType)
	_, _ = fmt.Fprintf(out, "Kind:       %s\n", event.EventKind)
	_, _ = fmt.Fprintf(out, "Message:    %s\n", event.Message)
	_, _ = fmt.Fprintf(out, "User:       %s\n", event.User)
	_, _ = fmt.Fprintf(out, "Local IP:   %s\n", event.LocalIP)
	_, _ = fmt.Fprintf(out, "Remote IP:  %s\n", event.RemoteIP)
	_, _ = fmt.Fprintf(out, "Created at: %s\n", event.CreatedAt.UTC().Format(time.RFC3339Nano))
	_, err = fmt.Fprintf(out, "Data:\n%s\n", pretty)

	return err
}
