package apiresource

import (
	"context"
	"time"

	"github.com/AntonStoeckl/command-mediator-go/mediator"
)

// Notification key and messages raised when a precondition rejects a command.
const (
	NotificationKey     = "Api Resource"
	MsgResourceNotFound = "Resource not found"
	MsgSecretNotFound   = "Secret not found"
)

// Repository defines the persistence operations the CommandHandler needs.
// RemoveSecret only registers the change; nothing is persisted before the unit of work commits.
type Repository interface {
	GetByName(ctx context.Context, name string) (*ApiResource, error)
	RemoveSecret(ctx context.Context, secret Secret) error
}

// CommandHandler handles the secret commands for API resources.
type CommandHandler struct {
	base       mediator.CommandHandler
	repository Repository
	clock      func() time.Time
}

// Option defines a functional option for configuring the CommandHandler.
type Option func(*CommandHandler) error

// WithClock replaces time.Now as the source of event timestamps.
func WithClock(clock func() time.Time) Option {
	return func(h *CommandHandler) error {
		if clock == nil {
			return ErrNilClock
		}

		h.clock = clock

		return nil
	}
}

// NewCommandHandler creates a CommandHandler for one request scope.
func NewCommandHandler(base mediator.CommandHandler, repository Repository, options ...Option) (CommandHandler, error) {
	if repository == nil {
		return CommandHandler{}, ErrNilRepository
	}

	h := CommandHandler{
		base:       base,
		repository: repository,
		clock:      time.Now,
	}

	for _, option := range options {
		if err := option(&h); err != nil {
			return CommandHandler{}, err
		}
	}

	return h, nil
}

// RegisterWith registers the handler for all API resource commands on bus.
func (h CommandHandler) RegisterWith(bus *mediator.Bus) error {
	return mediator.RegisterHandlerFunc(bus, h.HandleRemoveSecret)
}

// HandleRemoveSecret removes a secret, identified by type and value, from an existing API resource.
func (h CommandHandler) HandleRemoveSecret(ctx context.Context, command RemoveApiSecret) (bool, error) {
	return mediator.Process(ctx, h.base, command, mediator.Steps[RemoveApiSecret, *ApiResource]{
		Load: func(ctx context.Context, c RemoveApiSecret) (*ApiResource, error) {
			return h.repository.GetByName(ctx, c.ResourceName)
		},
		Check: mediator.AllOf[RemoveApiSecret, *ApiResource](
			mediator.MustExist[RemoveApiSecret, ApiResource](NotificationKey, MsgResourceNotFound),
			secretMustExist,
		),
		Mutate: func(ctx context.Context, c RemoveApiSecret, saved *ApiResource) error {
			return h.repository.RemoveSecret(ctx, *saved.FindSecret(c.Type, c.Value))
		},
		Succeeded: func(c RemoveApiSecret, _ *ApiResource) mediator.DomainEvent {
			return BuildApiSecretRemoved(c.Type, c.ResourceName, h.clock())
		},
	})
}

func secretMustExist(c RemoveApiSecret, saved *ApiResource) (mediator.Notification, bool) {
	if saved.FindSecret(c.Type, c.Value) == nil {
		return mediator.NewNotification(NotificationKey, MsgSecretNotFound), true
	}

	return mediator.Notification{}, false
}
