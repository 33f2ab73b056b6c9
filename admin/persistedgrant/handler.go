package persistedgrant

import (
	"context"
	"time"

	"github.com/AntonStoeckl/command-mediator-go/mediator"
)

// Notification key and message raised when a precondition rejects a command.
const (
	NotificationKey  = "Persisted Grant"
	MsgGrantNotFound = "Grant not found"
)

// Repository defines the persistence operations for persisted grants.
// Remove only registers the change; nothing is persisted before the unit of work commits.
type Repository interface {
	GetByKey(ctx context.Context, key string) (*PersistedGrant, error)
	Search(ctx context.Context, search Search) ([]PersistedGrant, error)
	Count(ctx context.Context, search Search) (int, error)
	Remove(ctx context.Context, grant PersistedGrant) error
}

// CommandHandler handles the persisted grant commands.
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

// RegisterWith registers the handler for all persisted grant commands on bus.
func (h CommandHandler) RegisterWith(bus *mediator.Bus) error {
	return mediator.RegisterHandlerFunc(bus, h.HandleRemove)
}

// HandleRemove revokes an existing grant.
func (h CommandHandler) HandleRemove(ctx context.Context, command RemovePersistedGrant) (bool, error) {
	return mediator.Process(ctx, h.base, command, mediator.Steps[RemovePersistedGrant, *PersistedGrant]{
		Load: func(ctx context.Context, c RemovePersistedGrant) (*PersistedGrant, error) {
			return h.repository.GetByKey(ctx, c.Key)
		},
		Check: mediator.MustExist[RemovePersistedGrant, PersistedGrant](NotificationKey, MsgGrantNotFound),
		Mutate: func(ctx context.Context, _ RemovePersistedGrant, saved *PersistedGrant) error {
			return h.repository.Remove(ctx, *saved)
		},
		Succeeded: func(_ RemovePersistedGrant, saved *PersistedGrant) mediator.DomainEvent {
			return BuildPersistedGrantRemoved(*saved, h.clock())
		},
	})
}
