package identityresource

import (
	"context"
	"time"

	"github.com/AntonStoeckl/command-mediator-go/mediator"
)

// Notification key and messages raised when a precondition rejects a command.
const (
	NotificationKey     = "Identity Resource"
	MsgAlreadyExists    = "Resource already exists"
	MsgResourceNotFound = "Resource not found"
)

// Repository defines the persistence operations the CommandHandler needs.
// Add, UpdateWithChildren and Remove only register changes; nothing is persisted before the unit of work commits.
type Repository interface {
	GetByName(ctx context.Context, name string) (*IdentityResource, error)
	Add(ctx context.Context, resource IdentityResource) error
	UpdateWithChildren(ctx context.Context, saved IdentityResource, resource IdentityResource) error
	Remove(ctx context.Context, resource IdentityResource) error
}

// CommandHandler handles the register, update and remove commands for identity resources.
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

// RegisterWith registers the handler for all identity resource commands on bus.
func (h CommandHandler) RegisterWith(bus *mediator.Bus) error {
	if err := mediator.RegisterHandlerFunc(bus, h.HandleRegister); err != nil {
		return err
	}

	if err := mediator.RegisterHandlerFunc(bus, h.HandleUpdate); err != nil {
		return err
	}

	return mediator.RegisterHandlerFunc(bus, h.HandleRemove)
}

// HandleRegister adds a new identity resource unless one with the same name exists.
func (h CommandHandler) HandleRegister(ctx context.Context, command RegisterIdentityResource) (bool, error) {
	return mediator.Process(ctx, h.base, command, mediator.Steps[RegisterIdentityResource, *IdentityResource]{
		Load: func(ctx context.Context, c RegisterIdentityResource) (*IdentityResource, error) {
			return h.repository.GetByName(ctx, c.Resource.Name)
		},
		Check: mediator.MustNotExist[RegisterIdentityResource, IdentityResource](NotificationKey, MsgAlreadyExists),
		Mutate: func(ctx context.Context, c RegisterIdentityResource, _ *IdentityResource) error {
			return h.repository.Add(ctx, c.Resource)
		},
		Succeeded: func(c RegisterIdentityResource, _ *IdentityResource) mediator.DomainEvent {
			return BuildIdentityResourceRegistered(c.Resource.Name, h.clock())
		},
	})
}

// HandleUpdate replaces an existing identity resource and its user claims.
func (h CommandHandler) HandleUpdate(ctx context.Context, command UpdateIdentityResource) (bool, error) {
	return mediator.Process(ctx, h.base, command, mediator.Steps[UpdateIdentityResource, *IdentityResource]{
		Load: func(ctx context.Context, c UpdateIdentityResource) (*IdentityResource, error) {
			return h.repository.GetByName(ctx, c.OldName)
		},
		Check: mediator.MustExist[UpdateIdentityResource, IdentityResource](NotificationKey, MsgResourceNotFound),
		Mutate: func(ctx context.Context, c UpdateIdentityResource, saved *IdentityResource) error {
			return h.repository.UpdateWithChildren(ctx, *saved, c.Resource)
		},
		Succeeded: func(c UpdateIdentityResource, _ *IdentityResource) mediator.DomainEvent {
			return BuildIdentityResourceUpdated(c.OldName, c.Resource, h.clock())
		},
	})
}

// HandleRemove removes an existing identity resource together with its user claims.
func (h CommandHandler) HandleRemove(ctx context.Context, command RemoveIdentityResource) (bool, error) {
	return mediator.Process(ctx, h.base, command, mediator.Steps[RemoveIdentityResource, *IdentityResource]{
		Load: func(ctx context.Context, c RemoveIdentityResource) (*IdentityResource, error) {
			return h.repository.GetByName(ctx, c.Resource.Name)
		},
		Check: mediator.MustExist[RemoveIdentityResource, IdentityResource](NotificationKey, MsgResourceNotFound),
		Mutate: func(ctx context.Context, _ RemoveIdentityResource, saved *IdentityResource) error {
			return h.repository.Remove(ctx, *saved)
		},
		Succeeded: func(c RemoveIdentityResource, _ *IdentityResource) mediator.DomainEvent {
			return BuildIdentityResourceRemoved(c.Resource.Name, h.clock())
		},
	})
}
