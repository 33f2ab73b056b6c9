package mediator

import (
	"context"
	"fmt"
)

// Notification key and message raised when a commit persisted nothing.
const (
	CommitNotificationKey   = "Commit"
	NothingPersistedMessage = "No changes were persisted"
)

// EventRaiser is the part of the Bus a command handler needs.
type EventRaiser interface {
	RaiseEvent(ctx context.Context, message Message)
}

// CommandHandler bundles the per-request collaborators every command handler needs.
type CommandHandler struct {
	Bus           EventRaiser
	Notifications *NotificationCollector
	UnitOfWork    UnitOfWork
}

// Precondition inspects the loaded state. It returns a Notification and true to reject the command.
type Precondition[C Command, S any] func(command C, state S) (Notification, bool)

// Steps are the command-specific parts of the handling protocol.
//
// Load fetches the current state by the command's natural key. Check decides whether the command
// may proceed; it is optional. Mutate hands the change to the repository, which registers it on
// the UnitOfWork. Succeeded builds the event raised after a successful commit.
type Steps[C Command, S any] struct {
	Load      func(ctx context.Context, command C) (S, error)
	Check     Precondition[C, S]
	Mutate    func(ctx context.Context, command C, state S) error
	Succeeded func(command C, state S) DomainEvent
}

func (s Steps[C, S]) validate() error {
	switch {
	case s.Load == nil:
		return fmt.Errorf("%w: Load", ErrMissingStep)
	case s.Mutate == nil:
		return fmt.Errorf("%w: Mutate", ErrMissingStep)
	case s.Succeeded == nil:
		return fmt.Errorf("%w: Succeeded", ErrMissingStep)
	default:
		return nil
	}
}

func (h CommandHandler) validate() error {
	switch {
	case h.Bus == nil:
		return fmt.Errorf("%w: Bus", ErrMissingDependency)
	case h.Notifications == nil:
		return fmt.Errorf("%w: Notifications", ErrMissingDependency)
	case h.UnitOfWork == nil:
		return fmt.Errorf("%w: UnitOfWork", ErrMissingDependency)
	default:
		return nil
	}
}

// Process runs the validate, load, check, mutate, commit protocol for one command.
//
// It returns true only if the change was committed and the success event was raised.
// Business rejections return false with a nil error; errors from Load, Mutate or Commit are
// returned unchanged and no event is raised.
func Process[C Command, S any](ctx context.Context, h CommandHandler, command C, steps Steps[C, S]) (bool, error) {
	if err := h.validate(); err != nil {
		return false, err
	}

	if err := steps.validate(); err != nil {
		return false, err
	}

	if result := command.Validate(); !result.IsValid() {
		for _, violation := range result.Violations() {
			h.Notifications.Add(violation.Property, violation.Message)
		}

		return false, nil
	}

	state, err := steps.Load(ctx, command)
	if err != nil {
		return false, err
	}

	if steps.Check != nil {
		if rejection, rejected := steps.Check(command, state); rejected {
			h.Bus.RaiseEvent(ctx, rejection)
			return false, nil
		}
	}

	if err = steps.Mutate(ctx, command, state); err != nil {
		return false, err
	}

	committed, err := h.UnitOfWork.Commit(ctx)
	if err != nil {
		return false, err
	}

	if !committed {
		h.Bus.RaiseEvent(ctx, NewNotification(CommitNotificationKey, NothingPersistedMessage))
		return false, nil
	}

	h.Bus.RaiseEvent(ctx, steps.Succeeded(command, state))

	return true, nil
}

// MustExist rejects the command with key and message when the loaded entity is nil.
func MustExist[C Command, E any](key, message string) Precondition[C, *E] {
	return func(_ C, entity *E) (Notification, bool) {
		if entity == nil {
			return NewNotification(key, message), true
		}

		return Notification{}, false
	}
}

// MustNotExist rejects the command with key and message when the loaded entity is not nil.
func MustNotExist[C Command, E any](key, message string) Precondition[C, *E] {
	return func(_ C, entity *E) (Notification, bool) {
		if entity != nil {
			return NewNotification(key, message), true
		}

		return Notification{}, false
	}
}

// AllOf combines preconditions; the first rejection wins.
func AllOf[C Command, S any](checks ...Precondition[C, S]) Precondition[C, S] {
	return func(command C, state S) (Notification, bool) {
		for _, check := range checks {
			if rejection, rejected := check(command, state); rejected {
				return rejection, true
			}
		}

		return Notification{}, false
	}
}
