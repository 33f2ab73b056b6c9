package mediator

import (
	"context"

	"github.com/AntonStoeckl/command-mediator-go/mediator/validation"
)

// Command is an immutable request to change state. Each concrete type is routed to exactly one handler.
type Command interface {
	CommandType() string
	Validate() validation.Result
}

// Handler handles one concrete command type.
// It returns false with a nil error when the command was rejected for business reasons.
type Handler[C Command] interface {
	Handle(ctx context.Context, command C) (bool, error)
}

// HandlerFunc adapts a plain function to Handler.
type HandlerFunc[C Command] func(ctx context.Context, command C) (bool, error)

// Handle implements Handler.
func (f HandlerFunc[C]) Handle(ctx context.Context, command C) (bool, error) {
	return f(ctx, command)
}

// UnitOfWork is the transactional boundary of one command.
//
// Commit persists everything the command's repositories registered and reports whether anything
// was persisted. Storage failures are returned as errors.
type UnitOfWork interface {
	Commit(ctx context.Context) (bool, error)
}
