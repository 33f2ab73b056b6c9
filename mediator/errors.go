package mediator

import "errors"

var (
	ErrNilCommand               = errors.New("command must not be nil")
	ErrNilHandler               = errors.New("command handler must not be nil")
	ErrNilSubscriber            = errors.New("subscriber must not be nil")
	ErrEmptyMessageType         = errors.New("message type must not be empty")
	ErrNoHandlerRegistered      = errors.New("no handler registered for command type")
	ErrHandlerAlreadyRegistered = errors.New("handler already registered for command type")
	ErrMissingStep              = errors.New("command handler step is missing")
	ErrMissingDependency        = errors.New("command handler dependency is missing")
	ErrHandlerPanicked          = errors.New("command handler panicked")
)
