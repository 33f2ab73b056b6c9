package mediator

import (
	"context"
	"errors"
	"fmt"
	"reflect"
	"sync"
	"time"
)

// Subscriber receives messages raised on the Bus.
type Subscriber interface {
	Receive(ctx context.Context, message Message) error
}

// SubscriberFunc adapts a plain function to Subscriber.
type SubscriberFunc func(ctx context.Context, message Message) error

// Receive implements Subscriber.
func (f SubscriberFunc) Receive(ctx context.Context, message Message) error {
	return f(ctx, message)
}

type dispatchFunc func(ctx context.Context, command Command) (bool, error)

// Bus routes commands to their handler and broadcasts messages to subscribers, synchronously,
// on the caller's goroutine.
type Bus struct {
	mu                     sync.RWMutex
	handlers               map[reflect.Type]dispatchFunc
	subscribers            map[string][]Subscriber
	domainEventSubscribers []Subscriber

	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
}

// Option defines a functional option for configuring a Bus.
type Option func(*Bus) error

// WithLogger sets the logger for the Bus.
//
// Debug level: raised events with subscriber counts
// Info level: handled and rejected commands with durations
// Error level: failed commands, subscriber errors and panics.
func WithLogger(logger Logger) Option {
	return func(b *Bus) error {
		b.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger which takes precedence over the plain logger.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(b *Bus) error {
		b.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the Bus.
func WithMetrics(collector MetricsCollector) Option {
	return func(b *Bus) error {
		b.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the Bus.
func WithTracing(collector TracingCollector) Option {
	return func(b *Bus) error {
		b.tracingCollector = collector
		return nil
	}
}

// NewBus creates an empty Bus with optional configuration.
func NewBus(options ...Option) (*Bus, error) {
	b := &Bus{
		handlers:    make(map[reflect.Type]dispatchFunc),
		subscribers: make(map[string][]Subscriber),
	}

	for _, option := range options {
		if err := option(b); err != nil {
			return nil, err
		}
	}

	return b, nil
}

// RegisterHandler registers the single handler for the command type C.
// Registering a second handler for the same type fails with ErrHandlerAlreadyRegistered.
func RegisterHandler[C Command](b *Bus, handler Handler[C]) error {
	if handler == nil {
		return ErrNilHandler
	}

	commandType := reflect.TypeFor[C]()

	b.mu.Lock()
	defer b.mu.Unlock()

	if _, exists := b.handlers[commandType]; exists {
		return errors.Join(ErrHandlerAlreadyRegistered, fmt.Errorf("command type: %s", commandType))
	}

	b.handlers[commandType] = func(ctx context.Context, command Command) (bool, error) {
		typed, ok := command.(C)
		if !ok {
			return false, errors.Join(ErrNoHandlerRegistered, fmt.Errorf("command type: %T", command))
		}

		return handler.Handle(ctx, typed)
	}

	return nil
}

// RegisterHandlerFunc is RegisterHandler for plain functions.
func RegisterHandlerFunc[C Command](b *Bus, handler func(ctx context.Context, command C) (bool, error)) error {
	if handler == nil {
		return ErrNilHandler
	}

	return RegisterHandler[C](b, HandlerFunc[C](handler))
}

// SendCommand dispatches command to its registered handler and returns the handler's result.
//
// A false result with a nil error means the command was rejected and Notifications were raised.
// A panicking handler is observed as a failed command and the panic is propagated to the caller.
func (b *Bus) SendCommand(ctx context.Context, command Command) (bool, error) {
	if isNilCommand(command) {
		return false, ErrNilCommand
	}

	commandType := command.CommandType()

	b.mu.RLock()
	dispatch, found := b.handlers[reflect.TypeOf(command)]
	b.mu.RUnlock()

	if !found {
		err := errors.Join(ErrNoHandlerRegistered, fmt.Errorf("command type: %s", commandType))
		b.logError(ctx, logMsgNoHandler, err, logAttrCommandType, commandType)

		return false, err
	}

	labels := map[string]string{attrCommandType: commandType}
	ctx, span := b.startSpan(ctx, spanNameSendCommand, labels)
	start := time.Now()

	defer func() {
		if r := recover(); r != nil {
			duration := time.Since(start)
			b.observeCommand(ctx, commandType, StatusError, duration, fmt.Errorf("%w: %v", ErrHandlerPanicked, r))
			b.finishSpan(span, StatusError, map[string]string{
				attrErrorType:  errorTypePanic,
				attrDurationMS: fmt.Sprintf("%.3f", toMilliseconds(duration)),
			})

			panic(r)
		}
	}()

	ok, err := dispatch(ctx, command)

	duration := time.Since(start)
	status := commandStatus(ok, err)
	b.observeCommand(ctx, commandType, status, duration, err)
	b.finishSpan(span, status, map[string]string{attrDurationMS: fmt.Sprintf("%.3f", toMilliseconds(duration))})

	return ok, err
}

// isNilCommand also catches typed nil pointers, whose value methods would panic.
func isNilCommand(command Command) bool {
	if command == nil {
		return true
	}

	v := reflect.ValueOf(command)

	return v.Kind() == reflect.Pointer && v.IsNil()
}

// Subscribe registers subscriber for messages with the given message type.
// Subscribers are called in registration order.
func (b *Bus) Subscribe(messageType string, subscriber Subscriber) error {
	if messageType == "" {
		return ErrEmptyMessageType
	}

	if subscriber == nil {
		return ErrNilSubscriber
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.subscribers[messageType] = append(b.subscribers[messageType], subscriber)

	return nil
}

// SubscribeToDomainEvents registers subscriber for every DomainEvent regardless of its type.
// Notifications are not delivered to these subscribers.
func (b *Bus) SubscribeToDomainEvents(subscriber Subscriber) error {
	if subscriber == nil {
		return ErrNilSubscriber
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.domainEventSubscribers = append(b.domainEventSubscribers, subscriber)

	return nil
}

// RaiseEvent delivers message to every matching subscriber, type-specific subscribers first.
//
// A failing or panicking subscriber is logged and counted; the remaining subscribers still run
// and the caller is not affected.
func (b *Bus) RaiseEvent(ctx context.Context, message Message) {
	if message == nil {
		return
	}

	recipients := b.recipientsFor(message)
	labels := map[string]string{attrMessageType: message.MessageType()}

	ctx, span := b.startSpan(ctx, spanNameRaiseEvent, labels)

	failed := 0
	for _, subscriber := range recipients {
		if !b.deliver(ctx, subscriber, message) {
			failed++
		}
	}

	b.incrementCounter(ctx, metricEventsRaised, labels)
	b.logDebug(
		ctx,
		logMsgEventRaised,
		logAttrMessageType, message.MessageType(),
		logAttrSubscriberCount, len(recipients),
	)

	status := StatusSuccess
	if failed > 0 {
		status = StatusError
	}

	b.finishSpan(span, status, map[string]string{"failed_subscribers": fmt.Sprintf("%d", failed)})
}

func (b *Bus) recipientsFor(message Message) []Subscriber {
	b.mu.RLock()
	defer b.mu.RUnlock()

	recipients := make([]Subscriber, 0, len(b.subscribers[message.MessageType()])+len(b.domainEventSubscribers))
	recipients = append(recipients, b.subscribers[message.MessageType()]...)

	if _, isDomainEvent := message.(DomainEvent); isDomainEvent {
		recipients = append(recipients, b.domainEventSubscribers...)
	}

	return recipients
}

// deliver calls one subscriber and reports whether it succeeded.
func (b *Bus) deliver(ctx context.Context, subscriber Subscriber, message Message) (delivered bool) {
	defer func() {
		if r := recover(); r != nil {
			delivered = false
			b.subscriberFailed(ctx, subscriber, message, logMsgSubscriberPanic, fmt.Errorf("%v", r), errorTypePanic)
		}
	}()

	if err := subscriber.Receive(ctx, message); err != nil {
		b.subscriberFailed(ctx, subscriber, message, logMsgSubscriberFailed, err, errorTypeFailure)
		return false
	}

	return true
}

func (b *Bus) subscriberFailed(
	ctx context.Context,
	subscriber Subscriber,
	message Message,
	logMsg string,
	err error,
	errorType string,
) {

	b.logError(
		ctx,
		logMsg,
		err,
		logAttrMessageType, message.MessageType(),
		logAttrSubscriberType, typeName(subscriber),
	)

	b.incrementCounter(ctx, metricSubscriberFailures, map[string]string{
		attrMessageType:    message.MessageType(),
		attrSubscriberType: typeName(subscriber),
		attrErrorType:      errorType,
	})
}

func (b *Bus) observeCommand(ctx context.Context, commandType string, status string, duration time.Duration, err error) {
	labels := map[string]string{
		attrCommandType: commandType,
		attrStatus:      status,
	}

	b.recordDuration(ctx, metricCommandDuration, duration, labels)
	b.incrementCounter(ctx, metricCommandsHandled, labels)

	switch status {
	case StatusSuccess:
		b.logInfo(ctx, logMsgCommandHandled, logAttrCommandType, commandType, logAttrDurationMS, toMilliseconds(duration))
	case StatusRejected:
		b.logInfo(ctx, logMsgCommandRejected, logAttrCommandType, commandType, logAttrDurationMS, toMilliseconds(duration))
	default:
		b.logError(ctx, logMsgCommandFailed, err, logAttrCommandType, commandType, logAttrDurationMS, toMilliseconds(duration))
	}
}
