package eventstore

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/AntonStoeckl/command-mediator-go/mediator"
)

// EventStore turns domain events into StoredEvents and appends them to a Repository.
// It implements mediator.Subscriber.
type EventStore struct {
	repository       Repository
	user             SystemUser
	clock            func() time.Time
	logger           Logger
	contextualLogger ContextualLogger
	metricsCollector MetricsCollector
	tracingCollector TracingCollector
}

// Option defines a functional option for configuring EventStore.
type Option func(*EventStore) error

// WithClock sets the time source for StoredEvent.CreatedAt.
func WithClock(clock func() time.Time) Option {
	return func(es *EventStore) error {
		if clock == nil {
			return ErrNilClock
		}

		es.clock = clock

		return nil
	}
}

// WithLogger sets the logger for the EventStore.
//
// Info level: stored events with durations
// Error level: serialization and storage failures.
func WithLogger(logger Logger) Option {
	return func(es *EventStore) error {
		es.logger = logger
		return nil
	}
}

// WithContextualLogger sets a context-aware logger which takes precedence over the plain logger.
func WithContextualLogger(logger ContextualLogger) Option {
	return func(es *EventStore) error {
		es.contextualLogger = logger
		return nil
	}
}

// WithMetrics sets the metrics collector for the EventStore.
func WithMetrics(collector MetricsCollector) Option {
	return func(es *EventStore) error {
		es.metricsCollector = collector
		return nil
	}
}

// WithTracing sets the tracing collector for the EventStore.
func WithTracing(collector TracingCollector) Option {
	return func(es *EventStore) error {
		es.tracingCollector = collector
		return nil
	}
}

// NewEventStore creates an EventStore with optional configuration.
func NewEventStore(repository Repository, user SystemUser, options ...Option) (*EventStore, error) {
	if repository == nil {
		return nil, ErrNilRepository
	}

	if user == nil {
		return nil, ErrNilSystemUser
	}

	es := &EventStore{
		repository: repository,
		user:       user,
		clock:      time.Now,
	}

	for _, option := range options {
		if err := option(es); err != nil {
			return nil, err
		}
	}

	return es, nil
}

// Receive implements mediator.Subscriber. Messages that are not domain events are ignored.
func (es *EventStore) Receive(ctx context.Context, message mediator.Message) error {
	event, ok := message.(mediator.DomainEvent)
	if !ok {
		return nil
	}

	return es.Save(ctx, event)
}

// Save builds the StoredEvent for event and appends it to the repository.
func (es *EventStore) Save(ctx context.Context, event mediator.DomainEvent) error {
	if event == nil {
		return ErrNilEvent
	}

	messageType := event.MessageType()
	ctx, span := es.startSpan(ctx, messageType)
	start := time.Now()

	stored, errorType, err := es.buildStoredEvent(ctx, event)
	if err == nil {
		if storeErr := es.repository.Store(ctx, stored); storeErr != nil {
			errorType, err = errorTypeStore, errors.Join(ErrStoringEventFailed, storeErr)
			es.logError(ctx, logMsgStoreFailed, storeErr, logAttrMessageType, messageType, logAttrAggregateID, event.AggregateID())
		}
	}

	duration := time.Since(start)

	if err != nil {
		es.recordSave(ctx, messageType, statusError, errorType, duration)
		es.finishSpan(span, statusError, map[string]string{attrErrorType: errorType})

		return err
	}

	es.recordSave(ctx, messageType, statusSuccess, "", duration)
	es.finishSpan(span, statusSuccess, map[string]string{logAttrEventID: stored.ID.String()})
	es.logInfo(
		ctx,
		logMsgEventStored,
		logAttrMessageType, messageType,
		logAttrAggregateID, stored.AggregateID,
		logAttrEventID, stored.ID.String(),
		logAttrUser, stored.User,
		logAttrDurationMS, toMilliseconds(duration),
	)

	return nil
}

func (es *EventStore) buildStoredEvent(ctx context.Context, event mediator.DomainEvent) (StoredEvent, string, error) {
	data, err := SerializePayload(event)
	if err != nil {
		es.logError(ctx, logMsgSerializeFailed, err, logAttrMessageType, event.MessageType())
		return StoredEvent{}, errorTypeSerialize, err
	}

	message := strings.TrimSpace(event.EventMessage())
	if message == "" {
		message = MessageFromType(event.MessageType())
	}

	stored, err := BuildStoredEvent(event.MessageType(), string(event.Kind()), message, data, mediator.ToOccurredAt(es.clock()))
	if err != nil {
		es.logError(ctx, logMsgBuildFailed, err, logAttrMessageType, event.MessageType())
		return StoredEvent{}, errorTypeBuild, err
	}

	stored = stored.
		WithAggregate(event.AggregateID()).
		WithOrigin(es.user.Username(ctx), es.user.LocalIPAddress(ctx), es.user.RemoteIPAddress(ctx))

	return stored, "", nil
}
