package eventstore

import (
	"context"
	"time"

	"github.com/google/uuid"
	jsoniter "github.com/json-iterator/go"
)

// StoredEvents is an alias type for a slice of StoredEvent.
type StoredEvents = []StoredEvent

// StoredEvent is the audit record of one domain event.
//
// It is built on scalars to stay independent of the concrete event types.
// While its properties are exported, it should only be constructed with the supplied factory methods:
//   - BuildStoredEvent
//   - RestoreStoredEvent
//
// A StoredEvent is never changed once written; the With* methods return modified copies.
type StoredEvent struct {
	ID          uuid.UUID
	AggregateID string
	MessageType string
	EventKind   string
	Message     string
	LocalIP     string
	RemoteIP    string
	Data        []byte
	User        string
	CreatedAt   time.Time
}

// BuildStoredEvent is a factory method for a new StoredEvent with a fresh time-ordered ID.
//
// Returns an error if messageType is empty or data is not valid JSON.
func BuildStoredEvent(messageType string, eventKind string, message string, data []byte, createdAt time.Time) (StoredEvent, error) {
	id, err := uuid.NewV7()
	if err != nil {
		return StoredEvent{}, err
	}

	return RestoreStoredEvent(id, "", messageType, eventKind, message, "", "", data, "", createdAt)
}

// RestoreStoredEvent is a factory method for a StoredEvent read back from storage.
//
// Returns an error if messageType is empty or data is not valid JSON.
func RestoreStoredEvent(
	id uuid.UUID,
	aggregateID string,
	messageType string,
	eventKind string,
	message string,
	localIP string,
	remoteIP string,
	data []byte,
	user string,
	createdAt time.Time,
) (StoredEvent, error) {

	if messageType == "" {
		return StoredEvent{}, ErrEmptyMessageType
	}

	if !jsoniter.Valid(data) {
		return StoredEvent{}, ErrInvalidDataJSON
	}

	return StoredEvent{
		ID:          id,
		AggregateID: aggregateID,
		MessageType: messageType,
		EventKind:   eventKind,
		Message:     message,
		LocalIP:     localIP,
		RemoteIP:    remoteIP,
		Data:        data,
		User:        user,
		CreatedAt:   createdAt,
	}, nil
}

// WithAggregate returns a copy bound to the given aggregate.
func (e StoredEvent) WithAggregate(aggregateID string) StoredEvent {
	e.AggregateID = aggregateID
	return e
}

// WithOrigin returns a copy carrying who caused the event and from where.
func (e StoredEvent) WithOrigin(user string, localIP string, remoteIP string) StoredEvent {
	e.User = user
	e.LocalIP = localIP
	e.RemoteIP = remoteIP

	return e
}

// Repository appends StoredEvents. Implementations never update or delete them.
type Repository interface {
	Store(ctx context.Context, event StoredEvent) error
}

// SystemUser tells the audit trail who is acting and from which addresses.
type SystemUser interface {
	Username(ctx context.Context) string
	LocalIPAddress(ctx context.Context) string
	RemoteIPAddress(ctx context.Context) string
}
