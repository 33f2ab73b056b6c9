package mediator

import "time"

// EventKind distinguishes events that report success from those that report a failure.
type EventKind string

const (
	EventKindSuccess EventKind = "Success"
	EventKindFailure EventKind = "Failure"
)

// Message is anything that can be raised on the Bus.
type Message interface {
	MessageType() string
}

// DomainEvent is a message describing a completed state change of one aggregate.
// It is raised only after the change was committed.
type DomainEvent interface {
	Message
	AggregateID() string
	EventMessage() string
	OccurredAt() time.Time
	Kind() EventKind
}

// EventBase carries the fields every domain event shares. Embed it and implement MessageType.
//
// The text is optional; the audit trail derives a human message from the type name when it is empty.
type EventBase struct {
	Aggregate string    `json:"aggregateId,omitempty"`
	Text      string    `json:"message,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// BuildEventBase creates an EventBase for the given aggregate with a normalized timestamp.
func BuildEventBase(aggregateID string, occurredAt time.Time) EventBase {
	return EventBase{
		Aggregate: aggregateID,
		Timestamp: ToOccurredAt(occurredAt),
	}
}

// AggregateID returns the natural key of the aggregate the event belongs to.
func (e EventBase) AggregateID() string {
	return e.Aggregate
}

// EventMessage returns the optional human-readable message.
func (e EventBase) EventMessage() string {
	return e.Text
}

// OccurredAt returns when the event happened.
func (e EventBase) OccurredAt() time.Time {
	return e.Timestamp
}

// Kind returns EventKindSuccess; domain events always describe something that happened.
func (e EventBase) Kind() EventKind {
	return EventKindSuccess
}

// ToOccurredAt converts to UTC and truncates to microseconds, the precision databases keep.
func ToOccurredAt(t time.Time) time.Time {
	return t.UTC().Truncate(time.Microsecond)
}
