package identityresource

import (
	"time"

	"github.com/AntonStoeckl/command-mediator-go/mediator"
)

// Event type identifiers.
const (
	RegisteredEventType = "IdentityResourceRegistered"
	UpdatedEventType    = "IdentityResourceUpdated"
	RemovedEventType    = "IdentityResourceRemoved"
)

// IdentityResourceRegistered is raised after a new identity resource was committed.
type IdentityResourceRegistered struct {
	mediator.EventBase
	Name string `json:"name"`
}

// BuildIdentityResourceRegistered creates a new IdentityResourceRegistered event.
func BuildIdentityResourceRegistered(name string, occurredAt time.Time) IdentityResourceRegistered {
	return IdentityResourceRegistered{
		EventBase: mediator.BuildEventBase(name, occurredAt),
		Name:      name,
	}
}

// MessageType returns the event type identifier.
func (e IdentityResourceRegistered) MessageType() string {
	return RegisteredEventType
}

// IdentityResourceUpdated is raised after an identity resource and its claims were replaced.
type IdentityResourceUpdated struct {
	mediator.EventBase
	OldName  string           `json:"oldName"`
	Resource IdentityResource `json:"resource"`
}

// BuildIdentityResourceUpdated creates a new IdentityResourceUpdated event for the resource's new name.
func BuildIdentityResourceUpdated(oldName string, resource IdentityResource, occurredAt time.Time) IdentityResourceUpdated {
	return IdentityResourceUpdated{
		EventBase: mediator.BuildEventBase(resource.Name, occurredAt),
		OldName:   oldName,
		Resource:  resource,
	}
}

// MessageType returns the event type identifier.
func (e IdentityResourceUpdated) MessageType() string {
	return UpdatedEventType
}

// IdentityResourceRemoved is raised after an identity resource was removed.
type IdentityResourceRemoved struct {
	mediator.EventBase
	Name string `json:"name"`
}

// BuildIdentityResourceRemoved creates a new IdentityResourceRemoved event.
func BuildIdentityResourceRemoved(name string, occurredAt time.Time) IdentityResourceRemoved {
	return IdentityResourceRemoved{
		EventBase: mediator.BuildEventBase(name, occurredAt),
		Name:      name,
	}
}

// MessageType returns the event type identifier.
func (e IdentityResourceRemoved) MessageType() string {
	return RemovedEventType
}
