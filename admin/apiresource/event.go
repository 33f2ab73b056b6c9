package apiresource

import (
	"time"

	"github.com/AntonStoeckl/command-mediator-go/mediator"
)

// SecretRemovedEventType is the event type identifier.
const SecretRemovedEventType = "ApiSecretRemoved"

// ApiSecretRemoved is raised after a secret was removed from an API resource.
// The aggregate is the resource name; the secret value is never part of the event.
type ApiSecretRemoved struct {
	mediator.EventBase
	Type string `json:"type"`
}

// BuildApiSecretRemoved creates a new ApiSecretRemoved event.
func BuildApiSecretRemoved(secretType string, resourceName string, occurredAt time.Time) ApiSecretRemoved {
	return ApiSecretRemoved{
		EventBase: mediator.BuildEventBase(resourceName, occurredAt),
		Type:      secretType,
	}
}

// MessageType returns the event type identifier.
func (e ApiSecretRemoved) MessageType() string {
	return SecretRemovedEventType
}
