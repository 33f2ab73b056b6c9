package persistedgrant

import (
	"time"

	"github.com/AntonStoeckl/command-mediator-go/mediator"
)

// RemovedEventType is the event type identifier.
const RemovedEventType = "PersistedGrantRemoved"

// PersistedGrantRemoved is raised after a grant was revoked.
type PersistedGrantRemoved struct {
	mediator.EventBase
	Type      string `json:"type"`
	ClientID  string `json:"clientId"`
	SubjectID string `json:"subjectId,omitempty"`
}

// BuildPersistedGrantRemoved creates a new PersistedGrantRemoved event for the removed grant.
func BuildPersistedGrantRemoved(grant PersistedGrant, occurredAt time.Time) PersistedGrantRemoved {
	return PersistedGrantRemoved{
		EventBase: mediator.BuildEventBase(grant.Key, occurredAt),
		Type:      grant.Type,
		ClientID:  grant.ClientID,
		SubjectID: grant.SubjectID,
	}
}

// MessageType returns the event type identifier.
func (e PersistedGrantRemoved) MessageType() string {
	return RemovedEventType
}
