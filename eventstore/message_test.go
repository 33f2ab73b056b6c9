package eventstore_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/AntonStoeckl/command-mediator-go/eventstore"
)

func Test_MessageFromType(t *testing.T) {
	testCases := []struct {
		messageType string
		expected    string
	}{
		{messageType: "ApiSecretRemovedEvent", expected: "Api Secret Removed"},
		{messageType: "IdentityResourceRegistered", expected: "Identity Resource Registered"},
		{messageType: "OIDCClientAddedEvent", expected: "OIDC Client Added"},
		{messageType: "ClientSecretV2Saved", expected: "Client Secret V2 Saved"},
		{messageType: "  Already Spaced Event ", expected: "Already Spaced"},
		{messageType: "EventSourcingEnabledEvent", expected: "Event Sourcing Enabled"},
		{messageType: "ClientEventHookAdded", expected: "Client Event Hook Added"},
		{messageType: "EventsPurged", expected: "Events Purged"},
		{messageType: "Event", expected: "Event"},
		{messageType: "", expected: ""},
	}

	for _, tc := range testCases {
		t.Run(tc.messageType, func(t *testing.T) {
			assert.Equal(t, tc.expected, eventstore.MessageFromType(tc.messageType))
		})
	}
}
