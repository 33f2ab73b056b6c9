package eventstore_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/command-mediator-go/eventstore"
	"github.com/AntonStoeckl/command-mediator-go/mediator"
)

type claimSet struct {
	Name   string   `json:"name"`
	Claims []string `json:"claims"`
}

type resourceRegistered struct {
	mediator.EventBase
	DisplayName *string    `json:"displayName"`
	Resource    *claimSet  `json:"resource"`
	Nested      []claimSet `json:"nested"`
	Count       int64      `json:"count"`
}

func (resourceRegistered) MessageType() string { return "IdentityResourceRegistered" }

func Test_SerializePayload_OmitsNullFieldsAtAnyDepth(t *testing.T) {
	// arrange
	event := resourceRegistered{
		EventBase: mediator.BuildEventBase("openid", time.Date(2025, 1, 2, 3, 4, 5, 0, time.UTC)),
		Resource:  &claimSet{Name: "openid"},
		Count:     9007199254740993,
	}

	// act
	data, err := eventstore.SerializePayload(event)

	// assert
	require.NoError(t, err)
	assert.JSONEq(t,
		`{"aggregateId":"openid","timestamp":"2025-01-02T03:04:05Z","resource":{"name":"openid"},"count":9007199254740993}`,
		string(data),
	)
}

func Test_SerializePayload_KeepsNullArrayElements(t *testing.T) {
	data, err := eventstore.SerializePayload(map[string]any{"values": []any{1, nil, "x"}, "gone": nil})

	require.NoError(t, err)
	assert.JSONEq(t, `{"values":[1,null,"x"]}`, string(data))
}

func Test_SerializePayload_RoundTrip(t *testing.T) {
	// arrange
	displayName := "OpenID"
	original := resourceRegistered{
		EventBase:   mediator.BuildEventBase("openid", time.Date(2025, 1, 2, 3, 4, 5, 123456000, time.UTC)),
		DisplayName: &displayName,
		Nested:      []claimSet{{Name: "profile", Claims: []string{"name", "email"}}},
		Count:       42,
	}

	// act
	data, err := eventstore.SerializePayload(original)
	require.NoError(t, err)

	var decoded resourceRegistered
	require.NoError(t, eventstore.DecodePayload(data, &decoded))

	// assert
	assert.Equal(t, original.AggregateID(), decoded.AggregateID())
	assert.True(t, original.OccurredAt().Equal(decoded.OccurredAt()))
	assert.Equal(t, original.DisplayName, decoded.DisplayName)
	assert.Nil(t, decoded.Resource)
	assert.Equal(t, original.Nested, decoded.Nested)
	assert.Equal(t, original.Count, decoded.Count)
}

func Test_SerializePayload_IsDeterministic(t *testing.T) {
	payload := map[string]any{"b": 1, "a": map[string]any{"d": true, "c": nil}}

	first, err := eventstore.SerializePayload(payload)
	require.NoError(t, err)
	second, err := eventstore.SerializePayload(payload)
	require.NoError(t, err)

	assert.Equal(t, `{"a":{"d":true},"b":1}`, string(first))
	assert.Equal(t, first, second)
}

func Test_SerializePayload_ErrorCases(t *testing.T) {
	_, nilErr := eventstore.SerializePayload(nil)
	_, chanErr := eventstore.SerializePayload(map[string]any{"c": make(chan int)})

	assert.ErrorIs(t, nilErr, eventstore.ErrNilEvent)
	assert.ErrorIs(t, chanErr, eventstore.ErrSerializingEventFailed)
}

func Test_DecodePayload_InvalidJSON(t *testing.T) {
	var target map[string]any

	assert.ErrorIs(t, eventstore.DecodePayload([]byte(`{"broken": }`), &target), eventstore.ErrDecodingPayloadFailed)
}
