package apiresource_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/command-mediator-go/admin/apiresource"
	"github.com/AntonStoeckl/command-mediator-go/mediator"
	"github.com/AntonStoeckl/command-mediator-go/testutil/helper"
)

var fixedNow = time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC)

type repositoryMock struct {
	mock.Mock
}

func (m *repositoryMock) GetByName(ctx context.Context, name string) (*apiresource.ApiResource, error) {
	args := m.Called(ctx, name)
	resource, _ := args.Get(0).(*apiresource.ApiResource)
	return resource, args.Error(1)
}

func (m *repositoryMock) RemoveSecret(ctx context.Context, secret apiresource.Secret) error {
	return m.Called(ctx, secret).Error(0)
}

type unitOfWorkMock struct {
	mock.Mock
}

func (m *unitOfWorkMock) Commit(ctx context.Context) (bool, error) {
	args := m.Called(ctx)
	return args.Bool(0), args.Error(1)
}

type handlerFixture struct {
	bus           *mediator.Bus
	notifications *mediator.NotificationCollector
	repository    *repositoryMock
	unitOfWork    *unitOfWorkMock
	events        []mediator.DomainEvent
}

func newHandlerFixture(t *testing.T) *handlerFixture {
	t.Helper()

	bus, err := mediator.NewBus()
	require.NoError(t, err)

	f := &handlerFixture{
		bus:           bus,
		notifications: mediator.NewNotificationCollector(),
		repository:    new(repositoryMock),
		unitOfWork:    new(unitOfWorkMock),
	}

	require.NoError(t, bus.Subscribe(mediator.NotificationMessageType, f.notifications))
	require.NoError(t, bus.SubscribeToDomainEvents(mediator.SubscriberFunc(func(_ context.Context, m mediator.Message) error {
		f.events = append(f.events, m.(mediator.DomainEvent))
		return nil
	})))

	handler, err := apiresource.NewCommandHandler(
		mediator.CommandHandler{Bus: bus, Notifications: f.notifications, UnitOfWork: f.unitOfWork},
		f.repository,
		apiresource.WithClock(func() time.Time { return fixedNow }),
	)
	require.NoError(t, err)
	require.NoError(t, handler.RegisterWith(bus))

	return f
}

func givenResourceWithSecret(t *testing.T) *apiresource.ApiResource {
	t.Helper()

	return &apiresource.ApiResource{
		ID:      helper.GivenUniqueID(t),
		Name:    "orders-api",
		Enabled: true,
		Secrets: []apiresource.Secret{
			{ID: helper.GivenUniqueID(t), Type: apiresource.SecretTypeSharedSecret, Value: "hashed-1"},
			{ID: helper.GivenUniqueID(t), Type: apiresource.SecretTypeSharedSecret, Value: "hashed-2"},
		},
	}
}

func Test_RemoveApiSecret_RemovesMatchingSecret_AndRaisesEvent(t *testing.T) {
	// arrange
	f := newHandlerFixture(t)
	saved := givenResourceWithSecret(t)
	f.repository.On("GetByName", mock.Anything, "orders-api").Return(saved, nil).Once()
	f.repository.On("RemoveSecret", mock.Anything, saved.Secrets[1]).Return(nil).Once()
	f.unitOfWork.On("Commit", mock.Anything).Return(true, nil).Once()

	// act
	ok, err := f.bus.SendCommand(context.Background(), apiresource.RemoveApiSecret{
		ResourceName: "orders-api",
		Type:         apiresource.SecretTypeSharedSecret,
		Value:        "hashed-2",
	})

	// assert
	require.NoError(t, err)
	assert.True(t, ok)
	f.repository.AssertExpectations(t)
	f.unitOfWork.AssertExpectations(t)
	require.Len(t, f.events, 1)

	removed, isRemoved := f.events[0].(apiresource.ApiSecretRemoved)
	require.True(t, isRemoved)
	assert.Equal(t, "orders-api", removed.AggregateID())
	assert.Equal(t, apiresource.SecretTypeSharedSecret, removed.Type)
	assert.Equal(t, fixedNow, removed.OccurredAt())
}

func Test_RemoveApiSecret_RejectsMissingResource(t *testing.T) {
	// arrange
	f := newHandlerFixture(t)
	f.repository.On("GetByName", mock.Anything, "orders-api").Return(nil, nil).Once()

	// act
	ok, err := f.bus.SendCommand(context.Background(), apiresource.RemoveApiSecret{
		ResourceName: "orders-api",
		Type:         apiresource.SecretTypeSharedSecret,
		Value:        "hashed-1",
	})

	// assert
	require.NoError(t, err)
	assert.False(t, ok)
	f.repository.AssertNotCalled(t, "RemoveSecret", mock.Anything, mock.Anything)
	f.unitOfWork.AssertNotCalled(t, "Commit", mock.Anything)
	require.Len(t, f.notifications.Notifications(), 1)
	assert.Equal(t, apiresource.MsgResourceNotFound, f.notifications.Notifications()[0].Value)
}

func Test_RemoveApiSecret_RejectsUnknownSecret(t *testing.T) {
	// arrange
	f := newHandlerFixture(t)
	f.repository.On("GetByName", mock.Anything, "orders-api").Return(givenResourceWithSecret(t), nil).Once()

	// act
	ok, err := f.bus.SendCommand(context.Background(), apiresource.RemoveApiSecret{
		ResourceName: "orders-api",
		Type:         apiresource.SecretTypeX509Thumbprint,
		Value:        "hashed-1",
	})

	// assert
	require.NoError(t, err)
	assert.False(t, ok)
	f.repository.AssertNotCalled(t, "RemoveSecret", mock.Anything, mock.Anything)
	assert.Empty(t, f.events)
	require.Len(t, f.notifications.Notifications(), 1)
	assert.Equal(t, apiresource.NotificationKey, f.notifications.Notifications()[0].Key)
	assert.Equal(t, apiresource.MsgSecretNotFound, f.notifications.Notifications()[0].Value)
}

func Test_RemoveApiSecret_Validate(t *testing.T) {
	tests := []struct {
		name               string
		command            apiresource.RemoveApiSecret
		expectedProperties []string
	}{
		{
			name:               "everything missing",
			command:            apiresource.RemoveApiSecret{},
			expectedProperties: []string{"ResourceName", "Type", "Value"},
		},
		{
			name:               "unknown type",
			command:            apiresource.RemoveApiSecret{ResourceName: "orders-api", Type: "Password", Value: "x"},
			expectedProperties: []string{"Type"},
		},
		{
			name:               "valid",
			command:            apiresource.RemoveApiSecret{ResourceName: "orders-api", Type: apiresource.SecretTypeSharedSecret, Value: "x"},
			expectedProperties: []string{},
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			properties := make([]string, 0)
			for _, violation := range tc.command.Validate().Violations() {
				properties = append(properties, violation.Property)
			}

			assert.Equal(t, tc.expectedProperties, properties)
		})
	}
}

func Test_RemoveApiSecret_Validate_UsesResourceNameMessage(t *testing.T) {
	violations := apiresource.RemoveApiSecret{Type: apiresource.SecretTypeSharedSecret, Value: "x"}.Validate().Violations()

	require.Len(t, violations, 1)
	assert.Equal(t, "Please ensure you have entered the Api Resource name", violations[0].Message)
}
