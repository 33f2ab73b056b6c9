package mediator_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/command-mediator-go/mediator"
	"github.com/AntonStoeckl/command-mediator-go/testutil/helper"
)

func Test_Bus_SendCommand_RoutesToRegisteredHandler(t *testing.T) {
	// arrange
	bus, err := mediator.NewBus()
	require.NoError(t, err)

	var received renameWidget
	require.NoError(t, mediator.RegisterHandlerFunc(bus, func(_ context.Context, c renameWidget) (bool, error) {
		received = c
		return true, nil
	}))

	// act
	ok, err := bus.SendCommand(context.Background(), renameWidget{Name: "a", NewName: "b"})

	// assert
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, renameWidget{Name: "a", NewName: "b"}, received)
}

func Test_Bus_SendCommand_WithoutHandler(t *testing.T) {
	// arrange
	bus, _ := mediator.NewBus()

	// act
	ok, err := bus.SendCommand(context.Background(), otherCommand{})

	// assert
	assert.False(t, ok)
	assert.ErrorIs(t, err, mediator.ErrNoHandlerRegistered)
}

func Test_Bus_SendCommand_NilCommand(t *testing.T) {
	bus, _ := mediator.NewBus()

	ok, err := bus.SendCommand(context.Background(), nil)

	assert.False(t, ok)
	assert.ErrorIs(t, err, mediator.ErrNilCommand)
}

func Test_Bus_SendCommand_TypedNilCommand(t *testing.T) {
	// arrange
	withoutHandler, _ := mediator.NewBus()
	withHandler, _ := mediator.NewBus()
	require.NoError(t, mediator.RegisterHandlerFunc(withHandler, func(context.Context, *renameWidget) (bool, error) {
		return true, nil
	}))

	var command *renameWidget

	for _, bus := range []*mediator.Bus{withoutHandler, withHandler} {
		// act
		var (
			ok  bool
			err error
		)
		assert.NotPanics(t, func() {
			ok, err = bus.SendCommand(context.Background(), command)
		})

		// assert
		assert.False(t, ok)
		assert.ErrorIs(t, err, mediator.ErrNilCommand)
	}
}

func Test_Bus_RegisterHandler_RejectsDuplicates(t *testing.T) {
	// arrange
	bus, _ := mediator.NewBus()
	handler := func(context.Context, renameWidget) (bool, error) { return true, nil }
	require.NoError(t, mediator.RegisterHandlerFunc(bus, handler))

	// act
	err := mediator.RegisterHandlerFunc(bus, handler)

	// assert
	assert.ErrorIs(t, err, mediator.ErrHandlerAlreadyRegistered)
}

func Test_Bus_RegisterHandler_RejectsNil(t *testing.T) {
	bus, _ := mediator.NewBus()

	assert.ErrorIs(t, mediator.RegisterHandlerFunc[renameWidget](bus, nil), mediator.ErrNilHandler)
	assert.ErrorIs(t, mediator.RegisterHandler[renameWidget](bus, nil), mediator.ErrNilHandler)
}

func Test_Bus_SendCommand_PropagatesHandlerError(t *testing.T) {
	// arrange
	bus, _ := mediator.NewBus()
	boom := errors.New("boom")
	require.NoError(t, mediator.RegisterHandlerFunc(bus, func(context.Context, renameWidget) (bool, error) {
		return false, boom
	}))

	// act
	ok, err := bus.SendCommand(context.Background(), renameWidget{})

	// assert
	assert.False(t, ok)
	assert.ErrorIs(t, err, boom)
}

func Test_Bus_RaiseEvent_DeliversInRegistrationOrder(t *testing.T) {
	// arrange
	bus, _ := mediator.NewBus()
	var received []string

	require.NoError(t, bus.Subscribe("WidgetRenamedEvent", recordingSubscriber{name: "first", received: &received}))
	require.NoError(t, bus.Subscribe("WidgetRenamedEvent", recordingSubscriber{name: "second", received: &received}))
	require.NoError(t, bus.SubscribeToDomainEvents(recordingSubscriber{name: "all", received: &received}))
	require.NoError(t, bus.Subscribe("SomethingElse", recordingSubscriber{name: "other", received: &received}))

	// act
	bus.RaiseEvent(context.Background(), newWidgetRenamed("a", "b"))

	// assert
	assert.Equal(t, []string{"first:WidgetRenamedEvent", "second:WidgetRenamedEvent", "all:WidgetRenamedEvent"}, received)
}

func Test_Bus_RaiseEvent_NotificationsSkipDomainEventSubscribers(t *testing.T) {
	// arrange
	bus, _ := mediator.NewBus()
	collector := mediator.NewNotificationCollector()
	var received []string

	require.NoError(t, bus.Subscribe(mediator.NotificationMessageType, collector))
	require.NoError(t, bus.SubscribeToDomainEvents(recordingSubscriber{name: "all", received: &received}))

	// act
	bus.RaiseEvent(context.Background(), mediator.NewNotification("Key", "Value"))

	// assert
	assert.Empty(t, received)
	assert.Len(t, collector.Notifications(), 1)
}

func Test_Bus_RaiseEvent_WithoutSubscribers(t *testing.T) {
	bus, _ := mediator.NewBus()

	assert.NotPanics(t, func() {
		bus.RaiseEvent(context.Background(), newWidgetRenamed("a", "b"))
	})
}

func Test_Bus_RaiseEvent_IsolatesFailingSubscribers(t *testing.T) {
	// arrange
	logSpy := helper.NewLogHandlerSpy(false)
	metricsSpy := helper.NewMetricsCollectorSpy()
	bus, _ := mediator.NewBus(mediator.WithLogger(logSpy.Logger()), mediator.WithMetrics(metricsSpy))
	var received []string

	require.NoError(t, bus.SubscribeToDomainEvents(recordingSubscriber{name: "failing", received: &received, err: errors.New("audit down")}))
	require.NoError(t, bus.SubscribeToDomainEvents(mediator.SubscriberFunc(func(context.Context, mediator.Message) error {
		panic("subscriber bug")
	})))
	require.NoError(t, bus.SubscribeToDomainEvents(recordingSubscriber{name: "last", received: &received}))

	// act
	bus.RaiseEvent(context.Background(), newWidgetRenamed("a", "b"))

	// assert
	assert.Equal(t, []string{"failing:WidgetRenamedEvent", "last:WidgetRenamedEvent"}, received)
	assert.True(t, logSpy.HasErrorLogWithMessage("subscriber failed").WithAttr("message_type", "WidgetRenamedEvent").Assert())
	assert.True(t, logSpy.HasErrorLogWithMessage("subscriber panicked").Assert())
	assert.Equal(t, 2, metricsSpy.CountCounterRecordsForMetric("mediator_subscriber_failures_total"))
}

func Test_Bus_Subscribe_RejectsInvalidInput(t *testing.T) {
	bus, _ := mediator.NewBus()

	assert.ErrorIs(t, bus.Subscribe("", mediator.NewNotificationCollector()), mediator.ErrEmptyMessageType)
	assert.ErrorIs(t, bus.Subscribe("X", nil), mediator.ErrNilSubscriber)
	assert.ErrorIs(t, bus.SubscribeToDomainEvents(nil), mediator.ErrNilSubscriber)
}

func Test_Bus_SendCommand_Observability(t *testing.T) {
	testCases := []struct {
		name           string
		result         bool
		err            error
		expectedStatus string
	}{
		{name: "success", result: true, expectedStatus: mediator.StatusSuccess},
		{name: "rejected", result: false, expectedStatus: mediator.StatusRejected},
		{name: "error", err: errors.New("db down"), expectedStatus: mediator.StatusError},
		{name: "canceled", err: context.Canceled, expectedStatus: mediator.StatusCanceled},
		{name: "timeout", err: context.DeadlineExceeded, expectedStatus: mediator.StatusTimeout},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// arrange
			metricsSpy := helper.NewMetricsCollectorSpy()
			tracingSpy := helper.NewTracingCollectorSpy()
			bus, err := mediator.NewBus(mediator.WithMetrics(metricsSpy), mediator.WithTracing(tracingSpy))
			require.NoError(t, err)
			require.NoError(t, mediator.RegisterHandlerFunc(bus, func(context.Context, renameWidget) (bool, error) {
				return tc.result, tc.err
			}))

			// act
			_, _ = bus.SendCommand(context.Background(), renameWidget{})

			// assert
			assert.True(t, metricsSpy.HasDurationRecordForMetric("mediator_command_duration_seconds").
				WithLabel("command_type", "RenameWidget").
				WithLabel("status", tc.expectedStatus).
				Assert())
			assert.True(t, metricsSpy.HasCounterRecordForMetric("mediator_commands_total").
				WithLabel("status", tc.expectedStatus).
				Assert())
			assert.True(t, tracingSpy.HasSpanRecordForName("mediator.send_command").
				WithStartAttribute("command_type", "RenameWidget").
				WithStatus(tc.expectedStatus).
				Assert())
		})
	}
}

func Test_Bus_SendCommand_LogsWithContextualLogger(t *testing.T) {
	// arrange
	logSpy := helper.NewLogHandlerSpy(false)
	bus, _ := mediator.NewBus(mediator.WithContextualLogger(logSpy.Logger()))
	require.NoError(t, mediator.RegisterHandlerFunc(bus, func(context.Context, renameWidget) (bool, error) {
		return true, nil
	}))

	// act
	_, _ = bus.SendCommand(context.Background(), renameWidget{})

	// assert
	assert.True(t, logSpy.HasInfoLogWithMessage("command handled").
		WithAttr("command_type", "RenameWidget").
		WithDurationMS().
		Assert())
}

func Test_Bus_SendCommand_HandlerPanicIsObserved(t *testing.T) {
	// arrange
	logSpy := helper.NewLogHandlerSpy(false)
	metricsSpy := helper.NewMetricsCollectorSpy()
	tracingSpy := helper.NewTracingCollectorSpy()
	bus, err := mediator.NewBus(
		mediator.WithContextualLogger(logSpy.Logger()),
		mediator.WithMetrics(metricsSpy),
		mediator.WithTracing(tracingSpy),
	)
	require.NoError(t, err)
	require.NoError(t, mediator.RegisterHandlerFunc(bus, func(context.Context, renameWidget) (bool, error) {
		panic("boom")
	}))

	// act & assert
	assert.PanicsWithValue(t, "boom", func() {
		_, _ = bus.SendCommand(context.Background(), renameWidget{})
	})

	assert.True(t, tracingSpy.HasSpanRecordForName("mediator.send_command").
		WithStatus(mediator.StatusError).
		Assert())
	assert.True(t, metricsSpy.HasCounterRecordForMetric("mediator_commands_total").
		WithLabel("status", mediator.StatusError).
		Assert())
	assert.True(t, logSpy.HasErrorLogWithMessage("command failed").
		WithAttr("command_type", "RenameWidget").
		Assert())
}
