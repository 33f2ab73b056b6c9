package mediator_test

import (
	"context"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/command-mediator-go/mediator"
)

func Test_NotificationCollector_StartsEmpty(t *testing.T) {
	collector := mediator.NewNotificationCollector()

	assert.False(t, collector.HasNotifications())
	assert.Empty(t, collector.Notifications())
}

func Test_NotificationCollector_KeepsArrivalOrder(t *testing.T) {
	// arrange
	collector := mediator.NewNotificationCollector()

	// act
	collector.Add("Name", "Please ensure you have entered the Name")
	require.NoError(t, collector.Receive(context.Background(), mediator.NewNotification("Identity Resource", "Resource not found")))

	// assert
	notifications := collector.Notifications()
	require.Len(t, notifications, 2)
	assert.True(t, collector.HasNotifications())
	assert.Equal(t, "Name", notifications[0].Key)
	assert.Equal(t, "Identity Resource", notifications[1].Key)
	assert.Equal(t, "Resource not found", notifications[1].Value)
	assert.Equal(t, mediator.NotificationMessageType, notifications[1].MessageType())
	assert.Equal(t, mediator.EventKindFailure, notifications[1].Kind())
}

func Test_NotificationCollector_ReturnsCopy(t *testing.T) {
	// arrange
	collector := mediator.NewNotificationCollector()
	collector.Add("Key", "Value")

	// act
	notifications := collector.Notifications()
	notifications[0].Value = "changed"

	// assert
	assert.Equal(t, "Value", collector.Notifications()[0].Value)
}

func Test_NotificationCollector_IgnoresOtherMessages(t *testing.T) {
	collector := mediator.NewNotificationCollector()

	require.NoError(t, collector.Receive(context.Background(), newWidgetRenamed("a", "b")))

	assert.False(t, collector.HasNotifications())
}

func Test_NotificationCollector_ConcurrentAdd(t *testing.T) {
	// arrange
	collector := mediator.NewNotificationCollector()
	wg := sync.WaitGroup{}

	// act
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			collector.Add("Key", "Value")
		}()
	}
	wg.Wait()

	// assert
	assert.Len(t, collector.Notifications(), 50)
}
