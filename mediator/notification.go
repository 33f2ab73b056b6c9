package mediator

import (
	"context"
	"sync"
	"time"
)

// NotificationMessageType is the message type of every Notification.
const NotificationMessageType = "DomainNotification"

// Notification is a business-rule or validation rejection: which aspect failed and why.
type Notification struct {
	Key       string    `json:"key"`
	Value     string    `json:"value"`
	Timestamp time.Time `json:"timestamp"`
}

// NewNotification builds a Notification stamped with the current time.
func NewNotification(key, value string) Notification {
	return Notification{
		Key:       key,
		Value:     value,
		Timestamp: ToOccurredAt(time.Now()),
	}
}

// MessageType implements Message.
func (n Notification) MessageType() string {
	return NotificationMessageType
}

// Kind returns EventKindFailure.
func (n Notification) Kind() EventKind {
	return EventKindFailure
}

// NotificationCollector accumulates the Notifications of one logical operation in arrival order.
//
// It subscribes to NotificationMessageType on the operation's Bus, and the orchestration adds
// validation violations directly. A collector must not be reused across operations.
type NotificationCollector struct {
	mu            sync.Mutex
	notifications []Notification
}

// NewNotificationCollector creates an empty collector.
func NewNotificationCollector() *NotificationCollector {
	return &NotificationCollector{notifications: make([]Notification, 0)}
}

// Add appends a Notification built from key and message.
func (c *NotificationCollector) Add(key, message string) {
	c.append(NewNotification(key, message))
}

// HasNotifications reports whether at least one Notification was collected.
func (c *NotificationCollector) HasNotifications() bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	return len(c.notifications) > 0
}

// Notifications returns a copy of the collected Notifications in arrival order.
func (c *NotificationCollector) Notifications() []Notification {
	c.mu.Lock()
	defer c.mu.Unlock()

	notifications := make([]Notification, len(c.notifications))
	copy(notifications, c.notifications)

	return notifications
}

// Receive implements Subscriber. Messages other than Notifications are ignored.
func (c *NotificationCollector) Receive(_ context.Context, message Message) error {
	switch n := message.(type) {
	case Notification:
		c.append(n)
	case *Notification:
		if n != nil {
			c.append(*n)
		}
	}

	return nil
}

func (c *NotificationCollector) append(n Notification) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.notifications = append(c.notifications, n)
}
