// Package mediator is the in-process command and event kernel.
//
// A Bus routes each Command to exactly one registered handler and broadcasts messages to
// subscribers. Handlers built with Process follow a fixed protocol:
//
//  1. validate the command; violations become Notifications and the command is rejected
//  2. load the current state by natural key
//  3. check a precondition; a violation raises one Notification on the bus
//  4. mutate through the repository, which registers statements on the UnitOfWork
//  5. commit; on success raise the domain event, otherwise raise a Notification
//
// Business rejections are reported as (false, nil) plus Notifications in the request's
// NotificationCollector. Infrastructure failures are returned as errors and never turned into
// Notifications.
//
// A Bus and its NotificationCollector belong to one request. They are cheap to build and must
// not be shared between requests:
//
//	notifications := mediator.NewNotificationCollector()
//	bus, _ := mediator.NewBus(mediator.WithLogger(logger))
//	_ = bus.Subscribe(mediator.NotificationMessageType, notifications)
//	_ = mediator.RegisterHandler(bus, handler.Register)
//
//	ok, err := bus.SendCommand(ctx, cmd)
//	if !ok && err == nil {
//		for _, n := range notifications.Notifications() { ... }
//	}
package mediator
