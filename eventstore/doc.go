// Package eventstore records every domain event raised on the mediator bus as an immutable
// StoredEvent, forming the audit trail of the system.
//
// The EventStore subscribes to all domain events. For each event it serializes the payload
// without null-valued fields, derives a human-readable message from the type name when the event
// has none, resolves who caused it and from where through a SystemUser, and appends the result
// through a Repository:
//
//	store, err := eventstore.NewEventStore(repository, identity.ContextProvider{})
//	_ = bus.SubscribeToDomainEvents(store)
//
// Audit writes happen after the business change was committed. A failed write is reported to the
// bus, which logs it; it never undoes the business change.
package eventstore
