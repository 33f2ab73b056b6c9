// Package shell wires the administration packages for one request.
//
// Every request gets its own Scope: a fresh Bus, NotificationCollector and UnitOfWork, the SQL
// repositories bound to that UnitOfWork, and all command handlers registered on the Bus. Nothing
// in a Scope is shared with other requests except the Database and the audit trail subscriber.
package shell
