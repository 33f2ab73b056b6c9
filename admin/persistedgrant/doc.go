// Package persistedgrant administers persisted grants: authorization codes, refresh tokens,
// reference tokens and consents stored by the token service.
//
// The query side reads grants directly from the repository. Removal is a command dispatched
// through a mediator.Bus; Service bundles both for callers.
package persistedgrant
