// Package identityresource administers identity resources: named groups of user claims a client
// can request, such as "openid" or "profile".
//
// Register, update and remove are commands dispatched through a mediator.Bus. Each runs the
// validate, load, check, mutate, commit protocol of mediator.Process and raises one of the
// IdentityResource* events after a successful commit.
package identityresource
