// Package apiresource administers API resources and the secrets clients use to introspect them.
//
// Removing a secret is a command dispatched through a mediator.Bus and handled with
// mediator.Process; ApiSecretRemoved is raised after a successful commit.
package apiresource
