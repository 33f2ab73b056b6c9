// Package identity carries who issued a request, and from where, through a context.Context.
//
// The EventStore asks a SystemUser for this information when it writes an audit record.
// ContextProvider is the SystemUser that reads it back from the context of the current request.
package identity

import "context"

// AnonymousUsername is reported when no Origin or no username is attached to the context.
const AnonymousUsername = "Anonymous"

// Origin describes the caller of one request.
type Origin struct {
	Username      string
	LocalAddress  string
	RemoteAddress string
}

type originKey struct{}

// WithOrigin returns a copy of ctx carrying origin.
func WithOrigin(ctx context.Context, origin Origin) context.Context {
	return context.WithValue(ctx, originKey{}, origin)
}

// FromContext returns the Origin attached to ctx, if any.
func FromContext(ctx context.Context) (Origin, bool) {
	origin, ok := ctx.Value(originKey{}).(Origin)
	return origin, ok
}

// ContextProvider reads the Origin of the current request from the context.
// It implements eventstore.SystemUser.
type ContextProvider struct{}

// Username returns the username of the request origin or AnonymousUsername.
func (ContextProvider) Username(ctx context.Context) string {
	if origin, ok := FromContext(ctx); ok && origin.Username != "" {
		return origin.Username
	}

	return AnonymousUsername
}

// LocalIPAddress returns the local address the request was received on, empty if unknown.
func (ContextProvider) LocalIPAddress(ctx context.Context) string {
	origin, _ := FromContext(ctx)
	return origin.LocalAddress
}

// RemoteIPAddress returns the address of the caller, empty if unknown.
func (ContextProvider) RemoteIPAddress(ctx context.Context) string {
	origin, _ := FromContext(ctx)
	return origin.RemoteAddress
}
