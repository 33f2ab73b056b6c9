package apiresource

import (
	"time"

	"github.com/google/uuid"
)

// Secret types supported for API resources.
const (
	SecretTypeSharedSecret   = "SharedSecret"
	SecretTypeX509Thumbprint = "X509Thumbprint"
)

// ApiResource is a protected API together with its secrets.
type ApiResource struct {
	ID          uuid.UUID
	Name        string
	DisplayName string
	Description string
	Enabled     bool
	Secrets     []Secret
	CreatedAt   time.Time
}

// Secret authenticates an API resource against the token introspection endpoint.
// Expiration is nil for secrets that never expire.
type Secret struct {
	ID          uuid.UUID
	Type        string
	Value       string
	Description string
	Expiration  *time.Time
	CreatedAt   time.Time
}

// FindSecret returns the secret with the given type and value, or nil.
func (r ApiResource) FindSecret(secretType string, value string) *Secret {
	for i := range r.Secrets {
		if r.Secrets[i].Type == secretType && r.Secrets[i].Value == value {
			return &r.Secrets[i]
		}
	}

	return nil
}
