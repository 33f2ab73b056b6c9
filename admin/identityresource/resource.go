package identityresource

import (
	"time"

	"github.com/google/uuid"
)

// IdentityResource is a named set of user claims.
type IdentityResource struct {
	ID                      uuid.UUID `json:"id"`
	Name                    string    `json:"name"`
	DisplayName             string    `json:"displayName,omitempty"`
	Description             string    `json:"description,omitempty"`
	Enabled                 bool      `json:"enabled"`
	Required                bool      `json:"required"`
	Emphasize               bool      `json:"emphasize"`
	ShowInDiscoveryDocument bool      `json:"showInDiscoveryDocument"`
	UserClaims              []string  `json:"userClaims,omitempty"`
	CreatedAt               time.Time `json:"createdAt"`
}

// BuildIdentityResource creates an enabled IdentityResource shown in the discovery document.
func BuildIdentityResource(name string, displayName string, userClaims ...string) IdentityResource {
	return IdentityResource{
		Name:                    name,
		DisplayName:             displayName,
		Enabled:                 true,
		ShowInDiscoveryDocument: true,
		UserClaims:              userClaims,
	}
}
