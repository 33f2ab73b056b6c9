package persistedgrant

import (
	"github.com/AntonStoeckl/command-mediator-go/mediator/validation"
)

const removeCommandType = "RemovePersistedGrant"

// RemovePersistedGrant represents the intent to revoke the grant with the given key.
type RemovePersistedGrant struct {
	Key string
}

var removeRules = func() *validation.Validator[RemovePersistedGrant] {
	v := validation.For[RemovePersistedGrant]()
	v.Rule("Key", func(c RemovePersistedGrant) any { return c.Key }).
		Required().
		MaxLength(200)
	return v
}()

// CommandType implements mediator.Command.
func (c RemovePersistedGrant) CommandType() string { return removeCommandType }

// Validate implements mediator.Command.
func (c RemovePersistedGrant) Validate() validation.Result { return removeRules.Validate(c) }
