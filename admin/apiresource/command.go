package apiresource

import (
	"github.com/AntonStoeckl/command-mediator-go/mediator/validation"
)

const (
	removeSecretCommandType = "RemoveApiSecret"

	maxResourceNameLength = 200
	maxSecretValueLength  = 4000
)

// RemoveApiSecret represents the intent to remove one secret from the API resource named ResourceName.
type RemoveApiSecret struct {
	ResourceName string
	Type         string
	Value        string
}

var removeSecretRules = func() *validation.Validator[RemoveApiSecret] {
	v := validation.For[RemoveApiSecret]()
	v.Rule("ResourceName", func(c RemoveApiSecret) any { return c.ResourceName }).
		Required().
		WithMessage("Please ensure you have entered the Api Resource name").
		MaxLength(maxResourceNameLength)
	v.Rule("Type", func(c RemoveApiSecret) any { return c.Type }).
		Required().
		OneOf(SecretTypeSharedSecret, SecretTypeX509Thumbprint)
	v.Rule("Value", func(c RemoveApiSecret) any { return c.Value }).
		Required().
		MaxLength(maxSecretValueLength)
	return v
}()

// CommandType implements mediator.Command.
func (c RemoveApiSecret) CommandType() string { return removeSecretCommandType }

// Validate implements mediator.Command.
func (c RemoveApiSecret) Validate() validation.Result { return removeSecretRules.Validate(c) }
