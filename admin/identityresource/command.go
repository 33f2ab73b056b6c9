package identityresource

import (
	"github.com/AntonStoeckl/command-mediator-go/mediator/validation"
)

const (
	registerCommandType = "RegisterIdentityResource"
	updateCommandType   = "UpdateIdentityResource"
	removeCommandType   = "RemoveIdentityResource"

	maxNameLength        = 200
	maxDisplayNameLength = 200
	maxDescriptionLength = 1000
)

// RegisterIdentityResource represents the intent to register a new identity resource.
type RegisterIdentityResource struct {
	Resource IdentityResource
}

// UpdateIdentityResource represents the intent to replace the identity resource named OldName,
// including its user claims. Resource.Name may differ from OldName to rename it.
type UpdateIdentityResource struct {
	OldName  string
	Resource IdentityResource
}

// RemoveIdentityResource represents the intent to remove the identity resource named Resource.Name.
type RemoveIdentityResource struct {
	Resource IdentityResource
}

func resourceRules[C any](v *validation.Validator[C], resource func(C) IdentityResource) {
	v.Rule("Resource.Name", func(c C) any { return resource(c).Name }).
		Required().
		MaxLength(maxNameLength)

	v.Rule("Resource.DisplayName", func(c C) any { return resource(c).DisplayName }).
		MaxLength(maxDisplayNameLength)

	v.Rule("Resource.Description", func(c C) any { return resource(c).Description }).
		MaxLength(maxDescriptionLength)

	v.Rule("Resource.UserClaims", func(c C) any { return resource(c).UserClaims }).
		Must(func(c C) bool { return noBlankClaims(resource(c).UserClaims) }, "User claims must not be empty")
}

func noBlankClaims(claims []string) bool {
	for _, claim := range claims {
		if claim == "" {
			return false
		}
	}

	return true
}

var registerRules = func() *validation.Validator[RegisterIdentityResource] {
	v := validation.For[RegisterIdentityResource]()
	resourceRules(v, func(c RegisterIdentityResource) IdentityResource { return c.Resource })
	return v
}()

var updateRules = func() *validation.Validator[UpdateIdentityResource] {
	v := validation.For[UpdateIdentityResource]()
	v.Rule("OldName", func(c UpdateIdentityResource) any { return c.OldName }).
		Required().
		WithMessage("Please ensure you have entered the name of the resource to update")
	resourceRules(v, func(c UpdateIdentityResource) IdentityResource { return c.Resource })
	return v
}()

var removeRules = func() *validation.Validator[RemoveIdentityResource] {
	v := validation.For[RemoveIdentityResource]()
	v.Rule("Resource.Name", func(c RemoveIdentityResource) any { return c.Resource.Name }).
		Required()
	return v
}()

// CommandType implements mediator.Command.
func (c RegisterIdentityResource) CommandType() string { return registerCommandType }

// Validate implements mediator.Command.
func (c RegisterIdentityResource) Validate() validation.Result { return registerRules.Validate(c) }

// CommandType implements mediator.Command.
func (c UpdateIdentityResource) CommandType() string { return updateCommandType }

// Validate implements mediator.Command.
func (c UpdateIdentityResource) Validate() validation.Result { return updateRules.Validate(c) }

// CommandType implements mediator.Command.
func (c RemoveIdentityResource) CommandType() string { return removeCommandType }

// Validate implements mediator.Command.
func (c RemoveIdentityResource) Validate() validation.Result { return removeRules.Validate(c) }
