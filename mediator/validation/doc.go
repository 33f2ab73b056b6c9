// Package validation provides declarative, side-effect-free rule sets for commands.
//
// A rule set is declared once per command type and evaluated on demand:
//
//	var registerRules = func() *validation.Validator[RegisterIdentityResource] {
//		v := validation.For[RegisterIdentityResource]()
//		v.Rule("Name", func(c RegisterIdentityResource) any { return c.Resource.Name }).
//			Required().
//			MaxLength(200)
//		return v
//	}()
//
//	result := registerRules.Validate(cmd)
//	if !result.IsValid() {
//		// result.Violations()
//	}
//
// Primitive checks (required, max, oneof) are delegated to github.com/go-playground/validator/v10.
// Validators only look at the target's own fields, never at external state.
package validation
