package validation

import (
	"errors"
	"fmt"
	"strings"
	"sync"

	"github.com/go-playground/validator/v10"
)

const (
	tagRequired = "required"
	tagMax      = "max"
	tagOneOf    = "oneof"
)

var (
	engineOnce sync.Once
	engine     *validator.Validate
)

// primitives returns the shared go-playground validator, which caches parsed tags and is safe for concurrent use.
func primitives() *validator.Validate {
	engineOnce.Do(func() {
		engine = validator.New(validator.WithRequiredStructEnabled())
	})

	return engine
}

// Selector extracts the value of one property from the validated target.
type Selector[T any] func(target T) any

// Validator holds the declarative rule set for one target type, typically one Command type.
//
// Rules are evaluated in declaration order. Within a rule, evaluation stops at the first failing check,
// so a missing value produces one "required" violation instead of a cascade of follow-up violations.
type Validator[T any] struct {
	rules []*RuleBuilder[T]
}

// For starts an empty rule set for T.
func For[T any]() *Validator[T] {
	return &Validator[T]{}
}

// Rule declares a new rule for the property returned by selector.
// The property name is used as the Violation key and inside the default messages.
func (v *Validator[T]) Rule(property string, selector Selector[T]) *RuleBuilder[T] {
	rule := &RuleBuilder[T]{
		property: property,
		selector: selector,
	}

	v.rules = append(v.rules, rule)

	return rule
}

// Validate runs every rule against target. It never mutates target and has no side effects,
// so validating the same value twice yields an equal Result.
func (v *Validator[T]) Validate(target T) Result {
	violations := make([]Violation, 0)

	for _, rule := range v.rules {
		if violation, failed := rule.evaluate(target); failed {
			violations = append(violations, violation)
		}
	}

	return Result{violations: violations}
}

/***** RuleBuilder *****/

type check[T any] struct {
	tag       string
	predicate func(target T) bool
	message   string
}

// RuleBuilder collects the checks for one property.
type RuleBuilder[T any] struct {
	property string
	selector Selector[T]
	checks   []check[T]
}

// Required fails for empty strings, nil pointers, nil slices and zero values.
func (r *RuleBuilder[T]) Required() *RuleBuilder[T] {
	return r.addTag(tagRequired, fmt.Sprintf("Please ensure you have entered the %s", r.property))
}

// MaxLength fails when the value has more than n characters (or elements for slices).
func (r *RuleBuilder[T]) MaxLength(n int) *RuleBuilder[T] {
	return r.addTag(
		fmt.Sprintf("%s=%d", tagMax, n),
		fmt.Sprintf("%s must not exceed %d characters", r.property, n),
	)
}

// OneOf fails when the value is not one of the allowed values. Allowed values must not contain spaces.
func (r *RuleBuilder[T]) OneOf(allowed ...string) *RuleBuilder[T] {
	return r.addTag(
		fmt.Sprintf("%s=%s", tagOneOf, strings.Join(allowed, " ")),
		fmt.Sprintf("%s must be one of [%s]", r.property, strings.Join(allowed, ", ")),
	)
}

// Must adds a check on the whole target. It fails when predicate returns false.
func (r *RuleBuilder[T]) Must(predicate func(target T) bool, message string) *RuleBuilder[T] {
	r.checks = append(r.checks, check[T]{predicate: predicate, message: message})
	return r
}

// WithMessage replaces the message of the most recently added check.
func (r *RuleBuilder[T]) WithMessage(message string) *RuleBuilder[T] {
	if len(r.checks) > 0 {
		r.checks[len(r.checks)-1].message = message
	}

	return r
}

func (r *RuleBuilder[T]) addTag(tag string, message string) *RuleBuilder[T] {
	r.checks = append(r.checks, check[T]{tag: tag, message: message})
	return r
}

func (r *RuleBuilder[T]) evaluate(target T) (Violation, bool) {
	for _, c := range r.checks {
		if c.predicate != nil {
			if !c.predicate(target) {
				return Violation{Property: r.property, Message: c.message}, true
			}

			continue
		}

		if err := primitives().Var(r.selector(target), c.tag); err != nil {
			return Violation{Property: r.property, Message: messageFor(err, c.message)}, true
		}
	}

	return Violation{}, false
}

// messageFor keeps the rule's message for regular check failures and surfaces misconfigured tags verbatim.
func messageFor(err error, message string) string {
	var invalid *validator.InvalidValidationError
	if errors.As(err, &invalid) {
		return invalid.Error()
	}

	return message
}
