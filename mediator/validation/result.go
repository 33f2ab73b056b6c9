package validation

// Violation describes one failed rule: which property failed and a human-readable message.
type Violation struct {
	Property string
	Message  string
}

// Result is the outcome of validating one target.
// It should only be constructed by Validator.Validate or the Valid/Invalid factories.
type Result struct {
	violations []Violation
}

// Valid returns a Result without violations.
func Valid() Result {
	return Result{}
}

// Invalid returns a Result carrying the given violations.
func Invalid(violations ...Violation) Result {
	return Result{violations: append([]Violation(nil), violations...)}
}

// IsValid reports whether all rules passed.
func (r Result) IsValid() bool {
	return len(r.violations) == 0
}

// Violations returns a copy of the violations in rule declaration order.
func (r Result) Violations() []Violation {
	return append([]Violation(nil), r.violations...)
}
