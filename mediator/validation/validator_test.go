package validation_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/AntonStoeckl/command-mediator-go/mediator/validation"
)

type secretInput struct {
	ResourceName string
	Type         string
	Value        string
	Claims       []string
}

func secretRules() *validation.Validator[secretInput] {
	v := validation.For[secretInput]()
	v.Rule("ResourceName", func(in secretInput) any { return in.ResourceName }).Required().MaxLength(10)
	v.Rule("Type", func(in secretInput) any { return in.Type }).Required().OneOf("SharedSecret", "X509Thumbprint")
	v.Rule("Value", func(in secretInput) any { return in.Value }).
		Required().
		Must(func(in secretInput) bool { return !strings.Contains(in.Value, " ") }, "Value must not contain spaces")

	return v
}

func Test_Validator_Validate_Valid(t *testing.T) {
	// arrange
	input := secretInput{ResourceName: "orders", Type: "SharedSecret", Value: "s3cr3t"}

	// act
	result := secretRules().Validate(input)

	// assert
	assert.True(t, result.IsValid())
	assert.Empty(t, result.Violations())
}

func Test_Validator_Validate_Violations(t *testing.T) {
	testCases := []struct {
		name             string
		input            secretInput
		expectedProperty string
		expectedMessage  string
	}{
		{
			name:             "missing resource name",
			input:            secretInput{Type: "SharedSecret", Value: "v"},
			expectedProperty: "ResourceName",
			expectedMessage:  "Please ensure you have entered the ResourceName",
		},
		{
			name:             "resource name too long",
			input:            secretInput{ResourceName: "a-very-long-name", Type: "SharedSecret", Value: "v"},
			expectedProperty: "ResourceName",
			expectedMessage:  "ResourceName must not exceed 10 characters",
		},
		{
			name:             "unknown type",
			input:            secretInput{ResourceName: "orders", Type: "Password", Value: "v"},
			expectedProperty: "Type",
			expectedMessage:  "Type must be one of [SharedSecret, X509Thumbprint]",
		},
		{
			name:             "custom predicate",
			input:            secretInput{ResourceName: "orders", Type: "SharedSecret", Value: "a b"},
			expectedProperty: "Value",
			expectedMessage:  "Value must not contain spaces",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			// act
			result := secretRules().Validate(tc.input)

			// assert
			require.False(t, result.IsValid())
			require.Len(t, result.Violations(), 1)
			assert.Equal(t, tc.expectedProperty, result.Violations()[0].Property)
			assert.Equal(t, tc.expectedMessage, result.Violations()[0].Message)
		})
	}
}

func Test_Validator_Validate_StopsAtFirstFailingCheckPerRule(t *testing.T) {
	// act
	result := secretRules().Validate(secretInput{})

	// assert
	violations := result.Violations()
	require.Len(t, violations, 3)
	assert.Equal(t, "ResourceName", violations[0].Property)
	assert.Equal(t, "Type", violations[1].Property)
	assert.Equal(t, "Value", violations[2].Property)
}

func Test_Validator_Validate_IsIdempotent(t *testing.T) {
	// arrange
	input := secretInput{ResourceName: "a-very-long-name"}
	rules := secretRules()

	// act
	first := rules.Validate(input)
	second := rules.Validate(input)

	// assert
	assert.Equal(t, first, second)
	assert.Equal(t, secretInput{ResourceName: "a-very-long-name"}, input)
}

func Test_Validator_Required_NilSlice(t *testing.T) {
	// arrange
	v := validation.For[secretInput]()
	v.Rule("Claims", func(in secretInput) any { return in.Claims }).Required().WithMessage("Claims are required")

	// act
	missing := v.Validate(secretInput{})
	present := v.Validate(secretInput{Claims: []string{"email"}})

	// assert
	require.Len(t, missing.Violations(), 1)
	assert.Equal(t, "Claims are required", missing.Violations()[0].Message)
	assert.True(t, present.IsValid())
}

func Test_Result_Factories(t *testing.T) {
	violation := validation.Violation{Property: "Name", Message: "missing"}

	assert.True(t, validation.Valid().IsValid())
	assert.False(t, validation.Invalid(violation).IsValid())
	assert.Equal(t, []validation.Violation{violation}, validation.Invalid(violation).Violations())
}
