// Copyright (c) 2026 Smile. All rights reserved.

package validate_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/smilehq/smile-api/internal/platform/apperr"
	"github.com/smilehq/smile-api/internal/platform/validate"
)

/*
TestValidator_ChainCollectsFields verifies that multiple failing rules
produce one error carrying a field->message map, first failure per field.
*/
func TestValidator_ChainCollectsFields(t *testing.T) {
	validator := &validate.Validator{}
	validator.Required("username", "").
		LenBetween("username", "", 3, 16).
		Required("email", "").
		Email("email", "")

	err := validator.Err()
	require.Error(t, err)

	appError := apperr.As(err)
	require.NotNil(t, appError)
	assert.Equal(t, validate.ValidationMessage, appError.Message)

	// First failure per field wins: "is required", not the length message.
	assert.Equal(t, "username is required", appError.Fields["username"])
	assert.Contains(t, appError.Fields, "email")
	assert.Len(t, appError.Fields, 2)
}

/*
TestValidator_PassingChain verifies a fully valid chain yields nil.
*/
func TestValidator_PassingChain(t *testing.T) {
	validator := &validate.Validator{}
	validator.Required("username", "admin").
		LenBetween("username", "admin", 3, 16).
		Email("email", "admin@smile.app").
		Password("password", "PassW0rd")

	assert.NoError(t, validator.Err())
	assert.False(t, validator.HasErrors())
}

/*
TestValidator_Password exercises the password strength rule across its five
sub-rules.
*/
func TestValidator_Password(t *testing.T) {
	tests := []struct {
		name     string
		password string
		valid    bool
	}{
		{name: "valid minimal", password: "PassW0rd", valid: true},
		{name: "valid long", password: "Aa1aaaaaaaaaaaaaaaaa", valid: true},
		{name: "too short", password: "Aa1aaaa", valid: false},
		{name: "too long", password: "Aa1aaaaaaaaaaaaaaaaaa", valid: false},
		{name: "no digit", password: "Passwords", valid: false},
		{name: "no upper", password: "passw0rds", valid: false},
		{name: "no lower", password: "PASSW0RDS", valid: false},
		{name: "contains space", password: "Pass W0rd", valid: false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			validator := &validate.Validator{}
			validator.Password("password", tc.password)
			if tc.valid {
				assert.NoError(t, validator.Err())
			} else {
				assert.Error(t, validator.Err())
			}
		})
	}
}

/*
TestValidator_Email verifies address parsing accepts RFC-style addresses and
rejects the obvious malformed inputs.
*/
func TestValidator_Email(t *testing.T) {
	valid := &validate.Validator{}
	valid.Email("email", "user@example.com")
	assert.NoError(t, valid.Err())

	invalid := &validate.Validator{}
	invalid.Email("email", "not-an-email")
	assert.Error(t, invalid.Err())
}

/*
TestValidator_Custom verifies the escape hatch records its message verbatim.
*/
func TestValidator_Custom(t *testing.T) {
	validator := &validate.Validator{}
	validator.Custom("id", true, "must be an integer")

	appError := apperr.As(validator.Err())
	require.NotNil(t, appError)
	assert.Equal(t, "must be an integer", appError.Fields["id"])
}
