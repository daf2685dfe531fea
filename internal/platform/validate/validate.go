// Copyright (c) 2026 Smile. All rights reserved.

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.AppError].
//
// # Architecture
//
// Handlers validate request payloads through this package before calling the
// service layer, so business logic only operates on semantically valid data.
// The collected failures surface to clients as a field->message map in the
// response envelope's data slot.
package validate

import (
	"fmt"
	"net/mail"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/smilehq/smile-api/internal/platform/apperr"
)

// ValidationMessage is the envelope message paired with every field map.
const ValidationMessage = "Provided arguments are invalid, set data for details"

// ErrInvalidJSON is returned when the request body cannot be decoded.
var ErrInvalidJSON = apperr.ValidationFailed("Invalid JSON payload", nil)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// The first failure recorded for a field wins; later rules on the same field
// are still evaluated but do not overwrite the message.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	fields map[string]string
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, field+" is required")
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, fmt.Sprintf("%s length must be at most %d", field, max))
	}
	return v
}

// LenBetween fails if the Unicode character count is outside [min, max].
func (v *Validator) LenBetween(field, value string, min, max int) *Validator {
	length := utf8.RuneCountInString(value)
	if length < min || length > max {
		v.add(field, fmt.Sprintf("%s length must between %d and %d", field, min, max))
	}
	return v
}

// Email fails if the value is not a valid RFC 5322 email address.
func (v *Validator) Email(field, value string) *Validator {
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(field, "email format is invalid")
	}
	return v
}

// Password enforces the account password strength rule:
// at least one digit, one lower-case and one upper-case letter, no
// whitespace, and 8-20 characters total.
//
// Go's RE2 engine has no lookahead, so the rule is expressed as rune-class
// scans rather than the usual (?=...) regex.
func (v *Validator) Password(field, value string) *Validator {
	length := utf8.RuneCountInString(value)
	if length < 8 || length > 20 {
		v.add(field, passwordRuleMessage)
		return v
	}

	var hasDigit, hasLower, hasUpper bool
	for _, r := range value {
		switch {
		case unicode.IsSpace(r):
			v.add(field, passwordRuleMessage)
			return v
		case unicode.IsDigit(r):
			hasDigit = true
		case unicode.IsLower(r):
			hasLower = true
		case unicode.IsUpper(r):
			hasUpper = true
		}
	}

	if !hasDigit || !hasLower || !hasUpper {
		v.add(field, passwordRuleMessage)
	}
	return v
}

const passwordRuleMessage = "Password is not strong enough; " +
	"1. At least a number; 2. At least a lower letter; 3. At least a upper letter; " +
	"4. No spaces; 5. At least 8 characters, at most 20 characters"

// Custom adds a failure with a custom message if the condition is true.
func (v *Validator) Custom(field string, failed bool, message string) *Validator {
	if failed {
		v.add(field, message)
	}
	return v
}

// Err returns a VALIDATION_FAILED [apperr.AppError] if any rules failed,
// or nil if all rules passed.
//
// This is the only output method — call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.fields) == 0 {
		return nil
	}
	return apperr.ValidationFailed(ValidationMessage, v.fields)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.fields) > 0
}

// add records the first failure for a field.
func (v *Validator) add(field, message string) {
	if v.fields == nil {
		v.fields = make(map[string]string)
	}
	if _, exists := v.fields[field]; !exists {
		v.fields[field] = message
	}
}
