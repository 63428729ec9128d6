// Copyright (c) 2026 Informatics Learning Center. All rights reserved.

// Package validate provides a chainable Validator that collects field-level
// errors before returning a single [apperr.Error].
//
// # Architecture
//
// This package is used exclusively in the service layer — never in handlers or
// storage. It ensures that business logic only operates on semantically valid data.
package validate

import (
	"fmt"
	"net/mail"
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/informatics-lc/backend/internal/platform/apperr"
)

var (
	// credentialRegex matches certificate credential numbers such as
	// "CRS0001-U0001": a program-type prefix, a program serial, and a
	// user serial.
	credentialRegex = regexp.MustCompile(`^(CRS|SMN|CMP|WRS)\d{4}-U\d{4}$`)

	// virtualAccountRegex matches the 16-18 digit virtual account numbers
	// issued on invoices.
	virtualAccountRegex = regexp.MustCompile(`^\d{16,18}$`)

	// ErrInvalidJSON is returned when the request body cannot be decoded.
	ErrInvalidJSON = apperr.Validation(apperr.Detail{
		Message: "Request body must be valid JSON",
		Context: apperr.Context{Key: "body", Value: nil},
	})
)

// Validator collects field-level validation errors via a fluent, chainable API.
//
// # Concurrency
//
// Validator is not safe for concurrent use. A new instance must be created
// for every request/operation.
type Validator struct {
	details []apperr.Detail
}

// Required fails if the trimmed value is empty.
func (v *Validator) Required(field, value string) *Validator {
	if strings.TrimSpace(value) == "" {
		v.add(field, value, fmt.Sprintf("%q is required", field))
	}
	return v
}

// MaxLen fails if the Unicode character count exceeds max.
func (v *Validator) MaxLen(field, value string, max int) *Validator {
	if utf8.RuneCountInString(value) > max {
		v.add(field, value, fmt.Sprintf("%q must be at most %d characters", field, max))
	}
	return v
}

// MinLen fails if the Unicode character count is below min.
func (v *Validator) MinLen(field, value string, min int) *Validator {
	if utf8.RuneCountInString(value) < min {
		v.add(field, value, fmt.Sprintf("%q must be at least %d characters", field, min))
	}
	return v
}

// Range fails if the value is outside the [min, max] range (inclusive).
func (v *Validator) Range(field string, value, min, max int) *Validator {
	if value < min || value > max {
		v.add(field, value, fmt.Sprintf("%q must be between %d and %d", field, min, max))
	}
	return v
}

// Positive fails if the value is not a positive integer.
func (v *Validator) Positive(field string, value int) *Validator {
	if value <= 0 {
		v.add(field, value, fmt.Sprintf("%q must be a positive number", field))
	}
	return v
}

// Email fails if the value is not a valid RFC 5322 email address.
func (v *Validator) Email(field, value string) *Validator {
	if _, err := mail.ParseAddress(value); err != nil {
		v.add(field, value, fmt.Sprintf("%q must be a valid email address", field))
	}
	return v
}

// Credential fails if the value is not a valid certificate credential number.
func (v *Validator) Credential(field, value string) *Validator {
	if !credentialRegex.MatchString(value) {
		v.add(field, value, fmt.Sprintf("%q must be a valid credential number", field))
	}
	return v
}

// VirtualAccount fails if the value is not a 16-18 digit account number.
func (v *Validator) VirtualAccount(field, value string) *Validator {
	if !virtualAccountRegex.MatchString(value) {
		v.add(field, value, fmt.Sprintf("%q must be a 16-18 digit account number", field))
	}
	return v
}

// OneOf fails if the value is not in the allowed set of strings.
func (v *Validator) OneOf(field, value string, allowed ...string) *Validator {
	for _, candidate := range allowed {
		if value == candidate {
			return v
		}
	}
	v.add(field, value, fmt.Sprintf("%q must be one of: %s", field, strings.Join(allowed, ", ")))
	return v
}

// Custom adds a failure with a custom message if the condition is true.
//
// # Example
//
//	v.Custom("progress", progress < 0 || progress > 100, progress, "\"progress\" must be between 0 and 100")
func (v *Validator) Custom(field string, failed bool, value any, message string) *Validator {
	if failed {
		v.add(field, value, message)
	}
	return v
}

// Err returns a 400 [apperr.Error] if any rules failed, or nil if all passed.
//
// This is the only output method — call it at the end of the chain.
func (v *Validator) Err() error {
	if len(v.details) == 0 {
		return nil
	}
	return apperr.Validation(v.details...)
}

// HasErrors reports whether any validation rule has failed so far.
func (v *Validator) HasErrors() bool {
	return len(v.details) > 0
}

// add appends a [apperr.Detail] carrying the offending field and value.
func (v *Validator) add(field string, value any, message string) {
	v.details = append(v.details, apperr.Detail{
		Message: message,
		Context: apperr.Context{Key: field, Value: value},
	})
}
