// Package common defines shared constants and sentinel errors used across
// GamingClub components. Callers should use errors.Is / errors.As to match
// these values.
package common

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// ErrAuth is the umbrella for every authentication failure. The concrete
	// errors below wrap it so callers can render one generic message.
	ErrAuth = errors.New("authentication failed")

	ErrInvalidCredentials = fmt.Errorf("%w: invalid username or password", ErrAuth)
	ErrLockedOut          = fmt.Errorf("%w: too many failed attempts, try again in 15 minutes", ErrAuth)

	// Session/token errors.
	ErrInvalidToken   = errors.New("invalid token")
	ErrSessionExpired = errors.New("session expired")
	ErrForbidden      = errors.New("forbidden")

	// Checkout errors.
	ErrEmptyCart       = errors.New("cart is empty")
	ErrPaymentDeclined = errors.New("payment declined by the bank, try another payment method")
	ErrWrongStep       = errors.New("operation not allowed at the current checkout step")
)

// FieldError describes a single invalid input field.
type FieldError struct {
	Field   string
	Message string
}

// ValidationError is returned when user input fails validation. It carries
// one message per offending field so a renderer can show them inline.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError builds a ValidationError from a field -> message map.
// Fields are sorted by name so the error text is stable.
func NewValidationError(fields map[string]string) *ValidationError {
	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	ve := &ValidationError{Fields: make([]FieldError, 0, len(names))}
	for _, name := range names {
		ve.Fields = append(ve.Fields, FieldError{Field: name, Message: fields[name]})
	}
	return ve
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

// Message returns the message for field, or "" when the field is valid.
func (e *ValidationError) Message(field string) string {
	for _, f := range e.Fields {
		if f.Field == field {
			return f.Message
		}
	}
	return ""
}
