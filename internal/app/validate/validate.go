// Package validate holds the field-level validation primitives shared by the
// user and post payload validators. Validation is pure: it never touches the
// store, because only the store can answer "is this email still unique" or
// "does this user still exist".
package validate

import (
	"math"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
)

var v = validator.New()

// FieldError describes one violated rule on one payload field.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Errors collects every violation found in a payload, in field order.
type Errors []FieldError

func (e *Errors) Add(field, message string) {
	*e = append(*e, FieldError{Field: field, Message: message})
}

// String extracts payload[key] as a string.
// present is false when the key is absent; ok is false when the value is
// present but not a string.
func String(payload map[string]any, key string) (val string, present, ok bool) {
	raw, present := payload[key]
	if !present {
		return "", false, false
	}
	s, ok := raw.(string)
	return s, true, ok
}

// Int extracts payload[key] as an integral JSON number. encoding/json decodes
// numbers as float64; fractional values are rejected rather than truncated.
func Int(payload map[string]any, key string) (val int, present, ok bool) {
	raw, present := payload[key]
	if !present {
		return 0, false, false
	}
	f, ok := raw.(float64)
	if !ok || f != math.Trunc(f) {
		return 0, true, false
	}
	return int(f), true, true
}

// UUID extracts payload[key] as a UUID string.
func UUID(payload map[string]any, key string) (val uuid.UUID, present, ok bool) {
	s, present, ok := String(payload, key)
	if !present || !ok {
		return uuid.UUID{}, present, false
	}
	id, err := uuid.Parse(s)
	if err != nil {
		return uuid.UUID{}, true, false
	}
	return id, true, true
}

// Email reports whether s has RFC-shaped email syntax.
func Email(s string) bool {
	return v.Var(s, "email") == nil
}
