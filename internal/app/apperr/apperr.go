// Package apperr defines the application error taxonomy the HTTP adapter
// renders. Every expected failure a service can return is one of these;
// anything else is treated as internal.
package apperr

import (
	"fmt"
)

const (
	CodeValidation     = "VALIDATION_ERROR"
	CodeUserNotFound   = "USER_NOT_FOUND"
	CodePostNotFound   = "POST_NOT_FOUND"
	CodeEmailTaken     = "EMAIL_TAKEN"
	CodeUserRefInvalid = "USER_REFERENCE_INVALID"
)

// Error is an application-layer error that maps 1:1 to an HTTP status and
// response body.
type Error struct {
	Status  int
	Code    string
	Message string
	Details any
}

func (e *Error) Error() string {
	if e == nil {
		return "<nil>"
	}
	if e.Code == "" {
		return fmt.Sprintf("app error (status=%d): %s", e.Status, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Validation wraps field-level validation failures. details is rendered to
// the client as-is (a list of {field, message} entries).
func Validation(details any) *Error {
	return &Error{Status: 400, Code: CodeValidation, Message: "validation failed", Details: details}
}

// NotFound reports a missing entity of the given kind ("User" or "Post").
func NotFound(kind string) *Error {
	return &Error{Status: 404, Code: notFoundCode(kind), Message: kind + " not found"}
}

func notFoundCode(kind string) string {
	if kind == "Post" {
		return CodePostNotFound
	}
	return CodeUserNotFound
}

// EmailConflict reports a unique-email constraint violation. The original
// contract renders conflicts as 400, not 409.
func EmailConflict() *Error {
	return &Error{Status: 400, Code: CodeEmailTaken, Message: "a user with this email already exists"}
}

// InvalidUserReference reports a post whose userId no longer references an
// existing user. Only reachable when the user was deleted concurrently.
func InvalidUserReference() *Error {
	return &Error{Status: 400, Code: CodeUserRefInvalid, Message: "referenced user does not exist"}
}
