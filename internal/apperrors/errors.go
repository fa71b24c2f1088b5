// Package apperrors defines the closed domain error taxonomy and its
// mapping to HTTP-shaped responses.
package apperrors

import (
	"errors"
	"net/http"
)

// Kind classifies a domain error. The set is closed: every kind has a
// fixed status/code pair in the dictionary below.
type Kind int

const (
	// KindValidation covers missing or invalid request input.
	KindValidation Kind = iota
	// KindNotFound covers operations targeting a record that does not exist.
	KindNotFound
	// KindExistingItem covers create attempts for an id that already exists.
	KindExistingItem
	// KindSystem covers unrecovered backend or system failures.
	KindSystem
)

// String returns the kind name for logging.
func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindExistingItem:
		return "existing_item"
	case KindSystem:
		return "system"
	default:
		return "unknown"
	}
}

// Error is a domain error: a kind plus a human-readable message. It
// carries no other state.
type Error struct {
	Kind    Kind
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return e.Message
}

// Is matches two domain errors by kind, so errors.Is(err, Validation(""))
// style checks work regardless of message.
func (e *Error) Is(target error) bool {
	var appErr *Error
	if !errors.As(target, &appErr) {
		return false
	}
	return appErr.Kind == e.Kind
}

// Validation creates a validation error.
func Validation(message string) *Error {
	return &Error{Kind: KindValidation, Message: message}
}

// NotFound creates a not-found error.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// ExistingItem creates an already-exists error.
func ExistingItem(message string) *Error {
	return &Error{Kind: KindExistingItem, Message: message}
}

// System creates a system error.
func System(message string) *Error {
	return &Error{Kind: KindSystem, Message: message}
}

// HTTPMapping is the response status and code for an error kind.
type HTTPMapping struct {
	Status int
	Code   string
}

// dictionary is the fixed kind -> status/code lookup table.
var dictionary = map[Kind]HTTPMapping{
	KindValidation:   {Status: http.StatusBadRequest, Code: "validation_error"},
	KindExistingItem: {Status: http.StatusBadRequest, Code: "database_error"},
	KindNotFound:     {Status: http.StatusNotFound, Code: "not_found"},
	KindSystem:       {Status: http.StatusInternalServerError, Code: "internal_server_error"},
}

// Response is the JSON error body returned to clients.
type Response struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ToResponse maps any error to its HTTP status and response body. Domain
// errors use the dictionary; anything else collapses to a 500 with no
// internal detail exposed.
func ToResponse(err error) (int, Response) {
	var appErr *Error
	if errors.As(err, &appErr) {
		if m, ok := dictionary[appErr.Kind]; ok {
			return m.Status, Response{Code: m.Code, Message: appErr.Message}
		}
	}

	return http.StatusInternalServerError, Response{
		Code:    "internal_server_error",
		Message: "unknown error",
	}
}
