package models

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a domain failure
type ErrorKind string

const (
	KindValidation     ErrorKind = "validation"
	KindAuthentication ErrorKind = "authentication"
	KindAuthorization  ErrorKind = "authorization"
	KindConflict       ErrorKind = "conflict"
	KindNotFound       ErrorKind = "not_found"
)

// DomainError is returned by services when a request cannot be honoured.
// None of these are retried internally.
type DomainError struct {
	Kind    ErrorKind `json:"code"`
	Field   string    `json:"field,omitempty"`
	Message string    `json:"message"`
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Is matches any DomainError of the same kind, so errors.Is(err, ErrConflict) works
func (e *DomainError) Is(target error) bool {
	var t *DomainError
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

// Sentinels for errors.Is
var (
	ErrValidation     = &DomainError{Kind: KindValidation, Message: "invalid input"}
	ErrAuthentication = &DomainError{Kind: KindAuthentication, Message: "invalid credentials"}
	ErrAuthorization  = &DomainError{Kind: KindAuthorization, Message: "not permitted"}
	ErrConflict       = &DomainError{Kind: KindConflict, Message: "conflicting state"}
	ErrNotFound       = &DomainError{Kind: KindNotFound, Message: "not found"}
)

// NewValidationError reports malformed or out-of-range input
func NewValidationError(field, message string) *DomainError {
	return &DomainError{Kind: KindValidation, Field: field, Message: message}
}

// NewAuthenticationError reports unknown credentials
func NewAuthenticationError(message string) *DomainError {
	return &DomainError{Kind: KindAuthentication, Message: message}
}

// NewAuthorizationError reports an actor not permitted for an entity
func NewAuthorizationError(message string) *DomainError {
	return &DomainError{Kind: KindAuthorization, Message: message}
}

// NewConflictError reports a transition not valid from the current state
func NewConflictError(message string) *DomainError {
	return &DomainError{Kind: KindConflict, Message: message}
}

// NewNotFoundError reports a referenced id that does not exist
func NewNotFoundError(resource, id string) *DomainError {
	return &DomainError{Kind: KindNotFound, Message: fmt.Sprintf("%s %s not found", resource, id)}
}

// KindOf returns the kind of a domain error, or "" for anything else
func KindOf(err error) ErrorKind {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Kind
	}
	return ""
}
