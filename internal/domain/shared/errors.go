// Package shared contains common domain types and errors used across all
// domain packages. This package has zero external dependencies.
package shared

import (
	"errors"
	"fmt"
)

// Base domain errors that can be used for error checking with errors.Is().
var (
	// ErrNotFound indicates the target entity does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrConflict indicates a uniqueness violation.
	ErrConflict = errors.New("entity already exists")

	// ErrValidation indicates missing or malformed user input.
	ErrValidation = errors.New("validation error")

	// ErrInvalidCredentials indicates a failed login. A missing user and a
	// wrong password are deliberately indistinguishable.
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// DomainError represents a domain-specific error with context. Message is
// safe to surface to the user; Err is the underlying cause and stays in the
// server log.
type DomainError struct {
	Domain  string // e.g. "student", "user", "session"
	Op      string // operation that failed, e.g. "Create", "Login"
	Kind    error  // base error type for errors.Is() checking
	Message string // human-readable, user-facing message
	Err     error  // underlying error (optional)
}

// Error implements the error interface.
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Op, e.Message, e.Err)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Op, e.Message)
}

// Unwrap returns the underlying error for errors.Unwrap().
func (e *DomainError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return e.Kind
}

// Is implements errors.Is() matching against both Kind and Err.
func (e *DomainError) Is(target error) bool {
	if e.Kind != nil && errors.Is(e.Kind, target) {
		return true
	}
	if e.Err != nil && errors.Is(e.Err, target) {
		return true
	}
	return false
}

// NewDomainError creates a new domain error.
func NewDomainError(domain, op string, kind error, message string) *DomainError {
	return &DomainError{Domain: domain, Op: op, Kind: kind, Message: message}
}

// WrapError wraps an existing error with domain context.
func WrapError(domain, op string, kind error, message string, err error) *DomainError {
	return &DomainError{Domain: domain, Op: op, Kind: kind, Message: message, Err: err}
}

// User domain errors.
var (
	ErrUserExists   = NewDomainError("user", "Register", ErrConflict, "Username or email already exists")
	ErrLoginFailed  = NewDomainError("user", "Login", ErrInvalidCredentials, "Invalid credentials")
	ErrUserNotFound = NewDomainError("user", "Find", ErrNotFound, "user not found")
)

// Student domain errors.
var (
	ErrStudentNotFound  = NewDomainError("student", "Find", ErrNotFound, "Student not found")
	ErrDuplicateStudent = NewDomainError("student", "Save", ErrConflict, "Student ID or email already exists")
)

// Session domain errors.
var (
	ErrSessionNotFound = NewDomainError("session", "Get", ErrNotFound, "session not found or expired")
)

// UserMessage extracts the user-facing message from an error, falling back
// to the given default for unanticipated errors so that driver or internal
// error text never reaches the browser.
func UserMessage(err error, fallback string) string {
	var de *DomainError
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return fallback
}

// IsNotFound checks if the error is a "not found" error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict checks if the error is a uniqueness conflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// IsValidation checks if the error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsInvalidCredentials checks if the error is a failed-login error.
func IsInvalidCredentials(err error) bool {
	return errors.Is(err, ErrInvalidCredentials)
}
