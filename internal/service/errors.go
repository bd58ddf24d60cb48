// Package service provides application-level services orchestrating the
// energy score pipeline: user accounts, lifestyle logging, daily reading
// computation, and correlation insights.
package service

import (
	"errors"
	"fmt"
)

// Common service errors - sentinel errors used across service implementations.
// Callers check for these with errors.Is(); the API layer maps them to
// HTTP status codes.
var (
	// ErrUserNotFound indicates the requested user does not exist.
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailExists indicates the email address is already registered.
	ErrEmailExists = errors.New("email address is already registered")

	// ErrInvalidCredentials indicates the email/password pair did not match.
	ErrInvalidCredentials = errors.New("invalid email or password")

	// ErrBirthDataMissing indicates the user has not recorded birth data,
	// so no reading can be computed.
	ErrBirthDataMissing = errors.New("user has not recorded birth data")

	// ErrInvalidDate indicates the supplied date could not be parsed.
	ErrInvalidDate = errors.New("invalid date")
)

// ServiceError wraps unexpected errors from a service with operation context.
type ServiceError struct {
	// Operation is the operation that failed (e.g., "compute_reading")
	Operation string
	// Message is a human-readable description of the error
	Message string
	// Err is the underlying error that caused the failure
	Err error
}

// Error implements the error interface for ServiceError.
func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("service %s failed: %s: %v", e.Operation, e.Message, e.Err)
	}
	return fmt.Sprintf("service %s failed: %s", e.Operation, e.Message)
}

// Unwrap returns the wrapped error to support errors.Is/errors.As.
func (e *ServiceError) Unwrap() error {
	return e.Err
}
