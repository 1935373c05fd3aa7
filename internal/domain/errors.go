// Package domain contains business logic types and errors.
// Domain errors represent business-level failures, NOT HTTP errors.
// They are infrastructure-agnostic and can be mapped to HTTP/gRPC/etc by adapters.
package domain

import (
	"errors"
	"fmt"
)

// Sentinel errors for use with errors.Is().
var (
	// ErrNotFound indicates the requested entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates business rule validation failed.
	ErrValidation = errors.New("validation failed")

	// ErrUnauthorized indicates the caller is not authenticated: the bearer
	// token is missing, expired or otherwise invalid.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates the caller is authenticated but not permitted,
	// e.g. editing a quote owned by somebody else.
	ErrForbidden = errors.New("forbidden")

	// ErrServer indicates the remote side failed while handling the request (5xx).
	ErrServer = errors.New("server error")

	// ErrNetwork indicates no response was received at all.
	ErrNetwork = errors.New("network error")
)

// NotFoundError provides context for not found errors.
type NotFoundError struct {
	Entity string
	ID     string
}

// Error implements the error interface.
func (e *NotFoundError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("%s with id %q not found", e.Entity, e.ID)
	}

	return e.Entity + " not found"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *NotFoundError) Unwrap() error {
	return ErrNotFound
}

// NewNotFoundError creates a not found error with context.
func NewNotFoundError(entity, id string) error {
	return &NotFoundError{Entity: entity, ID: id}
}

// ValidationError provides context for validation errors.
type ValidationError struct {
	Field   string
	Message string
	Value   any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("validation failed for %s: %s", e.Field, e.Message)
	}

	return "validation failed: " + e.Message
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ValidationError) Unwrap() error {
	return ErrValidation
}

// NewValidationError creates a validation error with context.
func NewValidationError(field, message string) error {
	return &ValidationError{Field: field, Message: message}
}

// NewValidationErrorWithValue creates a validation error including the invalid value.
func NewValidationErrorWithValue(field, message string, value any) error {
	return &ValidationError{Field: field, Message: message, Value: value}
}

// AuthError reports a missing or rejected credential.
type AuthError struct {
	Reason string
}

// Error implements the error interface.
func (e *AuthError) Error() string {
	if e.Reason != "" {
		return "authentication failed: " + e.Reason
	}

	return "authentication failed"
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *AuthError) Unwrap() error {
	return ErrUnauthorized
}

// NewAuthError creates an authentication error with context.
func NewAuthError(reason string) error {
	return &AuthError{Reason: reason}
}

// ForbiddenError provides context for forbidden errors.
type ForbiddenError struct {
	Operation string
	Reason    string
}

// Error implements the error interface.
func (e *ForbiddenError) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("operation %q forbidden: %s", e.Operation, e.Reason)
	}

	return fmt.Sprintf("operation %q forbidden", e.Operation)
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ForbiddenError) Unwrap() error {
	return ErrForbidden
}

// NewForbiddenError creates a forbidden error with context.
func NewForbiddenError(operation, reason string) error {
	return &ForbiddenError{Operation: operation, Reason: reason}
}

// ServerError reports a failure on the remote side of a call.
// StatusCode is zero when the failure did not come from an HTTP response.
type ServerError struct {
	Service    string
	StatusCode int
	Reason     string
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	msg := fmt.Sprintf("service %q failed", e.Service)
	if e.StatusCode != 0 {
		msg = fmt.Sprintf("%s with status %d", msg, e.StatusCode)
	}

	if e.Reason != "" {
		msg += ": " + e.Reason
	}

	return msg
}

// Unwrap returns the sentinel error for errors.Is() support.
func (e *ServerError) Unwrap() error {
	return ErrServer
}

// NewServerError creates a server error with context.
func NewServerError(service string, statusCode int, reason string) error {
	return &ServerError{Service: service, StatusCode: statusCode, Reason: reason}
}

// NetworkError reports a transport failure where no response arrived.
type NetworkError struct {
	Service   string
	Operation string
	Cause     error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s on %q: network error: %v", e.Operation, e.Service, e.Cause)
	}

	return fmt.Sprintf("%s on %q: network error", e.Operation, e.Service)
}

// Unwrap exposes both the sentinel and the transport cause, so errors.Is
// matches ErrNetwork as well as context.DeadlineExceeded and friends.
func (e *NetworkError) Unwrap() []error {
	if e.Cause == nil {
		return []error{ErrNetwork}
	}

	return []error{ErrNetwork, e.Cause}
}

// NewNetworkError creates a network error with context.
func NewNetworkError(service, operation string, cause error) error {
	return &NetworkError{Service: service, Operation: operation, Cause: cause}
}

// IsNotFound checks if an error is a not found error.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsUnauthorized checks if an error is an authentication error.
func IsUnauthorized(err error) bool {
	return errors.Is(err, ErrUnauthorized)
}

// IsForbidden checks if an error is a forbidden error.
func IsForbidden(err error) bool {
	return errors.Is(err, ErrForbidden)
}

// IsServer checks if an error is a server error.
func IsServer(err error) bool {
	return errors.Is(err, ErrServer)
}

// IsNetwork checks if an error is a network error.
func IsNetwork(err error) bool {
	return errors.Is(err, ErrNetwork)
}
