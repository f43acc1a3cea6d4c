// Package errs holds the error taxonomy shared by the controllers, the API client and the mock auth store.
package errs

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrBusy is returned when the same logical action already has a request in flight.
var ErrBusy = errors.New("request already in flight")

// ValidationError is a client-side rejection of blank or mismatched fields. No request is sent.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return "validation failed: " + e.Reason
	}
	return fmt.Sprintf("validation failed: %s %s", e.Field, e.Reason)
}

// AuthError is a credential mismatch or an unauthenticated session.
type AuthError struct {
	Message string
}

func (e *AuthError) Error() string {
	if e.Message == "" {
		return "authentication failed"
	}
	return "authentication failed: " + e.Message
}

// ConflictError is a duplicate resource.
type ConflictError struct {
	Message string
}

func (e *ConflictError) Error() string {
	if e.Message == "" {
		return "conflict"
	}
	return "conflict: " + e.Message
}

// NetworkError is a transport failure, an undecodable body or a non-2xx reply
// that is neither an auth failure nor a conflict.
type NetworkError struct {
	Op      string
	Status  int
	Message string
	Err     error
}

func (e *NetworkError) Error() string {
	msg := e.Op
	if e.Status != 0 {
		msg += fmt.Sprintf(": status %d", e.Status)
	}
	if e.Message != "" {
		msg += ": " + e.Message
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *NetworkError) Unwrap() error { return e.Err }

// FromStatus classifies a non-2xx reply.
func FromStatus(op string, status int, message string) error {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden:
		return &AuthError{Message: message}
	case http.StatusConflict:
		return &ConflictError{Message: message}
	default:
		return &NetworkError{Op: op, Status: status, Message: message}
	}
}

// ServerMessage extracts the message a backend supplied with an error, if any.
func ServerMessage(err error) string {
	var authErr *AuthError
	var conflictErr *ConflictError
	var netErr *NetworkError
	switch {
	case errors.As(err, &authErr):
		return authErr.Message
	case errors.As(err, &conflictErr):
		return conflictErr.Message
	case errors.As(err, &netErr):
		return netErr.Message
	}
	return ""
}

// IsValidation reports whether err wraps a *ValidationError.
func IsValidation(err error) bool {
	var v *ValidationError
	return errors.As(err, &v)
}

// IsAuth reports whether err wraps an *AuthError.
func IsAuth(err error) bool {
	var v *AuthError
	return errors.As(err, &v)
}

// IsConflict reports whether err wraps a *ConflictError.
func IsConflict(err error) bool {
	var v *ConflictError
	return errors.As(err, &v)
}

// IsNetwork reports whether err wraps a *NetworkError.
func IsNetwork(err error) bool {
	var v *NetworkError
	return errors.As(err, &v)
}
