package errors

import (
	"errors"
	"fmt"
)

// Common error types for the storefront client. User-facing message text
// lives with the stores; these sentinels classify failures across packages.
var (
	// ErrUnauthorized is the universal invalidation signal: any authorized
	// request answered with a 401 maps to it, and the session is purged.
	ErrUnauthorized = errors.New("unauthorized")

	// Transport errors
	ErrNetwork        = errors.New("network error")
	ErrServerResponse = errors.New("unexpected server response")
)

// StatusError carries a non-2xx response status and the human-readable
// message the server sent with it. Error() returns just the message so the
// value can be surfaced directly in the UI.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return e.Message
}

// Wrapf wraps an error with context using fmt.Errorf
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf(format+": %w", append(args, err)...)
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
