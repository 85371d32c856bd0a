// Package apperror defines the failure taxonomy shared by every module.
// Services wrap these sentinels with fmt.Errorf("...: %w", ...) so handlers
// can map any error to an HTTP status without string matching.
package apperror

import "errors"

var (
	// ErrNotFound indicates the referenced entity does not exist.
	ErrNotFound = errors.New("not found")

	// ErrConflict indicates a unique-key collision: email, category name,
	// newsletter subscription, or a replayed idempotency key.
	ErrConflict = errors.New("already exists")

	// ErrValidation indicates a malformed or missing request field.
	ErrValidation = errors.New("invalid request")

	// ErrUnauthorized indicates a missing or invalid credential.
	ErrUnauthorized = errors.New("unauthorized")

	// ErrForbidden indicates a role or ownership check failed.
	ErrForbidden = errors.New("forbidden")

	// ErrInvalidTransition indicates the requested order status is not
	// reachable from the current one.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrOutOfStock indicates a stock reservation guard failed.
	ErrOutOfStock = errors.New("out of stock")

	// ErrUpstream indicates a store or gateway failure the caller cannot fix.
	ErrUpstream = errors.New("upstream failure")
)

// IsNotFound reports whether err wraps ErrNotFound.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsConflict reports whether err wraps ErrConflict.
func IsConflict(err error) bool { return errors.Is(err, ErrConflict) }
