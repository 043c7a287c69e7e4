package domain

import "errors"

// Error kinds surfaced to callers of the engine.
var (
	ErrNotFound   = errors.New("not found")
	ErrForbidden  = errors.New("forbidden")
	ErrValidation = errors.New("validation failed")
	ErrConflict   = errors.New("conflict")
)

// Store-level outcomes returned by repositories. The engine translates them
// into one of the kinds above before they reach a caller.
var (
	ErrActiveEventExists      = errors.New("active event already exists")
	ErrEventAlreadyOpened     = errors.New("event already opened for this deadline")
	ErrDuplicateParticipation = errors.New("duplicate participation")
	ErrDuplicateProof         = errors.New("duplicate purchase proof")
	ErrEventNotActive         = errors.New("event not active")
	ErrPoolOverflow           = errors.New("pooled amount overflow")
	ErrStatusConflict         = errors.New("status changed concurrently")
)

// Error is a domain rule violation with a stable kind and a human-readable reason.
type Error struct {
	Kind   error
	Reason string
}

func (e *Error) Error() string {
	if e.Reason == "" {
		return e.Kind.Error()
	}
	return e.Reason
}

func (e *Error) Unwrap() error { return e.Kind }

func NotFound(reason string) error  { return &Error{Kind: ErrNotFound, Reason: reason} }
func Forbidden(reason string) error { return &Error{Kind: ErrForbidden, Reason: reason} }
func Invalid(reason string) error   { return &Error{Kind: ErrValidation, Reason: reason} }
func Conflict(reason string) error  { return &Error{Kind: ErrConflict, Reason: reason} }

// KindOf returns the stable error code for err. Anything that is not a
// domain error reports "internal".
func KindOf(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return "not_found"
	case errors.Is(err, ErrForbidden):
		return "forbidden"
	case errors.Is(err, ErrValidation):
		return "validation_error"
	case errors.Is(err, ErrConflict):
		return "conflict"
	default:
		return "internal"
	}
}

// Reason returns the caller-safe message for err.
func Reason(err error) string {
	var de *Error
	if errors.As(err, &de) {
		return de.Error()
	}
	return "internal error"
}
