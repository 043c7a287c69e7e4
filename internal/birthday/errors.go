package birthday

import (
	"errors"

	"moa/internal/domain"
)

// Reasons returned to callers.
const (
	reasonEventNotFound    = "event not found"
	reasonOwnJoin          = "you cannot join your own birthday event"
	reasonNotFollowing     = "only followers can join this event"
	reasonEventClosed      = "this event is no longer accepting participants"
	reasonAlreadyJoined    = "you have already joined this event"
	reasonInvalidType      = "participation type must be WITH_MONEY or WITHOUT_MONEY"
	reasonAmountTooSmall   = "amount must be at least 1 for a monetary participation"
	reasonAmountNotZero    = "amount must be 0 for a participation without money"
	reasonPoolOverflow     = "amount exceeds what this event can pool"
	reasonNotCompleted     = "purchase proof can only be registered after the event is completed"
	reasonNotOwner         = "only the event owner can perform this action"
	reasonProofExists      = "purchase proof is already registered for this event"
	reasonImageCount       = "between 1 and 5 proof images are required"
	reasonImageFormat      = "proof images must be jpg, jpeg, png, gif or webp URLs"
	reasonMessageLength    = "message must be between 1 and 500 characters"
	reasonTokenNotFound    = "share link not found or expired"
	reasonTokenExpiry      = "share link expiry must be in the future"
	reasonShareClosedEvent = "only active events can be shared"
	reasonCancelNotActive  = "only active events can be cancelled"
)

func isNotFound(err error) bool {
	return errors.Is(err, domain.ErrNotFound)
}
