package domain

import (
	"context"
	"time"
)

// EventRepository persists events and the participation ledger.
type EventRepository interface {
	// CreateActiveEvent inserts ev as the owner's single active event. Any
	// active event of the same owner whose deadline is before now is closed in
	// the same unit. It returns ErrActiveEventExists when a live active event
	// is already present and ErrEventAlreadyOpened when the owner has an event
	// with the same deadline in any status.
	CreateActiveEvent(ctx context.Context, ev *Event, now time.Time) error
	HasActiveEvent(ctx context.Context, ownerID string, now time.Time) (bool, error)
	GetEvent(ctx context.Context, eventID string) (*Event, error)
	FindActiveEventByOwner(ctx context.Context, ownerID string) (*Event, error)
	// TransitionStatus moves eventID from `from` to `to` atomically. It
	// returns ErrStatusConflict when the stored status is not `from`.
	TransitionStatus(ctx context.Context, eventID string, from, to EventStatus, now time.Time) (*Event, error)
	CloseExpiredEvents(ctx context.Context, now time.Time) ([]Event, error)

	// Join inserts p and, for monetary joins, increments the pooled amount in
	// one transaction. It returns ErrDuplicateParticipation on a (event, user)
	// collision, ErrEventNotActive if the event stopped accepting joins and
	// ErrPoolOverflow if the pooled amount would exceed int64.
	Join(ctx context.Context, p *Participation, now time.Time) (*EventAggregate, error)
	GetParticipation(ctx context.Context, eventID, userID string) (*Participation, error)
	ListParticipations(ctx context.Context, eventID string) ([]Participation, error)
	CountParticipations(ctx context.Context, eventID string) (int, error)
}

// ProofRepository persists purchase proofs.
type ProofRepository interface {
	// CreateProof returns ErrDuplicateProof if the event already has one.
	CreateProof(ctx context.Context, proof *PurchaseProof) error
	GetProofByEvent(ctx context.Context, eventID string) (*PurchaseProof, error)
}

// ShareTokenRepository persists share tokens.
type ShareTokenRepository interface {
	CreateShareToken(ctx context.Context, token *ShareToken) error
	GetShareToken(ctx context.Context, token string) (*ShareToken, error)
	PurgeShareTokens(ctx context.Context, now time.Time) (int64, error)
}

// UserDirectory reads profiles owned by the user-management service.
type UserDirectory interface {
	FindUsersWithBirthday(ctx context.Context) ([]User, error)
	FindUsersByIDs(ctx context.Context, ids []string) ([]User, error)
}

// SocialGraph answers follow relationships.
type SocialGraph interface {
	IsFollowing(ctx context.Context, followerID, targetID string) (bool, error)
	FollowersOf(ctx context.Context, userID string) ([]string, error)
}

// LetterDirectory reports whether a participant has written a letter.
type LetterDirectory interface {
	HasWrittenLetter(ctx context.Context, userID, eventID string) (bool, error)
}

// NotificationSink delivers one notification to one recipient.
type NotificationSink interface {
	Send(ctx context.Context, recipientID string, n Notification) error
}

// Clock supplies wall-clock time.
type Clock interface {
	Now() time.Time
}

// SystemClock reads time.Now.
type SystemClock struct{}

func (SystemClock) Now() time.Time { return time.Now() }
