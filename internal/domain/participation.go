package domain

import (
	"math"
	"time"
)

// ParticipationType distinguishes monetary from letter-only joins.
type ParticipationType string

const (
	ParticipationWithMoney    ParticipationType = "WITH_MONEY"
	ParticipationWithoutMoney ParticipationType = "WITHOUT_MONEY"
)

// Valid reports whether t is a known participation type.
func (t ParticipationType) Valid() bool {
	return t == ParticipationWithMoney || t == ParticipationWithoutMoney
}

// PoolFits reports whether adding amount to pooled stays within int64.
func PoolFits(pooled, amount int64) bool {
	return amount <= math.MaxInt64-pooled
}

// Participation is an immutable ledger entry of one user joining one event.
type Participation struct {
	ID             string
	EventID        string
	UserID         string
	Amount         int64
	Type           ParticipationType
	ParticipatedAt time.Time
}
