package domain

import "time"

// ShareToken routes an out-of-band link to an event. Joining through a token
// still goes through the regular authorization checks.
type ShareToken struct {
	Token     string
	EventID   string
	ExpiresAt time.Time
	IsActive  bool
	CreatedAt time.Time
}

// Usable reports whether the token can still be resolved at now.
func (t ShareToken) Usable(now time.Time) bool {
	return t.IsActive && now.Before(t.ExpiresAt)
}
