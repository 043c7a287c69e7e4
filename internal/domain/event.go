package domain

import "time"

// EventStatus enumerates the event lifecycle states.
type EventStatus string

const (
	EventStatusActive    EventStatus = "active"
	EventStatusCompleted EventStatus = "completed"
	EventStatusClosed    EventStatus = "closed"
	EventStatusCancelled EventStatus = "cancelled"
)

// Terminal reports whether no further transition can leave s.
func (s EventStatus) Terminal() bool {
	switch s {
	case EventStatusCompleted, EventStatusClosed, EventStatusCancelled:
		return true
	default:
		return false
	}
}

// Event is one birthday fundraising cycle for one owner.
type Event struct {
	ID           string
	OwnerID      string
	Title        string
	PooledAmount int64
	Deadline     time.Time
	Status       EventStatus
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Expired reports whether the deadline has passed at now.
func (e Event) Expired(now time.Time) bool {
	return now.After(e.Deadline)
}

// Joinable reports whether the event accepts participations at now.
func (e Event) Joinable(now time.Time) bool {
	return e.Status == EventStatusActive && !e.Expired(now)
}

// EventAggregate is the post-write snapshot of an event's running totals.
type EventAggregate struct {
	EventID          string
	PooledAmount     int64
	ParticipantCount int
}
