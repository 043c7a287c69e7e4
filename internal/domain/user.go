package domain

import "time"

// User is the subset of the external profile the engine reads.
type User struct {
	ID       string
	Name     string
	Birthday *time.Time // year is ignored for recurrence
}

// Recipient identifies a user who was notified.
type Recipient struct {
	ID   string
	Name string
}
