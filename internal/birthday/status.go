package birthday

import (
	"fmt"
	"time"

	"moa/internal/domain"
)

// ActionKind is the participant-facing state of an event.
type ActionKind string

const (
	ActionExpired                ActionKind = "EXPIRED"
	ActionNotParticipated        ActionKind = "NOT_PARTICIPATED"
	ActionParticipatedNoLetter   ActionKind = "PARTICIPATED_NO_LETTER"
	ActionParticipatedWithLetter ActionKind = "PARTICIPATED_WITH_LETTER"
	ActionClosed                 ActionKind = "CLOSED"
	ActionCompleted              ActionKind = "COMPLETED"
	ActionCancelled              ActionKind = "CANCELLED"
	ActionUnknown                ActionKind = "UNKNOWN"
)

// Action is what the primary button does.
type Action string

const (
	ActionNone        Action = ""
	ActionParticipate Action = "PARTICIPATE"
	ActionWriteLetter Action = "WRITE_LETTER"
	ActionEditLetter  Action = "EDIT_LETTER"
)

// ActionDescriptor tells a viewer what they can do next with an event.
type ActionDescriptor struct {
	Kind        ActionKind `json:"kind"`
	Message     string     `json:"message"`
	ActionLabel string     `json:"action_label"`
	Action      Action     `json:"action"`
	Enabled     bool       `json:"enabled"`
}

func disabled(kind ActionKind, msg, label string) ActionDescriptor {
	return ActionDescriptor{Kind: kind, Message: msg, ActionLabel: label}
}

// ProjectStatus derives the action descriptor for a viewer. It is a pure
// function of its inputs.
func ProjectStatus(ev domain.Event, hasJoined, hasWrittenLetter bool, now time.Time) ActionDescriptor {
	switch ev.Status {
	case domain.EventStatusActive:
		if ev.Expired(now) {
			return disabled(ActionExpired, "The participation period has ended.", "Ended")
		}
		if !hasJoined {
			return ActionDescriptor{
				Kind:        ActionNotParticipated,
				Message:     "Join the moa to celebrate together.",
				ActionLabel: "Participate",
				Action:      ActionParticipate,
				Enabled:     true,
			}
		}
		if !hasWrittenLetter {
			return ActionDescriptor{
				Kind:        ActionParticipatedNoLetter,
				Message:     "You joined! Write a birthday letter.",
				ActionLabel: "Write letter",
				Action:      ActionWriteLetter,
				Enabled:     true,
			}
		}
		return ActionDescriptor{
			Kind:        ActionParticipatedWithLetter,
			Message:     "Your letter is ready. You can still edit it.",
			ActionLabel: "Edit letter",
			Action:      ActionEditLetter,
			Enabled:     true,
		}
	case domain.EventStatusClosed:
		return disabled(ActionClosed, "This moa has closed.", "Closed")
	case domain.EventStatusCompleted:
		return disabled(ActionCompleted, "This moa has been completed.", "Completed")
	case domain.EventStatusCancelled:
		return disabled(ActionCancelled, "This moa was cancelled.", "Cancelled")
	default:
		return disabled(ActionUnknown, "This moa is unavailable.", "Unavailable")
	}
}

// Countdown is the time left until a deadline.
type Countdown struct {
	Remaining     string        `json:"remaining"`
	DeadlineLabel string        `json:"deadline_label"`
	Expired       bool          `json:"expired"`
	Duration      time.Duration `json:"-"`
}

const deadlineLabelLayout = "Jan 2 (Mon) 15:04"

// CountdownTo formats the time left until deadline as HH:MM:SS with total
// hours, clamped to 00:00:00 once past. The label is rendered in loc.
func CountdownTo(deadline, now time.Time, loc *time.Location) Countdown {
	if loc == nil {
		loc = time.UTC
	}
	left := deadline.Sub(now)
	expired := left <= 0
	if expired {
		left = 0
	}
	secs := int64(left / time.Second)
	return Countdown{
		Remaining:     fmt.Sprintf("%02d:%02d:%02d", secs/3600, (secs%3600)/60, secs%60),
		DeadlineLabel: deadline.In(loc).Format(deadlineLabelLayout),
		Expired:       expired,
		Duration:      left,
	}
}
