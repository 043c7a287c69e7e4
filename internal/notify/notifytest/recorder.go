// Package notifytest provides a recording notification sink for tests.
package notifytest

import (
	"context"
	"sync"

	"moa/internal/domain"
)

// Recorder captures every delivered intent. Recipients listed in Fail get an
// error instead.
type Recorder struct {
	mu      sync.Mutex
	sent    []domain.NotificationIntent
	Fail    map[string]error
	attempt int
}

func (r *Recorder) Send(_ context.Context, recipientID string, n domain.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.attempt++
	if err, ok := r.Fail[recipientID]; ok {
		return err
	}
	r.sent = append(r.sent, domain.NotificationIntent{RecipientID: recipientID, Notification: n})
	return nil
}

// Sent returns a copy of the delivered intents.
func (r *Recorder) Sent() []domain.NotificationIntent {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]domain.NotificationIntent(nil), r.sent...)
}

// OfType returns the delivered intents of type t.
func (r *Recorder) OfType(t domain.NotificationType) []domain.NotificationIntent {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.NotificationIntent
	for _, intent := range r.sent {
		if intent.Type == t {
			out = append(out, intent)
		}
	}
	return out
}

// Attempts returns how many Send calls were made.
func (r *Recorder) Attempts() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.attempt
}

// Reset clears recorded state.
func (r *Recorder) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sent = nil
	r.attempt = 0
}
