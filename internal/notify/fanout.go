// Package notify fans notification intents out to a delivery sink. Delivery
// is best-effort: a failing recipient is logged and counted, never returned
// to the operation that produced the intent.
package notify

import (
	"context"

	"github.com/rs/zerolog"

	"moa/internal/domain"
	"moa/internal/metrics"
)

// Result summarises one fan-out.
type Result struct {
	Attempted int
	Sent      int
	Failed    int
}

// Intents builds one intent per recipient, skipping empty and repeated ids.
func Intents(recipients []string, n domain.Notification) []domain.NotificationIntent {
	seen := make(map[string]struct{}, len(recipients))
	out := make([]domain.NotificationIntent, 0, len(recipients))
	for _, id := range recipients {
		if id == "" {
			continue
		}
		if _, dup := seen[id]; dup {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, domain.NotificationIntent{RecipientID: id, Notification: n})
	}
	return out
}

// NotifyMany sends n to every recipient through sink and reports how many
// deliveries succeeded. It attempts all recipients regardless of failures.
func NotifyMany(ctx context.Context, sink domain.NotificationSink, logger zerolog.Logger, recipients []string, n domain.Notification) Result {
	return deliver(ctx, sink, logger, Intents(recipients, n))
}

func deliver(ctx context.Context, sink domain.NotificationSink, logger zerolog.Logger, intents []domain.NotificationIntent) Result {
	var res Result
	for _, intent := range intents {
		res.Attempted++
		if deliverOne(ctx, sink, logger, intent) {
			res.Sent++
		} else {
			res.Failed++
		}
	}
	return res
}

func deliverOne(ctx context.Context, sink domain.NotificationSink, logger zerolog.Logger, intent domain.NotificationIntent) bool {
	if err := sink.Send(ctx, intent.RecipientID, intent.Notification); err != nil {
		metrics.NotificationsTotal.WithLabelValues(string(intent.Type), "failed").Inc()
		logger.Warn().Err(err).
			Str("recipient_id", intent.RecipientID).
			Str("type", string(intent.Type)).
			Msg("notify: delivery failed")
		return false
	}
	metrics.NotificationsTotal.WithLabelValues(string(intent.Type), "sent").Inc()
	return true
}
