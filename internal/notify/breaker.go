package notify

import (
	"context"
	"time"

	"github.com/rs/zerolog"
	"github.com/sony/gobreaker"

	"moa/internal/domain"
)

// BreakerSink guards a sink with a circuit breaker. After consecutive
// failures it rejects deliveries with gobreaker.ErrOpenState until the
// cool-down elapses, so a broken outbox does not stall every worker.
type BreakerSink struct {
	next domain.NotificationSink
	cb   *gobreaker.CircuitBreaker
}

// BreakerSettings tunes NewBreakerSink. Zero values pick the defaults.
type BreakerSettings struct {
	MaxFailures uint32
	Cooldown    time.Duration
}

// NewBreakerSink wraps next.
func NewBreakerSink(next domain.NotificationSink, logger zerolog.Logger, s BreakerSettings) *BreakerSink {
	if s.MaxFailures == 0 {
		s.MaxFailures = 5
	}
	if s.Cooldown <= 0 {
		s.Cooldown = 30 * time.Second
	}
	logger = logger.With().Str("component", "notify").Logger()
	cb := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        "notification-sink",
		MaxRequests: 1,
		Timeout:     s.Cooldown,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= s.MaxFailures
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().Str("breaker", name).Str("from", from.String()).Str("to", to.String()).Msg("notify: breaker state changed")
		},
	})
	return &BreakerSink{next: next, cb: cb}
}

func (b *BreakerSink) Send(ctx context.Context, recipientID string, n domain.Notification) error {
	_, err := b.cb.Execute(func() (interface{}, error) {
		return nil, b.next.Send(ctx, recipientID, n)
	})
	return err
}

// State reports the breaker state.
func (b *BreakerSink) State() gobreaker.State {
	return b.cb.State()
}
