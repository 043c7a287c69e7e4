package notify

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"moa/internal/domain"
	"moa/internal/metrics"
)

// Dispatcher hands intents to a delivery path after the producing write has
// committed. Implementations never report delivery errors to the caller.
type Dispatcher interface {
	Dispatch(ctx context.Context, intents []domain.NotificationIntent)
}

// Inline delivers on the calling goroutine. The one-shot CLI and tests use it.
type Inline struct {
	sink   domain.NotificationSink
	logger zerolog.Logger
}

// NewInline returns a synchronous dispatcher.
func NewInline(sink domain.NotificationSink, logger zerolog.Logger) *Inline {
	return &Inline{sink: sink, logger: logger.With().Str("component", "notify").Logger()}
}

func (d *Inline) Dispatch(ctx context.Context, intents []domain.NotificationIntent) {
	deliver(context.WithoutCancel(ctx), d.sink, d.logger, intents)
}

// Async queues intents and delivers them from a pool of worker goroutines.
// When the queue is full the intent is dropped and counted.
type Async struct {
	sink    domain.NotificationSink
	logger  zerolog.Logger
	workers int
	queue   chan domain.NotificationIntent

	mu      sync.RWMutex
	stopped bool
	wg      sync.WaitGroup
}

// NewAsync creates an async dispatcher. Call Start before dispatching.
func NewAsync(sink domain.NotificationSink, logger zerolog.Logger, workers, queueSize int) *Async {
	if workers <= 0 {
		workers = 1
	}
	if queueSize <= 0 {
		queueSize = 1
	}
	return &Async{
		sink:    sink,
		logger:  logger.With().Str("component", "notify").Logger(),
		workers: workers,
		queue:   make(chan domain.NotificationIntent, queueSize),
	}
}

// Start launches the workers. ctx is passed to the sink on every delivery.
func (d *Async) Start(ctx context.Context) {
	for i := 0; i < d.workers; i++ {
		d.wg.Add(1)
		go func() {
			defer d.wg.Done()
			for intent := range d.queue {
				deliverOne(ctx, d.sink, d.logger, intent)
			}
		}()
	}
}

// Stop closes the queue and waits for queued intents to drain.
func (d *Async) Stop() {
	d.mu.Lock()
	if d.stopped {
		d.mu.Unlock()
		return
	}
	d.stopped = true
	close(d.queue)
	d.mu.Unlock()
	d.wg.Wait()
}

func (d *Async) Dispatch(_ context.Context, intents []domain.NotificationIntent) {
	d.mu.RLock()
	defer d.mu.RUnlock()
	for _, intent := range intents {
		if d.stopped {
			d.drop(intent, "dispatcher stopped")
			continue
		}
		select {
		case d.queue <- intent:
		default:
			d.drop(intent, "queue full")
		}
	}
}

func (d *Async) drop(intent domain.NotificationIntent, reason string) {
	metrics.NotificationsTotal.WithLabelValues(string(intent.Type), "dropped").Inc()
	d.logger.Warn().
		Str("recipient_id", intent.RecipientID).
		Str("type", string(intent.Type)).
		Msgf("notify: intent dropped, %s", reason)
}

// Pending returns the number of queued intents.
func (d *Async) Pending() int {
	return len(d.queue)
}
