// Package metrics holds the prometheus collectors exported by the api and
// worker processes.
package metrics

import (
	"net/http"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

var (
	EventsOpenedTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "moa_events_opened_total",
			Help: "Birthday events opened by the scheduler",
		},
	)

	SchedulerOwnerFailuresTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "moa_scheduler_owner_failures_total",
			Help: "Owners whose open-or-skip decision failed during a tick",
		},
	)

	SchedulerTickDuration = prometheus.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "moa_scheduler_tick_duration_seconds",
			Help:    "Duration of one scheduler tick",
			Buckets: prometheus.DefBuckets,
		},
	)

	JoinsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moa_joins_total",
			Help: "Join attempts by participation type and outcome",
		},
		[]string{"type", "outcome"},
	)

	PooledAmountTotal = prometheus.NewCounter(
		prometheus.CounterOpts{
			Name: "moa_pooled_amount_total",
			Help: "Sum of amounts pledged through monetary joins",
		},
	)

	EventTransitionsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moa_event_transitions_total",
			Help: "Event status transitions by target status",
		},
		[]string{"status"},
	)

	NotificationsTotal = prometheus.NewCounterVec(
		prometheus.CounterOpts{
			Name: "moa_notifications_total",
			Help: "Notification intents by type and delivery result",
		},
		[]string{"type", "result"},
	)
)

func init() {
	prometheus.MustRegister(
		EventsOpenedTotal,
		SchedulerOwnerFailuresTotal,
		SchedulerTickDuration,
		JoinsTotal,
		PooledAmountTotal,
		EventTransitionsTotal,
		NotificationsTotal,
	)
}

// Handler returns the prometheus scrape handler.
func Handler() http.Handler {
	return promhttp.Handler()
}

// Timer observes elapsed time into a histogram.
type Timer struct {
	start time.Time
}

// NewTimer starts a timer.
func NewTimer() *Timer {
	return &Timer{start: time.Now()}
}

// ObserveDuration records the elapsed time since NewTimer.
func (t *Timer) ObserveDuration(h prometheus.Observer) {
	h.Observe(time.Since(t.start).Seconds())
}
