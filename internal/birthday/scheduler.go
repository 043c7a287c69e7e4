package birthday

import (
	"context"
	"errors"
	"time"

	"github.com/rs/zerolog"

	"moa/internal/metrics"
)

// TickReport summarises one scheduler pass.
type TickReport struct {
	Closed       int
	Open         OpenReport
	PurgedTokens int64
}

// Tick runs one scheduler pass: deadline sweep, event opener, share-token
// purge. A failing step is logged and does not prevent the others.
func (s *Service) Tick(ctx context.Context) (TickReport, error) {
	timer := metrics.NewTimer()
	defer timer.ObserveDuration(metrics.SchedulerTickDuration)

	var report TickReport
	var errs []error

	closed, err := s.CloseExpired(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("birthday: deadline sweep failed")
		errs = append(errs, err)
	}
	report.Closed = len(closed)

	report.Open, err = s.OpenEventsForUpcomingBirthdays(ctx)
	if err != nil {
		s.logger.Error().Err(err).Msg("birthday: event opener failed")
		errs = append(errs, err)
	}

	if s.tokens != nil {
		report.PurgedTokens, err = s.PurgeShareTokens(ctx)
		if err != nil {
			s.logger.Error().Err(err).Msg("birthday: share token purge failed")
			errs = append(errs, err)
		}
	}
	return report, errors.Join(errs...)
}

// Scheduler invokes Service.Tick on a fixed interval.
type Scheduler struct {
	svc      *Service
	interval time.Duration
	logger   zerolog.Logger
}

// NewScheduler creates a scheduler. A non-positive interval means daily.
func NewScheduler(svc *Service, interval time.Duration, logger zerolog.Logger) *Scheduler {
	if interval <= 0 {
		interval = 24 * time.Hour
	}
	return &Scheduler{
		svc:      svc,
		interval: interval,
		logger:   logger.With().Str("component", "scheduler").Logger(),
	}
}

// Run ticks once immediately and then every interval until ctx is done.
func (s *Scheduler) Run(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("scheduler: started")
	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	s.runOnce(ctx)
	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("scheduler: stopped")
			return ctx.Err()
		case <-ticker.C:
			s.runOnce(ctx)
		}
	}
}

func (s *Scheduler) runOnce(ctx context.Context) {
	report, err := s.svc.Tick(ctx)
	evt := s.logger.Info()
	if err != nil {
		evt = s.logger.Warn().Err(err)
	}
	evt.Int("closed", report.Closed).
		Int("opened", report.Open.Opened).
		Int("failed", report.Open.Failed).
		Int64("purged_tokens", report.PurgedTokens).
		Msg("scheduler: tick finished")
}
