// Package bootstrap assembles the birthday engine from configuration. The
// api, worker and moactl binaries share it so that every process talks to
// the same storage and notification path.
package bootstrap

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"moa/internal/adapter/memstore"
	"moa/internal/adapter/repo"
	"moa/internal/birthday"
	"moa/internal/domain"
	"moa/internal/infra"
	"moa/internal/notify"
)

// DispatchMode selects how notification intents leave the engine.
type DispatchMode int

const (
	// DispatchInline delivers on the calling goroutine.
	DispatchInline DispatchMode = iota
	// DispatchAsync queues intents for a worker pool.
	DispatchAsync
)

// Engine is a wired Service plus the resources it owns.
type Engine struct {
	Service *birthday.Service
	// Memory is set when the in-memory store backs the engine.
	Memory *memstore.Store

	closers []func()
}

// Open builds the engine described by cfg. The caller must call Close.
func Open(ctx context.Context, cfg *infra.Config, logger zerolog.Logger, mode DispatchMode) (*Engine, error) {
	if cfg == nil {
		return nil, fmt.Errorf("bootstrap: config is required")
	}
	e := &Engine{}

	var (
		deps birthday.Deps
		sink domain.NotificationSink
	)
	if cfg.IsMemoryStore() {
		store := memstore.New()
		e.Memory = store
		deps = birthday.Deps{
			Events:  store,
			Proofs:  store,
			Tokens:  store,
			Users:   store,
			Graph:   store,
			Letters: store,
		}
		sink = notify.LogSink{Logger: logger}
		logger.Warn().Msg("bootstrap: using in-memory store, data is not persisted")
	} else {
		pool, err := infra.NewDBPool(ctx, cfg)
		if err != nil {
			return nil, err
		}
		e.closers = append(e.closers, pool.Close)
		runner := infra.NewSQLRunner(pool, logger)
		dir := repo.NewDirectory(runner)
		deps = birthday.Deps{
			Events:  repo.NewEventRepository(runner),
			Proofs:  repo.NewProofRepository(runner),
			Tokens:  repo.NewShareTokenRepository(runner),
			Users:   dir,
			Graph:   dir,
			Letters: dir,
		}
		sink = notify.NewBreakerSink(repo.NewNotificationOutbox(runner), logger, notify.BreakerSettings{})
	}

	switch mode {
	case DispatchAsync:
		d := notify.NewAsync(sink, logger, cfg.NotifyWorkers, cfg.NotifyQueueSize)
		d.Start(context.WithoutCancel(ctx))
		// Drain the queue before the pool closes.
		e.closers = append(e.closers, d.Stop)
		deps.Notifier = d
	default:
		deps.Notifier = notify.NewInline(sink, logger)
	}
	deps.Logger = logger

	e.Service = birthday.NewService(deps, birthday.Options{
		LookaheadDays: cfg.EventLookaheadDays,
		ClosingHour:   cfg.EventClosingHour,
		Location:      cfg.EventLocation,
		ShareTokenTTL: cfg.ShareTokenTTL,
	})
	return e, nil
}

// Close releases resources in reverse order of acquisition.
func (e *Engine) Close() {
	for i := len(e.closers) - 1; i >= 0; i-- {
		e.closers[i]()
	}
	e.closers = nil
}
