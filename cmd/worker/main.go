package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"moa/internal/birthday"
	"moa/internal/bootstrap"
	"moa/internal/infra"
)

func main() {
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := infra.InitTracing(ctx, cfg, "moa-worker")
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: tracing setup failed")
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("worker: tracing shutdown failed")
		}
	}()

	engine, err := bootstrap.Open(ctx, cfg, logger, bootstrap.DispatchAsync)
	if err != nil {
		logger.Fatal().Err(err).Msg("worker: engine setup failed")
	}
	defer engine.Close()

	scheduler := birthday.NewScheduler(engine.Service, cfg.SchedulerInterval, logger)
	if err := scheduler.Run(ctx); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error().Err(err).Msg("worker: stopped with error")
		return
	}
	logger.Info().Msg("worker: stopped")
}
