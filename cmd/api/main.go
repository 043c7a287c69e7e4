package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"moa/internal/bootstrap"
	"moa/internal/http/handlers"
	httpapi "moa/internal/http/httpapi"
	"moa/internal/infra"
)

func main() {
	// .env is optional
	_ = godotenv.Load()

	cfg, err := infra.LoadConfig()
	if err != nil {
		panic(err)
	}
	logger := infra.NewLogger(cfg.AppEnv)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := infra.InitTracing(ctx, cfg, "moa-api")
	if err != nil {
		logger.Fatal().Err(err).Msg("api: tracing setup failed")
	}
	defer func() {
		if err := shutdownTracing(context.Background()); err != nil {
			logger.Warn().Err(err).Msg("api: tracing shutdown failed")
		}
	}()

	engine, err := bootstrap.Open(ctx, cfg, logger, bootstrap.DispatchAsync)
	if err != nil {
		logger.Fatal().Err(err).Msg("api: engine setup failed")
	}
	defer engine.Close()

	app := handlers.NewApp(engine.Service, logger)
	router := httpapi.NewRouter(app, httpapi.Options{
		JWTSecret:       cfg.JWTSecret,
		RateLimitPerMin: cfg.RateLimitPerMin,
		CORSOrigins:     cfg.CORSOrigins,
		Logger:          logger,
	})

	server := infra.NewHTTPServer(cfg, router, logger)
	if err := server.Run(ctx, cfg.HTTPIdleTimeout); err != nil {
		logger.Error().Err(err).Msg("api: http server failed")
	}
	logger.Info().Msg("api: stopped")
}
