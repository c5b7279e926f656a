package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"golang.org/x/sync/errgroup"

	"creator-api/internal/config"
	"creator-api/internal/infrastructure"
	"creator-api/internal/infrastructure/crontab"
	"creator-api/internal/infrastructure/logger"
	"creator-api/internal/infrastructure/observability"
	"creator-api/internal/interfaces/httpserver"
)

type Application struct {
	httpServer *httpserver.HTTPServer
	crontab    *crontab.Crontab
	infra      *infrastructure.Infrastructure
}

// @title Creator API
// @version 1.0
// @description Multi-provider caption and hashtag generation for social media creators, with per-tier daily quotas.
// @BasePath /

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.
func (application *Application) Start(ctx context.Context) error {
	defer application.infra.Close()

	eg, ctx := errgroup.WithContext(ctx)
	eg.Go(func() error {
		return application.crontab.Run(ctx)
	})
	eg.Go(func() error {
		return application.httpServer.Run(ctx)
	})
	return eg.Wait()
}

func main() {
	loadEnvFiles()

	log := logger.GetLogger()
	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("load config")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	application, err := CreateApplication()
	if err != nil {
		log.Fatal().Err(err).Msg("create application")
	}
	log = logger.GetLogger()

	otelShutdown, err := observability.Setup(ctx, cfg, log)
	if err != nil {
		log.Error().Err(err).Msg("initialize observability")
	} else {
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := otelShutdown(shutdownCtx); err != nil {
				log.Error().Err(err).Msg("shutdown telemetry")
			}
		}()
	}

	log.Info().
		Str("service", cfg.ServiceName).
		Str("version", config.Version).
		Int("port", cfg.HTTPPort).
		Int("metrics_port", cfg.MetricsPort).
		Msg("starting application")

	if err := application.Start(ctx); err != nil {
		log.Error().Err(err).Msg("application stopped with error")
		stop()
		os.Exit(1)
	}
	log.Info().Msg("application exited cleanly")
}

func loadEnvFiles() {
	for _, path := range []string{".env", "../.env", "../../.env"} {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err != nil {
				fmt.Fprintf(os.Stderr, "warning: failed to load %s: %v\n", path, err)
			}
		}
	}
}
