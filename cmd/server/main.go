package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sharedcustody/custody-calendar/internal/api"
	"github.com/sharedcustody/custody-calendar/internal/core/ports"
	"github.com/sharedcustody/custody-calendar/internal/core/service"
	"github.com/sharedcustody/custody-calendar/internal/infrastructure/queue"
	"github.com/sharedcustody/custody-calendar/internal/pkg/config"
	"github.com/sharedcustody/custody-calendar/pkg/logger"
)

const shutdownTimeout = 10 * time.Second

// @title        Custody Calendar API
// @version      1.0
// @description  Shared-custody calendar: accounts, per-user custody documents and reports.
// @BasePath     /
// @securityDefinitions.apikey  BearerAuth
// @in                          header
// @name                        Authorization
func main() {
	cfg := config.Load()
	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.LogPretty,
		Service: "custody-api",
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if cfg.JWTSecret == "change-me" && cfg.Env == "production" {
		log.Warn().Msg("JWT_SECRET is the default value")
	}

	store, err := openBackend(ctx, cfg, logger.Component("store"))
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.StoreBackend).Msg("failed to open store")
	}
	defer func() {
		closeCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := store.close(closeCtx); err != nil {
			log.Error().Err(err).Msg("failed to close store")
		}
	}()

	var notifier ports.ChangeNotifier = queue.NopNotifier{}
	if cfg.AMQP.URL != "" {
		notifier = queue.NewAMQPNotifier(cfg.AMQP.URL, cfg.AMQP.Queue, logger.Component("notifier"))
		log.Info().Str("queue", cfg.AMQP.Queue).Msg("document notifications enabled")
	}

	authService := service.NewAuthService(store.credentials, store.throttle, cfg.JWTSecret, cfg.TokenTTL, logger.Component("auth"))
	documentService := service.NewDocumentService(store.documents, notifier, logger.Component("documents"))
	reportService := service.NewReportService(cfg.Guardians.Names())

	e := api.NewRouter(api.Services{
		Auth:      authService,
		Documents: documentService,
		Reports:   reportService,
	}, api.Options{
		JWTSecret:    cfg.JWTSecret,
		RequireToken: cfg.RequireToken,
		Readiness:    store.readiness,
		Log:          logger.Component("http"),
	})

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("env", cfg.Env).
			Str("backend", cfg.StoreBackend).
			Msg("listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("server stopped")
			stop()
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}
