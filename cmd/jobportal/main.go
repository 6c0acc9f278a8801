// @title        JobPortal client
// @version      1.0
// @description  Local web client for the JobPortal Authentication Service: sign in, sign up, role dashboards and session state.
// @host         localhost:3000
// @BasePath     /
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/jobportal/client/internal/api"
	"github.com/jobportal/client/internal/api/metrics"
	"github.com/jobportal/client/internal/core/ports"
	"github.com/jobportal/client/internal/core/service"
	"github.com/jobportal/client/internal/infrastructure/authapi"
	"github.com/jobportal/client/internal/infrastructure/tokenstore"
	"github.com/jobportal/client/internal/pkg/config"
	"github.com/jobportal/client/pkg/logger"
)

const shutdownTimeout = 15 * time.Second

func main() {
	envErr := godotenv.Load()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cfg, err := config.Load(ctx)
	if err != nil {
		logger.Init(logger.Options{})
		bootLog := logger.Get()
		bootLog.Fatal().Err(err).Msg("load config")
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
	})
	if envErr != nil {
		log.Debug().Msg("no .env file found; relying on existing environment")
	}

	storeLog := logger.With(logger.ComponentStore)
	store, closeStore, err := tokenstore.Open(ctx, cfg)
	if err != nil {
		storeLog.Fatal().Err(err).Str("driver", cfg.Store.Driver).Msg("open token store")
	}
	defer func() {
		if err := closeStore(context.Background()); err != nil {
			storeLog.Warn().Err(err).Msg("close token store")
		}
	}()

	authClient := authapi.NewClient(cfg.Backend.URL, cfg.Backend.Timeout)

	sessions := service.NewSessionManager(authClient, store, logger.With(logger.ComponentSession))
	sessions.Subscribe(metrics.ObserveSession)

	// Rehydration finishes before the listener accepts the first request.
	if err := sessions.Rehydrate(ctx); err != nil {
		log.Warn().Err(err).Msg("rehydrate")
	}
	result := "anonymous"
	if sessions.Snapshot().Authenticated() {
		result = "restored"
	}
	metrics.RehydrationsTotal.WithLabelValues(result).Inc()

	e := api.NewRouter(api.Deps{
		Sessions: sessions,
		Stats:    authClient,
		Readiness: map[string]ports.Pinger{
			"token_store":  store,
			"auth_service": authClient,
		},
		Log:        logger.With(logger.ComponentHTTP),
		Registerer: prometheus.DefaultRegisterer,
		Gatherer:   prometheus.DefaultGatherer,
	})

	go func() {
		log.Info().
			Str("port", cfg.Port).
			Str("backend", cfg.Backend.URL).
			Str("token_store", cfg.Store.Driver).
			Msg("jobportal listening")
		if err := e.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Error().Err(err).Msg("http server error")
			stop()
		}
	}()

	<-ctx.Done()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()

	if err := e.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown error")
	}
	log.Info().Msg("jobportal stopped")
}
