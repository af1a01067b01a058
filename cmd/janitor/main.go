package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/ErlanBelekov/dashboard-api/config"
	"github.com/ErlanBelekov/dashboard-api/internal/health"
	"github.com/ErlanBelekov/dashboard-api/internal/infrastructure/postgres"
	"github.com/ErlanBelekov/dashboard-api/internal/janitor"
	ctxlog "github.com/ErlanBelekov/dashboard-api/internal/log"
	"github.com/ErlanBelekov/dashboard-api/internal/metrics"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config: %v", err)
	}

	logger := ctxlog.New(os.Stdout, cfg.Env, cfg.SlogLevel())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	logger.Info("db connected")

	metrics.Register()
	checker := health.NewChecker(logger, prometheus.DefaultRegisterer, health.Dependency{Name: "postgres", Pinger: pool})

	sweeper, err := janitor.NewSweeper(
		cfg.SweepCron,
		postgres.NewSessionRepository(pool),
		postgres.NewVerificationTokenRepository(pool),
		logger,
	)
	if err != nil {
		stop()
		pool.Close()
		log.Fatalf("janitor: %v", err)
	}
	go sweeper.Start(ctx)

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)
	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}

	logger.Info("janitor shut down")
}
