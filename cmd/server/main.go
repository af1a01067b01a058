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
	"github.com/ErlanBelekov/dashboard-api/internal/email"
	"github.com/ErlanBelekov/dashboard-api/internal/health"
	"github.com/ErlanBelekov/dashboard-api/internal/infrastructure/postgres"
	ctxlog "github.com/ErlanBelekov/dashboard-api/internal/log"
	"github.com/ErlanBelekov/dashboard-api/internal/metrics"
	"github.com/ErlanBelekov/dashboard-api/internal/oauth"
	"github.com/ErlanBelekov/dashboard-api/internal/session"
	httptransport "github.com/ErlanBelekov/dashboard-api/internal/transport/http"
	"github.com/ErlanBelekov/dashboard-api/internal/transport/http/handler"
	"github.com/ErlanBelekov/dashboard-api/internal/usecase"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("config error: %v", err)
	}

	logger := ctxlog.New(os.Stdout, cfg.Env, cfg.SlogLevel())

	if !cfg.IsLocal() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)

	pool, err := postgres.NewPool(ctx, cfg.DatabaseURL)
	if err != nil {
		stop()
		log.Fatalf("db: %v", err)
	}
	defer pool.Close()

	if err := postgres.Migrate(ctx, pool); err != nil {
		stop()
		pool.Close()
		log.Fatalf("migrate: %v", err)
	}

	// Stores
	userRepo := postgres.NewUserRepository(pool)
	accountRepo := postgres.NewAccountRepository(pool)
	sessionRepo := postgres.NewSessionRepository(pool)
	tokenRepo := postgres.NewVerificationTokenRepository(pool)
	statusRepo := postgres.NewStatusRepository(pool)

	// Clients
	signer := session.NewSigner([]byte(cfg.SessionSecret))
	google := oauth.NewGoogleProvider(cfg.Google)
	sender := email.NewSender(cfg.Env, cfg.ResendAPIKey, cfg.ResendFrom, logger)
	if !google.Configured() {
		logger.Warn("google oauth not configured; /api/auth/google will return 503")
	}

	// Usecases
	gate := usecase.NewAccessGate(signer, sessionRepo, userRepo, userRepo)
	authUsecase := usecase.NewAuthUsecase(userRepo, accountRepo, sessionRepo, signer, google, oauth.GenerateState, cfg.SessionTTL)
	resetUsecase := usecase.NewPasswordResetUsecase(userRepo, accountRepo, tokenRepo, sessionRepo, sender, cfg.BaseURL(), cfg.ResetTokenTTL)
	userUsecase := usecase.NewUserUsecase(userRepo, statusRepo)

	handlers := httptransport.Handlers{
		Auth: handler.NewAuthHandler(authUsecase, handler.CookieConfig{
			Secure:     cfg.SessionCookieSecure,
			SessionTTL: cfg.SessionTTL,
		}, logger),
		PasswordReset: handler.NewPasswordResetHandler(resetUsecase, logger),
		Users:         handler.NewUserHandler(userUsecase, logger),
	}

	metrics.Register()
	checker := health.NewChecker(logger, prometheus.DefaultRegisterer, health.Dependency{Name: "postgres", Pinger: pool})

	srv := http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           httptransport.NewRouter(logger, gate, handlers, cfg.SessionCookieSecure),
		ReadHeaderTimeout: 10 * time.Second,
	}

	metricsSrv := metrics.NewServer(":"+cfg.MetricsPort, checker)

	go func() {
		logger.Info("server started", "port", cfg.Port, "base_url", cfg.BaseURL())
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server: %v", err)
		}
	}()

	go func() {
		logger.Info("metrics server started", "port", cfg.MetricsPort)
		if err := metricsSrv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("metrics server", "error", err)
		}
	}()

	<-ctx.Done()
	stop()
	logger.Info("shutting down...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("server shutdown", "error", err)
	}
	if err := metricsSrv.Shutdown(shutdownCtx); err != nil {
		logger.Error("metrics server shutdown", "error", err)
	}
}
