// main.go
package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"stockmanager/alerts"
	"stockmanager/config"
	"stockmanager/controllers"
	"stockmanager/logger"
	"stockmanager/routes"
	"stockmanager/services/analytics"
	"stockmanager/services/auth"
	"stockmanager/store"
)

func main() {
	cfg, err := config.Load("")
	if err != nil {
		panic(err)
	}

	baseLogger := logger.Must(logger.New(cfg.Debug))
	defer func() { _ = baseLogger.Sync() }()

	zap.ReplaceGlobals(baseLogger)

	if cfg.UsesDefaultSecret() {
		baseLogger.Warn("JWT_SECRET not set, using the development secret")
	}

	creds, err := auth.NewCredentials(cfg.Auth.PasswordScheme)
	if err != nil {
		baseLogger.Fatal("invalid password scheme", zap.Error(err))
	}

	// Initialize the database.
	db, err := config.OpenDB(cfg.Database.Path)
	if err != nil {
		baseLogger.Fatal("failed to open database", zap.Error(err))
	}
	if err := config.CreateTables(db, logger.Named(baseLogger, "db")); err != nil {
		baseLogger.Fatal("failed to create tables", zap.Error(err))
	}

	st := store.New(db, logger.Named(baseLogger, "store"))
	defer func() {
		if err := st.Close(); err != nil {
			baseLogger.Error("failed to close database", zap.Error(err))
		}
	}()

	authSvc := auth.NewService(st, creds, logger.Named(baseLogger, "svc.auth"))
	if cfg.Database.Seed {
		if err := config.Seed(db, authSvc.Credentials().Hash, logger.Named(baseLogger, "db.seed")); err != nil {
			baseLogger.Fatal("failed to seed database", zap.Error(err))
		}
	}
	tokens := auth.NewTokens(cfg.Auth.JWTSecret, cfg.Auth.TokenTTL)
	analyticsSvc := analytics.NewService(st, logger.Named(baseLogger, "svc.analytics"))

	if err := controllers.RegisterValidators(); err != nil {
		baseLogger.Fatal("failed to register validators", zap.Error(err))
	}

	if !cfg.Debug {
		gin.SetMode(gin.ReleaseMode)
	}
	handlers := controllers.New(st, authSvc, tokens, analyticsSvc, cfg.Alerts.LowStockThreshold, logger.Named(baseLogger, "handlers"))
	engine := routes.New(handlers, logger.Named(baseLogger, "router"))

	if cfg.Alerts.CronSchedule != "" {
		var notifier alerts.Notifier
		if cfg.Alerts.WebhookURL != "" {
			notifier = alerts.NewWebhookNotifier(cfg.Alerts.WebhookURL)
		} else {
			notifier = alerts.NewLogNotifier(logger.Named(baseLogger, "alerts.log"))
		}

		sched := alerts.NewScheduler(cfg.Alerts.CronSchedule, cfg.Alerts.LowStockThreshold, analyticsSvc, notifier, logger.Named(baseLogger, "alerts"))
		if err := sched.Start(); err != nil {
			baseLogger.Fatal("failed to start low stock scheduler", zap.Error(err))
		}
		defer sched.Stop()
	}

	srv := &http.Server{
		Addr:         ":" + cfg.Server.Port,
		Handler:      engine,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		baseLogger.Info("server starting", zap.String("port", cfg.Server.Port))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			baseLogger.Fatal("http server crashed", zap.Error(err))
		}
	}()

	<-ctx.Done()
	baseLogger.Info("shutdown signal received")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(shutdownCtx); err != nil {
		baseLogger.Error("graceful shutdown failed", zap.Error(err))
	}
}
