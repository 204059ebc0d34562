// cmd/server/main.go
package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"

	"github.com/cevta/vat-license-backend/internal/config"
	"github.com/cevta/vat-license-backend/internal/database"
	"github.com/cevta/vat-license-backend/internal/i18n"
	"github.com/cevta/vat-license-backend/internal/router"
	"github.com/cevta/vat-license-backend/internal/utils"
)

func main() {
	logrus.SetFormatter(&logrus.JSONFormatter{})

	cfg, err := config.Load()
	if err != nil {
		logrus.WithError(err).Fatal("Failed to load configuration")
	}

	if cfg.JWT.Secret != "" {
		utils.SetJWTSecret(cfg.JWT.Secret)
	}

	if err := i18n.Initialize(); err != nil {
		logrus.WithError(err).Fatal("Failed to initialize translations")
	}

	db, err := database.Initialize(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to connect to database")
	}

	if err := database.RunMigrations(db); err != nil {
		logrus.WithError(err).Fatal("Failed to run migrations")
	}

	if err := database.SeedInitialData(db, os.Getenv("ADMIN_EMAIL"), os.Getenv("ADMIN_PASSWORD")); err != nil {
		logrus.WithError(err).Fatal("Failed to seed initial data")
	}

	engine, err := router.Setup(db, cfg)
	if err != nil {
		logrus.WithError(err).Fatal("Failed to set up router")
	}

	srv := &http.Server{
		Addr:    cfg.Server.Host + ":" + cfg.Server.Port,
		Handler: engine,
	}

	go func() {
		logrus.WithField("addr", srv.Addr).Info("Starting server")
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("Server failed")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logrus.Info("Shutting down server...")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("Forced shutdown")
	}
	if err := database.Close(db); err != nil {
		logrus.WithError(err).Error("Failed to close database")
	}

	logrus.Info("Server stopped")
}
