package main

import (
	"context"
	"errors"
	"flag"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/diewo77/computer-store/internal/app"
	"github.com/diewo77/computer-store/internal/config"
	"github.com/diewo77/computer-store/internal/db"
	"github.com/diewo77/computer-store/internal/server"
	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"
)

var initOnlyFlag = flag.Bool("init-only", false, "Create missing tables and seed data, then exit")

func main() {
	flag.Parse()

	// Load environment variables from .env file
	_ = godotenv.Load()

	cfg := config.Load()
	configureLogging(cfg.Log)

	if *initOnlyFlag {
		gdb, err := db.Open(cfg.Database)
		if err != nil {
			logrus.WithError(err).Fatal("open database")
		}
		defer db.Close(gdb)
		if err := db.Init(gdb); err != nil {
			logrus.WithError(err).Error("initialisation finished with errors")
			return
		}
		logrus.WithField("path", cfg.Database.Path).Info("initialisation completed")
		return
	}

	a, err := app.New(cfg)
	if err != nil {
		logrus.WithError(err).Fatal("start application")
	}
	defer func() {
		if err := a.Close(); err != nil {
			logrus.WithError(err).Warn("close store")
		}
	}()

	srv := &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      server.New(a),
		ReadTimeout:  config.Timeout(cfg.Server.ReadTimeout),
		WriteTimeout: config.Timeout(cfg.Server.WriteTimeout),
		IdleTimeout:  config.Timeout(cfg.Server.IdleTimeout),
	}

	go func() {
		logrus.WithFields(logrus.Fields{"addr": srv.Addr, "db": cfg.Database.Path, "dev": cfg.App.Dev}).Info("server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logrus.WithError(err).Fatal("server error")
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logrus.Info("shutdown signal received")

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logrus.WithError(err).Error("shutdown")
	}
	logrus.Info("server stopped gracefully")
}

func configureLogging(cfg config.LogConfig) {
	if cfg.Format == "json" {
		logrus.SetFormatter(&logrus.JSONFormatter{})
	} else {
		logrus.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	}
	level, err := logrus.ParseLevel(cfg.Level)
	if err != nil {
		logrus.WithField("level", cfg.Level).Warn("unknown log level, using info")
		level = logrus.InfoLevel
	}
	logrus.SetLevel(level)
}
