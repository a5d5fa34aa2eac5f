package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jmorel/goflick/internal/api"
	"github.com/jmorel/goflick/internal/auth"
	"github.com/jmorel/goflick/internal/config"
	"github.com/jmorel/goflick/internal/models"
	"github.com/jmorel/goflick/internal/scheduler"
	"github.com/jmorel/goflick/internal/services/tmdb"
	"github.com/jmorel/goflick/internal/utils"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	// 1. Load configuration
	cfg, err := config.Load()
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}

	// 2. Setup logger
	logger := utils.NewLogger(cfg.LogLevel)
	logger.Info("Starting Goflick")
	logger.WithField("database", cfg.DatabaseFile).Info("Configuration loaded")

	// 3. Initialize account store
	store := models.NewStore(cfg.DatabaseFile)
	if err := store.Init(); err != nil {
		return fmt.Errorf("failed to initialize account store: %w", err)
	}
	logger.Info("Account store initialized")

	// 4. Initialize services
	verifier := auth.NewVerifier(store, logger)
	sessions := auth.NewSessionManager(time.Duration(cfg.SessionTTLHours) * time.Hour)

	catalogClient := tmdb.NewClient(cfg, logger)
	if cfg.TMDBAPIKey == "" {
		logger.Warn("TMDB_API_KEY is not set, catalog requests will fail")
	}
	logger.Info("Catalog client initialized")

	// 5. Initialize scheduler
	sched := scheduler.NewScheduler(sessions, logger)
	if err := sched.Start(); err != nil {
		return fmt.Errorf("failed to start scheduler: %w", err)
	}
	defer sched.Stop()

	// 6. Initialize HTTP server
	server := api.NewServer(cfg, verifier, sessions, catalogClient, logger)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	serverErrChan := make(chan error, 1)
	go func() {
		if err := server.Start(ctx); err != nil {
			serverErrChan <- err
		}
	}()

	// 7. Wait for shutdown signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)

	logger.Info("Goflick is running")

	select {
	case err := <-serverErrChan:
		return fmt.Errorf("server error: %w", err)
	case sig := <-sigChan:
		logger.WithField("signal", sig).Info("Received shutdown signal")
		cancel()
		if err := server.Shutdown(context.Background()); err != nil {
			logger.WithError(err).Error("Error during server shutdown")
		}
	}

	logger.Info("Goflick stopped")
	return nil
}
