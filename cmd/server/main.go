package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"

	"github.com/light-bringer/sapsync-service/internal/config"
	"github.com/light-bringer/sapsync-service/internal/pkg/logging"
	"github.com/light-bringer/sapsync-service/internal/services"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to run server: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx := context.Background()

	// 1. Load configuration from environment variables
	cfg := config.Load()
	logger := logging.New(cfg.LogLevel)

	logger.Info("starting sync service",
		"spanner_database", cfg.SpannerDB,
		"http_port", cfg.HTTPPort,
		"workers", cfg.Workers)

	// 2. Initialize service dependencies (DI container)
	serviceOpts, err := services.NewServiceOptions(ctx, cfg, logger)
	if err != nil {
		return fmt.Errorf("failed to initialize service: %w", err)
	}
	defer serviceOpts.Close()

	// 3. Start the task workers
	serviceOpts.Dispatcher.Start(ctx)

	// 4. Create the HTTP server and mount the API
	app := fiber.New(fiber.Config{
		AppName:               "sapsync-service",
		DisableStartupMessage: true,
	})
	serviceOpts.HTTPHandler.Register(app)

	// 5. Start HTTP server in background
	go func() {
		logger.Info("HTTP server listening", "port", cfg.HTTPPort)
		if err := app.Listen(":" + cfg.HTTPPort); err != nil {
			logger.Error("HTTP server error", "error", err)
		}
	}()

	// 6. Graceful shutdown handling
	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, os.Interrupt, syscall.SIGTERM)
	<-sigCh

	logger.Info("shutting down gracefully")

	if err := app.Shutdown(); err != nil {
		logger.Error("HTTP server shutdown error", "error", err)
	}

	// Dispatcher drains in serviceOpts.Close via the deferred call above.
	return nil
}
