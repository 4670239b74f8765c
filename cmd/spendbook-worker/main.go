package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"spendbook/internal/config"
	"spendbook/internal/events"
	applog "spendbook/internal/log"
	"spendbook/internal/worker"
)

func main() {
	// Load .env file for local development (ignore errors in production/docker)
	_ = godotenv.Load()

	logger := applog.New(applog.Config{}).WithComponent(applog.ComponentEvents)
	applog.SetDefault(logger)

	logger.Info("Starting spendbook-worker")

	cfg := config.Load()
	if err := cfg.Validate(); err != nil {
		logger.Error("Configuration validation failed", applog.FieldError, err)
		os.Exit(1)
	}
	// Unlike the web server, the worker is pointless without a broker.
	if cfg.AMQPURL == "" {
		logger.Error("AMQP_URL is required for the audit worker")
		os.Exit(1)
	}

	client, err := events.NewClient(cfg.AMQPURL, cfg.AMQPExchange, cfg.AMQPQueue)
	if err != nil {
		logger.Error("Failed to connect to AMQP", applog.FieldError, err)
		os.Exit(1)
	}
	defer client.Close()

	auditor, err := worker.NewAuditor(cfg.AuditLogPath)
	if err != nil {
		logger.Error("Failed to initialize audit log", applog.FieldError, err, "path", cfg.AuditLogPath)
		os.Exit(1)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	logger.Info("Consuming expense events", "queue", cfg.AMQPQueue, "audit_log", cfg.AuditLogPath)
	if err := client.Consume(ctx, auditor.HandleEvent); err != nil && !errors.Is(err, context.Canceled) {
		logger.Error("Event consumption failed", applog.FieldError, err)
		os.Exit(1)
	}

	logger.Info("Worker stopped gracefully")
}
