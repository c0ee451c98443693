package main

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/ghuser/worktrack/pkg/cache"
	"github.com/ghuser/worktrack/pkg/config"
	"github.com/ghuser/worktrack/pkg/events"
	"github.com/ghuser/worktrack/pkg/logger"
	"github.com/ghuser/worktrack/pkg/storage"
	"github.com/ghuser/worktrack/pkg/telemetry"
	"github.com/ghuser/worktrack/pkg/workflows"
	"github.com/ghuser/worktrack/services/tracker/application/subscribers"
	trackerWorkflows "github.com/ghuser/worktrack/services/tracker/application/workflows"
)

// The worker consumes work item events to keep the Redis read model in sync
// and hosts the Temporal worker that removes deleted documentation content.
func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	if err := config.ValidateForProduction(cfg); err != nil {
		slog.Error("production config validation failed", "error", err)
		os.Exit(1)
	}

	log := logger.New(cfg)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	otelShutdown, _, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	eventBus, err := events.NewEventBus(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL, cache.WithClientName("worktrack-worker"))
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	handlers := subscribers.NewWorkItemCacheHandlers(cache.NewWorkItemCache(redisClient), log)
	topics, err := handlers.Register(ctx, eventBus)
	if err != nil {
		log.Error("failed to register subscribers", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	log.Info("event subscribers registered", "topics", topics)

	contentStore, err := storage.NewS3Store(ctx, cfg)
	if err != nil {
		log.Error("failed to connect to object storage", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	temporalClient, err := workflows.NewTemporalClient(ctx, workflows.TemporalConfig{
		HostPort:  cfg.TemporalHostPort,
		Namespace: cfg.TemporalNamespace,
		TaskQueue: cfg.TemporalTaskQueue,
	}, log)
	if err != nil {
		log.Error("failed to initialize temporal client", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer temporalClient.Close()

	w := temporalClient.NewWorker()
	trackerWorkflows.Register(w, &trackerWorkflows.Activities{Content: contentStore})
	if err := w.Start(); err != nil {
		log.Error("failed to start temporal worker", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer w.Stop()
	log.Info("temporal worker started", "task_queue", cfg.TemporalTaskQueue)

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down worker...")
	cancel()

	// EventBus.Close() (via defer) waits up to 30s for in-flight handlers.
	log.Info("worker stopped")
}
