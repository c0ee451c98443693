package main

import (
	"context"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	httpSwagger "github.com/swaggo/http-swagger/v2"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"

	_ "github.com/ghuser/worktrack/docs/swagger"
	"github.com/ghuser/worktrack/pkg/app"
	"github.com/ghuser/worktrack/pkg/auth"
	"github.com/ghuser/worktrack/pkg/cache"
	"github.com/ghuser/worktrack/pkg/config"
	"github.com/ghuser/worktrack/pkg/database"
	"github.com/ghuser/worktrack/pkg/events"
	"github.com/ghuser/worktrack/pkg/httpx"
	"github.com/ghuser/worktrack/pkg/logger"
	"github.com/ghuser/worktrack/pkg/storage"
	"github.com/ghuser/worktrack/pkg/telemetry"
	"github.com/ghuser/worktrack/pkg/workflows"
	trackerApi "github.com/ghuser/worktrack/services/tracker/application/api"
)

// @title					Worktrack API
// @version				1.0
// @description			Work items, boards, iterations, milestones, projects, organisations, workspaces and documentation.
// @license.name			MIT
// @license.url			https://opensource.org/licenses/MIT
// @host					localhost:8080
// @BasePath				/api
// @schemes				http https
// @securityDefinitions.apikey	SessionCookie
// @in							cookie
// @name						worktrack_session
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

	// Telemetry: OTel tracing + metrics
	ctx := context.Background()
	otelShutdown, metricsHandler, err := telemetry.Setup(ctx, cfg)
	if err != nil {
		log.Error("failed to setup otel", "error", err)
		os.Exit(1)
	}
	defer otelShutdown(ctx) //nolint:errcheck

	// Crash reporting: Sentry (optional, log and continue on failure)
	if err := telemetry.SetupSentry(cfg); err != nil {
		log.Warn("failed to setup sentry, continuing without crash reporting", "error", err)
	}
	defer telemetry.SentryFlush()

	db, err := database.NewPool(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Error("failed to connect to database", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure, deferred flushes are best-effort
	}
	defer db.Close()
	log.Info("database connected")

	eventBus, err := events.NewEventBusWithForwarder(cfg, log)
	if err != nil {
		log.Error("failed to setup event bus", "error", err)
		os.Exit(1) //nolint:gocritic
	}
	defer eventBus.Close() //nolint:errcheck

	if err := eventBus.StartForwarder(ctx); err != nil {
		log.Error("failed to start event forwarder", "error", err)
		os.Exit(1) //nolint:gocritic
	}

	redisClient, err := cache.NewRedisClient(ctx, cfg.RedisURL, cache.WithClientName("worktrack-api"))
	if err != nil {
		log.Error("failed to connect to redis", "error", err)
		os.Exit(1) //nolint:gocritic // intentional: startup failure
	}
	defer redisClient.Close() //nolint:errcheck
	log.Info("redis connected")

	sessionStore := auth.NewSessionStore(redisClient.Client(), auth.SessionConfig{
		AuthKey:       []byte(cfg.SessionAuthKey),
		EncryptionKey: []byte(cfg.SessionEncryptionKey),
		Secure:        cfg.Environment == config.EnvProduction,
		MaxAge:        cfg.SessionMaxAge,
	})
	log.Info("session store initialized", "backend", "redis")

	appConfig := &app.Application{
		Config:       cfg,
		Db:           db,
		Logger:       log,
		EventBus:     eventBus,
		Redis:        redisClient,
		SessionStore: sessionStore,
	}
	health := httpx.HealthChecks{
		Database: db,
		Redis:    redisClient,
		EventBus: eventBus,
	}

	// Documentation content and its cleanup workflow are optional: without
	// them uploads return 503 and deletes clean up inline.
	if store, err := storage.NewS3Store(ctx, cfg); err != nil {
		log.Warn("object storage unavailable, documentation content disabled", "error", err)
	} else {
		appConfig.Storage = store
		health.Storage = store
	}

	if tc, err := workflows.NewTemporalClient(ctx, workflows.TemporalConfig{
		HostPort:  cfg.TemporalHostPort,
		Namespace: cfg.TemporalNamespace,
		TaskQueue: cfg.TemporalTaskQueue,
	}, log); err != nil {
		log.Warn("temporal unavailable, content cleanup runs inline", "error", err)
	} else {
		defer tc.Close()
		appConfig.TemporalClient = tc
		health.Temporal = tc
	}

	r := httpx.NewRouter(
		httpx.ServerConfig{
			ServiceName:        cfg.ServiceName,
			IsDevelopment:      cfg.Environment == config.EnvDevelopment,
			CORSAllowedOrigins: cfg.CORSAllowedOrigins,
			RateLimitPerMinute: cfg.RateLimitPerMinute,
			MaxBodyBytes:       cfg.MaxBodyBytes,
		},
		httpx.Middlewares{
			Recovery: logger.Recovery(log),
			Sentry:   telemetry.SentryMiddleware(),
			Tracing:  otelhttp.NewMiddleware(cfg.ServiceName),
			Logging:  logger.Middleware(log),
		},
	)

	r.Get("/health", httpx.HealthHandler(health))
	r.Get("/metrics", metricsHandler.ServeHTTP)
	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))
	r.Route("/api", func(r chi.Router) {
		registerRoutes(r, appConfig)
	})

	srv := httpx.NewServer(cfg.HTTPAddr, r)

	go func() {
		log.Info("server listening", "addr", srv.Addr, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Error("server error", "error", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("shutting down...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error("forced shutdown", "error", err)
		os.Exit(1)
	}
	log.Info("server stopped")
}

// registerRoutes mounts all service routes under /api.
// Add each new service's route function here.
func registerRoutes(r chi.Router, a *app.Application) {
	trackerApi.TrackerRoutes(r, a)
}
