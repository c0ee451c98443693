package app

import (
	"github.com/gorilla/sessions"

	"github.com/ghuser/worktrack/pkg/cache"
	"github.com/ghuser/worktrack/pkg/config"
	"github.com/ghuser/worktrack/pkg/database"
	"github.com/ghuser/worktrack/pkg/events"
	"github.com/ghuser/worktrack/pkg/logger"
	"github.com/ghuser/worktrack/pkg/storage"
	"github.com/ghuser/worktrack/pkg/workflows"
)

// Application holds shared infrastructure dependencies for all services.
// Pass it to every bounded context's Routes call during server initialization.
//
// Logging: app.Logger is backed by a trace-aware handler. Use slog's context
// methods and trace_id, span_id and request_id are injected automatically:
//
//	app.Logger.InfoContext(ctx, "work item created", "work_item_id", id)
//	app.Logger.ErrorContext(ctx, "failed to save", "error", err)
//
// Use app.Logger.Info/Error (no context) only for startup and shutdown messages.
type Application struct {
	Config         *config.Config
	Db             *database.Database
	Logger         logger.Logger
	EventBus       *events.EventBus
	Redis          *cache.RedisClient
	TemporalClient *workflows.TemporalClient
	Storage        *storage.S3Store
	SessionStore   sessions.Store // Redis-backed session store; nil in worker process
}
