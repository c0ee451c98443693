package main

import (
	"context"
	"embed"
	"log/slog"
	"os"

	"github.com/ghuser/worktrack/pkg/config"
	"github.com/ghuser/worktrack/pkg/migrator"
)

//go:embed *.sql
var MigrationsFS embed.FS

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	if err := migrator.RunMigrations(context.Background(), cfg.DatabaseURL, "tracker_goose_db_version", MigrationsFS); err != nil {
		slog.Error("tracker migrations failed", "error", err)
		os.Exit(1)
	}
	slog.Info("tracker migrations applied")
}
