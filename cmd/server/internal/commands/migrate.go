package commands

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/opentrusty/licensehub/internal/config"
	"github.com/opentrusty/licensehub/internal/observability/logger"
	"github.com/opentrusty/licensehub/internal/store/postgres"
)

type MigrateCmd struct {
	Database config.DatabaseConfig `embed:"" prefix:"db-"`
	LogLevel string                `help:"Log level" default:"info" enum:"debug,info,warn,warning,error" env:"LOG_LEVEL"`
}

func (m *MigrateCmd) Run(ctx context.Context, globals *Globals) error {
	if m.Database.AdminURL == "" {
		return errors.New("ADMIN_DB_URL is required")
	}

	logger.InitLogger(logger.Config{
		Level:       m.LogLevel,
		Format:      "text",
		ServiceName: "licensehub-migrate",
	})

	db, err := postgres.New(ctx, postgres.Config{URL: m.Database.AdminURL, MaxConns: 2})
	if err != nil {
		return fmt.Errorf("failed to connect to admin store: %w", err)
	}
	defer db.Close()

	if err := db.Migrate(ctx); err != nil {
		return err
	}

	slog.InfoContext(ctx, "admin store is up to date", logger.String("version", globals.Version))
	return nil
}
