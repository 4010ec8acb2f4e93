// Package app wires configuration, storage and services into one explicit
// context object handed to the CLI layer. There are no package-level
// singletons: every component receives its store and logger handles.
package app

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"strings"

	_ "github.com/jackc/pgx/v5/stdlib"

	"github.com/dmitrijs2005/wepost/internal/config"
	"github.com/dmitrijs2005/wepost/internal/logging"
	"github.com/dmitrijs2005/wepost/internal/repositories/repomanager"
	"github.com/dmitrijs2005/wepost/internal/services"
)

// App holds the initialized services backing the CLI commands.
type App struct {
	config *config.Config
	logger logging.Logger
	db     *sql.DB

	Directory  *services.Directory
	Authorizer *services.Authorizer
	Posts      *services.PostService
}

func parseLogLevel(s string) slog.Level {
	switch strings.ToLower(s) {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

// New opens the database, runs migrations, bootstraps the administrator
// account and constructs the services.
func New(ctx context.Context, cfg *config.Config) (*App, error) {
	sl := slog.New(slog.NewJSONHandler(os.Stderr, &slog.HandlerOptions{
		Level: parseLogLevel(cfg.LogLevel),
	}))
	logger := logging.NewSlogLogger(sl)

	db, err := sql.Open("pgx", cfg.DatabaseDSN)
	if err != nil {
		return nil, fmt.Errorf("db open error: %w", err)
	}

	rm := repomanager.NewPostgresRepositoryManager()
	if err := rm.RunMigrations(ctx, db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migration error: %w", err)
	}

	authz := services.NewAuthorizer(rm, logger)
	directory := services.NewDirectory(db, rm, authz, cfg, logger)
	posts := services.NewPostService(db, rm, authz, logger)

	if err := directory.BootstrapAdmin(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	return &App{
		config:     cfg,
		logger:     logger,
		db:         db,
		Directory:  directory,
		Authorizer: authz,
		Posts:      posts,
	}, nil
}

// DB exposes the shared connection handle for authenticate-only flows.
func (a *App) DB() *sql.DB {
	return a.db
}

// Logger returns the application logger.
func (a *App) Logger() logging.Logger {
	return a.logger
}

// Close releases the database connection.
func (a *App) Close() error {
	return a.db.Close()
}
