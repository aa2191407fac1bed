// Command catalog is an interactive course catalog over a delimited file.
//
// Usage:
//
//	catalog [path]
//
// path overrides CATALOG_PATH. Set SERVER_ENABLED=true to serve the JSON API
// next to the menu and DATABASE_URL to snapshot each load to PostgreSQL.
package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"

	"github.com/JonMunkholm/coursecatalog/internal/application"
	"github.com/JonMunkholm/coursecatalog/internal/config"
	"github.com/JonMunkholm/coursecatalog/internal/core"
	"github.com/JonMunkholm/coursecatalog/internal/logging"
	"github.com/JonMunkholm/coursecatalog/internal/store"
	"github.com/JonMunkholm/coursecatalog/internal/web"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/joho/godotenv"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintln(os.Stderr, "catalog:", err)
		os.Exit(1)
	}
}

func run() error {
	// Load .env file if it exists (Overload overwrites existing env vars)
	envLoaded := godotenv.Overload() == nil

	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if len(os.Args) > 1 {
		cfg.Catalog.Path = os.Args[1]
	}

	// The menu owns the terminal, so logs go to a file while it runs.
	logFile, err := os.OpenFile(cfg.Logging.File, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o644)
	if err != nil {
		return fmt.Errorf("opening log file: %w", err)
	}
	defer logFile.Close()
	logging.SetupWriter(logFile, cfg.Logging.Level, cfg.Logging.Format)

	slog.Info("configuration loaded", "env_file", envLoaded, "config", cfg.String())

	opts := []core.Option{
		core.WithSeparator(cfg.Catalog.Separator),
		core.WithMapping(mappingFrom(cfg.Catalog)),
	}

	ctx := context.Background()
	var serverOpts []web.Option

	if cfg.Database.StoreEnabled() {
		connectCtx, cancel := context.WithTimeout(ctx, cfg.Database.Timeout)
		pool, err := store.Connect(connectCtx,
			cfg.Database.URL,
			cfg.Database.MaxConns,
			cfg.Database.MinConns,
			cfg.Database.MaxConnLifetime,
			cfg.Database.MaxConnIdleTime,
		)
		cancel()
		if err != nil {
			return fmt.Errorf("connecting to database: %w", err)
		}
		defer pool.Close()

		snapshots := store.New(pool, cfg.Database.Timeout)
		if err := snapshots.EnsureSchema(ctx); err != nil {
			return fmt.Errorf("preparing snapshot table: %w", err)
		}
		opts = append(opts, core.WithSnapshotter(snapshots))
		serverOpts = append(serverOpts, web.WithSnapshots(snapshots))
		slog.Info("snapshot store enabled", "table", store.TableName)
	}

	catalog := core.NewCatalog(opts...)

	if cfg.Server.Enabled {
		server := web.NewServer(catalog, cfg.Catalog.Path, cfg.Server, serverOpts...)
		go func() {
			if err := server.Start(); err != nil {
				slog.Error("server stopped", "error", err)
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.Server.ShutdownTimeout)
			defer cancel()
			if err := server.Shutdown(shutdownCtx); err != nil {
				slog.Error("shutdown error", "error", err)
			}
		}()
	}

	model := application.New(&application.Actions{
		Catalog:     catalog,
		DefaultPath: cfg.Catalog.Path,
	})
	if _, err := tea.NewProgram(model).Run(); err != nil {
		return fmt.Errorf("running menu: %w", err)
	}

	slog.Info("catalog exited")
	return nil
}

// mappingFrom reads columns by header name where configured and by
// position otherwise.
func mappingFrom(cfg config.CatalogConfig) core.Mapping {
	m := core.DefaultMapping()
	if cfg.IDColumn != "" {
		m.ID = core.ByName(cfg.IDColumn)
	}
	if cfg.TitleColumn != "" {
		m.Title = core.ByName(cfg.TitleColumn)
	}
	if cfg.PrereqColumn != "" {
		m.Prerequisites = core.ByName(cfg.PrereqColumn)
	}
	if cfg.AmountColumn != "" {
		m.Amount = core.ByName(cfg.AmountColumn)
	}
	return m
}
