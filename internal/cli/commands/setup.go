package commands

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/leapstack-labs/sqlbind/internal/cli/config"
	"github.com/leapstack-labs/sqlbind/internal/cli/output"
	"github.com/leapstack-labs/sqlbind/internal/query"
	"github.com/leapstack-labs/sqlbind/internal/session"
	"github.com/leapstack-labs/sqlbind/internal/state"
	"github.com/leapstack-labs/sqlbind/pkg/adapter"
	"github.com/leapstack-labs/sqlbind/pkg/binder"
	"github.com/leapstack-labs/sqlbind/pkg/catalog"
)

// CommandContext holds common dependencies for CLI commands.
type CommandContext struct {
	Cfg       *config.Config
	Logger    *slog.Logger
	Workspace *Workspace
	Renderer  *output.Renderer
}

// NewCommandContext opens the configured catalog and creates a renderer.
// Returns the context and a cleanup function that must be called (typically via defer).
func NewCommandContext(cmd *cobra.Command) (*CommandContext, func(), error) {
	cfg := config.FromContext(cmd.Context())
	logger := config.GetLogger(cmd.Context())

	ws, err := OpenWorkspace(cmd.Context(), cfg, logger)
	if err != nil {
		return nil, nil, err
	}

	r := output.NewRenderer(cmd.OutOrStdout(), cmd.ErrOrStderr(), output.Mode(cfg.Output))

	cleanup := func() {
		if err := ws.Close(); err != nil {
			logger.Warn("failed to close catalog", "error", err)
		}
	}

	return &CommandContext{
		Cfg:       cfg,
		Logger:    logger,
		Workspace: ws,
		Renderer:  r,
	}, cleanup, nil
}

// Workspace is an open catalog with a binder configured for it.
type Workspace struct {
	Catalog catalog.Catalog
	Binder  *binder.Binder
	// Start is the catalog and database new sessions begin in.
	Start catalog.Session

	closer func() error
}

// Close releases the catalog's resources.
func (w *Workspace) Close() error {
	if w.closer == nil {
		return nil
	}
	return w.closer()
}

// NewSession starts a session in the workspace's start location.
func (w *Workspace) NewSession(logger *slog.Logger) *session.Session {
	return session.New(w.Catalog, w.Binder,
		session.WithCurrent(w.Start),
		session.WithLogger(logger),
	)
}

// OpenWorkspace opens the catalog described by cfg and builds the binder.
func OpenWorkspace(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Workspace, error) {
	ws, err := openCatalog(ctx, cfg.Catalog, logger)
	if err != nil {
		return nil, err
	}

	if cfg.Session.Catalog != "" {
		ws.Start = catalog.Session{Catalog: cfg.Session.Catalog, Database: cfg.Session.Database}
		if ws.Start.Database == "" {
			ws.Start.Database = catalog.DefaultDatabase
		}
	}

	ws.Binder = binder.New(ws.Catalog,
		binder.WithComputedColumns(cfg.Binder.ComputedColumns),
		binder.WithQueryCompiler(newQueryCompiler(cfg.Binder.QueryCompiler, logger)),
		binder.WithLogger(logger),
	)

	logger.Debug("opened catalog",
		"type", cfg.Catalog.Type,
		"catalog", ws.Start.Catalog,
		"database", ws.Start.Database,
	)
	return ws, nil
}

func newQueryCompiler(name string, logger *slog.Logger) binder.QueryCompiler {
	if name == config.CompilerPassthrough {
		return binder.PassthroughCompiler{}
	}
	return query.New(query.WithLogger(logger))
}

func openCatalog(ctx context.Context, cc config.CatalogConfig, logger *slog.Logger) (*Workspace, error) {
	switch cc.Type {
	case config.CatalogMemory:
		m := catalog.NewMemory()
		if cc.Path != "" {
			snap, err := catalog.LoadSnapshotFile(cc.Path)
			if err != nil {
				return nil, fmt.Errorf("failed to load catalog snapshot: %w", err)
			}
			if err := snap.Apply(ctx, m); err != nil {
				return nil, fmt.Errorf("failed to load catalog snapshot: %w", err)
			}
		}
		return &Workspace{Catalog: m, Start: catalog.DefaultSession()}, nil

	case config.CatalogSQLite:
		store, err := openStore(ctx, cc.Path, logger)
		if err != nil {
			return nil, err
		}
		return &Workspace{Catalog: store, Start: catalog.DefaultSession(), closer: store.Close}, nil
	}

	a, err := adapter.NewAdapter(cc.AdapterConfig(), logger)
	if err != nil {
		return nil, err
	}
	if err := a.Connect(ctx, cc.AdapterConfig()); err != nil {
		return nil, fmt.Errorf("failed to connect to %s catalog: %w", cc.Type, err)
	}
	start, err := a.DefaultSession(ctx)
	if err != nil {
		_ = a.Close()
		return nil, fmt.Errorf("failed to read default session: %w", err)
	}
	return &Workspace{Catalog: a, Start: start, closer: a.Close}, nil
}

// openStore opens the SQLite catalog store, creating its directory.
func openStore(ctx context.Context, path string, logger *slog.Logger) (*state.SQLiteStore, error) {
	if path == "" {
		path = config.DefaultSQLitePath
	}
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("failed to create catalog directory: %w", err)
		}
	}

	store := state.NewSQLiteStore(logger)
	if err := store.Open(ctx, path); err != nil {
		return nil, fmt.Errorf("failed to open catalog store: %w", err)
	}
	return store, nil
}
