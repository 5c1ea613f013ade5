// Package cli wires configuration, logging and storage for the cobra
// commands.
package cli

import (
	"context"
	"fmt"

	"github.com/bnema/dusk/internal/application/port"
	"github.com/bnema/dusk/internal/cli/styles"
	xdg "github.com/bnema/dusk/internal/config"
	"github.com/bnema/dusk/internal/infrastructure/config"
	"github.com/bnema/dusk/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/dusk/internal/logging"
)

// App holds CLI dependencies.
type App struct {
	Config  *config.Config
	Manager *config.Manager
	Theme   *styles.Theme
	Version string

	ctx     context.Context
	journal port.TransitionJournal
}

// NewApp loads the configuration and builds the logger context.
func NewApp() (*App, error) {
	manager, err := config.NewManager()
	if err != nil {
		return nil, err
	}
	if err := manager.Load(); err != nil {
		return nil, err
	}
	cfg := manager.Get()

	logger := logging.NewFromConfigValues(cfg.Logging.Level, cfg.Logging.Format)
	ctx := logging.WithContext(context.Background(), logger)

	return &App{
		Config:  cfg,
		Manager: manager,
		Theme:   styles.NewTheme(),
		ctx:     ctx,
	}, nil
}

// Ctx returns the application context carrying the logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Journal lazily opens the transition journal. Returns (nil, nil) when
// journaling is disabled.
func (a *App) Journal() (port.TransitionJournal, error) {
	if !a.Config.History.Enabled {
		return nil, nil
	}
	if a.journal != nil {
		return a.journal, nil
	}

	path := a.Config.History.Path
	if path == "" {
		var err error
		if path, err = xdg.GetDatabaseFile(); err != nil {
			return nil, fmt.Errorf("resolve journal path: %w", err)
		}
	}

	journal, err := sqlite.NewTransitionRepo(a.ctx, path)
	if err != nil {
		return nil, err
	}
	a.journal = journal
	return journal, nil
}

// Close releases held resources.
func (a *App) Close() error {
	if a.journal != nil {
		return a.journal.Close()
	}
	return nil
}
