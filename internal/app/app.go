// Package app wires together all adapters and domain logic.
// It provides lifecycle management for the roost dashboard: create, start, stop.
package app

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/corey/roost/internal/adapters/appconfig"
	"github.com/corey/roost/internal/adapters/bbolt"
	fsw "github.com/corey/roost/internal/adapters/fsnotify"
	"github.com/corey/roost/internal/adapters/web"
	"github.com/corey/roost/internal/config"
	"github.com/corey/roost/internal/domain/catalog"
	rlog "github.com/corey/roost/internal/log"
	"github.com/corey/roost/internal/metrics"
	"github.com/corey/roost/internal/ports"
	"github.com/rs/zerolog"
)

// App is the top-level container wiring all components together.
type App struct {
	Settings  *config.Config
	Paths     *Paths
	Catalog   *catalog.Store
	Store     *bbolt.Store
	Watcher   *fsw.Watcher
	WebServer *web.Server

	logger   zerolog.Logger
	started  time.Time
	stopOnce sync.Once
}

// Config holds initialization parameters for the App.
type Config struct {
	Settings *config.Config  // required; Dir is the config directory
	Source   ports.AppSource // optional: defaults to the YAML files in Settings.Dir
}

// New creates an App with all dependencies wired. Does not start services.
// A config directory with broken app files still starts; the load error is
// logged and the catalog stays empty until a later reload succeeds.
func New(cfg Config) (*App, error) {
	if cfg.Settings == nil {
		return nil, errors.New("settings required")
	}
	if cfg.Settings.Dir == "" {
		return nil, errors.New("config directory required")
	}
	if cfg.Source == nil {
		cfg.Source = appconfig.NewLoader(cfg.Settings.Dir)
	}
	logger := rlog.WithComponent("app")

	paths := NewPaths(cfg.Settings.Dir)
	if err := paths.EnsureDirs(); err != nil {
		return nil, fmt.Errorf("create state dir: %w", err)
	}
	if moved, err := paths.Migrate(); err != nil {
		logger.Warn().Err(err).Msg("migrate state dir")
	} else if moved {
		logger.Info().Str("path", paths.PortFile).Msg("moved port file to run/")
	}

	apps := catalog.NewStore(cfg.Source)
	loadErr := apps.Load()
	metrics.ObserveReload(apps.Len(), loadErr)
	if loadErr != nil {
		logger.Warn().Err(loadErr).Msg("initial app load failed")
	}

	store, err := bbolt.NewStore(paths.DB)
	if err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	watcher, err := fsw.NewWatcher(appconfig.IsDefinition)
	if err != nil {
		store.Close()
		return nil, fmt.Errorf("create watcher: %w", err)
	}

	webServer := web.NewServer(apps, store, web.Options{
		TLD:          cfg.Settings.TLD,
		RateLimit:    cfg.Settings.RateLimit,
		PortFilePath: paths.PortFile,
	})

	return &App{
		Settings:  cfg.Settings,
		Paths:     paths,
		Catalog:   apps,
		Store:     store,
		Watcher:   watcher,
		WebServer: webServer,
		logger:    logger,
	}, nil
}

// Start binds the dashboard and begins watching the config directory.
// Failing to bind is fatal; a watcher failure only disables live reload.
func (a *App) Start() error {
	a.started = time.Now()
	if err := a.WebServer.Start(a.Settings.HTTPPort); err != nil {
		return fmt.Errorf("start dashboard: %w", err)
	}
	if err := a.Watcher.Watch(a.Settings.Dir, a.onConfigChanged); err != nil {
		a.logger.Warn().Err(err).Msg("config watcher unavailable, live reload disabled")
	}
	a.logger.Info().
		Str("dir", a.Settings.Dir).
		Int("apps", a.Catalog.Len()).
		Str("url", a.WebServer.URL()).
		Msg("roost started")
	return nil
}

// Stop shuts down all services. Idempotent.
func (a *App) Stop() error {
	var err error
	a.stopOnce.Do(func() {
		if werr := a.Watcher.Stop(); werr != nil {
			a.logger.Warn().Err(werr).Msg("stop watcher")
		}
		a.WebServer.Stop()
		err = a.Store.Close()
		a.logger.Info().Dur("uptime", time.Since(a.started)).Msg("roost stopped")
	})
	return err
}

// URL returns the dashboard address. Valid after Start.
func (a *App) URL() string {
	return a.WebServer.URL()
}
