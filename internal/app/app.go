package app

import (
	"context"
	"fmt"
	"time"

	"github.com/vegapp/vegapp/internal/agencebio"
	"github.com/vegapp/vegapp/internal/api"
	"github.com/vegapp/vegapp/internal/auth"
	"github.com/vegapp/vegapp/internal/config"
	"github.com/vegapp/vegapp/internal/logging"
	"github.com/vegapp/vegapp/internal/prefs"
	"github.com/vegapp/vegapp/internal/session"
	"github.com/vegapp/vegapp/internal/syncer"
	"github.com/vegapp/vegapp/internal/ui"
)

// Options configure the Vegapp application.
type Options struct {
	ConfigPath string
	PrefsPath  string // empty uses default ~/.config/vegapp/prefs.toml
}

// Run boots the Vegapp TUI until the context is cancelled.
func Run(ctx context.Context, opts Options) error {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	logger, closer, err := logging.Open(cfg.LogPath)
	if err != nil {
		// A broken log path should not keep the app from starting.
		logger = logging.Discard()
	} else {
		defer func() { _ = closer.Close() }()
	}

	userPrefs, _ := prefs.Load(opts.PrefsPath)

	timeout := time.Duration(cfg.TimeoutSeconds) * time.Second

	client, err := api.NewClient(cfg.APIURL, timeout)
	if err != nil {
		return fmt.Errorf("init api client: %w", err)
	}
	locator, err := agencebio.NewClient(cfg.AgenceBioURL, timeout)
	if err != nil {
		return fmt.Errorf("init agencebio client: %w", err)
	}

	store := session.NewStore(session.Restore(cfg.SessionPath))
	engine := syncer.New(store, client, logger)
	manager := auth.New(store, client, engine, cfg.SessionPath, logger)

	// Keep the session file current while favorites and regimes change.
	StartSaver(ctx, store, cfg.SessionPath, defaultSaveInterval)

	return ui.Run(ui.Options{
		Context:   ctx,
		Store:     store,
		API:       client,
		Locator:   locator,
		Engine:    engine,
		Auth:      manager,
		Config:    cfg,
		Log:       logger,
		ThemeName: userPrefs.Theme,
		PrefsPath: opts.PrefsPath,
	})
}
