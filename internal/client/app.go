package client

import (
	"context"
	"errors"
	"fmt"

	"github.com/mintid/mintid/internal/adapter"
	"github.com/mintid/mintid/internal/config"
	"github.com/mintid/mintid/internal/identity"
	"github.com/mintid/mintid/internal/logger"
	"github.com/mintid/mintid/internal/session"
	"github.com/mintid/mintid/internal/store"
	"github.com/mintid/mintid/internal/tui"
	"github.com/mintid/mintid/internal/workers"
	"github.com/mintid/mintid/models"
)

// App is the terminal client: sign-in flow, role-routed dashboard, local
// session cache, and the background session refresh job.
type App struct {
	cfg     *config.ClientConfig
	cache   store.SessionCache
	manager *session.Manager
	jobs    *workers.Workers
	tui     *tui.TUI

	logger *logger.Logger
}

func NewApp(buildInfo models.AppBuildInfo) (*App, error) {
	log := logger.NewClientLogger("client")

	cfg, err := config.GetClientConfig()
	if err != nil {
		return nil, fmt.Errorf("load client config: %w", err)
	}

	cache, err := store.NewSessionCache(context.Background(), cfg.Cache, log)
	if err != nil {
		return nil, fmt.Errorf("open session cache: %w", err)
	}

	backend := adapter.NewHTTPBackendAdapter(adapter.HTTPClientConfig{
		BaseURL: cfg.Adapter.HTTPAddress,
		Timeout: cfg.Adapter.RequestTimeout,
	})

	operators := identity.NewOperators([]identity.Operator{
		{Username: cfg.App.OperatorUsername, Email: cfg.App.OperatorEmail},
	})

	manager := session.NewManager(backend, cache, operators, log)

	if version, err := backend.ServerVersion(context.Background()); err == nil {
		log.Info().Str("server_version", version).Msg("backend reachable")
	}

	jobs := workers.New(
		session.NewRefreshJob(manager, cfg.Workers.RefreshInterval),
	)

	return &App{
		cfg:     cfg,
		cache:   cache,
		manager: manager,
		jobs:    jobs,
		tui:     tui.New(manager, buildInfo),
		logger:  log,
	}, nil
}

// Run drives the session lifecycle: restore a cached session if one is still
// valid, otherwise run the sign-in flow, then hand over to the dashboard
// loop. A logout from the dashboard starts the cycle over.
func (a *App) Run() error {
	defer func() {
		if err := a.cache.Close(); err != nil {
			a.logger.Warn().Err(err).Msg("close session cache")
		}
	}()

	ctx := context.Background()

	for {
		if err := a.manager.Restore(ctx); err != nil {
			a.logger.Warn().Err(err).Msg("session restore failed")
		}

		if !a.manager.State().Session.Established() {
			if err := a.tui.LoginFlow(ctx); err != nil {
				if errors.Is(err, tui.ErrUserQuit) {
					return nil
				}
				return err
			}
		}

		a.jobs.StartAll(ctx)
		logout, err := a.tui.MainLoop(ctx)
		a.jobs.StopAll()

		if err != nil {
			return err
		}
		if !logout {
			return nil
		}
	}
}
