package main

import (
	"context"
	"log/slog"

	"haunt/internal/config"
	"haunt/internal/local"
	"haunt/internal/match"
	"haunt/internal/pvp"
	"haunt/internal/session"
	"haunt/internal/valapi"

	"github.com/wailsapp/wails/v2/pkg/runtime"
)

// App struct
type App struct {
	ctx      context.Context
	settings config.Settings
	log      *slog.Logger

	store      *session.Store
	catalogs   *valapi.Client
	agents     *valapi.AgentCatalog
	tiers      *valapi.TierCatalog
	pvpClient  *pvp.Client
	aggregator *match.Aggregator
	presences  *local.PresenceStream
}

// NewApp creates a new App application struct
func NewApp(settings config.Settings, log *slog.Logger, cache *valapi.CatalogCache) *App {
	catalogs := valapi.NewClient(cache)
	agents := valapi.NewAgentCatalog(catalogs)
	tiers := valapi.NewTierCatalog(catalogs)
	pvpClient := pvp.NewClient()

	return &App{
		settings:  settings,
		log:       log,
		store:     session.New(),
		catalogs:  catalogs,
		agents:    agents,
		tiers:     tiers,
		pvpClient: pvpClient,
		aggregator: &match.Aggregator{
			Source: pvpClient,
			Agents: agents,
			Tiers:  tiers,
			Log:    log,
		},
		presences: local.NewPresenceStream(),
	}
}

// startup is called when the app starts
func (a *App) startup(ctx context.Context) {
	a.ctx = ctx

	// Prefetch the reference catalogs in parallel
	go func() {
		if err := a.agents.Load(); err != nil {
			a.log.Error("failed to load agent catalog", "error", err)
		}
	}()
	go func() {
		if err := a.tiers.Load(); err != nil {
			a.log.Error("failed to load tier catalog", "error", err)
		}
	}()

	a.presences.SetHandler(a.onPresenceUpdate)
}

// shutdown is called when the app is closing
func (a *App) shutdown(ctx context.Context) {
	if a.presences.IsConnected() {
		a.presences.Disconnect()
	}
}

// onPresenceUpdate nudges the frontend whenever the chat service
// reports a presence change, so it can trigger a quick update.
func (a *App) onPresenceUpdate() {
	runtime.EventsEmit(a.ctx, "presence:update", nil)
}
