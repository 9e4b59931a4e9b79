package app

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"weatherview.app/internal/adapters/api"
	"weatherview.app/internal/adapters/infrastructure"
	"weatherview.app/internal/config"
	"weatherview.app/internal/core/forecasts"
	"weatherview.app/internal/core/observations"
	"weatherview.app/internal/core/preferences"
	"weatherview.app/internal/core/stations"
	"weatherview.app/internal/core/weather"
	"weatherview.app/internal/ports"
)

type Application struct {
	config *config.Config
	deps   *DependencyContainer

	preferences *preferences.Preferences
	scheduler   *infrastructure.RefreshScheduler
	diagnostics *api.HTTPServerAdapter
	stopServer  context.CancelFunc
	serverDone  chan struct{}
}

// NewApplication wires every adapter and restores the stored forecast provider
func NewApplication(ctx context.Context, cfg *config.Config, logger *slog.Logger) (*Application, error) {
	deps, err := NewDependencyContainer(ctx, cfg, logger)
	if err != nil {
		return nil, err
	}

	p := deps.ApplicationPorts()
	app := &Application{
		config:      cfg,
		deps:        deps,
		preferences: preferences.New(p.PreferenceStore, p.Logger),
	}

	if site, ok := app.preferences.LoadForecastSite(ctx); ok {
		if err := deps.Repository().SetForecastSite(site.String()); err != nil {
			p.Logger.Warn("Stored forecast site is not available", ports.F("site", site.String()), ports.F("error", err.Error()))
		}
	}

	return app, nil
}

func (a *Application) NewStationsPresenter(view stations.View) *stations.Presenter {
	return stations.NewPresenter(a.deps.Repository(), view, a.Logger())
}

func (a *Application) NewObservationsPresenter(view observations.View) *observations.Presenter {
	return observations.NewPresenter(a.deps.Repository(), view, a.Logger())
}

func (a *Application) NewForecastsPresenter(view forecasts.View) *forecasts.Presenter {
	return forecasts.NewPresenter(a.deps.Repository(), view, a.Logger())
}

// RememberForecastSite stores the current provider so the next start selects it again
func (a *Application) RememberForecastSite(ctx context.Context) {
	a.preferences.SaveForecastSite(ctx, a.deps.Repository().ForecastSite())
}

// ChartOptions returns the configured chart partitioning
func (a *Application) ChartOptions() forecasts.ChartOptions {
	display := a.deps.ApplicationPorts().ConfigProvider.GetDisplayConfig()
	return forecasts.ChartOptions{
		Location:            display.Location,
		ZeroFillUnparseable: display.ZeroFillUnparseable,
	}
}

func (a *Application) Preferences() *preferences.Preferences {
	return a.preferences
}

func (a *Application) Repository() *weather.Repository {
	return a.deps.Repository()
}

// EventLoop is the UI goroutine every presenter callback runs on
func (a *Application) EventLoop() *infrastructure.EventLoop {
	return a.deps.EventLoop()
}

func (a *Application) Logger() ports.Logger {
	return a.deps.ApplicationPorts().Logger
}

// StartDiagnostics serves health, metrics and cache statistics in the background.
// It does nothing when no address is configured.
func (a *Application) StartDiagnostics(ctx context.Context) error {
	if a.config.Diagnostics.Addr == "" || a.diagnostics != nil {
		return nil
	}

	server, err := api.NewHTTPServerAdapter(api.ServerOptions{
		Config: api.ServerConfig{Addr: a.config.Diagnostics.Addr},
		Health: infrastructure.NewSystemHealthChecker(a.deps.HealthCheckers()...),
		Diagnostics: infrastructure.NewDiagnosticsReporter(infrastructure.DiagnosticsReporterConfig{
			Providers:    a.deps.ProviderInfo(),
			CacheMetrics: a.deps.ApplicationPorts().CacheMetrics,
		}),
		MetricsHandler: a.deps.Metrics().Handler(),
		Logger:         a.Logger(),
	})
	if err != nil {
		return fmt.Errorf("create diagnostics server: %w", err)
	}

	serverCtx, cancel := context.WithCancel(ctx)
	a.diagnostics = server
	a.stopServer = cancel
	a.serverDone = make(chan struct{})

	go func() {
		defer close(a.serverDone)
		a.Logger().Info("Diagnostics server starting", ports.F("addr", a.config.Diagnostics.Addr))
		if err := server.Start(serverCtx); err != nil {
			a.Logger().Error("Diagnostics server failed", ports.F("error", err.Error()))
		}
	}()
	return nil
}

// StartRefresh posts refresh to the event loop every interval. A non-positive interval
// falls back to the configured one, and refresh is disabled when both are zero.
func (a *Application) StartRefresh(name string, interval time.Duration, refresh func()) error {
	if interval <= 0 {
		interval = time.Duration(a.config.Refresh.IntervalMinutes) * time.Minute
	}
	if interval <= 0 {
		return nil
	}

	if a.scheduler == nil {
		a.scheduler = infrastructure.NewRefreshScheduler(a.deps.EventLoop(), a.Logger())
	}
	if err := a.scheduler.Every(interval, name, refresh); err != nil {
		return fmt.Errorf("schedule %s: %w", name, err)
	}
	a.scheduler.Start()
	return nil
}

// Shutdown stops background work and closes every store. Pending favourites are written first.
func (a *Application) Shutdown(ctx context.Context) error {
	a.Logger().Info("Shutting down application...")

	if a.scheduler != nil {
		a.scheduler.Stop()
	}

	if a.stopServer != nil {
		a.stopServer()
		select {
		case <-a.serverDone:
		case <-ctx.Done():
			a.Logger().Warn("Diagnostics server did not stop in time")
		}
	}

	if err := a.deps.Cleanup(); err != nil {
		return fmt.Errorf("cleanup: %w", err)
	}

	a.Logger().Info("Application shutdown complete")
	return nil
}
