// Package app wires the notilog components together with fx.
package app

import (
	"context"
	"io"

	"go.uber.org/fx"
	"go.uber.org/fx/fxevent"
	"go.uber.org/zap"

	"github.com/matheus3301/notilog/internal/api"
	"github.com/matheus3301/notilog/internal/bus"
	"github.com/matheus3301/notilog/internal/config"
	"github.com/matheus3301/notilog/internal/dashboard"
	"github.com/matheus3301/notilog/internal/lock"
	"github.com/matheus3301/notilog/internal/logging"
	"github.com/matheus3301/notilog/internal/profile"
	"github.com/matheus3301/notilog/internal/theme"
	"github.com/matheus3301/notilog/internal/tui"
)

// Params holds the resolved profile passed to the fx modules.
type Params struct {
	Profile string
	Debug   bool
	// Console mirrors warnings to a terminal. The TUI leaves it nil.
	Console io.Writer
}

// Core provides everything both front-ends share: config, logger, bus,
// API client, theme toggler and dashboard.
func Core(p Params) fx.Option {
	return fx.Options(
		fx.Supply(p),
		fx.Provide(
			provideConfig,
			provideSettings,
			provideLogger,
			provideBus,
			provideClient,
			provideToggler,
			provideDashboard,
		),
	)
}

// Module returns the fx module for the interactive client: Core plus the
// profile lock, the TUI and its lifecycle hooks.
func Module(p Params) fx.Option {
	return fx.Module("notilog",
		Core(p),
		fx.Provide(
			provideLock,
			provideTUI,
		),
		fx.Invoke(registerLifecycle),
	)
}

// WithZapLogger routes fx's own events to the application logger.
func WithZapLogger() fx.Option {
	return fx.WithLogger(func(log *zap.Logger) fxevent.Logger {
		return &fxevent.ZapLogger{Logger: log.Named("fx")}
	})
}

func provideConfig() (*config.Config, error) {
	return config.LoadOrEmpty(profile.ConfigPath())
}

func provideSettings(p Params, cfg *config.Config) (config.Resolved, error) {
	return cfg.Resolve(p.Profile)
}

func provideLogger(p Params) (*zap.Logger, error) {
	return logging.New(logging.Options{
		Path:    profile.LogPath(p.Profile),
		Profile: p.Profile,
		Console: p.Console,
		Debug:   p.Debug,
	})
}

func provideBus() *bus.Bus {
	return bus.New()
}

func provideClient(r config.Resolved, logger *zap.Logger) (*api.Client, error) {
	return api.NewClient(r.BaseURL,
		api.WithLogger(logger),
		api.WithTimeout(r.Timeout),
	)
}

func provideToggler(b *bus.Bus, logger *zap.Logger) (*theme.Toggler, error) {
	return theme.NewToggler(profile.ConfigPath(), b, logger)
}

func provideDashboard(c *api.Client, b *bus.Bus, t *theme.Toggler, r config.Resolved, logger *zap.Logger) *dashboard.Dashboard {
	return dashboard.New(dashboard.Options{
		Client:    c,
		Bus:       b,
		Logger:    logger,
		Theme:     t,
		ExportDir: r.ExportDir,
	})
}

func provideLock(p Params, logger *zap.Logger) (*lock.Lock, error) {
	if err := profile.EnsureDir(p.Profile); err != nil {
		return nil, err
	}
	logger.Info("acquiring profile lock", zap.String("profile", p.Profile))
	l, err := lock.Acquire(profile.Dir(p.Profile))
	if err != nil {
		return nil, err
	}
	logger.Info("profile lock acquired")
	return l, nil
}

func provideTUI(r config.Resolved, d *dashboard.Dashboard, b *bus.Bus, t *theme.Toggler, c *api.Client, logger *zap.Logger) *tui.App {
	return tui.NewApp(tui.Options{
		Dashboard:       d,
		Bus:             b,
		Logger:          logger,
		Profile:         r.Name,
		Backend:         c.BaseURL(),
		ThemesDir:       profile.ThemesDir(),
		Mode:            t.Mode(),
		RefreshInterval: r.RefreshInterval,
	})
}

func registerLifecycle(lc fx.Lifecycle, sd fx.Shutdowner, ui *tui.App, lk *lock.Lock, r config.Resolved, logger *zap.Logger) {
	lc.Append(fx.Hook{
		OnStart: func(_ context.Context) error {
			logger.Info("starting tui",
				zap.String("backend", r.BaseURL),
				zap.Duration("refresh_interval", r.RefreshInterval),
			)
			go func() {
				code := 0
				if err := ui.Run(); err != nil {
					logger.Error("tui exited with error", zap.Error(err))
					code = 1
				}
				if err := sd.Shutdown(fx.ExitCode(code)); err != nil {
					logger.Warn("shutdown request failed", zap.Error(err))
				}
			}()
			return nil
		},
		OnStop: func(_ context.Context) error {
			ui.Stop()
			if err := lk.Release(); err != nil {
				logger.Warn("error releasing lock", zap.Error(err))
			}
			logger.Info("notilog stopped")
			_ = logger.Sync()
			return nil
		},
	})
}
