// Copyright 2025 Arcade Team
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.
package bootstrap

import (
	"context"
	"time"

	"github.com/go-arcade/pulse/internal/conf"
	"github.com/go-arcade/pulse/internal/pkg/notify"
	"github.com/go-arcade/pulse/internal/router"
	"github.com/go-arcade/pulse/pkg/log"
	"github.com/go-arcade/pulse/pkg/metrics"
	"github.com/go-arcade/pulse/pkg/safe"
	"github.com/go-arcade/pulse/pkg/shutdown"
	"github.com/go-arcade/pulse/pkg/trace"
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

type App struct {
	HttpApp  *fiber.App
	Metrics  *metrics.Server
	Store    *notify.InMemoryConfigurationRepository
	Shutdown *shutdown.Manager
	Logger   *zap.Logger
	AppConf  conf.AppConfig
}

// InitAppFunc init app function type
type InitAppFunc func(appConf conf.AppConfig, logger *zap.Logger) (*App, func(), error)

func NewApp(
	rt *router.Router,
	logger *zap.Logger,
	metricsServer *metrics.Server,
	store *notify.InMemoryConfigurationRepository,
	shutdownMgr *shutdown.Manager,
	appConf conf.AppConfig,
) (*App, func(), error) {
	app := &App{
		HttpApp:  rt.Router(),
		Metrics:  metricsServer,
		Store:    store,
		Shutdown: shutdownMgr,
		Logger:   logger,
		AppConf:  appConf,
	}

	cleanup := func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := metricsServer.Stop(ctx); err != nil {
			logger.Error("Failed to stop metrics server", zap.Error(err))
		}
	}
	return app, cleanup, nil
}

// ReloadConfigurations replaces the stored notification configurations with
// those of a reloaded config. Channel settings (timeout, API base, signal
// delay, locale) are bound at startup and only take effect after a restart.
func (a *App) ReloadConfigurations(cfg conf.AppConfig) {
	skipped := a.Store.Replace(context.Background(), cfg.Notify.Configurations)
	if skipped > 0 {
		log.Warnw("skip notification configurations without id", "count", skipped)
	}
	log.Infow("notification configurations reloaded", "count", len(cfg.Notify.Configurations)-skipped)

	if restartRequired(a.AppConf.Notify, cfg.Notify) {
		log.Warnw("notify channel settings changed, restart to apply",
			"timeout", cfg.Notify.Timeout,
			"telegramApiBase", cfg.Notify.TelegramAPIBase,
			"signalDelay", cfg.Notify.SignalDelay,
			"locale", cfg.Notify.Locale,
		)
	}
}

func restartRequired(running, next notify.Conf) bool {
	return running.Timeout != next.Timeout ||
		running.TelegramAPIBase != next.TelegramAPIBase ||
		running.SignalDelay != next.SignalDelay ||
		running.Locale != next.Locale
}

// Bootstrap init app, return App instance and cleanup function
func Bootstrap(configFile string, initApp InitAppFunc) (*App, func(), error) {
	loader, err := conf.NewLoader(configFile)
	if err != nil {
		return nil, nil, err
	}
	appConf := loader.Config()

	logger, err := log.NewLog(&appConf.Log)
	if err != nil {
		return nil, nil, err
	}
	log.Infow("configuration loaded", "file", configFile)

	_, traceCleanup, err := trace.InitTracerProvider(context.Background(), appConf.Trace)
	if err != nil {
		return nil, nil, err
	}

	// Wire build App
	app, cleanup, err := initApp(appConf, logger)
	if err != nil {
		traceCleanup()
		return nil, nil, err
	}

	loader.OnChange(app.ReloadConfigurations)
	loader.Watch()

	return app, func() {
		cleanup()
		traceCleanup()
		_ = log.Sync()
	}, nil
}

// Run start app and wait for exit signal, then gracefully shutdown
func Run(app *App, cleanup func()) {
	logger := app.Logger.Sugar()
	appConf := app.AppConf

	if err := app.Metrics.Start(); err != nil {
		logger.Errorw("Metrics server failed to start", "error", err)
	}

	stopSignals := app.Shutdown.ListenSignals()
	defer stopSignals()

	safe.Go(func() {
		addr := appConf.Http.Addr()
		logger.Infow("HTTP listener started", "address", addr)
		if err := app.HttpApp.Listen(addr); err != nil {
			logger.Errorw("HTTP listener failed", "address", addr, "error", err)
			app.Shutdown.Shutdown("listener failed")
		}
	})

	<-app.Shutdown.Done()
	logger.Infof("Received %s, shutting down gracefully...", app.Shutdown.Reason())

	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(),
		time.Duration(appConf.Http.ShutdownTimeout)*time.Second)
	defer shutdownCancel()
	if err := app.HttpApp.ShutdownWithContext(shutdownCtx); err != nil {
		logger.Errorf("HTTP server shutdown error: %v", err)
	} else {
		logger.Info("HTTP server shut down gracefully")
	}

	cleanup()

	logger.Info("Server shutdown complete")
}
