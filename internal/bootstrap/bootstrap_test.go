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
	"testing"

	"github.com/go-arcade/pulse/internal/conf"
	"github.com/go-arcade/pulse/internal/pkg/notify"
	"github.com/go-arcade/pulse/internal/router"
	"github.com/go-arcade/pulse/pkg/http"
	"github.com/go-arcade/pulse/pkg/metrics"
	"github.com/go-arcade/pulse/pkg/shutdown"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestApp(t *testing.T) (*App, func()) {
	t.Helper()
	notifyMetrics := metrics.NewNotifyMetrics()
	server, err := metrics.NewMetricsServer(metrics.MetricsConfig{}, notifyMetrics)
	require.NoError(t, err)

	store := notify.NewInMemoryConfigurationRepository(notify.NotificationConfiguration{
		ID: "a", NotificationType: notify.ChannelTypeSignal, SignalNumber: "+1",
	})
	dispatcher := notify.NewDispatcher(notify.Conf{SignalDelay: -1}, nil, notify.WithRecorder(notifyMetrics))
	notifier := notify.NewNotifier(dispatcher, nil, notify.WithStore(store))
	rt := router.NewRouter(http.Http{}, dispatcher, notifier, store, server, shutdown.NewManager(), zap.NewNop().Sugar())

	app, cleanup, err := NewApp(rt, zap.NewNop(), server, store, shutdown.NewManager(), conf.AppConfig{})
	require.NoError(t, err)
	return app, cleanup
}

func TestNewApp(t *testing.T) {
	app, cleanup := newTestApp(t)
	defer cleanup()

	assert.NotNil(t, app.HttpApp)
	assert.NotNil(t, app.Store)
	assert.False(t, app.Shutdown.IsShuttingDown())
}

func TestApp_ReloadConfigurations(t *testing.T) {
	app, cleanup := newTestApp(t)
	defer cleanup()

	cfg := conf.AppConfig{}
	cfg.Notify.Configurations = []notify.NotificationConfiguration{
		{ID: "a", NotificationType: notify.ChannelTypeSignal, SignalNumber: "+2"},
		{ID: "b", NotificationType: notify.ChannelTypeWeCom, WeComWebhookURL: "https://qyapi.example/hook"},
		{NotificationType: notify.ChannelTypeTelegram},
	}
	app.ReloadConfigurations(cfg)

	configs, err := app.Store.List(context.Background())
	require.NoError(t, err)
	require.Len(t, configs, 2)
	assert.Equal(t, "+2", configs[0].SignalNumber)
	assert.Equal(t, "b", configs[1].ID)

	// a configuration removed from the file can no longer be used
	cfg.Notify.Configurations = cfg.Notify.Configurations[1:2]
	app.ReloadConfigurations(cfg)
	_, err = app.Store.Get(context.Background(), "a")
	assert.ErrorIs(t, err, notify.ErrConfigurationNotFound)
}

func TestRestartRequired(t *testing.T) {
	running := notify.Conf{Timeout: 10, SignalDelay: 500, Locale: "en"}
	assert.False(t, restartRequired(running, running))

	next := running
	next.Locale = "zh-CN"
	assert.True(t, restartRequired(running, next))

	next = running
	next.Timeout = 3
	assert.True(t, restartRequired(running, next))
}
