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
package conf

import (
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/go-arcade/pulse/internal/pkg/notify"
	"github.com/go-arcade/pulse/pkg/http"
	"github.com/go-arcade/pulse/pkg/log"
	"github.com/go-arcade/pulse/pkg/metrics"
	"github.com/go-arcade/pulse/pkg/safe"
	"github.com/go-arcade/pulse/pkg/trace"
	"github.com/pkg/errors"
	"github.com/spf13/viper"
)

// EnvPrefix prefixes environment overrides, e.g. PULSE_HTTP_PORT=9090.
const EnvPrefix = "PULSE"

type AppConfig struct {
	Log     log.Conf              `mapstructure:"log"`
	Http    http.Http             `mapstructure:"http"`
	Metrics metrics.MetricsConfig `mapstructure:"metrics"`
	Trace   trace.Conf            `mapstructure:"trace"`
	Notify  notify.Conf           `mapstructure:"notify"`
}

// Loader owns the viper instance and the latest decoded AppConfig.
type Loader struct {
	v *viper.Viper

	mu       sync.RWMutex
	cfg      AppConfig
	onChange []func(AppConfig)
}

// NewLoader reads configFile (toml) and applies PULSE_* overrides.
func NewLoader(configFile string) (*Loader, error) {
	v := viper.New()
	v.SetConfigFile(configFile)
	v.SetConfigType("toml")
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		return nil, errors.Wrapf(err, "failed to read configuration file %s", configFile)
	}

	l := &Loader{v: v}
	cfg, err := l.decode()
	if err != nil {
		return nil, err
	}
	l.cfg = cfg
	return l, nil
}

func setDefaults(v *viper.Viper) {
	defaults := log.SetDefaults()
	v.SetDefault("log.output", defaults.Output)
	v.SetDefault("log.path", defaults.Path)
	v.SetDefault("log.filename", defaults.Filename)
	v.SetDefault("log.level", defaults.Level)
	v.SetDefault("log.keepHours", defaults.KeepHours)
	v.SetDefault("log.rotateSize", defaults.RotateSize)
	v.SetDefault("log.rotateNum", defaults.RotateNum)

	v.SetDefault("http.host", "0.0.0.0")
	v.SetDefault("http.port", 8080)
	v.SetDefault("http.accessLog", true)

	v.SetDefault("metrics.host", "0.0.0.0")
	v.SetDefault("metrics.port", 9090)

	v.SetDefault("notify.timeout", 10)
	v.SetDefault("notify.signalDelay", 500)
	v.SetDefault("notify.locale", "en")
}

func (l *Loader) decode() (AppConfig, error) {
	var cfg AppConfig
	if err := l.v.Unmarshal(&cfg); err != nil {
		return cfg, errors.Wrap(err, "failed to unmarshal configuration file")
	}
	cfg.Http.SetDefaults()
	cfg.Notify.SetDefaults()
	if err := cfg.Log.Validate(); err != nil {
		return cfg, errors.Wrap(err, "invalid log configuration")
	}
	return cfg, nil
}

// Config returns the latest configuration.
func (l *Loader) Config() AppConfig {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.cfg
}

// OnChange registers fn to run after a successful reload.
func (l *Loader) OnChange(fn func(AppConfig)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.onChange = append(l.onChange, fn)
}

// Watch reloads the configuration whenever the file changes. An invalid
// file keeps the previous configuration.
func (l *Loader) Watch() {
	l.v.OnConfigChange(func(e fsnotify.Event) {
		log.Infow("configuration file changed", "file", e.Name, "op", e.Op.String())
		l.reload()
	})
	l.v.WatchConfig()
}

func (l *Loader) reload() {
	cfg, err := l.decode()
	if err != nil {
		log.Errorw("failed to reload configuration", "error", err)
		return
	}

	l.mu.Lock()
	l.cfg = cfg
	hooks := append([]func(AppConfig){}, l.onChange...)
	l.mu.Unlock()

	for _, fn := range hooks {
		safe.Do(func() { fn(cfg) })
	}
}
