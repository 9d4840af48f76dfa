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
package notify

import (
	"context"

	"github.com/go-arcade/pulse/internal/pkg/notify/template"
	"github.com/go-arcade/pulse/pkg/log"
	"github.com/google/wire"
	"go.uber.org/zap"
)

// ProviderSet provides notify layer related dependencies
var ProviderSet = wire.NewSet(
	ProvideDispatcher,
	ProvideConfigurationRepository,
	ProvideNotifier,
	wire.Bind(new(Router), new(*Dispatcher)),
	wire.Bind(new(ConfigurationRepository), new(*InMemoryConfigurationRepository)),
)

// ProvideDispatcher provides the dispatch router with the real channel adapters
func ProvideDispatcher(conf Conf, logger *zap.SugaredLogger, recorder Recorder) *Dispatcher {
	return NewDispatcher(conf, logger, WithRecorder(recorder))
}

// ProvideConfigurationRepository loads the configurations declared in the config file
func ProvideConfigurationRepository(conf Conf) *InMemoryConfigurationRepository {
	repo := NewInMemoryConfigurationRepository(conf.Configurations...)

	configs, _ := repo.List(context.Background())
	for _, c := range configs {
		log.Debugw("notification configuration loaded", "config", c.Redacted())
	}
	log.Infow("notification configurations loaded", "count", len(configs))
	return repo
}

// ProvideNotifier provides the caller-side notifier
func ProvideNotifier(conf Conf, router Router, store ConfigurationRepository, logger *zap.SugaredLogger) *Notifier {
	conf.SetDefaults()
	return NewNotifier(router, logger,
		WithStore(store),
		WithFormatter(template.NewMarkdownFormatter(conf.Locale)),
	)
}
