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
	"github.com/go-arcade/pulse/internal/pkg/notify"
	"github.com/go-arcade/pulse/pkg/http"
	"github.com/go-arcade/pulse/pkg/metrics"
	"github.com/google/wire"
)

// ProviderSet 提供配置相关的依赖
var ProviderSet = wire.NewSet(
	ProvideHttpConf,
	ProvideMetricsConf,
	ProvideNotifyConf,
)

func ProvideHttpConf(appConf AppConfig) http.Http {
	return appConf.Http
}

func ProvideMetricsConf(appConf AppConfig) metrics.MetricsConfig {
	return appConf.Metrics
}

func ProvideNotifyConf(appConf AppConfig) notify.Conf {
	return appConf.Notify
}
