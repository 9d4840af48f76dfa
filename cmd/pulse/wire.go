//go:build wireinject
// +build wireinject

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
package main

import (
	"github.com/go-arcade/pulse/internal/bootstrap"
	"github.com/go-arcade/pulse/internal/conf"
	"github.com/go-arcade/pulse/internal/pkg/notify"
	"github.com/go-arcade/pulse/internal/router"
	"github.com/go-arcade/pulse/pkg/log"
	"github.com/go-arcade/pulse/pkg/metrics"
	"github.com/go-arcade/pulse/pkg/shutdown"
	"github.com/google/wire"
	"go.uber.org/zap"
)

func initApp(appConf conf.AppConfig, logger *zap.Logger) (*bootstrap.App, func(), error) {
	panic(wire.Build(
		// 配置层
		conf.ProviderSet,
		log.ProvideSugar,
		// 指标
		metrics.ProviderSet,
		wire.Bind(new(notify.Recorder), new(*metrics.NotifyMetrics)),
		// 通知层
		notify.ProviderSet,
		// 路由层
		router.ProviderSet,
		shutdown.NewManager,
		// 应用层
		bootstrap.NewApp,
	))
}
