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
package router

import (
	"github.com/go-arcade/pulse/internal/pkg/notify"
	"github.com/go-arcade/pulse/pkg/http"
	"github.com/go-arcade/pulse/pkg/http/middleware"
	"github.com/go-arcade/pulse/pkg/metrics"
	"github.com/go-arcade/pulse/pkg/shutdown"
	"github.com/go-arcade/pulse/pkg/trace"
	"github.com/go-arcade/pulse/pkg/version"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/google/wire"
	"go.uber.org/zap"
)

// ProviderSet 路由层 ProviderSet
var ProviderSet = wire.NewSet(NewRouter)

type Router struct {
	Http       http.Http
	Dispatcher *notify.Dispatcher
	Notifier   *notify.Notifier
	Store      notify.ConfigurationRepository
	Metrics    *metrics.Server
	Shutdown   *shutdown.Manager
	log        *zap.SugaredLogger
}

func NewRouter(
	cfg http.Http,
	dispatcher *notify.Dispatcher,
	notifier *notify.Notifier,
	store notify.ConfigurationRepository,
	metricsServer *metrics.Server,
	shutdownMgr *shutdown.Manager,
	logger *zap.SugaredLogger,
) *Router {
	if logger == nil {
		logger = zap.NewNop().Sugar()
	}
	return &Router{
		Http:       cfg,
		Dispatcher: dispatcher,
		Notifier:   notifier,
		Store:      store,
		Metrics:    metricsServer,
		Shutdown:   shutdownMgr,
		log:        logger,
	}
}

// Router builds the fiber app with every route registered.
func (rt *Router) Router() *fiber.App {
	app := http.NewFiberApp(rt.Http)

	// panic recover
	app.Use(middleware.ExceptionMiddleware)
	app.Use(middleware.RequestMiddleware())
	app.Use(trace.FiberMiddleware())

	if rt.Http.AccessLog {
		app.Use(http.AccessLogFormat(rt.log))
	}

	if rt.Http.ExposeMetrics && rt.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(rt.Metrics.Handler()))
	}

	app.Get("/health", func(c *fiber.Ctx) error {
		if rt.Shutdown != nil && rt.Shutdown.IsShuttingDown() {
			return c.Status(fiber.StatusServiceUnavailable).SendString("shutting down")
		}
		return c.SendString("ok")
	})

	app.Get("/version", func(c *fiber.Ctx) error {
		return c.JSON(version.GetVersion())
	})

	api := app.Group("/api")
	rt.routerGroup(api)

	// 未匹配的路由
	app.Use(func(c *fiber.Ctx) error {
		return http.WithRepErrStatus(c, fiber.StatusNotFound, http.NotFound, c.Path())
	})

	return app
}

func (rt *Router) routerGroup(r fiber.Router) {
	r.Post("/realtime", rt.realtime)

	route := r.Group("/notifications")
	{
		route.Get("/configurations", rt.listConfigurations)
		route.Post("/send", rt.send)
		route.Post("/test", rt.test)
		route.Post("/:id/test", rt.testByID)
	}
}
