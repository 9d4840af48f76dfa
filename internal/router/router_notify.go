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
	"context"

	"github.com/go-arcade/pulse/internal/pkg/notify"
	"github.com/go-arcade/pulse/pkg/http"
	"github.com/go-arcade/pulse/pkg/log"
	"github.com/gofiber/fiber/v2"
)

type sendRequest struct {
	Config  notify.NotificationConfiguration `json:"config"`
	Message string                           `json:"message"`
	Status  string                           `json:"status"`
}

type testRequest struct {
	Config      notify.NotificationConfiguration `json:"config"`
	ServiceName string                           `json:"serviceName"`
}

type notifyDetail struct {
	Sent   bool           `json:"sent"`
	Toasts []notify.Toast `json:"toasts"`
}

// realtime 分发原始通知请求，HTTP 状态码与结果一致
func (rt *Router) realtime(c *fiber.Ctx) error {
	res := rt.Dispatcher.DispatchJSON(c.UserContext(), c.Body())

	body, err := res.MarshalJSON()
	if err != nil {
		return http.WithRepErrStatus(c, fiber.StatusInternalServerError, http.InternalError, c.Path())
	}
	c.Status(res.Status)
	c.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	return c.Send(body)
}

func (rt *Router) send(c *fiber.Ctx) error {
	var req sendRequest
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrStatus(c, fiber.StatusBadRequest, http.RequestParameterParsingFailed, c.Path())
	}

	return rt.runNotify(c, func(ctx context.Context) bool {
		return rt.Notifier.Send(ctx, req.Config, req.Message, req.Status)
	})
}

func (rt *Router) test(c *fiber.Ctx) error {
	var req testRequest
	if err := c.BodyParser(&req); err != nil {
		return http.WithRepErrStatus(c, fiber.StatusBadRequest, http.RequestParameterParsingFailed, c.Path())
	}

	return rt.runNotify(c, func(ctx context.Context) bool {
		return rt.Notifier.TestSend(ctx, req.Config, req.ServiceName)
	})
}

func (rt *Router) testByID(c *fiber.Ctx) error {
	var req testRequest
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return http.WithRepErrStatus(c, fiber.StatusBadRequest, http.RequestParameterParsingFailed, c.Path())
		}
	}
	configID := c.Params("id")

	return rt.runNotify(c, func(ctx context.Context) bool {
		return rt.Notifier.TestSendByID(ctx, configID, req.ServiceName)
	})
}

func (rt *Router) listConfigurations(c *fiber.Ctx) error {
	configs, err := rt.Store.List(c.UserContext())
	if err != nil {
		return http.WithRepErrStatus(c, fiber.StatusInternalServerError, http.InternalError, c.Path())
	}
	redacted := make([]notify.NotificationConfiguration, 0, len(configs))
	for _, cfg := range configs {
		redacted = append(redacted, cfg.Redacted())
	}
	return http.WithRepJSON(c, redacted)
}

// runNotify 收集本次调用产生的 toast 并以平台响应结构返回
func (rt *Router) runNotify(c *fiber.Ctx, fn func(ctx context.Context) bool) error {
	collector := &notify.CollectingReporter{}
	ctx := notify.WithReporter(c.UserContext(), collector)

	detail := notifyDetail{
		Sent:   fn(ctx),
		Toasts: collector.Toasts(),
	}
	if !detail.Sent {
		log.WithContext(ctx).Warnw("notification not sent", "path", c.Path(), "toasts", len(detail.Toasts))
		return http.WithRepDetail(c, http.NotificationFailed, detail)
	}
	return http.WithRepJSON(c, detail)
}
