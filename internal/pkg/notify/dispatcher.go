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
	"fmt"
	"net/http"
	"time"

	"github.com/go-arcade/pulse/internal/pkg/notify/channel"
	"github.com/go-arcade/pulse/pkg/id"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/go-arcade/pulse/internal/pkg/notify"

// Recorder receives one observation per dispatch.
type Recorder interface {
	ObserveDispatch(channelType string, status int, ok bool, kind string, elapsed time.Duration)
}

type nopRecorder struct{}

func (nopRecorder) ObserveDispatch(string, int, bool, string, time.Duration) {}

// Dispatcher is the single entry point that validates a request, routes it
// to the adapter of its channel and returns a normalized Result.
//
// A Dispatcher holds no per-request state and is safe for concurrent use.
type Dispatcher struct {
	telegram channel.Adapter[channel.TelegramMessage]
	signal   channel.Adapter[channel.SignalMessage]
	wecom    channel.Adapter[channel.WeComMessage]
	log      *zap.SugaredLogger
	recorder Recorder
	tracer   trace.Tracer
}

// Option customizes a Dispatcher.
type Option func(*Dispatcher)

// WithTelegram replaces the Telegram adapter.
func WithTelegram(a channel.Adapter[channel.TelegramMessage]) Option {
	return func(d *Dispatcher) { d.telegram = a }
}

// WithSignal replaces the Signal adapter.
func WithSignal(a channel.Adapter[channel.SignalMessage]) Option {
	return func(d *Dispatcher) { d.signal = a }
}

// WithWeCom replaces the WeCom adapter.
func WithWeCom(a channel.Adapter[channel.WeComMessage]) Option {
	return func(d *Dispatcher) { d.wecom = a }
}

// WithRecorder attaches a metrics recorder.
func WithRecorder(r Recorder) Option {
	return func(d *Dispatcher) {
		if r != nil {
			d.recorder = r
		}
	}
}

// NewDispatcher builds a dispatcher with the real adapters configured by conf.
func NewDispatcher(conf Conf, log *zap.SugaredLogger, opts ...Option) *Dispatcher {
	conf.SetDefaults()
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	log = log.Named("notify")

	d := &Dispatcher{
		telegram: channel.NewTelegramChannel(conf.TelegramAPIBase, conf.timeout(), log.Named("telegram")),
		signal:   channel.NewSignalChannel(conf.signalDelay(), log.Named("signal")),
		wecom:    channel.NewWeComChannel(conf.timeout(), log.Named("wecom")),
		log:      log,
		recorder: nopRecorder{},
		tracer:   otel.Tracer(tracerName),
	}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// DispatchJSON decodes the wire request {"type": ..., ...} and dispatches it.
func (d *Dispatcher) DispatchJSON(ctx context.Context, body []byte) Result {
	req, err := DecodeRequest(body)
	if err != nil {
		d.log.Warnw("invalid notification request body", "error", err)
		return channel.Failure(channel.KindValidation, http.StatusBadRequest, "Invalid request body")
	}
	return d.Dispatch(ctx, req)
}

// Dispatch routes req to its channel. It always returns a Result; panics
// raised while delegating are converted into a 500 result.
func (d *Dispatcher) Dispatch(ctx context.Context, req Request) (res Result) {
	if ctx == nil {
		ctx = context.Background()
	}
	req = concrete(req)
	start := time.Now()
	dispatchID := id.GetUlid()
	channelType := "unknown"
	if req != nil {
		channelType = string(req.Type())
	}

	ctx, span := d.tracer.Start(ctx, "notify.dispatch",
		trace.WithAttributes(
			attribute.String("notify.channel", channelType),
			attribute.String("notify.dispatch_id", dispatchID),
		),
	)
	logger := d.log.With("dispatch_id", dispatchID, "type", channelType)

	defer func() {
		if r := recover(); r != nil {
			logger.Errorw("notification dispatch panicked", "panic", r)
			res = channel.Failure(channel.KindInternal, http.StatusInternalServerError, panicMessage(r))
		}

		elapsed := time.Since(start)
		d.recorder.ObserveDispatch(channelType, res.Status, res.OK, string(res.Kind), elapsed)

		span.SetAttributes(
			attribute.Int("http.status_code", res.Status),
			attribute.Bool("notify.ok", res.OK),
		)
		if !res.OK {
			span.SetStatus(codes.Error, res.Description)
		}
		span.End()

		logger.Infow("notification dispatched",
			"status", res.Status,
			"ok", res.OK,
			"kind", res.Kind,
			"description", res.Description,
			"elapsed", elapsed,
		)
	}()

	if req == nil {
		logger.Warn("missing notification type")
		return channel.Failure(channel.KindValidation, http.StatusBadRequest, "Missing notification type")
	}

	logger.Infow("notification request received", req.logFields()...)

	switch r := req.(type) {
	case TelegramRequest:
		if !r.validate() {
			return missingParameters("Telegram")
		}
		return d.telegram.Send(ctx, channel.TelegramMessage{
			ChatID:   r.ChatID,
			BotToken: r.BotToken,
			Text:     r.Message,
		})
	case SignalRequest:
		if !r.validate() {
			return missingParameters("Signal")
		}
		return d.signal.Send(ctx, channel.SignalMessage{
			Number: r.SignalNumber,
			Text:   r.Message,
		})
	case WeComRequest:
		if !r.validate() {
			return missingParameters("WeCom")
		}
		return d.wecom.Send(ctx, channel.WeComMessage{
			WebhookURL: r.WebhookURL,
			Payload:    r.Message,
		})
	default:
		logger.Warnw("unsupported notification type")
		return channel.Failure(channel.KindValidation, http.StatusBadRequest,
			fmt.Sprintf("Unsupported notification type: %s", req.Type()))
	}
}

func missingParameters(name string) Result {
	return channel.Failure(channel.KindValidation, http.StatusBadRequest,
		fmt.Sprintf("Missing required %s parameters", name))
}

func panicMessage(r any) string {
	var msg string
	switch v := r.(type) {
	case error:
		msg = v.Error()
	case string:
		msg = v
	default:
		msg = fmt.Sprint(v)
	}
	if msg == "" {
		return "Internal server error"
	}
	return msg
}
