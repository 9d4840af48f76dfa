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

	"github.com/go-arcade/pulse/internal/pkg/notify/template"
	"go.uber.org/zap"
)

const (
	titleConfigurationError = "Configuration Error"
	titleNotificationFailed = "Notification Failed"
	titleNotificationSent   = "Notification Sent"
	titleNotificationError  = "Notification Error"
	titleNotificationSkip   = "Notification Skipped"

	defaultTestServiceName = "Test Service"
)

// Router is what the notifier needs from the dispatcher.
type Router interface {
	Dispatch(ctx context.Context, req Request) Result
}

// Notifier is the caller side of the dispatcher: it turns alert state and a
// NotificationConfiguration into a dispatch request, reports the outcome as
// a toast and returns whether the message was delivered.
type Notifier struct {
	router    Router
	formatter *template.MarkdownFormatter
	store     ConfigurationRepository
	reporter  Reporter
	log       *zap.SugaredLogger
	now       func() time.Time
}

// NotifierOption customizes a Notifier.
type NotifierOption func(*Notifier)

// WithFormatter replaces the WeCom markdown formatter.
func WithFormatter(f *template.MarkdownFormatter) NotifierOption {
	return func(n *Notifier) { n.formatter = f }
}

// WithStore attaches the configuration storage used by TestSendByID.
func WithStore(s ConfigurationRepository) NotifierOption {
	return func(n *Notifier) { n.store = s }
}

// WithDefaultReporter sets the reporter used when the context carries none.
func WithDefaultReporter(r Reporter) NotifierOption {
	return func(n *Notifier) { n.reporter = r }
}

// WithClock overrides time.Now for message timestamps.
func WithClock(now func() time.Time) NotifierOption {
	return func(n *Notifier) { n.now = now }
}

func NewNotifier(router Router, log *zap.SugaredLogger, opts ...NotifierOption) *Notifier {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	n := &Notifier{
		router: router,
		log:    log.Named("notifier"),
		now:    time.Now,
	}
	for _, opt := range opts {
		opt(n)
	}
	if n.formatter == nil {
		n.formatter = template.NewMarkdownFormatter(template.LocaleEnglish)
	}
	if n.store == nil {
		n.store = NewInMemoryConfigurationRepository()
	}
	if n.reporter == nil {
		n.reporter = NewLogReporter(n.log)
	}
	return n
}

// Send routes to the wrapper matching cfg.NotificationType.
func (n *Notifier) Send(ctx context.Context, cfg NotificationConfiguration, message, status string) bool {
	if !cfg.Enabled {
		n.report(ctx, titleNotificationSkip,
			fmt.Sprintf("Notification channel %q is disabled", cfg.NotifyName), VariantDefault)
		return false
	}

	switch cfg.NotificationType {
	case ChannelTypeTelegram:
		return n.SendTelegramNotification(ctx, cfg, message, status)
	case ChannelTypeSignal:
		return n.SendSignalNotification(ctx, cfg, message, status)
	case ChannelTypeWeCom:
		return n.SendWecomNotification(ctx, cfg, message, status)
	default:
		n.unsupported(ctx, cfg.NotificationType)
		return false
	}
}

// SendTelegramNotification sends message to the configured Telegram chat.
func (n *Notifier) SendTelegramNotification(ctx context.Context, cfg NotificationConfiguration, message, _ string) bool {
	n.log.Infow("telegram notification attempt", "config", cfg.Redacted())

	if cfg.BotToken == "" || cfg.ChatID == "" {
		n.report(ctx, titleConfigurationError, "Missing Telegram bot token or chat ID", VariantDestructive)
		return false
	}

	return n.deliver(ctx, TelegramRequest{
		ChatID:   cfg.ChatID,
		BotToken: cfg.BotToken,
		Message:  message,
	}, "Telegram notification sent successfully")
}

// SendSignalNotification sends message to the configured Signal number.
func (n *Notifier) SendSignalNotification(ctx context.Context, cfg NotificationConfiguration, message, _ string) bool {
	n.log.Infow("signal notification attempt", "config", cfg.Redacted())

	if cfg.SignalNumber == "" {
		n.report(ctx, titleConfigurationError, "Missing Signal number", VariantDestructive)
		return false
	}

	return n.deliver(ctx, SignalRequest{
		SignalNumber: cfg.SignalNumber,
		Message:      message,
	}, "Signal notification sent successfully")
}

// SendWecomNotification formats message as WeCom markdown and posts it to
// the configured webhook.
func (n *Notifier) SendWecomNotification(ctx context.Context, cfg NotificationConfiguration, message, status string) bool {
	n.log.Infow("wecom notification attempt", "config", cfg.Redacted())

	if cfg.WeComWebhookURL == "" {
		n.report(ctx, titleConfigurationError, "Missing WeCom webhook URL", VariantDestructive)
		return false
	}

	payload, err := n.formatter.Format(message, status, n.now())
	if err != nil {
		n.log.Errorw("failed to format wecom message", "error", err)
		n.report(ctx, titleNotificationError,
			fmt.Sprintf("Error sending WeCom notification: %v", err), VariantDestructive)
		return false
	}

	return n.deliver(ctx, WeComRequest{
		WebhookURL: cfg.WeComWebhookURL,
		Message:    payload,
	}, "WeCom notification sent successfully")
}

// TestSendTelegramMessage sends a canned UP message through cfg.
func (n *Notifier) TestSendTelegramMessage(ctx context.Context, cfg NotificationConfiguration, serviceName string) bool {
	return n.SendTelegramNotification(ctx, cfg, n.testMessage(ChannelTypeTelegram, serviceName), "up")
}

// TestSendSignalMessage sends a canned UP message through cfg.
func (n *Notifier) TestSendSignalMessage(ctx context.Context, cfg NotificationConfiguration, serviceName string) bool {
	return n.SendSignalNotification(ctx, cfg, n.testMessage(ChannelTypeSignal, serviceName), "up")
}

// TestSendWecomMessage sends a canned UP message through cfg.
func (n *Notifier) TestSendWecomMessage(ctx context.Context, cfg NotificationConfiguration, serviceName string) bool {
	return n.SendWecomNotification(ctx, cfg, n.testMessage(ChannelTypeWeCom, serviceName), "up")
}

// TestSend routes a test message by cfg.NotificationType. Disabled
// configurations are tested too.
func (n *Notifier) TestSend(ctx context.Context, cfg NotificationConfiguration, serviceName string) bool {
	switch cfg.NotificationType {
	case ChannelTypeTelegram:
		return n.TestSendTelegramMessage(ctx, cfg, serviceName)
	case ChannelTypeSignal:
		return n.TestSendSignalMessage(ctx, cfg, serviceName)
	case ChannelTypeWeCom:
		return n.TestSendWecomMessage(ctx, cfg, serviceName)
	default:
		n.unsupported(ctx, cfg.NotificationType)
		return false
	}
}

// TestSendByID tests the stored configuration with the given id.
func (n *Notifier) TestSendByID(ctx context.Context, configID, serviceName string) bool {
	cfg, err := n.store.Get(ctx, configID)
	if err != nil {
		n.log.Warnw("notification configuration lookup failed", "id", configID, "error", err)
		n.report(ctx, titleConfigurationError,
			fmt.Sprintf("Notification configuration %s not found", configID), VariantDestructive)
		return false
	}
	return n.TestSend(ctx, cfg, serviceName)
}

func (n *Notifier) testMessage(kind ChannelType, serviceName string) string {
	if serviceName == "" {
		serviceName = defaultTestServiceName
	}
	if kind == ChannelTypeWeCom && n.formatter.Locale() == template.LocaleChinese {
		return fmt.Sprintf("🧪 这是一条测试消息\nService %s is UP\nResponse time: 123ms\nURL: https://example.com\n\n此消息仅用于测试企业微信通知配置。", serviceName)
	}
	return fmt.Sprintf("🧪 Test notification\nService %s is UP\nResponse time: 123ms\nURL: https://example.com\n\nThis message only verifies the notification configuration.", serviceName)
}

func (n *Notifier) deliver(ctx context.Context, req Request, successMessage string) bool {
	res := n.router.Dispatch(ctx, req)

	if res.Status != http.StatusOK {
		n.log.Warnw("notification rejected", "type", req.Type(), "status", res.Status, "description", res.Description)
		description := res.Description
		if description == "" {
			description = "Unknown error"
		}
		n.report(ctx, titleNotificationFailed,
			fmt.Sprintf("Server returned error %d: %s", res.Status, description), VariantDestructive)
		return false
	}

	if !res.OK {
		n.log.Warnw("notification not delivered", "type", req.Type(), "description", res.Description)
		description := res.Description
		if description == "" {
			description = "Failed to send notification"
		}
		n.report(ctx, titleNotificationFailed, description, VariantDestructive)
		return false
	}

	n.report(ctx, titleNotificationSent, successMessage, VariantDefault)
	return true
}

func (n *Notifier) unsupported(ctx context.Context, kind ChannelType) {
	n.report(ctx, titleNotificationFailed,
		fmt.Sprintf("Unsupported notification type: %s", kind), VariantDestructive)
}

func (n *Notifier) report(ctx context.Context, title, description string, variant Variant) {
	reporterFrom(ctx, n.reporter).Report(ctx, newToast(title, description, variant))
}
