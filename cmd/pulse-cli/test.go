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
	"context"
	"fmt"
	"math"
	"time"

	"github.com/go-arcade/pulse/internal/pkg/notify"
	"github.com/go-arcade/pulse/internal/pkg/notify/template"
	"github.com/go-arcade/pulse/pkg/log"
	"github.com/spf13/cobra"
)

type testOptions struct {
	serviceName string
	botToken    string
	chatID      string
	number      string
	webhookURL  string
	apiBase     string
	locale      string
	timeout     time.Duration
	verbose     bool
}

func newTestCmd() *cobra.Command {
	opts := &testOptions{}
	cmd := &cobra.Command{
		Use:   "test",
		Short: "Send a test notification",
	}
	cmd.PersistentFlags().StringVar(&opts.serviceName, "service", "Test Service", "service name used in the test message")
	cmd.PersistentFlags().DurationVar(&opts.timeout, "timeout", 10*time.Second, "outbound request timeout")
	cmd.PersistentFlags().BoolVarP(&opts.verbose, "verbose", "v", false, "print debug logs")

	telegram := &cobra.Command{
		Use:   "telegram",
		Short: "Send a test message through the Telegram Bot API",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, notify.NotificationConfiguration{
				NotifyName:       "cli",
				NotificationType: notify.ChannelTypeTelegram,
				Enabled:          true,
				BotToken:         opts.botToken,
				ChatID:           opts.chatID,
			})
		},
	}
	telegram.Flags().StringVar(&opts.botToken, "bot-token", "", "telegram bot token")
	telegram.Flags().StringVar(&opts.chatID, "chat-id", "", "telegram chat id")
	telegram.Flags().StringVar(&opts.apiBase, "api-base", "", "telegram API base url")

	signal := &cobra.Command{
		Use:   "signal",
		Short: "Send a simulated Signal test message",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, notify.NotificationConfiguration{
				NotifyName:       "cli",
				NotificationType: notify.ChannelTypeSignal,
				Enabled:          true,
				SignalNumber:     opts.number,
			})
		},
	}
	signal.Flags().StringVar(&opts.number, "number", "", "signal phone number")

	wecom := &cobra.Command{
		Use:   "wecom",
		Short: "Send a markdown test message to a WeCom robot webhook",
		RunE: func(cmd *cobra.Command, args []string) error {
			return opts.run(cmd, notify.NotificationConfiguration{
				NotifyName:       "cli",
				NotificationType: notify.ChannelTypeWeCom,
				Enabled:          true,
				WeComWebhookURL:  opts.webhookURL,
			})
		},
	}
	wecom.Flags().StringVar(&opts.webhookURL, "webhook", "", "wecom robot webhook url")
	wecom.Flags().StringVar(&opts.locale, "locale", template.LocaleEnglish, "markdown locale: en or zh-CN")

	cmd.AddCommand(telegram, signal, wecom)
	return cmd
}

func (o *testOptions) run(cmd *cobra.Command, cfg notify.NotificationConfiguration) error {
	level := "WARN"
	if o.verbose {
		level = "DEBUG"
	}
	logConf := log.SetDefaults()
	logConf.Level = level
	logger, err := log.NewLog(logConf)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	dispatcher := notify.NewDispatcher(notify.Conf{
		Timeout:         timeoutSeconds(o.timeout),
		TelegramAPIBase: o.apiBase,
	}, logger.Sugar())
	notifier := notify.NewNotifier(dispatcher, logger.Sugar(),
		notify.WithFormatter(template.NewMarkdownFormatter(o.locale)))

	collector := &notify.CollectingReporter{}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	ctx = notify.WithReporter(ctx, collector)

	sent := notifier.TestSend(ctx, cfg, o.serviceName)
	for _, toast := range collector.Toasts() {
		fmt.Fprintf(cmd.OutOrStdout(), "[%s] %s: %s\n", toast.Variant, toast.Title, toast.Description)
	}
	if !sent {
		return fmt.Errorf("%s test notification failed", cfg.NotificationType)
	}
	return nil
}

// timeoutSeconds rounds d up to whole seconds.
func timeoutSeconds(d time.Duration) int {
	if d <= 0 {
		return 0
	}
	return int(math.Ceil(d.Seconds()))
}
