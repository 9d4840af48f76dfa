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
	"fmt"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/go-arcade/pulse/internal/pkg/notify/channel"
)

// ChannelType represents the notification channel type
type ChannelType string

const (
	ChannelTypeTelegram ChannelType = "telegram"
	ChannelTypeSignal   ChannelType = "signal"
	ChannelTypeWeCom    ChannelType = "wecom"
	ChannelTypeEmail    ChannelType = "email"
	ChannelTypeSlack    ChannelType = "slack"
	ChannelTypeWebhook  ChannelType = "webhook"
	ChannelTypeNone     ChannelType = "none"
)

// Result is the uniform dispatch outcome.
type Result = channel.Result

// NotificationConfiguration identifies one alert channel and its credentials.
// It is owned by configuration storage; the dispatcher only reads it.
type NotificationConfiguration struct {
	ID               string      `json:"id" mapstructure:"id"`
	NotifyName       string      `json:"notify_name" mapstructure:"notify_name"`
	NotificationType ChannelType `json:"notification_type" mapstructure:"notification_type"`
	Enabled          bool        `json:"enabled" mapstructure:"enabled"`
	BotToken         string      `json:"bot_token,omitempty" mapstructure:"bot_token"`
	ChatID           string      `json:"chat_id,omitempty" mapstructure:"chat_id"`
	SignalNumber     string      `json:"signal_number,omitempty" mapstructure:"signal_number"`
	WeComWebhookURL  string      `json:"wecom_webhook_url,omitempty" mapstructure:"wecom_webhook_url"`
}

type configurationAlias NotificationConfiguration

// UnmarshalJSON accepts "enabled" either as a JSON boolean or as the string
// "true"/"false" sent by older forms.
func (c *NotificationConfiguration) UnmarshalJSON(data []byte) error {
	aux := struct {
		*configurationAlias
		Enabled any `json:"enabled"`
	}{configurationAlias: (*configurationAlias)(c)}
	if err := sonic.Unmarshal(data, &aux); err != nil {
		return err
	}
	enabled, err := parseFlag(aux.Enabled)
	if err != nil {
		return err
	}
	c.Enabled = enabled
	return nil
}

func parseFlag(v any) (bool, error) {
	switch b := v.(type) {
	case nil:
		return false, nil
	case bool:
		return b, nil
	case string:
		if strings.TrimSpace(b) == "" {
			return false, nil
		}
		parsed, err := strconv.ParseBool(strings.TrimSpace(b))
		if err != nil {
			return false, fmt.Errorf("invalid enabled value %q", b)
		}
		return parsed, nil
	default:
		return false, fmt.Errorf("invalid enabled value %v", v)
	}
}

// Redacted returns a copy safe for logging.
func (c NotificationConfiguration) Redacted() NotificationConfiguration {
	c.BotToken = redact(c.BotToken)
	c.WeComWebhookURL = redact(c.WeComWebhookURL)
	return c
}

func redact(secret string) string {
	if secret == "" {
		return ""
	}
	return channel.RedactedMarker
}
