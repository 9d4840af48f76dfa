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
	"time"
)

// Conf configures the dispatcher and the caller-side notifier.
type Conf struct {
	// Timeout bounds each outbound call, in seconds.
	Timeout int `mapstructure:"timeout"`
	// TelegramAPIBase overrides https://api.telegram.org, e.g. for a local Bot API server.
	TelegramAPIBase string `mapstructure:"telegramApiBase"`
	// SignalDelay is the simulated Signal latency in milliseconds; negative disables it.
	SignalDelay int `mapstructure:"signalDelay"`
	// Locale selects the markdown template: "en" or "zh-CN".
	Locale string `mapstructure:"locale"`
	// Configurations are alert channels known at startup.
	Configurations []NotificationConfiguration `mapstructure:"configurations"`
}

// SetDefaults fills unset values.
func (c *Conf) SetDefaults() {
	if c.Timeout <= 0 {
		c.Timeout = 10
	}
	if c.SignalDelay == 0 {
		c.SignalDelay = 500
	}
	if c.Locale == "" {
		c.Locale = "en"
	}
}

func (c Conf) timeout() time.Duration {
	return time.Duration(c.Timeout) * time.Second
}

func (c Conf) signalDelay() time.Duration {
	return time.Duration(c.SignalDelay) * time.Millisecond
}
