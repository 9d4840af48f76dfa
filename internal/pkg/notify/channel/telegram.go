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

package channel

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// DefaultTelegramAPIBase is the public Bot API endpoint.
const DefaultTelegramAPIBase = "https://api.telegram.org"

// TelegramMessage is the input of the Telegram adapter.
type TelegramMessage struct {
	ChatID   string
	BotToken string
	Text     string // HTML formatted
}

// TelegramChannel implements the Telegram Bot API sendMessage call
type TelegramChannel struct {
	apiBase   string
	parseMode string
	client    *resty.Client
	log       *zap.SugaredLogger
}

// NewTelegramChannel creates a Telegram adapter. An empty apiBase selects the
// public Bot API.
func NewTelegramChannel(apiBase string, timeout time.Duration, log *zap.SugaredLogger) *TelegramChannel {
	if apiBase == "" {
		apiBase = DefaultTelegramAPIBase
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &TelegramChannel{
		apiBase:   strings.TrimRight(apiBase, "/"),
		parseMode: "HTML",
		client:    newClient(timeout),
		log:       log,
	}
}

// Send posts msg to the chat and normalizes the Bot API answer.
func (c *TelegramChannel) Send(ctx context.Context, msg TelegramMessage) Result {
	apiURL := fmt.Sprintf("%s/bot%s/sendMessage", c.apiBase, msg.BotToken)

	payload := map[string]any{
		"chat_id":    msg.ChatID,
		"text":       msg.Text,
		"parse_mode": c.parseMode,
	}

	c.log.Debugw("calling telegram api",
		"url", scrub(apiURL, msg.BotToken),
		"chat_id", msg.ChatID,
		"message_length", len(msg.Text),
	)

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(payload).
		Post(apiURL)
	if err != nil {
		cause := scrub(err.Error(), msg.BotToken)
		c.log.Errorw("telegram send request failed", "error", cause)
		return Failure(KindInternal, http.StatusInternalServerError, "Error sending Telegram message: "+cause)
	}

	if !isSuccess(resp) {
		c.log.Errorw("telegram request failed", "statusCode", resp.StatusCode(), "response", resp.String())
		return upstreamError(resp, "Telegram API error: ")
	}

	var body any
	if err := sonic.Unmarshal(resp.Body(), &body); err != nil {
		c.log.Errorw("telegram response is not json", "error", err)
		return Failure(KindInternal, http.StatusInternalServerError, "Error sending Telegram message: "+err.Error())
	}

	// a body that is not an object counts as ok != true
	result, _ := body.(map[string]any)
	if ok, _ := result["ok"].(bool); !ok {
		c.log.Errorw("telegram api error", "error_code", result["error_code"], "description", result["description"])
		return Passthrough(KindUpstreamApplication, resp.StatusCode(), body)
	}

	c.log.Infow("message sent to telegram", "chat_id", msg.ChatID)
	return Success(result["result"], "Message sent successfully to Telegram")
}
