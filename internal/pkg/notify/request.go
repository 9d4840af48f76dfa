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

	"github.com/bytedance/sonic"
)

// Request is a dispatch request. The concrete types below are the only
// implementations the dispatcher routes; anything else is unsupported.
type Request interface {
	Type() ChannelType
	// validate reports whether every required field is present.
	validate() bool
	// logFields returns request metadata with secrets redacted.
	logFields() []any
}

// TelegramRequest sends an HTML message through the Telegram Bot API.
type TelegramRequest struct {
	ChatID   string `json:"chatId"`
	BotToken string `json:"botToken"`
	Message  string `json:"message"`
}

func (TelegramRequest) Type() ChannelType { return ChannelTypeTelegram }

// UnmarshalJSON accepts a numeric chatId, which is how group chats are
// usually copied out of Telegram.
func (r *TelegramRequest) UnmarshalJSON(data []byte) error {
	var aux struct {
		ChatID   any    `json:"chatId"`
		BotToken string `json:"botToken"`
		Message  string `json:"message"`
	}
	if err := sonic.Unmarshal(data, &aux); err != nil {
		return err
	}
	chatID, err := looseString(aux.ChatID)
	if err != nil {
		return fmt.Errorf("chatId: %w", err)
	}
	*r = TelegramRequest{ChatID: chatID, BotToken: aux.BotToken, Message: aux.Message}
	return nil
}

func (r TelegramRequest) validate() bool {
	return r.ChatID != "" && r.BotToken != "" && r.Message != ""
}

func (r TelegramRequest) logFields() []any {
	return []any{
		"chat_id", r.ChatID,
		"bot_token", redact(r.BotToken),
		"has_bot_token", r.BotToken != "",
		"message_length", len(r.Message),
	}
}

// SignalRequest sends a text message to a Signal number.
type SignalRequest struct {
	SignalNumber string `json:"signalNumber"`
	Message      string `json:"message"`
}

func (SignalRequest) Type() ChannelType { return ChannelTypeSignal }

func (r SignalRequest) validate() bool {
	return r.SignalNumber != "" && r.Message != ""
}

func (r SignalRequest) logFields() []any {
	return []any{
		"signal_number", r.SignalNumber,
		"message_length", len(r.Message),
	}
}

// WeComRequest posts a pre-built JSON payload to a WeCom robot webhook.
type WeComRequest struct {
	WebhookURL string `json:"webhookUrl"`
	Message    string `json:"message"`
}

func (WeComRequest) Type() ChannelType { return ChannelTypeWeCom }

func (r WeComRequest) validate() bool {
	return r.WebhookURL != "" && r.Message != ""
}

func (r WeComRequest) logFields() []any {
	return []any{
		"webhook_url", redact(r.WebhookURL),
		"has_webhook_url", r.WebhookURL != "",
		"message_length", len(r.Message),
	}
}

// concrete turns the pointer forms of the channel requests into values so
// the dispatcher matches one arm per channel. A nil pointer becomes the zero
// value and fails validation.
func concrete(req Request) Request {
	switch r := req.(type) {
	case *TelegramRequest:
		if r == nil {
			return TelegramRequest{}
		}
		return *r
	case *SignalRequest:
		if r == nil {
			return SignalRequest{}
		}
		return *r
	case *WeComRequest:
		if r == nil {
			return WeComRequest{}
		}
		return *r
	}
	return req
}

// looseString renders a JSON string or number as a string.
func looseString(v any) (string, error) {
	switch val := v.(type) {
	case nil:
		return "", nil
	case string:
		return val, nil
	case float64:
		return strconv.FormatFloat(val, 'f', -1, 64), nil
	default:
		return "", fmt.Errorf("unexpected value %v", v)
	}
}

// envelope is the discriminator of the wire format.
type envelope struct {
	Type ChannelType `json:"type"`
}

// unsupportedRequest carries a type the dispatcher has no adapter for.
type unsupportedRequest struct {
	kind ChannelType
}

func (r unsupportedRequest) Type() ChannelType { return r.kind }
func (unsupportedRequest) validate() bool      { return true }
func (r unsupportedRequest) logFields() []any  { return nil }

// DecodeRequest decodes the wire format {"type": ..., ...fields}. A missing
// type yields a nil Request and no error.
func DecodeRequest(body []byte) (Request, error) {
	var env envelope
	if err := sonic.Unmarshal(body, &env); err != nil {
		return nil, err
	}

	var req Request
	switch env.Type {
	case "":
		return nil, nil
	case ChannelTypeTelegram:
		var r TelegramRequest
		if err := sonic.Unmarshal(body, &r); err != nil {
			return nil, err
		}
		req = r
	case ChannelTypeSignal:
		var r SignalRequest
		if err := sonic.Unmarshal(body, &r); err != nil {
			return nil, err
		}
		req = r
	case ChannelTypeWeCom:
		var r WeComRequest
		if err := sonic.Unmarshal(body, &r); err != nil {
			return nil, err
		}
		req = r
	default:
		req = unsupportedRequest{kind: env.Type}
	}
	return req, nil
}
