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
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTelegramServer(t *testing.T, status int, body string, seen *map[string]any) *httptest.Server {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/botT/sendMessage", r.URL.Path)
		if seen != nil {
			require.NoError(t, json.NewDecoder(r.Body).Decode(seen))
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return srv
}

func TestTelegramChannel_Success(t *testing.T) {
	var payload map[string]any
	srv := newTelegramServer(t, http.StatusOK, `{"ok":true,"result":{"message_id":1}}`, &payload)

	ch := NewTelegramChannel(srv.URL, time.Second, nil)
	res := ch.Send(context.Background(), TelegramMessage{ChatID: "123", BotToken: "T", Text: "hi"})

	assert.Equal(t, http.StatusOK, res.Status)
	assert.True(t, res.OK)
	assert.Equal(t, map[string]any{"message_id": float64(1)}, res.Result)
	assert.Equal(t, "Message sent successfully to Telegram", res.Description)
	assert.Equal(t, KindNone, res.Kind)

	assert.Equal(t, "123", payload["chat_id"])
	assert.Equal(t, "hi", payload["text"])
	assert.Equal(t, "HTML", payload["parse_mode"])
}

func TestTelegramChannel_ErrorBodyPassthrough(t *testing.T) {
	upstream := `{"ok":false,"error_code":403,"description":"Forbidden"}`
	srv := newTelegramServer(t, http.StatusForbidden, upstream, nil)

	res := NewTelegramChannel(srv.URL, time.Second, nil).
		Send(context.Background(), TelegramMessage{ChatID: "123", BotToken: "T", Text: "hi"})

	assert.Equal(t, http.StatusForbidden, res.Status)
	assert.False(t, res.OK)
	assert.Equal(t, 403, res.ErrorCode)
	assert.Equal(t, "Forbidden", res.Description)
	assert.Equal(t, KindUpstreamTransport, res.Kind)

	encoded, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, upstream, string(encoded))
}

func TestTelegramChannel_NonJSONErrorBody(t *testing.T) {
	srv := newTelegramServer(t, http.StatusBadGateway, "upstream down", nil)

	res := NewTelegramChannel(srv.URL, time.Second, nil).
		Send(context.Background(), TelegramMessage{ChatID: "123", BotToken: "T", Text: "hi"})

	assert.Equal(t, http.StatusBadGateway, res.Status)
	assert.False(t, res.OK)
	assert.Equal(t, http.StatusBadGateway, res.ErrorCode)
	assert.Equal(t, "Telegram API error: upstream down", res.Description)
}

func TestTelegramChannel_JSONStringErrorBody(t *testing.T) {
	srv := newTelegramServer(t, http.StatusBadGateway, `"Bad Gateway"`, nil)

	res := NewTelegramChannel(srv.URL, time.Second, nil).
		Send(context.Background(), TelegramMessage{ChatID: "123", BotToken: "T", Text: "hi"})

	assert.Equal(t, http.StatusBadGateway, res.Status)
	assert.Equal(t, KindUpstreamTransport, res.Kind)
	assert.True(t, res.IsPassthrough())
	encoded, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `"Bad Gateway"`, string(encoded))
}

func TestTelegramChannel_NonObjectOn200(t *testing.T) {
	srv := newTelegramServer(t, http.StatusOK, `[]`, nil)

	res := NewTelegramChannel(srv.URL, time.Second, nil).
		Send(context.Background(), TelegramMessage{ChatID: "123", BotToken: "T", Text: "hi"})

	assert.Equal(t, http.StatusOK, res.Status)
	assert.False(t, res.OK)
	assert.Equal(t, KindUpstreamApplication, res.Kind)
	encoded, err := json.Marshal(res)
	require.NoError(t, err)
	assert.JSONEq(t, `[]`, string(encoded))
}

func TestTelegramChannel_ApplicationFailureOn200(t *testing.T) {
	srv := newTelegramServer(t, http.StatusOK, `{"ok":false,"error_code":400,"description":"Bad Request: chat not found"}`, nil)

	res := NewTelegramChannel(srv.URL, time.Second, nil).
		Send(context.Background(), TelegramMessage{ChatID: "123", BotToken: "T", Text: "hi"})

	assert.Equal(t, http.StatusOK, res.Status)
	assert.False(t, res.OK)
	assert.Equal(t, KindUpstreamApplication, res.Kind)
	assert.Equal(t, "Bad Request: chat not found", res.Description)
}

func TestTelegramChannel_TransportErrorHidesToken(t *testing.T) {
	srv := httptest.NewServer(http.NotFoundHandler())
	base := srv.URL
	srv.Close()

	const token = "123456:SECRET-TOKEN"
	res := NewTelegramChannel(base, time.Second, nil).
		Send(context.Background(), TelegramMessage{ChatID: "1", BotToken: token, Text: "hi"})

	assert.Equal(t, http.StatusInternalServerError, res.Status)
	assert.Equal(t, http.StatusInternalServerError, res.ErrorCode)
	assert.Equal(t, KindInternal, res.Kind)
	assert.True(t, strings.HasPrefix(res.Description, "Error sending Telegram message: "))
	assert.NotContains(t, res.Description, token)
}

func TestTelegramChannel_Timeout(t *testing.T) {
	release := make(chan struct{})
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(func() {
		close(release)
		srv.Close()
	})

	ch := NewTelegramChannel(srv.URL, 50*time.Millisecond, nil)
	start := time.Now()
	res := ch.Send(context.Background(), TelegramMessage{ChatID: "1", BotToken: "123:SECRET", Text: "x"})

	assert.Less(t, time.Since(start), 2*time.Second)
	assert.Equal(t, http.StatusInternalServerError, res.Status)
	assert.Equal(t, KindInternal, res.Kind)
	assert.True(t, strings.HasPrefix(res.Description, "Error sending Telegram message: "))
	assert.NotContains(t, res.Description, "SECRET")
}
