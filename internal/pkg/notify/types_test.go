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
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNotificationConfiguration_Enabled(t *testing.T) {
	tests := []struct {
		raw     string
		want    bool
		wantErr bool
	}{
		{`{"enabled":true}`, true, false},
		{`{"enabled":false}`, false, false},
		{`{"enabled":"true"}`, true, false},
		{`{"enabled":"false"}`, false, false},
		{`{"enabled":""}`, false, false},
		{`{}`, false, false},
		{`{"enabled":"yes please"}`, false, true},
		{`{"enabled":1}`, false, true},
	}
	for _, tt := range tests {
		t.Run(tt.raw, func(t *testing.T) {
			var cfg NotificationConfiguration
			err := sonic.Unmarshal([]byte(tt.raw), &cfg)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, cfg.Enabled)
		})
	}
}

func TestNotificationConfiguration_DecodeAndRedact(t *testing.T) {
	raw := `{"id":"a","notify_name":"ops","notification_type":"wecom","enabled":"true",
		"wecom_webhook_url":"https://qyapi.weixin.qq.com/cgi-bin/webhook/send?key=k","bot_token":""}`

	var cfg NotificationConfiguration
	require.NoError(t, sonic.Unmarshal([]byte(raw), &cfg))
	assert.Equal(t, ChannelTypeWeCom, cfg.NotificationType)
	assert.True(t, cfg.Enabled)

	redacted := cfg.Redacted()
	assert.Equal(t, "[REDACTED]", redacted.WeComWebhookURL)
	assert.Empty(t, redacted.BotToken)
	assert.Contains(t, cfg.WeComWebhookURL, "key=k", "original is untouched")
}

func TestDecodeRequest(t *testing.T) {
	req, err := DecodeRequest([]byte(`{"type":"signal","signalNumber":"+1555","message":"m"}`))
	require.NoError(t, err)
	assert.Equal(t, SignalRequest{SignalNumber: "+1555", Message: "m"}, req)

	req, err = DecodeRequest([]byte(`{"type":"wecom","webhookUrl":"https://x","message":"{\"msgtype\":\"text\"}"}`))
	require.NoError(t, err)
	assert.Equal(t, WeComRequest{WebhookURL: "https://x", Message: `{"msgtype":"text"}`}, req)

	req, err = DecodeRequest([]byte(`{"message":"m"}`))
	require.NoError(t, err)
	assert.Nil(t, req)

	req, err = DecodeRequest([]byte(`{"type":"slack"}`))
	require.NoError(t, err)
	assert.Equal(t, ChannelTypeSlack, req.Type())

	_, err = DecodeRequest([]byte(`{"type":"telegram","chatId":{"nested":1}}`))
	assert.Error(t, err)

	_, err = DecodeRequest([]byte(`[]`))
	assert.Error(t, err)
}

func TestRequest_LogFieldsRedactSecrets(t *testing.T) {
	fields := TelegramRequest{ChatID: "1", BotToken: "secret", Message: "m"}.logFields()
	assert.NotContains(t, fields, "secret")
	assert.Contains(t, fields, "[REDACTED]")

	fields = WeComRequest{WebhookURL: "https://x?key=secret", Message: "m"}.logFields()
	assert.NotContains(t, fields, "https://x?key=secret")
}

func TestInMemoryConfigurationRepository(t *testing.T) {
	ctx := context.Background()
	repo := NewInMemoryConfigurationRepository(
		NotificationConfiguration{ID: "b"},
		NotificationConfiguration{ID: "a"},
		NotificationConfiguration{},
	)

	list, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "a", list[0].ID)

	_, err = repo.Get(ctx, "zzz")
	assert.ErrorIs(t, err, ErrConfigurationNotFound)

	skipped := repo.Replace(ctx, []NotificationConfiguration{{ID: "a", NotifyName: "renamed"}, {}})
	assert.Equal(t, 1, skipped)
	got, err := repo.Get(ctx, "a")
	require.NoError(t, err)
	assert.Equal(t, "renamed", got.NotifyName)

	// entries missing from the new set are gone
	_, err = repo.Get(ctx, "b")
	assert.ErrorIs(t, err, ErrConfigurationNotFound)
}

func TestConf_SetDefaults(t *testing.T) {
	var c Conf
	c.SetDefaults()
	assert.Equal(t, 10, c.Timeout)
	assert.Equal(t, 500, c.SignalDelay)
	assert.Equal(t, "en", c.Locale)

	c = Conf{SignalDelay: -1}
	c.SetDefaults()
	assert.Equal(t, -1, c.SignalDelay)
}
