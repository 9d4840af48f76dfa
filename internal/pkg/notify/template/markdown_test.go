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
package template

import (
	"strings"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2025, 3, 9, 14, 5, 7, 0, time.UTC)

func TestStatusColor(t *testing.T) {
	tests := []struct {
		status string
		want   string
	}{
		{"up", "green"},
		{"UP", "green"},
		{"resolved", "green"},
		{"ok", "green"},
		{"Operational", "green"},
		{"down", "red"},
		{"error", "red"},
		{"CRITICAL", "red"},
		{"warning", "blue"},
		{"degraded", "blue"},
		{"maintenance", "blue"},
		{"paused", "blue"},
		{"", "gray"},
		{"unknown", "gray"},
		{"up ", "gray"},
		{"upstream", "gray"},
	}
	for _, tt := range tests {
		t.Run(tt.status, func(t *testing.T) {
			assert.Equal(t, tt.want, StatusColor(tt.status))
		})
	}
}

func TestExtractDetails(t *testing.T) {
	got := ExtractDetails("Service api is DOWN\nResponse time: 12.5ms\nURL: https://x.example/health\nmore")
	assert.Equal(t, Details{ServiceName: "api", ResponseTime: "12.5ms", URL: "https://x.example/health"}, got)

	got = ExtractDetails("something unrelated")
	assert.Equal(t, Details{ServiceName: "Unknown", ResponseTime: "N/A", URL: "N/A"}, got)
}

func decodeContent(t *testing.T, payload string) string {
	t.Helper()
	var msg MarkdownMessage
	require.NoError(t, sonic.UnmarshalString(payload, &msg))
	assert.Equal(t, "markdown", msg.MsgType)
	return msg.Markdown.Content
}

func TestMarkdownFormatter_English(t *testing.T) {
	f := NewMarkdownFormatter(LocaleEnglish, WithLocation(time.UTC))

	out, err := f.Format("Service api is DOWN\nResponse time: 250ms\nURL: https://api.example.com", "down", fixedNow)
	require.NoError(t, err)

	content := decodeContent(t, out)
	assert.True(t, strings.HasPrefix(content, `## <font color="red">Service Status Notification</font>`))
	assert.Contains(t, content, "**Service**: api")
	assert.Contains(t, content, `<font color="red">DOWN</font>`)
	assert.Contains(t, content, "**Response Time**: **250ms**")
	assert.Contains(t, content, "**URL**: **https://api.example.com**")
	assert.Contains(t, content, "**Notified At**: **3/9/2025, 2:05:07 PM**")
}

func TestMarkdownFormatter_Chinese(t *testing.T) {
	f := NewMarkdownFormatter(LocaleChinese, WithLocation(time.UTC))

	out, err := f.Format("no details here", "paused", fixedNow)
	require.NoError(t, err)

	content := decodeContent(t, out)
	assert.Contains(t, content, `## <font color="blue">服务状态通知</font>`)
	assert.Contains(t, content, "**服务名称**: Unknown")
	assert.Contains(t, content, "**响应时间**: **N/A**")
	assert.Contains(t, content, "**URL**: **N/A**")
	assert.Contains(t, content, "**通知时间**: **2025/3/9 14:05:07**")
}

func TestMarkdownFormatter_Deterministic(t *testing.T) {
	f := NewMarkdownFormatter("fr", WithLocation(time.UTC))
	assert.Equal(t, LocaleEnglish, f.Locale())

	first, err := f.Format("Service web is UP", "up", fixedNow)
	require.NoError(t, err)
	second, err := f.Format("Service web is UP", "up", fixedNow)
	require.NoError(t, err)
	assert.Equal(t, first, second)
}

func TestFormatMarkdown_IsValidJSON(t *testing.T) {
	out := FormatMarkdown("Service \"quoted\" is UP\n<b>bold</b>", "up", fixedNow)
	require.NotEmpty(t, out)
	content := decodeContent(t, out)
	assert.Contains(t, content, "<b>bold</b>")
	assert.Contains(t, content, "**Service**: \"quoted\"")
}
