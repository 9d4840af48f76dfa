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
	"net/http"
	"testing"

	"github.com/bytedance/sonic"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResult_MarshalJSON(t *testing.T) {
	tests := []struct {
		name string
		res  Result
		want string
	}{
		{
			name: "success",
			res:  Success(map[string]any{"id": 1}, "done"),
			want: `{"ok":true,"result":{"id":1},"description":"done"}`,
		},
		{
			name: "failure",
			res:  Failure(KindValidation, http.StatusBadRequest, "Missing notification type"),
			want: `{"ok":false,"description":"Missing notification type","error_code":400}`,
		},
		{
			name: "passthrough",
			res:  Passthrough(KindUpstreamTransport, http.StatusTooManyRequests, map[string]any{"ok": false, "parameters": map[string]any{"retry_after": 3}}),
			want: `{"ok":false,"parameters":{"retry_after":3}}`,
		},
		{
			name: "passthrough string",
			res:  Passthrough(KindUpstreamTransport, http.StatusBadGateway, "Bad Gateway"),
			want: `"Bad Gateway"`,
		},
		{
			name: "passthrough null",
			res:  Passthrough(KindUpstreamTransport, http.StatusBadGateway, nil),
			want: `null`,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := sonic.Marshal(tt.res)
			require.NoError(t, err)
			assert.JSONEq(t, tt.want, string(got))
		})
	}
}

func TestPassthrough_LiftsFields(t *testing.T) {
	res := Passthrough(KindUpstreamApplication, http.StatusOK, map[string]any{
		"ok":          false,
		"error_code":  float64(400),
		"description": "Bad Request: chat not found",
	})
	assert.Equal(t, http.StatusOK, res.Status)
	assert.False(t, res.OK)
	assert.Equal(t, 400, res.ErrorCode)
	assert.Equal(t, "Bad Request: chat not found", res.Description)
}

func TestPassthrough_NonObject(t *testing.T) {
	res := Passthrough(KindUpstreamApplication, http.StatusOK, []any{})
	assert.True(t, res.IsPassthrough())
	assert.False(t, res.OK)
	assert.Empty(t, res.Description)
	assert.Zero(t, res.ErrorCode)

	assert.False(t, Failure(KindInternal, http.StatusInternalServerError, "x").IsPassthrough())
}

func TestScrub(t *testing.T) {
	assert.Equal(t, "post /bot[REDACTED]/sendMessage", scrub("post /bot123:abc/sendMessage", "123:abc", ""))
	assert.Equal(t, "nothing", scrub("nothing"))

	raw := "https://qyapi.weixin.qq.com/cgi-bin/webhook/send?key=secret-key"
	got := scrubURL(`Post "https://qyapi.weixin.qq.com/cgi-bin/webhook/send?key=secret-key": dial tcp`, raw)
	assert.NotContains(t, got, "secret-key")
	assert.Contains(t, got, RedactedMarker)

	escaped := scrubURL("key=secret-key&x=1", raw)
	assert.NotContains(t, escaped, "secret-key")
}
