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
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
)

// RedactedMarker replaces secret values in logs and error descriptions.
const RedactedMarker = "[REDACTED]"

// DefaultTimeout bounds every outbound call made by an adapter.
const DefaultTimeout = 10 * time.Second

// ErrorKind classifies a failed Result.
type ErrorKind string

const (
	KindNone                ErrorKind = ""
	KindValidation          ErrorKind = "validation"
	KindUpstreamApplication ErrorKind = "upstream_application"
	KindUpstreamTransport   ErrorKind = "upstream_transport"
	KindInternal            ErrorKind = "internal"
)

// Result is the uniform outcome of a dispatch.
//
// Status is the HTTP-like status code and is not part of the JSON body. A
// result built by Passthrough encodes as the upstream JSON value verbatim.
type Result struct {
	Status      int            `json:"-"`
	Kind        ErrorKind      `json:"-"`
	OK          bool           `json:"ok"`
	Result      any            `json:"result,omitempty"`
	Description string         `json:"description,omitempty"`
	ErrorCode   int            `json:"error_code,omitempty"`
	Raw         any            `json:"-"`

	passthrough bool
}

type resultBody Result

// MarshalJSON encodes the response envelope.
func (r Result) MarshalJSON() ([]byte, error) {
	if r.passthrough {
		return sonic.Marshal(r.Raw)
	}
	return sonic.Marshal(resultBody(r))
}

// Success builds a 200 result.
func Success(result any, description string) Result {
	return Result{
		Status:      http.StatusOK,
		OK:          true,
		Result:      result,
		Description: description,
	}
}

// Failure builds a failed result whose error_code mirrors the status.
func Failure(kind ErrorKind, status int, description string) Result {
	return Result{
		Status:      status,
		Kind:        kind,
		OK:          false,
		ErrorCode:   status,
		Description: description,
	}
}

// Passthrough wraps a decoded upstream JSON value (object, array, string,
// number or null) as a failed result with the upstream status. Well-known
// fields of an object are lifted so Go callers can inspect them.
func Passthrough(kind ErrorKind, status int, body any) Result {
	r := Result{
		Status:      status,
		Kind:        kind,
		Raw:         body,
		passthrough: true,
	}
	if obj, ok := body.(map[string]any); ok {
		if d, ok := obj["description"].(string); ok {
			r.Description = d
		}
		if code, ok := obj["error_code"].(float64); ok {
			r.ErrorCode = int(code)
		}
	}
	return r
}

// IsPassthrough reports whether r encodes as a verbatim upstream body.
func (r Result) IsPassthrough() bool {
	return r.passthrough
}

// Adapter delivers one message to a messaging backend. Implementations never
// return an error: every failure is folded into the Result.
type Adapter[M any] interface {
	Send(ctx context.Context, msg M) Result
}

// isSuccess reports whether the HTTP status is 2xx.
func isSuccess(resp *resty.Response) bool {
	return resp.StatusCode() >= 200 && resp.StatusCode() < 300
}

// upstreamError converts a non-2xx response into a Result: any JSON body is
// passed through, anything else is synthesized with the given prefix.
func upstreamError(resp *resty.Response, prefix string) Result {
	var body any
	if err := sonic.Unmarshal(resp.Body(), &body); err == nil {
		return Passthrough(KindUpstreamTransport, resp.StatusCode(), body)
	}
	return Failure(KindUpstreamTransport, resp.StatusCode(), prefix+resp.String())
}

// scrub removes every non-empty secret from s.
func scrub(s string, secrets ...string) string {
	for _, secret := range secrets {
		if secret != "" {
			s = strings.ReplaceAll(s, secret, RedactedMarker)
		}
	}
	return s
}

// scrubURL removes a webhook URL from s, including its query values which
// usually carry the access key.
func scrubURL(s, rawURL string) string {
	s = scrub(s, rawURL)
	u, err := url.Parse(rawURL)
	if err != nil {
		return s
	}
	for _, values := range u.Query() {
		s = scrub(s, values...)
	}
	return s
}

func newClient(timeout time.Duration) *resty.Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	return resty.New().
		SetTimeout(timeout).
		SetJSONMarshaler(sonic.Marshal).
		SetJSONUnmarshaler(sonic.Unmarshal).
		SetHeader("Content-Type", "application/json")
}
