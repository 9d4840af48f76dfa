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
	"time"

	"github.com/bytedance/sonic"
	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"
)

// WeComMessage is the input of the WeCom adapter. Payload is a JSON document
// built by the caller, typically {"msgtype":"markdown","markdown":{...}}.
type WeComMessage struct {
	WebhookURL string
	Payload    string
}

// WeComChannel implements WeCom (WeChat Work) group robot webhooks
type WeComChannel struct {
	client *resty.Client
	log    *zap.SugaredLogger
}

// NewWeComChannel creates a new WeCom adapter
func NewWeComChannel(timeout time.Duration, log *zap.SugaredLogger) *WeComChannel {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &WeComChannel{
		client: newClient(timeout),
		log:    log,
	}
}

// Send posts the pre-built payload to the webhook. WeCom reports success with
// errcode 0 in an HTTP 200 body.
func (c *WeComChannel) Send(ctx context.Context, msg WeComMessage) Result {
	var payload any
	if err := sonic.UnmarshalString(msg.Payload, &payload); err != nil {
		c.log.Errorw("invalid wecom message payload", "error", err)
		return Failure(KindValidation, http.StatusBadRequest, "Invalid wecom message format")
	}

	body, err := sonic.Marshal(payload)
	if err != nil {
		return Failure(KindInternal, http.StatusInternalServerError, "Error sending message: "+err.Error())
	}

	c.log.Debugw("calling wecom webhook", "url", RedactedMarker, "payload_size", len(body))

	resp, err := c.client.R().
		SetContext(ctx).
		SetBody(body).
		Post(msg.WebhookURL)
	if err != nil {
		cause := scrubURL(err.Error(), msg.WebhookURL)
		c.log.Errorw("wecom send request failed", "error", cause)
		return Failure(KindInternal, http.StatusInternalServerError, "Error sending message: "+cause)
	}

	if !isSuccess(resp) {
		c.log.Errorw("wecom request failed", "statusCode", resp.StatusCode(), "response", resp.String())
		return upstreamError(resp, "WeCom API error: ")
	}

	var decoded any
	if err := sonic.Unmarshal(resp.Body(), &decoded); err != nil {
		c.log.Errorw("wecom response is not json", "error", err)
		return Failure(KindInternal, http.StatusInternalServerError, "Error sending message: "+err.Error())
	}

	// a body that is not an object has no errcode
	result, _ := decoded.(map[string]any)

	errcode, hasCode := result["errcode"].(float64)
	if !hasCode || errcode != 0 {
		description := "Unknown error"
		if errmsg, ok := result["errmsg"].(string); ok && errmsg != "" {
			description = errmsg
		}
		c.log.Errorw("wecom api error", "errcode", result["errcode"], "errmsg", description)
		return Result{
			Status:      http.StatusBadRequest,
			Kind:        KindUpstreamApplication,
			OK:          false,
			ErrorCode:   int(errcode),
			Description: description,
		}
	}

	c.log.Info("message sent to wecom")
	return Success(decoded, "Message sent successfully")
}
