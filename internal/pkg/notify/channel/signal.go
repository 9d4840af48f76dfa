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
	"math/rand/v2"
	"net/http"
	"time"

	"go.uber.org/zap"
)

// DefaultSignalDelay approximates the latency of a real gateway round trip.
const DefaultSignalDelay = 500 * time.Millisecond

// SignalMessage is the input of the Signal adapter.
type SignalMessage struct {
	Number string
	Text   string
}

// SignalReceipt is the simulated delivery receipt.
type SignalReceipt struct {
	ID        int   `json:"id"`
	Timestamp int64 `json:"timestamp"`
	Delivered bool  `json:"delivered"`
}

// SignalChannel stands in for a Signal gateway. No message leaves the
// process; a real transport should replace it and reuse the Telegram error
// mapping.
type SignalChannel struct {
	delay time.Duration
	now   func() time.Time
	log   *zap.SugaredLogger
}

// NewSignalChannel creates the simulated adapter. A negative delay disables
// the artificial latency.
func NewSignalChannel(delay time.Duration, log *zap.SugaredLogger) *SignalChannel {
	if delay == 0 {
		delay = DefaultSignalDelay
	}
	if delay < 0 {
		delay = 0
	}
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &SignalChannel{delay: delay, now: time.Now, log: log}
}

// Send waits for the simulated latency and reports delivery.
func (c *SignalChannel) Send(ctx context.Context, msg SignalMessage) Result {
	c.log.Infow("[SIMULATION] sending signal message",
		"number", msg.Number,
		"message_length", len(msg.Text),
	)

	if c.delay > 0 {
		timer := time.NewTimer(c.delay)
		defer timer.Stop()
		select {
		case <-timer.C:
		case <-ctx.Done():
			return Failure(KindInternal, http.StatusInternalServerError, "Error sending Signal message: "+ctx.Err().Error())
		}
	}

	return Success(SignalReceipt{
		ID:        rand.IntN(10000),
		Timestamp: c.now().UnixMilli(),
		Delivered: true,
	}, "Signal message sent successfully (simulated)")
}
