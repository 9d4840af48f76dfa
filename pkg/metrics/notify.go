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
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// NotifyMetrics records dispatch outcomes per channel.
type NotifyMetrics struct {
	dispatchTotal    *prometheus.CounterVec
	dispatchDuration *prometheus.HistogramVec
}

// NewNotifyMetrics creates the notification collectors; register them with
// Collectors.
func NewNotifyMetrics() *NotifyMetrics {
	return &NotifyMetrics{
		dispatchTotal: prometheus.NewCounterVec(
			prometheus.CounterOpts{
				Namespace: "pulse",
				Subsystem: "notify",
				Name:      "dispatch_total",
				Help:      "Total number of notification dispatches by channel and outcome",
			},
			[]string{"channel", "status", "ok", "kind"},
		),
		dispatchDuration: prometheus.NewHistogramVec(
			prometheus.HistogramOpts{
				Namespace: "pulse",
				Subsystem: "notify",
				Name:      "dispatch_duration_seconds",
				Help:      "Notification dispatch latency in seconds",
				Buckets:   []float64{.01, .05, .1, .25, .5, 1, 2.5, 5, 10},
			},
			[]string{"channel"},
		),
	}
}

// Collectors returns every collector owned by NotifyMetrics.
func (m *NotifyMetrics) Collectors() []prometheus.Collector {
	return []prometheus.Collector{m.dispatchTotal, m.dispatchDuration}
}

// ObserveDispatch records one dispatch.
func (m *NotifyMetrics) ObserveDispatch(channel string, status int, ok bool, kind string, elapsed time.Duration) {
	if kind == "" {
		kind = "none"
	}
	m.dispatchTotal.WithLabelValues(channel, strconv.Itoa(status), strconv.FormatBool(ok), kind).Inc()
	m.dispatchDuration.WithLabelValues(channel).Observe(elapsed.Seconds())
}
