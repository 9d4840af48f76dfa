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
	"sync"

	"github.com/go-arcade/pulse/pkg/id"
	"go.uber.org/zap"
)

// Variant is the visual style of a toast.
type Variant string

const (
	VariantDefault     Variant = "default"
	VariantDestructive Variant = "destructive"
)

// Toast is a user-facing success or failure signal.
type Toast struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Variant     Variant `json:"variant"`
}

// Reporter surfaces toasts to whoever triggered a notification.
type Reporter interface {
	Report(ctx context.Context, toast Toast)
}

// LogReporter writes toasts to the log.
type LogReporter struct {
	log *zap.SugaredLogger
}

func NewLogReporter(log *zap.SugaredLogger) *LogReporter {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &LogReporter{log: log}
}

func (r *LogReporter) Report(_ context.Context, toast Toast) {
	if toast.Variant == VariantDestructive {
		r.log.Warnw(toast.Title, "description", toast.Description, "toast_id", toast.ID)
		return
	}
	r.log.Infow(toast.Title, "description", toast.Description, "toast_id", toast.ID)
}

// CollectingReporter keeps every toast it receives, in order.
type CollectingReporter struct {
	mu     sync.Mutex
	toasts []Toast
}

func (r *CollectingReporter) Report(_ context.Context, toast Toast) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.toasts = append(r.toasts, toast)
}

// Toasts returns a copy of the collected toasts.
func (r *CollectingReporter) Toasts() []Toast {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]Toast, len(r.toasts))
	copy(out, r.toasts)
	return out
}

type reporterKey struct{}

// WithReporter routes the toasts of notifications sent with ctx to r.
func WithReporter(ctx context.Context, r Reporter) context.Context {
	return context.WithValue(ctx, reporterKey{}, r)
}

func reporterFrom(ctx context.Context, fallback Reporter) Reporter {
	if r, ok := ctx.Value(reporterKey{}).(Reporter); ok && r != nil {
		return r
	}
	return fallback
}

func newToast(title, description string, variant Variant) Toast {
	return Toast{
		ID:          id.ShortId(),
		Title:       title,
		Description: description,
		Variant:     variant,
	}
}
