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
	"context"
	"regexp"
	"strings"
	"time"

	"github.com/bytedance/sonic"
)

var (
	serviceNamePattern  = regexp.MustCompile(`Service ([^\s]+) is`)
	responseTimePattern = regexp.MustCompile(`Response time: ([\d.]+)ms`)
	urlPattern          = regexp.MustCompile(`URL: ([^\s]+)`)
)

const (
	unknownService = "Unknown"
	notAvailable   = "N/A"
)

var timeLayouts = map[string]string{
	LocaleEnglish: "1/2/2006, 3:04:05 PM",
	LocaleChinese: "2006/1/2 15:04:05",
}

// StatusColor maps a service status onto the colour used in the markdown
// header. Matching is case-insensitive and exact.
func StatusColor(status string) string {
	switch strings.ToLower(status) {
	case "up", "resolved", "ok", "operational":
		return "green"
	case "down", "error", "critical":
		return "red"
	case "warning", "degraded", "maintenance", "paused":
		return "blue"
	default:
		return "gray"
	}
}

// Details holds the fields pulled out of a free-text alert message.
type Details struct {
	ServiceName  string
	ResponseTime string
	URL          string
}

// ExtractDetails reads service name, response time and URL from message,
// falling back to placeholders when a pattern does not match.
func ExtractDetails(message string) Details {
	d := Details{ServiceName: unknownService, ResponseTime: notAvailable, URL: notAvailable}
	if m := serviceNamePattern.FindStringSubmatch(message); m != nil {
		d.ServiceName = m[1]
	}
	if m := responseTimePattern.FindStringSubmatch(message); m != nil {
		d.ResponseTime = m[1] + "ms"
	}
	if m := urlPattern.FindStringSubmatch(message); m != nil {
		d.URL = m[1]
	}
	return d
}

// MarkdownMessage is the WeCom robot markdown payload.
type MarkdownMessage struct {
	MsgType  string          `json:"msgtype"`
	Markdown MarkdownContent `json:"markdown"`
}

type MarkdownContent struct {
	Content string `json:"content"`
}

// MarkdownFormatter renders alert messages into WeCom markdown payloads.
type MarkdownFormatter struct {
	service  *TemplateService
	locale   string
	location *time.Location
}

// FormatterOption customizes a MarkdownFormatter.
type FormatterOption func(*MarkdownFormatter)

// WithLocation sets the time zone of the notification timestamp.
func WithLocation(loc *time.Location) FormatterOption {
	return func(f *MarkdownFormatter) {
		if loc != nil {
			f.location = loc
		}
	}
}

// NewMarkdownFormatter returns a formatter for locale ("en" or "zh-CN";
// anything else falls back to "en") backed by the predefined templates.
func NewMarkdownFormatter(locale string, opts ...FormatterOption) *MarkdownFormatter {
	if _, ok := timeLayouts[locale]; !ok {
		locale = LocaleEnglish
	}
	f := &MarkdownFormatter{
		locale:   locale,
		location: time.Local,
	}
	for _, opt := range opts {
		opt(f)
	}
	f.service = NewTemplateService(NewInMemoryTemplateRepository())
	// 内置模板已校验，不会失败
	_ = InitializePredefinedTemplates(context.Background(), f.service)
	return f
}

// Locale returns the effective locale.
func (f *MarkdownFormatter) Locale() string {
	return f.locale
}

// Format renders message and status as a JSON-encoded markdown payload.
// Output only depends on its inputs, so identical calls yield identical bytes.
func (f *MarkdownFormatter) Format(message, status string, now time.Time) (string, error) {
	details := ExtractDetails(message)
	content, err := f.service.RenderByLocale(context.Background(), ServiceStatusTemplate, f.locale, map[string]any{
		"color":         StatusColor(status),
		"service_name":  details.ServiceName,
		"status":        status,
		"response_time": details.ResponseTime,
		"url":           details.URL,
		"message":       message,
		"time":          now.In(f.location).Format(timeLayouts[f.locale]),
	})
	if err != nil {
		return "", err
	}

	out, err := sonic.Marshal(MarkdownMessage{
		MsgType:  "markdown",
		Markdown: MarkdownContent{Content: content},
	})
	if err != nil {
		return "", err
	}
	return string(out), nil
}

var defaultFormatter = NewMarkdownFormatter(LocaleEnglish)

// FormatMarkdown formats with the default English formatter in local time.
func FormatMarkdown(message, status string, now time.Time) string {
	out, err := defaultFormatter.Format(message, status, now)
	if err != nil {
		return ""
	}
	return out
}
