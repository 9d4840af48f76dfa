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
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Template represents a notification template
type Template struct {
	ID          string   // Template unique ID
	Name        string   // Template name, shared by every locale variant
	Locale      string   // en / zh-CN
	Title       string   // Heading rendered in the message
	Content     string   // Template content with variables
	Variables   []string // Variables referenced by Content
	Format      string   // Message format (markdown/text)
	Description string
}

// TemplateEngine handles template rendering
type TemplateEngine struct {
	funcMap template.FuncMap
}

// NewTemplateEngine creates a new template engine
func NewTemplateEngine() *TemplateEngine {
	titleCaser := cases.Title(language.English)
	upperCaser := cases.Upper(language.Und)
	funcMap := template.FuncMap{
		"upper":       upperCaser.String,
		"lower":       strings.ToLower,
		"title":       titleCaser.String,
		"trim":        strings.TrimSpace,
		"statusColor": StatusColor,
	}

	return &TemplateEngine{
		funcMap: funcMap,
	}
}

// Render renders a template with the given data
func (e *TemplateEngine) Render(tmplContent string, data map[string]any) (string, error) {
	tmpl, err := template.New("notification").
		Funcs(e.funcMap).
		Option("missingkey=zero").
		Parse(tmplContent)
	if err != nil {
		return "", fmt.Errorf("failed to parse template: %w", err)
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return "", fmt.Errorf("failed to execute template: %w", err)
	}

	return buf.String(), nil
}

// ValidateTemplate validates if a template is valid
func (e *TemplateEngine) ValidateTemplate(tmplContent string) error {
	_, err := template.New("validation").Funcs(e.funcMap).Parse(tmplContent)
	return err
}

// ExtractVariables returns the sorted field names referenced as {{.name}},
// including those passed to functions such as {{upper .status}}.
func (e *TemplateEngine) ExtractVariables(tmplContent string) []string {
	variables := make(map[string]struct{})

	parts := strings.Split(tmplContent, "{{")
	for i := 1; i < len(parts); i++ {
		endIdx := strings.Index(parts[i], "}}")
		if endIdx <= 0 {
			continue
		}
		for _, field := range strings.Fields(parts[i][:endIdx]) {
			if strings.HasPrefix(field, ".") && len(field) > 1 {
				variables[strings.TrimPrefix(field, ".")] = struct{}{}
			}
		}
	}

	result := make([]string, 0, len(variables))
	for v := range variables {
		result = append(result, v)
	}
	sort.Strings(result)
	return result
}
