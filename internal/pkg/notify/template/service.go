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
	"fmt"
)

// TemplateService provides template management functionality
type TemplateService struct {
	repository ITemplateRepository
	engine     *TemplateEngine
}

// NewTemplateService creates a new template service
func NewTemplateService(repository ITemplateRepository) *TemplateService {
	return &TemplateService{
		repository: repository,
		engine:     NewTemplateEngine(),
	}
}

// CreateTemplate validates and stores a template
func (s *TemplateService) CreateTemplate(ctx context.Context, template *Template) error {
	if err := s.engine.ValidateTemplate(template.Content); err != nil {
		return fmt.Errorf("invalid template content: %w", err)
	}

	template.Variables = s.engine.ExtractVariables(template.Content)

	return s.repository.Create(ctx, template)
}

// RenderByLocale renders the locale variant of the named template. The
// template title is exposed to the content as {{.title}}.
func (s *TemplateService) RenderByLocale(ctx context.Context, name, locale string, data map[string]any) (string, error) {
	template, err := s.repository.GetByNameAndLocale(ctx, name, locale)
	if err != nil {
		return "", err
	}

	vars := make(map[string]any, len(data)+1)
	vars["title"] = template.Title
	for k, v := range data {
		vars[k] = v
	}
	return s.engine.Render(template.Content, vars)
}

// ListTemplates lists all templates
func (s *TemplateService) ListTemplates(ctx context.Context) ([]*Template, error) {
	return s.repository.List(ctx)
}
