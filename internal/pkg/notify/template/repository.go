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
	"sort"
	"sync"
)

// ITemplateRepository defines the interface for template storage
type ITemplateRepository interface {
	// Create creates a new template
	Create(ctx context.Context, template *Template) error

	// GetByNameAndLocale retrieves the locale variant of a template
	GetByNameAndLocale(ctx context.Context, name, locale string) (*Template, error)

	// List lists all templates ordered by ID
	List(ctx context.Context) ([]*Template, error)
}

// InMemoryTemplateRepository implements ITemplateRepository using in-memory storage
type InMemoryTemplateRepository struct {
	mu        sync.RWMutex
	templates map[string]*Template
}

// NewInMemoryTemplateRepository creates a new in-memory template repository
func NewInMemoryTemplateRepository() *InMemoryTemplateRepository {
	return &InMemoryTemplateRepository{
		templates: make(map[string]*Template),
	}
}

func (r *InMemoryTemplateRepository) Create(ctx context.Context, template *Template) error {
	if template.ID == "" {
		return fmt.Errorf("template ID is required")
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.templates[template.ID]; exists {
		return fmt.Errorf("template with ID %s already exists", template.ID)
	}

	r.templates[template.ID] = template
	return nil
}

func (r *InMemoryTemplateRepository) GetByNameAndLocale(ctx context.Context, name, locale string) (*Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	for _, tmpl := range r.templates {
		if tmpl.Name == name && tmpl.Locale == locale {
			return tmpl, nil
		}
	}
	return nil, fmt.Errorf("template %s for locale %s not found", name, locale)
}

func (r *InMemoryTemplateRepository) List(ctx context.Context) ([]*Template, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	result := make([]*Template, 0, len(r.templates))
	for _, tmpl := range r.templates {
		result = append(result, tmpl)
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID < result[j].ID })
	return result, nil
}
