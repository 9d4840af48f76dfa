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
	"sort"
	"sync"

	"github.com/pkg/errors"
)

// ErrConfigurationNotFound is returned when no configuration has the requested id.
var ErrConfigurationNotFound = errors.New("notification configuration not found")

// ConfigurationRepository is the read side of configuration storage.
type ConfigurationRepository interface {
	Get(ctx context.Context, id string) (NotificationConfiguration, error)
	List(ctx context.Context) ([]NotificationConfiguration, error)
	// Replace swaps the whole set; entries without an id are skipped.
	Replace(ctx context.Context, configs []NotificationConfiguration) (skipped int)
}

// InMemoryConfigurationRepository stores configurations loaded from the config file.
type InMemoryConfigurationRepository struct {
	mu      sync.RWMutex
	configs map[string]NotificationConfiguration
}

// NewInMemoryConfigurationRepository seeds the repository with configs.
func NewInMemoryConfigurationRepository(configs ...NotificationConfiguration) *InMemoryConfigurationRepository {
	r := &InMemoryConfigurationRepository{}
	r.Replace(context.Background(), configs)
	return r
}

func (r *InMemoryConfigurationRepository) Get(_ context.Context, id string) (NotificationConfiguration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	c, ok := r.configs[id]
	if !ok {
		return NotificationConfiguration{}, errors.Wrapf(ErrConfigurationNotFound, "id %s", id)
	}
	return c, nil
}

func (r *InMemoryConfigurationRepository) List(_ context.Context) ([]NotificationConfiguration, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]NotificationConfiguration, 0, len(r.configs))
	for _, c := range r.configs {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r *InMemoryConfigurationRepository) Replace(_ context.Context, configs []NotificationConfiguration) (skipped int) {
	next := make(map[string]NotificationConfiguration, len(configs))
	for _, c := range configs {
		if c.ID == "" {
			skipped++
			continue
		}
		next[c.ID] = c
	}

	r.mu.Lock()
	r.configs = next
	r.mu.Unlock()
	return skipped
}
