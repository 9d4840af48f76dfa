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
package shutdown

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestManager(t *testing.T) {
	m := NewManager()
	assert.False(t, m.IsShuttingDown())

	assert.True(t, m.Shutdown("test"))
	assert.False(t, m.Shutdown("again"))
	assert.True(t, m.IsShuttingDown())
	assert.Equal(t, "test", m.Reason())

	select {
	case <-m.Done():
	default:
		t.Fatal("done channel should be closed")
	}
}

func TestManager_ListenSignalsStop(t *testing.T) {
	m := NewManager()
	stop := m.ListenSignals()
	stop()
	assert.False(t, m.IsShuttingDown())
}
