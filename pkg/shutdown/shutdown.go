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
	"os"
	"os/signal"
	"sync/atomic"
	"syscall"
)

// Manager tracks whether the process is draining.
type Manager struct {
	shuttingDown atomic.Bool
	done         chan struct{}
	reason       atomic.Value
}

// NewManager creates a new shutdown manager
func NewManager() *Manager {
	return &Manager{done: make(chan struct{})}
}

// IsShuttingDown returns true once Shutdown has been called
func (m *Manager) IsShuttingDown() bool {
	return m.shuttingDown.Load()
}

// Shutdown marks the process as draining and records why.
// Returns false if shutdown was already triggered.
func (m *Manager) Shutdown(reason string) bool {
	if !m.shuttingDown.CompareAndSwap(false, true) {
		return false
	}
	m.reason.Store(reason)
	close(m.done)
	return true
}

// Done is closed when shutdown starts
func (m *Manager) Done() <-chan struct{} {
	return m.done
}

// Reason returns the value passed to Shutdown.
func (m *Manager) Reason() string {
	r, _ := m.reason.Load().(string)
	return r
}

// ListenSignals triggers Shutdown on SIGHUP, SIGINT, SIGTERM or SIGQUIT.
// The returned func stops listening.
func (m *Manager) ListenSignals() func() {
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGHUP, syscall.SIGINT, syscall.SIGTERM, syscall.SIGQUIT)
	stop := make(chan struct{})
	go func() {
		select {
		case sig := <-quit:
			m.Shutdown(sig.String())
		case <-stop:
		}
	}()
	return func() {
		signal.Stop(quit)
		close(stop)
	}
}
