// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"sync"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/port"
)

// MockSettingsProvider serves settings that tests can change between passes
type MockSettingsProvider struct {
	settings model.Settings
	err      error
	mu       sync.RWMutex
}

// Ensure MockSettingsProvider implements the SettingsProvider interface
var _ port.SettingsProvider = (*MockSettingsProvider)(nil)

// NewMockSettingsProvider creates a provider returning settings
func NewMockSettingsProvider(settings model.Settings) *MockSettingsProvider {
	return &MockSettingsProvider{settings: settings}
}

// Settings returns the current settings snapshot
func (m *MockSettingsProvider) Settings(ctx context.Context) (model.Settings, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.settings, m.err
}

// Set replaces the settings
func (m *MockSettingsProvider) Set(settings model.Settings) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.settings = settings
}

// SetError makes Settings fail with err
func (m *MockSettingsProvider) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
