// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"log/slog"
	"sync"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/port"
)

// MockDeadLetterPublisher keeps published failures in memory
type MockDeadLetterPublisher struct {
	failed []port.FailedEntry
	err    error
	mu     sync.Mutex
}

// Ensure MockDeadLetterPublisher implements the DeadLetterPublisher interface
var _ port.DeadLetterPublisher = (*MockDeadLetterPublisher)(nil)

// NewMockDeadLetterPublisher creates a new in-memory dead letter publisher
func NewMockDeadLetterPublisher() *MockDeadLetterPublisher {
	return &MockDeadLetterPublisher{}
}

// PublishFailedEntry stores the failure (mock implementation - logs only)
func (m *MockDeadLetterPublisher) PublishFailedEntry(ctx context.Context, failed port.FailedEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	slog.InfoContext(ctx, "mock dead letter published",
		"entry_id", failed.Entry.EntryID,
		"error", failed.Error,
	)
	if m.err != nil {
		return m.err
	}
	m.failed = append(m.failed, failed)
	return nil
}

// Failed returns the failures published so far
func (m *MockDeadLetterPublisher) Failed() []port.FailedEntry {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]port.FailedEntry(nil), m.failed...)
}

// SetError makes publishing fail with err
func (m *MockDeadLetterPublisher) SetError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.err = err
}
