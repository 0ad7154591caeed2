// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"log/slog"
	"slices"
	"sync"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/port"
)

// MockQueueRepository is an in-memory queue with transactional appends
type MockQueueRepository struct {
	entries []model.QueueEntry
	nextID  int64

	recordErr error
	listErr   error
	deleteErr error
	readyErr  error

	mu sync.RWMutex
}

// Ensure MockQueueRepository implements the QueueRepository interface
var _ port.QueueRepository = (*MockQueueRepository)(nil)

// NewMockQueueRepository creates an empty in-memory queue
func NewMockQueueRepository() *MockQueueRepository {
	return &MockQueueRepository{nextID: 1}
}

// Record appends entries outside any transaction
func (m *MockQueueRepository) Record(ctx context.Context, entries ...model.QueueEntry) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.recordErr != nil {
		return m.recordErr
	}
	m.commit(entries)
	return nil
}

// WithinTx stages entries written by fn and commits them only when fn succeeds
func (m *MockQueueRepository) WithinTx(ctx context.Context, fn func(port.QueueWriter) error) error {
	tx := &mockQueueTx{}
	if err := fn(tx); err != nil {
		slog.DebugContext(ctx, "mock queue transaction rolled back", "error", err)
		return err
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if m.recordErr != nil {
		return m.recordErr
	}
	m.commit(tx.staged)
	return nil
}

// ListPending returns a copy of the pending entries in id order
func (m *MockQueueRepository) ListPending(ctx context.Context) ([]model.QueueEntry, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	if m.listErr != nil {
		return nil, m.listErr
	}
	return slices.Clone(m.entries), nil
}

// DeleteEntries removes the entries with the given ids
func (m *MockQueueRepository) DeleteEntries(ctx context.Context, ids []int64) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.deleteErr != nil {
		return m.deleteErr
	}
	m.entries = slices.DeleteFunc(m.entries, func(e model.QueueEntry) bool {
		return slices.Contains(ids, e.ID)
	})
	return nil
}

// IsReady returns the configured readiness error, nil by default
func (m *MockQueueRepository) IsReady(ctx context.Context) error {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.readyErr
}

// Entries returns a snapshot of the queue contents
func (m *MockQueueRepository) Entries() []model.QueueEntry {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.entries)
}

// SetRecordError makes subsequent commits fail with err
func (m *MockQueueRepository) SetRecordError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.recordErr = err
}

// SetListError makes ListPending fail with err
func (m *MockQueueRepository) SetListError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.listErr = err
}

// SetDeleteError makes DeleteEntries fail with err
func (m *MockQueueRepository) SetDeleteError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.deleteErr = err
}

// SetReadyError makes IsReady fail with err
func (m *MockQueueRepository) SetReadyError(err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.readyErr = err
}

// commit assigns ids and appends; callers hold the write lock
func (m *MockQueueRepository) commit(entries []model.QueueEntry) {
	for _, e := range entries {
		e.ID = m.nextID
		m.nextID++
		m.entries = append(m.entries, e)
	}
}

// mockQueueTx buffers entries until the transaction commits
type mockQueueTx struct {
	staged []model.QueueEntry
}

func (t *mockQueueTx) Record(ctx context.Context, entries ...model.QueueEntry) error {
	for _, e := range entries {
		if err := e.Validate(); err != nil {
			return err
		}
	}
	t.staged = append(t.staged, entries...)
	return nil
}
