// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package mock

import (
	"context"
	"log/slog"
	"sync"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/port"
)

// CalendarCall is one request received by MockCalendarClient
type CalendarCall struct {
	Method   string
	DeviceID string
	EntryID  string
	Data     *model.EntryData
}

// MockCalendarClient records calendar calls and returns configured errors
type MockCalendarClient struct {
	calls  []CalendarCall
	errors map[string]error // "METHOD deviceID" -> error
	mu     sync.Mutex
}

// Ensure MockCalendarClient implements the CalendarClient interface
var _ port.CalendarClient = (*MockCalendarClient)(nil)

// NewMockCalendarClient creates a calendar client that accepts every call
func NewMockCalendarClient() *MockCalendarClient {
	return &MockCalendarClient{errors: make(map[string]error)}
}

// PutEntry records a PUT call
func (m *MockCalendarClient) PutEntry(ctx context.Context, deviceID, entryID string, data model.EntryData) error {
	slog.DebugContext(ctx, "mock calendar put", "device_id", deviceID, "entry_id", entryID)
	return m.record(CalendarCall{Method: "PUT", DeviceID: deviceID, EntryID: entryID, Data: &data})
}

// DeleteEntry records a DELETE call
func (m *MockCalendarClient) DeleteEntry(ctx context.Context, deviceID, entryID string) error {
	slog.DebugContext(ctx, "mock calendar delete", "device_id", deviceID, "entry_id", entryID)
	return m.record(CalendarCall{Method: "DELETE", DeviceID: deviceID, EntryID: entryID})
}

// SetError makes every call of method on deviceID fail with err
func (m *MockCalendarClient) SetError(method, deviceID string, err error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.errors[method+" "+deviceID] = err
}

// Calls returns the calls received so far, failed ones included
func (m *MockCalendarClient) Calls() []CalendarCall {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]CalendarCall(nil), m.calls...)
}

func (m *MockCalendarClient) record(call CalendarCall) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.calls = append(m.calls, call)
	return m.errors[call.Method+" "+call.DeviceID]
}

// MockCalendarClientFactory hands out a shared MockCalendarClient
type MockCalendarClientFactory struct {
	Client *MockCalendarClient
	Err    error

	settings []model.Settings
	mu       sync.Mutex
}

// Ensure MockCalendarClientFactory implements the CalendarClientFactory interface
var _ port.CalendarClientFactory = (*MockCalendarClientFactory)(nil)

// NewMockCalendarClientFactory creates a factory around client
func NewMockCalendarClientFactory(client *MockCalendarClient) *MockCalendarClientFactory {
	return &MockCalendarClientFactory{Client: client}
}

// NewCalendarClient returns the shared client and remembers the settings it was built with
func (f *MockCalendarClientFactory) NewCalendarClient(settings model.Settings) (port.CalendarClient, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.settings = append(f.settings, settings)
	if f.Err != nil {
		return nil, f.Err
	}
	return f.Client, nil
}

// Builds returns the settings of every client built so far
func (f *MockCalendarClientFactory) Builds() []model.Settings {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]model.Settings(nil), f.settings...)
}
