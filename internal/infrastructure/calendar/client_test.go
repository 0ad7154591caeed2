// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package calendar

import (
	"context"
	"encoding/json"
	"errors"
	"html"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/constants"
	errs "github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type capturedRequest struct {
	Method string
	Path   string
	Header http.Header
	Body   []byte
}

type bridgeServer struct {
	*httptest.Server
	status   int
	delay    time.Duration
	requests []capturedRequest
	mu       sync.Mutex
}

func newBridgeServer(t *testing.T, status int) *bridgeServer {
	t.Helper()
	b := &bridgeServer{status: status}
	b.Server = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		b.mu.Lock()
		b.requests = append(b.requests, capturedRequest{Method: r.Method, Path: r.URL.EscapedPath(), Header: r.Header.Clone(), Body: body})
		b.mu.Unlock()
		if b.delay > 0 {
			time.Sleep(b.delay)
		}
		w.WriteHeader(b.status)
		_, _ = w.Write([]byte(`{"message":"bridge says hi"}`))
	}))
	t.Cleanup(b.Close)
	return b
}

func (b *bridgeServer) captured() []capturedRequest {
	b.mu.Lock()
	defer b.mu.Unlock()
	return append([]capturedRequest(nil), b.requests...)
}

func testSettings(serviceURL string) model.Settings {
	return model.Settings{ServiceURL: serviceURL, Token: "secret-token", Timeout: 3}
}

func TestClient_PutEntry(t *testing.T) {
	bridge := newBridgeServer(t, http.StatusOK)
	client, err := NewClient(testSettings(bridge.URL+"/"), nil)
	require.NoError(t, err)

	ctx := context.WithValue(context.Background(), constants.RequestIDContextKey, "req-123")
	err = client.PutEntry(ctx, "dev-a", "zoom_meeting:dev-a@indico:event:10:contribution:100#m2", model.EntryData{
		Title: "Keynote\x00 with\ttabs\n",
		Start: 1772438400,
		End:   1772445600,
		URL:   "https://zoom.example/j/m2",
	})
	require.NoError(t, err)

	requests := bridge.captured()
	require.Len(t, requests, 1)
	req := requests[0]
	assert.Equal(t, http.MethodPut, req.Method)
	assert.Equal(t, "/api/v1/users/dev-a/events/indico:event:10:contribution:100", req.Path)
	assert.Equal(t, "Bearer secret-token", req.Header.Get("Authorization"))
	assert.Equal(t, "application/json", req.Header.Get("Content-Type"))
	assert.Equal(t, "req-123", req.Header.Get(constants.RequestIDHeader))

	var payload map[string]any
	require.NoError(t, json.Unmarshal(req.Body, &payload))
	assert.Equal(t, "BUSY", payload["status"])
	assert.Equal(t, float64(1772438400), payload["start"])
	assert.Equal(t, float64(1772445600), payload["end"])
	assert.Equal(t, "Keynote withtabs", payload["subject"])
	assert.Equal(t, `<a href="https://zoom.example/j/m2">https://zoom.example/j/m2</a>`, payload["body"])
}

func TestClient_MoveBetweenEmailShapedDevices(t *testing.T) {
	bridge := newBridgeServer(t, http.StatusOK)
	client, err := NewClient(testSettings(bridge.URL), nil)
	require.NoError(t, err)
	ctx := context.Background()

	// a move PUTs under the id built for the old device; later entries use the new device's id
	movedID := "zoom_meeting:room-a@cern.ch@indico:event:10:block:7#m1"
	laterID := "zoom_meeting:room-b@site.example@indico:event:10:block:7#m1"

	require.NoError(t, client.DeleteEntry(ctx, "room-a@cern.ch", movedID))
	require.NoError(t, client.PutEntry(ctx, "room-b@site.example", movedID, model.EntryData{Title: "Block", URL: "https://zoom.example/j/m1"}))
	require.NoError(t, client.DeleteEntry(ctx, "room-b@site.example", laterID))

	requests := bridge.captured()
	require.Len(t, requests, 3)
	assert.Equal(t, "/api/v1/users/room-a@cern.ch/events/indico:event:10:block:7", requests[0].Path)
	assert.Equal(t, "/api/v1/users/room-b@site.example/events/indico:event:10:block:7", requests[1].Path)
	assert.Equal(t, requests[1].Path, requests[2].Path, "the moved entry and later operations must target one bridge resource")
}

func TestClient_DeleteEntry(t *testing.T) {
	bridge := newBridgeServer(t, http.StatusNoContent)
	client, err := NewClient(testSettings(bridge.URL), nil)
	require.NoError(t, err)

	require.NoError(t, client.DeleteEntry(context.Background(), "dev-b", "zoom_meeting:dev-b@indico:event:10#m1"))

	requests := bridge.captured()
	require.Len(t, requests, 1)
	assert.Equal(t, http.MethodDelete, requests[0].Method)
	assert.Equal(t, "/api/v1/users/dev-b/events/indico:event:10", requests[0].Path)
	assert.Empty(t, requests[0].Body)
	assert.Empty(t, requests[0].Header.Get(constants.RequestIDHeader))
}

func TestClient_ErrorMapping(t *testing.T) {
	tests := []struct {
		name   string
		status int
		check  func(t *testing.T, err error)
	}{
		{"not found", http.StatusNotFound, func(t *testing.T, err error) {
			var target errs.NotFound
			assert.True(t, errors.As(err, &target))
		}},
		{"unauthorized", http.StatusUnauthorized, func(t *testing.T, err error) {
			var target errs.Unauthorized
			assert.True(t, errors.As(err, &target))
		}},
		{"bad request", http.StatusBadRequest, func(t *testing.T, err error) {
			var target errs.Validation
			assert.True(t, errors.As(err, &target))
			assert.Contains(t, err.Error(), "bridge says hi")
		}},
		{"rate limited", http.StatusTooManyRequests, func(t *testing.T, err error) {
			var target errs.ServiceUnavailable
			assert.True(t, errors.As(err, &target))
		}},
		{"server error", http.StatusBadGateway, func(t *testing.T, err error) {
			var target errs.ServiceUnavailable
			assert.True(t, errors.As(err, &target))
		}},
		{"redirect", http.StatusNotModified, func(t *testing.T, err error) {
			var target errs.Unexpected
			assert.True(t, errors.As(err, &target))
		}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			bridge := newBridgeServer(t, tt.status)
			client, err := NewClient(testSettings(bridge.URL), nil)
			require.NoError(t, err)

			err = client.DeleteEntry(context.Background(), "dev-a", "zoom_meeting:dev-a@indico:event:1#m1")
			require.Error(t, err)
			tt.check(t, err)
			assert.Len(t, bridge.captured(), 1, "the client itself never retries")
		})
	}
}

func TestClient_Timeout(t *testing.T) {
	bridge := newBridgeServer(t, http.StatusOK)
	bridge.delay = 600 * time.Millisecond

	settings := testSettings(bridge.URL)
	settings.Timeout = 0.25
	client, err := NewClient(settings, nil)
	require.NoError(t, err)

	err = client.PutEntry(context.Background(), "dev-a", "zoom_meeting:dev-a@indico:event:1#m1", model.EntryData{Title: "x"})
	require.Error(t, err)
	var timeout errs.Timeout
	assert.True(t, errors.As(err, &timeout))
}

func TestClient_Unreachable(t *testing.T) {
	bridge := newBridgeServer(t, http.StatusOK)
	url := bridge.URL
	bridge.Close()

	client, err := NewClient(testSettings(url), nil)
	require.NoError(t, err)

	err = client.DeleteEntry(context.Background(), "dev-a", "zoom_meeting:dev-a@indico:event:1#m1")
	var unavailable errs.ServiceUnavailable
	assert.True(t, errors.As(err, &unavailable))
}

func TestNewClient_InvalidSettings(t *testing.T) {
	_, err := NewClient(model.Settings{Timeout: 3}, nil)
	require.Error(t, err)
	var configErr errs.Configuration
	assert.True(t, errors.As(err, &configErr))

	_, err = NewClientFactory(nil).NewCalendarClient(model.Settings{ServiceURL: "https://bridge.example", Token: "t", Timeout: 0.1})
	assert.True(t, errors.As(err, &configErr))
}

func TestStripControlChars(t *testing.T) {
	assert.Equal(t, "Plenary", stripControlChars("Ple\x07nary"))
	assert.Equal(t, "Café talk", stripControlChars("Café\u0085 talk"))
	assert.Equal(t, "", stripControlChars("\r\n"))
}

func TestNewEventPayload_BodyLinkDecodesToJoinURL(t *testing.T) {
	joinURL := `https://zoom.example/j/123?pwd=abc&uname="x"`

	body := newEventPayload(model.EntryData{Title: "Keynote", URL: joinURL}).Body

	href, text, ok := strings.Cut(strings.TrimSuffix(strings.TrimPrefix(body, `<a href="`), `</a>`), `">`)
	require.True(t, ok, "body must be a single anchor: %s", body)
	assert.NotContains(t, href, `"`, "the URL must not break out of the attribute")
	assert.Equal(t, joinURL, html.UnescapeString(href))
	assert.Equal(t, joinURL, html.UnescapeString(text))
}
