// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package httpclient

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	errs "github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewClient(t *testing.T) {
	config := Config{
		Timeout:      10 * time.Second,
		MaxRetries:   2,
		RetryDelay:   500 * time.Millisecond,
		RetryBackoff: true,
	}

	client := NewClient(config)

	assert.Equal(t, config.Timeout, client.config.Timeout)
	assert.Equal(t, config.MaxRetries, client.config.MaxRetries)
	assert.Equal(t, config.Timeout, client.httpClient.Timeout)
	assert.Equal(t, http.DefaultTransport, client.httpClient.Transport)
}

func TestNewClient_Defaults(t *testing.T) {
	client := NewClient(Config{MaxRetries: -3})

	assert.Equal(t, 30*time.Second, client.config.MaxDelay)
	assert.Equal(t, 0, client.config.MaxRetries)
}

func TestNewClient_CustomTransport(t *testing.T) {
	transport := &http.Transport{}
	client := NewClient(Config{Transport: transport})

	assert.Same(t, transport, client.httpClient.Transport)
}

func TestDefaultConfig(t *testing.T) {
	config := DefaultConfig()

	assert.Equal(t, 10*time.Second, config.Timeout)
	assert.Equal(t, 2, config.MaxRetries)
	assert.Equal(t, 500*time.Millisecond, config.RetryDelay)
	assert.True(t, config.RetryBackoff)
	assert.Equal(t, 30*time.Second, config.MaxDelay)
	assert.Nil(t, config.Transport)
}

func TestClient_Put_SendsJSONBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		assert.Equal(t, "application/json", r.Header.Get("Content-Type"))
		assert.Equal(t, "application/json", r.Header.Get("Accept"))

		body, _ := io.ReadAll(r.Body)
		assert.JSONEq(t, `{"status": "BUSY"}`, string(body))

		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte(`{"ok": true}`))
	}))
	defer server.Close()

	client := NewClient(Config{Timeout: 5 * time.Second})

	resp, err := client.Request(context.Background(), http.MethodPut, server.URL, []byte(`{"status": "BUSY"}`), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.JSONEq(t, `{"ok": true}`, string(resp.Body))
}

func TestClient_Delete_NoBody(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodDelete, r.Method)
		assert.Empty(t, r.Header.Get("Content-Type"))
		w.WriteHeader(http.StatusNoContent)
	}))
	defer server.Close()

	client := NewClient(Config{Timeout: 5 * time.Second})

	resp, err := client.Request(context.Background(), http.MethodDelete, server.URL, nil, map[string]string{"X-Test": "1"})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)
}

func TestClient_RetryOnServerError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		// Body must be replayed on every attempt
		body, _ := io.ReadAll(r.Body)
		assert.Equal(t, "payload", string(body))

		if calls.Add(1) < 3 {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(Config{
		Timeout:    5 * time.Second,
		MaxRetries: 3,
		RetryDelay: 10 * time.Millisecond,
	})

	resp, err := client.Request(context.Background(), http.MethodPut, server.URL, []byte("payload"), nil)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, int32(3), calls.Load())
}

func TestClient_NoRetryOnClientError(t *testing.T) {
	var calls atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadRequest)
		_, _ = w.Write([]byte(`{"error": "bad start"}`))
	}))
	defer server.Close()

	client := NewClient(Config{
		Timeout:    5 * time.Second,
		MaxRetries: 3,
		RetryDelay: 10 * time.Millisecond,
	})

	resp, err := client.Request(context.Background(), http.MethodPut, server.URL, []byte("{}"), nil)
	require.Error(t, err)
	require.NotNil(t, resp)
	assert.Equal(t, int32(1), calls.Load())

	var statusErr *StatusError
	require.True(t, errors.As(err, &statusErr))
	assert.Equal(t, http.StatusBadRequest, statusErr.StatusCode)
	assert.Equal(t, http.MethodPut, statusErr.Method)
	assert.Contains(t, statusErr.Error(), "bad start")
}

func TestClient_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	client := NewClient(Config{Timeout: 50 * time.Millisecond})

	_, err := client.Request(context.Background(), http.MethodGet, server.URL, nil, nil)
	require.Error(t, err)

	var timeoutErr errs.Timeout
	assert.True(t, errors.As(err, &timeoutErr))
}

func TestClient_ContextCancelledDuringBackoff(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := NewClient(Config{
		Timeout:    5 * time.Second,
		MaxRetries: 5,
		RetryDelay: time.Second,
	})

	ctx, cancel := context.WithTimeout(context.Background(), 100*time.Millisecond)
	defer cancel()

	start := time.Now()
	_, err := client.Request(ctx, http.MethodGet, server.URL, nil, nil)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Less(t, time.Since(start), time.Second)
}

func TestClient_Backoff(t *testing.T) {
	client := NewClient(Config{
		RetryDelay:   100 * time.Millisecond,
		RetryBackoff: true,
		MaxDelay:     500 * time.Millisecond,
	})

	tests := []struct {
		attempt int
		min     time.Duration
		max     time.Duration
	}{
		{attempt: 1, min: 100 * time.Millisecond, max: 125 * time.Millisecond},
		{attempt: 2, min: 200 * time.Millisecond, max: 250 * time.Millisecond},
		{attempt: 3, min: 400 * time.Millisecond, max: 500 * time.Millisecond},
		{attempt: 6, min: 400 * time.Millisecond, max: 625 * time.Millisecond},
	}

	for _, tt := range tests {
		delay := client.backoff(tt.attempt)
		assert.GreaterOrEqual(t, delay, tt.min, "attempt %d", tt.attempt)
		assert.LessOrEqual(t, delay, tt.max, "attempt %d", tt.attempt)
	}
}

func TestClient_Backoff_Constant(t *testing.T) {
	client := NewClient(Config{RetryDelay: 100 * time.Millisecond})

	assert.Equal(t, 100*time.Millisecond, client.backoff(1))
	assert.Equal(t, 100*time.Millisecond, client.backoff(4))
}

// headerRoundTripper stamps a header on every request
type headerRoundTripper struct {
	key, value string
	called     atomic.Int32
}

func (h *headerRoundTripper) RoundTrip(req *http.Request, next func(*http.Request) (*http.Response, error)) (*http.Response, error) {
	h.called.Add(1)
	req.Header.Set(h.key, h.value)
	return next(req)
}

func TestClient_RoundTripper_Chain(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "req-1", r.Header.Get("X-Request-Id"))
		assert.Equal(t, "Bearer token", r.Header.Get("Authorization"))
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(Config{Timeout: 5 * time.Second})

	first := &headerRoundTripper{key: "X-Request-Id", value: "req-1"}
	second := &headerRoundTripper{key: "Authorization", value: "Bearer token"}
	client.AddRoundTripper(first)
	client.AddRoundTripper(second)

	_, err := client.Request(context.Background(), http.MethodGet, server.URL, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(1), first.called.Load())
	assert.Equal(t, int32(1), second.called.Load())
}

func TestClient_RoundTripper_RunsOnEveryAttempt(t *testing.T) {
	var attempts atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "executed", r.Header.Get("X-Mock"))
		if attempts.Add(1) == 1 {
			w.WriteHeader(http.StatusTooManyRequests)
			return
		}
		w.WriteHeader(http.StatusOK)
	}))
	defer server.Close()

	client := NewClient(Config{
		Timeout:    5 * time.Second,
		MaxRetries: 2,
		RetryDelay: 10 * time.Millisecond,
	})
	rt := &headerRoundTripper{key: "X-Mock", value: "executed"}
	client.AddRoundTripper(rt)

	_, err := client.Request(context.Background(), http.MethodGet, server.URL, nil, nil)
	require.NoError(t, err)
	assert.Equal(t, int32(2), attempts.Load())
	assert.Equal(t, int32(2), rt.called.Load())
}
