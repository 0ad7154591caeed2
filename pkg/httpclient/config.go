// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package httpclient

import (
	"net/http"
	"time"
)

// Config holds the configuration for the HTTP client
type Config struct {
	// Timeout is the per-attempt request timeout
	Timeout time.Duration

	// MaxRetries is the number of additional attempts after the first one
	MaxRetries int

	// RetryDelay is the base delay between attempts
	RetryDelay time.Duration

	// RetryBackoff doubles the delay on every attempt when set
	RetryBackoff bool

	// MaxDelay caps the backoff delay
	MaxDelay time.Duration

	// Transport is the base transport; http.DefaultTransport when nil
	Transport http.RoundTripper
}

// DefaultConfig returns a Config with sensible defaults
func DefaultConfig() Config {
	return Config{
		Timeout:      10 * time.Second,
		MaxRetries:   2,
		RetryDelay:   500 * time.Millisecond,
		RetryBackoff: true,
		MaxDelay:     30 * time.Second,
	}
}
