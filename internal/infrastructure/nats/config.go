// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"os"
	"strconv"
	"time"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/constants"
)

// Config holds the NATS connection configuration
type Config struct {
	// URL is the NATS server URL
	URL string

	// Timeout is the connect timeout
	Timeout time.Duration

	// MaxReconnect is the number of reconnect attempts, -1 for unlimited
	MaxReconnect int

	// ReconnectWait is the wait between reconnect attempts
	ReconnectWait time.Duration
}

// DefaultConfig returns a Config for a local NATS server
func DefaultConfig() Config {
	return Config{
		URL:           "nats://localhost:4222",
		Timeout:       10 * time.Second,
		MaxReconnect:  3,
		ReconnectWait: 2 * time.Second,
	}
}

// NewConfigFromEnv creates a Config from environment variables
func NewConfigFromEnv() Config {
	config := DefaultConfig()

	if url := os.Getenv(constants.EnvNATSURL); url != "" {
		config.URL = url
	}
	if timeoutStr := os.Getenv(constants.EnvNATSTimeout); timeoutStr != "" {
		if timeout, err := time.ParseDuration(timeoutStr); err == nil {
			config.Timeout = timeout
		}
	}
	if reconnectStr := os.Getenv(constants.EnvNATSMaxReconnect); reconnectStr != "" {
		if reconnect, err := strconv.Atoi(reconnectStr); err == nil {
			config.MaxReconnect = reconnect
		}
	}
	if waitStr := os.Getenv(constants.EnvNATSReconnectWait); waitStr != "" {
		if wait, err := time.ParseDuration(waitStr); err == nil {
			config.ReconnectWait = wait
		}
	}

	return config
}
