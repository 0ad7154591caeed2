// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package sqlstore

import (
	"os"
	"strconv"
	"time"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/constants"
)

// Config holds the queue database configuration
type Config struct {
	// Driver is postgres or sqlite
	Driver string

	// DSN is the driver specific data source name
	DSN string

	// MaxOpenConns caps the pool; SQLite always uses one connection
	MaxOpenConns int

	// ConnMaxLifetime recycles pooled connections
	ConnMaxLifetime time.Duration
}

// DefaultConfig returns a Config for a local PostgreSQL database
func DefaultConfig() Config {
	return Config{
		Driver:          constants.DriverPostgres,
		DSN:             "postgres://localhost:5432/indico?sslmode=disable",
		MaxOpenConns:    5,
		ConnMaxLifetime: 30 * time.Minute,
	}
}

// NewConfigFromEnv creates a Config from environment variables
func NewConfigFromEnv() Config {
	config := DefaultConfig()

	if driver := os.Getenv(constants.EnvQueueDBDriver); driver != "" {
		config.Driver = driver
	}
	if dsn := os.Getenv(constants.EnvQueueDBDSN); dsn != "" {
		config.DSN = dsn
	}
	if maxConns := os.Getenv("QUEUE_DB_MAX_OPEN_CONNS"); maxConns != "" {
		if n, err := strconv.Atoi(maxConns); err == nil && n > 0 {
			config.MaxOpenConns = n
		}
	}

	return config
}
