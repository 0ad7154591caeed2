// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package constants defines global constants used throughout the zoom rooms sync service.
package constants

// Service constants
const (
	// ServiceName is the name of this service
	ServiceName = "zoom-rooms-sync"

	// SignalQueue is the NATS queue group for signal subscriptions
	SignalQueue = "lfx-v2-zoom-rooms-sync"
)

// HTTP header constants
const (
	// RequestIDHeader is the HTTP header name for request ID
	RequestIDHeader = "X-Request-Id"
)

// Environment variables
const (
	// EnvNATSURL is the environment variable for NATS server URL
	EnvNATSURL = "NATS_URL"
	// EnvNATSTimeout is the NATS connect and request timeout
	EnvNATSTimeout = "NATS_TIMEOUT"
	// EnvNATSMaxReconnect is the NATS reconnect limit
	EnvNATSMaxReconnect = "NATS_MAX_RECONNECT"
	// EnvNATSReconnectWait is the wait between NATS reconnects
	EnvNATSReconnectWait = "NATS_RECONNECT_WAIT"

	// EnvQueueSource selects the queue repository implementation (sql or mock)
	EnvQueueSource = "QUEUE_SOURCE"
	// EnvQueueDBDriver selects the SQL driver (postgres or sqlite)
	EnvQueueDBDriver = "QUEUE_DB_DRIVER"
	// EnvQueueDBDSN is the SQL data source name
	EnvQueueDBDSN = "QUEUE_DB_DSN"

	// EnvCalendarSource selects the calendar client implementation (http or mock)
	EnvCalendarSource = "ZOOM_ROOMS_SOURCE"
	// EnvSettingsFile points to an optional YAML settings file
	EnvSettingsFile = "ZOOM_ROOMS_SETTINGS_FILE"
	// EnvDebug enables debug mode (log instead of calling the bridge)
	EnvDebug = "ZOOM_ROOMS_DEBUG"
	// EnvServiceURL is the calendar bridge base URL
	EnvServiceURL = "ZOOM_ROOMS_SERVICE_URL"
	// EnvDocsURL is an informational documentation link
	EnvDocsURL = "ZOOM_ROOMS_DOCS_URL"
	// EnvToken is the bridge bearer token
	EnvToken = "ZOOM_ROOMS_TOKEN"
	// EnvTimeout is the bridge request timeout in seconds
	EnvTimeout = "ZOOM_ROOMS_TIMEOUT"
	// EnvMaxAttempts is the number of delivery attempts per queue entry per pass
	EnvMaxAttempts = "ZOOM_ROOMS_MAX_ATTEMPTS"
	// EnvDeadLetterSubject is the NATS subject failed entries are published to
	EnvDeadLetterSubject = "ZOOM_ROOMS_DEAD_LETTER_SUBJECT"

	// EnvDrainInterval is the period between drain passes
	EnvDrainInterval = "DRAIN_INTERVAL"
	// EnvOpsAddr is the listen address of the health and metrics server
	EnvOpsAddr = "OPS_ADDR"
)

// Source values for EnvQueueSource and EnvCalendarSource
const (
	SourceSQL  = "sql"
	SourceHTTP = "http"
	SourceMock = "mock"
)
