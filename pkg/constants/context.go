// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// ContextKey is the unified type for all context keys to prevent type mismatches
type ContextKey string

const (
	// RequestIDContextKey carries the correlation id of the signal or drain pass
	RequestIDContextKey ContextKey = "request-id"
)
