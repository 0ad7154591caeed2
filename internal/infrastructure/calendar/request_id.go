// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package calendar

import (
	"log/slog"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/constants"
)

// requestIDRoundTripper forwards the correlation id carried by the request context
type requestIDRoundTripper struct{}

// RoundTrip sets the request id header when the context carries one
func (rt *requestIDRoundTripper) RoundTrip(req *http.Request, next func(*http.Request) (*http.Response, error)) (*http.Response, error) {
	if requestID, ok := req.Context().Value(constants.RequestIDContextKey).(string); ok && requestID != "" {
		req.Header.Set(constants.RequestIDHeader, requestID)
		slog.DebugContext(req.Context(), "forwarding request id", "request_id", requestID)
	}
	return next(req)
}
