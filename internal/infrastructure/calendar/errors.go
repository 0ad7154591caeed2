// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package calendar

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/httpclient"
)

// MapHTTPError maps httpclient errors to domain errors with proper context logging
func MapHTTPError(ctx context.Context, err error) error {
	if err == nil {
		return nil
	}

	var timeout errors.Timeout
	if stderrors.As(err, &timeout) {
		return err
	}

	var statusErr *httpclient.StatusError
	if stderrors.As(err, &statusErr) {
		slog.WarnContext(ctx, "calendar bridge HTTP error occurred",
			"method", statusErr.Method,
			"url", statusErr.URL,
			"status_code", statusErr.StatusCode,
			"message", statusErr.Message,
		)

		switch statusErr.StatusCode {
		case http.StatusNotFound:
			return errors.NewNotFound("calendar entry or device not found", err)
		case http.StatusConflict:
			return errors.NewConflict("calendar entry conflict", err)
		case http.StatusUnauthorized, http.StatusForbidden:
			return errors.NewUnauthorized("calendar bridge rejected the token", err)
		case http.StatusBadRequest, http.StatusUnprocessableEntity:
			return errors.NewValidation(fmt.Sprintf("calendar bridge validation error: %s", statusErr.Message), err)
		case http.StatusTooManyRequests:
			return errors.NewServiceUnavailable("calendar bridge rate limited", err)
		}
		if statusErr.StatusCode >= http.StatusInternalServerError {
			return errors.NewServiceUnavailable("calendar bridge unavailable", err)
		}

		slog.ErrorContext(ctx, "unexpected calendar bridge HTTP status code",
			"status_code", statusErr.StatusCode,
			"message", statusErr.Message,
		)
		return errors.NewUnexpected("calendar bridge API error", err)
	}

	// network errors are transient
	slog.ErrorContext(ctx, "calendar bridge request failed with non-HTTP error", "error", err.Error())
	return errors.NewServiceUnavailable("calendar bridge request failed", err)
}
