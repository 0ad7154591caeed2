// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import "github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/model"

// CalendarClientFactory builds a CalendarClient bound to one settings snapshot
type CalendarClientFactory interface {
	NewCalendarClient(settings model.Settings) (CalendarClient, error)
}
