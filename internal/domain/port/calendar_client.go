// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/model"
)

// CalendarClient defines the interface to the Zoom Rooms calendar bridge.
// entryID is the full entry identifier; implementations derive the external form.
type CalendarClient interface {
	// PutEntry creates or replaces a calendar entry on the device
	PutEntry(ctx context.Context, deviceID, entryID string, data model.EntryData) error

	// DeleteEntry removes a calendar entry from the device
	DeleteEntry(ctx context.Context, deviceID, entryID string) error
}
