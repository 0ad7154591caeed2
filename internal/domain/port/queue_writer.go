// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/model"
)

// QueueWriter defines the interface for appending queue entries.
// Entries are appended in argument order and never coalesced with pending rows.
type QueueWriter interface {
	Record(ctx context.Context, entries ...model.QueueEntry) error
}
