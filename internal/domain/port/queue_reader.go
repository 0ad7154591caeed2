// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package port defines the interfaces for external dependencies and adapters.
package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/model"
)

// QueueReader defines the interface for reading pending queue entries
type QueueReader interface {
	// ListPending returns every pending entry ordered by id ascending (insertion order)
	ListPending(ctx context.Context) ([]model.QueueEntry, error)
}
