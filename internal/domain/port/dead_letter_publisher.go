// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/model"
)

// FailedEntry describes a queue entry whose delivery failed and was dropped
type FailedEntry struct {
	Entry    model.QueueEntry `json:"entry"`
	Error    string           `json:"error"`
	Attempts int              `json:"attempts"`
	PassID   string           `json:"pass_id"`
}

// DeadLetterPublisher defines the interface for reporting dropped entries to operators
type DeadLetterPublisher interface {
	PublishFailedEntry(ctx context.Context, failed FailedEntry) error
}
