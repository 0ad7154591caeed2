// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import "context"

// QueueRepository combines queue reads and writes with transaction control
type QueueRepository interface {
	QueueReader
	QueueWriter

	// WithinTx runs fn in a single transaction; entries recorded through the
	// given writer are committed together or not at all
	WithinTx(ctx context.Context, fn func(QueueWriter) error) error

	// DeleteEntries removes the given entries in one transaction
	DeleteEntries(ctx context.Context, ids []int64) error

	// IsReady checks the backing store is reachable
	IsReady(ctx context.Context) error
}
