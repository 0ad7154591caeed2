// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/metrics"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/log"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/utils"
)

// DrainConfig controls delivery attempts per entry
type DrainConfig struct {
	MaxAttempts int
	BaseDelay   time.Duration
	MaxDelay    time.Duration
}

// DefaultDrainConfig makes a single delivery attempt per entry
func DefaultDrainConfig() DrainConfig {
	return DrainConfig{
		MaxAttempts: 1,
		BaseDelay:   500 * time.Millisecond,
		MaxDelay:    10 * time.Second,
	}
}

// DrainResult summarizes one drain pass
type DrainResult struct {
	PassID    string
	Processed int
	Delivered int
	Failed    int
}

// DrainWorker delivers pending queue entries to the calendar bridge.
// Entries are delivered strictly in id order and removed after their
// attempt regardless of outcome; removals are committed once per pass.
type DrainWorker struct {
	queue       port.QueueRepository
	settings    port.SettingsProvider
	clients     port.CalendarClientFactory
	deadLetters port.DeadLetterPublisher
	config      DrainConfig
}

// NewDrainWorker creates a drain worker; deadLetters may be nil
func NewDrainWorker(
	queue port.QueueRepository,
	settings port.SettingsProvider,
	clients port.CalendarClientFactory,
	deadLetters port.DeadLetterPublisher,
	config DrainConfig,
) *DrainWorker {
	if config.MaxAttempts < 1 {
		config.MaxAttempts = 1
	}
	return &DrainWorker{
		queue:       queue,
		settings:    settings,
		clients:     clients,
		deadLetters: deadLetters,
		config:      config,
	}
}

// Drain runs one pass over the queue. A configuration error, an unreadable
// queue or a malformed entry aborts the pass before anything is sent or removed.
func (w *DrainWorker) Drain(ctx context.Context) (DrainResult, error) {
	result := DrainResult{PassID: uuid.NewString()}
	ctx = log.AppendCtx(ctx, slog.String("pass_id", result.PassID))
	start := time.Now()

	err := w.drain(ctx, &result)
	switch {
	case err != nil:
		metrics.RecordDrainPass(metrics.OutcomeFailure, time.Since(start))
		slog.ErrorContext(ctx, "drain pass aborted", "error", err, log.PriorityCritical())
	case result.Processed == 0:
		metrics.RecordDrainPass(metrics.OutcomeSkipped, time.Since(start))
		slog.DebugContext(ctx, "queue is empty")
	default:
		metrics.RecordDrainPass(metrics.OutcomeSuccess, time.Since(start))
		slog.InfoContext(ctx, "drain pass completed",
			"processed", result.Processed,
			"delivered", result.Delivered,
			"failed", result.Failed,
			"duration_ms", time.Since(start).Milliseconds(),
		)
	}
	return result, err
}

func (w *DrainWorker) drain(ctx context.Context, result *DrainResult) error {
	settings, err := w.settings.Settings(ctx)
	if err != nil {
		return fmt.Errorf("failed to load zoom rooms settings: %w", err)
	}
	if err := settings.Validate(); err != nil {
		return err
	}

	entries, err := w.queue.ListPending(ctx)
	if err != nil {
		return fmt.Errorf("failed to list pending queue entries: %w", err)
	}
	metrics.UpdateQueueDepth(len(entries))
	if len(entries) == 0 {
		return nil
	}

	for _, entry := range entries {
		if !entry.Action.IsValid() {
			return errors.NewUnexpected(fmt.Sprintf("queue entry %d has invalid action %d", entry.ID, entry.Action))
		}
		if err := entry.Validate(); err != nil {
			return errors.NewUnexpected(fmt.Sprintf("queue entry %d is malformed", entry.ID), err)
		}
	}

	var client port.CalendarClient
	if !settings.Debug {
		client, err = w.clients.NewCalendarClient(settings)
		if err != nil {
			return fmt.Errorf("failed to create calendar client: %w", err)
		}
	}

	processed := make([]int64, 0, len(entries))
	for _, entry := range entries {
		attempts, err := w.process(ctx, client, settings.Debug, entry)
		processed = append(processed, entry.ID)
		result.Processed++

		if err == nil {
			result.Delivered++
			metrics.RecordDrainEntry(entry.Action.String(), metrics.OutcomeSuccess)
			continue
		}

		result.Failed++
		metrics.RecordDrainEntry(entry.Action.String(), metrics.OutcomeFailure)
		w.reportFailure(ctx, entry, err, attempts, result.PassID)
	}

	if err := w.queue.DeleteEntries(ctx, processed); err != nil {
		return fmt.Errorf("failed to delete processed queue entries: %w", err)
	}
	metrics.UpdateQueueDepth(0)
	return nil
}

// process delivers one entry with retries and returns the attempts made
func (w *DrainWorker) process(ctx context.Context, client port.CalendarClient, debug bool, entry model.QueueEntry) (int, error) {
	ctx = log.AppendCtx(ctx, slog.Int64("queue_entry_id", entry.ID))

	if debug {
		w.logOperation(ctx, entry)
		return 0, nil
	}

	attempts := 0
	retry := utils.RetryConfig{
		MaxAttempts: w.config.MaxAttempts,
		BaseDelay:   w.config.BaseDelay,
		MaxDelay:    w.config.MaxDelay,
		Retryable:   isRetryableDelivery,
	}
	err := utils.RetryWithExponentialBackoff(ctx, retry, func() error {
		attempts++
		start := time.Now()
		defer func() { metrics.RecordDelivery(entry.Action.String(), time.Since(start)) }()
		return w.deliver(ctx, client, entry)
	})
	return attempts, err
}

func (w *DrainWorker) deliver(ctx context.Context, client port.CalendarClient, entry model.QueueEntry) error {
	switch entry.Action {
	case model.ActionCreate, model.ActionUpdate:
		return client.PutEntry(ctx, entry.ZoomRoomID, entry.EntryID, *entry.EntryData)

	case model.ActionDelete:
		return client.DeleteEntry(ctx, entry.ZoomRoomID, entry.EntryID)

	case model.ActionMove:
		// the new device gets the entry even if the old one could not be cleared
		deleteErr := client.DeleteEntry(ctx, entry.ZoomRoomID, entry.EntryID)
		if deleteErr != nil {
			slog.WarnContext(ctx, "failed to remove moved entry from previous room",
				"error", deleteErr,
				"zoom_room_id", entry.ZoomRoomID,
				"entry_id", entry.EntryID,
			)
		}
		putErr := client.PutEntry(ctx, entry.ExtraArgs.NewZRID, entry.EntryID, *entry.EntryData)
		return stderrors.Join(deleteErr, putErr)
	}

	return errors.NewUnexpected(fmt.Sprintf("invalid action %d", entry.Action))
}

func (w *DrainWorker) logOperation(ctx context.Context, entry model.QueueEntry) {
	attrs := []any{
		"action", entry.Action.String(),
		"entry_id", entry.EntryID,
		"zoom_room_id", entry.ZoomRoomID,
	}
	if entry.ExtraArgs != nil {
		attrs = append(attrs, "new_zoom_room_id", entry.ExtraArgs.NewZRID)
	}
	if entry.EntryData != nil {
		attrs = append(attrs,
			"title", entry.EntryData.Title,
			"start", entry.EntryData.Start,
			"end", entry.EntryData.End,
			"url", entry.EntryData.URL,
		)
	}
	slog.InfoContext(ctx, "debug mode: calendar operation not sent", attrs...)
}

func (w *DrainWorker) reportFailure(ctx context.Context, entry model.QueueEntry, err error, attempts int, passID string) {
	attrs := []any{
		"error", err,
		"action", entry.Action.String(),
		"entry_id", entry.EntryID,
		"zoom_room_id", entry.ZoomRoomID,
		"attempts", attempts,
	}

	var timeout errors.Timeout
	if stderrors.As(err, &timeout) {
		slog.WarnContext(ctx, "calendar request timed out, dropping queue entry", attrs...)
	} else {
		slog.ErrorContext(ctx, "calendar request failed, dropping queue entry", attrs...)
	}

	if w.deadLetters == nil {
		return
	}
	failed := port.FailedEntry{
		Entry:    entry,
		Error:    err.Error(),
		Attempts: attempts,
		PassID:   passID,
	}
	if pubErr := w.deadLetters.PublishFailedEntry(ctx, failed); pubErr != nil {
		slog.ErrorContext(ctx, "failed to publish dead letter", "error", pubErr, "entry_id", entry.EntryID)
	}
}

// isRetryableDelivery retries timeouts and transient bridge errors
func isRetryableDelivery(err error) bool {
	var timeout errors.Timeout
	var unavailable errors.ServiceUnavailable
	return stderrors.As(err, &timeout) || stderrors.As(err, &unavailable)
}
