// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"bytes"
	"context"
	"encoding/json"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/metrics"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/errors"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/log"
	"github.com/nats-io/nats.go"
	"github.com/patrickmn/go-cache"
	"github.com/vmihailenco/msgpack/v5"
)

const (
	seenMessageTTL     = 10 * time.Minute
	seenMessageCleanup = 20 * time.Minute
)

// SignalSyncService turns change signals into queue entries.
// Pattern: ONE file with routing + business logic; every signal is recorded in its own transaction.
type SignalSyncService struct {
	classifier *ChangeClassifier
	queue      port.QueueRepository
	seen       *cache.Cache
}

// NewSignalSyncService creates a new signal sync service
func NewSignalSyncService(queue port.QueueRepository) *SignalSyncService {
	return &SignalSyncService{
		classifier: NewChangeClassifier(),
		queue:      queue,
		seen:       cache.New(seenMessageTTL, seenMessageCleanup),
	}
}

// HandleMessage routes a NATS message to the classifier and records the derived entries.
// Malformed signals and signals referring to unknown objects are dropped (nil error) so
// they are acknowledged; any other error means the message should be redelivered.
func (s *SignalSyncService) HandleMessage(ctx context.Context, msg *nats.Msg) error {
	subject := msg.Subject

	msgID := ""
	if msg.Header != nil {
		msgID = msg.Header.Get(nats.MsgIdHdr)
	}
	if msgID != "" {
		if _, found := s.seen.Get(msgID); found {
			slog.DebugContext(ctx, "duplicate signal ignored", "subject", subject, "msg_id", msgID)
			metrics.RecordSignal(subject, metrics.OutcomeIgnored)
			return nil
		}
	}

	requestID := uuid.NewString()
	ctx = context.WithValue(ctx, constants.RequestIDContextKey, requestID)
	ctx = log.AppendCtx(ctx, slog.String("request_id", requestID))
	ctx = log.AppendCtx(ctx, slog.String("subject", subject))

	slog.DebugContext(ctx, "received change signal")

	entries, err := s.classify(ctx, msg)
	if err != nil {
		var validation errors.Validation
		var notFound errors.NotFound
		if stderrors.As(err, &validation) || stderrors.As(err, &notFound) {
			slog.WarnContext(ctx, "dropping change signal", "error", err)
			metrics.RecordSignal(subject, metrics.OutcomeIgnored)
			return nil
		}
		slog.ErrorContext(ctx, "error classifying change signal", "error", err)
		metrics.RecordSignal(subject, metrics.OutcomeFailure)
		return err
	}

	if len(entries) == 0 {
		slog.DebugContext(ctx, "change signal produced no queue entries")
		metrics.RecordSignal(subject, metrics.OutcomeSkipped)
		s.markSeen(msgID)
		return nil
	}

	if err := s.queue.WithinTx(ctx, func(w port.QueueWriter) error {
		return w.Record(ctx, entries...)
	}); err != nil {
		slog.ErrorContext(ctx, "failed to record queue entries", "error", err, "count", len(entries))
		metrics.RecordSignal(subject, metrics.OutcomeFailure)
		return fmt.Errorf("failed to record queue entries: %w", err)
	}

	for _, entry := range entries {
		metrics.RecordQueueEntry(entry.Action.String())
		slog.InfoContext(ctx, "queued calendar operation",
			"action", entry.Action.String(),
			"entry_id", entry.EntryID,
			"zoom_room_id", entry.ZoomRoomID,
		)
	}
	metrics.RecordSignal(subject, metrics.OutcomeSuccess)
	s.markSeen(msgID)

	return nil
}

func (s *SignalSyncService) markSeen(msgID string) {
	if msgID != "" {
		s.seen.SetDefault(msgID, struct{}{})
	}
}

func (s *SignalSyncService) classify(ctx context.Context, msg *nats.Msg) ([]model.QueueEntry, error) {
	switch msg.Subject {
	case constants.EventUpdatedSubject,
		constants.SessionUpdatedSubject,
		constants.SessionBlockUpdatedSubject,
		constants.ContributionUpdatedSubject:
		var sig model.ObjectUpdatedSignal
		if err := decodeSignal(msg.Data, &sig); err != nil {
			return nil, err
		}
		return s.classifier.OnObjectUpdated(ctx, sig)

	case constants.TimesChangedSubject:
		var sig model.TimesChangedSignal
		if err := decodeSignal(msg.Data, &sig); err != nil {
			return nil, err
		}
		return s.classifier.OnTimesChanged(ctx, sig)

	case constants.VCRoomCreatedSubject:
		var sig model.VCRoomCreatedSignal
		if err := decodeSignal(msg.Data, &sig); err != nil {
			return nil, err
		}
		return s.classifier.OnAssociationCreated(ctx, sig)

	case constants.VCRoomClonedSubject:
		var sig model.VCRoomClonedSignal
		if err := decodeSignal(msg.Data, &sig); err != nil {
			return nil, err
		}
		return s.classifier.OnAssociationCloned(ctx, sig)

	case constants.VCRoomAttachedSubject:
		var sig model.VCRoomAttachedSignal
		if err := decodeSignal(msg.Data, &sig); err != nil {
			return nil, err
		}
		return s.classifier.OnAssociationAttached(ctx, sig)

	case constants.VCRoomDetachedSubject:
		var sig model.VCRoomDetachedSignal
		if err := decodeSignal(msg.Data, &sig); err != nil {
			return nil, err
		}
		return s.classifier.OnAssociationDetached(ctx, sig)

	case constants.VCRoomDataUpdatedSubject:
		var sig model.VCRoomDataUpdatedSignal
		if err := decodeSignal(msg.Data, &sig); err != nil {
			return nil, err
		}
		return s.classifier.OnVCRoomDataUpdated(ctx, sig)

	case constants.ObjectDeletedSubject:
		var sig model.ObjectDeletedSignal
		if err := decodeSignal(msg.Data, &sig); err != nil {
			return nil, err
		}
		return s.classifier.OnObjectDeleted(ctx, sig)
	}

	return nil, errors.NewValidation(fmt.Sprintf("unknown change signal subject: %s", msg.Subject))
}

// decodeSignal parses JSON, falling back to msgpack with the same field names
func decodeSignal(data []byte, v any) error {
	jsonErr := json.Unmarshal(data, v)
	if jsonErr == nil {
		return nil
	}

	dec := msgpack.NewDecoder(bytes.NewReader(data))
	dec.SetCustomStructTag("json")
	if msgErr := dec.Decode(v); msgErr != nil {
		return errors.NewValidation("failed to decode change signal as JSON or msgpack", jsonErr, msgErr)
	}
	return nil
}
