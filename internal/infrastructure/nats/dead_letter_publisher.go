// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package nats

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/errors"

	"github.com/nats-io/nats.go"
)

// deadLetterPublisher reports dropped queue entries on a NATS subject
type deadLetterPublisher struct {
	client  *NATSClient
	subject string
}

// PublishFailedEntry publishes the failure as JSON. The message id is derived
// from the pass and queue entry so JetStream streams can deduplicate it.
func (p *deadLetterPublisher) PublishFailedEntry(ctx context.Context, failed port.FailedEntry) error {
	// Check if client is ready
	if err := p.client.IsReady(ctx); err != nil {
		slog.ErrorContext(ctx, "NATS client is not ready for publishing",
			"error", err,
			"subject", p.subject,
		)
		return errors.NewServiceUnavailable("NATS client is not ready", err)
	}

	data, err := json.Marshal(failed)
	if err != nil {
		slog.ErrorContext(ctx, "failed to marshal dead letter to JSON",
			"error", err,
			"subject", p.subject,
		)
		return errors.NewUnexpected("failed to marshal dead letter", err)
	}

	msg := nats.NewMsg(p.subject)
	msg.Data = data
	msg.Header.Set(nats.MsgIdHdr, deadLetterMsgID(failed))
	if requestID, ok := ctx.Value(constants.RequestIDContextKey).(string); ok && requestID != "" {
		msg.Header.Set(constants.RequestIDHeader, requestID)
	}

	if err := p.client.PublishMsg(ctx, msg); err != nil {
		slog.ErrorContext(ctx, "failed to publish dead letter to NATS",
			"error", err,
			"subject", p.subject,
		)
		return err
	}

	slog.DebugContext(ctx, "dead letter published successfully",
		"subject", p.subject,
		"entry_id", failed.Entry.EntryID,
		"message_size", len(data),
	)

	return nil
}

func deadLetterMsgID(failed port.FailedEntry) string {
	return fmt.Sprintf("%s-%d", failed.PassID, failed.Entry.ID)
}

// NewDeadLetterPublisher creates a DeadLetterPublisher publishing to subject
func NewDeadLetterPublisher(client *NATSClient, subject string) port.DeadLetterPublisher {
	return &deadLetterPublisher{
		client:  client,
		subject: subject,
	}
}
