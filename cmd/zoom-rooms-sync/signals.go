// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/cmd/zoom-rooms-sync/service"
	internalService "github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/service"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/constants"
)

const signalHandleTimeout = 30 * time.Second

// handleSignalSync subscribes to every change signal subject and records the
// derived queue entries. It returns once the subscriptions are in place.
func handleSignalSync(ctx context.Context) error {
	slog.InfoContext(ctx, "starting signal sync")

	natsClient := service.GetNATSClient(ctx)
	syncService := internalService.NewSignalSyncService(service.QueueRepository(ctx))

	for _, subject := range constants.SignalSubjects() {
		_, subErr := natsClient.QueueSubscribe(
			subject,
			constants.SignalQueue,
			func(msg *nats.Msg) {
				select {
				case <-ctx.Done():
					slog.InfoContext(ctx, "rejecting signal - service shutting down",
						"subject", msg.Subject)
					respond(ctx, msg, false)
					return
				default:
				}

				// not derived from the shutdown context so in-flight signals finish
				msgCtx, cancel := context.WithTimeout(context.Background(), signalHandleTimeout)
				defer cancel()

				if handleErr := syncService.HandleMessage(msgCtx, msg); handleErr != nil {
					slog.ErrorContext(msgCtx, "failed to process change signal, will retry",
						"error", handleErr,
						"subject", msg.Subject)
					respond(msgCtx, msg, false)
					return
				}
				respond(msgCtx, msg, true)
			},
		)
		if subErr != nil {
			return fmt.Errorf("failed to subscribe to %s: %w", subject, subErr)
		}
		slog.InfoContext(ctx, "subscribed to change signal",
			"subject", subject,
			"queue", constants.SignalQueue)
	}

	slog.InfoContext(ctx, "signal sync started successfully")
	return nil
}

// respond acks or naks a signal published with a reply subject;
// fire-and-forget signals have nobody to answer.
func respond(ctx context.Context, msg *nats.Msg, ok bool) {
	if msg.Reply == "" {
		return
	}
	if ok {
		if ackErr := msg.Ack(); ackErr != nil {
			slog.ErrorContext(ctx, "failed to ack signal", "error", ackErr)
		}
		return
	}
	if nakErr := msg.Nak(); nakErr != nil {
		slog.ErrorContext(ctx, "failed to nak signal", "error", nakErr)
	}
}
