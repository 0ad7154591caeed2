// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"log/slog"
	"os"
	"time"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/cmd/zoom-rooms-sync/service"
	internalService "github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/service"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/constants"
)

const defaultDrainInterval = time.Minute

// drainer runs a single pass over the queue
type drainer interface {
	Drain(ctx context.Context) (internalService.DrainResult, error)
}

func newDrainWorker(ctx context.Context) *internalService.DrainWorker {
	return internalService.NewDrainWorker(
		service.QueueRepository(ctx),
		service.SettingsProvider(ctx),
		service.CalendarClientFactory(ctx),
		service.DeadLetterPublisher(ctx),
		service.DrainConfig(),
	)
}

// drainInterval reads DRAIN_INTERVAL, falling back to the default on bad input
func drainInterval(ctx context.Context) time.Duration {
	raw := os.Getenv(constants.EnvDrainInterval)
	if raw == "" {
		return defaultDrainInterval
	}
	interval, err := time.ParseDuration(raw)
	if err != nil || interval <= 0 {
		slog.WarnContext(ctx, "invalid drain interval, using default",
			"value", raw,
			"default", defaultDrainInterval,
		)
		return defaultDrainInterval
	}
	return interval
}

// runDrainLoop drains the queue immediately and then on every tick until ctx
// is cancelled. Passes never overlap; a failed pass is retried on the next tick.
func runDrainLoop(ctx context.Context, worker drainer, interval time.Duration) error {
	slog.InfoContext(ctx, "starting drain loop", "interval", interval)

	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		// errors are logged and counted by the worker
		_, _ = worker.Drain(ctx)

		select {
		case <-ctx.Done():
			slog.InfoContext(ctx, "drain loop stopped")
			return nil
		case <-ticker.C:
		}
	}
}
