// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// The zoom-rooms-sync command turns Indico change signals into Zoom Rooms
// calendar operations and delivers them to the calendar bridge.
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/cmd/zoom-rooms-sync/service"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/log"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/utils"
)

const gracefulShutdownSeconds = 25

// Build-time variables set via ldflags
var (
	Version   = "dev"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

func init() {
	log.InitStructureLogConfig()
}

func main() {
	var (
		drainOnce = flag.Bool("drain-once", false, "run a single drain pass and exit")
		noSignals = flag.Bool("no-signals", false, "do not subscribe to change signals")
		addr      = flag.String("ops-addr", opsAddr(), "listen address for health and metrics")
	)
	flag.Parse()

	ctx := context.Background()
	slog.InfoContext(ctx, "starting zoom rooms sync",
		"version", Version,
		"build_time", BuildTime,
		"git_commit", GitCommit,
	)

	otelShutdown, err := utils.SetupOTelSDK(ctx)
	if err != nil {
		slog.ErrorContext(ctx, "error setting up OpenTelemetry SDK", "error", err)
		os.Exit(1)
	}
	defer func() {
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if shutdownErr := otelShutdown(shutdownCtx); shutdownErr != nil {
			slog.ErrorContext(ctx, "error shutting down OpenTelemetry SDK", "error", shutdownErr)
		}
	}()

	if *drainOnce {
		os.Exit(runDrainOnce(ctx))
	}

	if err := run(ctx, *addr, !*noSignals); err != nil {
		slog.ErrorContext(ctx, "zoom rooms sync stopped with error", "error", err)
		os.Exit(1)
	}
	slog.InfoContext(ctx, "graceful shutdown completed")
}

// runDrainOnce performs one pass for cron-style deployments and returns the exit code
func runDrainOnce(ctx context.Context) int {
	defer service.CloseQueue(ctx)

	result, err := newDrainWorker(ctx).Drain(ctx)
	if err != nil {
		return 1
	}
	if result.Failed > 0 {
		slog.WarnContext(ctx, "some queue entries could not be delivered", "failed", result.Failed)
	}
	return 0
}

func run(ctx context.Context, addr string, withSignals bool) error {
	ctx, stop := signal.NotifyContext(ctx, syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	natsClient := service.GetNATSClient(ctx)
	queue := service.QueueRepository(ctx)
	defer service.CloseQueue(context.Background())

	if withSignals {
		if err := handleSignalSync(ctx); err != nil {
			return fmt.Errorf("failed to start signal sync: %w", err)
		}
	}

	group, groupCtx := errgroup.WithContext(ctx)
	group.Go(func() error {
		return runDrainLoop(groupCtx, newDrainWorker(groupCtx), drainInterval(groupCtx))
	})
	group.Go(func() error {
		router := newOpsRouter(
			readinessCheck{name: "nats", ready: natsClient.IsReady},
			readinessCheck{name: "queue", ready: queue.IsReady},
		)
		return runOpsServer(groupCtx, addr, router)
	})

	<-groupCtx.Done()
	slog.InfoContext(ctx, "shutting down", "grace_period_seconds", gracefulShutdownSeconds)

	// in-flight signals finish before the connection closes
	drained := make(chan error, 1)
	go func() { drained <- natsClient.Drain() }()
	select {
	case err := <-drained:
		if err != nil {
			slog.ErrorContext(ctx, "error draining NATS connection", "error", err)
		}
	case <-time.After(gracefulShutdownSeconds * time.Second):
		slog.WarnContext(ctx, "graceful shutdown timed out")
		_ = natsClient.Close()
	}

	return group.Wait()
}
