// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package service wires the infrastructure implementations selected by the environment.
package service

import (
	"context"
	"log"
	"log/slog"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/infrastructure/calendar"
	infrastructure "github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/infrastructure/mock"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/infrastructure/nats"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/infrastructure/sqlstore"
	internalService "github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/service"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/utils"
)

var (
	natsClient *nats.NATSClient
	natsDoOnce sync.Once

	queueRepository port.QueueRepository
	queueStore      *sqlstore.Store
	queueDoOnce     sync.Once
)

func natsInit(ctx context.Context) {
	natsDoOnce.Do(func() {
		client, errNewClient := nats.NewClient(ctx, nats.NewConfigFromEnv())
		if errNewClient != nil {
			log.Fatalf("failed to create NATS client: %v", errNewClient)
		}
		natsClient = client
	})
}

// GetNATSClient returns the shared NATS client, connecting on first use
func GetNATSClient(ctx context.Context) *nats.NATSClient {
	natsInit(ctx)
	return natsClient
}

func queueInit(ctx context.Context) {
	queueDoOnce.Do(func() {
		queueSource := os.Getenv(constants.EnvQueueSource)
		if queueSource == "" {
			queueSource = constants.SourceSQL
		}

		switch queueSource {
		case constants.SourceMock:
			slog.InfoContext(ctx, "initializing mock queue repository")
			queueRepository = infrastructure.NewMockQueueRepository()
		case constants.SourceSQL:
			config := sqlstore.NewConfigFromEnv()
			slog.InfoContext(ctx, "initializing SQL queue repository", "driver", config.Driver)

			// the database may still be starting alongside the service
			retry := utils.NewRetryConfig(5, time.Second, 10*time.Second)
			errOpen := utils.RetryWithExponentialBackoff(ctx, retry, func() error {
				store, err := sqlstore.Open(ctx, config)
				if err != nil {
					return err
				}
				queueStore = store
				return nil
			})
			if errOpen != nil {
				log.Fatalf("failed to open queue store: %v", errOpen)
			}
			queueRepository = queueStore
		default:
			log.Fatalf("unsupported queue repository implementation: %s", queueSource)
		}
	})
}

// QueueRepository initializes the queue repository implementation based on QUEUE_SOURCE
func QueueRepository(ctx context.Context) port.QueueRepository {
	queueInit(ctx)
	return queueRepository
}

// CloseQueue releases the SQL store when one was opened
func CloseQueue(ctx context.Context) {
	if queueStore == nil {
		return
	}
	if err := queueStore.Close(); err != nil {
		slog.ErrorContext(ctx, "failed to close queue store", "error", err)
	}
}

// SettingsProvider returns the settings source, re-read on every drain pass
func SettingsProvider(ctx context.Context) port.SettingsProvider {
	slog.InfoContext(ctx, "initializing zoom rooms settings provider",
		"settings_file", os.Getenv(constants.EnvSettingsFile),
	)
	return calendar.NewSettingsProviderFromEnv()
}

// CalendarClientFactory initializes the calendar client implementation based on ZOOM_ROOMS_SOURCE
func CalendarClientFactory(ctx context.Context) port.CalendarClientFactory {
	var factory port.CalendarClientFactory

	calendarSource := os.Getenv(constants.EnvCalendarSource)
	if calendarSource == "" {
		calendarSource = constants.SourceHTTP
	}

	switch calendarSource {
	case constants.SourceMock:
		slog.InfoContext(ctx, "initializing mock calendar client")
		factory = infrastructure.NewMockCalendarClientFactory(infrastructure.NewMockCalendarClient())
	case constants.SourceHTTP:
		slog.InfoContext(ctx, "initializing HTTP calendar client")
		factory = calendar.NewClientFactory(nil)
	default:
		log.Fatalf("unsupported calendar client implementation: %s", calendarSource)
	}

	return factory
}

// DeadLetterPublisher returns a NATS publisher for entries that could not be
// delivered, or nil when no dead letter subject is configured
func DeadLetterPublisher(ctx context.Context) port.DeadLetterPublisher {
	subject := os.Getenv(constants.EnvDeadLetterSubject)
	if subject == "" {
		slog.InfoContext(ctx, "dead letter publishing disabled")
		return nil
	}
	slog.InfoContext(ctx, "initializing dead letter publisher", "subject", subject)
	return nats.NewDeadLetterPublisher(GetNATSClient(ctx), subject)
}

// DrainConfig reads the delivery retry settings for the drain worker
func DrainConfig() internalService.DrainConfig {
	config := internalService.DefaultDrainConfig()

	if attemptsStr := os.Getenv(constants.EnvMaxAttempts); attemptsStr != "" {
		attempts, err := strconv.Atoi(attemptsStr)
		if err != nil || attempts < 1 {
			log.Fatalf("invalid %s value %q", constants.EnvMaxAttempts, attemptsStr)
		}
		config.MaxAttempts = attempts
	}

	return config
}
