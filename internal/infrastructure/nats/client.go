// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package nats connects the sync service to the NATS bus that carries change
// signals in and dead letters out.
package nats

import (
	"context"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/errors"

	"github.com/nats-io/nats.go"
)

// NATSClient wraps the core NATS connection
type NATSClient struct {
	conn   *nats.Conn
	config Config
}

// Close closes the connection without waiting for in-flight messages
func (c *NATSClient) Close() error {
	if c.conn != nil {
		c.conn.Close()
	}
	return nil
}

// Drain unsubscribes every subscription after in-flight messages are handled, then closes
func (c *NATSClient) Drain() error {
	if c.conn == nil {
		return nil
	}
	return c.conn.Drain()
}

// IsReady reports whether the connection can carry signals and dead letters
func (c *NATSClient) IsReady(ctx context.Context) error {
	if c.conn == nil {
		slog.ErrorContext(ctx, "NATS client is not initialized")
		return errors.NewServiceUnavailable("NATS client is not initialized")
	}
	if !c.conn.IsConnected() || c.conn.IsDraining() {
		slog.ErrorContext(ctx, "NATS client is not ready",
			"connected", c.conn.IsConnected(),
			"draining", c.conn.IsDraining(),
		)
		return errors.NewServiceUnavailable("NATS connection is not established or is draining")
	}
	return nil
}

// QueueSubscribe joins the queue group on subject so each signal reaches one replica
func (c *NATSClient) QueueSubscribe(subject, queue string, handler nats.MsgHandler) (*nats.Subscription, error) {
	if c.conn == nil || !c.conn.IsConnected() {
		return nil, errors.NewServiceUnavailable("NATS connection not ready")
	}
	return c.conn.QueueSubscribe(subject, queue, handler)
}

// PublishMsg publishes msg, headers included
func (c *NATSClient) PublishMsg(ctx context.Context, msg *nats.Msg) error {
	if err := c.IsReady(ctx); err != nil {
		return err
	}
	if err := c.conn.PublishMsg(msg); err != nil {
		return errors.NewServiceUnavailable("failed to publish to "+msg.Subject, err)
	}
	return nil
}

func connectOptions(ctx context.Context, config Config) []nats.Option {
	return []nats.Option{
		nats.Name(constants.ServiceName),
		nats.Timeout(config.Timeout),
		nats.MaxReconnects(config.MaxReconnect),
		nats.ReconnectWait(config.ReconnectWait),
		nats.DisconnectErrHandler(func(nc *nats.Conn, err error) {
			slog.WarnContext(ctx, "NATS disconnected", "error", err, "status", nc.Status())
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			slog.InfoContext(ctx, "NATS reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ErrorHandler(func(_ *nats.Conn, s *nats.Subscription, err error) {
			if s != nil {
				slog.ErrorContext(ctx, "async NATS error", "error", err, "subject", s.Subject, "queue", s.Queue)
				return
			}
			slog.ErrorContext(ctx, "async NATS error outside subscription", "error", err)
		}),
		nats.ClosedHandler(func(nc *nats.Conn) {
			slog.InfoContext(ctx, "NATS connection closed", "status", nc.Status())
		}),
	}
}

// NewClient connects to NATS with the given configuration
func NewClient(ctx context.Context, config Config) (*NATSClient, error) {
	if config.URL == "" {
		return nil, errors.NewConfiguration("NATS URL is required")
	}

	slog.InfoContext(ctx, "connecting to NATS",
		"url", config.URL,
		"timeout", config.Timeout,
		"max_reconnect", config.MaxReconnect,
	)

	conn, err := nats.Connect(config.URL, connectOptions(ctx, config)...)
	if err != nil {
		return nil, errors.NewServiceUnavailable("failed to connect to NATS", err)
	}

	slog.InfoContext(ctx, "NATS client connected", "connected_url", conn.ConnectedUrl())
	return &NATSClient{conn: conn, config: config}, nil
}
