// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"goa.design/clue/health"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/constants"
)

const (
	defaultOpsAddr  = ":8080"
	shutdownTimeout = 10 * time.Second
)

// readinessCheck is a dependency probed by /readyz
type readinessCheck struct {
	name  string
	ready func(ctx context.Context) error
}

func (c readinessCheck) Name() string                   { return c.name }
func (c readinessCheck) Ping(ctx context.Context) error { return c.ready(ctx) }

func opsAddr() string {
	if addr := os.Getenv(constants.EnvOpsAddr); addr != "" {
		return addr
	}
	return defaultOpsAddr
}

// newOpsRouter serves liveness, readiness and Prometheus metrics
func newOpsRouter(checks ...health.Pinger) http.Handler {
	router := chi.NewRouter()
	router.Use(middleware.Recoverer)

	router.Get("/livez", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("OK\n"))
	})
	router.Get("/readyz", health.Handler(health.NewChecker(checks...)))
	router.Handle("/metrics", promhttp.Handler())

	return router
}

// runOpsServer serves the ops endpoints until ctx is cancelled
func runOpsServer(ctx context.Context, addr string, handler http.Handler) error {
	server := &http.Server{
		Addr:              addr,
		Handler:           handler,
		ReadHeaderTimeout: 3 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		slog.InfoContext(ctx, "ops server listening", "addr", addr)
		if err := server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	slog.InfoContext(ctx, "shutting down ops server")
	return server.Shutdown(shutdownCtx)
}
