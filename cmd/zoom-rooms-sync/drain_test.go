// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package main

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	internalService "github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/service"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/errors"
)

type countingDrainer struct {
	passes atomic.Int32
	err    error
}

func (d *countingDrainer) Drain(context.Context) (internalService.DrainResult, error) {
	d.passes.Add(1)
	return internalService.DrainResult{}, d.err
}

func TestRunDrainLoop_DrainsUntilCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	worker := &countingDrainer{}

	done := make(chan error, 1)
	go func() { done <- runDrainLoop(ctx, worker, 10*time.Millisecond) }()

	require.Eventually(t, func() bool { return worker.passes.Load() >= 3 }, time.Second, 5*time.Millisecond)
	cancel()

	select {
	case err := <-done:
		assert.NoError(t, err)
	case <-time.After(time.Second):
		t.Fatal("drain loop did not stop after cancellation")
	}
}

func TestRunDrainLoop_KeepsGoingAfterFailedPass(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	worker := &countingDrainer{err: errors.NewConfiguration("zoom rooms service URL is not set")}

	go func() { _ = runDrainLoop(ctx, worker, 10*time.Millisecond) }()

	assert.Eventually(t, func() bool { return worker.passes.Load() >= 2 }, time.Second, 5*time.Millisecond)
}

func TestDrainInterval(t *testing.T) {
	tests := []struct {
		name  string
		value string
		want  time.Duration
	}{
		{name: "unset", value: "", want: defaultDrainInterval},
		{name: "valid", value: "15s", want: 15 * time.Second},
		{name: "malformed", value: "soon", want: defaultDrainInterval},
		{name: "negative", value: "-1m", want: defaultDrainInterval},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Setenv(constants.EnvDrainInterval, tt.value)
			assert.Equal(t, tt.want, drainInterval(context.Background()))
		})
	}
}
