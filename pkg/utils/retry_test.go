// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package utils

import (
	"context"
	stderrors "errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/errors"
)

func TestNewRetryConfig(t *testing.T) {
	config := NewRetryConfig(4, 250*time.Millisecond, 2*time.Second)

	assert.Equal(t, 4, config.MaxAttempts)
	assert.Equal(t, 250*time.Millisecond, config.BaseDelay)
	assert.Equal(t, 2*time.Second, config.MaxDelay)
	assert.Nil(t, config.Retryable)
}

// failingFor returns a func that fails the first n calls with err
func failingFor(n int, err error, calls *int) func() error {
	return func() error {
		*calls++
		if *calls <= n {
			return err
		}
		return nil
	}
}

func TestRetryWithExponentialBackoff(t *testing.T) {
	bridgeDown := errors.NewServiceUnavailable("calendar bridge returned 503")
	badRequest := errors.NewValidation("calendar bridge returned 400")
	transientOnly := func(err error) bool {
		var unavailable errors.ServiceUnavailable
		return stderrors.As(err, &unavailable)
	}

	tests := []struct {
		name        string
		config      RetryConfig
		failures    int
		err         error
		wantCalls   int
		wantErr     bool
		wantWrapped bool
	}{
		{
			name:      "succeeds first time",
			config:    NewRetryConfig(3, time.Millisecond, 10*time.Millisecond),
			failures:  0,
			err:       bridgeDown,
			wantCalls: 1,
		},
		{
			name:      "succeeds after transient failures",
			config:    NewRetryConfig(3, time.Millisecond, 10*time.Millisecond),
			failures:  2,
			err:       bridgeDown,
			wantCalls: 3,
		},
		{
			name:        "gives up after max attempts",
			config:      NewRetryConfig(3, time.Millisecond, 10*time.Millisecond),
			failures:    5,
			err:         bridgeDown,
			wantCalls:   3,
			wantErr:     true,
			wantWrapped: true,
		},
		{
			name:      "single attempt returns the error as is",
			config:    NewRetryConfig(1, time.Millisecond, 10*time.Millisecond),
			failures:  5,
			err:       bridgeDown,
			wantCalls: 1,
			wantErr:   true,
		},
		{
			name: "non retryable error stops immediately",
			config: RetryConfig{
				MaxAttempts: 5,
				BaseDelay:   time.Millisecond,
				MaxDelay:    10 * time.Millisecond,
				Retryable:   transientOnly,
			},
			failures:  5,
			err:       badRequest,
			wantCalls: 1,
			wantErr:   true,
		},
		{
			name: "retryable predicate lets transient errors through",
			config: RetryConfig{
				MaxAttempts: 5,
				BaseDelay:   time.Millisecond,
				MaxDelay:    10 * time.Millisecond,
				Retryable:   transientOnly,
			},
			failures:  2,
			err:       bridgeDown,
			wantCalls: 3,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			calls := 0
			err := RetryWithExponentialBackoff(context.Background(), tt.config, failingFor(tt.failures, tt.err, &calls))

			assert.Equal(t, tt.wantCalls, calls)
			if !tt.wantErr {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.ErrorIs(t, err, tt.err)
			if tt.wantWrapped {
				assert.Contains(t, err.Error(), "failed after")
			} else {
				assert.Equal(t, tt.err.Error(), err.Error())
			}
		})
	}
}

func TestRetryWithExponentialBackoff_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	config := NewRetryConfig(5, 200*time.Millisecond, time.Second)

	calls := 0
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	err := RetryWithExponentialBackoff(ctx, config, failingFor(10, errors.NewTimeout("request timed out"), &calls))

	require.Error(t, err)
	assert.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, 1, calls)
}

func TestRetryWithExponentialBackoff_DelayGrowsAndCaps(t *testing.T) {
	config := NewRetryConfig(4, 20*time.Millisecond, 30*time.Millisecond)

	var stamps []time.Time
	_ = RetryWithExponentialBackoff(context.Background(), config, func() error {
		stamps = append(stamps, time.Now())
		return errors.NewServiceUnavailable("bridge down")
	})

	require.Len(t, stamps, 4)
	// 20ms, then 40ms capped to 30ms, then capped again
	assert.GreaterOrEqual(t, stamps[1].Sub(stamps[0]), 20*time.Millisecond)
	assert.GreaterOrEqual(t, stamps[2].Sub(stamps[1]), 30*time.Millisecond)
	assert.GreaterOrEqual(t, stamps[3].Sub(stamps[2]), 30*time.Millisecond)
}
