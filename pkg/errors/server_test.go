// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTimeoutWrapsDeadline(t *testing.T) {
	err := NewTimeout("calendar request timed out", context.DeadlineExceeded)

	require.Error(t, err)
	assert.True(t, errors.Is(err, context.DeadlineExceeded))
	assert.Equal(t, "calendar request timed out: context deadline exceeded", err.Error())

	var timeout Timeout
	assert.True(t, errors.As(error(err), &timeout))
}

func TestConfigurationErrorMessage(t *testing.T) {
	err := NewConfiguration("zoom rooms settings are incomplete")
	assert.Equal(t, "zoom rooms settings are incomplete", err.Error())
	assert.Nil(t, err.Unwrap())

	var cfgErr Configuration
	wrapped := errors.Join(errors.New("drain aborted"), err)
	assert.True(t, errors.As(wrapped, &cfgErr))
}

func TestServiceUnavailableUnwrap(t *testing.T) {
	rootCause := errors.New("queue database connection lost")

	serviceErr := NewServiceUnavailable("queue temporarily unavailable", rootCause)
	assert.NotNil(t, serviceErr.Unwrap())
	assert.True(t, errors.Is(serviceErr, rootCause))

	simpleErr := NewServiceUnavailable("simple service error")
	assert.Nil(t, simpleErr.Unwrap())
}
