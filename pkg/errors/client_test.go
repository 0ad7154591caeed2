// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package errors

import (
	"database/sql"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorTypesWrapCause(t *testing.T) {
	cause := errors.New("calendar bridge unreachable")

	tests := []struct {
		name string
		err  error
		as   func(error) bool
	}{
		{"Validation", NewValidation("bad signal", cause), func(e error) bool { var v Validation; return errors.As(e, &v) }},
		{"NotFound", NewNotFound("association not found", cause), func(e error) bool { var v NotFound; return errors.As(e, &v) }},
		{"Conflict", NewConflict("entry exists", cause), func(e error) bool { var v Conflict; return errors.As(e, &v) }},
		{"Unauthorized", NewUnauthorized("token rejected", cause), func(e error) bool { var v Unauthorized; return errors.As(e, &v) }},
		{"Unexpected", NewUnexpected("invalid action", cause), func(e error) bool { var v Unexpected; return errors.As(e, &v) }},
		{"ServiceUnavailable", NewServiceUnavailable("bridge down", cause), func(e error) bool { var v ServiceUnavailable; return errors.As(e, &v) }},
		{"Timeout", NewTimeout("request timed out", cause), func(e error) bool { var v Timeout; return errors.As(e, &v) }},
		{"Configuration", NewConfiguration("service_url is not set", cause), func(e error) bool { var v Configuration; return errors.As(e, &v) }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.ErrorIs(t, tt.err, cause)
			assert.True(t, tt.as(tt.err))
			assert.Contains(t, tt.err.Error(), cause.Error())

			wrapped := errors.Join(errors.New("drain pass"), tt.err)
			assert.True(t, tt.as(wrapped), "type must survive further wrapping")
		})
	}
}

func TestErrorTypesAreDistinct(t *testing.T) {
	err := error(NewServiceUnavailable("bridge returned 503"))

	var timeout Timeout
	var validation Validation
	assert.False(t, errors.As(err, &timeout))
	assert.False(t, errors.As(err, &validation))
}

func TestErrorMessageWithoutCause(t *testing.T) {
	err := NewNotFound("queue entry not found")

	assert.Equal(t, "queue entry not found", err.Error())
	assert.Nil(t, err.Unwrap())
}

func TestErrorMessageJoinsCauses(t *testing.T) {
	err := NewValidation("failed to decode change signal", sql.ErrNoRows, errors.New("msgpack: invalid code"))

	assert.ErrorIs(t, err, sql.ErrNoRows)
	assert.Equal(t, "failed to decode change signal: sql: no rows in result set\nmsgpack: invalid code", err.Error())
}
