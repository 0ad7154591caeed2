// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"errors"
	"testing"
	"time"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/constants"
	errs "github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/errors"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSettings_Validate(t *testing.T) {
	valid := Settings{ServiceURL: "https://bridge.example.com", Token: "secret", Timeout: 0.25}

	tests := []struct {
		name     string
		modify   func(s *Settings)
		contains string
	}{
		{"valid", func(s *Settings) {}, ""},
		{"missing service url", func(s *Settings) { s.ServiceURL = "" }, "service_url is not set"},
		{"missing token", func(s *Settings) { s.Token = "" }, "token is not set"},
		{"malformed service url", func(s *Settings) { s.ServiceURL = "not a url" }, "service_url is invalid"},
		{"timeout too small", func(s *Settings) { s.Timeout = 0.1 }, "timeout must be at least 0.25 seconds"},
		{"timeout at minimum", func(s *Settings) { s.Timeout = constants.MinTimeoutSeconds }, ""},
		{"debug without bridge settings", func(s *Settings) {
			s.Debug = true
			s.ServiceURL = ""
			s.Token = ""
		}, ""},
		{"debug still checks timeout", func(s *Settings) {
			s.Debug = true
			s.Token = ""
			s.Timeout = 0
		}, "timeout must be at least"},
		{"malformed docs url", func(s *Settings) { s.DocsURL = "::" }, "docs_url is invalid"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := valid
			tt.modify(&s)

			err := s.Validate()
			if tt.contains == "" {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.contains)
			var cfgErr errs.Configuration
			assert.True(t, errors.As(err, &cfgErr))
		})
	}
}

func TestSettings_MissingBoth(t *testing.T) {
	err := DefaultSettings().Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "service_url is not set")
	assert.Contains(t, err.Error(), "token is not set")
}

func TestSettings_RequestTimeout(t *testing.T) {
	assert.Equal(t, 250*time.Millisecond, Settings{Timeout: 0.25}.RequestTimeout())
	assert.Equal(t, 3*time.Second, DefaultSettings().RequestTimeout())
}
