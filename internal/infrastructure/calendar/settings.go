// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package calendar

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/port"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/constants"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/errors"
)

// SettingsProvider reads the plugin settings from an optional YAML file,
// overridden by ZOOM_ROOMS_* environment variables. The file is read on
// every call so edits apply from the next drain pass.
type SettingsProvider struct {
	path string
}

// Ensure SettingsProvider implements the SettingsProvider interface
var _ port.SettingsProvider = (*SettingsProvider)(nil)

// NewSettingsProvider creates a provider; an empty path uses the environment only
func NewSettingsProvider(path string) *SettingsProvider {
	return &SettingsProvider{path: path}
}

// NewSettingsProviderFromEnv uses ZOOM_ROOMS_SETTINGS_FILE as the settings file
func NewSettingsProviderFromEnv() *SettingsProvider {
	return NewSettingsProvider(os.Getenv(constants.EnvSettingsFile))
}

// Settings returns a fresh snapshot; it does not validate it
func (p *SettingsProvider) Settings(ctx context.Context) (model.Settings, error) {
	settings := model.DefaultSettings()

	if p.path != "" {
		data, err := os.ReadFile(p.path)
		if err != nil {
			return model.Settings{}, errors.NewConfiguration(fmt.Sprintf("failed to read settings file %s", p.path), err)
		}
		if err := yaml.Unmarshal(data, &settings); err != nil {
			return model.Settings{}, errors.NewConfiguration(fmt.Sprintf("failed to parse settings file %s", p.path), err)
		}
	}

	applyEnv(ctx, &settings)
	return settings, nil
}

func applyEnv(ctx context.Context, settings *model.Settings) {
	if v := os.Getenv(constants.EnvDebug); v != "" {
		if debug, err := strconv.ParseBool(v); err == nil {
			settings.Debug = debug
		} else {
			slog.WarnContext(ctx, "ignoring invalid boolean", "variable", constants.EnvDebug, "value", v)
		}
	}
	if v := os.Getenv(constants.EnvServiceURL); v != "" {
		settings.ServiceURL = v
	}
	if v := os.Getenv(constants.EnvDocsURL); v != "" {
		settings.DocsURL = v
	}
	if v := os.Getenv(constants.EnvToken); v != "" {
		settings.Token = v
	}
	if v := os.Getenv(constants.EnvTimeout); v != "" {
		if timeout, err := strconv.ParseFloat(v, 64); err == nil {
			settings.Timeout = timeout
		} else {
			slog.WarnContext(ctx, "ignoring invalid timeout", "variable", constants.EnvTimeout, "value", v)
		}
	}
}
