// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package port

import (
	"context"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/model"
)

// SettingsProvider returns a snapshot of the plugin settings.
// A drain pass takes one snapshot and uses it throughout.
type SettingsProvider interface {
	Settings(ctx context.Context) (model.Settings, error)
}
