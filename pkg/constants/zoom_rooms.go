// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// Zoom Rooms calendar constants
const (
	// DeviceIDAttribute is the room attribute holding the Zoom Rooms calendar id
	DeviceIDAttribute = "zoom-rooms-calendar-id"

	// VCRoomTypeZoom is the only VC room type that is synchronized
	VCRoomTypeZoom = "zoom"

	// EventPathFormat is the bridge path for a single calendar entry
	EventPathFormat = "/api/v1/users/%s/events/%s"

	// CalendarStatusBusy is the free/busy status sent for every entry
	CalendarStatusBusy = "BUSY"

	// MinTimeoutSeconds is the smallest accepted bridge timeout
	MinTimeoutSeconds = 0.25
)
