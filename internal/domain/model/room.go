// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

// Package model defines the domain models and entities for the zoom rooms sync service.
package model

import "github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/constants"

// Room represents a bookable room as known to the event management system
type Room struct {
	ID         int64             `json:"id"`
	Name       string            `json:"name"`
	Attributes map[string]string `json:"attributes,omitempty"`
}

// DeviceID returns the Zoom Rooms calendar id of the room.
// A room without the attribute, or with an empty value, is not Zoom Rooms capable.
func (r *Room) DeviceID() (string, bool) {
	if r == nil {
		return "", false
	}
	id, ok := r.Attributes[constants.DeviceIDAttribute]
	if !ok || id == "" {
		return "", false
	}
	return id, true
}

// GetDeviceID resolves the effective room of a locatable object and returns its device id.
func GetDeviceID(obj Locatable) (string, bool) {
	if obj == nil {
		return "", false
	}
	return obj.EffectiveRoom().DeviceID()
}
