// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/constants"

// VCRoom is a videoconference meeting record
type VCRoom struct {
	ID   int64      `json:"id"`
	Type string     `json:"type"`
	Name string     `json:"name"`
	Data VCRoomData `json:"data"`
}

// VCRoomData holds the provider specific meeting data
type VCRoomData struct {
	URL    string `json:"url"`
	ZoomID string `json:"zoom_id"`
}

// IsZoom reports whether the VC room is a Zoom meeting
func (v *VCRoom) IsZoom() bool {
	return v != nil && v.Type == constants.VCRoomTypeZoom
}

// VCRoomAssociation links one VC room to one linkable object.
// LinkObject is populated by Event.Link.
type VCRoomAssociation struct {
	ID     int64   `json:"id"`
	VCRoom *VCRoom `json:"vc_room"`

	LinkObject Linkable `json:"-"`
}

// ZoomAssociations filters out associations whose VC room is not a Zoom meeting
func ZoomAssociations(assocs []*VCRoomAssociation) []*VCRoomAssociation {
	var result []*VCRoomAssociation
	for _, a := range assocs {
		if a != nil && a.VCRoom.IsZoom() {
			result = append(result, a)
		}
	}
	return result
}
