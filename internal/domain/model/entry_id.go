// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"strings"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/errors"
)

const (
	entryIDPrefix    = "zoom_meeting:"
	entryIDSeparator = "@"
	entryIDMeeting   = "#"
	externalIDAnchor = entryIDSeparator + "indico:"
)

// EntryID builds the deterministic calendar entry identifier for a
// (device, object, meeting) triple:
//
//	zoom_meeting:<device>@indico:event:<event>[:contribution:<id>|:block:<id>]#<meeting>
func EntryID(deviceID string, obj Linkable, vcRoom *VCRoom) (string, error) {
	if deviceID == "" {
		return "", errors.NewValidation("device id is required")
	}
	if obj == nil {
		return "", errors.NewValidation("link object is required")
	}
	if vcRoom == nil || vcRoom.Data.ZoomID == "" {
		return "", errors.NewValidation("vc room has no meeting id")
	}

	var b strings.Builder
	b.WriteString(entryIDPrefix)
	b.WriteString(deviceID)
	b.WriteString(entryIDSeparator)
	fmt.Fprintf(&b, "indico:event:%d", obj.EventID())

	switch obj.Ref().Type {
	case ObjectTypeContribution:
		fmt.Fprintf(&b, ":contribution:%d", obj.Ref().ID)
	case ObjectTypeSessionBlock:
		fmt.Fprintf(&b, ":block:%d", obj.Ref().ID)
	}

	b.WriteString(entryIDMeeting)
	b.WriteString(vcRoom.Data.ZoomID)
	return b.String(), nil
}

// ExternalEntryID converts an entry identifier to the form used in bridge URLs:
// the zoom_meeting:<device>@ prefix and the #<meeting> suffix are removed.
// Device ids are opaque and may contain '@', so the cut is made at the
// last "@indico:" before the meeting suffix.
func ExternalEntryID(entryID string) string {
	id := strings.TrimPrefix(entryID, entryIDPrefix)
	if i := strings.LastIndex(id, entryIDMeeting); i >= 0 {
		id = id[:i]
	}
	if i := strings.LastIndex(id, externalIDAnchor); i >= 0 {
		id = id[i+len(entryIDSeparator):]
	}
	return id
}
