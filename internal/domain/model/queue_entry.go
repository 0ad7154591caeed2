// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"fmt"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/errors"
)

// Action is the calendar operation carried by a queue entry.
// The integer values are persisted.
type Action int

// Actions
const (
	ActionCreate Action = iota + 1
	ActionUpdate
	ActionMove
	ActionDelete
)

var actionNames = map[Action]string{
	ActionCreate: "create",
	ActionUpdate: "update",
	ActionMove:   "move",
	ActionDelete: "delete",
}

func (a Action) String() string {
	if name, ok := actionNames[a]; ok {
		return name
	}
	return fmt.Sprintf("Action(%d)", int(a))
}

// IsValid reports whether a is a known action
func (a Action) IsValid() bool {
	_, ok := actionNames[a]
	return ok
}

// EntryData is the calendar payload of an entry; times are epoch seconds
type EntryData struct {
	Title string `json:"title"`
	Start int64  `json:"start"`
	End   int64  `json:"end"`
	URL   string `json:"url"`
}

// ExtraArgs carries the target device of a move
type ExtraArgs struct {
	NewZRID string `json:"new_zr_id"`
}

// QueueEntry is one pending calendar operation
type QueueEntry struct {
	ID         int64      `json:"id"`
	EntryID    string     `json:"entry_id"`
	ZoomRoomID string     `json:"zoom_room_id"`
	Action     Action     `json:"action"`
	EntryData  *EntryData `json:"entry_data"`
	ExtraArgs  *ExtraArgs `json:"extra_args"`
}

// Validate checks the data shape required by the entry's action
func (q *QueueEntry) Validate() error {
	if q.EntryID == "" {
		return errors.NewValidation("entry id is required")
	}
	if q.ZoomRoomID == "" {
		return errors.NewValidation("zoom room id is required")
	}
	if !q.Action.IsValid() {
		return errors.NewValidation(fmt.Sprintf("invalid action %d", int(q.Action)))
	}

	if q.Action == ActionDelete {
		if q.EntryData != nil || q.ExtraArgs != nil {
			return errors.NewValidation("delete entries carry no entry data or extra args")
		}
		return nil
	}

	if q.EntryData == nil {
		return errors.NewValidation(fmt.Sprintf("%s entries require entry data", q.Action))
	}
	if q.Action == ActionMove {
		if q.ExtraArgs == nil || q.ExtraArgs.NewZRID == "" {
			return errors.NewValidation("move entries require the new zoom room id")
		}
		return nil
	}
	if q.ExtraArgs != nil {
		return errors.NewValidation(fmt.Sprintf("%s entries carry no extra args", q.Action))
	}
	return nil
}

// NewQueueEntry resolves the entry id and, for non-delete actions, the entry
// data from the current state of obj and vcRoom.
func NewQueueEntry(action Action, deviceID string, obj Linkable, vcRoom *VCRoom, extra *ExtraArgs) (QueueEntry, error) {
	entryID, err := EntryID(deviceID, obj, vcRoom)
	if err != nil {
		return QueueEntry{}, err
	}

	entry := QueueEntry{
		EntryID:    entryID,
		ZoomRoomID: deviceID,
		Action:     action,
		ExtraArgs:  extra,
	}
	if action != ActionDelete {
		entry.EntryData = &EntryData{
			Title: vcRoom.Name,
			Start: obj.StartTime().Unix(),
			End:   obj.EndTime().Unix(),
			URL:   vcRoom.Data.URL,
		}
	}

	if err := entry.Validate(); err != nil {
		return QueueEntry{}, err
	}
	return entry, nil
}
