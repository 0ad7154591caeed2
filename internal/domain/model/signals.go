// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "time"

// LocationData is the location of an object at one point in time
type LocationData struct {
	Room       *Room `json:"room"`
	Inheriting bool  `json:"inheriting"`
}

// LocationChange is an (old, new) location pair
type LocationChange struct {
	Old LocationData `json:"old"`
	New LocationData `json:"new"`
}

// BlockChange is an (old, new) session block pair; nil means top level
type BlockChange struct {
	Old *int64 `json:"old"`
	New *int64 `json:"new"`
}

// TimeChange is an (old, new) timestamp pair
type TimeChange struct {
	Old time.Time `json:"old"`
	New time.Time `json:"new"`
}

// Changes is the changes map of an update signal, keyed by field name
type Changes struct {
	LocationData *LocationChange `json:"location_data,omitempty"`
	SessionBlock *BlockChange    `json:"session_block,omitempty"`
	StartDT      *TimeChange     `json:"start_dt,omitempty"`
	EndDT        *TimeChange     `json:"end_dt,omitempty"`
}

// LocationChanged reports whether the effective room may have changed
func (c Changes) LocationChanged() bool {
	return c.LocationData != nil || c.SessionBlock != nil
}

// TimesChanged reports whether start or end moved
func (c Changes) TimesChanged() bool {
	return c.StartDT != nil || c.EndDT != nil
}

// ObjectUpdatedSignal is emitted when an event, session, session block or contribution is updated.
// Event is the snapshot after the update.
type ObjectUpdatedSignal struct {
	Event   *Event    `json:"event"`
	Object  ObjectRef `json:"object"`
	Changes Changes   `json:"changes"`
}

// TimesChangedSignal is emitted when the timetable moves an object
type TimesChangedSignal struct {
	Event   *Event    `json:"event"`
	Object  ObjectRef `json:"object"`
	Changes Changes   `json:"changes"`
}

// VCRoomCreatedSignal is emitted when an association to a brand-new VC room is created
type VCRoomCreatedSignal struct {
	Event         *Event `json:"event"`
	AssociationID int64  `json:"association_id"`
}

// VCRoomClonedSignal is emitted when an association is cloned along with its event
type VCRoomClonedSignal struct {
	Event         *Event `json:"event"`
	AssociationID int64  `json:"association_id"`
}

// VCRoomAttachedSignal is emitted when an existing VC room is attached to an object.
// OldLink is set when the association was re-linked from another object.
type VCRoomAttachedSignal struct {
	Event         *Event     `json:"event"`
	AssociationID int64      `json:"association_id"`
	NewRoom       bool       `json:"new_room"`
	OldLink       *ObjectRef `json:"old_link,omitempty"`
}

// VCRoomDetachedSignal is emitted after an association is removed from its object
type VCRoomDetachedSignal struct {
	Event       *Event            `json:"event"`
	Association VCRoomAssociation `json:"association"`
	OldLink     ObjectRef         `json:"old_link"`
}

// VCRoomDataUpdatedSignal is emitted when a VC room's data changes.
// Events holds every event tree that has an association to the room.
type VCRoomDataUpdatedSignal struct {
	VCRoom  VCRoom   `json:"vc_room"`
	OldName string   `json:"old_name"`
	Events  []*Event `json:"events"`
}

// ObjectDeletedSignal is emitted before an object is permanently deleted.
// Event is the snapshot before deletion. ReattachToEvent is set when the
// associations of the deleted subtree move to the event itself.
type ObjectDeletedSignal struct {
	Event           *Event    `json:"event"`
	Object          ObjectRef `json:"object"`
	ReattachToEvent bool      `json:"reattach_to_event"`
}
