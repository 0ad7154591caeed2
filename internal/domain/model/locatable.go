// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import (
	"fmt"
	"time"
)

// ObjectType identifies the kind of object in an event tree
type ObjectType string

// Object types
const (
	ObjectTypeEvent        ObjectType = "event"
	ObjectTypeSession      ObjectType = "session"
	ObjectTypeSessionBlock ObjectType = "session_block"
	ObjectTypeContribution ObjectType = "contribution"
)

// ObjectRef references one object inside an event tree
type ObjectRef struct {
	Type ObjectType `json:"type"`
	ID   int64      `json:"id"`
}

func (r ObjectRef) String() string {
	return fmt.Sprintf("%s:%d", r.Type, r.ID)
}

// Locatable is anything in an event tree that has a location.
type Locatable interface {
	Ref() ObjectRef
	// OwnRoom is the room set on the object itself, regardless of inheritance
	OwnRoom() *Room
	InheritsLocation() bool
	// InheritedRoom is the effective room of the nearest ancestor
	InheritedRoom() *Room
	EffectiveRoom() *Room
	// AffectedAssociations returns the associations whose calendar entry follows
	// this object's location. Objects with their own location are not descended into.
	AffectedAssociations() []*VCRoomAssociation
	// SubtreeAssociations returns every association on the object and its descendants
	SubtreeAssociations() []*VCRoomAssociation
}

// Linkable is a Locatable that can own VC room associations.
type Linkable interface {
	Locatable
	EventID() int64
	StartTime() time.Time
	EndTime() time.Time
	VCRoomAssociations() []*VCRoomAssociation
}

var (
	_ Linkable  = (*Event)(nil)
	_ Linkable  = (*SessionBlock)(nil)
	_ Linkable  = (*Contribution)(nil)
	_ Locatable = (*Session)(nil)
)

func effectiveRoom(own *Room, inherit bool, inherited func() *Room) *Room {
	if inherit {
		return inherited()
	}
	return own
}
