// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "time"

// Event is the root of an event tree snapshot
type Event struct {
	ID            int64                `json:"id"`
	Title         string               `json:"title"`
	Start         time.Time            `json:"start_dt"`
	End           time.Time            `json:"end_dt"`
	Room          *Room                `json:"room,omitempty"`
	Associations  []*VCRoomAssociation `json:"vc_room_associations,omitempty"`
	Contributions []*Contribution      `json:"contributions,omitempty"`
	Sessions      []*Session           `json:"sessions,omitempty"`
}

// Session groups session blocks; it has a location but never owns associations
type Session struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	Room            *Room           `json:"room,omitempty"`
	InheritLocation bool            `json:"inherit_location"`
	Blocks          []*SessionBlock `json:"blocks,omitempty"`

	event *Event
}

// SessionBlock is a scheduled slot of a session
type SessionBlock struct {
	ID              int64                `json:"id"`
	Title           string               `json:"title"`
	Start           time.Time            `json:"start_dt"`
	End             time.Time            `json:"end_dt"`
	Room            *Room                `json:"room,omitempty"`
	InheritLocation bool                 `json:"inherit_location"`
	Associations    []*VCRoomAssociation `json:"vc_room_associations,omitempty"`
	Contributions   []*Contribution      `json:"contributions,omitempty"`

	session *Session
}

// Contribution is a talk, scheduled at top level or inside a session block
type Contribution struct {
	ID              int64                `json:"id"`
	Title           string               `json:"title"`
	Start           time.Time            `json:"start_dt"`
	End             time.Time            `json:"end_dt"`
	Room            *Room                `json:"room,omitempty"`
	InheritLocation bool                 `json:"inherit_location"`
	Associations    []*VCRoomAssociation `json:"vc_room_associations,omitempty"`

	event *Event
	block *SessionBlock
}

// Link restores parent references and association back-references after decoding.
// It must be called before any traversal.
func (e *Event) Link() *Event {
	linkAssociations(e, e.Associations)
	for _, c := range e.Contributions {
		c.event, c.block = e, nil
		linkAssociations(c, c.Associations)
	}
	for _, s := range e.Sessions {
		s.event = e
		for _, b := range s.Blocks {
			b.session = s
			linkAssociations(b, b.Associations)
			for _, c := range b.Contributions {
				c.event, c.block = e, b
				linkAssociations(c, c.Associations)
			}
		}
	}
	return e
}

func linkAssociations(obj Linkable, assocs []*VCRoomAssociation) {
	for _, a := range assocs {
		a.LinkObject = obj
	}
}

// FindObject returns the object referenced by ref, or nil.
func (e *Event) FindObject(ref ObjectRef) Locatable {
	switch ref.Type {
	case ObjectTypeEvent:
		if ref.ID == e.ID {
			return e
		}
	case ObjectTypeSession:
		if s := e.FindSession(ref.ID); s != nil {
			return s
		}
	case ObjectTypeSessionBlock:
		if b := e.FindBlock(ref.ID); b != nil {
			return b
		}
	case ObjectTypeContribution:
		if c := e.FindContribution(ref.ID); c != nil {
			return c
		}
	}
	return nil
}

// FindSession returns the session with the given id, or nil
func (e *Event) FindSession(id int64) *Session {
	for _, s := range e.Sessions {
		if s.ID == id {
			return s
		}
	}
	return nil
}

// FindBlock returns the session block with the given id, or nil
func (e *Event) FindBlock(id int64) *SessionBlock {
	for _, s := range e.Sessions {
		for _, b := range s.Blocks {
			if b.ID == id {
				return b
			}
		}
	}
	return nil
}

// FindContribution returns the contribution with the given id, or nil
func (e *Event) FindContribution(id int64) *Contribution {
	for _, c := range e.Contributions {
		if c.ID == id {
			return c
		}
	}
	for _, s := range e.Sessions {
		for _, b := range s.Blocks {
			for _, c := range b.Contributions {
				if c.ID == id {
					return c
				}
			}
		}
	}
	return nil
}

// FindAssociation returns the association with the given id anywhere in the tree, or nil
func (e *Event) FindAssociation(id int64) *VCRoomAssociation {
	for _, a := range e.SubtreeAssociations() {
		if a.ID == id {
			return a
		}
	}
	return nil
}

// Event

func (e *Event) Ref() ObjectRef         { return ObjectRef{Type: ObjectTypeEvent, ID: e.ID} }
func (e *Event) OwnRoom() *Room         { return e.Room }
func (e *Event) InheritsLocation() bool { return false }
func (e *Event) InheritedRoom() *Room   { return nil }
func (e *Event) EffectiveRoom() *Room   { return e.Room }
func (e *Event) EventID() int64         { return e.ID }
func (e *Event) StartTime() time.Time   { return e.Start }
func (e *Event) EndTime() time.Time     { return e.End }

func (e *Event) VCRoomAssociations() []*VCRoomAssociation { return e.Associations }

func (e *Event) AffectedAssociations() []*VCRoomAssociation {
	result := append([]*VCRoomAssociation(nil), e.Associations...)
	for _, c := range e.Contributions {
		if c.InheritLocation {
			result = append(result, c.AffectedAssociations()...)
		}
	}
	for _, s := range e.Sessions {
		if s.InheritLocation {
			result = append(result, s.AffectedAssociations()...)
		}
	}
	return result
}

func (e *Event) SubtreeAssociations() []*VCRoomAssociation {
	result := append([]*VCRoomAssociation(nil), e.Associations...)
	for _, c := range e.Contributions {
		result = append(result, c.SubtreeAssociations()...)
	}
	for _, s := range e.Sessions {
		result = append(result, s.SubtreeAssociations()...)
	}
	return result
}

// Session

func (s *Session) Ref() ObjectRef         { return ObjectRef{Type: ObjectTypeSession, ID: s.ID} }
func (s *Session) OwnRoom() *Room         { return s.Room }
func (s *Session) InheritsLocation() bool { return s.InheritLocation }

func (s *Session) InheritedRoom() *Room {
	if s.event == nil {
		return nil
	}
	return s.event.EffectiveRoom()
}

func (s *Session) EffectiveRoom() *Room {
	return effectiveRoom(s.Room, s.InheritLocation, s.InheritedRoom)
}

func (s *Session) AffectedAssociations() []*VCRoomAssociation {
	var result []*VCRoomAssociation
	for _, b := range s.Blocks {
		if b.InheritLocation {
			result = append(result, b.AffectedAssociations()...)
		}
	}
	return result
}

func (s *Session) SubtreeAssociations() []*VCRoomAssociation {
	var result []*VCRoomAssociation
	for _, b := range s.Blocks {
		result = append(result, b.SubtreeAssociations()...)
	}
	return result
}

// SessionBlock

func (b *SessionBlock) Ref() ObjectRef {
	return ObjectRef{Type: ObjectTypeSessionBlock, ID: b.ID}
}
func (b *SessionBlock) OwnRoom() *Room         { return b.Room }
func (b *SessionBlock) InheritsLocation() bool { return b.InheritLocation }
func (b *SessionBlock) StartTime() time.Time   { return b.Start }
func (b *SessionBlock) EndTime() time.Time     { return b.End }

func (b *SessionBlock) InheritedRoom() *Room {
	if b.session == nil {
		return nil
	}
	return b.session.EffectiveRoom()
}

func (b *SessionBlock) EffectiveRoom() *Room {
	return effectiveRoom(b.Room, b.InheritLocation, b.InheritedRoom)
}

func (b *SessionBlock) EventID() int64 {
	if b.session == nil || b.session.event == nil {
		return 0
	}
	return b.session.event.ID
}

func (b *SessionBlock) VCRoomAssociations() []*VCRoomAssociation { return b.Associations }

func (b *SessionBlock) AffectedAssociations() []*VCRoomAssociation {
	result := append([]*VCRoomAssociation(nil), b.Associations...)
	for _, c := range b.Contributions {
		if c.InheritLocation {
			result = append(result, c.AffectedAssociations()...)
		}
	}
	return result
}

func (b *SessionBlock) SubtreeAssociations() []*VCRoomAssociation {
	result := append([]*VCRoomAssociation(nil), b.Associations...)
	for _, c := range b.Contributions {
		result = append(result, c.SubtreeAssociations()...)
	}
	return result
}

// Contribution

func (c *Contribution) Ref() ObjectRef {
	return ObjectRef{Type: ObjectTypeContribution, ID: c.ID}
}
func (c *Contribution) OwnRoom() *Room         { return c.Room }
func (c *Contribution) InheritsLocation() bool { return c.InheritLocation }
func (c *Contribution) StartTime() time.Time   { return c.Start }
func (c *Contribution) EndTime() time.Time     { return c.End }

// InheritedRoom is the room of the enclosing block, or of the event for top-level contributions
func (c *Contribution) InheritedRoom() *Room {
	if c.block != nil {
		return c.block.EffectiveRoom()
	}
	if c.event != nil {
		return c.event.EffectiveRoom()
	}
	return nil
}

func (c *Contribution) EffectiveRoom() *Room {
	return effectiveRoom(c.Room, c.InheritLocation, c.InheritedRoom)
}

func (c *Contribution) EventID() int64 {
	if c.event == nil {
		return 0
	}
	return c.event.ID
}

// Block returns the enclosing session block, nil for top-level contributions
func (c *Contribution) Block() *SessionBlock { return c.block }

func (c *Contribution) VCRoomAssociations() []*VCRoomAssociation { return c.Associations }

func (c *Contribution) AffectedAssociations() []*VCRoomAssociation {
	return append([]*VCRoomAssociation(nil), c.Associations...)
}

func (c *Contribution) SubtreeAssociations() []*VCRoomAssociation {
	return c.AffectedAssociations()
}
