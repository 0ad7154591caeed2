// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/model"
	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/pkg/errors"
)

// ChangeClassifier derives the calendar operations implied by a change signal.
// It never performs I/O; callers record the returned entries in their transaction.
type ChangeClassifier struct{}

// NewChangeClassifier creates a new change classifier
func NewChangeClassifier() *ChangeClassifier {
	return &ChangeClassifier{}
}

// OnObjectUpdated handles updates of events, sessions, session blocks and contributions.
// Location and session block changes are resolved before time changes; an
// association whose device changed gets no separate update since its
// create or move already carries the current times.
func (c *ChangeClassifier) OnObjectUpdated(ctx context.Context, sig model.ObjectUpdatedSignal) ([]model.QueueEntry, error) {
	obj, err := findObject(sig.Event, sig.Object)
	if err != nil {
		return nil, err
	}

	var entries []model.QueueEntry
	relocated := make(map[int64]bool)

	if sig.Changes.LocationChanged() {
		oldDevice, oldOK := previousRoom(sig.Event, obj, sig.Changes).DeviceID()

		for _, assoc := range model.ZoomAssociations(obj.AffectedAssociations()) {
			newDevice, newOK := model.GetDeviceID(assoc.LinkObject)
			if oldOK && newOK && oldDevice == newDevice {
				continue
			}

			derived, err := c.relocate(ctx, assoc, oldDevice, oldOK, newDevice, newOK)
			if err != nil {
				return nil, err
			}
			if len(derived) > 0 {
				relocated[assoc.ID] = true
				entries = append(entries, derived...)
			}
		}
	}

	if sig.Changes.TimesChanged() {
		if linkable, ok := obj.(model.Linkable); ok {
			for _, assoc := range model.ZoomAssociations(linkable.VCRoomAssociations()) {
				if relocated[assoc.ID] {
					continue
				}
				derived, err := c.update(ctx, assoc)
				if err != nil {
					return nil, err
				}
				entries = append(entries, derived...)
			}
		}
	}

	return entries, nil
}

// OnTimesChanged handles timetable moves of a linkable object
func (c *ChangeClassifier) OnTimesChanged(ctx context.Context, sig model.TimesChangedSignal) ([]model.QueueEntry, error) {
	if !sig.Changes.TimesChanged() {
		return nil, nil
	}

	obj, err := findObject(sig.Event, sig.Object)
	if err != nil {
		return nil, err
	}
	linkable, ok := obj.(model.Linkable)
	if !ok {
		return nil, nil
	}

	var entries []model.QueueEntry
	for _, assoc := range model.ZoomAssociations(linkable.VCRoomAssociations()) {
		derived, err := c.update(ctx, assoc)
		if err != nil {
			return nil, err
		}
		entries = append(entries, derived...)
	}
	return entries, nil
}

// OnAssociationCreated handles an association to a brand-new VC room
func (c *ChangeClassifier) OnAssociationCreated(ctx context.Context, sig model.VCRoomCreatedSignal) ([]model.QueueEntry, error) {
	assoc, err := findAssociation(sig.Event, sig.AssociationID)
	if err != nil {
		return nil, err
	}
	return c.create(ctx, assoc)
}

// OnAssociationCloned handles an association cloned together with its event
func (c *ChangeClassifier) OnAssociationCloned(ctx context.Context, sig model.VCRoomClonedSignal) ([]model.QueueEntry, error) {
	assoc, err := findAssociation(sig.Event, sig.AssociationID)
	if err != nil {
		return nil, err
	}
	return c.create(ctx, assoc)
}

// OnAssociationAttached handles an existing VC room attached to an object.
// Associations of newly created rooms are skipped; OnAssociationCreated covers them.
func (c *ChangeClassifier) OnAssociationAttached(ctx context.Context, sig model.VCRoomAttachedSignal) ([]model.QueueEntry, error) {
	if sig.NewRoom {
		slog.DebugContext(ctx, "skipping attach of newly created vc room", "association_id", sig.AssociationID)
		return nil, nil
	}

	assoc, err := findAssociation(sig.Event, sig.AssociationID)
	if err != nil {
		return nil, err
	}
	if !assoc.VCRoom.IsZoom() {
		return nil, nil
	}

	var entries []model.QueueEntry
	if sig.OldLink != nil && *sig.OldLink != assoc.LinkObject.Ref() {
		oldObj, err := findLinkable(sig.Event, *sig.OldLink)
		if err != nil {
			return nil, err
		}
		if device, ok := model.GetDeviceID(oldObj); ok {
			entry, err := c.entry(ctx, model.ActionDelete, device, oldObj, assoc.VCRoom, nil)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry...)
		}
	}

	created, err := c.create(ctx, assoc)
	if err != nil {
		return nil, err
	}
	return append(entries, created...), nil
}

// OnAssociationDetached handles an association removed from its object
func (c *ChangeClassifier) OnAssociationDetached(ctx context.Context, sig model.VCRoomDetachedSignal) ([]model.QueueEntry, error) {
	if !sig.Association.VCRoom.IsZoom() {
		return nil, nil
	}

	oldObj, err := findLinkable(sig.Event, sig.OldLink)
	if err != nil {
		return nil, err
	}
	device, ok := model.GetDeviceID(oldObj)
	if !ok {
		return nil, nil
	}
	return c.entry(ctx, model.ActionDelete, device, oldObj, sig.Association.VCRoom, nil)
}

// OnVCRoomDataUpdated propagates a rename of a Zoom VC room to every enabled association
func (c *ChangeClassifier) OnVCRoomDataUpdated(ctx context.Context, sig model.VCRoomDataUpdatedSignal) ([]model.QueueEntry, error) {
	vcRoom := sig.VCRoom
	if !vcRoom.IsZoom() {
		return nil, nil
	}
	if vcRoom.Name == sig.OldName {
		slog.DebugContext(ctx, "vc room name unchanged", "vc_room_id", vcRoom.ID)
		return nil, nil
	}

	var entries []model.QueueEntry
	for _, ev := range sig.Events {
		if ev == nil {
			continue
		}
		for _, assoc := range ev.Link().SubtreeAssociations() {
			if assoc.VCRoom == nil || assoc.VCRoom.ID != vcRoom.ID {
				continue
			}
			device, ok := model.GetDeviceID(assoc.LinkObject)
			if !ok {
				continue
			}
			derived, err := c.entry(ctx, model.ActionUpdate, device, assoc.LinkObject, &vcRoom, nil)
			if err != nil {
				return nil, err
			}
			entries = append(entries, derived...)
		}
	}
	return entries, nil
}

// OnObjectDeleted removes the entries of every association in the deleted subtree.
// With ReattachToEvent each association is recreated under the event entry id.
func (c *ChangeClassifier) OnObjectDeleted(ctx context.Context, sig model.ObjectDeletedSignal) ([]model.QueueEntry, error) {
	obj, err := findObject(sig.Event, sig.Object)
	if err != nil {
		return nil, err
	}

	reattach := sig.ReattachToEvent && sig.Object.Type != model.ObjectTypeEvent
	eventDevice, eventOK := model.GetDeviceID(sig.Event)

	var entries []model.QueueEntry
	for _, assoc := range model.ZoomAssociations(obj.SubtreeAssociations()) {
		if device, ok := model.GetDeviceID(assoc.LinkObject); ok {
			derived, err := c.entry(ctx, model.ActionDelete, device, assoc.LinkObject, assoc.VCRoom, nil)
			if err != nil {
				return nil, err
			}
			entries = append(entries, derived...)
		}

		if reattach && eventOK {
			derived, err := c.entry(ctx, model.ActionCreate, eventDevice, sig.Event, assoc.VCRoom, nil)
			if err != nil {
				return nil, err
			}
			entries = append(entries, derived...)
		}
	}
	return entries, nil
}

// relocate maps a device transition to create, delete or move
func (c *ChangeClassifier) relocate(ctx context.Context, assoc *model.VCRoomAssociation, oldDevice string, oldOK bool, newDevice string, newOK bool) ([]model.QueueEntry, error) {
	obj := assoc.LinkObject
	switch {
	case !oldOK && !newOK:
		return nil, nil
	case !oldOK:
		return c.entry(ctx, model.ActionCreate, newDevice, obj, assoc.VCRoom, nil)
	case !newOK:
		return c.entry(ctx, model.ActionDelete, oldDevice, obj, assoc.VCRoom, nil)
	default:
		return c.entry(ctx, model.ActionMove, oldDevice, obj, assoc.VCRoom, &model.ExtraArgs{NewZRID: newDevice})
	}
}

func (c *ChangeClassifier) create(ctx context.Context, assoc *model.VCRoomAssociation) ([]model.QueueEntry, error) {
	if !assoc.VCRoom.IsZoom() {
		return nil, nil
	}
	device, ok := model.GetDeviceID(assoc.LinkObject)
	if !ok {
		return nil, nil
	}
	return c.entry(ctx, model.ActionCreate, device, assoc.LinkObject, assoc.VCRoom, nil)
}

func (c *ChangeClassifier) update(ctx context.Context, assoc *model.VCRoomAssociation) ([]model.QueueEntry, error) {
	device, ok := model.GetDeviceID(assoc.LinkObject)
	if !ok {
		return nil, nil
	}
	return c.entry(ctx, model.ActionUpdate, device, assoc.LinkObject, assoc.VCRoom, nil)
}

// entry builds one queue entry; a VC room without a meeting id is skipped
func (c *ChangeClassifier) entry(ctx context.Context, action model.Action, device string, obj model.Linkable, vcRoom *model.VCRoom, extra *model.ExtraArgs) ([]model.QueueEntry, error) {
	if vcRoom != nil && vcRoom.Data.ZoomID == "" {
		slog.WarnContext(ctx, "vc room has no meeting id, skipping",
			"vc_room_id", vcRoom.ID,
			"action", action.String(),
			"object", obj.Ref().String(),
		)
		return nil, nil
	}

	entry, err := model.NewQueueEntry(action, device, obj, vcRoom, extra)
	if err != nil {
		return nil, err
	}

	slog.DebugContext(ctx, "derived queue entry",
		"action", action.String(),
		"entry_id", entry.EntryID,
		"zoom_room_id", device,
	)
	return []model.QueueEntry{entry}, nil
}

// previousRoom reconstructs the effective room of obj before the change
func previousRoom(ev *model.Event, obj model.Locatable, changes model.Changes) *model.Room {
	inherit, own := obj.InheritsLocation(), obj.OwnRoom()
	if changes.LocationData != nil {
		inherit, own = changes.LocationData.Old.Inheriting, changes.LocationData.Old.Room
	}
	if !inherit {
		return own
	}

	if _, ok := obj.(*model.Contribution); !ok || changes.SessionBlock == nil {
		return obj.InheritedRoom()
	}

	// contribution moved between blocks: it inherited from the old parent
	if old := changes.SessionBlock.Old; old != nil {
		if block := ev.FindBlock(*old); block != nil {
			return block.EffectiveRoom()
		}
	}
	return ev.EffectiveRoom()
}

func findObject(ev *model.Event, ref model.ObjectRef) (model.Locatable, error) {
	if ev == nil {
		return nil, errors.NewValidation("signal carries no event")
	}
	obj := ev.Link().FindObject(ref)
	if obj == nil {
		return nil, errors.NewNotFound(fmt.Sprintf("object %s not found in event %d", ref, ev.ID))
	}
	return obj, nil
}

func findLinkable(ev *model.Event, ref model.ObjectRef) (model.Linkable, error) {
	obj, err := findObject(ev, ref)
	if err != nil {
		return nil, err
	}
	linkable, ok := obj.(model.Linkable)
	if !ok {
		return nil, errors.NewValidation(fmt.Sprintf("object %s cannot own vc room associations", ref))
	}
	return linkable, nil
}

func findAssociation(ev *model.Event, id int64) (*model.VCRoomAssociation, error) {
	if ev == nil {
		return nil, errors.NewValidation("signal carries no event")
	}
	assoc := ev.Link().FindAssociation(id)
	if assoc == nil {
		return nil, errors.NewNotFound(fmt.Sprintf("association %d not found in event %d", id, ev.ID))
	}
	return assoc, nil
}
