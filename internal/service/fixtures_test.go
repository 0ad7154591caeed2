// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package service

import (
	"time"

	"github.com/linuxfoundation/lfx-v2-zoom-rooms-sync/internal/domain/model"
)

var (
	fixtureStart = time.Date(2026, 5, 4, 8, 0, 0, 0, time.UTC)
	fixtureEnd   = time.Date(2026, 5, 4, 12, 0, 0, 0, time.UTC)
)

func zoomRoom(id int64, device string) *model.Room {
	return &model.Room{
		ID:         id,
		Name:       "Room " + device,
		Attributes: map[string]string{"zoom-rooms-calendar-id": device},
	}
}

func plainRoom(id int64) *model.Room {
	return &model.Room{ID: id, Name: "No zoom"}
}

func vcRoom(id int64, name, meeting string) *model.VCRoom {
	return &model.VCRoom{
		ID:   id,
		Type: "zoom",
		Name: name,
		Data: model.VCRoomData{URL: "https://zoom.example/j/" + meeting, ZoomID: meeting},
	}
}

func assocOf(id int64, room *model.VCRoom) *model.VCRoomAssociation {
	return &model.VCRoomAssociation{ID: id, VCRoom: room}
}

// fixtureEvent builds:
//
//	event 10 (room dev-a) assoc 1 -> meeting m1
//	  contribution 100 inherits, assoc 2 -> m2
//	  session 20 inherits
//	    block 200 inherits, assoc 3 -> m3
//	      contribution 2000 inherits, assoc 4 -> m4
//	    block 201 own room dev-b
//	      contribution 2010 inherits
func fixtureEvent() *model.Event {
	ev := &model.Event{
		ID: 10, Title: "Summit", Start: fixtureStart, End: fixtureEnd,
		Room:         zoomRoom(1, "dev-a"),
		Associations: []*model.VCRoomAssociation{assocOf(1, vcRoom(1, "Opening", "m1"))},
		Contributions: []*model.Contribution{
			{
				ID: 100, Start: fixtureStart, End: fixtureStart.Add(time.Hour), InheritLocation: true,
				Associations: []*model.VCRoomAssociation{assocOf(2, vcRoom(2, "Keynote", "m2"))},
			},
		},
		Sessions: []*model.Session{
			{
				ID: 20, InheritLocation: true,
				Blocks: []*model.SessionBlock{
					{
						ID: 200, Start: fixtureStart, End: fixtureEnd, InheritLocation: true,
						Associations: []*model.VCRoomAssociation{assocOf(3, vcRoom(3, "Track", "m3"))},
						Contributions: []*model.Contribution{
							{
								ID: 2000, Start: fixtureStart, End: fixtureStart.Add(30 * time.Minute), InheritLocation: true,
								Associations: []*model.VCRoomAssociation{assocOf(4, vcRoom(4, "Talk", "m4"))},
							},
						},
					},
					{
						ID: 201, Start: fixtureStart, End: fixtureEnd, Room: zoomRoom(2, "dev-b"),
						Contributions: []*model.Contribution{
							{ID: 2010, Start: fixtureStart, End: fixtureEnd, InheritLocation: true},
						},
					},
				},
			},
		},
	}
	return ev.Link()
}

func ref(t model.ObjectType, id int64) model.ObjectRef {
	return model.ObjectRef{Type: t, ID: id}
}

func int64Ptr(v int64) *int64 { return &v }

func entryActions(entries []model.QueueEntry) []model.Action {
	actions := make([]model.Action, 0, len(entries))
	for _, e := range entries {
		actions = append(actions, e.Action)
	}
	return actions
}
