// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package model

import "time"

var (
	testStart = time.Date(2026, 3, 2, 9, 0, 0, 0, time.UTC)
	testEnd   = time.Date(2026, 3, 2, 17, 0, 0, 0, time.UTC)
)

func zoomRoom(id int64, device string) *Room {
	return &Room{
		ID:         id,
		Name:       "Room",
		Attributes: map[string]string{"zoom-rooms-calendar-id": device},
	}
}

func plainRoom(id int64) *Room {
	return &Room{ID: id, Name: "Plain room"}
}

func zoomAssoc(id int64, meeting string) *VCRoomAssociation {
	return &VCRoomAssociation{
		ID: id,
		VCRoom: &VCRoom{
			ID:   id * 10,
			Type: "zoom",
			Name: "Meeting " + meeting,
			Data: VCRoomData{URL: "https://zoom.example/j/" + meeting, ZoomID: meeting},
		},
	}
}

// testEvent builds:
//
//	event 1 (room dev-event) assoc 100
//	  contribution 11 inherits, assoc 111
//	  contribution 12 own room dev-other, assoc 112
//	  session 2 inherits
//	    block 21 inherits, assoc 121
//	      contribution 211 inherits, assoc 1211
//	      contribution 212 own plain room, assoc 1212
//	    block 22 own room dev-block, assoc 122
//	      contribution 221 inherits, assoc 1221
//	  session 3 own room dev-session
//	    block 31 inherits, assoc 131
func testEvent() *Event {
	ev := &Event{
		ID: 1, Title: "Conference", Start: testStart, End: testEnd,
		Room:         zoomRoom(1, "dev-event"),
		Associations: []*VCRoomAssociation{zoomAssoc(100, "m100")},
		Contributions: []*Contribution{
			{ID: 11, Start: testStart, End: testEnd, InheritLocation: true, Associations: []*VCRoomAssociation{zoomAssoc(111, "m111")}},
			{ID: 12, Start: testStart, End: testEnd, Room: zoomRoom(2, "dev-other"), Associations: []*VCRoomAssociation{zoomAssoc(112, "m112")}},
		},
		Sessions: []*Session{
			{
				ID: 2, InheritLocation: true,
				Blocks: []*SessionBlock{
					{
						ID: 21, Start: testStart, End: testEnd, InheritLocation: true,
						Associations: []*VCRoomAssociation{zoomAssoc(121, "m121")},
						Contributions: []*Contribution{
							{ID: 211, Start: testStart, End: testEnd, InheritLocation: true, Associations: []*VCRoomAssociation{zoomAssoc(1211, "m1211")}},
							{ID: 212, Start: testStart, End: testEnd, Room: plainRoom(3), Associations: []*VCRoomAssociation{zoomAssoc(1212, "m1212")}},
						},
					},
					{
						ID: 22, Start: testStart, End: testEnd, Room: zoomRoom(4, "dev-block"),
						Associations: []*VCRoomAssociation{zoomAssoc(122, "m122")},
						Contributions: []*Contribution{
							{ID: 221, Start: testStart, End: testEnd, InheritLocation: true, Associations: []*VCRoomAssociation{zoomAssoc(1221, "m1221")}},
						},
					},
				},
			},
			{
				ID: 3, Room: zoomRoom(5, "dev-session"),
				Blocks: []*SessionBlock{
					{ID: 31, Start: testStart, End: testEnd, InheritLocation: true, Associations: []*VCRoomAssociation{zoomAssoc(131, "m131")}},
				},
			},
		},
	}
	return ev.Link()
}

func assocIDs(assocs []*VCRoomAssociation) []int64 {
	ids := make([]int64, 0, len(assocs))
	for _, a := range assocs {
		ids = append(ids, a.ID)
	}
	return ids
}
