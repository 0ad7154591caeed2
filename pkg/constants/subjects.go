// Copyright The Linux Foundation and each contributor to LFX.
// SPDX-License-Identifier: MIT

package constants

// NATS subjects carrying change signals from the event management system
const (
	EventUpdatedSubject        = "indico.event.updated"
	SessionUpdatedSubject      = "indico.session.updated"
	SessionBlockUpdatedSubject = "indico.session_block.updated"
	ContributionUpdatedSubject = "indico.contribution.updated"
	TimesChangedSubject        = "indico.timetable.times_changed"

	VCRoomCreatedSubject     = "indico.vc_room.created"
	VCRoomClonedSubject      = "indico.vc_room.cloned"
	VCRoomAttachedSubject    = "indico.vc_room.attached"
	VCRoomDetachedSubject    = "indico.vc_room.detached"
	VCRoomDataUpdatedSubject = "indico.vc_room.data_updated"

	ObjectDeletedSubject = "indico.object.deleted"
)

// SignalSubjects lists every subject the sync service subscribes to
func SignalSubjects() []string {
	return []string{
		EventUpdatedSubject,
		SessionUpdatedSubject,
		SessionBlockUpdatedSubject,
		ContributionUpdatedSubject,
		TimesChangedSubject,
		VCRoomCreatedSubject,
		VCRoomClonedSubject,
		VCRoomAttachedSubject,
		VCRoomDetachedSubject,
		VCRoomDataUpdatedSubject,
		ObjectDeletedSubject,
	}
}
