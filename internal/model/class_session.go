package model

import "time"

// Session statuses. SCHEDULED is the only initial state; the other three are
// terminal. COMPLETED is reached exclusively through a successful attendance
// save; there is no separate "end class" action.
const (
	SessionScheduled   = "SCHEDULED"
	SessionCancelled   = "CANCELLED"
	SessionRescheduled = "RESCHEDULED"
	SessionCompleted   = "COMPLETED"
)

// ClassSession is one dated occurrence materialized from a TimeSlot.
// Identity is unique per (time_slot_id, session_date), which is what makes
// materialization idempotent.
type ClassSession struct {
	SessionID        string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"   json:"session_id"`
	TimeSlotID       string    `gorm:"type:uuid;not null;uniqueIndex:uniq_slot_date"    json:"time_slot_id"`
	SessionDate      time.Time `gorm:"type:date;not null;uniqueIndex:uniq_slot_date"    json:"session_date"`
	ScheduledStart   string    `gorm:"type:time;not null"                               json:"scheduled_start"`
	ScheduledEnd     string    `gorm:"type:time;not null"                               json:"scheduled_end"`
	Status           string    `gorm:"type:varchar(20);not null;default:'SCHEDULED'"    json:"status"`
	AttendanceMarked bool      `gorm:"not null;default:false"                           json:"attendance_marked"`
	MeetingLink      *string   `gorm:"type:varchar(500)"                                json:"meeting_link,omitempty"`
	BaseModel

	TimeSlot *TimeSlot `gorm:"foreignKey:TimeSlotID;references:TimeSlotID" json:"time_slot,omitempty"`
}

// TableName sets the table name.
func (ClassSession) TableName() string { return "class_sessions" }

// CanTransitionTo reports whether the state machine allows moving to target.
// Only SCHEDULED sessions move at all; every other status is terminal.
func (s *ClassSession) CanTransitionTo(target string) bool {
	if s.Status != SessionScheduled {
		return false
	}
	switch target {
	case SessionCancelled, SessionRescheduled, SessionCompleted:
		return true
	default:
		return false
	}
}

// EffectiveMeetingLink returns the session's own link when set, otherwise the
// batch default carried by the originating slot.
func (s *ClassSession) EffectiveMeetingLink() string {
	if s.MeetingLink != nil && *s.MeetingLink != "" {
		return *s.MeetingLink
	}
	if s.TimeSlot != nil && s.TimeSlot.Batch != nil && s.TimeSlot.Batch.MeetingLink != nil {
		return *s.TimeSlot.Batch.MeetingLink
	}
	return ""
}
