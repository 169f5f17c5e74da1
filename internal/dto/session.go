package dto

// MaterializeRequest expands active slots into dated sessions over a range.
// Scope narrows by batch or faculty when given; dates are "2006-01-02".
type MaterializeRequest struct {
	BatchID   string `json:"batch_id"   binding:"omitempty,uuid"`
	FacultyID string `json:"faculty_id" binding:"omitempty,uuid"`
	StartDate string `json:"start_date" binding:"required"`
	EndDate   string `json:"end_date"   binding:"required"`
}

// MaterializeResponse reports what the expansion produced.
type MaterializeResponse struct {
	Created  int               `json:"created"`
	Skipped  int               `json:"skipped"` // already materialized (slot, date) pairs
	Sessions []SessionResponse `json:"sessions"`
}

// SessionListRequest filters the session listing.
type SessionListRequest struct {
	BatchID   string `form:"batch_id"   binding:"omitempty,uuid"`
	FacultyID string `form:"faculty_id" binding:"omitempty,uuid"`
	DateFrom  string `form:"date_from"`
	DateTo    string `form:"date_to"`
	Status    string `form:"status" binding:"omitempty,oneof=SCHEDULED CANCELLED RESCHEDULED COMPLETED"`
}

// UpdateSessionStatusRequest moves a session to a terminal status. Only
// cancel and reschedule are explicit; COMPLETED happens via attendance save.
type UpdateSessionStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=CANCELLED RESCHEDULED"`
}

// SessionResponse is the session detail view.
type SessionResponse struct {
	ID               string        `json:"id"`
	TimeSlotID       string        `json:"time_slot_id"`
	Batch            *BatchBrief   `json:"batch,omitempty"`
	Module           *ModuleBrief  `json:"module,omitempty"`
	Faculty          *FacultyBrief `json:"faculty,omitempty"`
	SessionDate      string        `json:"session_date"`
	ScheduledStart   string        `json:"scheduled_start"`
	ScheduledEnd     string        `json:"scheduled_end"`
	Status           string        `json:"status"`
	AttendanceMarked bool          `json:"attendance_marked"`
	MeetingLink      string        `json:"meeting_link,omitempty"`
	// PastDue flags a SCHEDULED session whose scheduled end has elapsed.
	// Display-only: the status field itself never auto-transitions.
	PastDue   bool   `json:"past_due"`
	CreatedAt string `json:"created_at"`
	UpdatedAt string `json:"updated_at"`
}
