package dto

// RosterStudent is one enrolled student with their working attendance status.
// Status defaults to PRESENT when no saved record exists yet: attendance by
// default, absence takes an explicit action.
type RosterStudent struct {
	StudentID string `json:"student_id"`
	Name      string `json:"name"`
	Status    string `json:"status"`
	Saved     bool   `json:"saved"` // whether a stored record backs this status
}

// AttendanceStats summarizes saved attendance for a session.
type AttendanceStats struct {
	TotalEnrolled int `json:"total_enrolled"`
	PresentCount  int `json:"present_count"`
	AbsentCount   int `json:"absent_count"`
	// AttendancePercentage is present/(present+absent) rounded to the
	// nearest integer, 0 when nothing is marked yet.
	AttendancePercentage int `json:"attendance_percentage"`
}

// RosterResponse is the live roster for marking. IsMarkingAllowed is the sole
// gate clients may rely on; it is computed from the session record, never
// inferred from status alone.
type RosterResponse struct {
	SessionID        string          `json:"session_id"`
	Students         []RosterStudent `json:"students"`
	Stats            AttendanceStats `json:"stats"`
	IsMarkingAllowed bool            `json:"is_marking_allowed"`
	Message          string          `json:"message,omitempty"`
}

// AttendanceEntry is one student's status in a save request.
type AttendanceEntry struct {
	StudentID string `json:"student_id" binding:"required,uuid"`
	Status    string `json:"status"     binding:"required,oneof=PRESENT ABSENT"`
}

// SaveAttendanceRequest is the idempotent bulk upsert payload.
type SaveAttendanceRequest struct {
	Attendance []AttendanceEntry `json:"attendance" binding:"required,min=1,dive"`
}

// SaveAttendanceResponse reports separate created/updated counts for audit.
type SaveAttendanceResponse struct {
	Created       int    `json:"created"`
	Updated       int    `json:"updated"`
	SessionStatus string `json:"session_status"`
}
