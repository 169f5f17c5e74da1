package model

import "time"

// Attendance statuses.
const (
	AttendancePresent = "PRESENT"
	AttendanceAbsent  = "ABSENT"
)

// ValidAttendanceStatus reports whether s is a supported status value.
func ValidAttendanceStatus(s string) bool {
	return s == AttendancePresent || s == AttendanceAbsent
}

// AttendanceRecord is one student's attendance for one session. Identity is
// (session_id, student_id): records are created or updated in place, never
// duplicated.
type AttendanceRecord struct {
	AttendanceID string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"     json:"attendance_id"`
	SessionID    string    `gorm:"type:uuid;not null;uniqueIndex:uniq_session_student" json:"session_id"`
	StudentID    string    `gorm:"type:uuid;not null;uniqueIndex:uniq_session_student" json:"student_id"`
	Status       string    `gorm:"type:varchar(10);not null"                          json:"status"`
	MarkedBy     *string   `gorm:"type:uuid"                                          json:"marked_by,omitempty"`
	CreatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                 json:"created_at"`
	UpdatedAt    time.Time `gorm:"not null;default:CURRENT_TIMESTAMP"                 json:"updated_at"`

	Student *User `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
}

// TableName sets the table name.
func (AttendanceRecord) TableName() string { return "attendance_records" }
