package model

import "time"

// Batch is the enrollment and scheduling unit. A batch belongs to one course
// and may carry a default meeting link inherited by its sessions.
type Batch struct {
	BatchID     string    `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"batch_id"`
	CourseID    string    `gorm:"type:uuid;not null"                             json:"course_id"`
	Name        string    `gorm:"type:varchar(100);not null"                     json:"name"`
	StartDate   time.Time `gorm:"type:date;not null"                             json:"start_date"`
	MeetingLink *string   `gorm:"type:varchar(500)"                              json:"meeting_link,omitempty"`
	IsActive    bool      `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	Course *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

// TableName sets the table name.
func (Batch) TableName() string { return "batches" }

// Enrollment links a student to a batch. Rosters are always resolved live
// from active enrollments, never snapshotted onto sessions.
type Enrollment struct {
	EnrollmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"enrollment_id"`
	BatchID      string `gorm:"type:uuid;not null;uniqueIndex:uniq_enrollment" json:"batch_id"`
	StudentID    string `gorm:"type:uuid;not null;uniqueIndex:uniq_enrollment" json:"student_id"`
	IsActive     bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	Student *User `gorm:"foreignKey:StudentID;references:UserID" json:"student,omitempty"`
}

// TableName sets the table name.
func (Enrollment) TableName() string { return "enrollments" }
