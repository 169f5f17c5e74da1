package model

// TimeSlot is a recurring weekly teaching template: batch + module + faculty
// on a weekday (1=Monday … 7=Sunday) between two clock times ("HH:MM").
//
// Invariant (enforced by the conflict detector before any commit): for a
// given faculty and day, and likewise for a given batch and day, no two
// active slots' time ranges overlap. The (module, faculty) pair must pass
// eligibility at create/edit time but is not retroactively invalidated when
// assignments later change.
type TimeSlot struct {
	TimeSlotID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"time_slot_id"`
	BatchID    string `gorm:"type:uuid;not null"                             json:"batch_id"`
	ModuleID   string `gorm:"type:uuid;not null"                             json:"module_id"`
	FacultyID  string `gorm:"type:uuid;not null"                             json:"faculty_id"`
	DayOfWeek  int    `gorm:"type:smallint;not null"                         json:"day_of_week"`
	StartTime  string `gorm:"type:time;not null"                             json:"start_time"`
	EndTime    string `gorm:"type:time;not null"                             json:"end_time"`
	IsActive   bool   `gorm:"not null;default:true"                          json:"is_active"`
	SoftDeleteModel

	Batch   *Batch  `gorm:"foreignKey:BatchID;references:BatchID"     json:"batch,omitempty"`
	Module  *Module `gorm:"foreignKey:ModuleID;references:ModuleID"   json:"module,omitempty"`
	Faculty *User   `gorm:"foreignKey:FacultyID;references:UserID"    json:"faculty,omitempty"`
}

// TableName sets the table name.
func (TimeSlot) TableName() string { return "time_slots" }
