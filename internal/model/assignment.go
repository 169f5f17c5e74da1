package model

// FacultyBatchAssignment says "this faculty may be scheduled for this batch".
type FacultyBatchAssignment struct {
	AssignmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"  json:"assignment_id"`
	FacultyID    string `gorm:"type:uuid;not null;uniqueIndex:uniq_faculty_batch" json:"faculty_id"`
	BatchID      string `gorm:"type:uuid;not null;uniqueIndex:uniq_faculty_batch" json:"batch_id"`
	IsActive     bool   `gorm:"not null;default:true"                           json:"is_active"`
	BaseModel

	Faculty *User `gorm:"foreignKey:FacultyID;references:UserID" json:"faculty,omitempty"`
}

// TableName sets the table name.
func (FacultyBatchAssignment) TableName() string { return "faculty_batch_assignments" }

// FacultyModuleAssignment says "this faculty is qualified to teach this module".
type FacultyModuleAssignment struct {
	AssignmentID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"   json:"assignment_id"`
	FacultyID    string `gorm:"type:uuid;not null;uniqueIndex:uniq_faculty_module" json:"faculty_id"`
	ModuleID     string `gorm:"type:uuid;not null;uniqueIndex:uniq_faculty_module" json:"module_id"`
	IsActive     bool   `gorm:"not null;default:true"                            json:"is_active"`
	BaseModel

	Faculty *User   `gorm:"foreignKey:FacultyID;references:UserID"   json:"faculty,omitempty"`
	Module  *Module `gorm:"foreignKey:ModuleID;references:ModuleID"  json:"module,omitempty"`
}

// TableName sets the table name.
func (FacultyModuleAssignment) TableName() string { return "faculty_module_assignments" }
