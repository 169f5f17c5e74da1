package model

// Course is the catalog owner of modules; batches enroll into a course.
type Course struct {
	CourseID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"course_id"`
	Name     string `gorm:"type:varchar(150);not null"                     json:"name"`
	Code     string `gorm:"type:varchar(30);not null;uniqueIndex"          json:"code"`
	IsActive bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName sets the table name.
func (Course) TableName() string { return "courses" }

// Module is a teachable unit of a course. Faculty qualify per module via
// FacultyModuleAssignment.
type Module struct {
	ModuleID string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"module_id"`
	CourseID string `gorm:"type:uuid;not null"                             json:"course_id"`
	Name     string `gorm:"type:varchar(150);not null"                     json:"name"`
	Code     string `gorm:"type:varchar(30);not null"                      json:"code"`
	IsActive bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel

	Course *Course `gorm:"foreignKey:CourseID;references:CourseID" json:"course,omitempty"`
}

// TableName sets the table name.
func (Module) TableName() string { return "modules" }
