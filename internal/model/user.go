package model

// User roles.
const (
	RoleAdmin   = "admin"
	RoleFaculty = "faculty"
	RoleStudent = "student"
)

// User is any portal account: admins schedule, faculty teach and mark
// attendance, students appear on rosters.
type User struct {
	UserID   string `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"user_id"`
	Name     string `gorm:"type:varchar(100);not null"                     json:"name"`
	Email    string `gorm:"type:varchar(255);not null;uniqueIndex"         json:"email"`
	Password string `gorm:"type:varchar(255);not null"                     json:"-"`
	Role     string `gorm:"type:varchar(20);not null"                      json:"role"`
	IsActive bool   `gorm:"not null;default:true"                          json:"is_active"`
	BaseModel
}

// TableName sets the table name.
func (User) TableName() string { return "users" }
