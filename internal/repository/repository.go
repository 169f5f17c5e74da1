package repository

import "gorm.io/gorm"

// Repository aggregates every data-access interface.
type Repository struct {
	User          UserRepository
	Module        ModuleRepository
	Batch         BatchRepository
	FacultyBatch  FacultyBatchAssignmentRepository
	FacultyModule FacultyModuleAssignmentRepository
	Enrollment    EnrollmentRepository
	TimeSlot      TimeSlotRepository
	Session       SessionRepository
	Attendance    AttendanceRepository
}

// NewRepository builds the aggregate over a single gorm connection.
func NewRepository(db *gorm.DB) *Repository {
	return &Repository{
		User:          NewUserRepo(db),
		Module:        NewModuleRepo(db),
		Batch:         NewBatchRepo(db),
		FacultyBatch:  NewFacultyBatchAssignmentRepo(db),
		FacultyModule: NewFacultyModuleAssignmentRepo(db),
		Enrollment:    NewEnrollmentRepo(db),
		TimeSlot:      NewTimeSlotRepo(db),
		Session:       NewSessionRepo(db),
		Attendance:    NewAttendanceRepo(db),
	}
}
