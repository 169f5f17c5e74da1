package dto

// CreateTimeSlotRequest creates a recurring weekly template.
type CreateTimeSlotRequest struct {
	BatchID   string `json:"batch_id"    binding:"required,uuid"`
	ModuleID  string `json:"module_id"   binding:"required,uuid"`
	FacultyID string `json:"faculty_id"  binding:"required,uuid"`
	DayOfWeek int    `json:"day_of_week" binding:"required,min=1,max=7"`
	StartTime string `json:"start_time"  binding:"required"` // "09:00"
	EndTime   string `json:"end_time"    binding:"required"` // "10:30"
}

// UpdateTimeSlotRequest edits a template. Omitted fields keep their values.
type UpdateTimeSlotRequest struct {
	ModuleID  *string `json:"module_id"   binding:"omitempty,uuid"`
	FacultyID *string `json:"faculty_id"  binding:"omitempty,uuid"`
	DayOfWeek *int    `json:"day_of_week" binding:"omitempty,min=1,max=7"`
	StartTime *string `json:"start_time"`
	EndTime   *string `json:"end_time"`
	IsActive  *bool   `json:"is_active"`
}

// TimeSlotListRequest filters the template listing.
type TimeSlotListRequest struct {
	BatchID   string `form:"batch_id"    binding:"omitempty,uuid"`
	FacultyID string `form:"faculty_id"  binding:"omitempty,uuid"`
	DayOfWeek *int   `form:"day_of_week" binding:"omitempty,min=1,max=7"`
}

// TimeSlotResponse is the template detail view.
type TimeSlotResponse struct {
	ID        string        `json:"id"`
	Batch     *BatchBrief   `json:"batch,omitempty"`
	Module    *ModuleBrief  `json:"module,omitempty"`
	Faculty   *FacultyBrief `json:"faculty,omitempty"`
	DayOfWeek int           `json:"day_of_week"`
	StartTime string        `json:"start_time"`
	EndTime   string        `json:"end_time"`
	IsActive  bool          `json:"is_active"`
	CreatedAt string        `json:"created_at"`
	UpdatedAt string        `json:"updated_at"`
}

// ── conflict detection ──

// ConflictCheckRequest is a proposed (or edited) slot to validate.
type ConflictCheckRequest struct {
	FacultyID     string `json:"faculty_id"      binding:"required,uuid"`
	BatchID       string `json:"batch_id"        binding:"required,uuid"`
	DayOfWeek     int    `json:"day_of_week"     binding:"required,min=1,max=7"`
	StartTime     string `json:"start_time"      binding:"required"`
	EndTime       string `json:"end_time"        binding:"required"`
	ExcludeSlotID string `json:"exclude_slot_id" binding:"omitempty,uuid"`
}

// ConflictSummary names one colliding commitment so the caller can render an
// actionable message, never just a boolean.
type ConflictSummary struct {
	SlotID     string `json:"slot_id"`
	Kind       string `json:"kind"` // "faculty" | "batch"
	BatchName  string `json:"batch_name"`
	ModuleName string `json:"module_name"`
	StartTime  string `json:"start_time"`
	EndTime    string `json:"end_time"`
}

// ConflictCheckResponse is the detector's verdict.
type ConflictCheckResponse struct {
	HasConflict bool              `json:"has_conflict"`
	Conflicts   []ConflictSummary `json:"conflicts"`
}
