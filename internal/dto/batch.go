package dto

// BatchListRequest filters the batch listing.
type BatchListRequest struct {
	CourseID string `form:"course_id" binding:"omitempty,uuid"`
	Active   *bool  `form:"active"`
}

// BatchResponse is the batch detail view.
type BatchResponse struct {
	ID          string  `json:"id"`
	CourseID    string  `json:"course_id"`
	CourseName  string  `json:"course_name,omitempty"`
	Name        string  `json:"name"`
	StartDate   string  `json:"start_date"`
	MeetingLink *string `json:"meeting_link,omitempty"`
	IsActive    bool    `json:"is_active"`
	CreatedAt   string  `json:"created_at"`
	UpdatedAt   string  `json:"updated_at"`
}
