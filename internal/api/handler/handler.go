package handler

import "acadportal/backend/internal/service"

// Handler aggregates every HTTP handler.
type Handler struct {
	Auth       *AuthHandler
	Batch      *BatchHandler
	TimeSlot   *TimeSlotHandler
	Session    *SessionHandler
	Attendance *AttendanceHandler
	Export     *ExportHandler
}

// NewHandler builds the handler aggregate over the service layer.
func NewHandler(svc *service.Service) *Handler {
	return &Handler{
		Auth:       NewAuthHandler(svc.Auth),
		Batch:      NewBatchHandler(svc.Batch, svc.Eligibility),
		TimeSlot:   NewTimeSlotHandler(svc.TimeSlot, svc.Conflict),
		Session:    NewSessionHandler(svc.Session),
		Attendance: NewAttendanceHandler(svc.Attendance),
		Export:     NewExportHandler(svc.Export),
	}
}
