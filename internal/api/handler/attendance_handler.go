package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"acadportal/backend/internal/dto"
	"acadportal/backend/internal/service"
	"acadportal/backend/pkg/response"
)

// AttendanceHandler serves rosters and attendance saves.
type AttendanceHandler struct {
	attendanceSvc service.AttendanceService
}

// NewAttendanceHandler creates an AttendanceHandler.
func NewAttendanceHandler(attendanceSvc service.AttendanceService) *AttendanceHandler {
	return &AttendanceHandler{attendanceSvc: attendanceSvc}
}

// GetRoster returns the live roster with saved statuses overlaid.
// GET /api/v1/sessions/:id/attendance
func (h *AttendanceHandler) GetRoster(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "session id must not be empty")
		return
	}

	roster, err := h.attendanceSvc.GetRoster(c.Request.Context(), id)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, roster)
}

// SaveAttendance upserts the submitted records and completes the session.
// POST /api/v1/sessions/:id/attendance
func (h *AttendanceHandler) SaveAttendance(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "session id must not be empty")
		return
	}

	var req dto.SaveAttendanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}
	callerRole, ok := MustGetRole(c)
	if !ok {
		return
	}

	result, err := h.attendanceSvc.Save(c.Request.Context(), id, &req, callerID, callerRole)
	if err != nil {
		h.handleAttendanceError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *AttendanceHandler) handleAttendanceError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 16001, "session not found")
	case errors.Is(err, service.ErrMarkingNotAllowed):
		response.Conflict(c, 17001, err.Error())
	case errors.Is(err, service.ErrStudentNotEnrolled):
		response.BadRequest(c, 17002, err.Error())
	case errors.Is(err, service.ErrNotSessionFaculty):
		response.Forbidden(c, 17003, err.Error())
	default:
		response.InternalError(c)
	}
}
