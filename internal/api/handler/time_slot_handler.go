package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"acadportal/backend/internal/dto"
	"acadportal/backend/internal/service"
	"acadportal/backend/pkg/response"
)

// TimeSlotHandler serves the recurring template registry.
type TimeSlotHandler struct {
	timeSlotSvc service.TimeSlotService
	conflictSvc service.ConflictService
}

// NewTimeSlotHandler creates a TimeSlotHandler.
func NewTimeSlotHandler(timeSlotSvc service.TimeSlotService, conflictSvc service.ConflictService) *TimeSlotHandler {
	return &TimeSlotHandler{timeSlotSvc: timeSlotSvc, conflictSvc: conflictSvc}
}

// ListTimeSlots lists templates.
// GET /api/v1/time-slots
func (h *TimeSlotHandler) ListTimeSlots(c *gin.Context) {
	var req dto.TimeSlotListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	slots, err := h.timeSlotSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": slots})
}

// GetTimeSlot returns one template.
// GET /api/v1/time-slots/:id
func (h *TimeSlotHandler) GetTimeSlot(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "time slot id must not be empty")
		return
	}

	slot, err := h.timeSlotSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleTimeSlotError(c, err)
		return
	}

	response.OK(c, slot)
}

// CreateTimeSlot creates a template after eligibility and conflict checks.
// POST /api/v1/time-slots
func (h *TimeSlotHandler) CreateTimeSlot(c *gin.Context) {
	var req dto.CreateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	slot, err := h.timeSlotSvc.Create(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleTimeSlotError(c, err)
		return
	}

	response.Created(c, slot)
}

// UpdateTimeSlot edits a template; the edited slot never conflicts with
// itself and its current module/faculty remain selectable.
// PUT /api/v1/time-slots/:id
func (h *TimeSlotHandler) UpdateTimeSlot(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "time slot id must not be empty")
		return
	}

	var req dto.UpdateTimeSlotRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	slot, err := h.timeSlotSvc.Update(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleTimeSlotError(c, err)
		return
	}

	response.OK(c, slot)
}

// DeleteTimeSlot soft-deletes a template; existing sessions are untouched.
// DELETE /api/v1/time-slots/:id
func (h *TimeSlotHandler) DeleteTimeSlot(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "time slot id must not be empty")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.timeSlotSvc.Delete(c.Request.Context(), id, callerID); err != nil {
		h.handleTimeSlotError(c, err)
		return
	}

	response.OK(c, nil)
}

// CheckConflict runs an advisory conflict check for a proposed slot.
// POST /api/v1/time-slots/check-conflict
func (h *TimeSlotHandler) CheckConflict(c *gin.Context) {
	var req dto.ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	result, err := h.conflictSvc.Check(c.Request.Context(), &req)
	if err != nil {
		h.handleTimeSlotError(c, err)
		return
	}

	response.OK(c, result)
}

func (h *TimeSlotHandler) handleTimeSlotError(c *gin.Context, err error) {
	var conflictErr *service.ConflictError

	switch {
	case errors.Is(err, service.ErrTimeSlotNotFound):
		response.NotFound(c, 15001, "time slot not found")
	case errors.Is(err, service.ErrInvalidTimeRange):
		response.BadRequest(c, 15002, "start time must be earlier than end time")
	case errors.Is(err, service.ErrPairNotEligible):
		response.BadRequest(c, 15003, "module/faculty pair is not eligible for this batch")
	case errors.As(err, &conflictErr):
		c.JSON(http.StatusConflict, response.Response{
			Code:    15004,
			Message: conflictErr.Error(),
			Data:    gin.H{"conflicts": conflictErr.Conflicts},
		})
	case errors.Is(err, service.ErrBatchNotFound):
		response.BadRequest(c, 15005, "batch not found")
	default:
		response.InternalError(c)
	}
}
