package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"acadportal/backend/internal/dto"
	"acadportal/backend/internal/service"
	"acadportal/backend/pkg/response"
)

// SessionHandler serves materialization and the session lifecycle.
type SessionHandler struct {
	sessionSvc service.SessionService
}

// NewSessionHandler creates a SessionHandler.
func NewSessionHandler(sessionSvc service.SessionService) *SessionHandler {
	return &SessionHandler{sessionSvc: sessionSvc}
}

// Materialize expands active slot templates into dated sessions. Idempotent:
// existing (slot, date) pairs are skipped and counted.
// POST /api/v1/sessions/materialize
func (h *SessionHandler) Materialize(c *gin.Context) {
	var req dto.MaterializeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	result, err := h.sessionSvc.Materialize(c.Request.Context(), &req, callerID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, result)
}

// ListSessions lists dated sessions.
// GET /api/v1/sessions
func (h *SessionHandler) ListSessions(c *gin.Context) {
	var req dto.SessionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	sessions, err := h.sessionSvc.List(c.Request.Context(), &req)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, gin.H{"list": sessions})
}

// GetSession returns one session.
// GET /api/v1/sessions/:id
func (h *SessionHandler) GetSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "session id must not be empty")
		return
	}

	session, err := h.sessionSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// UpdateStatus cancels or reschedules a session. COMPLETED is not accepted
// here; it happens through attendance save.
// PUT /api/v1/sessions/:id/status
func (h *SessionHandler) UpdateStatus(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "session id must not be empty")
		return
	}

	var req dto.UpdateSessionStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "invalid request payload")
		return
	}

	callerID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	session, err := h.sessionSvc.UpdateStatus(c.Request.Context(), id, &req, callerID)
	if err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, session)
}

// DeleteSession removes a future scheduled session.
// DELETE /api/v1/sessions/:id
func (h *SessionHandler) DeleteSession(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "session id must not be empty")
		return
	}

	if err := h.sessionSvc.Delete(c.Request.Context(), id); err != nil {
		h.handleSessionError(c, err)
		return
	}

	response.OK(c, nil)
}

func (h *SessionHandler) handleSessionError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrSessionNotFound):
		response.NotFound(c, 16001, "session not found")
	case errors.Is(err, service.ErrInvalidDateRange):
		response.BadRequest(c, 16002, "start date must not be after end date")
	case errors.Is(err, service.ErrDateRangeTooLong):
		response.BadRequest(c, 16003, "date range exceeds the materialization limit")
	case errors.Is(err, service.ErrInvalidTransition):
		response.Conflict(c, 16004, "session status does not allow this transition")
	case errors.Is(err, service.ErrSessionNotDeletable):
		response.Conflict(c, 16005, "only future scheduled sessions can be deleted")
	case errors.Is(err, service.ErrCompletedViaEndpoint):
		response.BadRequest(c, 16006, "sessions complete through attendance save")
	default:
		response.InternalError(c)
	}
}
