package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"acadportal/backend/internal/dto"
	"acadportal/backend/internal/service"
	"acadportal/backend/pkg/response"
)

// BatchHandler serves batch reads and the eligibility endpoint.
type BatchHandler struct {
	batchSvc       service.BatchService
	eligibilitySvc service.EligibilityService
}

// NewBatchHandler creates a BatchHandler.
func NewBatchHandler(batchSvc service.BatchService, eligibilitySvc service.EligibilityService) *BatchHandler {
	return &BatchHandler{batchSvc: batchSvc, eligibilitySvc: eligibilitySvc}
}

// ListBatches lists batches.
// GET /api/v1/batches
func (h *BatchHandler) ListBatches(c *gin.Context) {
	var req dto.BatchListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	batches, err := h.batchSvc.List(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, gin.H{"list": batches})
}

// GetBatch returns one batch.
// GET /api/v1/batches/:id
func (h *BatchHandler) GetBatch(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "batch id must not be empty")
		return
	}

	batch, err := h.batchSvc.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleBatchError(c, err)
		return
	}

	response.OK(c, batch)
}

// GetEligibility returns the modules and faculty schedulable for a batch.
// Pass slot_id when editing an existing slot so its current selection stays
// visible.
// GET /api/v1/batches/:id/eligibility?slot_id=xxx
func (h *BatchHandler) GetEligibility(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		response.BadRequest(c, 10001, "batch id must not be empty")
		return
	}

	var req dto.EligibilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	resolved, err := h.eligibilitySvc.Resolve(c.Request.Context(), id, req.SlotID)
	if err != nil {
		h.handleBatchError(c, err)
		return
	}

	response.OK(c, resolved)
}

func (h *BatchHandler) handleBatchError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, service.ErrBatchNotFound):
		response.NotFound(c, 12001, "batch not found")
	default:
		response.InternalError(c)
	}
}
