package handler

import (
	"net/http"
	"net/url"
	"time"

	"github.com/gin-gonic/gin"

	"acadportal/backend/internal/dto"
	"acadportal/backend/internal/service"
	"acadportal/backend/pkg/response"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// ExportHandler serves downloadable session exports.
type ExportHandler struct {
	exportSvc service.ExportService
}

// NewExportHandler creates an ExportHandler.
func NewExportHandler(exportSvc service.ExportService) *ExportHandler {
	return &ExportHandler{exportSvc: exportSvc}
}

// ExportSessionsXLSX downloads the filtered session list as a workbook.
// GET /api/v1/export/sessions
func (h *ExportHandler) ExportSessionsXLSX(c *gin.Context) {
	var req dto.SessionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	buf, err := h.exportSvc.SessionsXLSX(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	filename := "sessions-" + time.Now().Format("2006-01-02") + ".xlsx"
	c.Header("Content-Description", "File Transfer")
	c.Header("Content-Disposition", "attachment; filename*=UTF-8''"+url.QueryEscape(filename))
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// ExportSessionsICS serves the filtered session list as an iCalendar feed.
// GET /api/v1/export/sessions.ics
func (h *ExportHandler) ExportSessionsICS(c *gin.Context) {
	var req dto.SessionListRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		response.BadRequest(c, 10001, "invalid query parameters")
		return
	}

	feed, err := h.exportSvc.SessionsICS(c.Request.Context(), &req)
	if err != nil {
		response.InternalError(c)
		return
	}

	c.Header("Content-Disposition", "attachment; filename=sessions.ics")
	c.Data(http.StatusOK, "text/calendar; charset=utf-8", []byte(feed))
}
