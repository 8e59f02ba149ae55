package handler

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	"dbtrain-backend/internal/domains/report/export"
	"dbtrain-backend/internal/domains/report/service"
	"dbtrain-backend/internal/shared/response"
)

type ReportHandler struct {
	service service.ServiceInterface
}

func NewReportHandler(svc service.ServiceInterface) *ReportHandler {
	return &ReportHandler{service: svc}
}

// Get - GET /api/v1/report
func (h *ReportHandler) Get(c *gin.Context) {
	report, err := h.service.Build(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, report)
}

// GetSnapshot - GET /api/v1/report/snapshot
func (h *ReportHandler) GetSnapshot(c *gin.Context) {
	report, err := h.service.Snapshot(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusOK, report)
}

// RequestSnapshot - POST /api/v1/report/snapshot
func (h *ReportHandler) RequestSnapshot(c *gin.Context) {
	taskID, err := h.service.RequestSnapshot(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	response.Success(c, http.StatusAccepted, gin.H{"task_id": taskID})
}

// Export - GET /api/v1/report/export
func (h *ReportHandler) Export(c *gin.Context) {
	report, err := h.service.Build(c.Request.Context())
	if err != nil {
		response.FromError(c, err)
		return
	}

	data, err := export.Bytes(report)
	if err != nil {
		response.FromError(c, err)
		return
	}

	filename := fmt.Sprintf("report_%s.xlsx", report.GeneratedAt.Format("20060102_150405"))
	c.Header("Content-Disposition", fmt.Sprintf(`attachment; filename="%s"`, filename))
	c.Data(http.StatusOK, export.ContentType, data)
}
