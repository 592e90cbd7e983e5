package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brandvault/brandvault-backend/internal/platform/logger"
	"github.com/brandvault/brandvault-backend/internal/services"
)

type ExportHandler struct {
	log           *logger.Logger
	exportService services.ExportService
}

func NewExportHandler(log *logger.Logger, esvc services.ExportService) *ExportHandler {
	return &ExportHandler{
		log:           log.With("handler", "ExportHandler"),
		exportService: esvc,
	}
}

// POST /api/export/report
func (h *ExportHandler) MetadataReport(c *gin.Context) {
	var body struct {
		AssetIDs []uuid.UUID `json:"asset_ids"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	report, err := h.exportService.MetadataReport(c.Request.Context(), body.AssetIDs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(report))
}

// POST /api/export/archive
func (h *ExportHandler) Archive(c *gin.Context) {
	var body struct {
		AssetIDs []uuid.UUID `json:"asset_ids"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	archive, err := h.exportService.Archive(c.Request.Context(), body.AssetIDs)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	name := fmt.Sprintf("brand-assets-%s.zip", time.Now().UTC().Format("20060102-150405"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	c.Data(http.StatusOK, "application/zip", archive)
}
