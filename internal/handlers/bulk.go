package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brandvault/brandvault-backend/internal/platform/logger"
	"github.com/brandvault/brandvault-backend/internal/services"
)

type BulkHandler struct {
	log         *logger.Logger
	bulkService services.BulkService
}

func NewBulkHandler(log *logger.Logger, bsvc services.BulkService) *BulkHandler {
	return &BulkHandler{
		log:         log.With("handler", "BulkHandler"),
		bulkService: bsvc,
	}
}

// POST /api/assets/bulk
// Per-item failures come back in the result body; the request itself only
// fails on a malformed operation or an empty selection.
func (h *BulkHandler) Apply(c *gin.Context) {
	var req services.BulkRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	res, err := h.bulkService.Apply(c.Request.Context(), req)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	status := http.StatusOK
	if res.Failed > 0 {
		status = http.StatusMultiStatus
	}
	c.JSON(status, gin.H{"result": res})
}
