package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brandvault/brandvault-backend/internal/platform/logger"
	"github.com/brandvault/brandvault-backend/internal/services"
	"github.com/brandvault/brandvault-backend/internal/types"
)

type AnalyticsHandler struct {
	log            *logger.Logger
	libraryService services.LibraryService
}

func NewAnalyticsHandler(log *logger.Logger, lsvc services.LibraryService) *AnalyticsHandler {
	return &AnalyticsHandler{
		log:            log.With("handler", "AnalyticsHandler"),
		libraryService: lsvc,
	}
}

// GET /api/analytics
func (h *AnalyticsHandler) GetSummary(c *gin.Context) {
	RespondOK(c, gin.H{"summary": h.libraryService.Analytics(c.Request.Context())})
}

// GET /api/settings
func (h *AnalyticsHandler) GetSettings(c *gin.Context) {
	RespondOK(c, gin.H{"settings": h.libraryService.Settings(c.Request.Context())})
}

// PUT /api/settings
func (h *AnalyticsHandler) UpdateSettings(c *gin.Context) {
	var s types.Settings
	if err := c.ShouldBindJSON(&s); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.libraryService.SetSettings(c.Request.Context(), s); err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"settings": s})
}
