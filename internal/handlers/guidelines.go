package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brandvault/brandvault-backend/internal/platform/logger"
	"github.com/brandvault/brandvault-backend/internal/services"
	"github.com/brandvault/brandvault-backend/internal/types"
)

type GuidelinesHandler struct {
	log            *logger.Logger
	libraryService services.LibraryService
}

func NewGuidelinesHandler(log *logger.Logger, lsvc services.LibraryService) *GuidelinesHandler {
	return &GuidelinesHandler{
		log:            log.With("handler", "GuidelinesHandler"),
		libraryService: lsvc,
	}
}

// POST /api/guidelines
func (h *GuidelinesHandler) CreateGuidelines(c *gin.Context) {
	var in types.Guidelines
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	g, err := h.libraryService.CreateGuidelines(c.Request.Context(), &in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"guidelines": g})
}

// GET /api/guidelines?client_id=...
func (h *GuidelinesHandler) ListGuidelines(c *gin.Context) {
	list := h.libraryService.ListGuidelines(c.Request.Context(), c.Query("client_id"))
	RespondOK(c, gin.H{"guidelines": list, "count": len(list)})
}

// GET /api/guidelines/:id
func (h *GuidelinesHandler) GetGuidelines(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	g, err := h.libraryService.GetGuidelines(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"guidelines": g})
}

// PATCH /api/guidelines/:id
func (h *GuidelinesHandler) UpdateGuidelines(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var upd types.GuidelinesUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	g, err := h.libraryService.UpdateGuidelines(c.Request.Context(), id, upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"guidelines": g})
}

// DELETE /api/guidelines/:id
func (h *GuidelinesHandler) DeleteGuidelines(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.libraryService.DeleteGuidelines(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
