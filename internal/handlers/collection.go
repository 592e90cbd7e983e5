package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brandvault/brandvault-backend/internal/platform/logger"
	"github.com/brandvault/brandvault-backend/internal/services"
)

type CollectionHandler struct {
	log            *logger.Logger
	libraryService services.LibraryService
}

func NewCollectionHandler(log *logger.Logger, lsvc services.LibraryService) *CollectionHandler {
	return &CollectionHandler{
		log:            log.With("handler", "CollectionHandler"),
		libraryService: lsvc,
	}
}

// POST /api/collections
func (h *CollectionHandler) CreateCollection(c *gin.Context) {
	var body struct {
		ClientID    string `json:"client_id"`
		Name        string `json:"name"`
		Description string `json:"description,omitempty"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	col, err := h.libraryService.CreateCollection(c.Request.Context(), body.ClientID, body.Name, body.Description)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"collection": col})
}

// GET /api/collections
func (h *CollectionHandler) ListCollections(c *gin.Context) {
	cols := h.libraryService.ListCollections(c.Request.Context())
	RespondOK(c, gin.H{"collections": cols, "count": len(cols)})
}

// GET /api/collections/:id
func (h *CollectionHandler) GetCollection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	col, err := h.libraryService.GetCollection(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"collection": col})
}

// PATCH /api/collections/:id
func (h *CollectionHandler) RenameCollection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Name string `json:"name"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	col, err := h.libraryService.RenameCollection(c.Request.Context(), id, body.Name)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"collection": col})
}

// PUT /api/collections/:id/assets/:assetID
func (h *CollectionHandler) AddToCollection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	assetID, ok := parseID(c, "assetID")
	if !ok {
		return
	}
	col, err := h.libraryService.AddToCollection(c.Request.Context(), id, assetID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"collection": col})
}

// DELETE /api/collections/:id/assets/:assetID
func (h *CollectionHandler) RemoveFromCollection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	assetID, ok := parseID(c, "assetID")
	if !ok {
		return
	}
	col, err := h.libraryService.RemoveFromCollection(c.Request.Context(), id, assetID)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"collection": col})
}

// DELETE /api/collections/:id
func (h *CollectionHandler) DeleteCollection(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.libraryService.DeleteCollection(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
