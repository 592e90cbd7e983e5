package handlers

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brandvault/brandvault-backend/internal/platform/logger"
	"github.com/brandvault/brandvault-backend/internal/services"
	"github.com/brandvault/brandvault-backend/internal/types"
)

type AssetHandler struct {
	log          *logger.Logger
	assetService services.AssetService
}

func NewAssetHandler(log *logger.Logger, asvc services.AssetService) *AssetHandler {
	return &AssetHandler{
		log:          log.With("handler", "AssetHandler"),
		assetService: asvc,
	}
}

func parseID(c *gin.Context, param string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(param))
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_id",
			fmt.Errorf("%w: %q is not a valid asset id", types.ErrValidation, c.Param(param)))
		return uuid.Nil, false
	}
	return id, true
}

// POST /api/assets
func (h *AssetHandler) CreateAsset(c *gin.Context) {
	var in types.NewAsset
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	a, err := h.assetService.Create(c.Request.Context(), &in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"asset": a})
}

// POST /api/assets/upload (multipart: file + metadata fields)
func (h *AssetHandler) UploadAsset(c *gin.Context) {
	fh, err := c.FormFile("file")
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body",
			fmt.Errorf("%w: multipart field \"file\" is required", types.ErrValidation))
		return
	}
	in := types.NewAsset{
		ClientID:    c.PostForm("client_id"),
		Name:        c.PostForm("name"),
		Description: c.PostForm("description"),
		Type:        types.AssetType(c.PostForm("type")),
		Variant:     c.PostForm("variant"),
		UploadedBy:  c.PostForm("uploaded_by"),
		FileSize:    fh.Size,
	}
	if tags := c.PostForm("tags"); tags != "" {
		in.Tags = strings.Split(tags, ",")
	}
	f, err := fh.Open()
	if err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	defer f.Close()

	a, err := h.assetService.CreateFromUpload(c.Request.Context(), &in, fh.Filename, fh.Header.Get("Content-Type"), f)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"asset": a})
}

// GET /api/assets
// Query params map straight onto filter criteria; sort_by/sort_order pick
// the ordering. With no params this returns the saved query state's view.
func (h *AssetHandler) ListAssets(c *gin.Context) {
	var criteria types.FilterCriteria
	if err := c.ShouldBindQuery(&criteria); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_query", err)
		return
	}
	key := types.SortKey(c.Query("sort_by"))
	order := types.SortOrder(c.Query("sort_order"))
	assets := h.assetService.Query(c.Request.Context(), criteria, key, order)
	RespondOK(c, gin.H{"assets": assets, "count": len(assets)})
}

// PUT /api/assets/query-state
func (h *AssetHandler) SaveQueryState(c *gin.Context) {
	var body struct {
		Criteria  types.FilterCriteria `json:"criteria"`
		SortBy    types.SortKey        `json:"sort_by"`
		SortOrder types.SortOrder      `json:"sort_order"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	if err := h.assetService.SaveQueryState(c.Request.Context(), body.Criteria, body.SortBy, body.SortOrder); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// GET /api/assets/:id
func (h *AssetHandler) GetAsset(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	a, err := h.assetService.Get(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"asset": a})
}

// PATCH /api/assets/:id
func (h *AssetHandler) UpdateAsset(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var upd types.AssetUpdate
	if err := c.ShouldBindJSON(&upd); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	a, err := h.assetService.Update(c.Request.Context(), id, upd)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"asset": a})
}

// DELETE /api/assets/:id
func (h *AssetHandler) DeleteAsset(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := h.assetService.Delete(c.Request.Context(), id); err != nil {
		RespondDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// POST /api/assets/:id/approve
func (h *AssetHandler) ApproveAsset(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	a, err := h.assetService.Approve(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"asset": a})
}

// POST /api/assets/:id/reject
func (h *AssetHandler) RejectAsset(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Reason string `json:"reason"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	a, err := h.assetService.Reject(c.Request.Context(), id, body.Reason)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"asset": a})
}

// POST /api/assets/:id/primary
func (h *AssetHandler) SetAsPrimary(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	a, err := h.assetService.SetAsPrimary(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"asset": a})
}

// POST /api/assets/:id/tags
func (h *AssetHandler) TagAsset(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var body struct {
		Tags []string `json:"tags"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	a, err := h.assetService.Tag(c.Request.Context(), id, body.Tags)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"asset": a})
}

// POST /api/assets/:id/versions
func (h *AssetHandler) CreateVersion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var in types.NewAsset
	if err := c.ShouldBindJSON(&in); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	a, err := h.assetService.CreateVersion(c.Request.Context(), id, &in)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"asset": a})
}

// GET /api/assets/:id/versions
func (h *AssetHandler) GetVersions(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	versions := h.assetService.GetVersions(c.Request.Context(), id)
	RespondOK(c, gin.H{"versions": versions, "count": len(versions)})
}

// POST /api/assets/:id/revert
// The :id here is the version to revert to; the result is a new head version.
func (h *AssetHandler) RevertToVersion(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	a, err := h.assetService.RevertToVersion(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"asset": a})
}

// POST /api/assets/:id/download
func (h *AssetHandler) RecordDownload(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	a, err := h.assetService.RecordDownload(c.Request.Context(), id)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"asset": a})
}

// POST /api/assets/:id/usage
func (h *AssetHandler) RecordUsage(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var rec types.UsageRecord
	if err := c.ShouldBindJSON(&rec); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	a, err := h.assetService.RecordUsage(c.Request.Context(), id, rec)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"asset": a})
}
