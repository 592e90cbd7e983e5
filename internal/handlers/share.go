package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/brandvault/brandvault-backend/internal/platform/logger"
	"github.com/brandvault/brandvault-backend/internal/services"
	"github.com/brandvault/brandvault-backend/internal/sharelink"
)

type ShareHandler struct {
	log          *logger.Logger
	shareService services.ShareService
}

func NewShareHandler(log *logger.Logger, ssvc services.ShareService) *ShareHandler {
	return &ShareHandler{
		log:          log.With("handler", "ShareHandler"),
		shareService: ssvc,
	}
}

// POST /api/share-links
func (h *ShareHandler) CreateShareLink(c *gin.Context) {
	var body struct {
		AssetIDs   []uuid.UUID `json:"asset_ids"`
		TTLSeconds int64       `json:"ttl_seconds"`
		MaxAccess  *int        `json:"max_access,omitempty"`
		Password   string      `json:"password,omitempty"`
		CreatedBy  string      `json:"created_by,omitempty"`
	}
	if err := c.ShouldBindJSON(&body); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_body", err)
		return
	}
	info, err := h.shareService.Issue(c.Request.Context(), body.AssetIDs,
		time.Duration(body.TTLSeconds)*time.Second, sharelink.Options{
			MaxAccess: body.MaxAccess,
			Password:  body.Password,
			CreatedBy: body.CreatedBy,
		})
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"share_link": info})
}

// GET /api/share-links
func (h *ShareHandler) ListShareLinks(c *gin.Context) {
	links := h.shareService.List(c.Request.Context())
	RespondOK(c, gin.H{"share_links": links, "count": len(links)})
}

// GET /api/share-links/:id
func (h *ShareHandler) GetShareLink(c *gin.Context) {
	info, err := h.shareService.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"share_link": info})
}

// POST /share/:id
// Public resolution endpoint. Each successful call consumes one access.
// The password travels in the body so it never lands in access logs.
func (h *ShareHandler) ResolveShareLink(c *gin.Context) {
	var body struct {
		Password string `json:"password,omitempty"`
	}
	// Body is optional for unprotected links.
	_ = c.ShouldBindJSON(&body)

	assets, err := h.shareService.Resolve(c.Request.Context(), c.Param("id"), body.Password)
	if err != nil {
		RespondDomainError(c, err)
		return
	}
	RespondOK(c, gin.H{"assets": assets, "count": len(assets)})
}
