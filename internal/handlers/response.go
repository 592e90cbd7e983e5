package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/brandvault/brandvault-backend/internal/platform/apierr"
	"github.com/brandvault/brandvault-backend/internal/types"
)

type APIError struct {
	Message string `json:"message"`
	Code    string `json:"code,omitempty"`
}

type ErrorEnvelope struct {
	Error APIError `json:"error"`
}

func RespondError(c *gin.Context, status int, code string, err error) {
	msg := "unknown error"
	if err != nil {
		msg = err.Error()
	}
	c.JSON(status, ErrorEnvelope{
		Error: APIError{
			Message: msg,
			Code:    code,
		},
	})
}

// classify maps the engine's error taxonomy onto an HTTP status and a
// stable machine-readable code.
func classify(err error) *apierr.Error {
	switch {
	case errors.Is(err, types.ErrValidation):
		return apierr.New(http.StatusBadRequest, "validation_error", err)
	case errors.Is(err, types.ErrNotFound):
		return apierr.New(http.StatusNotFound, "not_found", err)
	case errors.Is(err, types.ErrConflict):
		return apierr.New(http.StatusConflict, "conflict", err)
	case errors.Is(err, types.ErrAuth):
		return apierr.New(http.StatusUnauthorized, "password_required", err)
	case errors.Is(err, types.ErrExpired):
		return apierr.New(http.StatusGone, "link_expired", err)
	case errors.Is(err, types.ErrAccessLimit):
		return apierr.New(http.StatusGone, "access_limit_reached", err)
	case errors.Is(err, types.ErrComplianceBlocked):
		return apierr.New(http.StatusUnprocessableEntity, "compliance_blocked", err)
	case errors.Is(err, types.ErrStorage):
		return apierr.New(http.StatusBadGateway, "storage_error", err)
	default:
		return apierr.New(http.StatusInternalServerError, "internal_error", err)
	}
}

func RespondOK(c *gin.Context, payload any) {
	c.JSON(http.StatusOK, payload)
}

func RespondDomainError(c *gin.Context, err error) {
	ae := classify(err)
	RespondError(c, ae.Status, ae.Code, ae.Err)
}
