package handlers

import (
	"fmt"
	"net/http"
	"testing"

	"github.com/brandvault/brandvault-backend/internal/types"
)

func TestClassifyDomainErrors(t *testing.T) {
	cases := []struct {
		name       string
		err        error
		wantStatus int
		wantCode   string
	}{
		{"validation", fmt.Errorf("%w: name required", types.ErrValidation), http.StatusBadRequest, "validation_error"},
		{"not_found", fmt.Errorf("%w: asset abc", types.ErrNotFound), http.StatusNotFound, "not_found"},
		{"conflict", fmt.Errorf("%w: stale update", types.ErrConflict), http.StatusConflict, "conflict"},
		{"auth", fmt.Errorf("%w: password required", types.ErrAuth), http.StatusUnauthorized, "password_required"},
		{"expired", fmt.Errorf("%w: link", types.ErrExpired), http.StatusGone, "link_expired"},
		{"access_limit", fmt.Errorf("%w: link", types.ErrAccessLimit), http.StatusGone, "access_limit_reached"},
		{"compliance", fmt.Errorf("%w: oversize", types.ErrComplianceBlocked), http.StatusUnprocessableEntity, "compliance_blocked"},
		{"storage", fmt.Errorf("%w: persist snapshot", types.ErrStorage), http.StatusBadGateway, "storage_error"},
		{"unknown", fmt.Errorf("boom"), http.StatusInternalServerError, "internal_error"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			ae := classify(tc.err)
			if ae.Status != tc.wantStatus {
				t.Fatalf("status=%d, want %d", ae.Status, tc.wantStatus)
			}
			if ae.Code != tc.wantCode {
				t.Fatalf("code=%q, want %q", ae.Code, tc.wantCode)
			}
		})
	}
}

func TestClassifyWrappedChain(t *testing.T) {
	err := fmt.Errorf("resolve link: %w", fmt.Errorf("%w: max access reached", types.ErrAccessLimit))
	ae := classify(err)
	if ae.Status != http.StatusGone {
		t.Fatalf("status=%d, want %d", ae.Status, http.StatusGone)
	}
}
