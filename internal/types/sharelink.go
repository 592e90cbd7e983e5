package types

import (
	"time"

	"github.com/google/uuid"
)

// ShareLink is an ephemeral pointer to a set of asset ids, independent of
// normal access control. The id is random and non-enumerable. Exhausted or
// expired links are refused, never purged, so the audit trail survives.
type ShareLink struct {
	ID        string      `json:"id"`
	AssetIDs  []uuid.UUID `json:"asset_ids"`
	CreatedAt time.Time   `json:"created_at"`
	ExpiresAt time.Time   `json:"expires_at"`

	AccessCount int  `json:"access_count"`
	MaxAccess   *int `json:"max_access,omitempty"`

	// Bcrypt hash of the optional password. Persisted in the snapshot but
	// stripped from API responses (see ShareLinkInfo).
	PasswordHash string `json:"password_hash,omitempty"`

	CreatedBy string `json:"created_by,omitempty"`
}

func (l *ShareLink) Protected() bool { return l != nil && l.PasswordHash != "" }

func (l *ShareLink) Clone() *ShareLink {
	if l == nil {
		return nil
	}
	cp := *l
	cp.AssetIDs = append([]uuid.UUID(nil), l.AssetIDs...)
	if l.MaxAccess != nil {
		m := *l.MaxAccess
		cp.MaxAccess = &m
	}
	return &cp
}

// ShareLinkInfo is the caller-facing view of a link.
type ShareLinkInfo struct {
	ID          string      `json:"id"`
	URL         string      `json:"url"`
	AssetIDs    []uuid.UUID `json:"asset_ids"`
	CreatedAt   time.Time   `json:"created_at"`
	ExpiresAt   time.Time   `json:"expires_at"`
	AccessCount int         `json:"access_count"`
	MaxAccess   *int        `json:"max_access,omitempty"`
	Protected   bool        `json:"protected"`
}
