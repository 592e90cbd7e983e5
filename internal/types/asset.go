package types

import (
	"time"

	"github.com/google/uuid"
)

type AssetType string

const (
	AssetTypeLogo         AssetType = "logo"
	AssetTypeIcon         AssetType = "icon"
	AssetTypeColorPalette AssetType = "color-palette"
	AssetTypeFont         AssetType = "font"
	AssetTypeTemplate     AssetType = "template"
	AssetTypeImage        AssetType = "image"
	AssetTypeVideo        AssetType = "video"
	AssetTypeDocument     AssetType = "document"
	AssetTypeGuideline    AssetType = "guideline"
)

func (t AssetType) Valid() bool {
	switch t {
	case AssetTypeLogo, AssetTypeIcon, AssetTypeColorPalette, AssetTypeFont,
		AssetTypeTemplate, AssetTypeImage, AssetTypeVideo, AssetTypeDocument,
		AssetTypeGuideline:
		return true
	}
	return false
}

type UsageContext string

const (
	ContextWeb          UsageContext = "web"
	ContextPrint        UsageContext = "print"
	ContextSocialMedia  UsageContext = "social-media"
	ContextEmail        UsageContext = "email"
	ContextMerchandise  UsageContext = "merchandise"
	ContextPresentation UsageContext = "presentation"
	ContextPackaging    UsageContext = "packaging"
)

type Dimensions struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

type UsageRecord struct {
	UsedAt   time.Time    `json:"used_at"`
	UsedBy   string       `json:"used_by,omitempty"`
	Context  UsageContext `json:"context,omitempty"`
	Location string       `json:"location,omitempty"`
}

// Asset is the central entity: one versioned creative file belonging to a
// client. ParentAssetID is nil for a lineage root; every later version points
// at its root.
type Asset struct {
	ID            uuid.UUID  `json:"id"`
	ClientID      string     `json:"client_id"`
	ParentAssetID *uuid.UUID `json:"parent_asset_id,omitempty"`

	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Type        AssetType `json:"type"`
	Variant     string    `json:"variant,omitempty"`
	Format      string    `json:"format"`
	Tags        []string  `json:"tags,omitempty"`

	FileSize     int64       `json:"file_size"`
	Dimensions   *Dimensions `json:"dimensions,omitempty"`
	URL          string      `json:"url,omitempty"`
	ThumbnailURL string      `json:"thumbnail_url,omitempty"`
	StorageKey   string      `json:"storage_key,omitempty"`

	VersionNumber int  `json:"version_number"`
	IsPrimary     bool `json:"is_primary"`

	IsApproved          bool     `json:"is_approved"`
	GuidelinesCompliant bool     `json:"guidelines_compliant"`
	ComplianceNotes     []string `json:"compliance_notes,omitempty"`

	UsageHistory   []UsageRecord `json:"usage_history,omitempty"`
	TotalDownloads int64         `json:"total_downloads"`
	LastUsed       *time.Time    `json:"last_used,omitempty"`

	IsPublic        bool           `json:"is_public"`
	AllowedUsers    []string       `json:"allowed_users,omitempty"`
	AllowedContexts []UsageContext `json:"allowed_contexts,omitempty"`

	UploadedBy string     `json:"uploaded_by,omitempty"`
	UploadedAt time.Time  `json:"uploaded_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
	ExpiresAt  *time.Time `json:"expires_at,omitempty"`
}

// NewAsset is the caller-supplied payload for creating an asset or a version.
// ClientID, Type and Format are required.
type NewAsset struct {
	ClientID    string    `json:"client_id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Type        AssetType `json:"type"`
	Variant     string    `json:"variant,omitempty"`
	Format      string    `json:"format"`
	Tags        []string  `json:"tags,omitempty"`

	FileSize     int64       `json:"file_size"`
	Dimensions   *Dimensions `json:"dimensions,omitempty"`
	URL          string      `json:"url,omitempty"`
	ThumbnailURL string      `json:"thumbnail_url,omitempty"`
	StorageKey   string      `json:"storage_key,omitempty"`

	IsPublic        bool           `json:"is_public"`
	AllowedUsers    []string       `json:"allowed_users,omitempty"`
	AllowedContexts []UsageContext `json:"allowed_contexts,omitempty"`
	UploadedBy      string         `json:"uploaded_by,omitempty"`
	ExpiresAt       *time.Time     `json:"expires_at,omitempty"`
}

// AssetUpdate is an explicit partial update: nil means "leave unchanged".
// GuidelinesCompliant is intentionally absent; it is always recomputed by the
// compliance evaluator, never set by callers.
type AssetUpdate struct {
	Name            *string         `json:"name,omitempty"`
	Description     *string         `json:"description,omitempty"`
	Variant         *string         `json:"variant,omitempty"`
	Format          *string         `json:"format,omitempty"`
	Tags            *[]string       `json:"tags,omitempty"`
	FileSize        *int64          `json:"file_size,omitempty"`
	Dimensions      *Dimensions     `json:"dimensions,omitempty"`
	URL             *string         `json:"url,omitempty"`
	ThumbnailURL    *string         `json:"thumbnail_url,omitempty"`
	IsPublic        *bool           `json:"is_public,omitempty"`
	AllowedUsers    *[]string       `json:"allowed_users,omitempty"`
	AllowedContexts *[]UsageContext `json:"allowed_contexts,omitempty"`
	ExpiresAt       *time.Time      `json:"expires_at,omitempty"`

	// ExpectedUpdatedAt enables opt-in optimistic concurrency: when set, the
	// update fails with ErrConflict if the stored UpdatedAt differs.
	ExpectedUpdatedAt *time.Time `json:"expected_updated_at,omitempty"`
}

// Clone returns a deep copy so callers can hand assets out without exposing
// the canonical collection to ambient mutation.
func (a *Asset) Clone() *Asset {
	if a == nil {
		return nil
	}
	cp := *a
	if a.ParentAssetID != nil {
		pid := *a.ParentAssetID
		cp.ParentAssetID = &pid
	}
	if a.Dimensions != nil {
		d := *a.Dimensions
		cp.Dimensions = &d
	}
	if a.LastUsed != nil {
		t := *a.LastUsed
		cp.LastUsed = &t
	}
	if a.ExpiresAt != nil {
		t := *a.ExpiresAt
		cp.ExpiresAt = &t
	}
	cp.Tags = append([]string(nil), a.Tags...)
	cp.ComplianceNotes = append([]string(nil), a.ComplianceNotes...)
	cp.UsageHistory = append([]UsageRecord(nil), a.UsageHistory...)
	cp.AllowedUsers = append([]string(nil), a.AllowedUsers...)
	cp.AllowedContexts = append([]UsageContext(nil), a.AllowedContexts...)
	return &cp
}
