package snapshot

import (
	"context"
	"time"

	"github.com/brandvault/brandvault-backend/internal/types"
)

// SchemaVersion is bumped whenever the document shape changes. Loading keeps
// working across bumps because Normalize defaults anything a prior schema
// did not record.
const SchemaVersion = 3

// Document is the single serialized state of the engine. Selection state,
// loading flags, transient errors and storage credentials are session-only
// and deliberately absent.
type Document struct {
	SchemaVersion int                  `json:"schema_version"`
	Assets        []*types.Asset       `json:"assets"`
	Guidelines    []*types.Guidelines  `json:"guidelines"`
	Collections   []*types.Collection  `json:"collections"`
	ShareLinks    []*types.ShareLink   `json:"share_links"`
	Settings      types.Settings       `json:"settings"`
	Filters       types.FilterCriteria `json:"filters"`
	SortBy        types.SortKey        `json:"sort_by"`
	SortOrder     types.SortOrder      `json:"sort_order"`
	SavedAt       time.Time            `json:"saved_at"`
}

// Store persists the snapshot document. Save replaces the previous snapshot
// wholesale; Load returns an empty normalized document when none exists yet.
type Store interface {
	Save(ctx context.Context, doc *Document) error
	Load(ctx context.Context) (*Document, error)
}

// Normalize defaults the fields an older-schema snapshot may be missing so
// the rest of the engine never sees nil slices or zero sort settings.
func Normalize(doc *Document) *Document {
	if doc == nil {
		doc = &Document{}
	}
	if doc.SchemaVersion == 0 || doc.SchemaVersion > SchemaVersion {
		doc.SchemaVersion = SchemaVersion
	}
	if doc.Assets == nil {
		doc.Assets = []*types.Asset{}
	}
	if doc.Guidelines == nil {
		doc.Guidelines = []*types.Guidelines{}
	}
	if doc.Collections == nil {
		doc.Collections = []*types.Collection{}
	}
	if doc.ShareLinks == nil {
		doc.ShareLinks = []*types.ShareLink{}
	}
	if doc.SortBy == "" {
		doc.SortBy = types.SortByDate
	}
	if doc.SortOrder == "" {
		doc.SortOrder = types.SortDesc
	}
	for _, a := range doc.Assets {
		if a.VersionNumber == 0 {
			a.VersionNumber = 1
		}
	}
	return doc
}
