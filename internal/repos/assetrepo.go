package repos

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brandvault/brandvault-backend/internal/analytics"
	"github.com/brandvault/brandvault-backend/internal/compliance"
	"github.com/brandvault/brandvault-backend/internal/lineage"
	"github.com/brandvault/brandvault-backend/internal/platform/logger"
	"github.com/brandvault/brandvault-backend/internal/query"
	"github.com/brandvault/brandvault-backend/internal/sharelink"
	"github.com/brandvault/brandvault-backend/internal/snapshot"
	"github.com/brandvault/brandvault-backend/internal/types"
)

// AssetRepo is the explicit state container for the engine: it owns the
// canonical collection of assets, guidelines, collections and settings, and
// every mutation goes through its command methods. Commands run to
// completion before the next is accepted; the only suspension point is the
// snapshot write, which the repo awaits before reporting success. A command
// that fails the persist step has still mutated memory — the caller must
// treat it as not-yet-durable.
type AssetRepo struct {
	log    *logger.Logger
	store  snapshot.Store
	issuer *sharelink.Issuer

	assets      []*types.Asset
	guidelines  []*types.Guidelines
	collections []*types.Collection
	settings    types.Settings
	filters     types.FilterCriteria
	sortBy      types.SortKey
	sortOrder   types.SortOrder

	summary *analytics.Summary

	now   func() time.Time
	newID func() uuid.UUID
}

func NewAssetRepo(log *logger.Logger, store snapshot.Store, issuer *sharelink.Issuer) *AssetRepo {
	return &AssetRepo{
		log:       log.With("repo", "AssetRepo"),
		store:     store,
		issuer:    issuer,
		sortBy:    types.SortByDate,
		sortOrder: types.SortDesc,
		summary:   analytics.Compute(nil),
		now:       time.Now,
		newID:     uuid.New,
	}
}

// Load replaces the in-memory state from the persisted snapshot.
func (r *AssetRepo) Load(ctx context.Context) error {
	doc, err := r.store.Load(ctx)
	if err != nil {
		return fmt.Errorf("%w: load snapshot: %v", types.ErrStorage, err)
	}
	doc = snapshot.Normalize(doc)
	r.assets = doc.Assets
	r.guidelines = doc.Guidelines
	r.collections = doc.Collections
	r.settings = doc.Settings
	r.filters = doc.Filters
	r.sortBy = doc.SortBy
	r.sortOrder = doc.SortOrder
	r.issuer.Restore(doc.ShareLinks)
	r.refresh()
	r.log.Info("snapshot loaded",
		"assets", len(r.assets),
		"collections", len(r.collections),
		"guidelines", len(r.guidelines),
		"schema_version", doc.SchemaVersion,
	)
	return nil
}

func (r *AssetRepo) refresh() {
	r.summary = analytics.Compute(r.assets)
}

func (r *AssetRepo) persist(ctx context.Context) error {
	doc := &snapshot.Document{
		SchemaVersion: snapshot.SchemaVersion,
		Assets:        r.assets,
		Guidelines:    r.guidelines,
		Collections:   r.collections,
		ShareLinks:    r.issuer.Links(),
		Settings:      r.settings,
		Filters:       r.filters,
		SortBy:        r.sortBy,
		SortOrder:     r.sortOrder,
		SavedAt:       r.now().UTC(),
	}
	if err := r.store.Save(ctx, doc); err != nil {
		r.log.Warn("snapshot persist failed, state is not durable", "error", err)
		return fmt.Errorf("%w: persist snapshot: %v", types.ErrStorage, err)
	}
	return nil
}

func (r *AssetRepo) find(id uuid.UUID) (int, *types.Asset) {
	for i, a := range r.assets {
		if a.ID == id {
			return i, a
		}
	}
	return -1, nil
}

// ---- Asset commands ----

func validateNewAsset(in *types.NewAsset) error {
	if in == nil {
		return fmt.Errorf("%w: missing asset payload", types.ErrValidation)
	}
	var missing []string
	if strings.TrimSpace(in.ClientID) == "" {
		missing = append(missing, "client_id")
	}
	if in.Type == "" {
		missing = append(missing, "type")
	}
	if strings.TrimSpace(in.Format) == "" {
		missing = append(missing, "format")
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing required fields: %s", types.ErrValidation, strings.Join(missing, ", "))
	}
	if !in.Type.Valid() {
		return fmt.Errorf("%w: unknown asset type %q", types.ErrValidation, in.Type)
	}
	return nil
}

// AddAsset creates a lineage root from caller-supplied data, scores it
// against the compliance rules and inserts it at the head of the collection.
// Compliance issues never block creation; they only annotate the asset.
func (r *AssetRepo) AddAsset(ctx context.Context, in *types.NewAsset) (*types.Asset, error) {
	if err := validateNewAsset(in); err != nil {
		return nil, err
	}
	now := r.now()
	a := &types.Asset{
		ID:              r.newID(),
		ClientID:        in.ClientID,
		Name:            in.Name,
		Description:     in.Description,
		Type:            in.Type,
		Variant:         in.Variant,
		Format:          strings.ToLower(strings.TrimSpace(in.Format)),
		Tags:            append([]string(nil), in.Tags...),
		FileSize:        in.FileSize,
		Dimensions:      in.Dimensions,
		URL:             in.URL,
		ThumbnailURL:    in.ThumbnailURL,
		StorageKey:      in.StorageKey,
		VersionNumber:   1,
		IsPublic:        in.IsPublic,
		AllowedUsers:    append([]string(nil), in.AllowedUsers...),
		AllowedContexts: append([]types.UsageContext(nil), in.AllowedContexts...),
		UploadedBy:      in.UploadedBy,
		UploadedAt:      now,
		UpdatedAt:       now,
		ExpiresAt:       in.ExpiresAt,
	}
	res := compliance.Evaluate(a)
	a.GuidelinesCompliant = res.IsCompliant
	a.ComplianceNotes = res.Issues

	r.assets = append([]*types.Asset{a}, r.assets...)
	r.refresh()
	if err := r.persist(ctx); err != nil {
		return nil, err
	}
	r.log.Info("asset added", "asset_id", a.ID, "client_id", a.ClientID, "type", a.Type, "compliant", a.GuidelinesCompliant)
	return a.Clone(), nil
}

func (r *AssetRepo) GetAsset(id uuid.UUID) (*types.Asset, error) {
	_, a := r.find(id)
	if a == nil {
		return nil, fmt.Errorf("asset %s: %w", id, types.ErrNotFound)
	}
	return a.Clone(), nil
}

func (r *AssetRepo) ListAssets() []*types.Asset {
	out := make([]*types.Asset, 0, len(r.assets))
	for _, a := range r.assets {
		out = append(out, a.Clone())
	}
	return out
}

// UpdateAsset merges the partial update field by field, re-runs the
// compliance evaluator and bumps UpdatedAt. When ExpectedUpdatedAt is set
// and stale the call fails with ErrConflict and nothing changes.
func (r *AssetRepo) UpdateAsset(ctx context.Context, id uuid.UUID, upd types.AssetUpdate) (*types.Asset, error) {
	_, a := r.find(id)
	if a == nil {
		return nil, fmt.Errorf("asset %s: %w", id, types.ErrNotFound)
	}
	if upd.ExpectedUpdatedAt != nil && !upd.ExpectedUpdatedAt.Equal(a.UpdatedAt) {
		return nil, fmt.Errorf("asset %s changed at %s: %w", id, a.UpdatedAt.Format(time.RFC3339Nano), types.ErrConflict)
	}

	applyUpdate(a, upd)
	a.UpdatedAt = r.now()

	res := compliance.Evaluate(a)
	a.GuidelinesCompliant = res.IsCompliant
	a.ComplianceNotes = mergeComplianceNotes(a.ComplianceNotes, res.Issues)

	r.refresh()
	if err := r.persist(ctx); err != nil {
		return nil, err
	}
	return a.Clone(), nil
}

func applyUpdate(a *types.Asset, upd types.AssetUpdate) {
	if upd.Name != nil {
		a.Name = *upd.Name
	}
	if upd.Description != nil {
		a.Description = *upd.Description
	}
	if upd.Variant != nil {
		a.Variant = *upd.Variant
	}
	if upd.Format != nil {
		a.Format = strings.ToLower(strings.TrimSpace(*upd.Format))
	}
	if upd.Tags != nil {
		a.Tags = append([]string(nil), (*upd.Tags)...)
	}
	if upd.FileSize != nil {
		a.FileSize = *upd.FileSize
	}
	if upd.Dimensions != nil {
		d := *upd.Dimensions
		a.Dimensions = &d
	}
	if upd.URL != nil {
		a.URL = *upd.URL
	}
	if upd.ThumbnailURL != nil {
		a.ThumbnailURL = *upd.ThumbnailURL
	}
	if upd.IsPublic != nil {
		a.IsPublic = *upd.IsPublic
	}
	if upd.AllowedUsers != nil {
		a.AllowedUsers = append([]string(nil), (*upd.AllowedUsers)...)
	}
	if upd.AllowedContexts != nil {
		a.AllowedContexts = append([]types.UsageContext(nil), (*upd.AllowedContexts)...)
	}
	if upd.ExpiresAt != nil {
		t := *upd.ExpiresAt
		a.ExpiresAt = &t
	}
}

// mergeComplianceNotes replaces the evaluator-generated notes (recognizable
// by their "[severity]" prefix) with the fresh issues while keeping manual
// annotations such as rejection reasons.
func mergeComplianceNotes(old, issues []string) []string {
	var kept []string
	for _, note := range old {
		if !strings.HasPrefix(note, "[") {
			kept = append(kept, note)
		}
	}
	return append(kept, issues...)
}

// DeleteAsset removes one asset and scrubs it from every collection.
func (r *AssetRepo) DeleteAsset(ctx context.Context, id uuid.UUID) error {
	i, a := r.find(id)
	if a == nil {
		return fmt.Errorf("asset %s: %w", id, types.ErrNotFound)
	}
	r.assets = append(r.assets[:i], r.assets[i+1:]...)
	r.removeFromCollections(id)
	r.refresh()
	if err := r.persist(ctx); err != nil {
		return err
	}
	r.log.Info("asset deleted", "asset_id", id)
	return nil
}

// DeleteAssets is the idempotent bulk form: absent ids are no-ops, not
// errors. Returns how many assets were actually removed.
func (r *AssetRepo) DeleteAssets(ctx context.Context, ids []uuid.UUID) (int, error) {
	drop := make(map[uuid.UUID]bool, len(ids))
	for _, id := range ids {
		drop[id] = true
	}
	kept := r.assets[:0]
	removed := 0
	for _, a := range r.assets {
		if drop[a.ID] {
			removed++
			r.removeFromCollections(a.ID)
			continue
		}
		kept = append(kept, a)
	}
	r.assets = kept
	if removed == 0 {
		return 0, nil
	}
	r.refresh()
	if err := r.persist(ctx); err != nil {
		return removed, err
	}
	r.log.Info("assets deleted", "requested", len(ids), "removed", removed)
	return removed, nil
}

func (r *AssetRepo) removeFromCollections(id uuid.UUID) {
	for _, c := range r.collections {
		kept := c.AssetIDs[:0]
		for _, existing := range c.AssetIDs {
			if existing != id {
				kept = append(kept, existing)
			}
		}
		if len(kept) != len(c.AssetIDs) {
			c.AssetIDs = kept
			c.UpdatedAt = r.now()
		}
	}
}

func (r *AssetRepo) ApproveAsset(ctx context.Context, id uuid.UUID) (*types.Asset, error) {
	_, a := r.find(id)
	if a == nil {
		return nil, fmt.Errorf("asset %s: %w", id, types.ErrNotFound)
	}
	a.IsApproved = true
	a.UpdatedAt = r.now()
	r.refresh()
	if err := r.persist(ctx); err != nil {
		return nil, err
	}
	return a.Clone(), nil
}

func (r *AssetRepo) RejectAsset(ctx context.Context, id uuid.UUID, reason string) (*types.Asset, error) {
	_, a := r.find(id)
	if a == nil {
		return nil, fmt.Errorf("asset %s: %w", id, types.ErrNotFound)
	}
	a.IsApproved = false
	if strings.TrimSpace(reason) != "" {
		a.ComplianceNotes = append(a.ComplianceNotes, reason)
	}
	a.UpdatedAt = r.now()
	r.refresh()
	if err := r.persist(ctx); err != nil {
		return nil, err
	}
	return a.Clone(), nil
}

// SetAsPrimary makes the target the single primary asset of its
// (type, client) group. The previous primary is un-set in the same command,
// so the at-most-one invariant holds at every observable point.
func (r *AssetRepo) SetAsPrimary(ctx context.Context, id uuid.UUID) (*types.Asset, error) {
	_, target := r.find(id)
	if target == nil {
		return nil, fmt.Errorf("asset %s: %w", id, types.ErrNotFound)
	}
	now := r.now()
	for _, a := range r.assets {
		if a.Type != target.Type || a.ClientID != target.ClientID {
			continue
		}
		isTarget := a.ID == id
		if a.IsPrimary != isTarget {
			a.IsPrimary = isTarget
			a.UpdatedAt = now
		}
	}
	r.refresh()
	if err := r.persist(ctx); err != nil {
		return nil, err
	}
	r.log.Info("primary asset set", "asset_id", id, "type", target.Type, "client_id", target.ClientID)
	return target.Clone(), nil
}

// ---- Versioning commands ----

// CreateVersion appends a new version to the lineage of originalID. The new
// asset always points at the lineage root (flat tree), takes the next
// version number in the lineage, and inherits the client. It never inherits
// the primary flag.
func (r *AssetRepo) CreateVersion(ctx context.Context, originalID uuid.UUID, in *types.NewAsset) (*types.Asset, error) {
	resolver := lineage.NewResolver(r.assets)
	original, ok := resolver.Get(originalID)
	if !ok {
		return nil, fmt.Errorf("asset %s: %w", originalID, types.ErrNotFound)
	}
	root, _ := resolver.Root(originalID)
	rootAsset, _ := resolver.Get(root)

	if in == nil {
		in = &types.NewAsset{}
	}
	now := r.now()
	a := &types.Asset{
		ID:            r.newID(),
		ClientID:      original.ClientID,
		ParentAssetID: &root,
		Name:          firstNonEmpty(in.Name, rootAsset.Name),
		Description:   firstNonEmpty(in.Description, original.Description),
		Type:          original.Type,
		Variant:       firstNonEmpty(in.Variant, original.Variant),
		Format:        strings.ToLower(firstNonEmpty(strings.TrimSpace(in.Format), original.Format)),
		Tags:          coalesceStrings(in.Tags, original.Tags),
		FileSize:      in.FileSize,
		Dimensions:    in.Dimensions,
		URL:           in.URL,
		ThumbnailURL:  in.ThumbnailURL,
		StorageKey:    in.StorageKey,
		VersionNumber: resolver.NextVersion(originalID),
		IsPublic:      original.IsPublic,
		UploadedBy:    firstNonEmpty(in.UploadedBy, original.UploadedBy),
		UploadedAt:    now,
		UpdatedAt:     now,
	}
	res := compliance.Evaluate(a)
	a.GuidelinesCompliant = res.IsCompliant
	a.ComplianceNotes = res.Issues

	r.assets = append([]*types.Asset{a}, r.assets...)
	r.refresh()
	if err := r.persist(ctx); err != nil {
		return nil, err
	}
	r.log.Info("version created", "asset_id", a.ID, "root_id", root, "version", a.VersionNumber)
	return a.Clone(), nil
}

// GetVersions lists the asset with the given id plus every asset derived
// from it, newest version first.
func (r *AssetRepo) GetVersions(parentID uuid.UUID) []*types.Asset {
	resolver := lineage.NewResolver(r.assets)
	versions := resolver.Versions(parentID)
	out := make([]*types.Asset, 0, len(versions))
	for _, v := range versions {
		out = append(out, v.Clone())
	}
	return out
}

// RevertToVersion appends a new version whose content mirrors the target
// version while keeping the lineage root's name and client. History is never
// deleted; reverting only appends.
func (r *AssetRepo) RevertToVersion(ctx context.Context, versionID uuid.UUID) (*types.Asset, error) {
	resolver := lineage.NewResolver(r.assets)
	target, ok := resolver.Get(versionID)
	if !ok {
		return nil, fmt.Errorf("asset %s: %w", versionID, types.ErrNotFound)
	}
	return r.CreateVersion(ctx, versionID, &types.NewAsset{
		Description:  target.Description,
		Variant:      target.Variant,
		Format:       target.Format,
		Tags:         append([]string(nil), target.Tags...),
		FileSize:     target.FileSize,
		Dimensions:   cloneDimensions(target.Dimensions),
		URL:          target.URL,
		ThumbnailURL: target.ThumbnailURL,
		StorageKey:   target.StorageKey,
	})
}

// TagAsset appends the given tags to an asset, skipping duplicates
// case-insensitively. Used directly and by the bulk coordinator.
func (r *AssetRepo) TagAsset(ctx context.Context, id uuid.UUID, tags []string) (*types.Asset, error) {
	_, a := r.find(id)
	if a == nil {
		return nil, fmt.Errorf("asset %s: %w", id, types.ErrNotFound)
	}
	changed := false
	for _, tag := range tags {
		tag = strings.TrimSpace(tag)
		if tag == "" || containsFold(a.Tags, tag) {
			continue
		}
		a.Tags = append(a.Tags, tag)
		changed = true
	}
	if !changed {
		return a.Clone(), nil
	}
	a.UpdatedAt = r.now()
	if err := r.persist(ctx); err != nil {
		return nil, err
	}
	return a.Clone(), nil
}

func containsFold(set []string, v string) bool {
	for _, s := range set {
		if strings.EqualFold(s, v) {
			return true
		}
	}
	return false
}

// ---- Usage commands ----

// RecordDownload bumps the monotonic download counter. It never decreases;
// the count disappears only when the asset itself is deleted.
func (r *AssetRepo) RecordDownload(ctx context.Context, id uuid.UUID) (*types.Asset, error) {
	_, a := r.find(id)
	if a == nil {
		return nil, fmt.Errorf("asset %s: %w", id, types.ErrNotFound)
	}
	now := r.now()
	a.TotalDownloads++
	a.LastUsed = &now
	r.refresh()
	if err := r.persist(ctx); err != nil {
		return nil, err
	}
	return a.Clone(), nil
}

func (r *AssetRepo) RecordUsage(ctx context.Context, id uuid.UUID, rec types.UsageRecord) (*types.Asset, error) {
	_, a := r.find(id)
	if a == nil {
		return nil, fmt.Errorf("asset %s: %w", id, types.ErrNotFound)
	}
	if rec.UsedAt.IsZero() {
		rec.UsedAt = r.now()
	}
	a.UsageHistory = append(a.UsageHistory, rec)
	used := rec.UsedAt
	a.LastUsed = &used
	if err := r.persist(ctx); err != nil {
		return nil, err
	}
	return a.Clone(), nil
}

// ---- Read paths ----

// Query filters and sorts the current collection. Pure: computed on demand,
// never cached.
func (r *AssetRepo) Query(criteria types.FilterCriteria, key types.SortKey, order types.SortOrder) []*types.Asset {
	if key == "" {
		key = r.sortBy
	}
	if order == "" {
		order = r.sortOrder
	}
	matched := query.Sort(query.Filter(r.assets, criteria), key, order)
	out := make([]*types.Asset, 0, len(matched))
	for _, a := range matched {
		out = append(out, a.Clone())
	}
	return out
}

// SaveQueryState persists the UI's last filter/sort choice with the
// snapshot.
func (r *AssetRepo) SaveQueryState(ctx context.Context, criteria types.FilterCriteria, key types.SortKey, order types.SortOrder) error {
	r.filters = criteria
	if key != "" {
		r.sortBy = key
	}
	if order != "" {
		r.sortOrder = order
	}
	return r.persist(ctx)
}

func (r *AssetRepo) QueryState() (types.FilterCriteria, types.SortKey, types.SortOrder) {
	return r.filters, r.sortBy, r.sortOrder
}

// Analytics returns the summary recomputed after the last mutation.
func (r *AssetRepo) Analytics() *analytics.Summary {
	return r.summary
}

func (r *AssetRepo) Settings() types.Settings { return r.settings }

func (r *AssetRepo) SetSettings(ctx context.Context, s types.Settings) error {
	r.settings = s
	return r.persist(ctx)
}

// ---- Share link commands ----

// IssueShareLink validates that every referenced asset exists, then
// delegates to the issuer and persists the new link with the snapshot.
func (r *AssetRepo) IssueShareLink(ctx context.Context, assetIDs []uuid.UUID, ttl time.Duration, opts sharelink.Options) (*types.ShareLink, error) {
	for _, id := range assetIDs {
		if _, a := r.find(id); a == nil {
			return nil, fmt.Errorf("asset %s: %w", id, types.ErrNotFound)
		}
	}
	link, err := r.issuer.Issue(assetIDs, ttl, opts)
	if err != nil {
		return nil, err
	}
	if err := r.persist(ctx); err != nil {
		return nil, err
	}
	return link, nil
}

// ResolveShareLink consumes one unit of the link's access budget and returns
// the referenced assets (those still present in the collection).
func (r *AssetRepo) ResolveShareLink(ctx context.Context, linkID, password string) ([]*types.Asset, error) {
	ids, err := r.issuer.Resolve(linkID, password)
	if err != nil {
		return nil, err
	}
	// The access count changed; make it durable.
	if err := r.persist(ctx); err != nil {
		return nil, err
	}
	out := make([]*types.Asset, 0, len(ids))
	for _, id := range ids {
		if _, a := r.find(id); a != nil {
			out = append(out, a.Clone())
		}
	}
	return out, nil
}

func (r *AssetRepo) GetShareLink(linkID string) (*types.ShareLink, error) {
	return r.issuer.Get(linkID)
}

func (r *AssetRepo) ListShareLinks() []*types.ShareLink {
	return r.issuer.Links()
}

// ---- helpers ----

func firstNonEmpty(vals ...string) string {
	for _, v := range vals {
		if v != "" {
			return v
		}
	}
	return ""
}

func coalesceStrings(primary, fallback []string) []string {
	if len(primary) > 0 {
		return append([]string(nil), primary...)
	}
	return append([]string(nil), fallback...)
}

func cloneDimensions(d *types.Dimensions) *types.Dimensions {
	if d == nil {
		return nil
	}
	cp := *d
	return &cp
}
