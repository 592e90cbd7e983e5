package repos

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/brandvault/brandvault-backend/internal/types"
)

// Guidelines commands. The per-client rulebook lives and dies independently
// of assets; the compliance evaluator never reads it.

func (r *AssetRepo) CreateGuidelines(ctx context.Context, in *types.Guidelines) (*types.Guidelines, error) {
	if in == nil || strings.TrimSpace(in.ClientID) == "" {
		return nil, fmt.Errorf("%w: guidelines need a client_id", types.ErrValidation)
	}
	g := *in
	g.ID = r.newID()
	now := r.now()
	g.CreatedAt = now
	g.UpdatedAt = now
	r.guidelines = append(r.guidelines, &g)
	if err := r.persist(ctx); err != nil {
		return nil, err
	}
	return &g, nil
}

func (r *AssetRepo) findGuidelines(id uuid.UUID) *types.Guidelines {
	for _, g := range r.guidelines {
		if g.ID == id {
			return g
		}
	}
	return nil
}

func (r *AssetRepo) GetGuidelines(id uuid.UUID) (*types.Guidelines, error) {
	g := r.findGuidelines(id)
	if g == nil {
		return nil, fmt.Errorf("guidelines %s: %w", id, types.ErrNotFound)
	}
	return g, nil
}

func (r *AssetRepo) ListGuidelines(clientID string) []*types.Guidelines {
	if clientID == "" {
		return append([]*types.Guidelines(nil), r.guidelines...)
	}
	var out []*types.Guidelines
	for _, g := range r.guidelines {
		if g.ClientID == clientID {
			out = append(out, g)
		}
	}
	return out
}

func (r *AssetRepo) UpdateGuidelines(ctx context.Context, id uuid.UUID, upd types.GuidelinesUpdate) (*types.Guidelines, error) {
	g := r.findGuidelines(id)
	if g == nil {
		return nil, fmt.Errorf("guidelines %s: %w", id, types.ErrNotFound)
	}
	if upd.Name != nil {
		g.Name = *upd.Name
	}
	if upd.LogoClearSpacePx != nil {
		g.LogoClearSpacePx = *upd.LogoClearSpacePx
	}
	if upd.LogoMinSizePx != nil {
		g.LogoMinSizePx = *upd.LogoMinSizePx
	}
	if upd.Palettes != nil {
		g.Palettes = append([]types.ColorPalette(nil), (*upd.Palettes)...)
	}
	if upd.Fonts != nil {
		g.Fonts = append([]types.FontDefinition(nil), (*upd.Fonts)...)
	}
	if upd.ProhibitedUses != nil {
		g.ProhibitedUses = append([]string(nil), (*upd.ProhibitedUses)...)
	}
	if upd.AllowedContexts != nil {
		g.AllowedContexts = append([]types.UsageContext(nil), (*upd.AllowedContexts)...)
	}
	if upd.Restrictions != nil {
		g.Restrictions = append([]string(nil), (*upd.Restrictions)...)
	}
	g.UpdatedAt = r.now()
	if err := r.persist(ctx); err != nil {
		return nil, err
	}
	return g, nil
}

func (r *AssetRepo) DeleteGuidelines(ctx context.Context, id uuid.UUID) error {
	for i, g := range r.guidelines {
		if g.ID == id {
			r.guidelines = append(r.guidelines[:i], r.guidelines[i+1:]...)
			return r.persist(ctx)
		}
	}
	return fmt.Errorf("guidelines %s: %w", id, types.ErrNotFound)
}
