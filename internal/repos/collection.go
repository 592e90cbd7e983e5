package repos

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/brandvault/brandvault-backend/internal/types"
)

// Collection commands. Collections are organizational only; the one
// invariant is referential consistency, enforced here and on asset deletion.

func (r *AssetRepo) CreateCollection(ctx context.Context, clientID, name, description string) (*types.Collection, error) {
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: collection name is required", types.ErrValidation)
	}
	now := r.now()
	c := &types.Collection{
		ID:          r.newID(),
		ClientID:    clientID,
		Name:        name,
		Description: description,
		AssetIDs:    []uuid.UUID{},
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	r.collections = append(r.collections, c)
	if err := r.persist(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *AssetRepo) findCollection(id uuid.UUID) *types.Collection {
	for _, c := range r.collections {
		if c.ID == id {
			return c
		}
	}
	return nil
}

func (r *AssetRepo) GetCollection(id uuid.UUID) (*types.Collection, error) {
	c := r.findCollection(id)
	if c == nil {
		return nil, fmt.Errorf("collection %s: %w", id, types.ErrNotFound)
	}
	return c, nil
}

func (r *AssetRepo) ListCollections() []*types.Collection {
	return append([]*types.Collection(nil), r.collections...)
}

func (r *AssetRepo) RenameCollection(ctx context.Context, id uuid.UUID, name string) (*types.Collection, error) {
	c := r.findCollection(id)
	if c == nil {
		return nil, fmt.Errorf("collection %s: %w", id, types.ErrNotFound)
	}
	if strings.TrimSpace(name) == "" {
		return nil, fmt.Errorf("%w: collection name is required", types.ErrValidation)
	}
	c.Name = name
	c.UpdatedAt = r.now()
	if err := r.persist(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

// AddToCollection requires both the collection and the asset to exist;
// adding an already-present asset is a no-op.
func (r *AssetRepo) AddToCollection(ctx context.Context, collectionID, assetID uuid.UUID) (*types.Collection, error) {
	c := r.findCollection(collectionID)
	if c == nil {
		return nil, fmt.Errorf("collection %s: %w", collectionID, types.ErrNotFound)
	}
	if _, a := r.find(assetID); a == nil {
		return nil, fmt.Errorf("asset %s: %w", assetID, types.ErrNotFound)
	}
	if c.Contains(assetID) {
		return c, nil
	}
	c.AssetIDs = append(c.AssetIDs, assetID)
	c.UpdatedAt = r.now()
	if err := r.persist(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *AssetRepo) RemoveFromCollection(ctx context.Context, collectionID, assetID uuid.UUID) (*types.Collection, error) {
	c := r.findCollection(collectionID)
	if c == nil {
		return nil, fmt.Errorf("collection %s: %w", collectionID, types.ErrNotFound)
	}
	kept := c.AssetIDs[:0]
	for _, existing := range c.AssetIDs {
		if existing != assetID {
			kept = append(kept, existing)
		}
	}
	if len(kept) == len(c.AssetIDs) {
		return c, nil
	}
	c.AssetIDs = kept
	c.UpdatedAt = r.now()
	if err := r.persist(ctx); err != nil {
		return nil, err
	}
	return c, nil
}

func (r *AssetRepo) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	for i, c := range r.collections {
		if c.ID == id {
			r.collections = append(r.collections[:i], r.collections[i+1:]...)
			return r.persist(ctx)
		}
	}
	return fmt.Errorf("collection %s: %w", id, types.ErrNotFound)
}
