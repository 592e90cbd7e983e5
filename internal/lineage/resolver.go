package lineage

import (
	"sort"

	"github.com/google/uuid"

	"github.com/brandvault/brandvault-backend/internal/types"
)

// Resolver indexes the asset collection as an arena keyed by id with a
// precomputed lineage-root index, so root resolution and version numbering
// are map lookups instead of repeated parent-pointer walks. Build one per
// query against current state; it does not track later mutations.
type Resolver struct {
	byID   map[uuid.UUID]*types.Asset
	rootOf map[uuid.UUID]uuid.UUID
}

func NewResolver(assets []*types.Asset) *Resolver {
	r := &Resolver{
		byID:   make(map[uuid.UUID]*types.Asset, len(assets)),
		rootOf: make(map[uuid.UUID]uuid.UUID, len(assets)),
	}
	for _, a := range assets {
		r.byID[a.ID] = a
	}
	for _, a := range assets {
		r.rootOf[a.ID] = r.walkRoot(a.ID)
	}
	return r
}

func (r *Resolver) walkRoot(id uuid.UUID) uuid.UUID {
	seen := map[uuid.UUID]bool{}
	cur := id
	for {
		if root, ok := r.rootOf[cur]; ok {
			return root
		}
		a, ok := r.byID[cur]
		if !ok || a.ParentAssetID == nil || seen[cur] {
			return cur
		}
		// Dangling parent pointers (parent hard-deleted) make this asset a
		// root of its remaining subtree.
		if _, ok := r.byID[*a.ParentAssetID]; !ok {
			return cur
		}
		seen[cur] = true
		cur = *a.ParentAssetID
	}
}

func (r *Resolver) Get(id uuid.UUID) (*types.Asset, bool) {
	a, ok := r.byID[id]
	return a, ok
}

// Root returns the lineage root id for the given asset id.
func (r *Resolver) Root(id uuid.UUID) (uuid.UUID, bool) {
	root, ok := r.rootOf[id]
	return root, ok
}

// Lineage returns every asset in the lineage of id (the root and all
// versions derived from it, directly or transitively).
func (r *Resolver) Lineage(id uuid.UUID) []*types.Asset {
	root, ok := r.rootOf[id]
	if !ok {
		return nil
	}
	var members []*types.Asset
	for memberID, memberRoot := range r.rootOf {
		if memberRoot == root {
			members = append(members, r.byID[memberID])
		}
	}
	return members
}

// NextVersion computes the version number a new member of id's lineage must
// take: max existing version number in the lineage + 1.
func (r *Resolver) NextVersion(id uuid.UUID) int {
	max := 0
	for _, member := range r.Lineage(id) {
		if member.VersionNumber > max {
			max = member.VersionNumber
		}
	}
	return max + 1
}

// Versions returns the asset with the given id plus all assets whose parent
// is that id, sorted by version number descending. With root-linked versions
// this is the full lineage when called on the root.
func (r *Resolver) Versions(parentID uuid.UUID) []*types.Asset {
	var out []*types.Asset
	for _, a := range r.byID {
		if a.ID == parentID || (a.ParentAssetID != nil && *a.ParentAssetID == parentID) {
			out = append(out, a)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].VersionNumber > out[j].VersionNumber
	})
	return out
}
