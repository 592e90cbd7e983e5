package query

import (
	"sort"
	"strings"

	"github.com/brandvault/brandvault-backend/internal/types"
)

// Search returns the assets matching a whitespace-delimited query. Every
// term must be found (case-insensitively) in at least one of name,
// description, tags, type or variant: AND across terms, OR across fields.
// An empty query matches everything.
func Search(assets []*types.Asset, q string) []*types.Asset {
	terms := strings.Fields(strings.ToLower(q))
	if len(terms) == 0 {
		return assets
	}
	var out []*types.Asset
	for _, a := range assets {
		if matchesAllTerms(a, terms) {
			out = append(out, a)
		}
	}
	return out
}

func matchesAllTerms(a *types.Asset, terms []string) bool {
	for _, term := range terms {
		if !matchesTerm(a, term) {
			return false
		}
	}
	return true
}

func matchesTerm(a *types.Asset, term string) bool {
	if strings.Contains(strings.ToLower(a.Name), term) ||
		strings.Contains(strings.ToLower(a.Description), term) ||
		strings.Contains(strings.ToLower(string(a.Type)), term) ||
		strings.Contains(strings.ToLower(a.Variant), term) {
		return true
	}
	for _, tag := range a.Tags {
		if strings.Contains(strings.ToLower(tag), term) {
			return true
		}
	}
	return false
}

// Filter applies the criteria, all composed by logical AND. Empty criteria
// return the input unchanged.
func Filter(assets []*types.Asset, c types.FilterCriteria) []*types.Asset {
	if c.Empty() {
		return assets
	}
	out := make([]*types.Asset, 0, len(assets))
	for _, a := range assets {
		if matchesCriteria(a, c) {
			out = append(out, a)
		}
	}
	if c.Query != "" {
		out = Search(out, c.Query)
	}
	return out
}

func matchesCriteria(a *types.Asset, c types.FilterCriteria) bool {
	if c.ClientID != "" && a.ClientID != c.ClientID {
		return false
	}
	if len(c.Types) > 0 && !containsType(c.Types, a.Type) {
		return false
	}
	if len(c.Variants) > 0 && !containsFold(c.Variants, a.Variant) {
		return false
	}
	if len(c.Formats) > 0 && !containsFold(c.Formats, a.Format) {
		return false
	}
	if c.Approved != nil && a.IsApproved != *c.Approved {
		return false
	}
	if c.Primary != nil && a.IsPrimary != *c.Primary {
		return false
	}
	if len(c.Tags) > 0 && !anyTag(a.Tags, c.Tags) {
		return false
	}
	if len(c.Contexts) > 0 && !anyContext(a.AllowedContexts, c.Contexts) {
		return false
	}
	return true
}

func containsType(set []types.AssetType, t types.AssetType) bool {
	for _, candidate := range set {
		if candidate == t {
			return true
		}
	}
	return false
}

func containsFold(set []string, v string) bool {
	for _, candidate := range set {
		if strings.EqualFold(candidate, v) {
			return true
		}
	}
	return false
}

func anyTag(have, want []string) bool {
	for _, w := range want {
		for _, h := range have {
			if strings.EqualFold(h, w) {
				return true
			}
		}
	}
	return false
}

func anyContext(have []types.UsageContext, want []types.UsageContext) bool {
	for _, w := range want {
		for _, h := range have {
			if h == w {
				return true
			}
		}
	}
	return false
}

// Sort returns a sorted copy; the input slice is left untouched. The sort is
// stable so ties keep their prior relative order.
func Sort(assets []*types.Asset, key types.SortKey, order types.SortOrder) []*types.Asset {
	out := make([]*types.Asset, len(assets))
	copy(out, assets)

	less := lessFunc(key)
	if less == nil {
		return out
	}
	sort.SliceStable(out, func(i, j int) bool {
		if order == types.SortDesc {
			return less(out[j], out[i])
		}
		return less(out[i], out[j])
	})
	return out
}

func lessFunc(key types.SortKey) func(a, b *types.Asset) bool {
	switch key {
	case types.SortByName:
		return func(a, b *types.Asset) bool {
			return strings.ToLower(a.Name) < strings.ToLower(b.Name)
		}
	case types.SortByDate:
		return func(a, b *types.Asset) bool { return a.UploadedAt.Before(b.UploadedAt) }
	case types.SortByUsage:
		return func(a, b *types.Asset) bool { return a.TotalDownloads < b.TotalDownloads }
	case types.SortByType:
		return func(a, b *types.Asset) bool { return a.Type < b.Type }
	case types.SortBySize:
		return func(a, b *types.Asset) bool { return a.FileSize < b.FileSize }
	default:
		return nil
	}
}
