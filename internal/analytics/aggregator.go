package analytics

import (
	"sort"

	"github.com/google/uuid"

	"github.com/brandvault/brandvault-backend/internal/types"
)

const defaultTopN = 5

type AssetRef struct {
	ID        uuid.UUID       `json:"id"`
	Name      string          `json:"name"`
	Type      types.AssetType `json:"type"`
	Downloads int64           `json:"downloads"`
}

type FormatStats struct {
	Count        int     `json:"count"`
	AvgDownloads float64 `json:"avg_downloads"`
}

type Summary struct {
	TotalAssets       int                     `json:"total_assets"`
	CountByType       map[types.AssetType]int `json:"count_by_type"`
	CountByClient     map[string]int          `json:"count_by_client"`
	TopDownloaded     []AssetRef              `json:"top_downloaded"`
	RecentUploads     []AssetRef              `json:"recent_uploads"`
	TotalStorageBytes int64                   `json:"total_storage_bytes"`
	ComplianceRate    float64                 `json:"compliance_rate"`
	AvgDownloads      float64                 `json:"avg_downloads"`
	ByFormat          map[string]FormatStats  `json:"by_format"`
}

// Compute derives the full summary from scratch. Recomputing on every
// mutation instead of keeping incremental counters trades a little CPU for
// zero drift.
func Compute(assets []*types.Asset) *Summary {
	s := &Summary{
		TotalAssets:    len(assets),
		CountByType:    map[types.AssetType]int{},
		CountByClient:  map[string]int{},
		ByFormat:       map[string]FormatStats{},
		ComplianceRate: 100,
	}
	if len(assets) == 0 {
		return s
	}

	compliant := 0
	var totalDownloads int64
	downloadsByFormat := map[string]int64{}
	for _, a := range assets {
		s.CountByType[a.Type]++
		s.CountByClient[a.ClientID]++
		s.TotalStorageBytes += a.FileSize
		totalDownloads += a.TotalDownloads
		if a.GuidelinesCompliant {
			compliant++
		}
		stats := s.ByFormat[a.Format]
		stats.Count++
		s.ByFormat[a.Format] = stats
		downloadsByFormat[a.Format] += a.TotalDownloads
	}
	for format, stats := range s.ByFormat {
		stats.AvgDownloads = float64(downloadsByFormat[format]) / float64(stats.Count)
		s.ByFormat[format] = stats
	}

	s.ComplianceRate = float64(compliant) / float64(len(assets)) * 100
	s.AvgDownloads = float64(totalDownloads) / float64(len(assets))

	s.TopDownloaded = topBy(assets, defaultTopN, func(a, b *types.Asset) bool {
		return a.TotalDownloads > b.TotalDownloads
	})
	s.RecentUploads = topBy(assets, defaultTopN, func(a, b *types.Asset) bool {
		return a.UploadedAt.After(b.UploadedAt)
	})
	return s
}

func topBy(assets []*types.Asset, n int, more func(a, b *types.Asset) bool) []AssetRef {
	sorted := make([]*types.Asset, len(assets))
	copy(sorted, assets)
	sort.SliceStable(sorted, func(i, j int) bool { return more(sorted[i], sorted[j]) })
	if len(sorted) > n {
		sorted = sorted[:n]
	}
	refs := make([]AssetRef, 0, len(sorted))
	for _, a := range sorted {
		refs = append(refs, AssetRef{ID: a.ID, Name: a.Name, Type: a.Type, Downloads: a.TotalDownloads})
	}
	return refs
}
