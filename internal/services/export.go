package services

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/brandvault/brandvault-backend/internal/platform/logger"
	"github.com/brandvault/brandvault-backend/internal/repos"
	"github.com/brandvault/brandvault-backend/internal/types"
)

// ContentFetcher pulls the raw bytes of an asset when the storage
// collaborator can serve them. Optional: without one, exports fall back to
// metadata-only archives.
type ContentFetcher interface {
	Fetch(ctx context.Context, storageKey string) ([]byte, error)
}

// ExportService turns a selection of assets into either a flat textual
// report or a zip archive of per-asset metadata (plus content when a fetcher
// is configured).
type ExportService interface {
	MetadataReport(ctx context.Context, ids []uuid.UUID) (string, error)
	Archive(ctx context.Context, ids []uuid.UUID) ([]byte, error)
}

type exportService struct {
	log     *logger.Logger
	repo    *repos.AssetRepo
	fetcher ContentFetcher
}

func NewExportService(log *logger.Logger, repo *repos.AssetRepo, fetcher ContentFetcher) ExportService {
	return &exportService{
		log:     log.With("service", "ExportService"),
		repo:    repo,
		fetcher: fetcher,
	}
}

func (s *exportService) selection(ids []uuid.UUID) ([]*types.Asset, error) {
	if len(ids) == 0 {
		return nil, fmt.Errorf("%w: export needs asset ids", types.ErrValidation)
	}
	out := make([]*types.Asset, 0, len(ids))
	for _, id := range ids {
		a, err := s.repo.GetAsset(id)
		if err != nil {
			return nil, err
		}
		out = append(out, a)
	}
	return out, nil
}

// MetadataReport renders a flat, human-readable report of the selection.
func (s *exportService) MetadataReport(ctx context.Context, ids []uuid.UUID) (string, error) {
	assets, err := s.selection(ids)
	if err != nil {
		return "", err
	}
	var b strings.Builder
	fmt.Fprintf(&b, "Brand Asset Export (%d assets)\n\n", len(assets))
	for _, a := range assets {
		fmt.Fprintf(&b, "%s (%s)\n", a.Name, a.ID)
		fmt.Fprintf(&b, "  client: %s  type: %s  format: %s  version: %d\n", a.ClientID, a.Type, a.Format, a.VersionNumber)
		fmt.Fprintf(&b, "  size: %d bytes  downloads: %d  approved: %v  compliant: %v\n", a.FileSize, a.TotalDownloads, a.IsApproved, a.GuidelinesCompliant)
		if a.URL != "" {
			fmt.Fprintf(&b, "  url: %s\n", a.URL)
		}
		if len(a.ComplianceNotes) > 0 {
			fmt.Fprintf(&b, "  notes: %s\n", strings.Join(a.ComplianceNotes, "; "))
		}
		b.WriteString("\n")
	}
	return b.String(), nil
}

type archiveEntry struct {
	name string
	data []byte
}

// Archive builds a zip of per-asset metadata JSON; when a content fetcher is
// configured the original bytes ride along. Entries are prepared
// concurrently, then written in a stable order.
func (s *exportService) Archive(ctx context.Context, ids []uuid.UUID) ([]byte, error) {
	assets, err := s.selection(ids)
	if err != nil {
		return nil, err
	}

	var mu sync.Mutex
	var entries []archiveEntry

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(4)
	for _, a := range assets {
		g.Go(func() error {
			meta, err := json.MarshalIndent(a, "", "  ")
			if err != nil {
				return fmt.Errorf("marshal asset %s: %w", a.ID, err)
			}
			prefix := fmt.Sprintf("%s_v%d", sanitizeEntryName(a.Name), a.VersionNumber)
			local := []archiveEntry{{name: prefix + ".json", data: meta}}
			if s.fetcher != nil && a.StorageKey != "" {
				content, err := s.fetcher.Fetch(gctx, a.StorageKey)
				if err != nil {
					// Content fetch unavailable: fall back to metadata only.
					s.log.Warn("content fetch failed, exporting metadata only", "asset_id", a.ID, "error", err)
				} else {
					local = append(local, archiveEntry{name: prefix + "." + a.Format, data: content})
				}
			}
			mu.Lock()
			entries = append(entries, local...)
			mu.Unlock()
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	sort.Slice(entries, func(i, j int) bool { return entries[i].name < entries[j].name })

	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)
	for _, entry := range entries {
		w, err := zw.Create(entry.name)
		if err != nil {
			return nil, fmt.Errorf("create zip entry %q: %w", entry.name, err)
		}
		if _, err := w.Write(entry.data); err != nil {
			return nil, fmt.Errorf("write zip entry %q: %w", entry.name, err)
		}
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("finalize archive: %w", err)
	}
	return buf.Bytes(), nil
}

func sanitizeEntryName(name string) string {
	name = strings.TrimSpace(name)
	if name == "" {
		return "asset"
	}
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, name)
}
