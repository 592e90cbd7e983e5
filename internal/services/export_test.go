package services

import (
	"archive/zip"
	"bytes"
	"context"
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/brandvault/brandvault-backend/internal/types"
)

type fakeFetcher struct {
	content map[string][]byte
}

func (f *fakeFetcher) Fetch(ctx context.Context, storageKey string) ([]byte, error) {
	data, ok := f.content[storageKey]
	if !ok {
		return nil, fmt.Errorf("object %q missing", storageKey)
	}
	return data, nil
}

func TestMetadataReport(t *testing.T) {
	repo, log := newTestRepo(t)
	svc := NewExportService(log, repo, nil)
	ctx := context.Background()

	a := seedAsset(t, repo, "report-logo")
	report, err := svc.MetadataReport(ctx, []uuid.UUID{a.ID})
	if err != nil {
		t.Fatalf("report: %v", err)
	}
	for _, want := range []string{"report-logo", "client: acme", "type: logo", "version: 1"} {
		if !strings.Contains(report, want) {
			t.Fatalf("report missing %q:\n%s", want, report)
		}
	}

	if _, err := svc.MetadataReport(ctx, nil); !errors.Is(err, types.ErrValidation) {
		t.Fatalf("empty selection err=%v, want ErrValidation", err)
	}
	if _, err := svc.MetadataReport(ctx, []uuid.UUID{uuid.New()}); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("unknown id err=%v, want ErrNotFound", err)
	}
}

func TestArchiveMetadataOnly(t *testing.T) {
	repo, log := newTestRepo(t)
	svc := NewExportService(log, repo, nil)
	ctx := context.Background()

	a := seedAsset(t, repo, "zip-logo")
	b := seedAsset(t, repo, "zip-icon")

	data, err := svc.Archive(ctx, []uuid.UUID{a.ID, b.ID})
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	if len(zr.File) != 2 {
		t.Fatalf("archive has %d entries, want 2 metadata files", len(zr.File))
	}
	for _, f := range zr.File {
		if !strings.HasSuffix(f.Name, ".json") {
			t.Fatalf("unexpected entry %q without a fetcher", f.Name)
		}
	}
}

func TestArchiveWithContentFetcher(t *testing.T) {
	repo, log := newTestRepo(t)
	ctx := context.Background()

	a, err := repo.AddAsset(ctx, &types.NewAsset{
		ClientID:   "acme",
		Name:       "fetched-logo",
		Type:       types.AssetTypeLogo,
		Format:     "svg",
		StorageKey: "assets/acme/logo.svg",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}
	broken, err := repo.AddAsset(ctx, &types.NewAsset{
		ClientID:   "acme",
		Name:       "broken-logo",
		Type:       types.AssetTypeLogo,
		Format:     "svg",
		StorageKey: "assets/acme/missing.svg",
	})
	if err != nil {
		t.Fatalf("seed: %v", err)
	}

	fetcher := &fakeFetcher{content: map[string][]byte{
		"assets/acme/logo.svg": []byte("<svg/>"),
	}}
	svc := NewExportService(log, repo, fetcher)

	data, err := svc.Archive(ctx, []uuid.UUID{a.ID, broken.ID})
	if err != nil {
		t.Fatalf("archive: %v", err)
	}
	zr, err := zip.NewReader(bytes.NewReader(data), int64(len(data)))
	if err != nil {
		t.Fatalf("open archive: %v", err)
	}
	// Two metadata entries plus one fetched content entry; the asset whose
	// content is unavailable degrades to metadata only.
	if len(zr.File) != 3 {
		t.Fatalf("archive has %d entries, want 3", len(zr.File))
	}
	var sawContent bool
	for _, f := range zr.File {
		if f.Name == "fetched-logo_v1.svg" {
			sawContent = true
		}
	}
	if !sawContent {
		t.Fatalf("fetched content entry missing")
	}
}
