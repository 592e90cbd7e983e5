package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/brandvault/brandvault-backend/internal/platform/logger"
	"github.com/brandvault/brandvault-backend/internal/types"
)

func testLog(t *testing.T) *logger.Logger {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return log
}

func TestFileStoreRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "brandvault", "snapshot.json")
	store := NewFileStore(path, testLog(t))
	ctx := context.Background()

	doc := Normalize(nil)
	doc.Assets = []*types.Asset{{
		ID:            uuid.New(),
		ClientID:      "acme",
		Name:          "acme-logo",
		Type:          types.AssetTypeLogo,
		Format:        "svg",
		VersionNumber: 1,
		UploadedAt:    time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC),
	}}
	doc.SortBy = types.SortByName
	doc.SortOrder = types.SortAsc
	doc.SavedAt = time.Now().UTC()

	if err := store.Save(ctx, doc); err != nil {
		t.Fatalf("save: %v", err)
	}

	loaded, err := store.Load(ctx)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if len(loaded.Assets) != 1 || loaded.Assets[0].Name != "acme-logo" {
		t.Fatalf("assets did not round trip: %+v", loaded.Assets)
	}
	if loaded.SortBy != types.SortByName || loaded.SortOrder != types.SortAsc {
		t.Fatalf("sort state did not round trip: %s/%s", loaded.SortBy, loaded.SortOrder)
	}

	// Save must not leave the tmp file behind.
	if _, err := os.Stat(path + ".tmp"); !os.IsNotExist(err) {
		t.Fatalf("tmp file left behind: %v", err)
	}
}

func TestFileStoreLoadMissingFile(t *testing.T) {
	store := NewFileStore(filepath.Join(t.TempDir(), "none.json"), testLog(t))
	doc, err := store.Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.SchemaVersion != SchemaVersion {
		t.Fatalf("SchemaVersion=%d, want %d", doc.SchemaVersion, SchemaVersion)
	}
	if doc.Assets == nil || len(doc.Assets) != 0 {
		t.Fatalf("expected empty asset slice, got %v", doc.Assets)
	}
}

func TestLoadOldSchemaDefaultsMissingFields(t *testing.T) {
	// A v1-era snapshot: no schema_version, no share_links, no sort state,
	// and assets without version numbers.
	old := `{
	  "assets": [
	    {"id": "` + uuid.NewString() + `", "client_id": "acme", "name": "legacy", "type": "logo", "format": "png"}
	  ]
	}`
	path := filepath.Join(t.TempDir(), "snapshot.json")
	if err := os.WriteFile(path, []byte(old), 0o644); err != nil {
		t.Fatalf("seed old snapshot: %v", err)
	}

	doc, err := NewFileStore(path, testLog(t)).Load(context.Background())
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if doc.SchemaVersion != SchemaVersion {
		t.Fatalf("SchemaVersion=%d, want upgrade to %d", doc.SchemaVersion, SchemaVersion)
	}
	if doc.ShareLinks == nil || doc.Collections == nil || doc.Guidelines == nil {
		t.Fatalf("missing slices not defaulted")
	}
	if doc.SortBy != types.SortByDate || doc.SortOrder != types.SortDesc {
		t.Fatalf("sort defaults wrong: %s/%s", doc.SortBy, doc.SortOrder)
	}
	if doc.Assets[0].VersionNumber != 1 {
		t.Fatalf("legacy asset version not defaulted: %d", doc.Assets[0].VersionNumber)
	}
}
