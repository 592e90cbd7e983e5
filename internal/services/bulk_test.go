package services

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/google/uuid"

	"github.com/brandvault/brandvault-backend/internal/platform/logger"
	"github.com/brandvault/brandvault-backend/internal/repos"
	"github.com/brandvault/brandvault-backend/internal/sharelink"
	"github.com/brandvault/brandvault-backend/internal/snapshot"
	"github.com/brandvault/brandvault-backend/internal/types"
)

type nopStore struct{}

func (nopStore) Save(ctx context.Context, doc *snapshot.Document) error { return nil }
func (nopStore) Load(ctx context.Context) (*snapshot.Document, error) {
	return snapshot.Normalize(nil), nil
}

func newTestRepo(t *testing.T) (*repos.AssetRepo, *logger.Logger) {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	repo := repos.NewAssetRepo(log, nopStore{}, sharelink.NewIssuer(log))
	if err := repo.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	return repo, log
}

func seedAsset(t *testing.T, repo *repos.AssetRepo, name string) *types.Asset {
	t.Helper()
	a, err := repo.AddAsset(context.Background(), &types.NewAsset{
		ClientID: "acme",
		Name:     name,
		Type:     types.AssetTypeLogo,
		Format:   "svg",
		Tags:     []string{"seed"},
	})
	if err != nil {
		t.Fatalf("seed asset: %v", err)
	}
	return a
}

func TestBulkValidation(t *testing.T) {
	repo, log := newTestRepo(t)
	svc := NewBulkService(log, repo)
	ctx := context.Background()

	if _, err := svc.Apply(ctx, BulkRequest{Op: "explode", AssetIDs: []uuid.UUID{uuid.New()}}); !errors.Is(err, types.ErrValidation) {
		t.Fatalf("unknown op err=%v, want ErrValidation", err)
	}
	if _, err := svc.Apply(ctx, BulkRequest{Op: BulkApprove}); !errors.Is(err, types.ErrValidation) {
		t.Fatalf("empty ids err=%v, want ErrValidation", err)
	}
}

func TestBulkDeleteReportsPerItemFailures(t *testing.T) {
	repo, log := newTestRepo(t)
	svc := NewBulkService(log, repo)
	ctx := context.Background()

	a := seedAsset(t, repo, "a")
	b := seedAsset(t, repo, "b")
	missing1, missing2 := uuid.New(), uuid.New()

	res, err := svc.Apply(ctx, BulkRequest{
		Op:       BulkDelete,
		AssetIDs: []uuid.UUID{a.ID, missing1, b.ID, missing2},
	})
	if err != nil {
		t.Fatalf("bulk delete must never fail wholesale: %v", err)
	}
	if res.Succeeded != 2 || res.Failed != 2 {
		t.Fatalf("succeeded=%d failed=%d, want 2/2", res.Succeeded, res.Failed)
	}
	if len(res.Failures) != 2 {
		t.Fatalf("failures=%v", res.Failures)
	}
	for _, f := range res.Failures {
		if f.AssetID != missing1 && f.AssetID != missing2 {
			t.Fatalf("unexpected failed id %s", f.AssetID)
		}
		if !strings.Contains(f.Reason, "not found") {
			t.Fatalf("failure reason %q should mention not found", f.Reason)
		}
	}
	if _, err := repo.GetAsset(a.ID); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("existing ids must still be deleted")
	}
}

func TestBulkApproveAndRejectContinuePastFailures(t *testing.T) {
	repo, log := newTestRepo(t)
	svc := NewBulkService(log, repo)
	ctx := context.Background()

	a := seedAsset(t, repo, "a")
	b := seedAsset(t, repo, "b")

	res, err := svc.Apply(ctx, BulkRequest{
		Op:       BulkApprove,
		AssetIDs: []uuid.UUID{a.ID, uuid.New(), b.ID},
	})
	if err != nil {
		t.Fatalf("bulk approve: %v", err)
	}
	if res.Succeeded != 2 || res.Failed != 1 {
		t.Fatalf("succeeded=%d failed=%d", res.Succeeded, res.Failed)
	}
	got, _ := repo.GetAsset(b.ID)
	if !got.IsApproved {
		t.Fatalf("later items must still be processed after a failure")
	}

	res, err = svc.Apply(ctx, BulkRequest{
		Op:       BulkReject,
		AssetIDs: []uuid.UUID{a.ID},
		Reason:   "off-brand colors",
	})
	if err != nil || res.Succeeded != 1 {
		t.Fatalf("bulk reject: %v %+v", err, res)
	}
	got, _ = repo.GetAsset(a.ID)
	if got.IsApproved || len(got.ComplianceNotes) == 0 {
		t.Fatalf("reject must clear approval and append the reason")
	}
}

func TestBulkTagAndMoveToCollection(t *testing.T) {
	repo, log := newTestRepo(t)
	svc := NewBulkService(log, repo)
	ctx := context.Background()

	a := seedAsset(t, repo, "a")
	b := seedAsset(t, repo, "b")

	coll, err := repo.CreateCollection(ctx, "acme", "summer", "")
	if err != nil {
		t.Fatalf("create collection: %v", err)
	}

	res, err := svc.Apply(ctx, BulkRequest{
		Op:       BulkMoveToCollection,
		AssetIDs: []uuid.UUID{a.ID, b.ID},
		Target:   coll.ID,
	})
	if err != nil || res.Failed != 0 {
		t.Fatalf("bulk move: %v %+v", err, res)
	}
	got, _ := repo.GetCollection(coll.ID)
	if len(got.AssetIDs) != 2 {
		t.Fatalf("collection has %d assets, want 2", len(got.AssetIDs))
	}

	res, err = svc.Apply(ctx, BulkRequest{
		Op:       BulkTag,
		AssetIDs: []uuid.UUID{a.ID, b.ID},
		Tags:     []string{"campaign", "seed"},
	})
	if err != nil || res.Succeeded != 2 {
		t.Fatalf("bulk tag: %v %+v", err, res)
	}
	tagged, _ := repo.GetAsset(a.ID)
	if len(tagged.Tags) != 2 {
		t.Fatalf("tags=%v, want seed+campaign without duplicates", tagged.Tags)
	}
}

func TestBulkEditFields(t *testing.T) {
	repo, log := newTestRepo(t)
	svc := NewBulkService(log, repo)
	ctx := context.Background()

	a := seedAsset(t, repo, "a")
	b := seedAsset(t, repo, "b")

	public := true
	res, err := svc.Apply(ctx, BulkRequest{
		Op:       BulkEditFields,
		AssetIDs: []uuid.UUID{a.ID, b.ID},
		Fields:   types.AssetUpdate{IsPublic: &public},
	})
	if err != nil || res.Succeeded != 2 {
		t.Fatalf("bulk edit: %v %+v", err, res)
	}
	got, _ := repo.GetAsset(b.ID)
	if !got.IsPublic {
		t.Fatalf("edit-fields not applied")
	}
}
