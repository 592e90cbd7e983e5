package sharelink

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"

	"github.com/brandvault/brandvault-backend/internal/platform/logger"
	"github.com/brandvault/brandvault-backend/internal/types"
)

func newTestIssuer(t *testing.T) *Issuer {
	t.Helper()
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	return NewIssuer(log)
}

func intPtr(n int) *int { return &n }

func TestIssueValidation(t *testing.T) {
	i := newTestIssuer(t)

	if _, err := i.Issue(nil, time.Hour, Options{}); !errors.Is(err, types.ErrValidation) {
		t.Fatalf("empty asset list: err=%v, want ErrValidation", err)
	}
	if _, err := i.Issue([]uuid.UUID{uuid.New()}, time.Hour, Options{MaxAccess: intPtr(0)}); !errors.Is(err, types.ErrValidation) {
		t.Fatalf("zero max access: err=%v, want ErrValidation", err)
	}
}

func TestLinkIDsAreUnguessable(t *testing.T) {
	i := newTestIssuer(t)
	seen := map[string]bool{}
	for n := 0; n < 50; n++ {
		link, err := i.Issue([]uuid.UUID{uuid.New()}, time.Hour, Options{})
		if err != nil {
			t.Fatalf("issue: %v", err)
		}
		if len(link.ID) < 20 {
			t.Fatalf("link id %q too short to be non-enumerable", link.ID)
		}
		if seen[link.ID] {
			t.Fatalf("duplicate link id %q", link.ID)
		}
		seen[link.ID] = true
	}
}

func TestResolveConsumesAccessBudget(t *testing.T) {
	i := newTestIssuer(t)
	assetID := uuid.New()
	link, err := i.Issue([]uuid.UUID{assetID}, time.Hour, Options{MaxAccess: intPtr(3)})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	for n := 0; n < 3; n++ {
		ids, err := i.Resolve(link.ID, "")
		if err != nil {
			t.Fatalf("resolve %d: %v", n+1, err)
		}
		if len(ids) != 1 || ids[0] != assetID {
			t.Fatalf("resolve %d returned %v", n+1, ids)
		}
	}
	if _, err := i.Resolve(link.ID, ""); !errors.Is(err, types.ErrAccessLimit) {
		t.Fatalf("4th resolve err=%v, want ErrAccessLimit", err)
	}

	stored, err := i.Get(link.ID)
	if err != nil {
		t.Fatalf("get: %v", err)
	}
	if stored.AccessCount != 3 {
		t.Fatalf("AccessCount=%d, want 3 (failed attempts must not consume budget)", stored.AccessCount)
	}
}

func TestResolveExpiry(t *testing.T) {
	i := newTestIssuer(t)
	clock := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)
	i.now = func() time.Time { return clock }

	zero, err := i.Issue([]uuid.UUID{uuid.New()}, 0, Options{})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	// ttl=0 means immediate expiry, even with a fresh access count.
	if _, err := i.Resolve(zero.ID, ""); !errors.Is(err, types.ErrExpired) {
		t.Fatalf("ttl=0 resolve err=%v, want ErrExpired", err)
	}

	hour, err := i.Issue([]uuid.UUID{uuid.New()}, time.Hour, Options{})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := i.Resolve(hour.ID, ""); err != nil {
		t.Fatalf("fresh link resolve: %v", err)
	}
	clock = clock.Add(2 * time.Hour)
	if _, err := i.Resolve(hour.ID, ""); !errors.Is(err, types.ErrExpired) {
		t.Fatalf("expired resolve err=%v, want ErrExpired", err)
	}
}

func TestResolvePassword(t *testing.T) {
	i := newTestIssuer(t)
	link, err := i.Issue([]uuid.UUID{uuid.New()}, time.Hour, Options{Password: "hunter2"})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}

	if _, err := i.Resolve(link.ID, "wrong"); !errors.Is(err, types.ErrAuth) {
		t.Fatalf("wrong password err=%v, want ErrAuth", err)
	}
	if _, err := i.Resolve(link.ID, ""); !errors.Is(err, types.ErrAuth) {
		t.Fatalf("missing password err=%v, want ErrAuth", err)
	}
	if _, err := i.Resolve(link.ID, "hunter2"); err != nil {
		t.Fatalf("correct password resolve: %v", err)
	}
	if link.PasswordHash == "hunter2" {
		t.Fatalf("password stored in the clear")
	}
}

func TestResolveUnknownLink(t *testing.T) {
	i := newTestIssuer(t)
	if _, err := i.Resolve("nope", ""); !errors.Is(err, types.ErrNotFound) {
		t.Fatalf("unknown link err=%v, want ErrNotFound", err)
	}
}

func TestRestoreRoundTrip(t *testing.T) {
	i := newTestIssuer(t)
	link, err := i.Issue([]uuid.UUID{uuid.New()}, time.Hour, Options{MaxAccess: intPtr(2)})
	if err != nil {
		t.Fatalf("issue: %v", err)
	}
	if _, err := i.Resolve(link.ID, ""); err != nil {
		t.Fatalf("resolve: %v", err)
	}

	restored := newTestIssuer(t)
	restored.Restore(i.Links())

	got, err := restored.Get(link.ID)
	if err != nil {
		t.Fatalf("get after restore: %v", err)
	}
	if got.AccessCount != 1 {
		t.Fatalf("AccessCount=%d after restore, want 1", got.AccessCount)
	}
	if _, err := restored.Resolve(link.ID, ""); err != nil {
		t.Fatalf("resolve after restore: %v", err)
	}
	if _, err := restored.Resolve(link.ID, ""); !errors.Is(err, types.ErrAccessLimit) {
		t.Fatalf("budget not restored: err=%v", err)
	}
}
