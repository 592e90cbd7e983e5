package server

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/brandvault/brandvault-backend/internal/handlers"
	"github.com/brandvault/brandvault-backend/internal/platform/logger"
	"github.com/brandvault/brandvault-backend/internal/repos"
	"github.com/brandvault/brandvault-backend/internal/services"
	"github.com/brandvault/brandvault-backend/internal/sharelink"
	"github.com/brandvault/brandvault-backend/internal/snapshot"
)

type nopStore struct{}

func (nopStore) Save(ctx context.Context, doc *snapshot.Document) error { return nil }
func (nopStore) Load(ctx context.Context) (*snapshot.Document, error) {
	return snapshot.Normalize(nil), nil
}

func newTestRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)
	log, err := logger.New("development")
	if err != nil {
		t.Fatalf("logger: %v", err)
	}
	repo := repos.NewAssetRepo(log, nopStore{}, sharelink.NewIssuer(log))
	if err := repo.Load(context.Background()); err != nil {
		t.Fatalf("load: %v", err)
	}
	library := services.NewLibraryService(log, repo)
	return NewRouter(RouterConfig{
		ServiceName:        "brandvault-test",
		HealthcheckHandler: handlers.NewHealthcheckHandler(),
		AssetHandler:       handlers.NewAssetHandler(log, services.NewAssetService(log, repo, nil)),
		ShareHandler:       handlers.NewShareHandler(log, services.NewShareService(log, repo, "http://localhost:8080")),
		CollectionHandler:  handlers.NewCollectionHandler(log, library),
		GuidelinesHandler:  handlers.NewGuidelinesHandler(log, library),
		AnalyticsHandler:   handlers.NewAnalyticsHandler(log, library),
		BulkHandler:        handlers.NewBulkHandler(log, services.NewBulkService(log, repo)),
		ExportHandler:      handlers.NewExportHandler(log, services.NewExportService(log, repo, nil)),
	})
}

func doJSON(t *testing.T, router *gin.Engine, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func createAsset(t *testing.T, router *gin.Engine, name string) string {
	t.Helper()
	w := doJSON(t, router, http.MethodPost, "/api/assets", map[string]any{
		"client_id": "acme",
		"name":      name,
		"type":      "logo",
		"format":    "svg",
		"file_size": 2048,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create asset status=%d body=%s", w.Code, w.Body.String())
	}
	var resp struct {
		Asset struct {
			ID string `json:"id"`
		} `json:"asset"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	return resp.Asset.ID
}

func TestHealthcheck(t *testing.T) {
	router := newTestRouter(t)
	w := doJSON(t, router, http.MethodGet, "/healthcheck", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("status=%d", w.Code)
	}
}

func TestAssetLifecycleOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	id := createAsset(t, router, "primary-logo")

	w := doJSON(t, router, http.MethodGet, "/api/assets/"+id, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("get status=%d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodGet, "/api/assets", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("list status=%d", w.Code)
	}
	var list struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if list.Count != 1 {
		t.Fatalf("count=%d, want 1", list.Count)
	}

	w = doJSON(t, router, http.MethodPost, "/api/assets/"+id+"/approve", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("approve status=%d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodDelete, "/api/assets/"+id, nil)
	if w.Code != http.StatusNoContent {
		t.Fatalf("delete status=%d", w.Code)
	}

	w = doJSON(t, router, http.MethodGet, "/api/assets/"+id, nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("get after delete status=%d", w.Code)
	}
}

func TestAssetBadRequests(t *testing.T) {
	router := newTestRouter(t)

	w := doJSON(t, router, http.MethodGet, "/api/assets/not-a-uuid", nil)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("bad uuid status=%d", w.Code)
	}

	w = doJSON(t, router, http.MethodPost, "/api/assets", map[string]any{"name": "no-client"})
	if w.Code != http.StatusBadRequest {
		t.Fatalf("missing client_id status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestShareLinkOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	id := createAsset(t, router, "share-me")

	w := doJSON(t, router, http.MethodPost, "/api/share-links", map[string]any{
		"asset_ids":   []string{id},
		"ttl_seconds": 3600,
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("issue status=%d body=%s", w.Code, w.Body.String())
	}
	var issued struct {
		ShareLink struct {
			ID  string `json:"id"`
			URL string `json:"url"`
		} `json:"share_link"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &issued); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if issued.ShareLink.URL == "" {
		t.Fatalf("issued link has no url: %s", w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/share/"+issued.ShareLink.ID, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("resolve status=%d body=%s", w.Code, w.Body.String())
	}
	var resolved struct {
		Count int `json:"count"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resolved); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resolved.Count != 1 {
		t.Fatalf("resolved count=%d, want 1", resolved.Count)
	}

	w = doJSON(t, router, http.MethodPost, "/share/nope", nil)
	if w.Code != http.StatusNotFound {
		t.Fatalf("unknown link status=%d", w.Code)
	}
}

func TestBulkOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	id := createAsset(t, router, "bulk-target")

	w := doJSON(t, router, http.MethodPost, "/api/assets/bulk", map[string]any{
		"op":        "approve",
		"asset_ids": []string{id},
	})
	if w.Code != http.StatusOK {
		t.Fatalf("bulk status=%d body=%s", w.Code, w.Body.String())
	}

	w = doJSON(t, router, http.MethodPost, "/api/assets/bulk", map[string]any{
		"op":        "approve",
		"asset_ids": []string{id, "00000000-0000-0000-0000-000000000001"},
	})
	if w.Code != http.StatusMultiStatus {
		t.Fatalf("partial bulk status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestCollectionsOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	assetID := createAsset(t, router, "collected")

	w := doJSON(t, router, http.MethodPost, "/api/collections", map[string]any{
		"client_id": "acme",
		"name":      "Spring Campaign",
	})
	if w.Code != http.StatusCreated {
		t.Fatalf("create collection status=%d body=%s", w.Code, w.Body.String())
	}
	var created struct {
		Collection struct {
			ID string `json:"id"`
		} `json:"collection"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &created); err != nil {
		t.Fatalf("decode: %v", err)
	}

	path := fmt.Sprintf("/api/collections/%s/assets/%s", created.Collection.ID, assetID)
	w = doJSON(t, router, http.MethodPut, path, nil)
	if w.Code != http.StatusOK {
		t.Fatalf("add to collection status=%d body=%s", w.Code, w.Body.String())
	}
}

func TestAnalyticsOverHTTP(t *testing.T) {
	router := newTestRouter(t)
	createAsset(t, router, "counted")

	w := doJSON(t, router, http.MethodGet, "/api/analytics", nil)
	if w.Code != http.StatusOK {
		t.Fatalf("analytics status=%d", w.Code)
	}
	var resp struct {
		Summary struct {
			TotalAssets int `json:"total_assets"`
		} `json:"summary"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if resp.Summary.TotalAssets != 1 {
		t.Fatalf("total_assets=%d, want 1", resp.Summary.TotalAssets)
	}
}
