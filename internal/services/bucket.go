package services

import (
	"context"
	"fmt"
	"io"
	"os"
	"time"

	"cloud.google.com/go/storage"
	"google.golang.org/api/option"

	"github.com/brandvault/brandvault-backend/internal/platform/logger"
)

// UploadResult is the object-storage collaborator contract: where the bytes
// ended up and, when the backend generated one, a thumbnail.
type UploadResult struct {
	URL          string `json:"url"`
	ThumbnailURL string `json:"thumbnail_url,omitempty"`
	Path         string `json:"path"`
}

// BucketService is the engine's view of the object-storage collaborator. The
// engine treats it as a black box; failures are surfaced without touching
// the collection.
type BucketService interface {
	Upload(ctx context.Context, key, contentType string, file io.Reader) (*UploadResult, error)
	Delete(ctx context.Context, key string) error
	GetPublicURL(key string) string
}

type bucketService struct {
	log           *logger.Logger
	storageClient *storage.Client
	bucketName    string
	cdnDomain     string
}

func NewBucketService(log *logger.Logger) (BucketService, error) {
	serviceLog := log.With("service", "BucketService")
	bucket := os.Getenv("GCS_BUCKET_NAME")
	if bucket == "" {
		return nil, fmt.Errorf("missing env var GCS_BUCKET_NAME")
	}
	cdnDomain := os.Getenv("CDN_DOMAIN")
	saPath := os.Getenv("GOOGLE_APPLICATION_CREDENTIALS_JSON")
	if saPath == "" {
		serviceLog.Warn("GOOGLE_APPLICATION_CREDENTIALS_JSON not set, relying on ambient ADC")
	}
	ctx := context.Background()
	var stClient *storage.Client
	var err error
	if saPath != "" {
		stClient, err = storage.NewClient(ctx, option.WithCredentialsFile(saPath), option.WithScopes(storage.ScopeReadWrite))
	} else {
		stClient, err = storage.NewClient(ctx, option.WithScopes(storage.ScopeReadWrite))
	}
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	return &bucketService{
		log:           serviceLog,
		storageClient: stClient,
		bucketName:    bucket,
		cdnDomain:     cdnDomain,
	}, nil
}

func (bs *bucketService) Upload(ctx context.Context, key, contentType string, file io.Reader) (*UploadResult, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	w := bs.storageClient.Bucket(bs.bucketName).Object(key).NewWriter(ctx)
	if contentType != "" {
		w.ContentType = contentType
	}
	if _, err := io.Copy(w, file); err != nil {
		_ = w.Close()
		return nil, fmt.Errorf("write object %q: %w", key, err)
	}
	if err := w.Close(); err != nil {
		return nil, fmt.Errorf("close object writer %q: %w", key, err)
	}
	return &UploadResult{
		URL:  bs.GetPublicURL(key),
		Path: key,
	}, nil
}

func (bs *bucketService) Delete(ctx context.Context, key string) error {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()
	o := bs.storageClient.Bucket(bs.bucketName).Object(key)
	if err := o.Delete(ctx); err != nil {
		return fmt.Errorf("delete object %q: %w", key, err)
	}
	return nil
}

// Fetch reads an object back out, which lets the bucket double as the
// archive exporter's content source.
func (bs *bucketService) Fetch(ctx context.Context, key string) ([]byte, error) {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Minute)
	defer cancel()
	r, err := bs.storageClient.Bucket(bs.bucketName).Object(key).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open object %q: %w", key, err)
	}
	defer r.Close()
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read object %q: %w", key, err)
	}
	return data, nil
}

func (bs *bucketService) GetPublicURL(key string) string {
	if bs.cdnDomain != "" {
		return fmt.Sprintf("https://%s/%s", bs.cdnDomain, key)
	}
	return fmt.Sprintf("https://storage.googleapis.com/%s/%s", bs.bucketName, key)
}
