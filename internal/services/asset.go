package services

import (
	"context"
	"fmt"
	"io"
	"path"
	"strings"

	"github.com/google/uuid"

	"github.com/brandvault/brandvault-backend/internal/platform/logger"
	"github.com/brandvault/brandvault-backend/internal/repos"
	"github.com/brandvault/brandvault-backend/internal/types"
)

// AssetService fronts the repository's asset commands and composes the
// object-storage collaborator into the upload path.
type AssetService interface {
	Create(ctx context.Context, in *types.NewAsset) (*types.Asset, error)
	CreateFromUpload(ctx context.Context, in *types.NewAsset, filename string, contentType string, file io.Reader) (*types.Asset, error)
	Get(ctx context.Context, id uuid.UUID) (*types.Asset, error)
	Update(ctx context.Context, id uuid.UUID, upd types.AssetUpdate) (*types.Asset, error)
	Delete(ctx context.Context, id uuid.UUID) error
	DeleteMany(ctx context.Context, ids []uuid.UUID) (int, error)
	Approve(ctx context.Context, id uuid.UUID) (*types.Asset, error)
	Reject(ctx context.Context, id uuid.UUID, reason string) (*types.Asset, error)
	SetAsPrimary(ctx context.Context, id uuid.UUID) (*types.Asset, error)
	CreateVersion(ctx context.Context, originalID uuid.UUID, in *types.NewAsset) (*types.Asset, error)
	GetVersions(ctx context.Context, parentID uuid.UUID) []*types.Asset
	RevertToVersion(ctx context.Context, versionID uuid.UUID) (*types.Asset, error)
	RecordDownload(ctx context.Context, id uuid.UUID) (*types.Asset, error)
	RecordUsage(ctx context.Context, id uuid.UUID, rec types.UsageRecord) (*types.Asset, error)
	Tag(ctx context.Context, id uuid.UUID, tags []string) (*types.Asset, error)
	Query(ctx context.Context, criteria types.FilterCriteria, key types.SortKey, order types.SortOrder) []*types.Asset
	SaveQueryState(ctx context.Context, criteria types.FilterCriteria, key types.SortKey, order types.SortOrder) error
}

type assetService struct {
	log    *logger.Logger
	repo   *repos.AssetRepo
	bucket BucketService
}

func NewAssetService(log *logger.Logger, repo *repos.AssetRepo, bucket BucketService) AssetService {
	return &assetService{
		log:    log.With("service", "AssetService"),
		repo:   repo,
		bucket: bucket,
	}
}

func (s *assetService) Create(ctx context.Context, in *types.NewAsset) (*types.Asset, error) {
	return s.repo.AddAsset(ctx, in)
}

// CreateFromUpload pushes the file bytes to the object store first; a
// storage failure surfaces without mutating the collection.
func (s *assetService) CreateFromUpload(ctx context.Context, in *types.NewAsset, filename, contentType string, file io.Reader) (*types.Asset, error) {
	if in == nil {
		return nil, fmt.Errorf("%w: missing asset payload", types.ErrValidation)
	}
	if s.bucket == nil {
		return nil, fmt.Errorf("%w: object storage is not configured", types.ErrStorage)
	}
	key := uploadKey(in.ClientID, filename)
	res, err := s.bucket.Upload(ctx, key, contentType, file)
	if err != nil {
		return nil, fmt.Errorf("%w: upload %q: %v", types.ErrStorage, filename, err)
	}
	in.URL = res.URL
	in.ThumbnailURL = res.ThumbnailURL
	in.StorageKey = res.Path
	if in.Name == "" {
		in.Name = strings.TrimSuffix(filename, path.Ext(filename))
	}
	if in.Format == "" {
		in.Format = strings.TrimPrefix(strings.ToLower(path.Ext(filename)), ".")
	}
	return s.repo.AddAsset(ctx, in)
}

func uploadKey(clientID, filename string) string {
	base := path.Base(filename)
	if base == "." || base == "/" || base == "" {
		base = "upload"
	}
	return path.Join("assets", clientID, uuid.NewString()+"_"+base)
}

func (s *assetService) Get(ctx context.Context, id uuid.UUID) (*types.Asset, error) {
	return s.repo.GetAsset(id)
}

func (s *assetService) Update(ctx context.Context, id uuid.UUID, upd types.AssetUpdate) (*types.Asset, error) {
	return s.repo.UpdateAsset(ctx, id, upd)
}

func (s *assetService) Delete(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteAsset(ctx, id)
}

func (s *assetService) DeleteMany(ctx context.Context, ids []uuid.UUID) (int, error) {
	return s.repo.DeleteAssets(ctx, ids)
}

func (s *assetService) Approve(ctx context.Context, id uuid.UUID) (*types.Asset, error) {
	return s.repo.ApproveAsset(ctx, id)
}

func (s *assetService) Reject(ctx context.Context, id uuid.UUID, reason string) (*types.Asset, error) {
	return s.repo.RejectAsset(ctx, id, reason)
}

func (s *assetService) SetAsPrimary(ctx context.Context, id uuid.UUID) (*types.Asset, error) {
	return s.repo.SetAsPrimary(ctx, id)
}

func (s *assetService) CreateVersion(ctx context.Context, originalID uuid.UUID, in *types.NewAsset) (*types.Asset, error) {
	return s.repo.CreateVersion(ctx, originalID, in)
}

func (s *assetService) GetVersions(ctx context.Context, parentID uuid.UUID) []*types.Asset {
	return s.repo.GetVersions(parentID)
}

func (s *assetService) RevertToVersion(ctx context.Context, versionID uuid.UUID) (*types.Asset, error) {
	return s.repo.RevertToVersion(ctx, versionID)
}

func (s *assetService) RecordDownload(ctx context.Context, id uuid.UUID) (*types.Asset, error) {
	return s.repo.RecordDownload(ctx, id)
}

func (s *assetService) RecordUsage(ctx context.Context, id uuid.UUID, rec types.UsageRecord) (*types.Asset, error) {
	return s.repo.RecordUsage(ctx, id, rec)
}

func (s *assetService) Tag(ctx context.Context, id uuid.UUID, tags []string) (*types.Asset, error) {
	return s.repo.TagAsset(ctx, id, tags)
}

func (s *assetService) Query(ctx context.Context, criteria types.FilterCriteria, key types.SortKey, order types.SortOrder) []*types.Asset {
	return s.repo.Query(criteria, key, order)
}

func (s *assetService) SaveQueryState(ctx context.Context, criteria types.FilterCriteria, key types.SortKey, order types.SortOrder) error {
	return s.repo.SaveQueryState(ctx, criteria, key, order)
}
