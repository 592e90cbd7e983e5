package services

import (
	"context"

	"github.com/google/uuid"

	"github.com/brandvault/brandvault-backend/internal/analytics"
	"github.com/brandvault/brandvault-backend/internal/platform/logger"
	"github.com/brandvault/brandvault-backend/internal/repos"
	"github.com/brandvault/brandvault-backend/internal/types"
)

// LibraryService covers the organizational surface around assets:
// collections, brand guidelines, engine settings and the analytics summary.
type LibraryService interface {
	CreateCollection(ctx context.Context, clientID, name, description string) (*types.Collection, error)
	GetCollection(ctx context.Context, id uuid.UUID) (*types.Collection, error)
	ListCollections(ctx context.Context) []*types.Collection
	RenameCollection(ctx context.Context, id uuid.UUID, name string) (*types.Collection, error)
	AddToCollection(ctx context.Context, collectionID, assetID uuid.UUID) (*types.Collection, error)
	RemoveFromCollection(ctx context.Context, collectionID, assetID uuid.UUID) (*types.Collection, error)
	DeleteCollection(ctx context.Context, id uuid.UUID) error

	CreateGuidelines(ctx context.Context, in *types.Guidelines) (*types.Guidelines, error)
	GetGuidelines(ctx context.Context, id uuid.UUID) (*types.Guidelines, error)
	ListGuidelines(ctx context.Context, clientID string) []*types.Guidelines
	UpdateGuidelines(ctx context.Context, id uuid.UUID, upd types.GuidelinesUpdate) (*types.Guidelines, error)
	DeleteGuidelines(ctx context.Context, id uuid.UUID) error

	Analytics(ctx context.Context) *analytics.Summary
	Settings(ctx context.Context) types.Settings
	SetSettings(ctx context.Context, s types.Settings) error
}

type libraryService struct {
	log  *logger.Logger
	repo *repos.AssetRepo
}

func NewLibraryService(log *logger.Logger, repo *repos.AssetRepo) LibraryService {
	return &libraryService{
		log:  log.With("service", "LibraryService"),
		repo: repo,
	}
}

func (s *libraryService) CreateCollection(ctx context.Context, clientID, name, description string) (*types.Collection, error) {
	return s.repo.CreateCollection(ctx, clientID, name, description)
}

func (s *libraryService) GetCollection(ctx context.Context, id uuid.UUID) (*types.Collection, error) {
	return s.repo.GetCollection(id)
}

func (s *libraryService) ListCollections(ctx context.Context) []*types.Collection {
	return s.repo.ListCollections()
}

func (s *libraryService) RenameCollection(ctx context.Context, id uuid.UUID, name string) (*types.Collection, error) {
	return s.repo.RenameCollection(ctx, id, name)
}

func (s *libraryService) AddToCollection(ctx context.Context, collectionID, assetID uuid.UUID) (*types.Collection, error) {
	return s.repo.AddToCollection(ctx, collectionID, assetID)
}

func (s *libraryService) RemoveFromCollection(ctx context.Context, collectionID, assetID uuid.UUID) (*types.Collection, error) {
	return s.repo.RemoveFromCollection(ctx, collectionID, assetID)
}

func (s *libraryService) DeleteCollection(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteCollection(ctx, id)
}

func (s *libraryService) CreateGuidelines(ctx context.Context, in *types.Guidelines) (*types.Guidelines, error) {
	return s.repo.CreateGuidelines(ctx, in)
}

func (s *libraryService) GetGuidelines(ctx context.Context, id uuid.UUID) (*types.Guidelines, error) {
	return s.repo.GetGuidelines(id)
}

func (s *libraryService) ListGuidelines(ctx context.Context, clientID string) []*types.Guidelines {
	return s.repo.ListGuidelines(clientID)
}

func (s *libraryService) UpdateGuidelines(ctx context.Context, id uuid.UUID, upd types.GuidelinesUpdate) (*types.Guidelines, error) {
	return s.repo.UpdateGuidelines(ctx, id, upd)
}

func (s *libraryService) DeleteGuidelines(ctx context.Context, id uuid.UUID) error {
	return s.repo.DeleteGuidelines(ctx, id)
}

func (s *libraryService) Analytics(ctx context.Context) *analytics.Summary {
	return s.repo.Analytics()
}

func (s *libraryService) Settings(ctx context.Context) types.Settings {
	return s.repo.Settings()
}

func (s *libraryService) SetSettings(ctx context.Context, settings types.Settings) error {
	return s.repo.SetSettings(ctx, settings)
}
