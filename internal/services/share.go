package services

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/brandvault/brandvault-backend/internal/platform/logger"
	"github.com/brandvault/brandvault-backend/internal/repos"
	"github.com/brandvault/brandvault-backend/internal/sharelink"
	"github.com/brandvault/brandvault-backend/internal/types"
)

// ShareService issues and resolves share links through the repository and
// renders {origin}/share/{id} URLs.
type ShareService interface {
	Issue(ctx context.Context, assetIDs []uuid.UUID, ttl time.Duration, opts sharelink.Options) (*types.ShareLinkInfo, error)
	Resolve(ctx context.Context, linkID, password string) ([]*types.Asset, error)
	Get(ctx context.Context, linkID string) (*types.ShareLinkInfo, error)
	List(ctx context.Context) []*types.ShareLinkInfo
}

type shareService struct {
	log    *logger.Logger
	repo   *repos.AssetRepo
	origin string
}

func NewShareService(log *logger.Logger, repo *repos.AssetRepo, origin string) ShareService {
	return &shareService{
		log:    log.With("service", "ShareService"),
		repo:   repo,
		origin: strings.TrimRight(origin, "/"),
	}
}

func (s *shareService) Issue(ctx context.Context, assetIDs []uuid.UUID, ttl time.Duration, opts sharelink.Options) (*types.ShareLinkInfo, error) {
	link, err := s.repo.IssueShareLink(ctx, assetIDs, ttl, opts)
	if err != nil {
		return nil, err
	}
	return s.info(link), nil
}

func (s *shareService) Resolve(ctx context.Context, linkID, password string) ([]*types.Asset, error) {
	return s.repo.ResolveShareLink(ctx, linkID, password)
}

func (s *shareService) Get(ctx context.Context, linkID string) (*types.ShareLinkInfo, error) {
	link, err := s.repo.GetShareLink(linkID)
	if err != nil {
		return nil, err
	}
	return s.info(link), nil
}

func (s *shareService) List(ctx context.Context) []*types.ShareLinkInfo {
	links := s.repo.ListShareLinks()
	out := make([]*types.ShareLinkInfo, 0, len(links))
	for _, link := range links {
		out = append(out, s.info(link))
	}
	return out
}

// info strips the password hash; only existence of protection is exposed.
func (s *shareService) info(link *types.ShareLink) *types.ShareLinkInfo {
	origin := s.origin
	if origin == "" {
		origin = s.repo.Settings().Origin
	}
	return &types.ShareLinkInfo{
		ID:          link.ID,
		URL:         fmt.Sprintf("%s/share/%s", strings.TrimRight(origin, "/"), link.ID),
		AssetIDs:    link.AssetIDs,
		CreatedAt:   link.CreatedAt,
		ExpiresAt:   link.ExpiresAt,
		AccessCount: link.AccessCount,
		MaxAccess:   link.MaxAccess,
		Protected:   link.Protected(),
	}
}
