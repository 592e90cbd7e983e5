package services

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"github.com/brandvault/brandvault-backend/internal/platform/logger"
	"github.com/brandvault/brandvault-backend/internal/repos"
	"github.com/brandvault/brandvault-backend/internal/types"
)

type BulkOp string

const (
	BulkApprove          BulkOp = "approve"
	BulkReject           BulkOp = "reject"
	BulkMoveToCollection BulkOp = "move-to-collection"
	BulkTag              BulkOp = "tag"
	BulkEditFields       BulkOp = "edit-fields"
	BulkDelete           BulkOp = "delete"
)

type BulkRequest struct {
	Op       BulkOp            `json:"op"`
	AssetIDs []uuid.UUID       `json:"asset_ids"`
	Reason   string            `json:"reason,omitempty"`
	Target   uuid.UUID         `json:"target,omitempty"`
	Tags     []string          `json:"tags,omitempty"`
	Fields   types.AssetUpdate `json:"fields,omitempty"`
}

type ItemFailure struct {
	AssetID uuid.UUID `json:"asset_id"`
	Reason  string    `json:"reason"`
}

type BulkResult struct {
	Op        BulkOp        `json:"op"`
	Succeeded int           `json:"succeeded"`
	Failed    int           `json:"failed"`
	Failures  []ItemFailure `json:"failures,omitempty"`
}

// BulkService applies one command across many asset ids, sequentially and
// non-transactionally: a failing id is recorded and the rest continue, so
// the caller can retry just the failed subset.
type BulkService interface {
	Apply(ctx context.Context, req BulkRequest) (*BulkResult, error)
}

type bulkService struct {
	log  *logger.Logger
	repo *repos.AssetRepo
}

func NewBulkService(log *logger.Logger, repo *repos.AssetRepo) BulkService {
	return &bulkService{
		log:  log.With("service", "BulkService"),
		repo: repo,
	}
}

func (s *bulkService) Apply(ctx context.Context, req BulkRequest) (*BulkResult, error) {
	switch req.Op {
	case BulkApprove, BulkReject, BulkMoveToCollection, BulkTag, BulkEditFields, BulkDelete:
	default:
		return nil, fmt.Errorf("%w: unknown bulk op %q", types.ErrValidation, req.Op)
	}
	if len(req.AssetIDs) == 0 {
		return nil, fmt.Errorf("%w: bulk request needs asset ids", types.ErrValidation)
	}

	result := &BulkResult{Op: req.Op}
	for _, id := range req.AssetIDs {
		if err := s.applyOne(ctx, req, id); err != nil {
			result.Failed++
			result.Failures = append(result.Failures, ItemFailure{AssetID: id, Reason: err.Error()})
			continue
		}
		result.Succeeded++
	}
	s.log.Info("bulk operation finished",
		"op", req.Op,
		"requested", len(req.AssetIDs),
		"succeeded", result.Succeeded,
		"failed", result.Failed,
	)
	return result, nil
}

func (s *bulkService) applyOne(ctx context.Context, req BulkRequest, id uuid.UUID) error {
	switch req.Op {
	case BulkApprove:
		_, err := s.repo.ApproveAsset(ctx, id)
		return err
	case BulkReject:
		_, err := s.repo.RejectAsset(ctx, id, req.Reason)
		return err
	case BulkMoveToCollection:
		_, err := s.repo.AddToCollection(ctx, req.Target, id)
		return err
	case BulkTag:
		_, err := s.repo.TagAsset(ctx, id, req.Tags)
		return err
	case BulkEditFields:
		_, err := s.repo.UpdateAsset(ctx, id, req.Fields)
		return err
	case BulkDelete:
		return s.repo.DeleteAsset(ctx, id)
	default:
		return fmt.Errorf("%w: unknown bulk op %q", types.ErrValidation, req.Op)
	}
}
