package claims

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

type Service struct {
	repo Repository
}

func NewService(repo Repository) *Service {
	return &Service{repo: repo}
}

// Resolve confirms the canonical WorkerID for a claim before any mutation.
// A positive hint is trusted; otherwise the claim→worker view is consulted,
// then the incident master. ErrNotFound means no write may proceed.
func (s *Service) Resolve(ctx context.Context, irn int64, workerIDHint int64) (int64, error) {
	if irn <= 0 {
		return 0, NewValidationError("IRN")
	}
	if workerIDHint > 0 {
		return workerIDHint, nil
	}

	workerID, err := s.repo.WorkerIDByIRN(ctx, irn)
	if err == nil {
		return workerID, nil
	}
	if !errors.Is(err, ErrNotFound) {
		return 0, fmt.Errorf("resolve worker for claim %d: %w", irn, err)
	}

	workerID, err = s.repo.WorkerIDFromIncidentMaster(ctx, irn)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return 0, ErrNotFound
		}
		return 0, fmt.Errorf("resolve worker for claim %d: %w", irn, err)
	}
	return workerID, nil
}

// ReviewRowExists is the existence preflight for update-only mutations: a
// caller about to update a (claim, stage) row must see true here or fail with
// ErrMissingRow instead of silently no-opping or inserting.
func (s *Service) ReviewRowExists(ctx context.Context, irn int64, stage Stage) (bool, error) {
	if irn <= 0 {
		return false, NewValidationError("IRN")
	}
	count, err := s.repo.CountReviewRows(ctx, irn, stage)
	if err != nil {
		return false, fmt.Errorf("count %s review rows for claim %d: %w", stage, irn, err)
	}
	return count > 0, nil
}

// GetSummary returns the claim header for display.
func (s *Service) GetSummary(ctx context.Context, irn int64) (*ClaimSummary, error) {
	if irn <= 0 {
		return nil, NewValidationError("IRN")
	}
	return s.repo.GetSummary(ctx, irn)
}

// SearchByName finds claims by worker name fragment.
func (s *Service) SearchByName(ctx context.Context, q string, limit, offset int) ([]*ClaimSummary, int, error) {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil, 0, NewValidationError("search name")
	}
	return s.repo.SearchByName(ctx, q, limit, offset)
}
