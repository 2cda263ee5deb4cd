package attachments

import (
	"bytes"
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/owc/owc/internal/domain/claims"
	"github.com/owc/owc/internal/platform/blobstore"
)

// Service persists supporting documents: upload to object storage under a
// deterministic key, then upsert the single (claim, category) row in the
// shared attachments table.
type Service struct {
	store  blobstore.ObjectStore
	repo   Repository
	logger zerolog.Logger
	nowFn  func() time.Time
}

func NewService(store blobstore.ObjectStore, repo Repository, logger zerolog.Logger) *Service {
	return &Service{store: store, repo: repo, logger: logger, nowFn: time.Now}
}

// WithClock overrides the clock used for storage-key timestamps.
func (s *Service) WithClock(nowFn func() time.Time) *Service {
	s.nowFn = nowFn
	return s
}

// Upload pushes the file to object storage and returns the stored path. The
// attachments-table row is NOT written here; the save pipeline records rows
// as its last step so a failed save never points at a half-finished upload.
// Errors carry the category name for the caller's error surface.
func (s *Service) Upload(ctx context.Context, irn int64, up Upload) (string, error) {
	if !up.Category.Known() {
		return "", claims.NewValidationError("attachment category")
	}
	if up.FileName == "" {
		return "", claims.NewValidationError("attachment file name")
	}

	path := StoragePath(up.Category, irn, up.FileName, s.nowFn())
	if err := s.store.Put(ctx, path, up.ContentType, bytes.NewReader(up.Content)); err != nil {
		return "", fmt.Errorf("upload %q: %w", up.Category, err)
	}

	s.logger.Debug().
		Int64("irn", irn).
		Str("category", string(up.Category)).
		Str("path", path).
		Msg("attachment uploaded")

	return path, nil
}

// RecordRow upserts the (irn, category) attachments-table row to point at
// path. Explicit exists→update-else-insert keeps at most one row per pair.
func (s *Service) RecordRow(ctx context.Context, irn int64, category Category, path string) error {
	exists, err := s.repo.RowExists(ctx, irn, category)
	if err != nil {
		return fmt.Errorf("check attachment row %q: %w", category, err)
	}

	row := &Attachment{IRN: irn, AttachmentType: category, FilePath: path}
	if exists {
		if err := s.repo.UpdateRow(ctx, row); err != nil {
			return fmt.Errorf("update attachment row %q: %w", category, err)
		}
		return nil
	}
	if err := s.repo.InsertRow(ctx, row); err != nil {
		return fmt.Errorf("insert attachment row %q: %w", category, err)
	}
	return nil
}

// Persist uploads and records in one call; used outside the claim-save
// pipeline (single-document replacement from the attachments tab).
func (s *Service) Persist(ctx context.Context, irn int64, up Upload) (*Attachment, error) {
	path, err := s.Upload(ctx, irn, up)
	if err != nil {
		return nil, err
	}
	if err := s.RecordRow(ctx, irn, up.Category, path); err != nil {
		return nil, err
	}
	return &Attachment{IRN: irn, AttachmentType: up.Category, FilePath: path}, nil
}

// ListWithURLs returns the claim's attachment rows with each stored path
// resolved to a fetchable URL (public or time-limited signed, backend's
// choice). Callers holding an in-memory preview of a just-selected file
// should prefer it over these URLs.
func (s *Service) ListWithURLs(ctx context.Context, irn int64) ([]*Attachment, error) {
	rows, err := s.repo.ListByClaim(ctx, irn)
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		url, err := s.store.ResolveURL(ctx, row.FilePath)
		if err != nil {
			return nil, fmt.Errorf("resolve url for %q: %w", row.AttachmentType, err)
		}
		row.URL = url
	}
	return rows, nil
}
