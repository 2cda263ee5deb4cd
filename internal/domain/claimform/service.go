package claimform

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/owc/owc/internal/domain/attachments"
	"github.com/owc/owc/internal/domain/claims"
)

// WorkerResolver confirms the claim→worker mapping before any write.
type WorkerResolver interface {
	Resolve(ctx context.Context, irn, workerIDHint int64) (int64, error)
}

// Uploader pushes files to object storage and records attachment rows. The
// two halves are called at opposite ends of the save pipeline.
type Uploader interface {
	Upload(ctx context.Context, irn int64, up attachments.Upload) (string, error)
	RecordRow(ctx context.Context, irn int64, category attachments.Category, path string) error
}

// InsurerDirectory resolves an insurance-provider code to its display name.
// Codes are normalized before lookup; see SaveClaim.
type InsurerDirectory interface {
	InsurerName(ctx context.Context, code string) (string, error)
}

// Service owns loading and saving the multi-table claim snapshot.
type Service struct {
	repo     Repository
	resolver WorkerResolver
	uploader Uploader
	insurers InsurerDirectory
	logger   zerolog.Logger
}

func NewService(repo Repository, resolver WorkerResolver, uploader Uploader, insurers InsurerDirectory, logger zerolog.Logger) *Service {
	return &Service{repo: repo, resolver: resolver, uploader: uploader, insurers: insurers, logger: logger}
}

// Load reads every table a claim's editing session needs and assembles the
// original snapshot the diff runs against. Pure read; the returned draft is
// the session's private copy.
func (s *Service) Load(ctx context.Context, irn int64) (*Draft, error) {
	workerID, err := s.resolver.Resolve(ctx, irn, 0)
	if err != nil {
		return nil, err
	}

	formType, err := s.repo.ClaimFormType(ctx, irn)
	if err != nil {
		return nil, fmt.Errorf("detect claim variant: %w", err)
	}
	d := NewDraft(irn, workerID, formType)

	worker, err := s.repo.LoadWorker(ctx, workerID)
	if err != nil {
		return nil, fmt.Errorf("load worker %d: %w", workerID, err)
	}
	d.Worker = *worker

	incident, err := s.repo.LoadIncident(ctx, irn)
	if err != nil {
		return nil, fmt.Errorf("load incident master: %w", err)
	}
	d.Incident = *incident

	if formType == claims.Form3 || formType == claims.Form4 {
		if err := s.repo.LoadFormMaster(ctx, irn, d); err != nil && !errors.Is(err, claims.ErrNotFound) {
			return nil, fmt.Errorf("load form master: %w", err)
		}
	}

	if d.Dependants, err = s.repo.ListDependants(ctx, workerID); err != nil {
		return nil, fmt.Errorf("load dependants: %w", err)
	}
	for i := range d.Dependants {
		d.Dependants[i].State = RowExisting
	}
	if d.WorkHistory, err = s.repo.ListWorkHistory(ctx, workerID); err != nil {
		return nil, fmt.Errorf("load work history: %w", err)
	}
	for i := range d.WorkHistory {
		d.WorkHistory[i].State = RowExisting
	}

	return d, nil
}

// SaveClaim persists a confirmed draft. Steps run strictly in sequence
// because later steps read earlier steps' side effects: uploads first so the
// flat updates can reference stored paths, flat updates before the master
// upsert, child reconciliation next, and attachment rows recorded last so a
// failed save never points at a half-finished upload. Any failure aborts the
// remaining steps; effects already committed stay committed.
func (s *Service) SaveClaim(ctx context.Context, irn, workerID int64, draft *Draft, uploads []attachments.Upload) (int64, error) {
	draft.Sanitize()
	if err := ValidateRequired(draft); err != nil {
		return 0, err
	}

	workerID, err := s.resolver.Resolve(ctx, irn, workerID)
	if err != nil {
		return 0, err
	}
	draft.IRN, draft.WorkerID = irn, workerID

	if draft.Form4 != nil && draft.Form4.InsurerCode != "" {
		// Provider codes drift in case and padding across the source tables;
		// normalize once here so every lookup uses the same key.
		code := strings.ToUpper(strings.TrimSpace(draft.Form4.InsurerCode))
		name, err := s.insurers.InsurerName(ctx, code)
		if err != nil {
			if errors.Is(err, claims.ErrNotFound) {
				return 0, claims.NewValidationError("Insurance provider")
			}
			return 0, fmt.Errorf("resolve insurance provider %q: %w", code, err)
		}
		draft.Form4.InsurerCode, draft.Form4.InsurerName = code, name
	}

	// Step 1: uploads. A failure aborts the whole save with the category
	// name on the error; objects already written stay in storage.
	uploaded := make([]uploadedFile, 0, len(uploads))
	for _, up := range uploads {
		path, err := s.uploader.Upload(ctx, irn, up)
		if err != nil {
			return 0, err
		}
		uploaded = append(uploaded, uploadedFile{category: up.Category, path: path})
	}

	// Step 2: flat parent-level updates.
	if err := s.repo.UpdateWorker(ctx, workerID, &draft.Worker); err != nil {
		return 0, fmt.Errorf("update worker: %w", err)
	}
	if err := s.repo.UpdateIncident(ctx, irn, &draft.Incident); err != nil {
		return 0, fmt.Errorf("update incident master: %w", err)
	}

	// Step 3: form-master upsert, verb chosen by an explicit existence check.
	if draft.FormType == claims.Form3 || draft.FormType == claims.Form4 {
		exists, err := s.repo.FormMasterExists(ctx, irn, draft.FormType)
		if err != nil {
			return 0, fmt.Errorf("check form master: %w", err)
		}
		if exists {
			err = s.repo.UpdateFormMaster(ctx, draft)
		} else {
			err = s.repo.InsertFormMaster(ctx, draft)
		}
		if err != nil {
			return 0, fmt.Errorf("save form master: %w", err)
		}
	}

	// Step 4: child-row reconciliation.
	if err := s.reconcileDependants(ctx, workerID, draft.Dependants); err != nil {
		return 0, err
	}
	if err := s.reconcileWorkHistory(ctx, workerID, draft.WorkHistory); err != nil {
		return 0, err
	}

	// Step 5: attachment rows, only for categories uploaded this run.
	for _, up := range uploaded {
		if err := s.uploader.RecordRow(ctx, irn, up.category, up.path); err != nil {
			return 0, err
		}
	}

	s.logger.Info().
		Int64("irn", irn).
		Int64("worker_id", workerID).
		Str("form_type", string(draft.FormType)).
		Int("uploads", len(uploaded)).
		Msg("claim saved")

	return irn, nil
}

type uploadedFile struct {
	category attachments.Category
	path     string
}

// reconcileDependants applies the child-list states: deleted rows are
// hard-deleted unless they never had a primary key, new rows inserted, and
// existing rows updated unconditionally even when unchanged.
func (s *Service) reconcileDependants(ctx context.Context, workerID int64, rows []Dependant) error {
	for i := range rows {
		row := &rows[i]
		row.WorkerID = workerID
		switch row.State {
		case RowDeleted:
			if row.ID == uuid.Nil {
				continue
			}
			if err := s.repo.DeleteDependant(ctx, row.ID); err != nil {
				return fmt.Errorf("delete dependant: %w", err)
			}
		case RowNew:
			if row.ID == uuid.Nil {
				row.ID = uuid.New()
			}
			if err := s.repo.InsertDependant(ctx, row); err != nil {
				return fmt.Errorf("insert dependant: %w", err)
			}
		case RowExisting:
			if err := s.repo.UpdateDependant(ctx, row); err != nil {
				return fmt.Errorf("update dependant: %w", err)
			}
		}
	}
	return nil
}

func (s *Service) reconcileWorkHistory(ctx context.Context, workerID int64, rows []WorkHistoryEntry) error {
	for i := range rows {
		row := &rows[i]
		row.WorkerID = workerID
		switch row.State {
		case RowDeleted:
			if row.ID == uuid.Nil {
				continue
			}
			if err := s.repo.DeleteWorkHistory(ctx, row.ID); err != nil {
				return fmt.Errorf("delete work history: %w", err)
			}
		case RowNew:
			if row.ID == uuid.Nil {
				row.ID = uuid.New()
			}
			if err := s.repo.InsertWorkHistory(ctx, row); err != nil {
				return fmt.Errorf("insert work history: %w", err)
			}
		case RowExisting:
			if err := s.repo.UpdateWorkHistory(ctx, row); err != nil {
				return fmt.Errorf("update work history: %w", err)
			}
		}
	}
	return nil
}
