package claimform

import (
	"context"

	"github.com/google/uuid"

	"github.com/owc/owc/internal/domain/claims"
)

// Repository is the table-store capability the save pipeline runs against.
// Update methods target rows assumed to exist; they report zero-rows-affected
// as claims.ErrMissingRow rather than falling back to an insert.
type Repository interface {
	// ClaimFormType reports which form-specific master a claim carries, or
	// Form11 when only the initial incident report exists yet.
	ClaimFormType(ctx context.Context, irn int64) (claims.FormType, error)

	LoadWorker(ctx context.Context, workerID int64) (*WorkerDetails, error)
	UpdateWorker(ctx context.Context, workerID int64, w *WorkerDetails) error

	LoadIncident(ctx context.Context, irn int64) (*IncidentDetails, error)
	UpdateIncident(ctx context.Context, irn int64, inc *IncidentDetails) error

	// FormMasterExists decides the verb for the master upsert. The natural
	// key is not declared unique in the store, so the existence check is the
	// contract, not a constraint violation.
	FormMasterExists(ctx context.Context, irn int64, formType claims.FormType) (bool, error)
	LoadFormMaster(ctx context.Context, irn int64, d *Draft) error
	InsertFormMaster(ctx context.Context, d *Draft) error
	UpdateFormMaster(ctx context.Context, d *Draft) error

	ListDependants(ctx context.Context, workerID int64) ([]Dependant, error)
	InsertDependant(ctx context.Context, dep *Dependant) error
	UpdateDependant(ctx context.Context, dep *Dependant) error
	DeleteDependant(ctx context.Context, id uuid.UUID) error

	ListWorkHistory(ctx context.Context, workerID int64) ([]WorkHistoryEntry, error)
	InsertWorkHistory(ctx context.Context, e *WorkHistoryEntry) error
	UpdateWorkHistory(ctx context.Context, e *WorkHistoryEntry) error
	DeleteWorkHistory(ctx context.Context, id uuid.UUID) error
}
