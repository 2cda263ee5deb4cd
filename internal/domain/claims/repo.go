package claims

import "context"

type Repository interface {
	// WorkerIDByIRN consults the claim→worker mapping view. Returns
	// ErrNotFound when the view has no row for the IRN.
	WorkerIDByIRN(ctx context.Context, irn int64) (int64, error)

	// WorkerIDFromIncidentMaster falls back to the Form 11 incident master.
	WorkerIDFromIncidentMaster(ctx context.Context, irn int64) (int64, error)

	// CountReviewRows counts rows for (claim, stage); the existence preflight
	// for update-only mutations.
	CountReviewRows(ctx context.Context, irn int64, stage Stage) (int, error)

	GetSummary(ctx context.Context, irn int64) (*ClaimSummary, error)
	SearchByName(ctx context.Context, q string, limit, offset int) ([]*ClaimSummary, int, error)
}
