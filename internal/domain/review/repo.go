package review

import (
	"context"

	"github.com/google/uuid"
)

type Repository interface {
	// GetPrescreening returns the current review-stage row for the claim, or
	// claims.ErrMissingRow when absent.
	GetPrescreening(ctx context.Context, irn int64) (*PrescreeningReview, error)

	// UpdatePrescreeningDecision updates the row by primary key when id is
	// non-nil, else by IRN. Returns the number of rows updated; callers treat
	// zero as claims.ErrMissingRow, never as a cue to insert.
	UpdatePrescreeningDecision(ctx context.Context, irn int64, id *uuid.UUID, status, decisionDate, reason string) (int64, error)

	InsertRegistrarReview(ctx context.Context, r *RegistrarReview) error
	InsertClaimsOfficerReview(ctx context.Context, r *ClaimsOfficerReview) error
}
