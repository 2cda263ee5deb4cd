package review

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/owc/owc/internal/domain/claims"
)

// Service runs the decision transition: on a human decision it progresses a
// claim through the review tables in a fixed order. The two approval inserts
// are intentionally not wrapped in one transaction; a failure between them
// leaves the registrar row committed (documented limitation, the ordering is
// the contract).
type Service struct {
	repo   Repository
	logger zerolog.Logger
	nowFn  func() time.Time
}

func NewService(repo Repository, logger zerolog.Logger) *Service {
	return &Service{repo: repo, logger: logger, nowFn: time.Now}
}

// WithClock overrides the clock; tests pin "today" with it.
func (s *Service) WithClock(nowFn func() time.Time) *Service {
	s.nowFn = nowFn
	return s
}

// Transition applies the reviewer's decision to claim irn.
//
// Order matters and must not change:
//  1. update the prescreening row (status, decision date, trimmed reason) —
//     update only, zero rows affected is claims.ErrMissingRow;
//  2. on approval, insert the registrar-review row with fixed defaults;
//  3. on approval, insert the claims-officer-review row.
//
// The update commits before either insert so a reader polling the review
// table never observes the downstream rows without the decision recorded.
func (s *Service) Transition(ctx context.Context, irn int64, decision Decision, reason string) (*Outcome, error) {
	reason = strings.TrimSpace(reason)
	if reason == "" {
		return nil, claims.NewValidationError("decision reason")
	}
	if !decision.Valid() {
		return nil, claims.NewValidationError("decision")
	}
	if irn <= 0 {
		return nil, claims.NewValidationError("IRN")
	}

	row, err := s.repo.GetPrescreening(ctx, irn)
	if err != nil {
		if errors.Is(err, claims.ErrMissingRow) {
			return nil, claims.ErrMissingRow
		}
		return nil, fmt.Errorf("load prescreening row for claim %d: %w", irn, err)
	}

	today := claims.Today(s.nowFn())

	// Target the row by primary key when the load yielded one, else by IRN.
	var pk *uuid.UUID
	if row.ID != uuid.Nil {
		pk = &row.ID
	}
	affected, err := s.repo.UpdatePrescreeningDecision(ctx, irn, pk, decision.Status(), today, reason)
	if err != nil {
		return nil, fmt.Errorf("update prescreening row for claim %d: %w", irn, err)
	}
	if affected == 0 {
		return nil, claims.ErrMissingRow
	}

	s.logger.Info().
		Int64("irn", irn).
		Str("decision", string(decision)).
		Str("status", decision.Status()).
		Msg("prescreening decision recorded")

	if decision == DecisionOnHold {
		return &Outcome{Kind: OutcomeCloseOnly}, nil
	}

	incidentType := row.FormType.IncidentType()

	// Registrar row first; the claims-officer row carries its incident type.
	if err := s.repo.InsertRegistrarReview(ctx, &RegistrarReview{
		IRN:            irn,
		IncidentType:   incidentType,
		Status:         StatusApproved,
		SubmissionDate: today,
		DecisionDate:   today,
		DecisionReason: AutoApprovedReason,
	}); err != nil {
		return nil, fmt.Errorf("insert registrar review for claim %d: %w", irn, err)
	}

	if err := s.repo.InsertClaimsOfficerReview(ctx, &ClaimsOfficerReview{
		IRN:            irn,
		IncidentType:   incidentType,
		Status:         StatusDocumentationPending,
		SubmissionDate: today,
	}); err != nil {
		// The registrar insert above is already committed; not rolled back.
		return nil, fmt.Errorf("insert claims officer review for claim %d: %w", irn, err)
	}

	s.logger.Info().
		Int64("irn", irn).
		Str("incident_type", incidentType).
		Msg("claim approved, downstream review rows created")

	return &Outcome{
		Kind:   OutcomeLetterReady,
		Letter: &LetterRef{IRN: irn, FormType: row.FormType},
	}, nil
}

// GetPrescreening exposes the current stage row for display.
func (s *Service) GetPrescreening(ctx context.Context, irn int64) (*PrescreeningReview, error) {
	return s.repo.GetPrescreening(ctx, irn)
}
