package letters

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/owc/owc/internal/domain/claims"
	"github.com/owc/owc/internal/domain/review"
)

type mockClaims struct {
	summary *claims.ClaimSummary
	err     error
}

func (m *mockClaims) GetSummary(context.Context, int64) (*claims.ClaimSummary, error) {
	return m.summary, m.err
}

type mockDecisions struct {
	row *review.PrescreeningReview
	err error
}

func (m *mockDecisions) GetPrescreening(context.Context, int64) (*review.PrescreeningReview, error) {
	return m.row, m.err
}

func strPtr(s string) *string { return &s }

func newTestService(status string) *Service {
	return NewService(
		&mockClaims{summary: &claims.ClaimSummary{IRN: 1002, WorkerName: "Peter Kila"}},
		&mockDecisions{row: &review.PrescreeningReview{
			IRN:            1002,
			Status:         status,
			DecisionDate:   strPtr("2026-08-30"),
			DecisionReason: strPtr("All checks complete"),
		}},
		zerolog.Nop(),
	).WithClock(func() time.Time { return time.Date(2026, 8, 31, 9, 0, 0, 0, time.UTC) })
}

func TestRender_ApprovalLetter(t *testing.T) {
	svc := newTestService(review.StatusApproved)

	body, err := svc.Render(context.Background(), review.LetterRef{IRN: 1002, FormType: claims.Form4})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	letter := string(body)
	for _, want := range []string{"Claim 1002", "Death claim", "Peter Kila", "approved", "2026-08-30", "All checks complete"} {
		if !strings.Contains(letter, want) {
			t.Errorf("expected %q in letter:\n%s", want, letter)
		}
	}
}

func TestRender_OnHoldLetter(t *testing.T) {
	svc := newTestService(review.StatusOnHold)

	body, err := svc.Render(context.Background(), review.LetterRef{IRN: 1002, FormType: claims.Form3})
	if err != nil {
		t.Fatalf("Render: %v", err)
	}
	letter := string(body)
	if !strings.Contains(letter, "placed on hold") {
		t.Errorf("expected on-hold wording, got:\n%s", letter)
	}
	if !strings.Contains(letter, "Injury claim") {
		t.Errorf("expected injury incident type, got:\n%s", letter)
	}
}

func TestRender_MissingDecision(t *testing.T) {
	svc := NewService(
		&mockClaims{summary: &claims.ClaimSummary{IRN: 1002}},
		&mockDecisions{err: claims.ErrMissingRow},
		zerolog.Nop(),
	)

	_, err := svc.Render(context.Background(), review.LetterRef{IRN: 1002, FormType: claims.Form3})
	if !errors.Is(err, claims.ErrMissingRow) {
		t.Errorf("expected ErrMissingRow, got %v", err)
	}
}
