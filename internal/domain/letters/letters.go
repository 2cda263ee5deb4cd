package letters

import (
	"bytes"
	"context"
	"fmt"
	"text/template"
	"time"

	"github.com/rs/zerolog"

	"github.com/owc/owc/internal/domain/claims"
	"github.com/owc/owc/internal/domain/review"
)

// ClaimReader supplies the claim header the letter is addressed from.
type ClaimReader interface {
	GetSummary(ctx context.Context, irn int64) (*claims.ClaimSummary, error)
}

// DecisionReader supplies the recorded decision the letter confirms.
type DecisionReader interface {
	GetPrescreening(ctx context.Context, irn int64) (*review.PrescreeningReview, error)
}

// letterData feeds the templates.
type letterData struct {
	IRN            int64
	WorkerName     string
	IncidentType   string
	Status         string
	DecisionDate   string
	DecisionReason string
	GeneratedAt    string
}

var approvalTemplate = template.Must(template.New("approval").Parse(
	`OFFICE OF WORKERS' COMPENSATION

Re: Claim {{.IRN}} ({{.IncidentType}} claim) - {{.WorkerName}}

Your claim has been acknowledged and approved for registration on
{{.DecisionDate}}. It now proceeds to the claims officer for documentation
review.

Reason recorded: {{.DecisionReason}}

Generated {{.GeneratedAt}}.
`))

var onHoldTemplate = template.Must(template.New("onhold").Parse(
	`OFFICE OF WORKERS' COMPENSATION

Re: Claim {{.IRN}} ({{.IncidentType}} claim) - {{.WorkerName}}

Your claim has been placed on hold on {{.DecisionDate}}.

Reason recorded: {{.DecisionReason}}

Generated {{.GeneratedAt}}.
`))

// Service renders decision letters. Rendering is a pure read-then-render
// operation; it can be repeated any number of times from the same reference
// and takes no part in the transition's write ordering.
type Service struct {
	claims    ClaimReader
	decisions DecisionReader
	logger    zerolog.Logger
	nowFn     func() time.Time
}

func NewService(claims ClaimReader, decisions DecisionReader, logger zerolog.Logger) *Service {
	return &Service{claims: claims, decisions: decisions, logger: logger, nowFn: time.Now}
}

// WithClock overrides the generation timestamp clock.
func (s *Service) WithClock(nowFn func() time.Time) *Service {
	s.nowFn = nowFn
	return s
}

// Render regenerates the letter for a decided claim.
func (s *Service) Render(ctx context.Context, ref review.LetterRef) ([]byte, error) {
	summary, err := s.claims.GetSummary(ctx, ref.IRN)
	if err != nil {
		return nil, fmt.Errorf("load claim %d: %w", ref.IRN, err)
	}
	row, err := s.decisions.GetPrescreening(ctx, ref.IRN)
	if err != nil {
		return nil, fmt.Errorf("load decision for claim %d: %w", ref.IRN, err)
	}

	data := letterData{
		IRN:          ref.IRN,
		WorkerName:   summary.WorkerName,
		IncidentType: ref.FormType.IncidentType(),
		Status:       row.Status,
		GeneratedAt:  claims.Today(s.nowFn()),
	}
	if row.DecisionDate != nil {
		data.DecisionDate = *row.DecisionDate
	}
	if row.DecisionReason != nil {
		data.DecisionReason = *row.DecisionReason
	}

	tmpl := approvalTemplate
	if row.Status == review.StatusOnHold {
		tmpl = onHoldTemplate
	}

	var buf bytes.Buffer
	if err := tmpl.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("render letter for claim %d: %w", ref.IRN, err)
	}

	s.logger.Debug().Int64("irn", ref.IRN).Str("status", row.Status).Msg("letter rendered")
	return buf.Bytes(), nil
}
