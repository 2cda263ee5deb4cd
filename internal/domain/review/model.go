package review

import (
	"github.com/google/uuid"

	"github.com/owc/owc/internal/domain/claims"
)

// Decision is the reviewer's choice on a prescreened claim. Exactly two
// terminal-per-submission states exist; the broader claim lifecycle is
// tracked across the stage tables, not here.
type Decision string

const (
	DecisionOnHold      Decision = "OnHold"
	DecisionAcknowledge Decision = "Acknowledge"
)

// Valid reports whether d is a known decision.
func (d Decision) Valid() bool {
	return d == DecisionOnHold || d == DecisionAcknowledge
}

// Status mapped onto the prescreening row for each decision.
func (d Decision) Status() string {
	if d == DecisionOnHold {
		return StatusOnHold
	}
	return StatusApproved
}

// Review-row status literals. These are match keys for letter generation and
// downstream screens; they must not change.
const (
	StatusOnHold               = "OnHold"
	StatusApproved             = "Approved"
	StatusDocumentationPending = "DocumentationPending"
)

// AutoApprovedReason is the fixed literal stamped on the registrar-review row
// inserted by an approval transition.
const AutoApprovedReason = "Auto Approved"

// PrescreeningReview is the current review-stage row a decision updates.
// It must already exist from claim lodgement; transitions never insert it.
type PrescreeningReview struct {
	ID             uuid.UUID       `db:"id" json:"id"`
	IRN            int64           `db:"irn" json:"irn"`
	FormType       claims.FormType `db:"form_type" json:"form_type"`
	Status         string          `db:"status" json:"status"`
	SubmissionDate string          `db:"submission_date" json:"submission_date"`
	DecisionDate   *string         `db:"decision_date" json:"decision_date,omitempty"`
	DecisionReason *string         `db:"decision_reason" json:"decision_reason,omitempty"`
}

// RegistrarReview is inserted on approval with fixed defaults.
type RegistrarReview struct {
	ID             uuid.UUID `db:"id" json:"id"`
	IRN            int64     `db:"irn" json:"irn"`
	IncidentType   string    `db:"incident_type" json:"incident_type"`
	Status         string    `db:"status" json:"status"`
	SubmissionDate string    `db:"submission_date" json:"submission_date"`
	DecisionDate   string    `db:"decision_date" json:"decision_date"`
	DecisionReason string    `db:"decision_reason" json:"decision_reason"`
}

// ClaimsOfficerReview is inserted on approval after the registrar row.
type ClaimsOfficerReview struct {
	ID             uuid.UUID `db:"id" json:"id"`
	IRN            int64     `db:"irn" json:"irn"`
	IncidentType   string    `db:"incident_type" json:"incident_type"`
	Status         string    `db:"status" json:"status"`
	SubmissionDate string    `db:"submission_date" json:"submission_date"`
}

// OutcomeKind tells the caller what to do after a successful transition.
type OutcomeKind string

const (
	// OutcomeCloseOnly: close the editing surface immediately, nothing to render.
	OutcomeCloseOnly OutcomeKind = "close"
	// OutcomeLetterReady: a confirmation letter can be regenerated on demand.
	OutcomeLetterReady OutcomeKind = "letter"
)

// LetterRef is sufficient to regenerate the confirmation letter later.
type LetterRef struct {
	IRN      int64           `json:"irn"`
	FormType claims.FormType `json:"form_type"`
}

// Outcome is the result of a successful transition.
type Outcome struct {
	Kind   OutcomeKind `json:"kind"`
	Letter *LetterRef  `json:"letter,omitempty"`
}
