package claims

import (
	"errors"
	"fmt"
	"strings"
	"time"
)

// FormType identifies the claim-variant master table a claim belongs to.
// Form 3 is an injury claim, Form 4 a death claim, Form 11 the initial
// incident report every claim starts from.
type FormType string

const (
	Form3  FormType = "Form3"
	Form4  FormType = "Form4"
	Form11 FormType = "Form11"
)

// IncidentType returns the incident-type literal downstream review rows copy.
func (f FormType) IncidentType() string {
	if f == Form4 {
		return "Death"
	}
	return "Injury"
}

// Valid reports whether f is a known form type.
func (f FormType) Valid() bool {
	switch f {
	case Form3, Form4, Form11:
		return true
	}
	return false
}

// Stage identifies a review stage. Each stage has its own table and at most
// one row per claim.
type Stage string

const (
	StagePrescreening  Stage = "prescreening"
	StageRegistrar     Stage = "registrar"
	StageClaimsOfficer Stage = "claims-officer"
)

// DateLayout is the calendar-day format used for all decision and submission
// date stamps.
const DateLayout = "2006-01-02"

// Today formats t as a calendar-day string.
func Today(t time.Time) string { return t.Format(DateLayout) }

// ClaimSummary is the read model for the claim list and detail screens.
type ClaimSummary struct {
	IRN          int64    `db:"irn" json:"irn"`
	WorkerID     int64    `db:"worker_id" json:"worker_id"`
	WorkerName   string   `db:"worker_name" json:"worker_name"`
	FormType     FormType `db:"form_type" json:"form_type"`
	IncidentDate *string  `db:"incident_date" json:"incident_date,omitempty"`
	Status       string   `db:"status" json:"status"`
}

// ---------------------------------------------------------------------------
// Error taxonomy (shared by the review and claimform services)
// ---------------------------------------------------------------------------

var (
	// ErrNotFound signals that no claim→worker mapping resolved. Callers must
	// not proceed to any write.
	ErrNotFound = errors.New("claim record not found")

	// ErrMissingRow signals that a row assumed to exist for an update-only
	// mutation is absent. It is never auto-created.
	ErrMissingRow = errors.New("expected row is missing")

	// ErrNoChanges signals an edit session with an empty diff; saving is
	// blocked until the user changes something or cancels.
	ErrNoChanges = errors.New("no changes to save")
)

// ValidationError reports user-correctable input problems. Fields holds the
// human labels of the offending inputs.
type ValidationError struct {
	Fields []string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("required: %s", strings.Join(e.Fields, ", "))
}

// NewValidationError builds a ValidationError for the given field labels.
func NewValidationError(fields ...string) *ValidationError {
	return &ValidationError{Fields: fields}
}

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
