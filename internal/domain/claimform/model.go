package claimform

import (
	"strings"

	"github.com/google/uuid"

	"github.com/owc/owc/internal/domain/claims"
)

// RowState tracks the lifecycle of a child row inside an editing session.
// New rows are inserted on save, existing rows updated unconditionally, and
// deleted rows hard-deleted (unless they never had a primary key).
type RowState string

const (
	RowNew      RowState = "new"
	RowExisting RowState = "existing"
	RowDeleted  RowState = "deleted"
)

// DependantType partitions dependants across the form tabs.
type DependantType string

const (
	DependantChild   DependantType = "Child"
	DependantParent  DependantType = "Parent"
	DependantSibling DependantType = "Sibling"
	DependantNominee DependantType = "Nominee"
	DependantOther   DependantType = "Other"
)

// Dependant is one row of the dependant table, foreign-keyed to the worker.
type Dependant struct {
	ID        uuid.UUID     `db:"dependant_id" json:"id"`
	WorkerID  int64         `db:"worker_id" json:"worker_id"`
	FirstName string        `db:"first_name" json:"first_name"`
	LastName  string        `db:"last_name" json:"last_name"`
	DOB       string        `db:"dob" json:"dob"`
	Type      DependantType `db:"dependant_type" json:"type"`
	State     RowState      `db:"-" json:"state"`
}

// WorkHistoryEntry is one prior-employment period for the worker.
type WorkHistoryEntry struct {
	ID         uuid.UUID `db:"entry_id" json:"id"`
	WorkerID   int64     `db:"worker_id" json:"worker_id"`
	Employer   string    `db:"employer_name" json:"employer"`
	Occupation string    `db:"occupation" json:"occupation"`
	StartDate  string    `db:"start_date" json:"start_date"`
	EndDate    string    `db:"end_date" json:"end_date"`
	State      RowState  `db:"-" json:"state"`
}

// WorkerDetails is the worker row including the embedded spouse field group.
// Spouse is not a separate entity; it lives on the same row.
type WorkerDetails struct {
	FirstName     string `db:"first_name" json:"first_name"`
	LastName      string `db:"last_name" json:"last_name"`
	DOB           string `db:"dob" json:"dob"`
	Gender        string `db:"gender" json:"gender"`
	MaritalStatus string `db:"marital_status" json:"marital_status"`
	Phone         string `db:"phone" json:"phone"`
	Email         string `db:"email" json:"email"`
	Address1      string `db:"address1" json:"address1"`
	Address2      string `db:"address2" json:"address2"`
	City          string `db:"city" json:"city"`
	Province      string `db:"province" json:"province"`
	POBox         string `db:"po_box" json:"po_box"`

	SpouseFirstName string `db:"spouse_first_name" json:"spouse_first_name"`
	SpouseLastName  string `db:"spouse_last_name" json:"spouse_last_name"`
	SpouseDOB       string `db:"spouse_dob" json:"spouse_dob"`
	SpouseAddress1  string `db:"spouse_address1" json:"spouse_address1"`
	SpouseCity      string `db:"spouse_city" json:"spouse_city"`
	SpouseProvince  string `db:"spouse_province" json:"spouse_province"`
}

// IncidentDetails is the incident-master (initial incident report) row.
type IncidentDetails struct {
	IncidentDate     string `db:"incident_date" json:"incident_date"`
	IncidentLocation string `db:"incident_location" json:"incident_location"`
	IncidentProvince string `db:"incident_province" json:"incident_province"`
	IncidentRegion   string `db:"incident_region" json:"incident_region"`
	NatureOfInjury   string `db:"nature_of_injury" json:"nature_of_injury"`
	CauseOfInjury    string `db:"cause_of_injury" json:"cause_of_injury"`
	InsurerCode      string `db:"insurer_code" json:"insurer_code"`
	ScanPath         string `db:"scan_path" json:"scan_path"`
}

// ApplicantDetails identifies the person lodging the claim. Persisted on the
// form-specific master row.
type ApplicantDetails struct {
	FirstName string `db:"applicant_first_name" json:"first_name"`
	LastName  string `db:"applicant_last_name" json:"last_name"`
	Address1  string `db:"applicant_address1" json:"address1"`
	City      string `db:"applicant_city" json:"city"`
	Province  string `db:"applicant_province" json:"province"`
	Phone     string `db:"applicant_phone" json:"phone"`
	Email     string `db:"applicant_email" json:"email"`
}

// Form3Details holds the injury-compensation master fields.
type Form3Details struct {
	AverageWeeklyWage   float64 `db:"average_weekly_wage" json:"average_weekly_wage"`
	CompensationClaimed float64 `db:"compensation_claimed" json:"compensation_claimed"`
	IncapacityExtent    string  `db:"incapacity_extent" json:"incapacity_extent"`
	IncapacityDesc      string  `db:"incapacity_description" json:"incapacity_description"`
	SubmissionDate      string  `db:"submission_date" json:"submission_date"`
}

// Form4Details holds the death-compensation master fields.
type Form4Details struct {
	AnnualEarnings     float64 `db:"annual_earnings" json:"annual_earnings"`
	FuneralExpenses    float64 `db:"funeral_expenses" json:"funeral_expenses"`
	MedicalExpenses    float64 `db:"medical_expenses" json:"medical_expenses"`
	CompensationPaid   float64 `db:"compensation_benefits_paid" json:"compensation_benefits_paid"`
	DeathCircumstances string  `db:"death_circumstances" json:"death_circumstances"`
	InsurerCode        string  `db:"insurer_code" json:"insurer_code"`
	InsurerName        string  `db:"insurer_name" json:"insurer_name"`
	SubmissionDate     string  `db:"submission_date" json:"submission_date"`
}

// Draft is one claim's editable snapshot across all its tables. Load produces
// it, the editing session mutates a copy, ComputeDiff compares the two, and
// SaveClaim persists the edited one. No state is shared between sessions; the
// store is the only system of record.
type Draft struct {
	IRN      int64           `json:"irn"`
	WorkerID int64           `json:"worker_id"`
	FormType claims.FormType `json:"form_type"`

	Worker    WorkerDetails    `json:"worker"`
	Incident  IncidentDetails  `json:"incident"`
	Applicant ApplicantDetails `json:"applicant"`

	Form3 *Form3Details `json:"form3,omitempty"`
	Form4 *Form4Details `json:"form4,omitempty"`

	Dependants  []Dependant        `json:"dependants"`
	WorkHistory []WorkHistoryEntry `json:"work_history"`
}

// NewDraft returns an empty draft for the given claim variant with the
// variant-specific detail struct allocated. Strings default to empty, numbers
// to zero; there is no field sniffing anywhere downstream.
func NewDraft(irn, workerID int64, formType claims.FormType) *Draft {
	d := &Draft{IRN: irn, WorkerID: workerID, FormType: formType}
	switch formType {
	case claims.Form3:
		d.Form3 = &Form3Details{}
	case claims.Form4:
		d.Form4 = &Form4Details{}
	}
	return d
}

// Sanitize trims the free-text fields checked by the required-field gate so
// whitespace-only input never passes validation.
func (d *Draft) Sanitize() {
	d.Incident.IncidentDate = strings.TrimSpace(d.Incident.IncidentDate)
	d.Incident.IncidentLocation = strings.TrimSpace(d.Incident.IncidentLocation)
	d.Incident.IncidentProvince = strings.TrimSpace(d.Incident.IncidentProvince)
	d.Incident.NatureOfInjury = strings.TrimSpace(d.Incident.NatureOfInjury)
	d.Incident.CauseOfInjury = strings.TrimSpace(d.Incident.CauseOfInjury)
	d.Applicant.FirstName = strings.TrimSpace(d.Applicant.FirstName)
	d.Applicant.LastName = strings.TrimSpace(d.Applicant.LastName)
}
