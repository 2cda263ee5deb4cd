package attachments

import (
	"fmt"
	"time"

	"github.com/owc/owc/internal/domain/claims"
)

// Category is a supporting-document kind. The label strings are literal
// match keys shared with letter generation and the review screens; changing
// one breaks lookups elsewhere.
type Category string

// Injury-claim (Form 3) categories.
const (
	CatInterimMedicalReport Category = "Interim medical report"
	CatFinalMedicalReport   Category = "Final medical report"
	CatSection43Form        Category = "Section 43 application form"
	CatSupervisorStatement  Category = "Supervisor statement"
	CatWitnessStatement     Category = "Witness statement"
	CatWorkerStatement      Category = "Injured worker statement"
	CatPayslip              Category = "Payslip at time of accident"
	CatTreatmentRecords     Category = "Treatment records"
	CatPoliceAccidentReport Category = "Police accident report"
)

// Death-claim (Form 4) categories.
const (
	CatDeathCertificate      Category = "Death certificate"
	CatPostMortemReport      Category = "Post mortem report"
	CatPoliceIncidentReport  Category = "Police incident report"
	CatDependencyDeclaration Category = "Dependency declaration"
	CatFuneralExpenses       Category = "Funeral expense receipts"
	CatMedicalExpenses       Category = "Medical expense receipts"
)

// InjuryCategories is the fixed set accepted on a Form 3 claim.
var InjuryCategories = []Category{
	CatInterimMedicalReport,
	CatFinalMedicalReport,
	CatSection43Form,
	CatSupervisorStatement,
	CatWitnessStatement,
	CatWorkerStatement,
	CatPayslip,
	CatTreatmentRecords,
	CatPoliceAccidentReport,
}

// DeathCategories is the fixed set accepted on a Form 4 claim.
var DeathCategories = []Category{
	CatDeathCertificate,
	CatPostMortemReport,
	CatSection43Form,
	CatSupervisorStatement,
	CatWitnessStatement,
	CatPayslip,
	CatPoliceIncidentReport,
	CatDependencyDeclaration,
	CatFuneralExpenses,
	CatMedicalExpenses,
}

// categoryFolders maps every category to its storage folder.
var categoryFolders = map[Category]string{
	CatInterimMedicalReport:  "attachments/interim-medical",
	CatFinalMedicalReport:    "attachments/final-medical",
	CatSection43Form:         "attachments/section43",
	CatSupervisorStatement:   "attachments/supervisor-statement",
	CatWitnessStatement:      "attachments/witness-statement",
	CatWorkerStatement:       "attachments/worker-statement",
	CatPayslip:               "attachments/payslip",
	CatTreatmentRecords:      "attachments/treatment-records",
	CatPoliceAccidentReport:  "attachments/police-accident-report",
	CatDeathCertificate:      "attachments/death-certificate",
	CatPostMortemReport:      "attachments/post-mortem",
	CatPoliceIncidentReport:  "attachments/police-incident-report",
	CatDependencyDeclaration: "attachments/dependency-declaration",
	CatFuneralExpenses:       "attachments/funeral-expenses",
	CatMedicalExpenses:       "attachments/medical-expenses",
}

// Known reports whether c is one of the fixed categories.
func (c Category) Known() bool {
	_, ok := categoryFolders[c]
	return ok
}

// CategoriesFor returns the accepted category set for a claim variant.
func CategoriesFor(formType claims.FormType) []Category {
	if formType == claims.Form4 {
		return DeathCategories
	}
	return InjuryCategories
}

// Attachment maps to the claim_attachments table: at most one row per
// (IRN, attachment_type) pair.
type Attachment struct {
	IRN            int64    `db:"irn" json:"irn"`
	AttachmentType Category `db:"attachment_type" json:"attachment_type"`
	FilePath       string   `db:"file_path" json:"file_path"`
	URL            string   `json:"url,omitempty"` // resolved at read time, not stored
}

// Upload is one pending file selection from the editing session.
type Upload struct {
	Category    Category `json:"category"`
	FileName    string   `json:"file_name"`
	ContentType string   `json:"content_type"`
	Content     []byte   `json:"content"`
}

// StoragePath builds the deterministic object key for an upload: folder keyed
// by category, filename prefixed with a millisecond timestamp so a new upload
// never clobbers an unrelated historical object. The logical slot in the
// attachments table still upserts, so only the latest path is current.
func StoragePath(c Category, irn int64, fileName string, now time.Time) string {
	return fmt.Sprintf("%s/%d_%d_%s", categoryFolders[c], irn, now.UnixMilli(), fileName)
}
