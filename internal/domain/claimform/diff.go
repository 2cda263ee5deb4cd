package claimform

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/owc/owc/internal/domain/claims"
)

// DiffRow is one line of the confirmation summary shown before a save.
type DiffRow struct {
	Field string `json:"field"`
	Old   string `json:"old"`
	New   string `json:"new"`
}

// diffField is one entry of the editable-fields allowlist. Fields not listed
// here never register as changes.
type diffField struct {
	label  string
	get    func(*Draft) string
	isDate bool
}

var diffFields = []diffField{
	{"Worker first name", func(d *Draft) string { return d.Worker.FirstName }, false},
	{"Worker last name", func(d *Draft) string { return d.Worker.LastName }, false},
	{"Worker date of birth", func(d *Draft) string { return d.Worker.DOB }, true},
	{"Worker phone", func(d *Draft) string { return d.Worker.Phone }, false},
	{"Worker email", func(d *Draft) string { return d.Worker.Email }, false},
	{"Worker address", func(d *Draft) string { return d.Worker.Address1 }, false},
	{"Worker city", func(d *Draft) string { return d.Worker.City }, false},
	{"Worker province", func(d *Draft) string { return d.Worker.Province }, false},
	{"Spouse first name", func(d *Draft) string { return d.Worker.SpouseFirstName }, false},
	{"Spouse last name", func(d *Draft) string { return d.Worker.SpouseLastName }, false},
	{"Spouse date of birth", func(d *Draft) string { return d.Worker.SpouseDOB }, true},
	{"Incident date", func(d *Draft) string { return d.Incident.IncidentDate }, true},
	{"Incident location", func(d *Draft) string { return d.Incident.IncidentLocation }, false},
	{"Incident province", func(d *Draft) string { return d.Incident.IncidentProvince }, false},
	{"Incident region", func(d *Draft) string { return d.Incident.IncidentRegion }, false},
	{"Nature of injury", func(d *Draft) string { return d.Incident.NatureOfInjury }, false},
	{"Cause of injury", func(d *Draft) string { return d.Incident.CauseOfInjury }, false},
	{"Applicant first name", func(d *Draft) string { return d.Applicant.FirstName }, false},
	{"Applicant last name", func(d *Draft) string { return d.Applicant.LastName }, false},
	{"Applicant phone", func(d *Draft) string { return d.Applicant.Phone }, false},
	{"Applicant email", func(d *Draft) string { return d.Applicant.Email }, false},
	{"Average weekly wage", form3Num(func(f *Form3Details) float64 { return f.AverageWeeklyWage }), false},
	{"Compensation claimed", form3Num(func(f *Form3Details) float64 { return f.CompensationClaimed }), false},
	{"Extent of incapacity", func(d *Draft) string {
		if d.Form3 == nil {
			return ""
		}
		return d.Form3.IncapacityExtent
	}, false},
	{"Annual earnings", form4Num(func(f *Form4Details) float64 { return f.AnnualEarnings }), false},
	{"Funeral expenses", form4Num(func(f *Form4Details) float64 { return f.FuneralExpenses }), false},
	{"Medical expenses", form4Num(func(f *Form4Details) float64 { return f.MedicalExpenses }), false},
	{"Circumstances of death", func(d *Draft) string {
		if d.Form4 == nil {
			return ""
		}
		return d.Form4.DeathCircumstances
	}, false},
	{"Insurance provider", func(d *Draft) string {
		if d.Form4 == nil {
			return ""
		}
		return d.Form4.InsurerCode
	}, false},
}

func form3Num(get func(*Form3Details) float64) func(*Draft) string {
	return func(d *Draft) string {
		if d.Form3 == nil {
			return ""
		}
		return strconv.FormatFloat(get(d.Form3), 'f', -1, 64)
	}
}

func form4Num(get func(*Form4Details) float64) func(*Draft) string {
	return func(d *Draft) string {
		if d.Form4 == nil {
			return ""
		}
		return strconv.FormatFloat(get(d.Form4), 'f', -1, 64)
	}
}

// dayLayouts are the date shapes a draft field may arrive in. Comparison only
// cares about the calendar day, so time-of-day and timezone drift between a
// stored row and an edited field never registers as a change.
var dayLayouts = []string{
	time.RFC3339,
	"2006-01-02T15:04:05",
	claims.DateLayout,
	"02/01/2006",
}

func normalizeDay(s string) string {
	s = strings.TrimSpace(s)
	if s == "" {
		return ""
	}
	for _, layout := range dayLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t.Format(claims.DateLayout)
		}
	}
	return s
}

// ComputeDiff compares the loaded snapshot against the edited one and returns
// the confirmation rows the user must approve before a save proceeds. Child
// lists are summarized as added/edited/removed counts, not diffed field by
// field. An empty diff returns ErrNoChanges; the caller must not save.
func ComputeDiff(original, current *Draft) ([]DiffRow, error) {
	var rows []DiffRow
	for _, f := range diffFields {
		oldVal, newVal := f.get(original), f.get(current)
		if f.isDate {
			oldVal, newVal = normalizeDay(oldVal), normalizeDay(newVal)
		} else {
			oldVal, newVal = strings.TrimSpace(oldVal), strings.TrimSpace(newVal)
		}
		if oldVal != newVal {
			rows = append(rows, DiffRow{Field: f.label, Old: oldVal, New: newVal})
		}
	}

	if row, changed := summarizeDependants(original.Dependants, current.Dependants); changed {
		rows = append(rows, row)
	}
	if row, changed := summarizeWorkHistory(original.WorkHistory, current.WorkHistory); changed {
		rows = append(rows, row)
	}

	if len(rows) == 0 {
		return nil, claims.ErrNoChanges
	}
	return rows, nil
}

func summarizeDependants(original, current []Dependant) (DiffRow, bool) {
	byID := make(map[uuid.UUID]*Dependant, len(original))
	for i := range original {
		byID[original[i].ID] = &original[i]
	}

	var added, edited, removed int
	for i := range current {
		row := &current[i]
		switch row.State {
		case RowNew:
			added++
		case RowDeleted:
			removed++
		case RowExisting:
			if orig, ok := byID[row.ID]; ok && dependantChanged(orig, row) {
				edited++
			}
		}
	}
	if added == 0 && edited == 0 && removed == 0 {
		return DiffRow{}, false
	}
	return DiffRow{Field: "Dependants", New: countSummary(added, edited, removed)}, true
}

func summarizeWorkHistory(original, current []WorkHistoryEntry) (DiffRow, bool) {
	byID := make(map[uuid.UUID]*WorkHistoryEntry, len(original))
	for i := range original {
		byID[original[i].ID] = &original[i]
	}

	var added, edited, removed int
	for i := range current {
		row := &current[i]
		switch row.State {
		case RowNew:
			added++
		case RowDeleted:
			removed++
		case RowExisting:
			if orig, ok := byID[row.ID]; ok && workHistoryChanged(orig, row) {
				edited++
			}
		}
	}
	if added == 0 && edited == 0 && removed == 0 {
		return DiffRow{}, false
	}
	return DiffRow{Field: "Work history", New: countSummary(added, edited, removed)}, true
}

// dependantChanged compares an existing row against its loaded snapshot across
// the fixed field list; any mismatch counts the whole row as edited.
func dependantChanged(orig, cur *Dependant) bool {
	return orig.FirstName != cur.FirstName ||
		orig.LastName != cur.LastName ||
		normalizeDay(orig.DOB) != normalizeDay(cur.DOB) ||
		orig.Type != cur.Type
}

func workHistoryChanged(orig, cur *WorkHistoryEntry) bool {
	return orig.Employer != cur.Employer ||
		orig.Occupation != cur.Occupation ||
		normalizeDay(orig.StartDate) != normalizeDay(cur.StartDate) ||
		normalizeDay(orig.EndDate) != normalizeDay(cur.EndDate)
}

func countSummary(added, edited, removed int) string {
	parts := make([]string, 0, 3)
	if added > 0 {
		parts = append(parts, fmt.Sprintf("%d added", added))
	}
	if edited > 0 {
		parts = append(parts, fmt.Sprintf("%d edited", edited))
	}
	if removed > 0 {
		parts = append(parts, fmt.Sprintf("%d removed", removed))
	}
	return strings.Join(parts, ", ")
}
