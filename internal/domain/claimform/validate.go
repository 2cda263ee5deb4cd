package claimform

import (
	"strings"

	"github.com/owc/owc/internal/domain/claims"
)

// requiredFields is the fixed must-not-be-blank list checked before a diff is
// even computed. A miss aborts with a ValidationError naming every blank
// label, before any network call.
var requiredFields = []struct {
	label string
	get   func(*Draft) string
}{
	{"Incident date", func(d *Draft) string { return d.Incident.IncidentDate }},
	{"Incident location", func(d *Draft) string { return d.Incident.IncidentLocation }},
	{"Incident province", func(d *Draft) string { return d.Incident.IncidentProvince }},
	{"Nature of injury", func(d *Draft) string { return d.Incident.NatureOfInjury }},
	{"Cause of injury", func(d *Draft) string { return d.Incident.CauseOfInjury }},
	{"Applicant first name", func(d *Draft) string { return d.Applicant.FirstName }},
	{"Applicant last name", func(d *Draft) string { return d.Applicant.LastName }},
}

// ValidateRequired reports every blank required field at once so the user can
// fix them in one pass.
func ValidateRequired(d *Draft) error {
	var missing []string
	for _, f := range requiredFields {
		if strings.TrimSpace(f.get(d)) == "" {
			missing = append(missing, f.label)
		}
	}
	if len(missing) > 0 {
		return claims.NewValidationError(missing...)
	}
	return nil
}
