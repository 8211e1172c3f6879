package certdata

import (
	"math"
	"strings"

	"github.com/quickcert/quickcert-api/internal/models"
)

// FormState carries raw operator input for any certificate type. Only the
// fields relevant to the requested type are read by BuildPayload.
type FormState struct {
	// medical_leave
	StartDate models.Date
	EndDate   models.Date

	// lab_request: comma-separated test names as typed
	Tests           string
	FastingRequired bool

	// result_summary
	Results []ResultRow

	Remarks string
}

// NewLeaveForm returns the default medical leave form state: both dates
// default to the owning visit's date, or today when there is no visit.
func NewLeaveForm(visit *models.Visit, today models.Date) FormState {
	d := today
	if visit != nil && !visit.Date.IsZero() {
		d = visit.Date
	}
	return FormState{StartDate: d, EndDate: d}
}

// NewResultForm returns the default result summary form state with a
// single empty row.
func NewResultForm() FormState {
	return FormState{Results: []ResultRow{{}}}
}

// BuildPayload normalizes raw form input into the canonical payload for
// certType, or returns a *FieldError describing the first violation.
func BuildPayload(certType models.CertType, form FormState) (Payload, error) {
	var payload Payload
	switch certType {
	case models.CertTypeMedicalLeave:
		if form.StartDate.IsZero() {
			return nil, &FieldError{Field: "start_date", Message: "is required"}
		}
		if form.EndDate.IsZero() {
			return nil, &FieldError{Field: "end_date", Message: "is required"}
		}
		payload = MedicalLeave{
			StartDate: form.StartDate,
			EndDate:   form.EndDate,
			Days:      LeaveDays(form.StartDate, form.EndDate),
			Remarks:   form.Remarks,
		}
	case models.CertTypeLabRequest:
		payload = LabRequest{
			Tests:           SplitTests(form.Tests),
			FastingRequired: form.FastingRequired,
			Remarks:         form.Remarks,
		}
	case models.CertTypeResultSummary:
		payload = ResultSummary{
			Results: dropEmptyRows(form.Results),
			Remarks: form.Remarks,
		}
	default:
		return nil, &FieldError{Field: "cert_type", Message: "is not a known certificate type"}
	}

	if err := payload.Validate(); err != nil {
		return nil, err
	}
	return payload, nil
}

// LeaveDays is the inclusive day count between two dates, clamped to a
// minimum of one day even when the range is inverted.
func LeaveDays(start, end models.Date) int {
	days := int(math.Ceil(end.Sub(start.Time).Hours()/24)) + 1
	if days < 1 {
		return 1
	}
	return days
}

// SplitTests turns comma-separated operator input into a clean test list:
// entries are trimmed, empties dropped, order and duplicates preserved.
func SplitTests(input string) []string {
	var tests []string
	for _, part := range strings.Split(input, ",") {
		if t := strings.TrimSpace(part); t != "" {
			tests = append(tests, t)
		}
	}
	return tests
}

// dropEmptyRows removes result rows whose test name is empty
func dropEmptyRows(rows []ResultRow) []ResultRow {
	kept := make([]ResultRow, 0, len(rows))
	for _, r := range rows {
		if r.Test != "" {
			kept = append(kept, r)
		}
	}
	return kept
}
