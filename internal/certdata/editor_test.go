package certdata

import (
	"reflect"
	"testing"
	"time"

	"github.com/quickcert/quickcert-api/internal/models"
)

func date(y int, m time.Month, d int) models.Date {
	return models.NewDate(y, m, d)
}

func TestLeaveDays(t *testing.T) {
	tests := []struct {
		name  string
		start models.Date
		end   models.Date
		want  int
	}{
		{"same day", date(2024, 1, 1), date(2024, 1, 1), 1},
		{"five days inclusive", date(2024, 1, 1), date(2024, 1, 5), 5},
		{"two days", date(2024, 3, 1), date(2024, 3, 2), 2},
		{"inverted range clamps to one", date(2024, 1, 5), date(2024, 1, 1), 1},
		{"end one day before start clamps", date(2024, 1, 2), date(2024, 1, 1), 1},
		{"across month boundary", date(2024, 1, 30), date(2024, 2, 2), 4},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := LeaveDays(tt.start, tt.end); got != tt.want {
				t.Errorf("LeaveDays(%s, %s) = %d, want %d",
					tt.start.Format(models.DateFormat), tt.end.Format(models.DateFormat), got, tt.want)
			}
		})
	}
}

func TestSplitTests(t *testing.T) {
	got := SplitTests("CBC, , Lipid Panel,  FBS ")
	want := []string{"CBC", "Lipid Panel", "FBS"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitTests = %v, want %v", got, want)
	}

	if got := SplitTests(""); got != nil {
		t.Errorf("SplitTests(empty) = %v, want nil", got)
	}

	// duplicates and order are preserved
	got = SplitTests("CBC,FBS,CBC")
	want = []string{"CBC", "FBS", "CBC"}
	if !reflect.DeepEqual(got, want) {
		t.Errorf("SplitTests = %v, want %v", got, want)
	}
}

func TestBuildPayloadMedicalLeave(t *testing.T) {
	form := FormState{
		StartDate: date(2024, 3, 1),
		EndDate:   date(2024, 3, 3),
		Remarks:   "rest at home",
	}

	payload, err := BuildPayload(models.CertTypeMedicalLeave, form)
	if err != nil {
		t.Fatalf("BuildPayload failed: %v", err)
	}

	leave, ok := payload.(MedicalLeave)
	if !ok {
		t.Fatalf("payload is %T, want MedicalLeave", payload)
	}
	if leave.Days != 3 {
		t.Errorf("Days = %d, want 3", leave.Days)
	}
	if leave.Remarks != "rest at home" {
		t.Errorf("Remarks = %q", leave.Remarks)
	}
}

func TestBuildPayloadMedicalLeaveMissingDates(t *testing.T) {
	_, err := BuildPayload(models.CertTypeMedicalLeave, FormState{EndDate: date(2024, 3, 3)})
	fieldErr, ok := err.(*FieldError)
	if !ok {
		t.Fatalf("expected *FieldError, got %v", err)
	}
	if fieldErr.Field != "start_date" {
		t.Errorf("Field = %q, want start_date", fieldErr.Field)
	}

	_, err = BuildPayload(models.CertTypeMedicalLeave, FormState{StartDate: date(2024, 3, 3)})
	fieldErr, ok = err.(*FieldError)
	if !ok {
		t.Fatalf("expected *FieldError, got %v", err)
	}
	if fieldErr.Field != "end_date" {
		t.Errorf("Field = %q, want end_date", fieldErr.Field)
	}
}

func TestBuildPayloadLabRequest(t *testing.T) {
	form := FormState{
		Tests:           "CBC, Lipid Panel",
		FastingRequired: true,
	}

	payload, err := BuildPayload(models.CertTypeLabRequest, form)
	if err != nil {
		t.Fatalf("BuildPayload failed: %v", err)
	}

	req := payload.(LabRequest)
	if !reflect.DeepEqual(req.Tests, []string{"CBC", "Lipid Panel"}) {
		t.Errorf("Tests = %v", req.Tests)
	}
	if !req.FastingRequired {
		t.Error("FastingRequired not carried over")
	}
}

func TestBuildPayloadLabRequestNoTests(t *testing.T) {
	// only commas and whitespace yields zero tests
	_, err := BuildPayload(models.CertTypeLabRequest, FormState{Tests: " , ,, "})
	fieldErr, ok := err.(*FieldError)
	if !ok {
		t.Fatalf("expected *FieldError, got %v", err)
	}
	if fieldErr.Field != "tests" {
		t.Errorf("Field = %q, want tests", fieldErr.Field)
	}
}

func TestBuildPayloadResultSummaryDropsEmptyRows(t *testing.T) {
	form := FormState{
		Results: []ResultRow{
			{Test: "", Value: "1", Reference: ""},
			{Test: "Glucose", Value: "90", Reference: "70-100"},
		},
	}

	payload, err := BuildPayload(models.CertTypeResultSummary, form)
	if err != nil {
		t.Fatalf("BuildPayload failed: %v", err)
	}

	summary := payload.(ResultSummary)
	if len(summary.Results) != 1 {
		t.Fatalf("got %d rows, want 1", len(summary.Results))
	}
	if summary.Results[0].Test != "Glucose" {
		t.Errorf("kept row = %+v, want the Glucose row", summary.Results[0])
	}
}

func TestBuildPayloadResultSummaryAllowsZeroRows(t *testing.T) {
	form := FormState{Results: []ResultRow{{Test: ""}}}

	payload, err := BuildPayload(models.CertTypeResultSummary, form)
	if err != nil {
		t.Fatalf("BuildPayload failed: %v", err)
	}
	if got := len(payload.(ResultSummary).Results); got != 0 {
		t.Errorf("got %d rows, want 0", got)
	}
}

func TestBuildPayloadUnknownType(t *testing.T) {
	if _, err := BuildPayload("prescription", FormState{}); err == nil {
		t.Fatal("expected error for unknown certificate type")
	}
}

func TestNewLeaveFormDefaults(t *testing.T) {
	today := date(2024, 5, 20)

	visit := &models.Visit{Date: date(2024, 5, 10)}
	form := NewLeaveForm(visit, today)
	if !form.StartDate.Equal(visit.Date.Time) || !form.EndDate.Equal(visit.Date.Time) {
		t.Errorf("leave form should default to visit date, got %+v", form)
	}

	form = NewLeaveForm(nil, today)
	if !form.StartDate.Equal(today.Time) {
		t.Errorf("without a visit the form should default to today, got %+v", form)
	}
}

func TestNewResultFormHasOneEmptyRow(t *testing.T) {
	form := NewResultForm()
	if len(form.Results) != 1 || form.Results[0] != (ResultRow{}) {
		t.Errorf("result form should start with one empty row, got %+v", form.Results)
	}
}
