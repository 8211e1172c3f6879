package certdoc

import (
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/quickcert/quickcert-api/internal/models"
)

var testClinic = Header{
	Name:    "CLINIC QUICKCERT",
	Address: "123 Medical Center Drive, Metro Manila, Philippines",
	Contact: "Tel: (02) 8123-4567 | Email: info@quickcert.clinic",
}

func testPatient() *models.Patient {
	return &models.Patient{
		ID:        1,
		FirstName: "Maria",
		LastName:  "Santos",
		DOB:       models.NewDate(2000, time.June, 15),
	}
}

func testVisit() *models.Visit {
	return &models.Visit{
		ID:        2,
		PatientID: 1,
		Date:      models.NewDate(2024, time.March, 1),
		Doctor:    "Dr. Reyes",
		Reason:    "fever",
	}
}

func renderTime() time.Time {
	return time.Date(2024, time.June, 20, 10, 0, 0, 0, time.UTC)
}

func bodyText(doc *Document) string {
	var sb strings.Builder
	for _, s := range doc.Body {
		sb.WriteString(s.Text)
		sb.WriteString(s.Label)
		sb.WriteString(s.Value)
		for _, item := range s.Items {
			sb.WriteString(item)
		}
	}
	return sb.String()
}

func TestRenderMedicalLeave(t *testing.T) {
	cert := &models.Certificate{
		ID:        7,
		VisitID:   2,
		CertType:  models.CertTypeMedicalLeave,
		CertData:  `{"start_date":"2024-03-01","end_date":"2024-03-03","days":3,"remarks":""}`,
		CreatedAt: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC),
	}

	r := NewRenderer(testClinic)
	doc, err := r.Render(cert, testPatient(), testVisit(), renderTime())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if doc.Title != "Medical Leave Certificate" {
		t.Errorf("Title = %q", doc.Title)
	}
	if doc.Code != "QC-000007" {
		t.Errorf("Code = %q, want QC-000007", doc.Code)
	}
	if doc.Header != testClinic {
		t.Errorf("Header = %+v", doc.Header)
	}
	if doc.Summary.PatientName != "Maria Santos" {
		t.Errorf("PatientName = %q", doc.Summary.PatientName)
	}
	if doc.Summary.VisitDate != "March 1, 2024" {
		t.Errorf("VisitDate = %q", doc.Summary.VisitDate)
	}

	body := bodyText(doc)
	for _, want := range []string{"March 1, 2024", "March 3, 2024", "3 day(s)"} {
		if !strings.Contains(body, want) {
			t.Errorf("body missing %q:\n%s", want, body)
		}
	}

	// empty remarks and no diagnosis: just the two narrative paragraphs
	if len(doc.Body) != 2 {
		t.Errorf("got %d body sections, want 2", len(doc.Body))
	}

	if doc.Footer.Doctor != "Dr. Reyes" || doc.Footer.Caption != "Attending Physician" {
		t.Errorf("Footer = %+v", doc.Footer)
	}
	if doc.Footer.IssuedOn != "March 1, 2024" {
		t.Errorf("IssuedOn = %q", doc.Footer.IssuedOn)
	}
}

func TestRenderMedicalLeaveOptionalLines(t *testing.T) {
	cert := &models.Certificate{
		ID:       3,
		CertType: models.CertTypeMedicalLeave,
		CertData: `{"start_date":"2024-03-01","end_date":"2024-03-01","days":1,"remarks":"follow up in one week"}`,
	}
	visit := testVisit()
	visit.Diagnosis = "Acute pharyngitis"

	doc, err := NewRenderer(testClinic).Render(cert, testPatient(), visit, renderTime())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if len(doc.Body) != 4 {
		t.Fatalf("got %d body sections, want 4", len(doc.Body))
	}
	if doc.Body[2].Label != "Diagnosis" || doc.Body[2].Value != "Acute pharyngitis" {
		t.Errorf("diagnosis line = %+v", doc.Body[2])
	}
	if doc.Body[3].Label != "Remarks" || doc.Body[3].Value != "follow up in one week" {
		t.Errorf("remarks line = %+v", doc.Body[3])
	}
}

func TestRenderLabRequest(t *testing.T) {
	cert := &models.Certificate{
		ID:       8,
		CertType: models.CertTypeLabRequest,
		CertData: `{"tests":["CBC","Lipid Panel","FBS"],"fasting_required":true,"remarks":"bring prior results"}`,
	}

	doc, err := NewRenderer(testClinic).Render(cert, testPatient(), testVisit(), renderTime())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if doc.Title != "Laboratory Request Form" {
		t.Errorf("Title = %q", doc.Title)
	}

	var listSection *Section
	for i := range doc.Body {
		if doc.Body[i].Kind == SectionList {
			listSection = &doc.Body[i]
		}
	}
	if listSection == nil {
		t.Fatal("no list section in body")
	}
	if !reflect.DeepEqual(listSection.Items, []string{"CBC", "Lipid Panel", "FBS"}) {
		t.Errorf("test list = %v", listSection.Items)
	}

	body := bodyText(doc)
	if !strings.Contains(body, "FASTING REQUIRED") {
		t.Error("fasting warning missing")
	}
	if !strings.Contains(body, "bring prior results") {
		t.Error("special instructions missing")
	}
}

func TestRenderLabRequestNoFastingNoWarning(t *testing.T) {
	cert := &models.Certificate{
		ID:       9,
		CertType: models.CertTypeLabRequest,
		CertData: `{"tests":["CBC"],"fasting_required":false,"remarks":""}`,
	}

	doc, err := NewRenderer(testClinic).Render(cert, testPatient(), testVisit(), renderTime())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	for _, s := range doc.Body {
		if s.Kind == SectionWarning {
			t.Error("unexpected fasting warning")
		}
	}
}

func TestRenderResultSummary(t *testing.T) {
	cert := &models.Certificate{
		ID:       10,
		CertType: models.CertTypeResultSummary,
		CertData: `{"results":[{"test":"Glucose","value":"90","reference":"70-100"},{"test":"HbA1c","value":"","reference":""}],"remarks":"normal"}`,
	}

	doc, err := NewRenderer(testClinic).Render(cert, testPatient(), testVisit(), renderTime())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if doc.Title != "Laboratory Result Summary" {
		t.Errorf("Title = %q", doc.Title)
	}

	var table *Table
	for _, s := range doc.Body {
		if s.Kind == SectionTable {
			table = s.Table
		}
	}
	if table == nil {
		t.Fatal("no table section in body")
	}
	if !reflect.DeepEqual(table.Columns, []string{"Test", "Result", "Reference"}) {
		t.Errorf("columns = %v", table.Columns)
	}
	want := [][]string{
		{"Glucose", "90", "70-100"},
		{"HbA1c", "", ""},
	}
	if !reflect.DeepEqual(table.Rows, want) {
		t.Errorf("rows = %v, want %v", table.Rows, want)
	}
}

func TestRenderFailsClosed(t *testing.T) {
	r := NewRenderer(testClinic)

	tests := []struct {
		name string
		cert *models.Certificate
	}{
		{"malformed payload", &models.Certificate{ID: 1, CertType: models.CertTypeMedicalLeave, CertData: "{broken"}},
		{"wrong schema for type", &models.Certificate{ID: 2, CertType: models.CertTypeLabRequest, CertData: `{"tests":[]}`}},
		{"unknown type", &models.Certificate{ID: 3, CertType: "prescription", CertData: "{}"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := r.Render(tt.cert, testPatient(), testVisit(), renderTime())
			if err == nil {
				t.Fatal("expected render error")
			}
			if doc != nil {
				t.Error("render must not return a partial document")
			}
			if _, ok := err.(*RenderError); !ok {
				t.Errorf("error is %T, want *RenderError", err)
			}
		})
	}
}

func TestRenderRequiresDates(t *testing.T) {
	r := NewRenderer(testClinic)
	cert := &models.Certificate{ID: 1, CertType: models.CertTypeMedicalLeave, CertData: `{"start_date":"2024-03-01","end_date":"2024-03-01","days":1}`}

	patient := testPatient()
	patient.DOB = models.Date{}
	if _, err := r.Render(cert, patient, testVisit(), renderTime()); err == nil {
		t.Error("expected error for missing date of birth")
	}

	visit := testVisit()
	visit.Date = models.Date{}
	if _, err := r.Render(cert, testPatient(), visit, renderTime()); err == nil {
		t.Error("expected error for missing visit date")
	}
}

func TestRenderDeterministic(t *testing.T) {
	cert := &models.Certificate{
		ID:        7,
		CertType:  models.CertTypeMedicalLeave,
		CertData:  `{"start_date":"2024-03-01","end_date":"2024-03-03","days":3,"remarks":""}`,
		CreatedAt: time.Date(2024, time.March, 1, 9, 0, 0, 0, time.UTC),
	}
	r := NewRenderer(testClinic)

	first, err := r.Render(cert, testPatient(), testVisit(), renderTime())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}
	second, err := r.Render(cert, testPatient(), testVisit(), renderTime())
	if err != nil {
		t.Fatalf("Render failed: %v", err)
	}

	if !reflect.DeepEqual(first, second) {
		t.Error("rendering the same inputs twice produced different documents")
	}
}

func TestAge(t *testing.T) {
	dob := models.NewDate(2000, time.June, 15)

	tests := []struct {
		name string
		now  time.Time
		want int
	}{
		{"day before birthday", time.Date(2024, time.June, 14, 0, 0, 0, 0, time.UTC), 23},
		{"on birthday", time.Date(2024, time.June, 15, 0, 0, 0, 0, time.UTC), 24},
		{"day after birthday", time.Date(2024, time.June, 16, 0, 0, 0, 0, time.UTC), 24},
		{"earlier month", time.Date(2024, time.January, 1, 0, 0, 0, 0, time.UTC), 23},
		{"later month", time.Date(2024, time.December, 1, 0, 0, 0, 0, time.UTC), 24},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Age(dob, tt.now); got != tt.want {
				t.Errorf("Age = %d, want %d", got, tt.want)
			}
		})
	}
}
