package certdoc

import (
	"fmt"
	"time"

	"github.com/quickcert/quickcert-api/internal/certdata"
	"github.com/quickcert/quickcert-api/internal/models"
)

// longDateFormat is how dates appear on printed documents
const longDateFormat = "January 2, 2006"

// RenderError marks a certificate that cannot be rendered. Rendering fails
// closed: no partial document is ever produced.
type RenderError struct {
	CertificateID uint
	Reason        string
	Err           error
}

func (e *RenderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("cannot render certificate %d: %s: %v", e.CertificateID, e.Reason, e.Err)
	}
	return fmt.Sprintf("cannot render certificate %d: %s", e.CertificateID, e.Reason)
}

func (e *RenderError) Unwrap() error {
	return e.Err
}

// bodyBuilder produces the type-specific body sections of a document
type bodyBuilder func(p certdata.Payload, patient *models.Patient, visit *models.Visit) []Section

// Renderer turns stored certificates plus patient/visit context into
// documents. It is stateless and safe for concurrent use.
type Renderer struct {
	header   Header
	builders map[models.CertType]bodyBuilder
}

// NewRenderer builds a renderer with the clinic identity printed on every
// document. One body builder is registered per certificate type.
func NewRenderer(clinic Header) *Renderer {
	return &Renderer{
		header: clinic,
		builders: map[models.CertType]bodyBuilder{
			models.CertTypeMedicalLeave:  medicalLeaveBody,
			models.CertTypeLabRequest:    labRequestBody,
			models.CertTypeResultSummary: resultSummaryBody,
		},
	}
}

// Render produces the document for a certificate. now supplies the current
// date used for age computation so rendering stays deterministic in tests.
func (r *Renderer) Render(cert *models.Certificate, patient *models.Patient, visit *models.Visit, now time.Time) (*Document, error) {
	if cert == nil || patient == nil || visit == nil {
		return nil, &RenderError{Reason: "certificate, patient and visit are all required"}
	}
	if patient.DOB.IsZero() {
		return nil, &RenderError{CertificateID: cert.ID, Reason: "patient has no date of birth"}
	}
	if visit.Date.IsZero() {
		return nil, &RenderError{CertificateID: cert.ID, Reason: "visit has no date"}
	}

	build, ok := r.builders[cert.CertType]
	if !ok {
		return nil, &RenderError{CertificateID: cert.ID, Reason: fmt.Sprintf("unknown certificate type %q", cert.CertType)}
	}

	payload, err := certdata.Decode(cert.CertType, cert.CertData)
	if err != nil {
		return nil, &RenderError{CertificateID: cert.ID, Reason: "undecodable payload", Err: err}
	}

	return &Document{
		Header: r.header,
		Title:  cert.CertType.Label(),
		Code:   cert.DisplayCode(),
		Summary: Summary{
			PatientName: patient.FullName(),
			Age:         Age(patient.DOB, now),
			DateOfBirth: longDate(patient.DOB),
			VisitDate:   longDate(visit.Date),
		},
		Body: build(payload, patient, visit),
		Footer: Footer{
			IssuedOn: cert.CreatedAt.Format(longDateFormat),
			Doctor:   visit.Doctor,
			Caption:  "Attending Physician",
		},
	}, nil
}

func medicalLeaveBody(p certdata.Payload, patient *models.Patient, visit *models.Visit) []Section {
	leave := p.(certdata.MedicalLeave)

	body := []Section{
		paragraph(fmt.Sprintf(
			"This is to certify that %s was examined and treated at this clinic on %s.",
			patient.FullName(), longDate(visit.Date),
		)),
		paragraph(fmt.Sprintf(
			"Based on the medical examination, the patient is advised to rest and is excused from work/school for %d day(s), from %s to %s.",
			leave.Days, longDate(leave.StartDate), longDate(leave.EndDate),
		)),
	}
	if visit.Diagnosis != "" {
		body = append(body, line("Diagnosis", visit.Diagnosis))
	}
	if leave.Remarks != "" {
		body = append(body, line("Remarks", leave.Remarks))
	}
	return body
}

func labRequestBody(p certdata.Payload, patient *models.Patient, _ *models.Visit) []Section {
	req := p.(certdata.LabRequest)

	body := []Section{
		paragraph(fmt.Sprintf(
			"Please perform the following laboratory tests for %s:",
			patient.FullName(),
		)),
		list(req.Tests),
	}
	if req.FastingRequired {
		body = append(body, warning("FASTING REQUIRED: Patient should fast for 8-12 hours before the test."))
	}
	if req.Remarks != "" {
		body = append(body, line("Special Instructions", req.Remarks))
	}
	return body
}

func resultSummaryBody(p certdata.Payload, patient *models.Patient, _ *models.Visit) []Section {
	summary := p.(certdata.ResultSummary)

	rows := make([][]string, 0, len(summary.Results))
	for _, r := range summary.Results {
		rows = append(rows, []string{r.Test, r.Value, r.Reference})
	}

	body := []Section{
		paragraph(fmt.Sprintf("Laboratory results for %s:", patient.FullName())),
		{Kind: SectionTable, Table: &Table{
			Columns: []string{"Test", "Result", "Reference"},
			Rows:    rows,
		}},
	}
	if summary.Remarks != "" {
		body = append(body, line("Interpretation", summary.Remarks))
	}
	return body
}

// Age is the number of whole years elapsed between dob and now
func Age(dob models.Date, now time.Time) int {
	age := now.Year() - dob.Year()
	if now.Month() < dob.Month() || (now.Month() == dob.Month() && now.Day() < dob.Day()) {
		age--
	}
	return age
}

func longDate(d models.Date) string {
	return d.Format(longDateFormat)
}
