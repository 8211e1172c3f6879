// Package certdata owns the structure of certificate payloads. A stored
// cert_data blob is opaque everywhere else; this package is the only code
// that encodes, decodes, and validates its per-type shape.
package certdata

import (
	"fmt"

	"github.com/quickcert/quickcert-api/internal/models"
)

// Payload is the typed content of a certificate, one variant per CertType.
// The set of implementations is closed and mirrors models.CertType.
type Payload interface {
	CertType() models.CertType
	Validate() error
}

// FieldError reports a payload field that failed validation
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// MedicalLeave excuses a patient from work/school between two dates
type MedicalLeave struct {
	StartDate models.Date `json:"start_date"`
	EndDate   models.Date `json:"end_date"`
	Days      int         `json:"days"`
	Remarks   string      `json:"remarks"`
}

func (MedicalLeave) CertType() models.CertType {
	return models.CertTypeMedicalLeave
}

func (p MedicalLeave) Validate() error {
	if p.StartDate.IsZero() {
		return &FieldError{Field: "start_date", Message: "is required"}
	}
	if p.EndDate.IsZero() {
		return &FieldError{Field: "end_date", Message: "is required"}
	}
	if p.Days < 1 {
		return &FieldError{Field: "days", Message: "must be at least 1"}
	}
	return nil
}

// LabRequest asks the laboratory to perform a list of tests
type LabRequest struct {
	Tests           []string `json:"tests"`
	FastingRequired bool     `json:"fasting_required"`
	Remarks         string   `json:"remarks"`
}

func (LabRequest) CertType() models.CertType {
	return models.CertTypeLabRequest
}

func (p LabRequest) Validate() error {
	if len(p.Tests) == 0 {
		return &FieldError{Field: "tests", Message: "at least one test is required"}
	}
	for _, t := range p.Tests {
		if t == "" {
			return &FieldError{Field: "tests", Message: "test names must not be empty"}
		}
	}
	return nil
}

// ResultRow is one line of a laboratory result summary
type ResultRow struct {
	Test      string `json:"test"`
	Value     string `json:"value"`
	Reference string `json:"reference"`
}

// ResultSummary reports laboratory results back to the patient.
// Zero rows is a valid (if empty) summary.
type ResultSummary struct {
	Results []ResultRow `json:"results"`
	Remarks string      `json:"remarks"`
}

func (ResultSummary) CertType() models.CertType {
	return models.CertTypeResultSummary
}

func (p ResultSummary) Validate() error {
	for i, r := range p.Results {
		if r.Test == "" {
			return &FieldError{Field: fmt.Sprintf("results[%d].test", i), Message: "must not be empty"}
		}
	}
	return nil
}
