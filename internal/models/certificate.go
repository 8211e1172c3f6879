package models

import (
	"fmt"
	"time"
)

// CertType identifies the kind of certificate issued for a visit.
// The set is closed; it is never extended at runtime.
type CertType string

const (
	CertTypeMedicalLeave  CertType = "medical_leave"
	CertTypeLabRequest    CertType = "lab_request"
	CertTypeResultSummary CertType = "result_summary"
)

// ParseCertType validates a raw certificate type string
func ParseCertType(s string) (CertType, error) {
	switch CertType(s) {
	case CertTypeMedicalLeave, CertTypeLabRequest, CertTypeResultSummary:
		return CertType(s), nil
	}
	return "", fmt.Errorf("unknown certificate type: %q", s)
}

// Label returns the human-readable document title for a certificate type
func (t CertType) Label() string {
	switch t {
	case CertTypeMedicalLeave:
		return "Medical Leave Certificate"
	case CertTypeLabRequest:
		return "Laboratory Request Form"
	case CertTypeResultSummary:
		return "Laboratory Result Summary"
	}
	return string(t)
}

// Certificate is an immutable document record tied to one visit.
// CertData is an opaque serialized payload; its schema is keyed by CertType
// and only the certdata package interprets it.
type Certificate struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	VisitID   uint      `gorm:"not null;index" json:"visit_id"`
	CertType  CertType  `gorm:"type:varchar(50);not null" json:"cert_type"`
	CertData  string    `gorm:"type:text;not null" json:"cert_data"`
	CreatedAt time.Time `gorm:"index" json:"created_at"`

	Visit *Visit `gorm:"foreignKey:VisitID" json:"-"`
}

// TableName overrides the table name
func (Certificate) TableName() string {
	return "certificates"
}

// DisplayCode returns the printed certificate number, e.g. QC-000042
func (c *Certificate) DisplayCode() string {
	return fmt.Sprintf("QC-%06d", c.ID)
}

// CertificateRequest is the create payload for a certificate
type CertificateRequest struct {
	CertType string `json:"cert_type" validate:"required,oneof=medical_leave lab_request result_summary"`
	CertData string `json:"cert_data" validate:"required"`
}

// CertificateDetail is a certificate joined with its visit and patient
type CertificateDetail struct {
	Certificate
	Visit   *Visit   `json:"visit"`
	Patient *Patient `json:"patient"`
}
