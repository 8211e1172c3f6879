package models

import (
	"time"
)

// Patient represents a registered clinic patient
type Patient struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	FirstName string    `gorm:"type:varchar(255);not null;index" json:"first_name"`
	LastName  string    `gorm:"type:varchar(255);not null;index" json:"last_name"`
	DOB       Date      `gorm:"not null" json:"dob"`
	Phone     string    `gorm:"type:varchar(50)" json:"phone,omitempty"`
	Notes     string    `gorm:"type:text" json:"notes,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName overrides the table name
func (Patient) TableName() string {
	return "patients"
}

// FullName returns the patient's display name
func (p *Patient) FullName() string {
	return p.FirstName + " " + p.LastName
}

// PatientRequest is the create/update payload for a patient
type PatientRequest struct {
	FirstName string `json:"first_name" validate:"required"`
	LastName  string `json:"last_name" validate:"required"`
	DOB       Date   `json:"dob" validate:"required"`
	Phone     string `json:"phone"`
	Notes     string `json:"notes"`
}

// PatientWithVisits is the detail view of a patient
type PatientWithVisits struct {
	Patient
	Visits []VisitWithCertificates `json:"visits"`
}
