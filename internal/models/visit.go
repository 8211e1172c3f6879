package models

import (
	"time"
)

// Visit represents a single clinical encounter for a patient
type Visit struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	PatientID uint      `gorm:"not null;index" json:"patient_id"`
	Date      Date      `gorm:"not null" json:"date"`
	Doctor    string    `gorm:"type:varchar(255);not null" json:"doctor"`
	Reason    string    `gorm:"type:text;not null" json:"reason"`
	Diagnosis string    `gorm:"type:text" json:"diagnosis,omitempty"`
	CreatedAt time.Time `json:"created_at"`

	Patient *Patient `gorm:"foreignKey:PatientID" json:"-"`
}

// TableName overrides the table name
func (Visit) TableName() string {
	return "visits"
}

// VisitRequest is the create payload for a visit
type VisitRequest struct {
	Date      Date   `json:"date" validate:"required"`
	Doctor    string `json:"doctor" validate:"required"`
	Reason    string `json:"reason" validate:"required"`
	Diagnosis string `json:"diagnosis"`
}

// VisitWithCertificates is the detail view of a visit
type VisitWithCertificates struct {
	Visit
	Certificates []Certificate `json:"certificates"`
}
