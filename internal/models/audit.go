package models

import (
	"time"
)

// Audit actions recorded for certificate handling
const (
	AuditActionIssue  = "certificate.issue"
	AuditActionRender = "certificate.render"
	AuditActionExport = "certificate.export"
)

// AuditLog records an action taken on a certificate
type AuditLog struct {
	ID            uint      `gorm:"primaryKey" json:"id"`
	CertificateID uint      `gorm:"index" json:"certificate_id"`
	Action        string    `gorm:"type:varchar(100);not null;index" json:"action"`
	Status        string    `gorm:"type:varchar(20);index" json:"status"` // success, failure
	ErrorMessage  string    `gorm:"type:text" json:"error_message,omitempty"`
	Duration      int64     `json:"duration_ms"`
	CreatedAt     time.Time `gorm:"index" json:"timestamp"`
}

// TableName overrides the table name
func (AuditLog) TableName() string {
	return "audit_logs"
}
