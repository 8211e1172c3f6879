package repository

import (
	"context"
	"fmt"

	"github.com/quickcert/quickcert-api/internal/database"
	"github.com/quickcert/quickcert-api/internal/models"
)

// AuditRepository handles audit log database operations
type AuditRepository struct{}

// NewAuditRepository creates a new audit repository
func NewAuditRepository() *AuditRepository {
	return &AuditRepository{}
}

// Create inserts a new audit log entry
func (r *AuditRepository) Create(ctx context.Context, entry *models.AuditLog) error {
	if err := database.DB.WithContext(ctx).Create(entry).Error; err != nil {
		return fmt.Errorf("failed to create audit log: %w", err)
	}
	return nil
}

// ListByCertificate retrieves actions recorded for one certificate
func (r *AuditRepository) ListByCertificate(ctx context.Context, certificateID uint) ([]models.AuditLog, error) {
	var entries []models.AuditLog
	if err := database.DB.WithContext(ctx).
		Where("certificate_id = ?", certificateID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, fmt.Errorf("failed to list audit logs: %w", err)
	}
	return entries, nil
}
