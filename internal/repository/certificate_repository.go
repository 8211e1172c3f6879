package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/quickcert/quickcert-api/internal/database"
	"github.com/quickcert/quickcert-api/internal/models"
	"gorm.io/gorm"
)

// CertificateRepository handles certificate database operations.
// Certificates are create-and-read only; no update or delete exists.
type CertificateRepository struct{}

// NewCertificateRepository creates a new certificate repository
func NewCertificateRepository() *CertificateRepository {
	return &CertificateRepository{}
}

// Create inserts a new certificate
func (r *CertificateRepository) Create(ctx context.Context, cert *models.Certificate) error {
	if err := database.DB.WithContext(ctx).Create(cert).Error; err != nil {
		return fmt.Errorf("failed to create certificate: %w", err)
	}
	return nil
}

// GetByID retrieves a certificate by ID
func (r *CertificateRepository) GetByID(ctx context.Context, id uint) (*models.Certificate, error) {
	var cert models.Certificate
	if err := database.DB.WithContext(ctx).First(&cert, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get certificate: %w", err)
	}
	return &cert, nil
}

// ListByVisit retrieves a visit's certificates, newest first
func (r *CertificateRepository) ListByVisit(ctx context.Context, visitID uint) ([]models.Certificate, error) {
	var certs []models.Certificate
	if err := database.DB.WithContext(ctx).
		Where("visit_id = ?", visitID).
		Order("created_at DESC").
		Find(&certs).Error; err != nil {
		return nil, fmt.Errorf("failed to list certificates: %w", err)
	}
	return certs, nil
}

// ListRecent retrieves the most recently issued certificates
func (r *CertificateRepository) ListRecent(ctx context.Context, limit int) ([]models.Certificate, error) {
	var certs []models.Certificate
	if err := database.DB.WithContext(ctx).
		Order("created_at DESC").
		Limit(limit).
		Find(&certs).Error; err != nil {
		return nil, fmt.Errorf("failed to list recent certificates: %w", err)
	}
	return certs, nil
}
