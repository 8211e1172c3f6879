package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/quickcert/quickcert-api/internal/database"
	"github.com/quickcert/quickcert-api/internal/models"
	"gorm.io/gorm"
)

// VisitRepository handles visit database operations
type VisitRepository struct{}

// NewVisitRepository creates a new visit repository
func NewVisitRepository() *VisitRepository {
	return &VisitRepository{}
}

// Create inserts a new visit
func (r *VisitRepository) Create(ctx context.Context, visit *models.Visit) error {
	if err := database.DB.WithContext(ctx).Create(visit).Error; err != nil {
		return fmt.Errorf("failed to create visit: %w", err)
	}
	return nil
}

// GetByID retrieves a visit by ID
func (r *VisitRepository) GetByID(ctx context.Context, id uint) (*models.Visit, error) {
	var visit models.Visit
	if err := database.DB.WithContext(ctx).First(&visit, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get visit: %w", err)
	}
	return &visit, nil
}

// ListByPatient retrieves a patient's visits, most recent visit date first
func (r *VisitRepository) ListByPatient(ctx context.Context, patientID uint) ([]models.Visit, error) {
	var visits []models.Visit
	if err := database.DB.WithContext(ctx).
		Where("patient_id = ?", patientID).
		Order("date DESC").
		Find(&visits).Error; err != nil {
		return nil, fmt.Errorf("failed to list visits: %w", err)
	}
	return visits, nil
}
