package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/quickcert/quickcert-api/internal/database"
	"github.com/quickcert/quickcert-api/internal/models"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a record does not exist
var ErrNotFound = errors.New("record not found")

// PatientRepository handles patient database operations
type PatientRepository struct{}

// NewPatientRepository creates a new patient repository
func NewPatientRepository() *PatientRepository {
	return &PatientRepository{}
}

// Create inserts a new patient
func (r *PatientRepository) Create(ctx context.Context, patient *models.Patient) error {
	if err := database.DB.WithContext(ctx).Create(patient).Error; err != nil {
		return fmt.Errorf("failed to create patient: %w", err)
	}
	return nil
}

// GetByID retrieves a patient by ID
func (r *PatientRepository) GetByID(ctx context.Context, id uint) (*models.Patient, error) {
	var patient models.Patient
	if err := database.DB.WithContext(ctx).First(&patient, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("failed to get patient: %w", err)
	}
	return &patient, nil
}

// List retrieves patients, optionally filtered by a substring of name or
// phone, most recently registered first.
func (r *PatientRepository) List(ctx context.Context, query string, skip, limit int) ([]models.Patient, error) {
	var patients []models.Patient

	q := database.DB.WithContext(ctx).Model(&models.Patient{})
	if query != "" {
		pattern := "%" + query + "%"
		q = q.Where(
			"first_name ILIKE ? OR last_name ILIKE ? OR phone ILIKE ?",
			pattern, pattern, pattern,
		)
	}
	if skip > 0 {
		q = q.Offset(skip)
	}
	if limit > 0 {
		q = q.Limit(limit)
	}

	if err := q.Order("created_at DESC").Find(&patients).Error; err != nil {
		return nil, fmt.Errorf("failed to list patients: %w", err)
	}
	return patients, nil
}

// Update overwrites a patient's editable fields
func (r *PatientRepository) Update(ctx context.Context, patient *models.Patient) error {
	if err := database.DB.WithContext(ctx).Save(patient).Error; err != nil {
		return fmt.Errorf("failed to update patient: %w", err)
	}
	return nil
}

// Delete removes a patient
func (r *PatientRepository) Delete(ctx context.Context, id uint) error {
	result := database.DB.WithContext(ctx).Delete(&models.Patient{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete patient: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}
