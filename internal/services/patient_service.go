package services

import (
	"context"

	"github.com/quickcert/quickcert-api/internal/models"
	"github.com/quickcert/quickcert-api/internal/repository"
)

// PatientService handles business logic for patients and their visits
type PatientService struct {
	patientRepo *repository.PatientRepository
	visitRepo   *repository.VisitRepository
	certRepo    *repository.CertificateRepository
}

// NewPatientService creates a new patient service
func NewPatientService(
	patientRepo *repository.PatientRepository,
	visitRepo *repository.VisitRepository,
	certRepo *repository.CertificateRepository,
) *PatientService {
	return &PatientService{
		patientRepo: patientRepo,
		visitRepo:   visitRepo,
		certRepo:    certRepo,
	}
}

// CreatePatient registers a new patient
func (s *PatientService) CreatePatient(ctx context.Context, req *models.PatientRequest) (*models.Patient, error) {
	patient := &models.Patient{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		DOB:       req.DOB,
		Phone:     req.Phone,
		Notes:     req.Notes,
	}
	if err := s.patientRepo.Create(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// GetPatient retrieves a patient with their visits and each visit's
// certificates embedded.
func (s *PatientService) GetPatient(ctx context.Context, id uint) (*models.PatientWithVisits, error) {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	visits, err := s.visitRepo.ListByPatient(ctx, id)
	if err != nil {
		return nil, err
	}

	detail := &models.PatientWithVisits{
		Patient: *patient,
		Visits:  make([]models.VisitWithCertificates, 0, len(visits)),
	}
	for _, v := range visits {
		certs, err := s.certRepo.ListByVisit(ctx, v.ID)
		if err != nil {
			return nil, err
		}
		detail.Visits = append(detail.Visits, models.VisitWithCertificates{
			Visit:        v,
			Certificates: certs,
		})
	}
	return detail, nil
}

// ListPatients searches patients by name or phone substring
func (s *PatientService) ListPatients(ctx context.Context, query string, skip, limit int) ([]models.Patient, error) {
	return s.patientRepo.List(ctx, query, skip, limit)
}

// UpdatePatient overwrites a patient's details
func (s *PatientService) UpdatePatient(ctx context.Context, id uint, req *models.PatientRequest) (*models.Patient, error) {
	patient, err := s.patientRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	patient.FirstName = req.FirstName
	patient.LastName = req.LastName
	patient.DOB = req.DOB
	patient.Phone = req.Phone
	patient.Notes = req.Notes

	if err := s.patientRepo.Update(ctx, patient); err != nil {
		return nil, err
	}
	return patient, nil
}

// DeletePatient removes a patient
func (s *PatientService) DeletePatient(ctx context.Context, id uint) error {
	return s.patientRepo.Delete(ctx, id)
}

// CreateVisit records a new visit for a patient
func (s *PatientService) CreateVisit(ctx context.Context, patientID uint, req *models.VisitRequest) (*models.Visit, error) {
	if _, err := s.patientRepo.GetByID(ctx, patientID); err != nil {
		return nil, err
	}

	visit := &models.Visit{
		PatientID: patientID,
		Date:      req.Date,
		Doctor:    req.Doctor,
		Reason:    req.Reason,
		Diagnosis: req.Diagnosis,
	}
	if err := s.visitRepo.Create(ctx, visit); err != nil {
		return nil, err
	}
	return visit, nil
}

// ListVisits retrieves a patient's visits
func (s *PatientService) ListVisits(ctx context.Context, patientID uint) ([]models.Visit, error) {
	if _, err := s.patientRepo.GetByID(ctx, patientID); err != nil {
		return nil, err
	}
	return s.visitRepo.ListByPatient(ctx, patientID)
}

// GetVisit retrieves a visit with its certificates
func (s *PatientService) GetVisit(ctx context.Context, id uint) (*models.VisitWithCertificates, error) {
	visit, err := s.visitRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	certs, err := s.certRepo.ListByVisit(ctx, id)
	if err != nil {
		return nil, err
	}
	return &models.VisitWithCertificates{Visit: *visit, Certificates: certs}, nil
}
