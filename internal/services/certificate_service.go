package services

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/quickcert/quickcert-api/internal/cache"
	"github.com/quickcert/quickcert-api/internal/certdata"
	"github.com/quickcert/quickcert-api/internal/certdoc"
	"github.com/quickcert/quickcert-api/internal/metrics"
	"github.com/quickcert/quickcert-api/internal/models"
	"github.com/quickcert/quickcert-api/internal/repository"
	"github.com/rs/zerolog/log"
)

const idempotencyTTL = 24 * time.Hour

// PayloadError marks a certificate submission whose cert_data does not
// match the schema for its cert_type. Rejected before anything is stored.
type PayloadError struct {
	Err error
}

func (e *PayloadError) Error() string {
	return e.Err.Error()
}

func (e *PayloadError) Unwrap() error {
	return e.Err
}

// CertificateService handles certificate creation, rendering and export
type CertificateService struct {
	certRepo    *repository.CertificateRepository
	visitRepo   *repository.VisitRepository
	patientRepo *repository.PatientRepository
	auditRepo   *repository.AuditRepository
	cache       cache.Cache
	renderer    *certdoc.Renderer
	pdfTTL      time.Duration
}

// NewCertificateService creates a new certificate service
func NewCertificateService(
	certRepo *repository.CertificateRepository,
	visitRepo *repository.VisitRepository,
	patientRepo *repository.PatientRepository,
	auditRepo *repository.AuditRepository,
	c cache.Cache,
	renderer *certdoc.Renderer,
	pdfTTL time.Duration,
) *CertificateService {
	return &CertificateService{
		certRepo:    certRepo,
		visitRepo:   visitRepo,
		patientRepo: patientRepo,
		auditRepo:   auditRepo,
		cache:       c,
		renderer:    renderer,
		pdfTTL:      pdfTTL,
	}
}

// Create issues a certificate for a visit. The payload is decoded and
// validated against its type's schema before anything is persisted.
// When an idempotency key is supplied and has been seen before, the
// originally created certificate is returned with replayed=true.
func (s *CertificateService) Create(ctx context.Context, visitID uint, req *models.CertificateRequest, idemKey *uuid.UUID) (cert *models.Certificate, replayed bool, err error) {
	if _, err := s.visitRepo.GetByID(ctx, visitID); err != nil {
		return nil, false, err
	}

	certType, err := models.ParseCertType(req.CertType)
	if err != nil {
		return nil, false, &PayloadError{Err: err}
	}
	if _, err := certdata.Decode(certType, req.CertData); err != nil {
		return nil, false, &PayloadError{Err: err}
	}

	if idemKey != nil {
		if existing, ok := s.replay(ctx, visitID, *idemKey); ok {
			return existing, true, nil
		}
	}

	cert = &models.Certificate{
		VisitID:  visitID,
		CertType: certType,
		CertData: req.CertData,
	}
	if err := s.certRepo.Create(ctx, cert); err != nil {
		return nil, false, err
	}

	if idemKey != nil {
		key := cache.IdempotencyKey(visitID, idemKey.String())
		value := []byte(strconv.FormatUint(uint64(cert.ID), 10))
		if err := s.cache.Set(ctx, key, value, idempotencyTTL); err != nil {
			log.Warn().Err(err).Uint("certificate_id", cert.ID).Msg("Failed to store idempotency key")
		}
	}

	metrics.CertificatesIssued.WithLabelValues(string(certType)).Inc()
	s.audit(ctx, cert.ID, models.AuditActionIssue, nil)
	return cert, false, nil
}

// replay looks up a previously stored idempotency key and loads the
// certificate it created.
func (s *CertificateService) replay(ctx context.Context, visitID uint, key uuid.UUID) (*models.Certificate, bool) {
	value, err := s.cache.Get(ctx, cache.IdempotencyKey(visitID, key.String()))
	if err != nil {
		return nil, false
	}
	id, err := strconv.ParseUint(string(value), 10, 64)
	if err != nil {
		return nil, false
	}
	cert, err := s.certRepo.GetByID(ctx, uint(id))
	if err != nil {
		return nil, false
	}
	return cert, true
}

// Detail retrieves a certificate joined with its visit and patient
func (s *CertificateService) Detail(ctx context.Context, id uint) (*models.CertificateDetail, error) {
	cert, err := s.certRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	visit, err := s.visitRepo.GetByID(ctx, cert.VisitID)
	if err != nil {
		return nil, fmt.Errorf("failed to load visit for certificate %d: %w", id, err)
	}

	patient, err := s.patientRepo.GetByID(ctx, visit.PatientID)
	if err != nil {
		return nil, fmt.Errorf("failed to load patient for certificate %d: %w", id, err)
	}

	return &models.CertificateDetail{
		Certificate: *cert,
		Visit:       visit,
		Patient:     patient,
	}, nil
}

// Recent retrieves the most recently issued certificates
func (s *CertificateService) Recent(ctx context.Context, limit int) ([]models.Certificate, error) {
	return s.certRepo.ListRecent(ctx, limit)
}

// RenderDocument produces the printable document for a certificate.
// now supplies the render-time date for age computation.
func (s *CertificateService) RenderDocument(ctx context.Context, id uint, now time.Time) (*certdoc.Document, error) {
	detail, err := s.Detail(ctx, id)
	if err != nil {
		return nil, err
	}

	doc, err := s.renderer.Render(&detail.Certificate, detail.Patient, detail.Visit, now)
	if err != nil {
		metrics.RenderFailures.Inc()
		s.audit(ctx, id, models.AuditActionRender, err)
		return nil, err
	}

	metrics.DocumentsRendered.Inc()
	s.audit(ctx, id, models.AuditActionRender, nil)
	return doc, nil
}

// ExportPDF renders a certificate and encodes it as a PDF. Exported bytes
// are cached per certificate; records are immutable so the cache never
// goes stale.
func (s *CertificateService) ExportPDF(ctx context.Context, id uint, now time.Time) ([]byte, string, error) {
	filename := certdoc.PDFFilename(id)

	if data, err := s.cache.Get(ctx, cache.PDFKey(id)); err == nil {
		metrics.PDFExports.WithLabelValues("hit").Inc()
		return data, filename, nil
	}

	doc, err := s.RenderDocument(ctx, id, now)
	if err != nil {
		return nil, "", err
	}

	data, err := certdoc.ExportPDF(doc)
	if err != nil {
		metrics.ExportFailures.Inc()
		s.audit(ctx, id, models.AuditActionExport, err)
		return nil, "", err
	}

	if err := s.cache.Set(ctx, cache.PDFKey(id), data, s.pdfTTL); err != nil {
		log.Warn().Err(err).Uint("certificate_id", id).Msg("Failed to cache PDF")
	}

	metrics.PDFExports.WithLabelValues("miss").Inc()
	s.audit(ctx, id, models.AuditActionExport, nil)
	return data, filename, nil
}

// audit records an action best-effort; failures are logged, not returned
func (s *CertificateService) audit(ctx context.Context, certID uint, action string, actionErr error) {
	entry := &models.AuditLog{
		CertificateID: certID,
		Action:        action,
		Status:        "success",
	}
	if actionErr != nil {
		entry.Status = "failure"
		entry.ErrorMessage = actionErr.Error()
	}
	if err := s.auditRepo.Create(ctx, entry); err != nil {
		log.Warn().Err(err).Uint("certificate_id", certID).Str("action", action).Msg("Failed to write audit log")
	}
}
