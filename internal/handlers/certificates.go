package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/google/uuid"
	"github.com/quickcert/quickcert-api/internal/certdoc"
	"github.com/quickcert/quickcert-api/internal/middleware"
	"github.com/quickcert/quickcert-api/internal/models"
	"github.com/quickcert/quickcert-api/internal/services"
	"github.com/quickcert/quickcert-api/internal/validation"
	"github.com/rs/zerolog/log"
)

type CertificateHandler struct {
	certService *services.CertificateService
}

func NewCertificateHandler(certService *services.CertificateService) *CertificateHandler {
	return &CertificateHandler{
		certService: certService,
	}
}

// CreateCertificate handles POST /visits/{id}/certificates. The payload is
// validated against its type's schema before anything is stored; a repeated
// X-Idempotency-Key replays the original record instead of duplicating it.
func (h *CertificateHandler) CreateCertificate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	visitID, err := urlID(r, "id")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid visit ID")
		return
	}

	var req models.CertificateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, validation.FormatFirstError(err))
		return
	}

	cert, replayed, err := h.certService.Create(ctx, visitID, &req, idempotencyKey(r))
	if err != nil {
		var payloadErr *services.PayloadError
		if errors.As(err, &payloadErr) {
			writeDetail(w, http.StatusUnprocessableEntity, payloadErr.Error())
			return
		}
		if notFound(err) {
			writeDetail(w, http.StatusNotFound, "Visit not found")
			return
		}
		log.Error().Err(err).Uint("visit_id", visitID).Msg("Failed to create certificate")
		writeDetail(w, http.StatusInternalServerError, "Failed to create certificate")
		return
	}

	status := http.StatusCreated
	if replayed {
		status = http.StatusOK
	}
	writeJSON(w, status, cert)
}

// GetCertificate handles GET /certificates/{id} with embedded patient and visit
func (h *CertificateHandler) GetCertificate(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := urlID(r, "id")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid certificate ID")
		return
	}

	detail, err := h.certService.Detail(ctx, id)
	if err != nil {
		if notFound(err) {
			writeDetail(w, http.StatusNotFound, "Certificate not found")
			return
		}
		log.Error().Err(err).Uint("certificate_id", id).Msg("Failed to get certificate")
		writeDetail(w, http.StatusInternalServerError, "Failed to get certificate")
		return
	}

	writeJSON(w, http.StatusOK, detail)
}

// ListRecent handles GET /certificates?limit=N
func (h *CertificateHandler) ListRecent(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	limit := 10
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	certs, err := h.certService.Recent(ctx, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list recent certificates")
		writeDetail(w, http.StatusInternalServerError, "Failed to list certificates")
		return
	}

	writeJSON(w, http.StatusOK, certs)
}

// GetDocument handles GET /certificates/{id}/document, returning the
// rendered document tree used by preview and print.
func (h *CertificateHandler) GetDocument(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := urlID(r, "id")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid certificate ID")
		return
	}

	doc, err := h.certService.RenderDocument(ctx, id, time.Now())
	if err != nil {
		h.writeRenderError(w, id, err)
		return
	}

	writeJSON(w, http.StatusOK, doc)
}

// ExportPDF handles GET /certificates/{id}/pdf
func (h *CertificateHandler) ExportPDF(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := urlID(r, "id")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid certificate ID")
		return
	}

	data, filename, err := h.certService.ExportPDF(ctx, id, time.Now())
	if err != nil {
		var exportErr *certdoc.ExportError
		if errors.As(err, &exportErr) {
			log.Error().Err(err).Uint("certificate_id", id).Msg("PDF export failed")
			writeDetail(w, http.StatusInternalServerError, "Failed to export certificate")
			return
		}
		h.writeRenderError(w, id, err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	w.WriteHeader(http.StatusOK)
	w.Write(data)
}

func (h *CertificateHandler) writeRenderError(w http.ResponseWriter, id uint, err error) {
	var renderErr *certdoc.RenderError
	if errors.As(err, &renderErr) {
		log.Error().Err(err).Uint("certificate_id", id).Msg("Cannot render certificate")
		writeDetail(w, http.StatusUnprocessableEntity, "Cannot display certificate")
		return
	}
	if notFound(err) {
		writeDetail(w, http.StatusNotFound, "Certificate not found")
		return
	}
	log.Error().Err(err).Uint("certificate_id", id).Msg("Failed to render certificate")
	writeDetail(w, http.StatusInternalServerError, "Failed to render certificate")
}

// idempotencyKey pulls the parsed key out of the request context, if present
func idempotencyKey(r *http.Request) *uuid.UUID {
	if key, ok := middleware.GetIdempotencyKey(r.Context()); ok {
		return &key
	}
	return nil
}
