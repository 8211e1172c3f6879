package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/quickcert/quickcert-api/internal/models"
	"github.com/quickcert/quickcert-api/internal/services"
	"github.com/quickcert/quickcert-api/internal/validation"
	"github.com/rs/zerolog/log"
)

type PatientHandler struct {
	patientService *services.PatientService
}

func NewPatientHandler(patientService *services.PatientService) *PatientHandler {
	return &PatientHandler{
		patientService: patientService,
	}
}

// ListPatients handles GET /patients with optional substring search
func (h *PatientHandler) ListPatients(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	query := r.URL.Query().Get("query")
	skip, _ := strconv.Atoi(r.URL.Query().Get("skip"))
	limit := 100
	if raw := r.URL.Query().Get("limit"); raw != "" {
		limit, _ = strconv.Atoi(raw)
	}

	patients, err := h.patientService.ListPatients(ctx, query, skip, limit)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list patients")
		writeDetail(w, http.StatusInternalServerError, "Failed to list patients")
		return
	}

	writeJSON(w, http.StatusOK, patients)
}

// GetPatient handles GET /patients/{id}
func (h *PatientHandler) GetPatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := urlID(r, "id")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	patient, err := h.patientService.GetPatient(ctx, id)
	if err != nil {
		if notFound(err) {
			writeDetail(w, http.StatusNotFound, "Patient not found")
			return
		}
		log.Error().Err(err).Uint("patient_id", id).Msg("Failed to get patient")
		writeDetail(w, http.StatusInternalServerError, "Failed to get patient")
		return
	}

	writeJSON(w, http.StatusOK, patient)
}

// CreatePatient handles POST /patients
func (h *PatientHandler) CreatePatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req models.PatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, validation.FormatFirstError(err))
		return
	}

	patient, err := h.patientService.CreatePatient(ctx, &req)
	if err != nil {
		log.Error().Err(err).Msg("Failed to create patient")
		writeDetail(w, http.StatusInternalServerError, "Failed to create patient")
		return
	}

	writeJSON(w, http.StatusCreated, patient)
}

// UpdatePatient handles PUT /patients/{id}
func (h *PatientHandler) UpdatePatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := urlID(r, "id")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	var req models.PatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, validation.FormatFirstError(err))
		return
	}

	patient, err := h.patientService.UpdatePatient(ctx, id, &req)
	if err != nil {
		if notFound(err) {
			writeDetail(w, http.StatusNotFound, "Patient not found")
			return
		}
		log.Error().Err(err).Uint("patient_id", id).Msg("Failed to update patient")
		writeDetail(w, http.StatusInternalServerError, "Failed to update patient")
		return
	}

	writeJSON(w, http.StatusOK, patient)
}

// DeletePatient handles DELETE /patients/{id}
func (h *PatientHandler) DeletePatient(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := urlID(r, "id")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	if err := h.patientService.DeletePatient(ctx, id); err != nil {
		if notFound(err) {
			writeDetail(w, http.StatusNotFound, "Patient not found")
			return
		}
		log.Error().Err(err).Uint("patient_id", id).Msg("Failed to delete patient")
		writeDetail(w, http.StatusInternalServerError, "Failed to delete patient")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// ListVisits handles GET /patients/{id}/visits
func (h *PatientHandler) ListVisits(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := urlID(r, "id")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	visits, err := h.patientService.ListVisits(ctx, id)
	if err != nil {
		if notFound(err) {
			writeDetail(w, http.StatusNotFound, "Patient not found")
			return
		}
		log.Error().Err(err).Uint("patient_id", id).Msg("Failed to list visits")
		writeDetail(w, http.StatusInternalServerError, "Failed to list visits")
		return
	}

	writeJSON(w, http.StatusOK, visits)
}

// CreateVisit handles POST /patients/{id}/visits
func (h *PatientHandler) CreateVisit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := urlID(r, "id")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid patient ID")
		return
	}

	var req models.VisitRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if err := validation.ValidateStruct(&req); err != nil {
		writeDetail(w, http.StatusUnprocessableEntity, validation.FormatFirstError(err))
		return
	}

	visit, err := h.patientService.CreateVisit(ctx, id, &req)
	if err != nil {
		if notFound(err) {
			writeDetail(w, http.StatusNotFound, "Patient not found")
			return
		}
		log.Error().Err(err).Uint("patient_id", id).Msg("Failed to create visit")
		writeDetail(w, http.StatusInternalServerError, "Failed to create visit")
		return
	}

	writeJSON(w, http.StatusCreated, visit)
}

// GetVisit handles GET /visits/{id}
func (h *PatientHandler) GetVisit(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	id, err := urlID(r, "id")
	if err != nil {
		writeDetail(w, http.StatusBadRequest, "Invalid visit ID")
		return
	}

	visit, err := h.patientService.GetVisit(ctx, id)
	if err != nil {
		if notFound(err) {
			writeDetail(w, http.StatusNotFound, "Visit not found")
			return
		}
		log.Error().Err(err).Uint("visit_id", id).Msg("Failed to get visit")
		writeDetail(w, http.StatusInternalServerError, "Failed to get visit")
		return
	}

	writeJSON(w, http.StatusOK, visit)
}
