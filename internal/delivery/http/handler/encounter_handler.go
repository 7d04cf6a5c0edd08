package handler

import (
	"encoding/json"
	"net/http"

	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/domain/repository"
	"clinic-management-api/internal/usecase"
	"clinic-management-api/pkg/response"
	"clinic-management-api/pkg/validator"
)

type EncounterHandler struct {
	encounterUsecase usecase.EncounterUsecase
	validator        *validator.CustomValidator
}

func NewEncounterHandler(encounterUsecase usecase.EncounterUsecase, validator *validator.CustomValidator) *EncounterHandler {
	return &EncounterHandler{
		encounterUsecase: encounterUsecase,
		validator:        validator,
	}
}

// Create opens a nursing encounter
// @Summary Create nursing encounter
// @Tags Encounters
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateEncounterRequest true "Encounter"
// @Success 201 {object} response.Response
// @Router /encounters [post]
func (h *EncounterHandler) Create(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.CreateEncounterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	created, err := h.encounterUsecase.Create(r.Context(), employee, &req)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrPatientNotFound, usecase.ErrEmployeeNotFound:
			response.NotFound(w, err.Error())
		case usecase.ErrNotOwnEncounter, usecase.ErrSupervisorNotPhysician:
			response.Forbidden(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to create encounter")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Encounter created successfully", created)
}

// Triage opens a triage encounter with vitals
// @Summary Create triage encounter
// @Tags Encounters
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.TriageRequest true "Triage"
// @Success 201 {object} response.Response
// @Router /encounters/triage [post]
func (h *EncounterHandler) Triage(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.TriageRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	created, err := h.encounterUsecase.Triage(r.Context(), employee, &req)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, err.Error())
		case usecase.ErrNotOwnEncounter:
			response.Forbidden(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to create triage encounter")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Triage encounter created successfully", created)
}

// List lists encounters
// @Summary List encounters
// @Tags Encounters
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /encounters [get]
func (h *EncounterHandler) List(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	page, limit, skip := pagination(r)
	filter := repository.EncounterFilter{
		PatientID:    queryUint(r, "patient_id"),
		NurseID:      queryUint(r, "nurse_id"),
		SupervisorID: queryUint(r, "supervisor_id"),
		Status:       entity.EncounterStatus(r.URL.Query().Get("status")),
		Kind:         entity.EncounterKind(r.URL.Query().Get("kind")),
		Sector:       r.URL.Query().Get("sector"),
		Search:       r.URL.Query().Get("search"),
		Skip:         skip,
		Limit:        limit,
	}

	encounters, total, err := h.encounterUsecase.FindAll(r.Context(), employee, filter)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		response.InternalServerError(w, "Failed to list encounters")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Encounters retrieved successfully", encounters, listMeta(page, limit, total))
}

// InProgress lists open encounters
// @Summary List in-progress encounters
// @Tags Encounters
// @Security BearerAuth
// @Produce json
// @Param nurse_id query int false "Nurse ID"
// @Success 200 {object} response.Response
// @Router /encounters/in-progress [get]
func (h *EncounterHandler) InProgress(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	encounters, err := h.encounterUsecase.FindInProgress(r.Context(), employee, queryUint(r, "nurse_id"))
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		response.InternalServerError(w, "Failed to list encounters")
		return
	}

	response.Success(w, http.StatusOK, "Encounters retrieved successfully", encounters)
}

// ByNurse lists a nurse's encounters
// @Summary List encounters of a nurse
// @Tags Encounters
// @Security BearerAuth
// @Produce json
// @Param nurse_id query int false "Nurse ID"
// @Param day query string false "Day (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /encounters/nurse [get]
func (h *EncounterHandler) ByNurse(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	encounters, err := h.encounterUsecase.FindByNurse(r.Context(), employee, queryUint(r, "nurse_id"), queryDay(r, "day"))
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		response.InternalServerError(w, "Failed to list encounters")
		return
	}

	response.Success(w, http.StatusOK, "Encounters retrieved successfully", encounters)
}

// ByPatient lists a patient's encounters
// @Summary List encounters of a patient
// @Tags Encounters
// @Security BearerAuth
// @Produce json
// @Param id path int true "Patient ID"
// @Success 200 {object} response.Response
// @Router /encounters/patient/{id} [get]
func (h *EncounterHandler) ByPatient(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient id", nil)
		return
	}

	encounters, err := h.encounterUsecase.FindByPatient(r.Context(), employee, id)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		response.InternalServerError(w, "Failed to list encounters")
		return
	}

	response.Success(w, http.StatusOK, "Encounters retrieved successfully", encounters)
}

// Get returns a single encounter
// @Summary Get encounter
// @Tags Encounters
// @Security BearerAuth
// @Produce json
// @Param id path int true "Encounter ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /encounters/{id} [get]
func (h *EncounterHandler) Get(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid encounter id", nil)
		return
	}

	found, err := h.encounterUsecase.FindByID(r.Context(), employee, id)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrEncounterNotFound:
			response.NotFound(w, "Encounter not found")
		default:
			response.InternalServerError(w, "Failed to get encounter")
		}
		return
	}

	response.Success(w, http.StatusOK, "Encounter retrieved successfully", found)
}

// Update modifies an encounter
// @Summary Update encounter
// @Tags Encounters
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Encounter ID"
// @Param request body dto.UpdateEncounterRequest true "Encounter"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /encounters/{id} [put]
func (h *EncounterHandler) Update(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid encounter id", nil)
		return
	}

	var req dto.UpdateEncounterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	updated, err := h.encounterUsecase.Update(r.Context(), employee, id, &req)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrEncounterNotFound:
			response.NotFound(w, "Encounter not found")
		case usecase.ErrEmployeeNotFound:
			response.NotFound(w, err.Error())
		case usecase.ErrSupervisorNotPhysician:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update encounter")
		}
		return
	}

	response.Success(w, http.StatusOK, "Encounter updated successfully", updated)
}

// RecordVitals records triage vitals
// @Summary Record encounter vitals
// @Tags Encounters
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Encounter ID"
// @Param request body dto.VitalsRequest true "Vitals"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /encounters/{id}/vitals [patch]
func (h *EncounterHandler) RecordVitals(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid encounter id", nil)
		return
	}

	var req dto.VitalsRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	updated, err := h.encounterUsecase.RecordVitals(r.Context(), employee, id, &req)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrEncounterNotFound:
			response.NotFound(w, "Encounter not found")
		case usecase.ErrEncounterClosed:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to record vitals")
		}
		return
	}

	response.Success(w, http.StatusOK, "Vitals recorded successfully", updated)
}

// Start moves a waiting encounter to in progress
// @Summary Start encounter
// @Tags Encounters
// @Security BearerAuth
// @Produce json
// @Param id path int true "Encounter ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /encounters/{id}/start [post]
func (h *EncounterHandler) Start(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid encounter id", nil)
		return
	}

	updated, err := h.encounterUsecase.Start(r.Context(), employee, id)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrEncounterNotFound:
			response.NotFound(w, "Encounter not found")
		case usecase.ErrEncounterNotWaiting:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to start encounter")
		}
		return
	}

	response.Success(w, http.StatusOK, "Encounter started successfully", updated)
}

// Finish closes an in-progress encounter
// @Summary Finish encounter
// @Tags Encounters
// @Security BearerAuth
// @Produce json
// @Param id path int true "Encounter ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /encounters/{id}/finish [post]
func (h *EncounterHandler) Finish(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid encounter id", nil)
		return
	}

	updated, err := h.encounterUsecase.Finish(r.Context(), employee, id)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrEncounterNotFound:
			response.NotFound(w, "Encounter not found")
		case usecase.ErrEncounterNotInProgress:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to finish encounter")
		}
		return
	}

	response.Success(w, http.StatusOK, "Encounter finished successfully", updated)
}

// Delete removes an encounter
// @Summary Delete encounter
// @Tags Encounters
// @Security BearerAuth
// @Produce json
// @Param id path int true "Encounter ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /encounters/{id} [delete]
func (h *EncounterHandler) Delete(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid encounter id", nil)
		return
	}

	if err := h.encounterUsecase.Delete(r.Context(), employee, id); err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrEncounterNotFound:
			response.NotFound(w, "Encounter not found")
		default:
			response.InternalServerError(w, "Failed to delete encounter")
		}
		return
	}

	response.Success(w, http.StatusOK, "Encounter deleted successfully", nil)
}
