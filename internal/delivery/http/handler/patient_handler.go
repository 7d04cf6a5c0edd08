package handler

import (
	"encoding/json"
	"net/http"

	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/repository"
	"clinic-management-api/internal/usecase"
	"clinic-management-api/pkg/response"
	"clinic-management-api/pkg/validator"
)

type PatientHandler struct {
	patientUsecase usecase.PatientUsecase
	validator      *validator.CustomValidator
}

func NewPatientHandler(patientUsecase usecase.PatientUsecase, validator *validator.CustomValidator) *PatientHandler {
	return &PatientHandler{
		patientUsecase: patientUsecase,
		validator:      validator,
	}
}

// Create registers a new patient
// @Summary Create patient
// @Tags Patients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreatePatientRequest true "Patient"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /patients [post]
func (h *PatientHandler) Create(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.CreatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	created, err := h.patientUsecase.Create(r.Context(), employee, &req)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrCPFAlreadyExists, usecase.ErrRGAlreadyExists:
			response.Conflict(w, err.Error())
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create patient")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Patient created successfully", created)
}

// List lists patients
// @Summary List patients
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /patients [get]
func (h *PatientHandler) List(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	page, limit, skip := pagination(r)
	filter := repository.PatientFilter{
		Search: r.URL.Query().Get("search"),
		Skip:   skip,
		Limit:  limit,
	}

	patients, total, err := h.patientUsecase.FindAll(r.Context(), employee, filter)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		response.InternalServerError(w, "Failed to list patients")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Patients retrieved successfully", patients, listMeta(page, limit, total))
}

// SearchByCPF finds patients by CPF prefix
// @Summary Search patients by CPF
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Param cpf query string true "CPF"
// @Success 200 {object} response.Response
// @Router /patients/search/cpf [get]
func (h *PatientHandler) SearchByCPF(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	cpf := r.URL.Query().Get("cpf")
	if cpf == "" {
		response.Error(w, http.StatusBadRequest, "cpf query parameter is required", nil)
		return
	}

	patients, err := h.patientUsecase.SearchByCPF(r.Context(), employee, cpf)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		response.InternalServerError(w, "Failed to search patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

// SearchByName finds patients by name fragment
// @Summary Search patients by name
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Param name query string true "Name"
// @Success 200 {object} response.Response
// @Router /patients/search/name [get]
func (h *PatientHandler) SearchByName(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	name := r.URL.Query().Get("name")
	if name == "" {
		response.Error(w, http.StatusBadRequest, "name query parameter is required", nil)
		return
	}

	patients, err := h.patientUsecase.SearchByName(r.Context(), employee, name)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		response.InternalServerError(w, "Failed to search patients")
		return
	}

	response.Success(w, http.StatusOK, "Patients retrieved successfully", patients)
}

// Get returns a single patient
// @Summary Get patient
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Param id path int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{id} [get]
func (h *PatientHandler) Get(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient id", nil)
		return
	}

	found, err := h.patientUsecase.FindByID(r.Context(), employee, id)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		default:
			response.InternalServerError(w, "Failed to get patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient retrieved successfully", found)
}

// Update modifies a patient
// @Summary Update patient
// @Tags Patients
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Patient ID"
// @Param request body dto.UpdatePatientRequest true "Patient"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /patients/{id} [put]
func (h *PatientHandler) Update(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient id", nil)
		return
	}

	var req dto.UpdatePatientRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	updated, err := h.patientUsecase.Update(r.Context(), employee, id, &req)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrCPFAlreadyExists, usecase.ErrRGAlreadyExists:
			response.Conflict(w, err.Error())
		case usecase.ErrInvalidDateFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient updated successfully", updated)
}

// Delete removes a patient
// @Summary Delete patient
// @Tags Patients
// @Security BearerAuth
// @Produce json
// @Param id path int true "Patient ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /patients/{id} [delete]
func (h *PatientHandler) Delete(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient id", nil)
		return
	}

	if err := h.patientUsecase.Delete(r.Context(), employee, id); err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrPatientNotFound:
			response.NotFound(w, "Patient not found")
		case usecase.ErrPatientReferenced:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to delete patient")
		}
		return
	}

	response.Success(w, http.StatusOK, "Patient deleted successfully", nil)
}
