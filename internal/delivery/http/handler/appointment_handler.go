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

type AppointmentHandler struct {
	appointmentUsecase usecase.AppointmentUsecase
	validator          *validator.CustomValidator
}

func NewAppointmentHandler(appointmentUsecase usecase.AppointmentUsecase, validator *validator.CustomValidator) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentUsecase: appointmentUsecase,
		validator:          validator,
	}
}

// Create schedules an appointment
// @Summary Create appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateAppointmentRequest true "Appointment"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments [post]
func (h *AppointmentHandler) Create(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.CreateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	created, err := h.appointmentUsecase.Create(r.Context(), employee, &req)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrScheduleConflict:
			response.Conflict(w, err.Error())
		case usecase.ErrPatientNotFound, usecase.ErrEmployeeNotFound:
			response.NotFound(w, err.Error())
		case usecase.ErrNotAPhysician, usecase.ErrInvalidDatetimeFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create appointment")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Appointment created successfully", created)
}

// List lists appointments
// @Summary List appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /appointments [get]
func (h *AppointmentHandler) List(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	page, limit, skip := pagination(r)
	filter := repository.AppointmentFilter{
		PatientID:   queryUint(r, "patient_id"),
		PhysicianID: queryUint(r, "physician_id"),
		Status:      entity.AppointmentStatus(r.URL.Query().Get("status")),
		Skip:        skip,
		Limit:       limit,
	}

	appointments, total, err := h.appointmentUsecase.FindAll(r.Context(), employee, filter)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		response.InternalServerError(w, "Failed to list appointments")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Appointments retrieved successfully", appointments, listMeta(page, limit, total))
}

// Today lists today's appointments for a physician
// @Summary Today's appointments
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param physician_id query int false "Physician ID"
// @Success 200 {object} response.Response
// @Router /appointments/today [get]
func (h *AppointmentHandler) Today(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	appointments, err := h.appointmentUsecase.FindToday(r.Context(), employee, queryUint(r, "physician_id"))
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrEmployeeNotFound:
			response.Error(w, http.StatusBadRequest, "physician_id query parameter is required", nil)
		default:
			response.InternalServerError(w, "Failed to list appointments")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointments retrieved successfully", appointments)
}

// Get returns a single appointment
// @Summary Get appointment
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /appointments/{id} [get]
func (h *AppointmentHandler) Get(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment id", nil)
		return
	}

	found, err := h.appointmentUsecase.FindByID(r.Context(), employee, id)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		default:
			response.InternalServerError(w, "Failed to get appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment retrieved successfully", found)
}

// Update modifies an appointment
// @Summary Update appointment
// @Tags Appointments
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Appointment ID"
// @Param request body dto.UpdateAppointmentRequest true "Appointment"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id} [put]
func (h *AppointmentHandler) Update(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment id", nil)
		return
	}

	var req dto.UpdateAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	updated, err := h.appointmentUsecase.Update(r.Context(), employee, id, &req)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrScheduleConflict:
			response.Conflict(w, err.Error())
		case usecase.ErrInvalidDatetimeFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment updated successfully", updated)
}

// Cancel cancels an appointment
// @Summary Cancel appointment
// @Tags Appointments
// @Security BearerAuth
// @Produce json
// @Param id path int true "Appointment ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /appointments/{id}/cancel [post]
func (h *AppointmentHandler) Cancel(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid appointment id", nil)
		return
	}

	if err := h.appointmentUsecase.Cancel(r.Context(), employee, id); err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrAppointmentNotFound:
			response.NotFound(w, "Appointment not found")
		case usecase.ErrAppointmentAlreadyCancelled:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to cancel appointment")
		}
		return
	}

	response.Success(w, http.StatusOK, "Appointment cancelled successfully", nil)
}
