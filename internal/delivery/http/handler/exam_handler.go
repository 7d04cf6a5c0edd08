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

type ExamHandler struct {
	examUsecase usecase.ExamUsecase
	validator   *validator.CustomValidator
}

func NewExamHandler(examUsecase usecase.ExamUsecase, validator *validator.CustomValidator) *ExamHandler {
	return &ExamHandler{
		examUsecase: examUsecase,
		validator:   validator,
	}
}

// Create orders an exam
// @Summary Create exam
// @Tags Exams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateExamRequest true "Exam"
// @Success 201 {object} response.Response
// @Router /exams [post]
func (h *ExamHandler) Create(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.CreateExamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	created, err := h.examUsecase.Create(r.Context(), employee, &req)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrPatientNotFound, usecase.ErrEmployeeNotFound:
			response.NotFound(w, err.Error())
		case usecase.ErrNotAPhysician, usecase.ErrNotANurse, usecase.ErrInvalidDatetimeFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create exam")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Exam created successfully", created)
}

// List lists exams
// @Summary List exams
// @Tags Exams
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /exams [get]
func (h *ExamHandler) List(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	page, limit, skip := pagination(r)
	filter := repository.ExamFilter{
		PatientID:   queryUint(r, "patient_id"),
		PhysicianID: queryUint(r, "physician_id"),
		NurseID:     queryUint(r, "nurse_id"),
		Status:      entity.ExamStatus(r.URL.Query().Get("status")),
		Kind:        entity.ExamKind(r.URL.Query().Get("kind")),
		Search:      r.URL.Query().Get("search"),
		Skip:        skip,
		Limit:       limit,
	}

	exams, total, err := h.examUsecase.FindAll(r.Context(), employee, filter)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		response.InternalServerError(w, "Failed to list exams")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Exams retrieved successfully", exams, listMeta(page, limit, total))
}

// ByPatient lists a patient's exams
// @Summary List exams of a patient
// @Tags Exams
// @Security BearerAuth
// @Produce json
// @Param id path int true "Patient ID"
// @Success 200 {object} response.Response
// @Router /exams/patient/{id} [get]
func (h *ExamHandler) ByPatient(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid patient id", nil)
		return
	}

	exams, err := h.examUsecase.FindByPatient(r.Context(), employee, id)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		response.InternalServerError(w, "Failed to list exams")
		return
	}

	response.Success(w, http.StatusOK, "Exams retrieved successfully", exams)
}

// ByPhysician lists a physician's exams, optionally for one day
// @Summary List exams of a physician
// @Tags Exams
// @Security BearerAuth
// @Produce json
// @Param physician_id query int false "Physician ID"
// @Param day query string false "Day (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /exams/physician [get]
func (h *ExamHandler) ByPhysician(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	exams, err := h.examUsecase.FindByPhysician(r.Context(), employee, queryUint(r, "physician_id"), queryDay(r, "day"))
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		response.InternalServerError(w, "Failed to list exams")
		return
	}

	response.Success(w, http.StatusOK, "Exams retrieved successfully", exams)
}

// ByNurse lists a nurse's exams, optionally for one day
// @Summary List exams of a nurse
// @Tags Exams
// @Security BearerAuth
// @Produce json
// @Param nurse_id query int false "Nurse ID"
// @Param day query string false "Day (YYYY-MM-DD)"
// @Success 200 {object} response.Response
// @Router /exams/nurse [get]
func (h *ExamHandler) ByNurse(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	exams, err := h.examUsecase.FindByNurse(r.Context(), employee, queryUint(r, "nurse_id"), queryDay(r, "day"))
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		response.InternalServerError(w, "Failed to list exams")
		return
	}

	response.Success(w, http.StatusOK, "Exams retrieved successfully", exams)
}

// Get returns a single exam
// @Summary Get exam
// @Tags Exams
// @Security BearerAuth
// @Produce json
// @Param id path int true "Exam ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /exams/{id} [get]
func (h *ExamHandler) Get(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid exam id", nil)
		return
	}

	found, err := h.examUsecase.FindByID(r.Context(), employee, id)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrExamNotFound:
			response.NotFound(w, "Exam not found")
		default:
			response.InternalServerError(w, "Failed to get exam")
		}
		return
	}

	response.Success(w, http.StatusOK, "Exam retrieved successfully", found)
}

// Update modifies an exam
// @Summary Update exam
// @Tags Exams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Exam ID"
// @Param request body dto.UpdateExamRequest true "Exam"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /exams/{id} [put]
func (h *ExamHandler) Update(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid exam id", nil)
		return
	}

	var req dto.UpdateExamRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	updated, err := h.examUsecase.Update(r.Context(), employee, id, &req)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrExamNotFound:
			response.NotFound(w, "Exam not found")
		case usecase.ErrEmployeeNotFound:
			response.NotFound(w, err.Error())
		case usecase.ErrNotANurse, usecase.ErrInvalidDatetimeFormat:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update exam")
		}
		return
	}

	response.Success(w, http.StatusOK, "Exam updated successfully", updated)
}

// EnterResult records the exam result
// @Summary Enter exam result
// @Tags Exams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Exam ID"
// @Param request body dto.ExamResultRequest true "Result"
// @Success 200 {object} response.Response
// @Failure 403 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /exams/{id}/result [post]
func (h *ExamHandler) EnterResult(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid exam id", nil)
		return
	}

	var req dto.ExamResultRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	updated, err := h.examUsecase.EnterResult(r.Context(), employee, id, &req)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrExamNotFound:
			response.NotFound(w, "Exam not found")
		case usecase.ErrExamCancelled:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to enter exam result")
		}
		return
	}

	response.Success(w, http.StatusOK, "Exam result recorded successfully", updated)
}

// UpdateStatus advances the exam lifecycle
// @Summary Update exam status
// @Tags Exams
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Exam ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /exams/{id}/status [patch]
func (h *ExamHandler) UpdateStatus(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid exam id", nil)
		return
	}

	var req struct {
		Status string `json:"status"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	updated, err := h.examUsecase.UpdateStatus(r.Context(), employee, id, req.Status)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrExamNotFound:
			response.NotFound(w, "Exam not found")
		case usecase.ErrInvalidExamStatus:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to update exam status")
		}
		return
	}

	response.Success(w, http.StatusOK, "Exam status updated successfully", updated)
}

// Delete removes an exam
// @Summary Delete exam
// @Tags Exams
// @Security BearerAuth
// @Produce json
// @Param id path int true "Exam ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /exams/{id} [delete]
func (h *ExamHandler) Delete(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid exam id", nil)
		return
	}

	if err := h.examUsecase.Delete(r.Context(), employee, id); err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrExamNotFound:
			response.NotFound(w, "Exam not found")
		default:
			response.InternalServerError(w, "Failed to delete exam")
		}
		return
	}

	response.Success(w, http.StatusOK, "Exam deleted successfully", nil)
}
