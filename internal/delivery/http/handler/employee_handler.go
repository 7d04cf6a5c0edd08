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

	"github.com/gorilla/mux"
)

type EmployeeHandler struct {
	employeeUsecase usecase.EmployeeUsecase
	validator       *validator.CustomValidator
}

func NewEmployeeHandler(employeeUsecase usecase.EmployeeUsecase, validator *validator.CustomValidator) *EmployeeHandler {
	return &EmployeeHandler{
		employeeUsecase: employeeUsecase,
		validator:       validator,
	}
}

// Create registers a new employee
// @Summary Create employee
// @Tags Employees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param request body dto.CreateEmployeeRequest true "Employee"
// @Success 201 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /employees [post]
func (h *EmployeeHandler) Create(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	var req dto.CreateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	created, err := h.employeeUsecase.Create(r.Context(), employee, &req)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrLoginAlreadyExists, usecase.ErrEmailAlreadyExists,
			usecase.ErrCRMAlreadyExists, usecase.ErrCORENAlreadyExists, usecase.ErrCRFAlreadyExists:
			response.Conflict(w, err.Error())
		case usecase.ErrLicenseRequired:
			response.Error(w, http.StatusBadRequest, err.Error(), nil)
		default:
			response.InternalServerError(w, "Failed to create employee")
		}
		return
	}

	response.Success(w, http.StatusCreated, "Employee created successfully", created)
}

// List lists employees
// @Summary List employees
// @Tags Employees
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /employees [get]
func (h *EmployeeHandler) List(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	page, limit, skip := pagination(r)
	filter := repository.EmployeeFilter{
		Role:   entity.Role(r.URL.Query().Get("role")),
		Search: r.URL.Query().Get("search"),
		Skip:   skip,
		Limit:  limit,
	}

	employees, total, err := h.employeeUsecase.FindAll(r.Context(), employee, filter)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		response.InternalServerError(w, "Failed to list employees")
		return
	}

	response.SuccessWithMeta(w, http.StatusOK, "Employees retrieved successfully", employees, listMeta(page, limit, total))
}

// Physicians lists the physician directory
// @Summary Physician directory
// @Tags Employees
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /employees/physicians [get]
func (h *EmployeeHandler) Physicians(w http.ResponseWriter, r *http.Request) {
	if _, ok := caller(w, r); !ok {
		return
	}

	physicians, err := h.employeeUsecase.FindPhysicians(r.Context())
	if err != nil {
		response.InternalServerError(w, "Failed to list physicians")
		return
	}

	response.Success(w, http.StatusOK, "Physicians retrieved successfully", physicians)
}

// SearchByLogin looks up an employee by login
// @Summary Search employee by login
// @Tags Employees
// @Security BearerAuth
// @Produce json
// @Param login path string true "Login"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/search/login/{login} [get]
func (h *EmployeeHandler) SearchByLogin(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	login := mux.Vars(r)["login"]
	if login == "" {
		response.Error(w, http.StatusBadRequest, "Login is required", nil)
		return
	}

	found, err := h.employeeUsecase.SearchByLogin(r.Context(), employee, login)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrEmployeeNotFound:
			response.NotFound(w, "Employee not found")
		default:
			response.InternalServerError(w, "Failed to search employee")
		}
		return
	}

	response.Success(w, http.StatusOK, "Employee retrieved successfully", found)
}

// Get returns a single employee
// @Summary Get employee
// @Tags Employees
// @Security BearerAuth
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [get]
func (h *EmployeeHandler) Get(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid employee id", nil)
		return
	}

	found, err := h.employeeUsecase.FindByID(r.Context(), employee, id)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrEmployeeNotFound:
			response.NotFound(w, "Employee not found")
		default:
			response.InternalServerError(w, "Failed to get employee")
		}
		return
	}

	response.Success(w, http.StatusOK, "Employee retrieved successfully", found)
}

// Update modifies an employee
// @Summary Update employee
// @Tags Employees
// @Security BearerAuth
// @Accept json
// @Produce json
// @Param id path int true "Employee ID"
// @Param request body dto.UpdateEmployeeRequest true "Employee"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Router /employees/{id} [put]
func (h *EmployeeHandler) Update(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid employee id", nil)
		return
	}

	var req dto.UpdateEmployeeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	updated, err := h.employeeUsecase.Update(r.Context(), employee, id, &req)
	if err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrEmployeeNotFound:
			response.NotFound(w, "Employee not found")
		case usecase.ErrEmailAlreadyExists, usecase.ErrCRMAlreadyExists,
			usecase.ErrCORENAlreadyExists, usecase.ErrCRFAlreadyExists:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to update employee")
		}
		return
	}

	response.Success(w, http.StatusOK, "Employee updated successfully", updated)
}

// Delete removes an employee
// @Summary Delete employee
// @Tags Employees
// @Security BearerAuth
// @Produce json
// @Param id path int true "Employee ID"
// @Success 200 {object} response.Response
// @Failure 404 {object} response.Response
// @Failure 409 {object} response.Response
// @Router /employees/{id} [delete]
func (h *EmployeeHandler) Delete(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}

	id, err := pathID(r)
	if err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid employee id", nil)
		return
	}

	if err := h.employeeUsecase.Delete(r.Context(), employee, id); err != nil {
		if writeForbidden(w, err) {
			return
		}
		switch err {
		case usecase.ErrEmployeeNotFound:
			response.NotFound(w, "Employee not found")
		case usecase.ErrEmployeeReferenced:
			response.Conflict(w, err.Error())
		default:
			response.InternalServerError(w, "Failed to delete employee")
		}
		return
	}

	response.Success(w, http.StatusOK, "Employee deleted successfully", nil)
}
