package handler

import (
	"encoding/json"
	"net/http"

	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/usecase"
	"clinic-management-api/pkg/response"
	"clinic-management-api/pkg/validator"
)

type AuthHandler struct {
	authUsecase usecase.AuthUsecase
	validator   *validator.CustomValidator
}

func NewAuthHandler(authUsecase usecase.AuthUsecase, validator *validator.CustomValidator) *AuthHandler {
	return &AuthHandler{
		authUsecase: authUsecase,
		validator:   validator,
	}
}

// Login handles employee login
// @Summary Login employee
// @Description Exchange login and password for a bearer token
// @Tags Auth
// @Accept json
// @Produce json
// @Param request body dto.LoginRequest true "Login Request"
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Failure 429 {object} response.Response
// @Router /auth/login [post]
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.Error(w, http.StatusBadRequest, "Invalid request body", nil)
		return
	}

	if err := h.validator.Validate(&req); err != nil {
		response.ValidationError(w, h.validator.FormatValidationErrors(err))
		return
	}

	token, err := h.authUsecase.Login(r.Context(), &req)
	if err != nil {
		switch err {
		case usecase.ErrInvalidCredentials:
			response.Unauthorized(w, "Invalid login or password")
		case usecase.ErrTooManyAttempts:
			response.TooManyRequests(w, "Too many failed login attempts, try again later")
		default:
			response.InternalServerError(w, "Failed to login")
		}
		return
	}

	response.Success(w, http.StatusOK, "Login successful", token)
}

// Logout handles employee logout
// @Summary Logout employee
// @Description Tokens are stateless; logout is client-side discard
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Router /auth/logout [post]
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	// Tokens are not revocable; the client discards its copy and the token
	// dies at its expiry.
	response.Success(w, http.StatusOK, "Logged out", nil)
}

// Me returns the authenticated employee
// @Summary Current employee identity
// @Tags Auth
// @Security BearerAuth
// @Produce json
// @Success 200 {object} response.Response
// @Failure 401 {object} response.Response
// @Router /auth/me [get]
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	employee, ok := caller(w, r)
	if !ok {
		return
	}
	response.Success(w, http.StatusOK, "Current user", h.authUsecase.CurrentUser(employee))
}
