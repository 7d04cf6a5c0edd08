package handler

import (
	"errors"
	"net/http"
	"strconv"
	"time"

	"clinic-management-api/internal/delivery/http/middleware"
	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/usecase"
	"clinic-management-api/pkg/response"

	"github.com/gorilla/mux"
)

// caller extracts the authenticated employee; the auth middleware guarantees
// it is present on protected routes.
func caller(w http.ResponseWriter, r *http.Request) (*entity.Employee, bool) {
	employee, ok := middleware.GetEmployeeFromContext(r.Context())
	if !ok {
		response.Unauthorized(w, "Authentication required")
		return nil, false
	}
	return employee, true
}

func pathID(r *http.Request) (uint, error) {
	idStr := mux.Vars(r)["id"]
	id, err := strconv.ParseUint(idStr, 10, 32)
	if err != nil || id == 0 {
		return 0, errors.New("invalid id")
	}
	return uint(id), nil
}

// pagination reads page/limit query params with the defaults used across
// every listing endpoint.
func pagination(r *http.Request) (page, limit, skip int) {
	page, _ = strconv.Atoi(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	limit, _ = strconv.Atoi(r.URL.Query().Get("limit"))
	if limit < 1 || limit > 100 {
		limit = 20
	}
	return page, limit, (page - 1) * limit
}

func listMeta(page, limit int, total int64) *response.Meta {
	totalPages := int(total) / limit
	if int(total)%limit != 0 {
		totalPages++
	}
	return &response.Meta{
		Page:       page,
		Limit:      limit,
		Total:      total,
		TotalPages: totalPages,
	}
}

// queryDay parses an optional date query param as a calendar day.
func queryDay(r *http.Request, name string) *time.Time {
	value := r.URL.Query().Get(name)
	if value == "" {
		return nil
	}
	day, err := time.Parse("2006-01-02", value)
	if err != nil {
		return nil
	}
	return &day
}

func queryUint(r *http.Request, name string) uint {
	value, _ := strconv.ParseUint(r.URL.Query().Get(name), 10, 32)
	return uint(value)
}

// writeForbidden renders a policy denial, falling back to a generic message.
func writeForbidden(w http.ResponseWriter, err error) bool {
	var forbiddenErr *usecase.ForbiddenError
	if errors.As(err, &forbiddenErr) {
		response.Forbidden(w, forbiddenErr.Reason)
		return true
	}
	return false
}
