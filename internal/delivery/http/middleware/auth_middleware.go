package middleware

import (
	"context"
	"net/http"
	"strings"

	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/domain/repository"
	"clinic-management-api/pkg/jwt"
	"clinic-management-api/pkg/response"
)

type contextKey string

const employeeKey contextKey = "employee"

type AuthMiddleware struct {
	jwtService   *jwt.JWTService
	employeeRepo repository.EmployeeRepository
}

func NewAuthMiddleware(jwtService *jwt.JWTService, employeeRepo repository.EmployeeRepository) *AuthMiddleware {
	return &AuthMiddleware{
		jwtService:   jwtService,
		employeeRepo: employeeRepo,
	}
}

// Authenticate verifies the bearer token and resolves the caller from the
// database on every request, so a deleted employee is rejected even while
// holding a token that has not yet expired.
func (m *AuthMiddleware) Authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		employee, ok := m.resolve(w, r)
		if !ok {
			return
		}

		ctx := context.WithValue(r.Context(), employeeKey, employee)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// OptionalAuthenticate resolves the caller when a valid bearer token is
// present and passes the request through anonymously otherwise.
func (m *AuthMiddleware) OptionalAuthenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenString, ok := bearerToken(r)
		if !ok {
			next.ServeHTTP(w, r)
			return
		}

		claims, err := m.jwtService.Verify(tokenString)
		if err != nil {
			next.ServeHTTP(w, r)
			return
		}

		employee, err := m.employeeRepo.FindByLogin(r.Context(), claims.Subject)
		if err != nil || employee == nil {
			next.ServeHTTP(w, r)
			return
		}

		ctx := context.WithValue(r.Context(), employeeKey, employee)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func (m *AuthMiddleware) resolve(w http.ResponseWriter, r *http.Request) (*entity.Employee, bool) {
	tokenString, ok := bearerToken(r)
	if !ok {
		response.Unauthorized(w, "Authorization header is required")
		return nil, false
	}

	claims, err := m.jwtService.Verify(tokenString)
	if err != nil {
		response.Unauthorized(w, "Invalid or expired token")
		return nil, false
	}

	employee, err := m.employeeRepo.FindByLogin(r.Context(), claims.Subject)
	if err != nil {
		response.InternalServerError(w, "Failed to resolve caller")
		return nil, false
	}
	if employee == nil {
		response.Unauthorized(w, "Invalid or expired token")
		return nil, false
	}

	return employee, true
}

func bearerToken(r *http.Request) (string, bool) {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return "", false
	}
	parts := strings.Split(authHeader, " ")
	if len(parts) != 2 || parts[0] != "Bearer" || parts[1] == "" {
		return "", false
	}
	return parts[1], true
}

// GetEmployeeFromContext extracts the resolved caller from the request context
func GetEmployeeFromContext(ctx context.Context) (*entity.Employee, bool) {
	employee, ok := ctx.Value(employeeKey).(*entity.Employee)
	return employee, ok
}
