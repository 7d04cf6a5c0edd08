package jwt

import (
	"errors"
	"time"

	"clinic-management-api/config"
	"clinic-management-api/internal/domain/entity"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// ErrInvalidToken is the single error surfaced for any verification failure:
// bad signature, malformed payload or expiry. Callers never learn which.
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims embeds the session identity: subject is the employee login, plus the
// numeric id and role needed to resolve and authorize the caller.
type Claims struct {
	EmployeeID uint        `json:"employee_id"`
	Role       entity.Role `json:"role"`
	jwt.RegisteredClaims
}

// JWTService issues and verifies stateless bearer tokens. The signing secret
// and TTL are fixed at construction; rotating the secret invalidates every
// outstanding token.
type JWTService struct {
	config config.JWTConfig
}

func NewJWTService(cfg config.JWTConfig) *JWTService {
	return &JWTService{config: cfg}
}

// Issue signs a token for the employee with expiry now + configured TTL.
func (s *JWTService) Issue(employee *entity.Employee) (string, error) {
	now := time.Now()
	claims := Claims{
		EmployeeID: employee.ID,
		Role:       employee.Role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   employee.Login,
			ID:        uuid.New().String(),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.config.AccessExpiry)),
			IssuedAt:  jwt.NewNumericDate(now),
			NotBefore: jwt.NewNumericDate(now),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.config.Secret))
}

// Verify parses and validates a token, returning its claims. All failure
// modes collapse into ErrInvalidToken.
func (s *JWTService) Verify(tokenString string) (*Claims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &Claims{}, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, ErrInvalidToken
		}
		return []byte(s.config.Secret), nil
	})
	if err != nil {
		return nil, ErrInvalidToken
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid || claims.Subject == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

// AccessExpiry exposes the configured token lifetime.
func (s *JWTService) AccessExpiry() time.Duration {
	return s.config.AccessExpiry
}
