package usecase

import (
	"context"
	"errors"

	"clinic-management-api/internal/converter"
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/domain/repository"
	"clinic-management-api/pkg/jwt"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrInvalidCredentials = errors.New("invalid login or password")
	ErrTooManyAttempts    = errors.New("too many failed login attempts, try again later")
)

// LoginLimiter bounds failed login attempts per login name. Implemented on
// redis; a nil-safe no-op is acceptable in tests.
type LoginLimiter interface {
	TooManyAttempts(ctx context.Context, login string) (bool, error)
	RecordFailure(ctx context.Context, login string) error
	Reset(ctx context.Context, login string) error
}

type AuthUsecase interface {
	Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error)
	CurrentUser(caller *entity.Employee) *dto.CurrentUserResponse
}

type authUsecase struct {
	log          *logrus.Logger
	employeeRepo repository.EmployeeRepository
	jwtService   *jwt.JWTService
	limiter      LoginLimiter
}

func NewAuthUsecase(
	log *logrus.Logger,
	employeeRepo repository.EmployeeRepository,
	jwtService *jwt.JWTService,
	limiter LoginLimiter,
) AuthUsecase {
	return &authUsecase{
		log:          log,
		employeeRepo: employeeRepo,
		jwtService:   jwtService,
		limiter:      limiter,
	}
}

// Login exchanges credentials for a bearer token. Unknown login and wrong
// password both surface ErrInvalidCredentials so the response never reveals
// which part failed.
func (u *authUsecase) Login(ctx context.Context, req *dto.LoginRequest) (*dto.TokenResponse, error) {
	if u.limiter != nil {
		blocked, err := u.limiter.TooManyAttempts(ctx, req.Login)
		if err != nil {
			u.log.Warnf("Login limiter unavailable: %+v", err)
		} else if blocked {
			return nil, ErrTooManyAttempts
		}
	}

	employee, err := u.employeeRepo.FindByLogin(ctx, req.Login)
	if err != nil {
		u.log.Warnf("Failed to find employee by login: %+v", err)
		return nil, err
	}
	if employee == nil {
		u.recordFailure(ctx, req.Login)
		return nil, ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(employee.PasswordHash), []byte(req.Password)); err != nil {
		u.recordFailure(ctx, req.Login)
		return nil, ErrInvalidCredentials
	}

	if u.limiter != nil {
		if err := u.limiter.Reset(ctx, req.Login); err != nil {
			u.log.Warnf("Failed to reset login attempts: %+v", err)
		}
	}

	token, err := u.jwtService.Issue(employee)
	if err != nil {
		u.log.Warnf("Failed to sign token: %+v", err)
		return nil, err
	}

	return &dto.TokenResponse{
		AccessToken: token,
		TokenType:   "Bearer",
		ExpiresIn:   int64(u.jwtService.AccessExpiry().Seconds()),
	}, nil
}

// CurrentUser builds the identity payload for the already-resolved caller.
func (u *authUsecase) CurrentUser(caller *entity.Employee) *dto.CurrentUserResponse {
	return converter.EmployeeToCurrentUser(caller)
}

func (u *authUsecase) recordFailure(ctx context.Context, login string) {
	if u.limiter == nil {
		return
	}
	if err := u.limiter.RecordFailure(ctx, login); err != nil {
		u.log.Warnf("Failed to record login attempt: %+v", err)
	}
}
