package usecase

import (
	"context"
	"errors"

	"clinic-management-api/internal/authz"
	"clinic-management-api/internal/converter"
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrEmployeeNotFound   = errors.New("employee not found")
	ErrLoginAlreadyExists = errors.New("login already exists")
	ErrEmailAlreadyExists = errors.New("email already exists")
	ErrCRMAlreadyExists   = errors.New("CRM already registered")
	ErrCORENAlreadyExists = errors.New("COREN already registered")
	ErrCRFAlreadyExists   = errors.New("CRF already registered")
	ErrLicenseRequired    = errors.New("professional license is required for this role")
	ErrEmployeeReferenced = errors.New("employee is referenced by appointments, exams or encounters")
)

type EmployeeUsecase interface {
	Create(ctx context.Context, caller *entity.Employee, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error)
	FindAll(ctx context.Context, caller *entity.Employee, filter repository.EmployeeFilter) ([]dto.EmployeeResponse, int64, error)
	FindByID(ctx context.Context, caller *entity.Employee, id uint) (*dto.EmployeeResponse, error)
	SearchByLogin(ctx context.Context, caller *entity.Employee, login string) (*dto.EmployeeResponse, error)
	FindPhysicians(ctx context.Context) ([]dto.PhysicianResponse, error)
	Update(ctx context.Context, caller *entity.Employee, id uint, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error)
	Delete(ctx context.Context, caller *entity.Employee, id uint) error
}

type employeeUsecase struct {
	log          *logrus.Logger
	employeeRepo repository.EmployeeRepository
}

func NewEmployeeUsecase(log *logrus.Logger, employeeRepo repository.EmployeeRepository) EmployeeUsecase {
	return &employeeUsecase{
		log:          log,
		employeeRepo: employeeRepo,
	}
}

// licenseColumn maps a role to its license column name, empty when the role
// carries no license.
func licenseColumn(role entity.Role) string {
	switch role {
	case entity.RolePhysician:
		return "crm"
	case entity.RoleNurse:
		return "coren"
	case entity.RolePharmacist:
		return "crf"
	}
	return ""
}

func licenseExistsError(role entity.Role) error {
	switch role {
	case entity.RolePhysician:
		return ErrCRMAlreadyExists
	case entity.RoleNurse:
		return ErrCORENAlreadyExists
	case entity.RolePharmacist:
		return ErrCRFAlreadyExists
	}
	return nil
}

func (u *employeeUsecase) Create(ctx context.Context, caller *entity.Employee, req *dto.CreateEmployeeRequest) (*dto.EmployeeResponse, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceEmployees,
		Operation: authz.OpCreate,
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	role := entity.Role(req.Role)

	employee := &entity.Employee{
		Name:  req.Name,
		Login: req.Login,
		Email: req.Email,
		Phone: req.Phone,
		Role:  role,
	}

	// Only the license matching the role is stored; stray ones are dropped.
	switch role {
	case entity.RolePhysician:
		if req.CRM == "" {
			return nil, ErrLicenseRequired
		}
		employee.CRM = req.CRM
		employee.Specialty = req.Specialty
	case entity.RoleNurse:
		if req.COREN == "" {
			return nil, ErrLicenseRequired
		}
		employee.COREN = req.COREN
		employee.Sector = req.Sector
	case entity.RolePharmacist:
		if req.CRF == "" {
			return nil, ErrLicenseRequired
		}
		employee.CRF = req.CRF
	case entity.RoleReceptionist:
		employee.Sector = req.Sector
	}

	// Fast-path uniqueness checks; the unique indexes remain authoritative.
	if existing, err := u.employeeRepo.FindByLogin(ctx, req.Login); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrLoginAlreadyExists
	}
	if existing, err := u.employeeRepo.FindByEmail(ctx, req.Email); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrEmailAlreadyExists
	}
	if column := licenseColumn(role); column != "" {
		if existing, err := u.employeeRepo.FindByLicense(ctx, column, employee.LicenseNumber()); err != nil {
			return nil, err
		} else if existing != nil {
			return nil, licenseExistsError(role)
		}
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		u.log.Warnf("Failed to hash password: %+v", err)
		return nil, err
	}
	employee.PasswordHash = string(hashedPassword)

	if err := u.employeeRepo.Create(ctx, employee); err != nil {
		if isDuplicateKeyError(err, "login") {
			return nil, ErrLoginAlreadyExists
		}
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		if isDuplicateKeyError(err, "crm") {
			return nil, ErrCRMAlreadyExists
		}
		if isDuplicateKeyError(err, "coren") {
			return nil, ErrCORENAlreadyExists
		}
		if isDuplicateKeyError(err, "crf") {
			return nil, ErrCRFAlreadyExists
		}
		u.log.Warnf("Failed to create employee: %+v", err)
		return nil, err
	}

	return converter.EmployeeToResponse(employee), nil
}

func (u *employeeUsecase) FindAll(ctx context.Context, caller *entity.Employee, filter repository.EmployeeFilter) ([]dto.EmployeeResponse, int64, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceEmployees,
		Operation: authz.OpList,
	})
	if !decision.Allowed {
		return nil, 0, forbidden(decision)
	}

	employees, total, err := u.employeeRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to list employees: %+v", err)
		return nil, 0, err
	}

	return converter.EmployeesToResponses(employees), total, nil
}

func (u *employeeUsecase) FindByID(ctx context.Context, caller *entity.Employee, id uint) (*dto.EmployeeResponse, error) {
	employee, err := u.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}

	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceEmployees,
		Operation: authz.OpRead,
		Target:    authz.Target{EmployeeID: employee.ID},
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	return converter.EmployeeToResponse(employee), nil
}

// SearchByLogin is the front-desk lookup; it shares the listing permission
// rather than the self-read rule.
func (u *employeeUsecase) SearchByLogin(ctx context.Context, caller *entity.Employee, login string) (*dto.EmployeeResponse, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceEmployees,
		Operation: authz.OpList,
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	employee, err := u.employeeRepo.FindByLogin(ctx, login)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}
	return converter.EmployeeToResponse(employee), nil
}

// FindPhysicians is the public directory used when scheduling; any
// authenticated employee may read it.
func (u *employeeUsecase) FindPhysicians(ctx context.Context) ([]dto.PhysicianResponse, error) {
	physicians, err := u.employeeRepo.FindPhysicians(ctx)
	if err != nil {
		u.log.Warnf("Failed to list physicians: %+v", err)
		return nil, err
	}
	return converter.EmployeesToPhysicians(physicians), nil
}

func (u *employeeUsecase) Update(ctx context.Context, caller *entity.Employee, id uint, req *dto.UpdateEmployeeRequest) (*dto.EmployeeResponse, error) {
	employee, err := u.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if employee == nil {
		return nil, ErrEmployeeNotFound
	}

	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceEmployees,
		Operation: authz.OpUpdate,
		Target:    authz.Target{EmployeeID: employee.ID},
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	if req.Name != nil {
		employee.Name = *req.Name
	}
	if req.Email != nil && *req.Email != employee.Email {
		if existing, err := u.employeeRepo.FindByEmail(ctx, *req.Email); err != nil {
			return nil, err
		} else if existing != nil && existing.ID != employee.ID {
			return nil, ErrEmailAlreadyExists
		}
		employee.Email = *req.Email
	}
	if req.Password != nil {
		hashedPassword, err := bcrypt.GenerateFromPassword([]byte(*req.Password), bcrypt.DefaultCost)
		if err != nil {
			u.log.Warnf("Failed to hash password: %+v", err)
			return nil, err
		}
		employee.PasswordHash = string(hashedPassword)
	}
	if req.Phone != nil {
		employee.Phone = *req.Phone
	}

	// License and sector changes are an administrative act; self-updates by
	// other roles silently ignore them.
	if caller.IsAdministrator() {
		if req.CRM != nil {
			employee.CRM = *req.CRM
		}
		if req.Specialty != nil {
			employee.Specialty = *req.Specialty
		}
		if req.COREN != nil {
			employee.COREN = *req.COREN
		}
		if req.CRF != nil {
			employee.CRF = *req.CRF
		}
		if req.Sector != nil {
			employee.Sector = *req.Sector
		}
	}

	if err := u.employeeRepo.Update(ctx, employee); err != nil {
		if isDuplicateKeyError(err, "email") {
			return nil, ErrEmailAlreadyExists
		}
		if isDuplicateKeyError(err, "crm") {
			return nil, ErrCRMAlreadyExists
		}
		if isDuplicateKeyError(err, "coren") {
			return nil, ErrCORENAlreadyExists
		}
		if isDuplicateKeyError(err, "crf") {
			return nil, ErrCRFAlreadyExists
		}
		u.log.Warnf("Failed to update employee: %+v", err)
		return nil, err
	}

	return converter.EmployeeToResponse(employee), nil
}

// Delete removes an employee unless appointments, exams or encounters still
// reference it. The RESTRICT foreign keys make that call, not a pre-check.
func (u *employeeUsecase) Delete(ctx context.Context, caller *entity.Employee, id uint) error {
	employee, err := u.employeeRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if employee == nil {
		return ErrEmployeeNotFound
	}

	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceEmployees,
		Operation: authz.OpDelete,
		Target:    authz.Target{EmployeeID: employee.ID},
	})
	if !decision.Allowed {
		return forbidden(decision)
	}

	if err := u.employeeRepo.Delete(ctx, id); err != nil {
		if isAnyForeignKeyError(err) {
			return ErrEmployeeReferenced
		}
		u.log.Warnf("Failed to delete employee: %+v", err)
		return err
	}
	return nil
}
