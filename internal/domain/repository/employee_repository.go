package repository

import (
	"context"

	"clinic-management-api/internal/domain/entity"
)

// EmployeeFilter narrows employee listings.
type EmployeeFilter struct {
	Role   entity.Role
	Search string
	Skip   int
	Limit  int
}

type EmployeeRepository interface {
	Create(ctx context.Context, employee *entity.Employee) error
	FindByID(ctx context.Context, id uint) (*entity.Employee, error)
	FindByLogin(ctx context.Context, login string) (*entity.Employee, error)
	FindByEmail(ctx context.Context, email string) (*entity.Employee, error)
	// FindByLicense looks up an employee by one of the professional license
	// columns: "crm", "coren" or "crf".
	FindByLicense(ctx context.Context, column, value string) (*entity.Employee, error)
	FindAll(ctx context.Context, filter EmployeeFilter) ([]entity.Employee, int64, error)
	FindPhysicians(ctx context.Context) ([]entity.Employee, error)
	Update(ctx context.Context, employee *entity.Employee) error
	Delete(ctx context.Context, id uint) error
}
