package repository

import (
	"context"
	"errors"

	"clinic-management-api/internal/domain/entity"
	domainRepo "clinic-management-api/internal/domain/repository"

	"gorm.io/gorm"
)

type employeeRepository struct {
	db *gorm.DB
}

func NewEmployeeRepository(db *gorm.DB) domainRepo.EmployeeRepository {
	return &employeeRepository{db: db}
}

func (r *employeeRepository) Create(ctx context.Context, employee *entity.Employee) error {
	return r.db.WithContext(ctx).Create(employee).Error
}

func (r *employeeRepository) FindByID(ctx context.Context, id uint) (*entity.Employee, error) {
	var employee entity.Employee
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) FindByLogin(ctx context.Context, login string) (*entity.Employee, error) {
	var employee entity.Employee
	err := r.db.WithContext(ctx).Where("login = ?", login).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) FindByEmail(ctx context.Context, email string) (*entity.Employee, error) {
	var employee entity.Employee
	err := r.db.WithContext(ctx).Where("email = ?", email).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) FindByLicense(ctx context.Context, column, value string) (*entity.Employee, error) {
	switch column {
	case "crm", "coren", "crf":
	default:
		return nil, errors.New("unknown license column: " + column)
	}

	var employee entity.Employee
	err := r.db.WithContext(ctx).Where(column+" = ?", value).First(&employee).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &employee, nil
}

func (r *employeeRepository) FindAll(ctx context.Context, filter domainRepo.EmployeeFilter) ([]entity.Employee, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Employee{})

	if filter.Role != "" {
		query = query.Where("role = ?", filter.Role)
	}
	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR login ILIKE ? OR email ILIKE ?", pattern, pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var employees []entity.Employee
	err := query.Order("name ASC").Offset(filter.Skip).Limit(filter.Limit).Find(&employees).Error
	if err != nil {
		return nil, 0, err
	}
	return employees, total, nil
}

func (r *employeeRepository) FindPhysicians(ctx context.Context) ([]entity.Employee, error) {
	var physicians []entity.Employee
	err := r.db.WithContext(ctx).
		Where("role = ?", entity.RolePhysician).
		Order("name ASC").
		Find(&physicians).Error
	if err != nil {
		return nil, err
	}
	return physicians, nil
}

func (r *employeeRepository) Update(ctx context.Context, employee *entity.Employee) error {
	return r.db.WithContext(ctx).Save(employee).Error
}

func (r *employeeRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Employee{}, id).Error
}
