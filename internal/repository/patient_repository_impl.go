package repository

import (
	"context"
	"errors"

	"clinic-management-api/internal/domain/entity"
	domainRepo "clinic-management-api/internal/domain/repository"

	"gorm.io/gorm"
)

type patientRepository struct {
	db *gorm.DB
}

func NewPatientRepository(db *gorm.DB) domainRepo.PatientRepository {
	return &patientRepository{db: db}
}

func (r *patientRepository) Create(ctx context.Context, patient *entity.Patient) error {
	return r.db.WithContext(ctx).Create(patient).Error
}

func (r *patientRepository) FindByID(ctx context.Context, id uint) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.db.WithContext(ctx).Where("id = ?", id).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByCPF(ctx context.Context, cpf string) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.db.WithContext(ctx).Where("cpf = ?", cpf).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindByRG(ctx context.Context, rg string) (*entity.Patient, error) {
	var patient entity.Patient
	err := r.db.WithContext(ctx).Where("rg = ?", rg).First(&patient).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &patient, nil
}

func (r *patientRepository) FindAll(ctx context.Context, filter domainRepo.PatientFilter) ([]entity.Patient, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Patient{})

	if filter.Search != "" {
		pattern := "%" + filter.Search + "%"
		query = query.Where("name ILIKE ? OR cpf LIKE ?", pattern, pattern)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var patients []entity.Patient
	err := query.Order("name ASC").Offset(filter.Skip).Limit(filter.Limit).Find(&patients).Error
	if err != nil {
		return nil, 0, err
	}
	return patients, total, nil
}

func (r *patientRepository) SearchByCPF(ctx context.Context, cpf string) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := r.db.WithContext(ctx).Where("cpf LIKE ?", "%"+cpf+"%").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) SearchByName(ctx context.Context, name string) ([]entity.Patient, error) {
	var patients []entity.Patient
	err := r.db.WithContext(ctx).Where("name ILIKE ?", "%"+name+"%").Order("name ASC").Find(&patients).Error
	if err != nil {
		return nil, err
	}
	return patients, nil
}

func (r *patientRepository) Update(ctx context.Context, patient *entity.Patient) error {
	return r.db.WithContext(ctx).Save(patient).Error
}

func (r *patientRepository) Delete(ctx context.Context, id uint) error {
	// Dependent exams and encounters are removed by ON DELETE CASCADE.
	return r.db.WithContext(ctx).Delete(&entity.Patient{}, id).Error
}
