package repository

import (
	"context"
	"errors"
	"time"

	"clinic-management-api/internal/domain/entity"
	domainRepo "clinic-management-api/internal/domain/repository"

	"gorm.io/gorm"
)

type encounterRepository struct {
	db *gorm.DB
}

func NewEncounterRepository(db *gorm.DB) domainRepo.EncounterRepository {
	return &encounterRepository{db: db}
}

func (r *encounterRepository) Create(ctx context.Context, encounter *entity.NursingEncounter) error {
	return r.db.WithContext(ctx).Create(encounter).Error
}

func (r *encounterRepository) FindByID(ctx context.Context, id uint) (*entity.NursingEncounter, error) {
	var encounter entity.NursingEncounter
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Nurse").
		Preload("Supervisor").
		Where("id = ?", id).
		First(&encounter).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &encounter, nil
}

func (r *encounterRepository) FindAll(ctx context.Context, filter domainRepo.EncounterFilter) ([]entity.NursingEncounter, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.NursingEncounter{})

	if filter.PatientID != 0 {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.NurseID != 0 {
		query = query.Where("nurse_id = ?", filter.NurseID)
	}
	if filter.SupervisorID != 0 {
		query = query.Where("supervisor_id = ?", filter.SupervisorID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.Sector != "" {
		query = query.Where("sector = ?", filter.Sector)
	}
	if filter.From != nil {
		query = query.Where("started_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("started_at < ?", *filter.To)
	}
	if filter.Search != "" {
		query = query.Where("reason ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var encounters []entity.NursingEncounter
	err := query.
		Preload("Patient").
		Preload("Nurse").
		Preload("Supervisor").
		Order("started_at DESC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&encounters).Error
	if err != nil {
		return nil, 0, err
	}
	return encounters, total, nil
}

func (r *encounterRepository) FindByPatient(ctx context.Context, patientID uint) ([]entity.NursingEncounter, error) {
	var encounters []entity.NursingEncounter
	err := r.db.WithContext(ctx).
		Preload("Nurse").
		Preload("Supervisor").
		Where("patient_id = ?", patientID).
		Order("started_at DESC").
		Find(&encounters).Error
	if err != nil {
		return nil, err
	}
	return encounters, nil
}

func (r *encounterRepository) FindByNurse(ctx context.Context, nurseID uint, day *time.Time) ([]entity.NursingEncounter, error) {
	query := r.db.WithContext(ctx).
		Preload("Patient").
		Where("nurse_id = ?", nurseID)
	if day != nil {
		dayStart := day.Truncate(24 * time.Hour)
		query = query.Where("started_at >= ? AND started_at < ?", dayStart, dayStart.Add(24*time.Hour))
	}

	var encounters []entity.NursingEncounter
	if err := query.Order("started_at DESC").Find(&encounters).Error; err != nil {
		return nil, err
	}
	return encounters, nil
}

func (r *encounterRepository) FindInProgress(ctx context.Context, nurseID uint) ([]entity.NursingEncounter, error) {
	query := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Nurse").
		Where("status = ?", entity.EncounterStatusInProgress)
	if nurseID != 0 {
		query = query.Where("nurse_id = ?", nurseID)
	}

	var encounters []entity.NursingEncounter
	if err := query.Order("started_at ASC").Find(&encounters).Error; err != nil {
		return nil, err
	}
	return encounters, nil
}

func (r *encounterRepository) Update(ctx context.Context, encounter *entity.NursingEncounter) error {
	return r.db.WithContext(ctx).Save(encounter).Error
}

func (r *encounterRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.NursingEncounter{}, id).Error
}
