package repository

import (
	"context"
	"errors"
	"time"

	"clinic-management-api/internal/domain/entity"
	domainRepo "clinic-management-api/internal/domain/repository"

	"gorm.io/gorm"
)

type examRepository struct {
	db *gorm.DB
}

func NewExamRepository(db *gorm.DB) domainRepo.ExamRepository {
	return &examRepository{db: db}
}

func (r *examRepository) Create(ctx context.Context, exam *entity.Exam) error {
	return r.db.WithContext(ctx).Create(exam).Error
}

func (r *examRepository) FindByID(ctx context.Context, id uint) (*entity.Exam, error) {
	var exam entity.Exam
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Physician").
		Preload("Nurse").
		Where("id = ?", id).
		First(&exam).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &exam, nil
}

func (r *examRepository) FindAll(ctx context.Context, filter domainRepo.ExamFilter) ([]entity.Exam, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Exam{})

	if filter.PatientID != 0 {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.PhysicianID != 0 {
		query = query.Where("physician_id = ?", filter.PhysicianID)
	}
	if filter.NurseID != 0 {
		query = query.Where("nurse_id = ?", filter.NurseID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.Kind != "" {
		query = query.Where("kind = ?", filter.Kind)
	}
	if filter.From != nil {
		query = query.Where("scheduled_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("scheduled_at < ?", *filter.To)
	}
	if filter.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filter.Search+"%")
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var exams []entity.Exam
	err := query.
		Preload("Patient").
		Preload("Physician").
		Preload("Nurse").
		Order("scheduled_at ASC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&exams).Error
	if err != nil {
		return nil, 0, err
	}
	return exams, total, nil
}

func (r *examRepository) FindByPatient(ctx context.Context, patientID uint) ([]entity.Exam, error) {
	var exams []entity.Exam
	err := r.db.WithContext(ctx).
		Preload("Physician").
		Preload("Nurse").
		Where("patient_id = ?", patientID).
		Order("scheduled_at DESC").
		Find(&exams).Error
	if err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepository) FindByPhysician(ctx context.Context, physicianID uint, day *time.Time) ([]entity.Exam, error) {
	query := r.db.WithContext(ctx).
		Preload("Patient").
		Where("physician_id = ?", physicianID)
	query = withinDay(query, day)

	var exams []entity.Exam
	if err := query.Order("scheduled_at ASC").Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepository) FindByNurse(ctx context.Context, nurseID uint, day *time.Time) ([]entity.Exam, error) {
	query := r.db.WithContext(ctx).
		Preload("Patient").
		Where("nurse_id = ?", nurseID)
	query = withinDay(query, day)

	var exams []entity.Exam
	if err := query.Order("scheduled_at ASC").Find(&exams).Error; err != nil {
		return nil, err
	}
	return exams, nil
}

func (r *examRepository) Update(ctx context.Context, exam *entity.Exam) error {
	return r.db.WithContext(ctx).Save(exam).Error
}

func (r *examRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Delete(&entity.Exam{}, id).Error
}

// withinDay restricts scheduled_at to the calendar day, when one is given.
func withinDay(query *gorm.DB, day *time.Time) *gorm.DB {
	if day == nil {
		return query
	}
	dayStart := day.Truncate(24 * time.Hour)
	return query.Where("scheduled_at >= ? AND scheduled_at < ?", dayStart, dayStart.Add(24*time.Hour))
}
