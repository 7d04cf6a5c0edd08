package repository

import (
	"context"
	"errors"
	"time"

	"clinic-management-api/internal/domain/entity"
	domainRepo "clinic-management-api/internal/domain/repository"

	"gorm.io/gorm"
)

type appointmentRepository struct {
	db *gorm.DB
}

func NewAppointmentRepository(db *gorm.DB) domainRepo.AppointmentRepository {
	return &appointmentRepository{db: db}
}

func (r *appointmentRepository) Create(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Create(appointment).Error
}

func (r *appointmentRepository) FindByID(ctx context.Context, id uint) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Preload("Physician").
		Preload("Receptionist").
		Where("id = ?", id).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindAll(ctx context.Context, filter domainRepo.AppointmentFilter) ([]entity.Appointment, int64, error) {
	query := r.db.WithContext(ctx).Model(&entity.Appointment{})

	if filter.PatientID != 0 {
		query = query.Where("patient_id = ?", filter.PatientID)
	}
	if filter.PhysicianID != 0 {
		query = query.Where("physician_id = ?", filter.PhysicianID)
	}
	if filter.Status != "" {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.From != nil {
		query = query.Where("scheduled_at >= ?", *filter.From)
	}
	if filter.To != nil {
		query = query.Where("scheduled_at < ?", *filter.To)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var appointments []entity.Appointment
	err := query.
		Preload("Patient").
		Preload("Physician").
		Preload("Receptionist").
		Order("scheduled_at ASC").
		Offset(filter.Skip).
		Limit(filter.Limit).
		Find(&appointments).Error
	if err != nil {
		return nil, 0, err
	}
	return appointments, total, nil
}

func (r *appointmentRepository) FindCollision(ctx context.Context, physicianID uint, at time.Time) (*entity.Appointment, error) {
	var appointment entity.Appointment
	err := r.db.WithContext(ctx).
		Where("physician_id = ? AND scheduled_at = ? AND status != ?",
			physicianID, at, entity.AppointmentStatusCancelled).
		First(&appointment).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &appointment, nil
}

func (r *appointmentRepository) FindTodayByPhysician(ctx context.Context, physicianID uint) ([]entity.Appointment, error) {
	dayStart := time.Now().Truncate(24 * time.Hour)
	dayEnd := dayStart.Add(24 * time.Hour)

	var appointments []entity.Appointment
	err := r.db.WithContext(ctx).
		Preload("Patient").
		Where("physician_id = ? AND scheduled_at >= ? AND scheduled_at < ? AND status != ?",
			physicianID, dayStart, dayEnd, entity.AppointmentStatusCancelled).
		Order("scheduled_at ASC").
		Find(&appointments).Error
	if err != nil {
		return nil, err
	}
	return appointments, nil
}

func (r *appointmentRepository) Update(ctx context.Context, appointment *entity.Appointment) error {
	return r.db.WithContext(ctx).Save(appointment).Error
}

// Cancel atomically cancels the appointment ONLY if it is not already
// cancelled. Returns affected rows: 1 = success, 0 = already cancelled.
func (r *appointmentRepository) Cancel(ctx context.Context, id uint) (int64, error) {
	result := r.db.WithContext(ctx).Model(&entity.Appointment{}).
		Where("id = ? AND status != ?", id, entity.AppointmentStatusCancelled).
		Update("status", entity.AppointmentStatusCancelled)
	return result.RowsAffected, result.Error
}
