package repository

import (
	"context"
	"time"

	"clinic-management-api/internal/domain/entity"
)

// AppointmentFilter narrows appointment listings. PhysicianID set by the
// forced server-side scope overrides any client-supplied value.
type AppointmentFilter struct {
	PatientID   uint
	PhysicianID uint
	Status      entity.AppointmentStatus
	From        *time.Time
	To          *time.Time
	Skip        int
	Limit       int
}

type AppointmentRepository interface {
	Create(ctx context.Context, appointment *entity.Appointment) error
	FindByID(ctx context.Context, id uint) (*entity.Appointment, error)
	FindAll(ctx context.Context, filter AppointmentFilter) ([]entity.Appointment, int64, error)
	// FindCollision returns a non-cancelled appointment for the physician at
	// the exact timestamp, nil when the slot is free. This is the fast-path
	// double-booking check; the partial unique index is authoritative.
	FindCollision(ctx context.Context, physicianID uint, at time.Time) (*entity.Appointment, error)
	FindTodayByPhysician(ctx context.Context, physicianID uint) ([]entity.Appointment, error)
	Update(ctx context.Context, appointment *entity.Appointment) error
	// Cancel atomically marks the appointment cancelled unless it already is.
	// Returns affected rows: 0 means it was already cancelled.
	Cancel(ctx context.Context, id uint) (int64, error)
}
