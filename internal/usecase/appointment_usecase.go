package usecase

import (
	"context"
	"errors"
	"time"

	"clinic-management-api/internal/authz"
	"clinic-management-api/internal/converter"
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

var (
	ErrAppointmentNotFound         = errors.New("appointment not found")
	ErrAppointmentAlreadyCancelled = errors.New("appointment is already cancelled")
	ErrScheduleConflict            = errors.New("physician already has an appointment at this time")
	ErrNotAPhysician               = errors.New("referenced employee is not a physician")
	ErrInvalidDatetimeFormat       = errors.New("invalid datetime format, use RFC 3339")
)

type AppointmentUsecase interface {
	Create(ctx context.Context, caller *entity.Employee, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error)
	FindAll(ctx context.Context, caller *entity.Employee, filter repository.AppointmentFilter) ([]dto.AppointmentResponse, int64, error)
	FindByID(ctx context.Context, caller *entity.Employee, id uint) (*dto.AppointmentResponse, error)
	FindToday(ctx context.Context, caller *entity.Employee, physicianID uint) ([]dto.AppointmentResponse, error)
	Update(ctx context.Context, caller *entity.Employee, id uint, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error)
	Cancel(ctx context.Context, caller *entity.Employee, id uint) error
}

type appointmentUsecase struct {
	log             *logrus.Logger
	appointmentRepo repository.AppointmentRepository
	patientRepo     repository.PatientRepository
	employeeRepo    repository.EmployeeRepository
}

func NewAppointmentUsecase(
	log *logrus.Logger,
	appointmentRepo repository.AppointmentRepository,
	patientRepo repository.PatientRepository,
	employeeRepo repository.EmployeeRepository,
) AppointmentUsecase {
	return &appointmentUsecase{
		log:             log,
		appointmentRepo: appointmentRepo,
		patientRepo:     patientRepo,
		employeeRepo:    employeeRepo,
	}
}

func (u *appointmentUsecase) Create(ctx context.Context, caller *entity.Employee, req *dto.CreateAppointmentRequest) (*dto.AppointmentResponse, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceAppointments,
		Operation: authz.OpCreate,
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	scheduledAt, err := time.Parse(time.RFC3339, req.ScheduledAt)
	if err != nil {
		return nil, ErrInvalidDatetimeFormat
	}

	patient, err := u.patientRepo.FindByID(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	physician, err := u.employeeRepo.FindByID(ctx, req.PhysicianID)
	if err != nil {
		return nil, err
	}
	if physician == nil {
		return nil, ErrEmployeeNotFound
	}
	if physician.Role != entity.RolePhysician {
		return nil, ErrNotAPhysician
	}

	// Fast-path double-booking check; the partial unique index on
	// (physician_id, scheduled_at) is authoritative under races.
	if existing, err := u.appointmentRepo.FindCollision(ctx, req.PhysicianID, scheduledAt); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrScheduleConflict
	}

	appointment := &entity.Appointment{
		PatientID:   req.PatientID,
		PhysicianID: req.PhysicianID,
		ScheduledAt: scheduledAt,
		Kind:        entity.AppointmentKindConsultation,
		Status:      entity.AppointmentStatusScheduled,
		Reason:      req.Reason,
		Notes:       req.Notes,
	}
	if req.Kind != "" {
		appointment.Kind = entity.AppointmentKind(req.Kind)
	}
	if caller.Role == entity.RoleReceptionist {
		receptionistID := caller.ID
		appointment.ReceptionistID = &receptionistID
	}

	if err := u.appointmentRepo.Create(ctx, appointment); err != nil {
		if isDuplicateKeyError(err, "slot") {
			return nil, ErrScheduleConflict
		}
		if isAnyForeignKeyError(err) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to create appointment: %+v", err)
		return nil, err
	}

	appointment.Patient = patient
	appointment.Physician = physician
	return converter.AppointmentToResponse(appointment), nil
}

func (u *appointmentUsecase) FindAll(ctx context.Context, caller *entity.Employee, filter repository.AppointmentFilter) ([]dto.AppointmentResponse, int64, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceAppointments,
		Operation: authz.OpList,
	})
	if !decision.Allowed {
		return nil, 0, forbidden(decision)
	}

	// Physicians only ever see their own schedule, whatever filter the
	// client sent.
	if scope := authz.ListScope(caller, authz.ResourceAppointments); scope.PhysicianID != 0 {
		filter.PhysicianID = scope.PhysicianID
	}

	appointments, total, err := u.appointmentRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to list appointments: %+v", err)
		return nil, 0, err
	}

	return converter.AppointmentsToResponses(appointments), total, nil
}

func (u *appointmentUsecase) FindByID(ctx context.Context, caller *entity.Employee, id uint) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceAppointments,
		Operation: authz.OpRead,
		Target:    authz.Target{PhysicianID: appointment.PhysicianID},
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	return converter.AppointmentToResponse(appointment), nil
}

// FindToday lists today's non-cancelled appointments for a physician.
// Physicians are pinned to their own schedule; other roles pass the
// physician id explicitly.
func (u *appointmentUsecase) FindToday(ctx context.Context, caller *entity.Employee, physicianID uint) ([]dto.AppointmentResponse, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceAppointments,
		Operation: authz.OpList,
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	if caller.Role == entity.RolePhysician {
		physicianID = caller.ID
	}
	if physicianID == 0 {
		return nil, ErrEmployeeNotFound
	}

	appointments, err := u.appointmentRepo.FindTodayByPhysician(ctx, physicianID)
	if err != nil {
		u.log.Warnf("Failed to list today's appointments: %+v", err)
		return nil, err
	}
	return converter.AppointmentsToResponses(appointments), nil
}

func (u *appointmentUsecase) Update(ctx context.Context, caller *entity.Employee, id uint, req *dto.UpdateAppointmentRequest) (*dto.AppointmentResponse, error) {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if appointment == nil {
		return nil, ErrAppointmentNotFound
	}

	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceAppointments,
		Operation: authz.OpUpdate,
		Target:    authz.Target{PhysicianID: appointment.PhysicianID},
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	if req.ScheduledAt != nil {
		scheduledAt, err := time.Parse(time.RFC3339, *req.ScheduledAt)
		if err != nil {
			return nil, ErrInvalidDatetimeFormat
		}
		if !scheduledAt.Equal(appointment.ScheduledAt) {
			if existing, err := u.appointmentRepo.FindCollision(ctx, appointment.PhysicianID, scheduledAt); err != nil {
				return nil, err
			} else if existing != nil && existing.ID != appointment.ID {
				return nil, ErrScheduleConflict
			}
			appointment.ScheduledAt = scheduledAt
		}
	}
	if req.Kind != nil {
		appointment.Kind = entity.AppointmentKind(*req.Kind)
	}
	if req.Status != nil {
		appointment.Status = entity.AppointmentStatus(*req.Status)
	}
	if req.Reason != nil {
		appointment.Reason = *req.Reason
	}
	if req.Notes != nil {
		appointment.Notes = *req.Notes
	}

	// Diagnosis and prescription are clinical fields; receptionists cannot
	// write them even on appointments they may otherwise update.
	if caller.Role != entity.RoleReceptionist {
		if req.Diagnosis != nil {
			appointment.Diagnosis = *req.Diagnosis
		}
		if req.Prescription != nil {
			appointment.Prescription = *req.Prescription
		}
	}

	if err := u.appointmentRepo.Update(ctx, appointment); err != nil {
		if isDuplicateKeyError(err, "slot") {
			return nil, ErrScheduleConflict
		}
		u.log.Warnf("Failed to update appointment: %+v", err)
		return nil, err
	}

	return converter.AppointmentToResponse(appointment), nil
}

// Cancel marks the appointment cancelled. The row update is atomic so two
// concurrent cancels cannot both succeed.
func (u *appointmentUsecase) Cancel(ctx context.Context, caller *entity.Employee, id uint) error {
	appointment, err := u.appointmentRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if appointment == nil {
		return ErrAppointmentNotFound
	}

	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceAppointments,
		Operation: authz.OpCancel,
		Target:    authz.Target{PhysicianID: appointment.PhysicianID},
	})
	if !decision.Allowed {
		return forbidden(decision)
	}

	affected, err := u.appointmentRepo.Cancel(ctx, id)
	if err != nil {
		u.log.Warnf("Failed to cancel appointment: %+v", err)
		return err
	}
	if affected == 0 {
		return ErrAppointmentAlreadyCancelled
	}
	return nil
}
