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
	ErrExamNotFound      = errors.New("exam not found")
	ErrExamCancelled     = errors.New("exam is cancelled")
	ErrInvalidExamStatus = errors.New("invalid exam status")
	ErrNotANurse         = errors.New("referenced employee is not a nurse")
)

type ExamUsecase interface {
	Create(ctx context.Context, caller *entity.Employee, req *dto.CreateExamRequest) (*dto.ExamResponse, error)
	FindAll(ctx context.Context, caller *entity.Employee, filter repository.ExamFilter) ([]dto.ExamResponse, int64, error)
	FindByID(ctx context.Context, caller *entity.Employee, id uint) (*dto.ExamResponse, error)
	FindByPatient(ctx context.Context, caller *entity.Employee, patientID uint) ([]dto.ExamResponse, error)
	FindByPhysician(ctx context.Context, caller *entity.Employee, physicianID uint, day *time.Time) ([]dto.ExamResponse, error)
	FindByNurse(ctx context.Context, caller *entity.Employee, nurseID uint, day *time.Time) ([]dto.ExamResponse, error)
	Update(ctx context.Context, caller *entity.Employee, id uint, req *dto.UpdateExamRequest) (*dto.ExamResponse, error)
	EnterResult(ctx context.Context, caller *entity.Employee, id uint, req *dto.ExamResultRequest) (*dto.ExamResponse, error)
	UpdateStatus(ctx context.Context, caller *entity.Employee, id uint, status string) (*dto.ExamResponse, error)
	Delete(ctx context.Context, caller *entity.Employee, id uint) error
}

type examUsecase struct {
	log          *logrus.Logger
	examRepo     repository.ExamRepository
	patientRepo  repository.PatientRepository
	employeeRepo repository.EmployeeRepository
}

func NewExamUsecase(
	log *logrus.Logger,
	examRepo repository.ExamRepository,
	patientRepo repository.PatientRepository,
	employeeRepo repository.EmployeeRepository,
) ExamUsecase {
	return &examUsecase{
		log:          log,
		examRepo:     examRepo,
		patientRepo:  patientRepo,
		employeeRepo: employeeRepo,
	}
}

func (u *examUsecase) Create(ctx context.Context, caller *entity.Employee, req *dto.CreateExamRequest) (*dto.ExamResponse, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceExams,
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

	var nurse *entity.Employee
	if req.NurseID != nil {
		nurse, err = u.employeeRepo.FindByID(ctx, *req.NurseID)
		if err != nil {
			return nil, err
		}
		if nurse == nil {
			return nil, ErrEmployeeNotFound
		}
		if nurse.Role != entity.RoleNurse {
			return nil, ErrNotANurse
		}
	}

	exam := &entity.Exam{
		PatientID:           req.PatientID,
		PhysicianID:         req.PhysicianID,
		NurseID:             req.NurseID,
		Name:                req.Name,
		Kind:                entity.ExamKindLaboratory,
		Description:         req.Description,
		ScheduledAt:         scheduledAt,
		Status:              entity.ExamStatusScheduled,
		RequiredPreparation: req.RequiredPreparation,
		Price:               req.Price,
		Insurance:           req.Insurance,
	}
	if req.Kind != "" {
		exam.Kind = entity.ExamKind(req.Kind)
	}

	if err := u.examRepo.Create(ctx, exam); err != nil {
		if isAnyForeignKeyError(err) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to create exam: %+v", err)
		return nil, err
	}

	exam.Patient = patient
	exam.Physician = physician
	exam.Nurse = nurse
	return converter.ExamToResponse(exam), nil
}

func (u *examUsecase) FindAll(ctx context.Context, caller *entity.Employee, filter repository.ExamFilter) ([]dto.ExamResponse, int64, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceExams,
		Operation: authz.OpList,
	})
	if !decision.Allowed {
		return nil, 0, forbidden(decision)
	}

	// Nurses only ever see exams where they are the responsible nurse.
	if scope := authz.ListScope(caller, authz.ResourceExams); scope.NurseID != 0 {
		filter.NurseID = scope.NurseID
	}

	exams, total, err := u.examRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to list exams: %+v", err)
		return nil, 0, err
	}

	return converter.ExamsToResponses(exams), total, nil
}

func (u *examUsecase) FindByID(ctx context.Context, caller *entity.Employee, id uint) (*dto.ExamResponse, error) {
	exam, err := u.examRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, ErrExamNotFound
	}

	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceExams,
		Operation: authz.OpRead,
		Target:    authz.Target{PhysicianID: exam.PhysicianID, NurseID: exam.AssignedNurseID()},
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	return converter.ExamToResponse(exam), nil
}

func (u *examUsecase) FindByPatient(ctx context.Context, caller *entity.Employee, patientID uint) ([]dto.ExamResponse, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceExams,
		Operation: authz.OpList,
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	exams, err := u.examRepo.FindByPatient(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to list patient exams: %+v", err)
		return nil, err
	}

	// The nurse list scope still applies to quick lists.
	if scope := authz.ListScope(caller, authz.ResourceExams); scope.NurseID != 0 {
		exams = filterByNurse(exams, scope.NurseID)
	}

	return converter.ExamsToResponses(exams), nil
}

func (u *examUsecase) FindByPhysician(ctx context.Context, caller *entity.Employee, physicianID uint, day *time.Time) ([]dto.ExamResponse, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceExams,
		Operation: authz.OpList,
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	if caller.Role == entity.RolePhysician {
		physicianID = caller.ID
	}

	exams, err := u.examRepo.FindByPhysician(ctx, physicianID, day)
	if err != nil {
		u.log.Warnf("Failed to list physician exams: %+v", err)
		return nil, err
	}
	return converter.ExamsToResponses(exams), nil
}

func (u *examUsecase) FindByNurse(ctx context.Context, caller *entity.Employee, nurseID uint, day *time.Time) ([]dto.ExamResponse, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceExams,
		Operation: authz.OpList,
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	if caller.Role == entity.RoleNurse {
		nurseID = caller.ID
	}

	exams, err := u.examRepo.FindByNurse(ctx, nurseID, day)
	if err != nil {
		u.log.Warnf("Failed to list nurse exams: %+v", err)
		return nil, err
	}
	return converter.ExamsToResponses(exams), nil
}

func (u *examUsecase) Update(ctx context.Context, caller *entity.Employee, id uint, req *dto.UpdateExamRequest) (*dto.ExamResponse, error) {
	exam, err := u.examRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, ErrExamNotFound
	}

	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceExams,
		Operation: authz.OpUpdate,
		Target:    authz.Target{PhysicianID: exam.PhysicianID, NurseID: exam.AssignedNurseID()},
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	if req.NurseID != nil {
		nurse, err := u.employeeRepo.FindByID(ctx, *req.NurseID)
		if err != nil {
			return nil, err
		}
		if nurse == nil {
			return nil, ErrEmployeeNotFound
		}
		if nurse.Role != entity.RoleNurse {
			return nil, ErrNotANurse
		}
		exam.NurseID = req.NurseID
	}
	if req.Name != nil {
		exam.Name = *req.Name
	}
	if req.Kind != nil {
		exam.Kind = entity.ExamKind(*req.Kind)
	}
	if req.Description != nil {
		exam.Description = *req.Description
	}
	if req.ScheduledAt != nil {
		scheduledAt, err := time.Parse(time.RFC3339, *req.ScheduledAt)
		if err != nil {
			return nil, ErrInvalidDatetimeFormat
		}
		exam.ScheduledAt = scheduledAt
	}
	if req.Notes != nil {
		exam.Notes = *req.Notes
	}
	if req.RequiredPreparation != nil {
		exam.RequiredPreparation = *req.RequiredPreparation
	}
	if req.Price != nil {
		exam.Price = *req.Price
	}
	if req.Insurance != nil {
		exam.Insurance = *req.Insurance
	}

	if err := u.examRepo.Update(ctx, exam); err != nil {
		u.log.Warnf("Failed to update exam: %+v", err)
		return nil, err
	}

	return converter.ExamToResponse(exam), nil
}

// EnterResult records the result and medical report. Only the responsible
// physician passes the policy check; the exam moves to result_available.
func (u *examUsecase) EnterResult(ctx context.Context, caller *entity.Employee, id uint, req *dto.ExamResultRequest) (*dto.ExamResponse, error) {
	exam, err := u.examRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, ErrExamNotFound
	}

	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceExams,
		Operation: authz.OpEnterResult,
		Target:    authz.Target{PhysicianID: exam.PhysicianID, NurseID: exam.AssignedNurseID()},
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	if exam.Status == entity.ExamStatusCancelled {
		return nil, ErrExamCancelled
	}

	now := time.Now()
	exam.Result = req.Result
	exam.MedicalReport = req.MedicalReport
	exam.Status = entity.ExamStatusResultAvailable
	exam.ResultAt = &now
	if exam.PerformedAt == nil {
		exam.PerformedAt = &now
	}

	if err := u.examRepo.Update(ctx, exam); err != nil {
		u.log.Warnf("Failed to enter exam result: %+v", err)
		return nil, err
	}

	return converter.ExamToResponse(exam), nil
}

func (u *examUsecase) UpdateStatus(ctx context.Context, caller *entity.Employee, id uint, status string) (*dto.ExamResponse, error) {
	newStatus := entity.ExamStatus(status)
	if !newStatus.IsValid() {
		return nil, ErrInvalidExamStatus
	}

	exam, err := u.examRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if exam == nil {
		return nil, ErrExamNotFound
	}

	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceExams,
		Operation: authz.OpUpdateStatus,
		Target:    authz.Target{PhysicianID: exam.PhysicianID, NurseID: exam.AssignedNurseID()},
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	exam.Status = newStatus
	if newStatus == entity.ExamStatusFinished && exam.PerformedAt == nil {
		now := time.Now()
		exam.PerformedAt = &now
	}

	if err := u.examRepo.Update(ctx, exam); err != nil {
		u.log.Warnf("Failed to update exam status: %+v", err)
		return nil, err
	}

	return converter.ExamToResponse(exam), nil
}

func (u *examUsecase) Delete(ctx context.Context, caller *entity.Employee, id uint) error {
	exam, err := u.examRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if exam == nil {
		return ErrExamNotFound
	}

	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceExams,
		Operation: authz.OpDelete,
		Target:    authz.Target{PhysicianID: exam.PhysicianID, NurseID: exam.AssignedNurseID()},
	})
	if !decision.Allowed {
		return forbidden(decision)
	}

	if err := u.examRepo.Delete(ctx, id); err != nil {
		u.log.Warnf("Failed to delete exam: %+v", err)
		return err
	}
	return nil
}

func filterByNurse(exams []entity.Exam, nurseID uint) []entity.Exam {
	filtered := exams[:0]
	for _, exam := range exams {
		if exam.AssignedNurseID() == nurseID {
			filtered = append(filtered, exam)
		}
	}
	return filtered
}
