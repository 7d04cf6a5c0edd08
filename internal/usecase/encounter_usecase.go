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
	ErrEncounterNotFound      = errors.New("nursing encounter not found")
	ErrEncounterNotWaiting    = errors.New("encounter is not waiting to start")
	ErrEncounterNotInProgress = errors.New("encounter is not in progress")
	ErrEncounterClosed        = errors.New("encounter is already closed")
	ErrNotOwnEncounter        = errors.New("nurses may only open encounters for themselves")
	ErrSupervisorNotPhysician = errors.New("supervisor must be a physician")
)

type EncounterUsecase interface {
	Create(ctx context.Context, caller *entity.Employee, req *dto.CreateEncounterRequest) (*dto.EncounterResponse, error)
	Triage(ctx context.Context, caller *entity.Employee, req *dto.TriageRequest) (*dto.EncounterResponse, error)
	FindAll(ctx context.Context, caller *entity.Employee, filter repository.EncounterFilter) ([]dto.EncounterResponse, int64, error)
	FindByID(ctx context.Context, caller *entity.Employee, id uint) (*dto.EncounterResponse, error)
	FindByPatient(ctx context.Context, caller *entity.Employee, patientID uint) ([]dto.EncounterResponse, error)
	FindByNurse(ctx context.Context, caller *entity.Employee, nurseID uint, day *time.Time) ([]dto.EncounterResponse, error)
	FindInProgress(ctx context.Context, caller *entity.Employee, nurseID uint) ([]dto.EncounterResponse, error)
	Update(ctx context.Context, caller *entity.Employee, id uint, req *dto.UpdateEncounterRequest) (*dto.EncounterResponse, error)
	RecordVitals(ctx context.Context, caller *entity.Employee, id uint, req *dto.VitalsRequest) (*dto.EncounterResponse, error)
	Start(ctx context.Context, caller *entity.Employee, id uint) (*dto.EncounterResponse, error)
	Finish(ctx context.Context, caller *entity.Employee, id uint) (*dto.EncounterResponse, error)
	Delete(ctx context.Context, caller *entity.Employee, id uint) error
}

type encounterUsecase struct {
	log           *logrus.Logger
	encounterRepo repository.EncounterRepository
	patientRepo   repository.PatientRepository
	employeeRepo  repository.EmployeeRepository
}

func NewEncounterUsecase(
	log *logrus.Logger,
	encounterRepo repository.EncounterRepository,
	patientRepo repository.PatientRepository,
	employeeRepo repository.EmployeeRepository,
) EncounterUsecase {
	return &encounterUsecase{
		log:           log,
		encounterRepo: encounterRepo,
		patientRepo:   patientRepo,
		employeeRepo:  employeeRepo,
	}
}

func (u *encounterUsecase) Create(ctx context.Context, caller *entity.Employee, req *dto.CreateEncounterRequest) (*dto.EncounterResponse, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceEncounters,
		Operation: authz.OpCreate,
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	// A nurse opens encounters in their own name only.
	if req.NurseID != caller.ID {
		return nil, ErrNotOwnEncounter
	}

	patient, err := u.patientRepo.FindByID(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	var supervisor *entity.Employee
	if req.SupervisorID != nil {
		supervisor, err = u.employeeRepo.FindByID(ctx, *req.SupervisorID)
		if err != nil {
			return nil, err
		}
		if supervisor == nil {
			return nil, ErrEmployeeNotFound
		}
		if supervisor.Role != entity.RolePhysician {
			return nil, ErrSupervisorNotPhysician
		}
	}

	encounter := &entity.NursingEncounter{
		PatientID:    req.PatientID,
		NurseID:      req.NurseID,
		SupervisorID: req.SupervisorID,
		Kind:         entity.EncounterKindOutpatient,
		Reason:       req.Reason,
		StartedAt:    time.Now(),
		Status:       entity.EncounterStatusWaiting,
		Sector:       req.Sector,
		Bed:          req.Bed,
	}
	if req.Kind != "" {
		encounter.Kind = entity.EncounterKind(req.Kind)
	}

	if err := u.encounterRepo.Create(ctx, encounter); err != nil {
		if isAnyForeignKeyError(err) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to create encounter: %+v", err)
		return nil, err
	}

	encounter.Patient = patient
	encounter.Nurse = caller
	encounter.Supervisor = supervisor
	return converter.EncounterToResponse(encounter), nil
}

// Triage opens a triage encounter with its first set of vitals in one call,
// already in progress.
func (u *encounterUsecase) Triage(ctx context.Context, caller *entity.Employee, req *dto.TriageRequest) (*dto.EncounterResponse, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceEncounters,
		Operation: authz.OpCreate,
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	if req.NurseID != caller.ID {
		return nil, ErrNotOwnEncounter
	}

	patient, err := u.patientRepo.FindByID(ctx, req.PatientID)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	encounter := &entity.NursingEncounter{
		PatientID:        req.PatientID,
		NurseID:          req.NurseID,
		Kind:             entity.EncounterKindTriage,
		Reason:           req.Reason,
		StartedAt:        time.Now(),
		Status:           entity.EncounterStatusInProgress,
		BloodPressure:    req.BloodPressure,
		Temperature:      req.Temperature,
		HeartRate:        req.HeartRate,
		OxygenSaturation: req.OxygenSaturation,
		WeightKG:         req.WeightKG,
		HeightCM:         req.HeightCM,
		PainScale:        req.PainScale,
		MainComplaints:   req.MainComplaints,
		NursingNotes:     req.NursingNotes,
	}

	if err := u.encounterRepo.Create(ctx, encounter); err != nil {
		if isAnyForeignKeyError(err) {
			return nil, ErrPatientNotFound
		}
		u.log.Warnf("Failed to create triage encounter: %+v", err)
		return nil, err
	}

	encounter.Patient = patient
	encounter.Nurse = caller
	return converter.EncounterToResponse(encounter), nil
}

func (u *encounterUsecase) FindAll(ctx context.Context, caller *entity.Employee, filter repository.EncounterFilter) ([]dto.EncounterResponse, int64, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceEncounters,
		Operation: authz.OpList,
	})
	if !decision.Allowed {
		return nil, 0, forbidden(decision)
	}

	encounters, total, err := u.encounterRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to list encounters: %+v", err)
		return nil, 0, err
	}

	return converter.EncountersToResponses(encounters), total, nil
}

func (u *encounterUsecase) FindByID(ctx context.Context, caller *entity.Employee, id uint) (*dto.EncounterResponse, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceEncounters,
		Operation: authz.OpRead,
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	encounter, err := u.encounterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if encounter == nil {
		return nil, ErrEncounterNotFound
	}

	return converter.EncounterToResponse(encounter), nil
}

func (u *encounterUsecase) FindByPatient(ctx context.Context, caller *entity.Employee, patientID uint) ([]dto.EncounterResponse, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceEncounters,
		Operation: authz.OpList,
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	encounters, err := u.encounterRepo.FindByPatient(ctx, patientID)
	if err != nil {
		u.log.Warnf("Failed to list patient encounters: %+v", err)
		return nil, err
	}
	return converter.EncountersToResponses(encounters), nil
}

// FindByNurse lists a nurse's encounters, optionally restricted to one day.
// Nurses are pinned to their own id.
func (u *encounterUsecase) FindByNurse(ctx context.Context, caller *entity.Employee, nurseID uint, day *time.Time) ([]dto.EncounterResponse, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceEncounters,
		Operation: authz.OpList,
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	if caller.Role == entity.RoleNurse {
		nurseID = caller.ID
	}

	encounters, err := u.encounterRepo.FindByNurse(ctx, nurseID, day)
	if err != nil {
		u.log.Warnf("Failed to list nurse encounters: %+v", err)
		return nil, err
	}
	return converter.EncountersToResponses(encounters), nil
}

// FindInProgress lists open encounters. Nurses are pinned to their own; other
// roles may pass a nurse id or zero for all.
func (u *encounterUsecase) FindInProgress(ctx context.Context, caller *entity.Employee, nurseID uint) ([]dto.EncounterResponse, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceEncounters,
		Operation: authz.OpList,
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	if caller.Role == entity.RoleNurse {
		nurseID = caller.ID
	}

	encounters, err := u.encounterRepo.FindInProgress(ctx, nurseID)
	if err != nil {
		u.log.Warnf("Failed to list in-progress encounters: %+v", err)
		return nil, err
	}
	return converter.EncountersToResponses(encounters), nil
}

func (u *encounterUsecase) Update(ctx context.Context, caller *entity.Employee, id uint, req *dto.UpdateEncounterRequest) (*dto.EncounterResponse, error) {
	encounter, err := u.encounterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if encounter == nil {
		return nil, ErrEncounterNotFound
	}

	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceEncounters,
		Operation: authz.OpUpdate,
		Target:    authz.Target{NurseID: encounter.NurseID, SupervisorID: encounter.SupervisingPhysicianID()},
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	if req.SupervisorID != nil {
		supervisor, err := u.employeeRepo.FindByID(ctx, *req.SupervisorID)
		if err != nil {
			return nil, err
		}
		if supervisor == nil {
			return nil, ErrEmployeeNotFound
		}
		if supervisor.Role != entity.RolePhysician {
			return nil, ErrSupervisorNotPhysician
		}
		encounter.SupervisorID = req.SupervisorID
	}
	if req.Kind != nil {
		encounter.Kind = entity.EncounterKind(*req.Kind)
	}
	if req.Reason != nil {
		encounter.Reason = *req.Reason
	}
	if req.Status != nil {
		encounter.Status = entity.EncounterStatus(*req.Status)
	}
	if req.BloodPressure != nil {
		encounter.BloodPressure = *req.BloodPressure
	}
	if req.Temperature != nil {
		encounter.Temperature = req.Temperature
	}
	if req.HeartRate != nil {
		encounter.HeartRate = req.HeartRate
	}
	if req.RespiratoryRate != nil {
		encounter.RespiratoryRate = req.RespiratoryRate
	}
	if req.OxygenSaturation != nil {
		encounter.OxygenSaturation = req.OxygenSaturation
	}
	if req.WeightKG != nil {
		encounter.WeightKG = req.WeightKG
	}
	if req.HeightCM != nil {
		encounter.HeightCM = req.HeightCM
	}
	if req.PainScale != nil {
		encounter.PainScale = req.PainScale
	}
	if req.MainComplaints != nil {
		encounter.MainComplaints = *req.MainComplaints
	}
	if req.CurrentHistory != nil {
		encounter.CurrentHistory = *req.CurrentHistory
	}
	if req.Procedures != nil {
		encounter.Procedures = *req.Procedures
	}
	if req.MedicationsGiven != nil {
		encounter.MedicationsGiven = *req.MedicationsGiven
	}
	if req.NursingNotes != nil {
		encounter.NursingNotes = *req.NursingNotes
	}
	if req.PatientGuidance != nil {
		encounter.PatientGuidance = *req.PatientGuidance
	}
	if req.DischargeConditions != nil {
		encounter.DischargeConditions = *req.DischargeConditions
	}
	if req.Referrals != nil {
		encounter.Referrals = *req.Referrals
	}
	if req.FollowUpNeeded != nil {
		encounter.FollowUpNeeded = *req.FollowUpNeeded
	}
	if req.Sector != nil {
		encounter.Sector = *req.Sector
	}
	if req.Bed != nil {
		encounter.Bed = *req.Bed
	}

	if err := u.encounterRepo.Update(ctx, encounter); err != nil {
		u.log.Warnf("Failed to update encounter: %+v", err)
		return nil, err
	}

	return converter.EncounterToResponse(encounter), nil
}

func (u *encounterUsecase) RecordVitals(ctx context.Context, caller *entity.Employee, id uint, req *dto.VitalsRequest) (*dto.EncounterResponse, error) {
	encounter, err := u.encounterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if encounter == nil {
		return nil, ErrEncounterNotFound
	}

	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceEncounters,
		Operation: authz.OpRecordVitals,
		Target:    authz.Target{NurseID: encounter.NurseID, SupervisorID: encounter.SupervisingPhysicianID()},
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	if encounter.Status != entity.EncounterStatusWaiting && encounter.Status != entity.EncounterStatusInProgress {
		return nil, ErrEncounterClosed
	}

	if req.BloodPressure != nil {
		encounter.BloodPressure = *req.BloodPressure
	}
	if req.Temperature != nil {
		encounter.Temperature = req.Temperature
	}
	if req.HeartRate != nil {
		encounter.HeartRate = req.HeartRate
	}
	if req.RespiratoryRate != nil {
		encounter.RespiratoryRate = req.RespiratoryRate
	}
	if req.OxygenSaturation != nil {
		encounter.OxygenSaturation = req.OxygenSaturation
	}
	if req.WeightKG != nil {
		encounter.WeightKG = req.WeightKG
	}
	if req.HeightCM != nil {
		encounter.HeightCM = req.HeightCM
	}
	if req.PainScale != nil {
		encounter.PainScale = req.PainScale
	}

	if err := u.encounterRepo.Update(ctx, encounter); err != nil {
		u.log.Warnf("Failed to record vitals: %+v", err)
		return nil, err
	}

	return converter.EncounterToResponse(encounter), nil
}

// Start moves a waiting encounter to in_progress and restamps its start time.
func (u *encounterUsecase) Start(ctx context.Context, caller *entity.Employee, id uint) (*dto.EncounterResponse, error) {
	encounter, err := u.encounterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if encounter == nil {
		return nil, ErrEncounterNotFound
	}

	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceEncounters,
		Operation: authz.OpStart,
		Target:    authz.Target{NurseID: encounter.NurseID, SupervisorID: encounter.SupervisingPhysicianID()},
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	if encounter.Status != entity.EncounterStatusWaiting {
		return nil, ErrEncounterNotWaiting
	}

	encounter.Status = entity.EncounterStatusInProgress
	encounter.StartedAt = time.Now()

	if err := u.encounterRepo.Update(ctx, encounter); err != nil {
		u.log.Warnf("Failed to start encounter: %+v", err)
		return nil, err
	}

	return converter.EncounterToResponse(encounter), nil
}

// Finish closes an in-progress encounter and stamps its end time.
func (u *encounterUsecase) Finish(ctx context.Context, caller *entity.Employee, id uint) (*dto.EncounterResponse, error) {
	encounter, err := u.encounterRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if encounter == nil {
		return nil, ErrEncounterNotFound
	}

	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceEncounters,
		Operation: authz.OpFinish,
		Target:    authz.Target{NurseID: encounter.NurseID, SupervisorID: encounter.SupervisingPhysicianID()},
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	if encounter.Status != entity.EncounterStatusInProgress {
		return nil, ErrEncounterNotInProgress
	}

	now := time.Now()
	encounter.Status = entity.EncounterStatusFinished
	encounter.EndedAt = &now

	if err := u.encounterRepo.Update(ctx, encounter); err != nil {
		u.log.Warnf("Failed to finish encounter: %+v", err)
		return nil, err
	}

	return converter.EncounterToResponse(encounter), nil
}

func (u *encounterUsecase) Delete(ctx context.Context, caller *entity.Employee, id uint) error {
	encounter, err := u.encounterRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if encounter == nil {
		return ErrEncounterNotFound
	}

	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourceEncounters,
		Operation: authz.OpDelete,
		Target:    authz.Target{NurseID: encounter.NurseID, SupervisorID: encounter.SupervisingPhysicianID()},
	})
	if !decision.Allowed {
		return forbidden(decision)
	}

	if err := u.encounterRepo.Delete(ctx, id); err != nil {
		u.log.Warnf("Failed to delete encounter: %+v", err)
		return err
	}
	return nil
}
