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
	ErrPatientNotFound   = errors.New("patient not found")
	ErrCPFAlreadyExists  = errors.New("CPF already registered")
	ErrRGAlreadyExists   = errors.New("RG already registered")
	ErrInvalidDateFormat = errors.New("invalid date format, use YYYY-MM-DD")
	ErrPatientReferenced = errors.New("patient is referenced by appointments")
)

type PatientUsecase interface {
	Create(ctx context.Context, caller *entity.Employee, req *dto.CreatePatientRequest) (*dto.PatientResponse, error)
	FindAll(ctx context.Context, caller *entity.Employee, filter repository.PatientFilter) ([]dto.PatientResponse, int64, error)
	FindByID(ctx context.Context, caller *entity.Employee, id uint) (*dto.PatientResponse, error)
	SearchByCPF(ctx context.Context, caller *entity.Employee, cpf string) ([]dto.PatientResponse, error)
	SearchByName(ctx context.Context, caller *entity.Employee, name string) ([]dto.PatientResponse, error)
	Update(ctx context.Context, caller *entity.Employee, id uint, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error)
	Delete(ctx context.Context, caller *entity.Employee, id uint) error
}

type patientUsecase struct {
	log         *logrus.Logger
	patientRepo repository.PatientRepository
}

func NewPatientUsecase(log *logrus.Logger, patientRepo repository.PatientRepository) PatientUsecase {
	return &patientUsecase{
		log:         log,
		patientRepo: patientRepo,
	}
}

func (u *patientUsecase) Create(ctx context.Context, caller *entity.Employee, req *dto.CreatePatientRequest) (*dto.PatientResponse, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourcePatients,
		Operation: authz.OpCreate,
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	birthDate, err := time.Parse("2006-01-02", req.BirthDate)
	if err != nil {
		return nil, ErrInvalidDateFormat
	}

	// Fast-path uniqueness checks; the unique indexes remain authoritative.
	if existing, err := u.patientRepo.FindByCPF(ctx, req.CPF); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrCPFAlreadyExists
	}
	if existing, err := u.patientRepo.FindByRG(ctx, req.RG); err != nil {
		return nil, err
	} else if existing != nil {
		return nil, ErrRGAlreadyExists
	}

	patient := &entity.Patient{
		Name:      req.Name,
		RG:        req.RG,
		CPF:       req.CPF,
		Sex:       req.Sex,
		BirthDate: birthDate,
		Phone:     req.Phone,
		Email:     req.Email,
		CityState: req.CityState,
		Address:   req.Address,
		Pathology: req.Pathology,
	}

	if err := u.patientRepo.Create(ctx, patient); err != nil {
		if isDuplicateKeyError(err, "cpf") {
			return nil, ErrCPFAlreadyExists
		}
		if isDuplicateKeyError(err, "rg") {
			return nil, ErrRGAlreadyExists
		}
		u.log.Warnf("Failed to create patient: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) FindAll(ctx context.Context, caller *entity.Employee, filter repository.PatientFilter) ([]dto.PatientResponse, int64, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourcePatients,
		Operation: authz.OpList,
	})
	if !decision.Allowed {
		return nil, 0, forbidden(decision)
	}

	patients, total, err := u.patientRepo.FindAll(ctx, filter)
	if err != nil {
		u.log.Warnf("Failed to list patients: %+v", err)
		return nil, 0, err
	}

	return converter.PatientsToResponses(patients), total, nil
}

func (u *patientUsecase) FindByID(ctx context.Context, caller *entity.Employee, id uint) (*dto.PatientResponse, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourcePatients,
		Operation: authz.OpRead,
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	return converter.PatientToResponse(patient), nil
}

func (u *patientUsecase) SearchByCPF(ctx context.Context, caller *entity.Employee, cpf string) ([]dto.PatientResponse, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourcePatients,
		Operation: authz.OpRead,
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	patients, err := u.patientRepo.SearchByCPF(ctx, cpf)
	if err != nil {
		u.log.Warnf("Failed to search patients by CPF: %+v", err)
		return nil, err
	}
	return converter.PatientsToResponses(patients), nil
}

func (u *patientUsecase) SearchByName(ctx context.Context, caller *entity.Employee, name string) ([]dto.PatientResponse, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourcePatients,
		Operation: authz.OpRead,
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	patients, err := u.patientRepo.SearchByName(ctx, name)
	if err != nil {
		u.log.Warnf("Failed to search patients by name: %+v", err)
		return nil, err
	}
	return converter.PatientsToResponses(patients), nil
}

func (u *patientUsecase) Update(ctx context.Context, caller *entity.Employee, id uint, req *dto.UpdatePatientRequest) (*dto.PatientResponse, error) {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourcePatients,
		Operation: authz.OpUpdate,
	})
	if !decision.Allowed {
		return nil, forbidden(decision)
	}

	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if patient == nil {
		return nil, ErrPatientNotFound
	}

	if req.Name != nil {
		patient.Name = *req.Name
	}
	if req.RG != nil && *req.RG != patient.RG {
		if existing, err := u.patientRepo.FindByRG(ctx, *req.RG); err != nil {
			return nil, err
		} else if existing != nil && existing.ID != patient.ID {
			return nil, ErrRGAlreadyExists
		}
		patient.RG = *req.RG
	}
	if req.CPF != nil && *req.CPF != patient.CPF {
		if existing, err := u.patientRepo.FindByCPF(ctx, *req.CPF); err != nil {
			return nil, err
		} else if existing != nil && existing.ID != patient.ID {
			return nil, ErrCPFAlreadyExists
		}
		patient.CPF = *req.CPF
	}
	if req.Sex != nil {
		patient.Sex = *req.Sex
	}
	if req.BirthDate != nil {
		birthDate, err := time.Parse("2006-01-02", *req.BirthDate)
		if err != nil {
			return nil, ErrInvalidDateFormat
		}
		patient.BirthDate = birthDate
	}
	if req.Phone != nil {
		patient.Phone = *req.Phone
	}
	if req.Email != nil {
		patient.Email = *req.Email
	}
	if req.CityState != nil {
		patient.CityState = *req.CityState
	}
	if req.Address != nil {
		patient.Address = *req.Address
	}
	if req.Pathology != nil {
		patient.Pathology = *req.Pathology
	}

	if err := u.patientRepo.Update(ctx, patient); err != nil {
		if isDuplicateKeyError(err, "cpf") {
			return nil, ErrCPFAlreadyExists
		}
		if isDuplicateKeyError(err, "rg") {
			return nil, ErrRGAlreadyExists
		}
		u.log.Warnf("Failed to update patient: %+v", err)
		return nil, err
	}

	return converter.PatientToResponse(patient), nil
}

// Delete removes a patient. Exams and encounters cascade with the record;
// appointments restrict the delete and surface a conflict instead.
func (u *patientUsecase) Delete(ctx context.Context, caller *entity.Employee, id uint) error {
	decision := authz.Authorize(caller, authz.Action{
		Resource:  authz.ResourcePatients,
		Operation: authz.OpDelete,
	})
	if !decision.Allowed {
		return forbidden(decision)
	}

	patient, err := u.patientRepo.FindByID(ctx, id)
	if err != nil {
		return err
	}
	if patient == nil {
		return ErrPatientNotFound
	}

	if err := u.patientRepo.Delete(ctx, id); err != nil {
		// Only the appointments foreign key restricts; exams and encounters
		// cascade and never violate.
		if isForeignKeyError(err, "appointments") {
			return ErrPatientReferenced
		}
		u.log.Warnf("Failed to delete patient: %+v", err)
		return err
	}
	return nil
}
