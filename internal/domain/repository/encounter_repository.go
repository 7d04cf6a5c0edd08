package repository

import (
	"context"
	"time"

	"clinic-management-api/internal/domain/entity"
)

// EncounterFilter narrows nursing encounter listings.
type EncounterFilter struct {
	PatientID    uint
	NurseID      uint
	SupervisorID uint
	Status       entity.EncounterStatus
	Kind         entity.EncounterKind
	Sector       string
	From         *time.Time
	To           *time.Time
	Search       string
	Skip         int
	Limit        int
}

type EncounterRepository interface {
	Create(ctx context.Context, encounter *entity.NursingEncounter) error
	FindByID(ctx context.Context, id uint) (*entity.NursingEncounter, error)
	FindAll(ctx context.Context, filter EncounterFilter) ([]entity.NursingEncounter, int64, error)
	FindByPatient(ctx context.Context, patientID uint) ([]entity.NursingEncounter, error)
	FindByNurse(ctx context.Context, nurseID uint, day *time.Time) ([]entity.NursingEncounter, error)
	FindInProgress(ctx context.Context, nurseID uint) ([]entity.NursingEncounter, error)
	Update(ctx context.Context, encounter *entity.NursingEncounter) error
	Delete(ctx context.Context, id uint) error
}
