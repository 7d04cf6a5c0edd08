package repository

import (
	"context"

	"clinic-management-api/internal/domain/entity"
)

// PatientFilter narrows patient listings.
type PatientFilter struct {
	Search string
	Skip   int
	Limit  int
}

type PatientRepository interface {
	Create(ctx context.Context, patient *entity.Patient) error
	FindByID(ctx context.Context, id uint) (*entity.Patient, error)
	FindByCPF(ctx context.Context, cpf string) (*entity.Patient, error)
	FindByRG(ctx context.Context, rg string) (*entity.Patient, error)
	FindAll(ctx context.Context, filter PatientFilter) ([]entity.Patient, int64, error)
	SearchByCPF(ctx context.Context, cpf string) ([]entity.Patient, error)
	SearchByName(ctx context.Context, name string) ([]entity.Patient, error)
	Update(ctx context.Context, patient *entity.Patient) error
	Delete(ctx context.Context, id uint) error
}
