package repository

import (
	"context"
	"time"

	"clinic-management-api/internal/domain/entity"
)

// ExamFilter narrows exam listings. NurseID set by the forced server-side
// scope overrides any client-supplied value.
type ExamFilter struct {
	PatientID   uint
	PhysicianID uint
	NurseID     uint
	Status      entity.ExamStatus
	Kind        entity.ExamKind
	From        *time.Time
	To          *time.Time
	Search      string
	Skip        int
	Limit       int
}

type ExamRepository interface {
	Create(ctx context.Context, exam *entity.Exam) error
	FindByID(ctx context.Context, id uint) (*entity.Exam, error)
	FindAll(ctx context.Context, filter ExamFilter) ([]entity.Exam, int64, error)
	FindByPatient(ctx context.Context, patientID uint) ([]entity.Exam, error)
	FindByPhysician(ctx context.Context, physicianID uint, day *time.Time) ([]entity.Exam, error)
	FindByNurse(ctx context.Context, nurseID uint, day *time.Time) ([]entity.Exam, error)
	Update(ctx context.Context, exam *entity.Exam) error
	Delete(ctx context.Context, id uint) error
}
