package usecase

import (
	"context"
	"testing"

	"clinic-management-api/internal/delivery/dto"

	"github.com/jackc/pgx/v5/pgconn"
)

func TestPatientCreate_FrontDeskOnly(t *testing.T) {
	uc := NewPatientUsecase(testLogger(), newStubPatientRepo())

	req := &dto.CreatePatientRequest{
		Name: "Joana Souza", RG: "55.666.777-8", CPF: "99988877766",
		Sex: "F", BirthDate: "1992-03-20",
	}

	if _, err := uc.Create(context.Background(), fixturePhysician(), req); err == nil {
		t.Fatal("expected physician create to be forbidden")
	}
	if _, err := uc.Create(context.Background(), fixtureNurse(), req); err == nil {
		t.Fatal("expected nurse create to be forbidden")
	}

	created, err := uc.Create(context.Background(), fixtureReceptionist(), req)
	if err != nil {
		t.Fatalf("receptionist create returned error: %v", err)
	}
	if created.CPF != "99988877766" || created.BirthDate != "1992-03-20" {
		t.Errorf("unexpected created patient: %+v", created)
	}
}

func TestPatientCreate_InvalidBirthDate(t *testing.T) {
	uc := NewPatientUsecase(testLogger(), newStubPatientRepo())

	if _, err := uc.Create(context.Background(), fixtureReceptionist(), &dto.CreatePatientRequest{
		Name: "Joana", RG: "1", CPF: "2", Sex: "F", BirthDate: "20/03/1992",
	}); err != ErrInvalidDateFormat {
		t.Fatalf("expected ErrInvalidDateFormat, got %v", err)
	}
}

func TestPatientCreate_DuplicateDocuments(t *testing.T) {
	uc := NewPatientUsecase(testLogger(), newStubPatientRepo(fixturePatient()))

	existing := fixturePatient()
	if _, err := uc.Create(context.Background(), fixtureReceptionist(), &dto.CreatePatientRequest{
		Name: "Clone", RG: "new-rg", CPF: existing.CPF, Sex: "F", BirthDate: "1990-01-01",
	}); err != ErrCPFAlreadyExists {
		t.Fatalf("expected ErrCPFAlreadyExists, got %v", err)
	}
	if _, err := uc.Create(context.Background(), fixtureReceptionist(), &dto.CreatePatientRequest{
		Name: "Clone", RG: existing.RG, CPF: "new-cpf", Sex: "F", BirthDate: "1990-01-01",
	}); err != ErrRGAlreadyExists {
		t.Fatalf("expected ErrRGAlreadyExists, got %v", err)
	}
}

func TestPatientRead_AnyRole(t *testing.T) {
	uc := NewPatientUsecase(testLogger(), newStubPatientRepo(fixturePatient()))

	if _, err := uc.FindByID(context.Background(), fixtureNurse(), 1); err != nil {
		t.Fatalf("nurse read returned error: %v", err)
	}
	if _, err := uc.FindByID(context.Background(), fixturePhysician(), 999); err != ErrPatientNotFound {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}
}

func TestPatientSearch(t *testing.T) {
	uc := NewPatientUsecase(testLogger(), newStubPatientRepo(fixturePatient()))

	byCPF, err := uc.SearchByCPF(context.Background(), fixtureNurse(), fixturePatient().CPF)
	if err != nil {
		t.Fatalf("SearchByCPF returned error: %v", err)
	}
	if len(byCPF) != 1 {
		t.Errorf("expected 1 match by CPF, got %d", len(byCPF))
	}

	byName, err := uc.SearchByName(context.Background(), fixtureNurse(), "nobody")
	if err != nil {
		t.Fatalf("SearchByName returned error: %v", err)
	}
	if len(byName) != 0 {
		t.Errorf("expected no match by name, got %d", len(byName))
	}
}

func TestPatientUpdate_CPFCollision(t *testing.T) {
	other := fixturePatient()
	other.ID = 2
	other.CPF = "22233344455"
	other.RG = "99.888.777-6"
	uc := NewPatientUsecase(testLogger(), newStubPatientRepo(fixturePatient(), other))

	if _, err := uc.Update(context.Background(), fixtureReceptionist(), 1, &dto.UpdatePatientRequest{
		CPF: strPtr("22233344455"),
	}); err != ErrCPFAlreadyExists {
		t.Fatalf("expected ErrCPFAlreadyExists, got %v", err)
	}

	// Re-submitting the patient's own CPF is not a collision.
	updated, err := uc.Update(context.Background(), fixtureReceptionist(), 1, &dto.UpdatePatientRequest{
		CPF:   strPtr(fixturePatient().CPF),
		Phone: strPtr("11 98888-7777"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Phone != "11 98888-7777" {
		t.Errorf("expected phone updated, got %q", updated.Phone)
	}
}

func TestPatientDelete_Referenced(t *testing.T) {
	repo := newStubPatientRepo(fixturePatient())
	repo.deleteErr = &pgconn.PgError{Code: "23503", ConstraintName: "appointments_patient_id_fkey"}
	uc := NewPatientUsecase(testLogger(), repo)

	if err := uc.Delete(context.Background(), fixtureReceptionist(), 1); err != ErrPatientReferenced {
		t.Fatalf("expected ErrPatientReferenced, got %v", err)
	}

	// A violation on any other constraint is not the referenced-patient case.
	otherFK := &pgconn.PgError{Code: "23503", ConstraintName: "exams_patient_id_fkey"}
	repo.deleteErr = otherFK
	if err := uc.Delete(context.Background(), fixtureReceptionist(), 1); err != otherFK {
		t.Fatalf("expected raw constraint error passed through, got %v", err)
	}

	repo.deleteErr = nil
	if err := uc.Delete(context.Background(), fixtureReceptionist(), 1); err != nil {
		t.Fatalf("Delete returned error: %v", err)
	}
	if err := uc.Delete(context.Background(), fixtureReceptionist(), 1); err != ErrPatientNotFound {
		t.Fatalf("expected ErrPatientNotFound after delete, got %v", err)
	}
}
