package usecase

import (
	"context"
	"errors"
	"testing"

	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

func strPtr(s string) *string { return &s }

func TestEmployeeCreate_RequiresAdmin(t *testing.T) {
	repo := newStubEmployeeRepo(fixtureAdmin(), fixtureReceptionist())
	uc := NewEmployeeUsecase(testLogger(), repo)

	req := &dto.CreateEmployeeRequest{
		Name: "New Nurse", Login: "newnurse", Email: "newnurse@clinic.test",
		Password: "secret123", Role: "nurse", COREN: "COREN-111",
	}

	if _, err := uc.Create(context.Background(), fixtureReceptionist(), req); err == nil {
		t.Fatal("expected receptionist create to be forbidden")
	} else {
		var fe *ForbiddenError
		if !errors.As(err, &fe) {
			t.Fatalf("expected ForbiddenError, got %v", err)
		}
	}

	created, err := uc.Create(context.Background(), fixtureAdmin(), req)
	if err != nil {
		t.Fatalf("admin create returned error: %v", err)
	}
	if created.Role != "nurse" || created.COREN != "COREN-111" {
		t.Errorf("unexpected created employee: %+v", created)
	}
}

func TestEmployeeCreate_PhysicianRequiresCRM(t *testing.T) {
	repo := newStubEmployeeRepo(fixtureAdmin())
	uc := NewEmployeeUsecase(testLogger(), repo)

	req := &dto.CreateEmployeeRequest{
		Name: "Dr. No License", Login: "nolicense", Email: "nolicense@clinic.test",
		Password: "secret123", Role: "physician",
	}
	if _, err := uc.Create(context.Background(), fixtureAdmin(), req); err != ErrLicenseRequired {
		t.Fatalf("expected ErrLicenseRequired, got %v", err)
	}
}

func TestEmployeeCreate_DuplicateLoginAndLicense(t *testing.T) {
	repo := newStubEmployeeRepo(fixtureAdmin(), fixturePhysician())
	uc := NewEmployeeUsecase(testLogger(), repo)

	dupLogin := &dto.CreateEmployeeRequest{
		Name: "Impostor", Login: "paulo", Email: "other@clinic.test",
		Password: "secret123", Role: "receptionist",
	}
	if _, err := uc.Create(context.Background(), fixtureAdmin(), dupLogin); err != ErrLoginAlreadyExists {
		t.Fatalf("expected ErrLoginAlreadyExists, got %v", err)
	}

	dupCRM := &dto.CreateEmployeeRequest{
		Name: "Dr. Clone", Login: "clone", Email: "clone@clinic.test",
		Password: "secret123", Role: "physician", CRM: "CRM-12345",
	}
	if _, err := uc.Create(context.Background(), fixtureAdmin(), dupCRM); err != ErrCRMAlreadyExists {
		t.Fatalf("expected ErrCRMAlreadyExists, got %v", err)
	}
}

func TestEmployeeCreate_StraysStripped(t *testing.T) {
	// A receptionist record never carries a CRM, whatever the request says.
	repo := newStubEmployeeRepo(fixtureAdmin())
	uc := NewEmployeeUsecase(testLogger(), repo)

	req := &dto.CreateEmployeeRequest{
		Name: "Rita", Login: "rita2", Email: "rita2@clinic.test",
		Password: "secret123", Role: "receptionist", CRM: "CRM-99999", Sector: "Front desk",
	}
	created, err := uc.Create(context.Background(), fixtureAdmin(), req)
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.CRM != "" {
		t.Errorf("expected stray CRM to be dropped, got %q", created.CRM)
	}
	if created.Sector != "Front desk" {
		t.Errorf("expected sector kept, got %q", created.Sector)
	}
}

func TestEmployeeRead_SelfOrAdmin(t *testing.T) {
	repo := newStubEmployeeRepo(fixtureAdmin(), fixturePhysician(), fixtureNurse())
	uc := NewEmployeeUsecase(testLogger(), repo)

	if _, err := uc.FindByID(context.Background(), fixturePhysician(), fixtureNurse().ID); err == nil {
		t.Fatal("expected physician reading another employee to be forbidden")
	}
	if _, err := uc.FindByID(context.Background(), fixturePhysician(), fixturePhysician().ID); err != nil {
		t.Fatalf("self read returned error: %v", err)
	}
	if _, err := uc.FindByID(context.Background(), fixtureAdmin(), fixtureNurse().ID); err != nil {
		t.Fatalf("admin read returned error: %v", err)
	}
}

func TestEmployeeUpdate_SelfCannotChangeLicense(t *testing.T) {
	repo := newStubEmployeeRepo(fixtureAdmin(), fixturePhysician())
	uc := NewEmployeeUsecase(testLogger(), repo)

	updated, err := uc.Update(context.Background(), fixturePhysician(), fixturePhysician().ID, &dto.UpdateEmployeeRequest{
		Phone: strPtr("11 99999-0000"),
		CRM:   strPtr("CRM-HACKED"),
	})
	if err != nil {
		t.Fatalf("self update returned error: %v", err)
	}
	if updated.Phone != "11 99999-0000" {
		t.Errorf("expected phone updated, got %q", updated.Phone)
	}
	if updated.CRM != "CRM-12345" {
		t.Errorf("expected CRM unchanged on self update, got %q", updated.CRM)
	}

	// The administrator may change it.
	updated, err = uc.Update(context.Background(), fixtureAdmin(), fixturePhysician().ID, &dto.UpdateEmployeeRequest{
		CRM: strPtr("CRM-54321"),
	})
	if err != nil {
		t.Fatalf("admin update returned error: %v", err)
	}
	if updated.CRM != "CRM-54321" {
		t.Errorf("expected CRM updated by admin, got %q", updated.CRM)
	}
}

func TestEmployeeDelete_Rules(t *testing.T) {
	admin := fixtureAdmin()
	repo := newStubEmployeeRepo(admin, fixtureNurse())
	uc := NewEmployeeUsecase(testLogger(), repo)

	if err := uc.Delete(context.Background(), admin, admin.ID); err == nil {
		t.Fatal("expected self delete to be forbidden")
	}

	if err := uc.Delete(context.Background(), fixtureNurse(), admin.ID); err == nil {
		t.Fatal("expected non-admin delete to be forbidden")
	}

	if err := uc.Delete(context.Background(), admin, fixtureNurse().ID); err != nil {
		t.Fatalf("admin delete returned error: %v", err)
	}

	if err := uc.Delete(context.Background(), admin, 999); err != ErrEmployeeNotFound {
		t.Fatalf("expected ErrEmployeeNotFound, got %v", err)
	}
}

func TestEmployeeDelete_Referenced(t *testing.T) {
	repo := newStubEmployeeRepo(fixtureAdmin(), fixturePhysician())
	repo.deleteErr = &pgconn.PgError{Code: "23503", ConstraintName: "fk_appointments_physician"}
	uc := NewEmployeeUsecase(testLogger(), repo)

	if err := uc.Delete(context.Background(), fixtureAdmin(), fixturePhysician().ID); err != ErrEmployeeReferenced {
		t.Fatalf("expected ErrEmployeeReferenced, got %v", err)
	}
}

func TestEmployeeList_AdminAndReceptionistOnly(t *testing.T) {
	repo := newStubEmployeeRepo(fixtureAdmin(), fixturePhysician(), fixtureReceptionist())
	uc := NewEmployeeUsecase(testLogger(), repo)

	if _, _, err := uc.FindAll(context.Background(), fixturePhysician(), repository.EmployeeFilter{}); err == nil {
		t.Fatal("expected physician list to be forbidden")
	}

	results, total, err := uc.FindAll(context.Background(), fixtureReceptionist(), repository.EmployeeFilter{})
	if err != nil {
		t.Fatalf("receptionist list returned error: %v", err)
	}
	if total != 3 || len(results) != 3 {
		t.Errorf("expected 3 employees, got %d (total %d)", len(results), total)
	}
}
