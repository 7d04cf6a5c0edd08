package usecase

import (
	"context"
	"errors"
	"testing"
	"time"

	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/domain/repository"
)

func appointmentFixtureRepos() (*stubAppointmentRepo, *stubPatientRepo, *stubEmployeeRepo) {
	return newStubAppointmentRepo(),
		newStubPatientRepo(fixturePatient()),
		newStubEmployeeRepo(fixtureAdmin(), fixturePhysician(), fixtureNurse(), fixtureReceptionist())
}

func TestAppointmentCreate_ReceptionistStamped(t *testing.T) {
	appointments, patients, employees := appointmentFixtureRepos()
	uc := NewAppointmentUsecase(testLogger(), appointments, patients, employees)

	created, err := uc.Create(context.Background(), fixtureReceptionist(), &dto.CreateAppointmentRequest{
		PatientID:   1,
		PhysicianID: fixturePhysician().ID,
		ScheduledAt: "2026-09-01T10:00:00Z",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.ReceptionistID == nil || *created.ReceptionistID != fixtureReceptionist().ID {
		t.Errorf("expected receptionist stamped on appointment, got %+v", created.ReceptionistID)
	}
	if created.Status != string(entity.AppointmentStatusScheduled) {
		t.Errorf("unexpected initial status: %s", created.Status)
	}
}

func TestAppointmentCreate_DoubleBooking(t *testing.T) {
	appointments, patients, employees := appointmentFixtureRepos()
	uc := NewAppointmentUsecase(testLogger(), appointments, patients, employees)

	req := &dto.CreateAppointmentRequest{
		PatientID:   1,
		PhysicianID: fixturePhysician().ID,
		ScheduledAt: "2026-09-01T10:00:00Z",
	}
	if _, err := uc.Create(context.Background(), fixtureReceptionist(), req); err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}
	if _, err := uc.Create(context.Background(), fixtureReceptionist(), req); err != ErrScheduleConflict {
		t.Fatalf("expected ErrScheduleConflict, got %v", err)
	}
}

func TestAppointmentCreate_CancelledSlotReusable(t *testing.T) {
	appointments, patients, employees := appointmentFixtureRepos()
	uc := NewAppointmentUsecase(testLogger(), appointments, patients, employees)

	req := &dto.CreateAppointmentRequest{
		PatientID:   1,
		PhysicianID: fixturePhysician().ID,
		ScheduledAt: "2026-09-01T10:00:00Z",
	}
	first, err := uc.Create(context.Background(), fixtureReceptionist(), req)
	if err != nil {
		t.Fatalf("first Create returned error: %v", err)
	}
	if err := uc.Cancel(context.Background(), fixtureReceptionist(), first.ID); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if _, err := uc.Create(context.Background(), fixtureReceptionist(), req); err != nil {
		t.Fatalf("expected cancelled slot reusable, got %v", err)
	}
}

func TestAppointmentCreate_Validation(t *testing.T) {
	appointments, patients, employees := appointmentFixtureRepos()
	uc := NewAppointmentUsecase(testLogger(), appointments, patients, employees)

	// Physician reference must hold the physician role.
	if _, err := uc.Create(context.Background(), fixtureReceptionist(), &dto.CreateAppointmentRequest{
		PatientID: 1, PhysicianID: fixtureNurse().ID, ScheduledAt: "2026-09-01T10:00:00Z",
	}); err != ErrNotAPhysician {
		t.Fatalf("expected ErrNotAPhysician, got %v", err)
	}

	if _, err := uc.Create(context.Background(), fixtureReceptionist(), &dto.CreateAppointmentRequest{
		PatientID: 99, PhysicianID: fixturePhysician().ID, ScheduledAt: "2026-09-01T10:00:00Z",
	}); err != ErrPatientNotFound {
		t.Fatalf("expected ErrPatientNotFound, got %v", err)
	}

	// A nurse may not schedule at all.
	if _, err := uc.Create(context.Background(), fixtureNurse(), &dto.CreateAppointmentRequest{
		PatientID: 1, PhysicianID: fixturePhysician().ID, ScheduledAt: "2026-09-01T10:00:00Z",
	}); err == nil {
		t.Fatal("expected nurse create to be forbidden")
	}
}

func TestAppointmentRead_PhysicianOwnOnly(t *testing.T) {
	otherPhysician := &entity.Employee{ID: 9, Name: "Dr. Other", Login: "other", Email: "other@clinic.test", Role: entity.RolePhysician, CRM: "CRM-222"}
	appointments := newStubAppointmentRepo(&entity.Appointment{
		ID: 1, PatientID: 1, PhysicianID: fixturePhysician().ID,
		ScheduledAt: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		Status:      entity.AppointmentStatusScheduled,
	})
	uc := NewAppointmentUsecase(testLogger(), appointments, newStubPatientRepo(fixturePatient()), newStubEmployeeRepo())

	if _, err := uc.FindByID(context.Background(), otherPhysician, 1); err == nil {
		t.Fatal("expected other physician read to be forbidden")
	} else {
		var fe *ForbiddenError
		if !errors.As(err, &fe) {
			t.Fatalf("expected ForbiddenError, got %v", err)
		}
	}

	if _, err := uc.FindByID(context.Background(), fixturePhysician(), 1); err != nil {
		t.Fatalf("own read returned error: %v", err)
	}
	// Nurses and receptionists read freely.
	if _, err := uc.FindByID(context.Background(), fixtureNurse(), 1); err != nil {
		t.Fatalf("nurse read returned error: %v", err)
	}
}

func TestAppointmentList_PhysicianScopeForced(t *testing.T) {
	appointments := newStubAppointmentRepo()
	uc := NewAppointmentUsecase(testLogger(), appointments, newStubPatientRepo(), newStubEmployeeRepo())

	// The client asks for someone else's schedule; the forced scope wins.
	if _, _, err := uc.FindAll(context.Background(), fixturePhysician(), repository.AppointmentFilter{PhysicianID: 999}); err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if appointments.lastFilter.PhysicianID != fixturePhysician().ID {
		t.Errorf("expected physician pinned to own schedule, filter had %d", appointments.lastFilter.PhysicianID)
	}
}

func TestAppointmentUpdate_ReceptionistClinicalStrip(t *testing.T) {
	appointments := newStubAppointmentRepo(&entity.Appointment{
		ID: 1, PatientID: 1, PhysicianID: fixturePhysician().ID,
		ScheduledAt: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		Status:      entity.AppointmentStatusScheduled,
	})
	uc := NewAppointmentUsecase(testLogger(), appointments, newStubPatientRepo(fixturePatient()), newStubEmployeeRepo())

	updated, err := uc.Update(context.Background(), fixtureReceptionist(), 1, &dto.UpdateAppointmentRequest{
		Notes:        strPtr("patient called to confirm"),
		Diagnosis:    strPtr("should not land"),
		Prescription: strPtr("should not land"),
	})
	if err != nil {
		t.Fatalf("Update returned error: %v", err)
	}
	if updated.Notes != "patient called to confirm" {
		t.Errorf("expected notes updated, got %q", updated.Notes)
	}
	if updated.Diagnosis != "" || updated.Prescription != "" {
		t.Errorf("expected clinical fields stripped for receptionist, got diagnosis=%q prescription=%q", updated.Diagnosis, updated.Prescription)
	}

	// The responsible physician writes clinical fields.
	updated, err = uc.Update(context.Background(), fixturePhysician(), 1, &dto.UpdateAppointmentRequest{
		Diagnosis:    strPtr("hypertension"),
		Prescription: strPtr("losartan 50mg"),
	})
	if err != nil {
		t.Fatalf("physician Update returned error: %v", err)
	}
	if updated.Diagnosis != "hypertension" || updated.Prescription != "losartan 50mg" {
		t.Errorf("expected clinical fields written, got %+v", updated)
	}
}

func TestAppointmentCancel_Idempotence(t *testing.T) {
	appointments := newStubAppointmentRepo(&entity.Appointment{
		ID: 1, PatientID: 1, PhysicianID: fixturePhysician().ID,
		ScheduledAt: time.Date(2026, 9, 1, 10, 0, 0, 0, time.UTC),
		Status:      entity.AppointmentStatusScheduled,
	})
	uc := NewAppointmentUsecase(testLogger(), appointments, newStubPatientRepo(), newStubEmployeeRepo())

	// An administrator cannot cancel; only physician (own) and receptionist.
	if err := uc.Cancel(context.Background(), fixtureAdmin(), 1); err == nil {
		t.Fatal("expected admin cancel to be forbidden")
	}

	if err := uc.Cancel(context.Background(), fixturePhysician(), 1); err != nil {
		t.Fatalf("Cancel returned error: %v", err)
	}
	if err := uc.Cancel(context.Background(), fixturePhysician(), 1); err != ErrAppointmentAlreadyCancelled {
		t.Fatalf("expected ErrAppointmentAlreadyCancelled, got %v", err)
	}
}

func TestAppointmentToday_PhysicianPinned(t *testing.T) {
	appointments := newStubAppointmentRepo(
		&entity.Appointment{ID: 1, PatientID: 1, PhysicianID: fixturePhysician().ID, ScheduledAt: time.Now(), Status: entity.AppointmentStatusScheduled},
		&entity.Appointment{ID: 2, PatientID: 1, PhysicianID: 42, ScheduledAt: time.Now(), Status: entity.AppointmentStatusScheduled},
	)
	uc := NewAppointmentUsecase(testLogger(), appointments, newStubPatientRepo(), newStubEmployeeRepo())

	// The physician id argument is ignored for physicians.
	today, err := uc.FindToday(context.Background(), fixturePhysician(), 42)
	if err != nil {
		t.Fatalf("FindToday returned error: %v", err)
	}
	for _, a := range today {
		if a.PhysicianID != fixturePhysician().ID {
			t.Errorf("expected only own appointments, got physician %d", a.PhysicianID)
		}
	}
}
