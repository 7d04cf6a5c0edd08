package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
)

func seedEncounter(status entity.EncounterStatus) *entity.NursingEncounter {
	supervisorID := fixturePhysician().ID
	return &entity.NursingEncounter{
		ID:           1,
		PatientID:    1,
		NurseID:      fixtureNurse().ID,
		SupervisorID: &supervisorID,
		Kind:         entity.EncounterKindOutpatient,
		Reason:       "routine care",
		StartedAt:    time.Date(2026, 9, 3, 9, 0, 0, 0, time.UTC),
		Status:       status,
	}
}

func TestEncounterCreate_NurseSelfOnly(t *testing.T) {
	uc := NewEncounterUsecase(testLogger(), newStubEncounterRepo(), newStubPatientRepo(fixturePatient()),
		newStubEmployeeRepo(fixtureAdmin(), fixturePhysician(), fixtureNurse()))

	// Only nurses open encounters.
	if _, err := uc.Create(context.Background(), fixtureReceptionist(), &dto.CreateEncounterRequest{
		PatientID: 1, NurseID: fixtureNurse().ID, Reason: "care",
	}); err == nil {
		t.Fatal("expected receptionist create to be forbidden")
	}

	// And only in their own name.
	if _, err := uc.Create(context.Background(), fixtureNurse(), &dto.CreateEncounterRequest{
		PatientID: 1, NurseID: 42, Reason: "care",
	}); err != ErrNotOwnEncounter {
		t.Fatalf("expected ErrNotOwnEncounter, got %v", err)
	}

	created, err := uc.Create(context.Background(), fixtureNurse(), &dto.CreateEncounterRequest{
		PatientID: 1, NurseID: fixtureNurse().ID, Reason: "care",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Status != string(entity.EncounterStatusWaiting) {
		t.Errorf("expected waiting status, got %s", created.Status)
	}
}

func TestEncounterCreate_SupervisorMustBePhysician(t *testing.T) {
	uc := NewEncounterUsecase(testLogger(), newStubEncounterRepo(), newStubPatientRepo(fixturePatient()),
		newStubEmployeeRepo(fixtureAdmin(), fixturePhysician(), fixtureNurse(), fixtureReceptionist()))

	receptionistID := fixtureReceptionist().ID
	if _, err := uc.Create(context.Background(), fixtureNurse(), &dto.CreateEncounterRequest{
		PatientID: 1, NurseID: fixtureNurse().ID, SupervisorID: &receptionistID, Reason: "care",
	}); err != ErrSupervisorNotPhysician {
		t.Fatalf("expected ErrSupervisorNotPhysician, got %v", err)
	}
}

func TestEncounterTriage_OpensInProgress(t *testing.T) {
	uc := NewEncounterUsecase(testLogger(), newStubEncounterRepo(), newStubPatientRepo(fixturePatient()),
		newStubEmployeeRepo(fixtureNurse()))

	temp := 37.8
	weight := 82.0
	height := 178.0
	created, err := uc.Triage(context.Background(), fixtureNurse(), &dto.TriageRequest{
		PatientID:   1,
		NurseID:     fixtureNurse().ID,
		Reason:      "chest pain",
		Temperature: &temp,
		WeightKG:    &weight,
		HeightCM:    &height,
	})
	if err != nil {
		t.Fatalf("Triage returned error: %v", err)
	}
	if created.Kind != string(entity.EncounterKindTriage) {
		t.Errorf("expected triage kind, got %s", created.Kind)
	}
	if created.Status != string(entity.EncounterStatusInProgress) {
		t.Errorf("expected in_progress status, got %s", created.Status)
	}
	if created.BMI != 25.88 {
		t.Errorf("expected derived BMI 25.88, got %v", created.BMI)
	}
}

func TestEncounterStart_RequiresWaiting(t *testing.T) {
	uc := NewEncounterUsecase(testLogger(), newStubEncounterRepo(seedEncounter(entity.EncounterStatusWaiting)),
		newStubPatientRepo(), newStubEmployeeRepo())

	otherNurse := &entity.Employee{ID: 8, Role: entity.RoleNurse, COREN: "COREN-888"}
	if _, err := uc.Start(context.Background(), otherNurse, 1); err == nil {
		t.Fatal("expected other nurse start to be forbidden")
	}

	started, err := uc.Start(context.Background(), fixtureNurse(), 1)
	if err != nil {
		t.Fatalf("Start returned error: %v", err)
	}
	if started.Status != string(entity.EncounterStatusInProgress) {
		t.Errorf("expected in_progress, got %s", started.Status)
	}

	if _, err := uc.Start(context.Background(), fixtureNurse(), 1); err != ErrEncounterNotWaiting {
		t.Fatalf("expected ErrEncounterNotWaiting, got %v", err)
	}
}

func TestEncounterFinish_NurseOrSupervisor(t *testing.T) {
	repo := newStubEncounterRepo(seedEncounter(entity.EncounterStatusInProgress))
	uc := NewEncounterUsecase(testLogger(), repo, newStubPatientRepo(), newStubEmployeeRepo())

	otherPhysician := &entity.Employee{ID: 9, Role: entity.RolePhysician, CRM: "CRM-222"}
	if _, err := uc.Finish(context.Background(), otherPhysician, 1); err == nil {
		t.Fatal("expected non-supervising physician finish to be forbidden")
	}

	// The supervising physician may close it.
	finished, err := uc.Finish(context.Background(), fixturePhysician(), 1)
	if err != nil {
		t.Fatalf("supervisor Finish returned error: %v", err)
	}
	if finished.Status != string(entity.EncounterStatusFinished) {
		t.Errorf("expected finished status, got %s", finished.Status)
	}
	if finished.EndedAt == nil {
		t.Error("expected ended_at stamped")
	}

	if _, err := uc.Finish(context.Background(), fixturePhysician(), 1); err != ErrEncounterNotInProgress {
		t.Fatalf("expected ErrEncounterNotInProgress, got %v", err)
	}
}

func TestEncounterRecordVitals_ClosedEncounter(t *testing.T) {
	uc := NewEncounterUsecase(testLogger(), newStubEncounterRepo(seedEncounter(entity.EncounterStatusFinished)),
		newStubPatientRepo(), newStubEmployeeRepo())

	rate := 80
	if _, err := uc.RecordVitals(context.Background(), fixtureNurse(), 1, &dto.VitalsRequest{HeartRate: &rate}); err != ErrEncounterClosed {
		t.Fatalf("expected ErrEncounterClosed, got %v", err)
	}
}

func TestEncounterUpdate_SupervisorAllowed(t *testing.T) {
	uc := NewEncounterUsecase(testLogger(), newStubEncounterRepo(seedEncounter(entity.EncounterStatusInProgress)),
		newStubPatientRepo(), newStubEmployeeRepo(fixturePhysician()))

	updated, err := uc.Update(context.Background(), fixturePhysician(), 1, &dto.UpdateEncounterRequest{
		Procedures: strPtr("wound dressing"),
	})
	if err != nil {
		t.Fatalf("supervisor Update returned error: %v", err)
	}
	if updated.Procedures != "wound dressing" {
		t.Errorf("expected procedures updated, got %q", updated.Procedures)
	}

	// A receptionist never touches encounters.
	if _, err := uc.Update(context.Background(), fixtureReceptionist(), 1, &dto.UpdateEncounterRequest{}); err == nil {
		t.Fatal("expected receptionist update to be forbidden")
	}
}

func TestEncounterInProgress_NursePinned(t *testing.T) {
	other := seedEncounter(entity.EncounterStatusInProgress)
	other.ID = 2
	other.NurseID = 42
	repo := newStubEncounterRepo(seedEncounter(entity.EncounterStatusInProgress), other)
	uc := NewEncounterUsecase(testLogger(), repo, newStubPatientRepo(), newStubEmployeeRepo())

	// The nurse id argument is ignored for nurses.
	open, err := uc.FindInProgress(context.Background(), fixtureNurse(), 42)
	if err != nil {
		t.Fatalf("FindInProgress returned error: %v", err)
	}
	if len(open) != 1 || open[0].NurseID != fixtureNurse().ID {
		t.Errorf("expected only own open encounters, got %+v", open)
	}

	// An administrator sees everything.
	open, err = uc.FindInProgress(context.Background(), fixtureAdmin(), 0)
	if err != nil {
		t.Fatalf("admin FindInProgress returned error: %v", err)
	}
	if len(open) != 2 {
		t.Errorf("expected 2 open encounters, got %d", len(open))
	}
}

func TestEncounterDelete_AdminOnly(t *testing.T) {
	uc := NewEncounterUsecase(testLogger(), newStubEncounterRepo(seedEncounter(entity.EncounterStatusFinished)),
		newStubPatientRepo(), newStubEmployeeRepo())

	if err := uc.Delete(context.Background(), fixtureNurse(), 1); err == nil {
		t.Fatal("expected nurse delete to be forbidden")
	}
	if err := uc.Delete(context.Background(), fixtureAdmin(), 1); err != nil {
		t.Fatalf("admin delete returned error: %v", err)
	}
}
