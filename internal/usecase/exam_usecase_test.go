package usecase

import (
	"context"
	"testing"
	"time"

	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/domain/repository"
)

func seedExam() *entity.Exam {
	nurseID := fixtureNurse().ID
	return &entity.Exam{
		ID:          1,
		PatientID:   1,
		PhysicianID: fixturePhysician().ID,
		NurseID:     &nurseID,
		Name:        "Complete blood count",
		Kind:        entity.ExamKindLaboratory,
		ScheduledAt: time.Date(2026, 9, 2, 8, 0, 0, 0, time.UTC),
		Status:      entity.ExamStatusScheduled,
	}
}

func TestExamEnterResult_ResponsiblePhysicianOnly(t *testing.T) {
	exams := newStubExamRepo(seedExam())
	uc := NewExamUsecase(testLogger(), exams, newStubPatientRepo(fixturePatient()), newStubEmployeeRepo())

	otherPhysician := &entity.Employee{ID: 9, Role: entity.RolePhysician, CRM: "CRM-222"}
	req := &dto.ExamResultRequest{Result: "normal", MedicalReport: "no findings"}

	if _, err := uc.EnterResult(context.Background(), otherPhysician, 1, req); err == nil {
		t.Fatal("expected other physician to be forbidden")
	}
	if _, err := uc.EnterResult(context.Background(), fixtureAdmin(), 1, req); err == nil {
		t.Fatal("expected admin to be forbidden, result entry is clinical")
	}
	if _, err := uc.EnterResult(context.Background(), fixtureNurse(), 1, req); err == nil {
		t.Fatal("expected nurse to be forbidden")
	}

	updated, err := uc.EnterResult(context.Background(), fixturePhysician(), 1, req)
	if err != nil {
		t.Fatalf("EnterResult returned error: %v", err)
	}
	if updated.Status != string(entity.ExamStatusResultAvailable) {
		t.Errorf("expected result_available status, got %s", updated.Status)
	}
	if updated.Result != "normal" || updated.ResultAt == nil {
		t.Errorf("expected result recorded with timestamp, got %+v", updated)
	}
}

func TestExamEnterResult_CancelledExam(t *testing.T) {
	exam := seedExam()
	exam.Status = entity.ExamStatusCancelled
	uc := NewExamUsecase(testLogger(), newStubExamRepo(exam), newStubPatientRepo(), newStubEmployeeRepo())

	if _, err := uc.EnterResult(context.Background(), fixturePhysician(), 1, &dto.ExamResultRequest{Result: "late"}); err != ErrExamCancelled {
		t.Fatalf("expected ErrExamCancelled, got %v", err)
	}
}

func TestExamUpdateStatus_NurseOwnOnly(t *testing.T) {
	exams := newStubExamRepo(seedExam())
	uc := NewExamUsecase(testLogger(), exams, newStubPatientRepo(), newStubEmployeeRepo())

	otherNurse := &entity.Employee{ID: 8, Role: entity.RoleNurse, COREN: "COREN-888"}
	if _, err := uc.UpdateStatus(context.Background(), otherNurse, 1, "in_progress"); err == nil {
		t.Fatal("expected unassigned nurse to be forbidden")
	}

	updated, err := uc.UpdateStatus(context.Background(), fixtureNurse(), 1, "in_progress")
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if updated.Status != string(entity.ExamStatusInProgress) {
		t.Errorf("unexpected status: %s", updated.Status)
	}

	if _, err := uc.UpdateStatus(context.Background(), fixtureNurse(), 1, "bogus"); err != ErrInvalidExamStatus {
		t.Fatalf("expected ErrInvalidExamStatus, got %v", err)
	}
}

func TestExamUpdateStatus_FinishedStampsPerformedAt(t *testing.T) {
	uc := NewExamUsecase(testLogger(), newStubExamRepo(seedExam()), newStubPatientRepo(), newStubEmployeeRepo())

	updated, err := uc.UpdateStatus(context.Background(), fixtureReceptionist(), 1, "finished")
	if err != nil {
		t.Fatalf("UpdateStatus returned error: %v", err)
	}
	if updated.PerformedAt == nil {
		t.Error("expected performed_at stamped on finish")
	}
}

func TestExamRead_NurseOwnOnly(t *testing.T) {
	uc := NewExamUsecase(testLogger(), newStubExamRepo(seedExam()), newStubPatientRepo(), newStubEmployeeRepo())

	otherNurse := &entity.Employee{ID: 8, Role: entity.RoleNurse, COREN: "COREN-888"}
	if _, err := uc.FindByID(context.Background(), otherNurse, 1); err == nil {
		t.Fatal("expected unassigned nurse read to be forbidden")
	}
	if _, err := uc.FindByID(context.Background(), fixtureNurse(), 1); err != nil {
		t.Fatalf("assigned nurse read returned error: %v", err)
	}
	if _, err := uc.FindByID(context.Background(), fixtureReceptionist(), 1); err != nil {
		t.Fatalf("receptionist read returned error: %v", err)
	}
}

func TestExamList_NurseScopeForced(t *testing.T) {
	otherNurseID := uint(8)
	exams := newStubExamRepo(
		seedExam(),
		&entity.Exam{ID: 2, PatientID: 1, PhysicianID: fixturePhysician().ID, NurseID: &otherNurseID, Name: "ECG", ScheduledAt: time.Now(), Status: entity.ExamStatusScheduled},
	)
	uc := NewExamUsecase(testLogger(), exams, newStubPatientRepo(), newStubEmployeeRepo())

	results, _, err := uc.FindAll(context.Background(), fixtureNurse(), repository.ExamFilter{})
	if err != nil {
		t.Fatalf("FindAll returned error: %v", err)
	}
	if len(results) != 1 || results[0].ID != 1 {
		t.Errorf("expected only own exam in nurse listing, got %+v", results)
	}
}

func TestExamCreate_References(t *testing.T) {
	employees := newStubEmployeeRepo(fixtureAdmin(), fixturePhysician(), fixtureNurse(), fixtureReceptionist())
	uc := NewExamUsecase(testLogger(), newStubExamRepo(), newStubPatientRepo(fixturePatient()), employees)

	nurseID := fixtureNurse().ID
	created, err := uc.Create(context.Background(), fixturePhysician(), &dto.CreateExamRequest{
		PatientID:   1,
		PhysicianID: fixturePhysician().ID,
		NurseID:     &nurseID,
		Name:        "Echocardiogram",
		Kind:        "cardiology",
		ScheduledAt: "2026-09-02T08:00:00Z",
	})
	if err != nil {
		t.Fatalf("Create returned error: %v", err)
	}
	if created.Kind != "cardiology" || created.Status != string(entity.ExamStatusScheduled) {
		t.Errorf("unexpected created exam: %+v", created)
	}

	// The assigned nurse must hold the nurse role.
	receptionistID := fixtureReceptionist().ID
	if _, err := uc.Create(context.Background(), fixturePhysician(), &dto.CreateExamRequest{
		PatientID:   1,
		PhysicianID: fixturePhysician().ID,
		NurseID:     &receptionistID,
		Name:        "X-ray",
		ScheduledAt: "2026-09-02T08:00:00Z",
	}); err != ErrNotANurse {
		t.Fatalf("expected ErrNotANurse, got %v", err)
	}
}

func TestExamDelete_AdminOnly(t *testing.T) {
	uc := NewExamUsecase(testLogger(), newStubExamRepo(seedExam()), newStubPatientRepo(), newStubEmployeeRepo())

	if err := uc.Delete(context.Background(), fixturePhysician(), 1); err == nil {
		t.Fatal("expected physician delete to be forbidden")
	}
	if err := uc.Delete(context.Background(), fixtureAdmin(), 1); err != nil {
		t.Fatalf("admin delete returned error: %v", err)
	}
}
