package usecase

import (
	"context"
	"io"
	"time"

	"clinic-management-api/internal/domain/entity"
	"clinic-management-api/internal/domain/repository"

	"github.com/sirupsen/logrus"
)

func testLogger() *logrus.Logger {
	log := logrus.New()
	log.SetOutput(io.Discard)
	return log
}

// --- employee stub ---

type stubEmployeeRepo struct {
	employees map[uint]*entity.Employee
	nextID    uint
	deleteErr error
}

func newStubEmployeeRepo(seed ...*entity.Employee) *stubEmployeeRepo {
	r := &stubEmployeeRepo{employees: make(map[uint]*entity.Employee), nextID: 1}
	for _, e := range seed {
		if e.ID == 0 {
			e.ID = r.nextID
		}
		if e.ID >= r.nextID {
			r.nextID = e.ID + 1
		}
		clone := *e
		r.employees[e.ID] = &clone
	}
	return r
}

func cloneEmployee(e *entity.Employee) *entity.Employee {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}

func (r *stubEmployeeRepo) Create(_ context.Context, employee *entity.Employee) error {
	employee.ID = r.nextID
	r.nextID++
	r.employees[employee.ID] = cloneEmployee(employee)
	return nil
}

func (r *stubEmployeeRepo) FindByID(_ context.Context, id uint) (*entity.Employee, error) {
	return cloneEmployee(r.employees[id]), nil
}

func (r *stubEmployeeRepo) FindByLogin(_ context.Context, login string) (*entity.Employee, error) {
	for _, e := range r.employees {
		if e.Login == login {
			return cloneEmployee(e), nil
		}
	}
	return nil, nil
}

func (r *stubEmployeeRepo) FindByEmail(_ context.Context, email string) (*entity.Employee, error) {
	for _, e := range r.employees {
		if e.Email == email {
			return cloneEmployee(e), nil
		}
	}
	return nil, nil
}

func (r *stubEmployeeRepo) FindByLicense(_ context.Context, column, value string) (*entity.Employee, error) {
	for _, e := range r.employees {
		var license string
		switch column {
		case "crm":
			license = e.CRM
		case "coren":
			license = e.COREN
		case "crf":
			license = e.CRF
		}
		if license != "" && license == value {
			return cloneEmployee(e), nil
		}
	}
	return nil, nil
}

func (r *stubEmployeeRepo) FindAll(_ context.Context, _ repository.EmployeeFilter) ([]entity.Employee, int64, error) {
	out := make([]entity.Employee, 0, len(r.employees))
	for _, e := range r.employees {
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *stubEmployeeRepo) FindPhysicians(_ context.Context) ([]entity.Employee, error) {
	var out []entity.Employee
	for _, e := range r.employees {
		if e.Role == entity.RolePhysician {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubEmployeeRepo) Update(_ context.Context, employee *entity.Employee) error {
	r.employees[employee.ID] = cloneEmployee(employee)
	return nil
}

func (r *stubEmployeeRepo) Delete(_ context.Context, id uint) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.employees, id)
	return nil
}

// --- patient stub ---

type stubPatientRepo struct {
	patients  map[uint]*entity.Patient
	nextID    uint
	deleteErr error
}

func newStubPatientRepo(seed ...*entity.Patient) *stubPatientRepo {
	r := &stubPatientRepo{patients: make(map[uint]*entity.Patient), nextID: 1}
	for _, p := range seed {
		if p.ID == 0 {
			p.ID = r.nextID
		}
		if p.ID >= r.nextID {
			r.nextID = p.ID + 1
		}
		clone := *p
		r.patients[p.ID] = &clone
	}
	return r
}

func clonePatient(p *entity.Patient) *entity.Patient {
	if p == nil {
		return nil
	}
	clone := *p
	return &clone
}

func (r *stubPatientRepo) Create(_ context.Context, patient *entity.Patient) error {
	patient.ID = r.nextID
	r.nextID++
	r.patients[patient.ID] = clonePatient(patient)
	return nil
}

func (r *stubPatientRepo) FindByID(_ context.Context, id uint) (*entity.Patient, error) {
	return clonePatient(r.patients[id]), nil
}

func (r *stubPatientRepo) FindByCPF(_ context.Context, cpf string) (*entity.Patient, error) {
	for _, p := range r.patients {
		if p.CPF == cpf {
			return clonePatient(p), nil
		}
	}
	return nil, nil
}

func (r *stubPatientRepo) FindByRG(_ context.Context, rg string) (*entity.Patient, error) {
	for _, p := range r.patients {
		if p.RG == rg {
			return clonePatient(p), nil
		}
	}
	return nil, nil
}

func (r *stubPatientRepo) FindAll(_ context.Context, _ repository.PatientFilter) ([]entity.Patient, int64, error) {
	out := make([]entity.Patient, 0, len(r.patients))
	for _, p := range r.patients {
		out = append(out, *p)
	}
	return out, int64(len(out)), nil
}

func (r *stubPatientRepo) SearchByCPF(_ context.Context, cpf string) ([]entity.Patient, error) {
	var out []entity.Patient
	for _, p := range r.patients {
		if p.CPF == cpf {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPatientRepo) SearchByName(_ context.Context, name string) ([]entity.Patient, error) {
	var out []entity.Patient
	for _, p := range r.patients {
		if p.Name == name {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (r *stubPatientRepo) Update(_ context.Context, patient *entity.Patient) error {
	r.patients[patient.ID] = clonePatient(patient)
	return nil
}

func (r *stubPatientRepo) Delete(_ context.Context, id uint) error {
	if r.deleteErr != nil {
		return r.deleteErr
	}
	delete(r.patients, id)
	return nil
}

// --- appointment stub ---

type stubAppointmentRepo struct {
	appointments map[uint]*entity.Appointment
	nextID       uint
	lastFilter   repository.AppointmentFilter
}

func newStubAppointmentRepo(seed ...*entity.Appointment) *stubAppointmentRepo {
	r := &stubAppointmentRepo{appointments: make(map[uint]*entity.Appointment), nextID: 1}
	for _, a := range seed {
		if a.ID == 0 {
			a.ID = r.nextID
		}
		if a.ID >= r.nextID {
			r.nextID = a.ID + 1
		}
		clone := *a
		r.appointments[a.ID] = &clone
	}
	return r
}

func cloneAppointment(a *entity.Appointment) *entity.Appointment {
	if a == nil {
		return nil
	}
	clone := *a
	return &clone
}

func (r *stubAppointmentRepo) Create(_ context.Context, appointment *entity.Appointment) error {
	appointment.ID = r.nextID
	r.nextID++
	r.appointments[appointment.ID] = cloneAppointment(appointment)
	return nil
}

func (r *stubAppointmentRepo) FindByID(_ context.Context, id uint) (*entity.Appointment, error) {
	return cloneAppointment(r.appointments[id]), nil
}

func (r *stubAppointmentRepo) FindAll(_ context.Context, filter repository.AppointmentFilter) ([]entity.Appointment, int64, error) {
	r.lastFilter = filter
	var out []entity.Appointment
	for _, a := range r.appointments {
		if filter.PhysicianID != 0 && a.PhysicianID != filter.PhysicianID {
			continue
		}
		if filter.PatientID != 0 && a.PatientID != filter.PatientID {
			continue
		}
		out = append(out, *a)
	}
	return out, int64(len(out)), nil
}

func (r *stubAppointmentRepo) FindCollision(_ context.Context, physicianID uint, at time.Time) (*entity.Appointment, error) {
	for _, a := range r.appointments {
		if a.PhysicianID == physicianID && a.ScheduledAt.Equal(at) && !a.IsCancelled() {
			return cloneAppointment(a), nil
		}
	}
	return nil, nil
}

func (r *stubAppointmentRepo) FindTodayByPhysician(_ context.Context, physicianID uint) ([]entity.Appointment, error) {
	var out []entity.Appointment
	for _, a := range r.appointments {
		if a.PhysicianID == physicianID && !a.IsCancelled() {
			out = append(out, *a)
		}
	}
	return out, nil
}

func (r *stubAppointmentRepo) Update(_ context.Context, appointment *entity.Appointment) error {
	r.appointments[appointment.ID] = cloneAppointment(appointment)
	return nil
}

func (r *stubAppointmentRepo) Cancel(_ context.Context, id uint) (int64, error) {
	a, ok := r.appointments[id]
	if !ok || a.IsCancelled() {
		return 0, nil
	}
	a.Cancel()
	return 1, nil
}

// --- exam stub ---

type stubExamRepo struct {
	exams  map[uint]*entity.Exam
	nextID uint
}

func newStubExamRepo(seed ...*entity.Exam) *stubExamRepo {
	r := &stubExamRepo{exams: make(map[uint]*entity.Exam), nextID: 1}
	for _, e := range seed {
		if e.ID == 0 {
			e.ID = r.nextID
		}
		if e.ID >= r.nextID {
			r.nextID = e.ID + 1
		}
		clone := *e
		r.exams[e.ID] = &clone
	}
	return r
}

func cloneExam(e *entity.Exam) *entity.Exam {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}

func (r *stubExamRepo) Create(_ context.Context, exam *entity.Exam) error {
	exam.ID = r.nextID
	r.nextID++
	r.exams[exam.ID] = cloneExam(exam)
	return nil
}

func (r *stubExamRepo) FindByID(_ context.Context, id uint) (*entity.Exam, error) {
	return cloneExam(r.exams[id]), nil
}

func (r *stubExamRepo) FindAll(_ context.Context, filter repository.ExamFilter) ([]entity.Exam, int64, error) {
	var out []entity.Exam
	for _, e := range r.exams {
		if filter.NurseID != 0 && e.AssignedNurseID() != filter.NurseID {
			continue
		}
		if filter.PhysicianID != 0 && e.PhysicianID != filter.PhysicianID {
			continue
		}
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *stubExamRepo) FindByPatient(_ context.Context, patientID uint) ([]entity.Exam, error) {
	var out []entity.Exam
	for _, e := range r.exams {
		if e.PatientID == patientID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubExamRepo) FindByPhysician(_ context.Context, physicianID uint, _ *time.Time) ([]entity.Exam, error) {
	var out []entity.Exam
	for _, e := range r.exams {
		if e.PhysicianID == physicianID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubExamRepo) FindByNurse(_ context.Context, nurseID uint, _ *time.Time) ([]entity.Exam, error) {
	var out []entity.Exam
	for _, e := range r.exams {
		if e.AssignedNurseID() == nurseID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubExamRepo) Update(_ context.Context, exam *entity.Exam) error {
	r.exams[exam.ID] = cloneExam(exam)
	return nil
}

func (r *stubExamRepo) Delete(_ context.Context, id uint) error {
	delete(r.exams, id)
	return nil
}

// --- encounter stub ---

type stubEncounterRepo struct {
	encounters map[uint]*entity.NursingEncounter
	nextID     uint
}

func newStubEncounterRepo(seed ...*entity.NursingEncounter) *stubEncounterRepo {
	r := &stubEncounterRepo{encounters: make(map[uint]*entity.NursingEncounter), nextID: 1}
	for _, e := range seed {
		if e.ID == 0 {
			e.ID = r.nextID
		}
		if e.ID >= r.nextID {
			r.nextID = e.ID + 1
		}
		clone := *e
		r.encounters[e.ID] = &clone
	}
	return r
}

func cloneEncounter(e *entity.NursingEncounter) *entity.NursingEncounter {
	if e == nil {
		return nil
	}
	clone := *e
	return &clone
}

func (r *stubEncounterRepo) Create(_ context.Context, encounter *entity.NursingEncounter) error {
	encounter.ID = r.nextID
	r.nextID++
	r.encounters[encounter.ID] = cloneEncounter(encounter)
	return nil
}

func (r *stubEncounterRepo) FindByID(_ context.Context, id uint) (*entity.NursingEncounter, error) {
	return cloneEncounter(r.encounters[id]), nil
}

func (r *stubEncounterRepo) FindAll(_ context.Context, filter repository.EncounterFilter) ([]entity.NursingEncounter, int64, error) {
	var out []entity.NursingEncounter
	for _, e := range r.encounters {
		if filter.NurseID != 0 && e.NurseID != filter.NurseID {
			continue
		}
		out = append(out, *e)
	}
	return out, int64(len(out)), nil
}

func (r *stubEncounterRepo) FindByPatient(_ context.Context, patientID uint) ([]entity.NursingEncounter, error) {
	var out []entity.NursingEncounter
	for _, e := range r.encounters {
		if e.PatientID == patientID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubEncounterRepo) FindByNurse(_ context.Context, nurseID uint, _ *time.Time) ([]entity.NursingEncounter, error) {
	var out []entity.NursingEncounter
	for _, e := range r.encounters {
		if e.NurseID == nurseID {
			out = append(out, *e)
		}
	}
	return out, nil
}

func (r *stubEncounterRepo) FindInProgress(_ context.Context, nurseID uint) ([]entity.NursingEncounter, error) {
	var out []entity.NursingEncounter
	for _, e := range r.encounters {
		if e.Status != entity.EncounterStatusInProgress {
			continue
		}
		if nurseID != 0 && e.NurseID != nurseID {
			continue
		}
		out = append(out, *e)
	}
	return out, nil
}

func (r *stubEncounterRepo) Update(_ context.Context, encounter *entity.NursingEncounter) error {
	r.encounters[encounter.ID] = cloneEncounter(encounter)
	return nil
}

func (r *stubEncounterRepo) Delete(_ context.Context, id uint) error {
	delete(r.encounters, id)
	return nil
}

// --- shared fixtures ---

func fixtureAdmin() *entity.Employee {
	return &entity.Employee{ID: 1, Name: "Alice Admin", Login: "alice", Email: "alice@clinic.test", Role: entity.RoleAdministrator}
}

func fixturePhysician() *entity.Employee {
	return &entity.Employee{ID: 2, Name: "Paulo Souza", Login: "paulo", Email: "paulo@clinic.test", Role: entity.RolePhysician, CRM: "CRM-12345", Specialty: "Cardiology"}
}

func fixtureNurse() *entity.Employee {
	return &entity.Employee{ID: 3, Name: "Nadia Lima", Login: "nadia", Email: "nadia@clinic.test", Role: entity.RoleNurse, COREN: "COREN-9876"}
}

func fixtureReceptionist() *entity.Employee {
	return &entity.Employee{ID: 4, Name: "Rita Costa", Login: "rita", Email: "rita@clinic.test", Role: entity.RoleReceptionist}
}

func fixturePatient() *entity.Patient {
	return &entity.Patient{ID: 1, Name: "Carlos Pereira", RG: "123456", CPF: "11122233344", Sex: entity.SexMale, BirthDate: time.Date(1980, 5, 10, 0, 0, 0, 0, time.UTC)}
}
