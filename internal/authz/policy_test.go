package authz

import (
	"testing"

	"clinic-management-api/internal/domain/entity"
)

func employee(id uint, role entity.Role) *entity.Employee {
	return &entity.Employee{ID: id, Role: role}
}

func TestAuthorize(t *testing.T) {
	tests := []struct {
		name    string
		caller  *entity.Employee
		action  Action
		allowed bool
	}{
		{
			name:    "nil caller denied",
			caller:  nil,
			action:  Action{Resource: ResourcePatients, Operation: OpRead},
			allowed: false,
		},
		{
			name:    "any role reads patients",
			caller:  employee(5, entity.RolePharmacist),
			action:  Action{Resource: ResourcePatients, Operation: OpRead},
			allowed: true,
		},
		{
			name:    "nurse cannot create patients",
			caller:  employee(3, entity.RoleNurse),
			action:  Action{Resource: ResourcePatients, Operation: OpCreate},
			allowed: false,
		},
		{
			name:    "receptionist creates patients",
			caller:  employee(4, entity.RoleReceptionist),
			action:  Action{Resource: ResourcePatients, Operation: OpCreate},
			allowed: true,
		},
		{
			name:    "employee self read allowed",
			caller:  employee(3, entity.RoleNurse),
			action:  Action{Resource: ResourceEmployees, Operation: OpRead, Target: Target{EmployeeID: 3}},
			allowed: true,
		},
		{
			name:    "employee cross read denied",
			caller:  employee(3, entity.RoleNurse),
			action:  Action{Resource: ResourceEmployees, Operation: OpRead, Target: Target{EmployeeID: 4}},
			allowed: false,
		},
		{
			name:    "admin reads any employee",
			caller:  employee(1, entity.RoleAdministrator),
			action:  Action{Resource: ResourceEmployees, Operation: OpRead, Target: Target{EmployeeID: 4}},
			allowed: true,
		},
		{
			name:    "admin cannot delete own account",
			caller:  employee(1, entity.RoleAdministrator),
			action:  Action{Resource: ResourceEmployees, Operation: OpDelete, Target: Target{EmployeeID: 1}},
			allowed: false,
		},
		{
			name:    "admin deletes other employee",
			caller:  employee(1, entity.RoleAdministrator),
			action:  Action{Resource: ResourceEmployees, Operation: OpDelete, Target: Target{EmployeeID: 2}},
			allowed: true,
		},
		{
			name:    "physician reads own appointment",
			caller:  employee(2, entity.RolePhysician),
			action:  Action{Resource: ResourceAppointments, Operation: OpRead, Target: Target{PhysicianID: 2}},
			allowed: true,
		},
		{
			name:    "physician cannot read colleague appointment",
			caller:  employee(2, entity.RolePhysician),
			action:  Action{Resource: ResourceAppointments, Operation: OpRead, Target: Target{PhysicianID: 9}},
			allowed: false,
		},
		{
			name:    "admin cannot cancel appointments",
			caller:  employee(1, entity.RoleAdministrator),
			action:  Action{Resource: ResourceAppointments, Operation: OpCancel, Target: Target{PhysicianID: 2}},
			allowed: false,
		},
		{
			name:    "receptionist cancels any appointment",
			caller:  employee(4, entity.RoleReceptionist),
			action:  Action{Resource: ResourceAppointments, Operation: OpCancel, Target: Target{PhysicianID: 2}},
			allowed: true,
		},
		{
			name:    "nurse reads only own exam",
			caller:  employee(3, entity.RoleNurse),
			action:  Action{Resource: ResourceExams, Operation: OpRead, Target: Target{NurseID: 8}},
			allowed: false,
		},
		{
			name:    "only responsible physician enters result",
			caller:  employee(9, entity.RolePhysician),
			action:  Action{Resource: ResourceExams, Operation: OpEnterResult, Target: Target{PhysicianID: 2}},
			allowed: false,
		},
		{
			name:    "responsible physician enters result",
			caller:  employee(2, entity.RolePhysician),
			action:  Action{Resource: ResourceExams, Operation: OpEnterResult, Target: Target{PhysicianID: 2}},
			allowed: true,
		},
		{
			name:    "admin cannot enter exam result",
			caller:  employee(1, entity.RoleAdministrator),
			action:  Action{Resource: ResourceExams, Operation: OpEnterResult, Target: Target{PhysicianID: 1}},
			allowed: false,
		},
		{
			name:    "supervising physician finishes encounter",
			caller:  employee(2, entity.RolePhysician),
			action:  Action{Resource: ResourceEncounters, Operation: OpFinish, Target: Target{NurseID: 3, SupervisorID: 2}},
			allowed: true,
		},
		{
			name:    "unrelated physician cannot finish encounter",
			caller:  employee(9, entity.RolePhysician),
			action:  Action{Resource: ResourceEncounters, Operation: OpFinish, Target: Target{NurseID: 3, SupervisorID: 2}},
			allowed: false,
		},
		{
			name:    "responsible nurse finishes encounter",
			caller:  employee(3, entity.RoleNurse),
			action:  Action{Resource: ResourceEncounters, Operation: OpFinish, Target: Target{NurseID: 3}},
			allowed: true,
		},
		{
			name:    "only nurses create encounters",
			caller:  employee(2, entity.RolePhysician),
			action:  Action{Resource: ResourceEncounters, Operation: OpCreate},
			allowed: false,
		},
		{
			name:    "unknown operation denied",
			caller:  employee(1, entity.RoleAdministrator),
			action:  Action{Resource: ResourcePatients, Operation: OpEnterResult},
			allowed: false,
		},
		{
			name:    "unknown resource denied",
			caller:  employee(1, entity.RoleAdministrator),
			action:  Action{Resource: "invoices", Operation: OpRead},
			allowed: false,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			decision := Authorize(tt.caller, tt.action)
			if decision.Allowed != tt.allowed {
				t.Errorf("Authorize() = %v (%q), want allowed=%v", decision.Allowed, decision.Reason, tt.allowed)
			}
			if !decision.Allowed && decision.Reason == "" {
				t.Error("denial carried no reason")
			}
		})
	}
}

func TestListScope(t *testing.T) {
	physician := employee(2, entity.RolePhysician)
	nurse := employee(3, entity.RoleNurse)

	if s := ListScope(physician, ResourceAppointments); s.PhysicianID != 2 {
		t.Errorf("physician appointment scope = %+v, want pinned to caller", s)
	}
	if s := ListScope(physician, ResourceExams); s != (Scope{}) {
		t.Errorf("physician exam scope = %+v, want unrestricted", s)
	}
	if s := ListScope(nurse, ResourceExams); s.NurseID != 3 {
		t.Errorf("nurse exam scope = %+v, want pinned to caller", s)
	}
	if s := ListScope(employee(1, entity.RoleAdministrator), ResourceAppointments); s != (Scope{}) {
		t.Errorf("admin scope = %+v, want unrestricted", s)
	}
	if s := ListScope(nil, ResourceAppointments); s != (Scope{}) {
		t.Errorf("nil caller scope = %+v, want zero", s)
	}
}
