// Package authz is the authorization policy engine. Every resource operation
// is checked here against role-keyed rule tables: a coarse role check first,
// then the ownership clause declared for the caller's role, if any. Rules are
// pure functions of the caller and the stored target; nothing is persisted.
package authz

import (
	"fmt"
	"sort"
	"strings"

	"clinic-management-api/internal/domain/entity"
)

// Resource identifies a protected resource kind.
type Resource string

const (
	ResourcePatients     Resource = "patients"
	ResourceEmployees    Resource = "employees"
	ResourceAppointments Resource = "appointments"
	ResourceExams        Resource = "exams"
	ResourceEncounters   Resource = "encounters"
)

// Operation identifies what the caller wants to do with the resource.
type Operation string

const (
	OpList         Operation = "list"
	OpRead         Operation = "read"
	OpCreate       Operation = "create"
	OpUpdate       Operation = "update"
	OpDelete       Operation = "delete"
	OpCancel       Operation = "cancel"
	OpEnterResult  Operation = "enter_result"
	OpUpdateStatus Operation = "update_status"
	OpRecordVitals Operation = "record_vitals"
	OpStart        Operation = "start"
	OpFinish       Operation = "finish"
)

// Target carries the reference-employee fields of the stored resource
// instance the action addresses. Only the fields meaningful for the resource
// kind are set; zero means unassigned.
type Target struct {
	EmployeeID   uint // employees: id of the record being accessed
	PhysicianID  uint // appointments, exams: responsible physician
	NurseID      uint // exams, encounters: responsible nurse
	SupervisorID uint // encounters: supervising physician
}

// Action is a resource kind, an operation and the ownership context of the
// specific target instance.
type Action struct {
	Resource  Resource
	Operation Operation
	Target    Target
}

// Decision is the outcome of an authorization check.
type Decision struct {
	Allowed bool
	Reason  string
}

func allow() Decision {
	return Decision{Allowed: true}
}

func deny(reason string) Decision {
	return Decision{Allowed: false, Reason: reason}
}

// ownershipFn compares the caller against the target's reference fields.
type ownershipFn func(caller *entity.Employee, t Target) bool

func ownPhysician(caller *entity.Employee, t Target) bool {
	return t.PhysicianID == caller.ID
}

func ownNurse(caller *entity.Employee, t Target) bool {
	return t.NurseID == caller.ID
}

func ownSupervisor(caller *entity.Employee, t Target) bool {
	return t.SupervisorID == caller.ID
}

func selfEmployee(caller *entity.Employee, t Target) bool {
	return t.EmployeeID == caller.ID
}

func notSelfEmployee(caller *entity.Employee, t Target) bool {
	return t.EmployeeID != caller.ID
}

// rule maps each permitted role to its ownership clause. A nil clause means
// the role is unconditionally permitted; roles missing from the map are
// denied before any ownership evaluation.
type rule struct {
	roles           map[entity.Role]ownershipFn
	ownershipReason string
}

// unconditional builds a rule permitting the given roles with no ownership
// clause on any of them.
func unconditional(roles ...entity.Role) rule {
	m := make(map[entity.Role]ownershipFn, len(roles))
	for _, r := range roles {
		m[r] = nil
	}
	return rule{roles: m}
}

// anyRole permits every role without conditions.
func anyRole() rule {
	return unconditional(entity.ValidRoles...)
}

var rules = map[Resource]map[Operation]rule{
	ResourcePatients: {
		OpList:   anyRole(),
		OpRead:   anyRole(),
		OpCreate: unconditional(entity.RoleReceptionist, entity.RoleAdministrator),
		OpUpdate: unconditional(entity.RoleReceptionist, entity.RoleAdministrator),
		OpDelete: unconditional(entity.RoleReceptionist, entity.RoleAdministrator),
	},
	ResourceEmployees: {
		OpList: unconditional(entity.RoleAdministrator, entity.RoleReceptionist),
		OpRead: {
			roles: map[entity.Role]ownershipFn{
				entity.RoleAdministrator: nil,
				entity.RolePhysician:     selfEmployee,
				entity.RoleNurse:         selfEmployee,
				entity.RoleReceptionist:  selfEmployee,
				entity.RolePharmacist:    selfEmployee,
			},
			ownershipReason: "you may only view your own record",
		},
		OpCreate: unconditional(entity.RoleAdministrator),
		OpUpdate: {
			roles: map[entity.Role]ownershipFn{
				entity.RoleAdministrator: nil,
				entity.RolePhysician:     selfEmployee,
				entity.RoleNurse:         selfEmployee,
				entity.RoleReceptionist:  selfEmployee,
				entity.RolePharmacist:    selfEmployee,
			},
			ownershipReason: "you may only update your own record",
		},
		OpDelete: {
			roles: map[entity.Role]ownershipFn{
				entity.RoleAdministrator: notSelfEmployee,
			},
			ownershipReason: "you cannot delete your own account",
		},
	},
	ResourceAppointments: {
		OpList: anyRole(),
		OpRead: {
			roles: map[entity.Role]ownershipFn{
				entity.RoleAdministrator: nil,
				entity.RoleReceptionist:  nil,
				entity.RoleNurse:         nil,
				entity.RolePharmacist:    nil,
				entity.RolePhysician:     ownPhysician,
			},
			ownershipReason: "physicians may only view their own appointments",
		},
		OpCreate: unconditional(entity.RolePhysician, entity.RoleReceptionist),
		OpUpdate: {
			roles: map[entity.Role]ownershipFn{
				entity.RoleAdministrator: nil,
				entity.RoleReceptionist:  nil,
				entity.RolePhysician:     ownPhysician,
			},
			ownershipReason: "physicians may only update their own appointments",
		},
		OpCancel: {
			roles: map[entity.Role]ownershipFn{
				entity.RoleReceptionist: nil,
				entity.RolePhysician:    ownPhysician,
			},
			ownershipReason: "physicians may only cancel their own appointments",
		},
	},
	ResourceExams: {
		OpList: anyRole(),
		OpRead: {
			roles: map[entity.Role]ownershipFn{
				entity.RoleAdministrator: nil,
				entity.RoleReceptionist:  nil,
				entity.RolePhysician:     nil,
				entity.RolePharmacist:    nil,
				entity.RoleNurse:         ownNurse,
			},
			ownershipReason: "nurses may only view exams where they are the responsible nurse",
		},
		OpCreate: unconditional(entity.RolePhysician, entity.RoleReceptionist),
		OpUpdate: {
			roles: map[entity.Role]ownershipFn{
				entity.RoleAdministrator: nil,
				entity.RoleReceptionist:  nil,
				entity.RolePhysician:     ownPhysician,
				entity.RoleNurse:         ownNurse,
			},
			ownershipReason: "physicians and nurses may only update exams where they are responsible",
		},
		OpEnterResult: {
			roles: map[entity.Role]ownershipFn{
				entity.RolePhysician: ownPhysician,
			},
			ownershipReason: "only the responsible physician may enter the result",
		},
		OpUpdateStatus: {
			roles: map[entity.Role]ownershipFn{
				entity.RoleAdministrator: nil,
				entity.RoleReceptionist:  nil,
				entity.RolePhysician:     nil,
				entity.RolePharmacist:    nil,
				entity.RoleNurse:         ownNurse,
			},
			ownershipReason: "nurses may only update the status of their own exams",
		},
		OpDelete: unconditional(entity.RoleAdministrator),
	},
	ResourceEncounters: {
		OpList:   anyRole(),
		OpRead:   anyRole(),
		OpCreate: unconditional(entity.RoleNurse),
		OpUpdate: {
			roles: map[entity.Role]ownershipFn{
				entity.RoleAdministrator: nil,
				entity.RoleNurse:         ownNurse,
				entity.RolePhysician:     ownSupervisor,
			},
			ownershipReason: "nurses may only update encounters where they are the responsible nurse; physicians only where they are the supervising physician",
		},
		OpRecordVitals: {
			roles: map[entity.Role]ownershipFn{
				entity.RoleNurse: ownNurse,
			},
			ownershipReason: "nurses may only record vitals on their own encounters",
		},
		OpStart: {
			roles: map[entity.Role]ownershipFn{
				entity.RoleNurse: ownNurse,
			},
			ownershipReason: "nurses may only start their own encounters",
		},
		OpFinish: {
			roles: map[entity.Role]ownershipFn{
				entity.RoleNurse:     ownNurse,
				entity.RolePhysician: ownSupervisor,
			},
			ownershipReason: "only the responsible nurse or the supervising physician may finish an encounter",
		},
		OpDelete: unconditional(entity.RoleAdministrator),
	},
}

// Authorize decides whether the caller may perform the action. The role check
// runs first; ownership clauses are evaluated only for roles that pass it and
// declare one. Any single permitted role suffices.
func Authorize(caller *entity.Employee, a Action) Decision {
	if caller == nil {
		return deny("authentication required")
	}

	resourceRules, ok := rules[a.Resource]
	if !ok {
		return deny(fmt.Sprintf("unknown resource %q", a.Resource))
	}
	r, ok := resourceRules[a.Operation]
	if !ok {
		return deny(fmt.Sprintf("operation %q is not permitted on %s", a.Operation, a.Resource))
	}

	ownership, permitted := r.roles[caller.Role]
	if !permitted {
		return deny(fmt.Sprintf("requires one of roles: %s", roleList(r.roles)))
	}
	if ownership != nil && !ownership(caller, a.Target) {
		return deny(r.ownershipReason)
	}
	return allow()
}

// Scope is a server-side list filter forced onto the caller regardless of the
// filters the client supplied. Zero fields mean unrestricted.
type Scope struct {
	PhysicianID uint
	NurseID     uint
}

// ListScope returns the forced filter for list operations: physicians are
// scoped to their own appointments and exams, nurses to exams where they are
// the responsible nurse. Everything else is unscoped.
func ListScope(caller *entity.Employee, resource Resource) Scope {
	if caller == nil {
		return Scope{}
	}
	switch resource {
	case ResourceAppointments:
		if caller.Role == entity.RolePhysician {
			return Scope{PhysicianID: caller.ID}
		}
	case ResourceExams:
		if caller.Role == entity.RoleNurse {
			return Scope{NurseID: caller.ID}
		}
	}
	return Scope{}
}

func roleList(m map[entity.Role]ownershipFn) string {
	names := make([]string, 0, len(m))
	for r := range m {
		names = append(names, string(r))
	}
	sort.Strings(names)
	return strings.Join(names, ", ")
}
