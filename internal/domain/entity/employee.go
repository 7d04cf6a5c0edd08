package entity

import "time"

// Role is the closed set of employee roles. An employee's role is fixed at
// creation; there is no role-change operation.
type Role string

const (
	RoleAdministrator Role = "administrator"
	RolePhysician     Role = "physician"
	RoleNurse         Role = "nurse"
	RoleReceptionist  Role = "receptionist"
	RolePharmacist    Role = "pharmacist"
)

// ValidRoles lists every accepted role value.
var ValidRoles = []Role{
	RoleAdministrator,
	RolePhysician,
	RoleNurse,
	RoleReceptionist,
	RolePharmacist,
}

// IsValid reports whether r is a member of the closed role set.
func (r Role) IsValid() bool {
	for _, v := range ValidRoles {
		if r == v {
			return true
		}
	}
	return false
}

// Employee is the authenticated principal. A single record carries the role
// tag plus the optional role-specific attributes instead of a subtype
// hierarchy.
type Employee struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name         string    `gorm:"type:varchar(100);not null" json:"name"`
	Login        string    `gorm:"type:varchar(50);uniqueIndex;not null" json:"login"`
	Email        string    `gorm:"type:varchar(100);uniqueIndex;not null" json:"email"`
	PasswordHash string    `gorm:"type:varchar(100);not null" json:"-"`
	Phone        string    `gorm:"type:varchar(15)" json:"phone,omitempty"`
	Role         Role      `gorm:"type:varchar(20);not null;index" json:"role"`
	CRM          string    `gorm:"type:varchar(20);uniqueIndex:uq_employees_crm,where:crm <> ''" json:"crm,omitempty"`
	Specialty    string    `gorm:"type:varchar(100)" json:"specialty,omitempty"`
	COREN        string    `gorm:"type:varchar(20);uniqueIndex:uq_employees_coren,where:coren <> ''" json:"coren,omitempty"`
	CRF          string    `gorm:"type:varchar(20);uniqueIndex:uq_employees_crf,where:crf <> ''" json:"crf,omitempty"`
	Sector       string    `gorm:"type:varchar(100)" json:"sector,omitempty"`
	CreatedAt    time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}

// LicenseNumber returns the professional license relevant to the employee's
// role, empty when the role carries none.
func (e *Employee) LicenseNumber() string {
	switch e.Role {
	case RolePhysician:
		return e.CRM
	case RoleNurse:
		return e.COREN
	case RolePharmacist:
		return e.CRF
	}
	return ""
}

// IsAdministrator reports whether the employee holds the administrator role.
func (e *Employee) IsAdministrator() bool {
	return e.Role == RoleAdministrator
}
