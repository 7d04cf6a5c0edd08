package dto

import "time"

// CreateEmployeeRequest creates an employee of any role. License fields are
// cross-validated against the role in the usecase before uniqueness checks.
type CreateEmployeeRequest struct {
	Name     string `json:"name" validate:"required,min=2,max=100"`
	Login    string `json:"login" validate:"required,min=3,max=50"`
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
	Phone    string `json:"phone" validate:"omitempty,max=15"`
	Role     string `json:"role" validate:"required,oneof=administrator physician nurse receptionist pharmacist"`

	// Role-specific attributes
	CRM       string `json:"crm" validate:"omitempty,max=20"`
	Specialty string `json:"specialty" validate:"omitempty,max=100"`
	COREN     string `json:"coren" validate:"omitempty,max=20"`
	CRF       string `json:"crf" validate:"omitempty,max=20"`
	Sector    string `json:"sector" validate:"omitempty,max=100"`
}

// UpdateEmployeeRequest is a partial update. Role is deliberately absent:
// an employee is never re-typed after creation. License and sector fields are
// honored only when an administrator submits them.
type UpdateEmployeeRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=100"`
	Email     *string `json:"email" validate:"omitempty,email"`
	Password  *string `json:"password" validate:"omitempty,min=6"`
	Phone     *string `json:"phone" validate:"omitempty,max=15"`
	CRM       *string `json:"crm" validate:"omitempty,max=20"`
	Specialty *string `json:"specialty" validate:"omitempty,max=100"`
	COREN     *string `json:"coren" validate:"omitempty,max=20"`
	CRF       *string `json:"crf" validate:"omitempty,max=20"`
	Sector    *string `json:"sector" validate:"omitempty,max=100"`
}

type EmployeeResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	Login     string    `json:"login"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone,omitempty"`
	Role      string    `json:"role"`
	CRM       string    `json:"crm,omitempty"`
	Specialty string    `json:"specialty,omitempty"`
	COREN     string    `json:"coren,omitempty"`
	CRF       string    `json:"crf,omitempty"`
	Sector    string    `json:"sector,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PhysicianResponse is the compact physician directory entry.
type PhysicianResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	CRM       string `json:"crm"`
	Specialty string `json:"specialty"`
}
