package dto

import "time"

type CreatePatientRequest struct {
	Name      string `json:"name" validate:"required,min=2,max=100"`
	RG        string `json:"rg" validate:"required,max=20"`
	CPF       string `json:"cpf" validate:"required,min=11,max=14"`
	Sex       string `json:"sex" validate:"required,oneof=M F"`
	BirthDate string `json:"birth_date" validate:"required,datetime=2006-01-02"`
	Phone     string `json:"phone" validate:"omitempty,max=15"`
	Email     string `json:"email" validate:"omitempty,email"`
	CityState string `json:"city_state" validate:"omitempty,max=100"`
	Address   string `json:"address" validate:"omitempty"`
	Pathology string `json:"pathology" validate:"omitempty"`
}

type UpdatePatientRequest struct {
	Name      *string `json:"name" validate:"omitempty,min=2,max=100"`
	RG        *string `json:"rg" validate:"omitempty,max=20"`
	CPF       *string `json:"cpf" validate:"omitempty,min=11,max=14"`
	Sex       *string `json:"sex" validate:"omitempty,oneof=M F"`
	BirthDate *string `json:"birth_date" validate:"omitempty,datetime=2006-01-02"`
	Phone     *string `json:"phone" validate:"omitempty,max=15"`
	Email     *string `json:"email" validate:"omitempty,email"`
	CityState *string `json:"city_state" validate:"omitempty,max=100"`
	Address   *string `json:"address" validate:"omitempty"`
	Pathology *string `json:"pathology" validate:"omitempty"`
}

// PatientResponse includes the derived age, computed at response-assembly
// time and never stored.
type PatientResponse struct {
	ID        uint      `json:"id"`
	Name      string    `json:"name"`
	RG        string    `json:"rg"`
	CPF       string    `json:"cpf"`
	Sex       string    `json:"sex"`
	BirthDate string    `json:"birth_date"`
	Age       int       `json:"age"`
	Phone     string    `json:"phone,omitempty"`
	Email     string    `json:"email,omitempty"`
	CityState string    `json:"city_state,omitempty"`
	Address   string    `json:"address,omitempty"`
	Pathology string    `json:"pathology,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
