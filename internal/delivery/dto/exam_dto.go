package dto

import "time"

type CreateExamRequest struct {
	PatientID           uint   `json:"patient_id" validate:"required"`
	PhysicianID         uint   `json:"physician_id" validate:"required"`
	NurseID             *uint  `json:"nurse_id" validate:"omitempty"`
	Name                string `json:"name" validate:"required,max=255"`
	Kind                string `json:"kind" validate:"omitempty,oneof=laboratory imaging cardiology neurology ophthalmology audiology other"`
	Description         string `json:"description" validate:"omitempty"`
	ScheduledAt         string `json:"scheduled_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	RequiredPreparation string `json:"required_preparation" validate:"omitempty"`
	Price               string `json:"price" validate:"omitempty,max=20"`
	Insurance           string `json:"insurance" validate:"omitempty,max=100"`
}

type UpdateExamRequest struct {
	NurseID             *uint   `json:"nurse_id" validate:"omitempty"`
	Name                *string `json:"name" validate:"omitempty,max=255"`
	Kind                *string `json:"kind" validate:"omitempty,oneof=laboratory imaging cardiology neurology ophthalmology audiology other"`
	Description         *string `json:"description" validate:"omitempty"`
	ScheduledAt         *string `json:"scheduled_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Notes               *string `json:"notes" validate:"omitempty"`
	RequiredPreparation *string `json:"required_preparation" validate:"omitempty"`
	Price               *string `json:"price" validate:"omitempty,max=20"`
	Insurance           *string `json:"insurance" validate:"omitempty,max=100"`
}

// ExamResultRequest enters the result and medical report; restricted to the
// exam's responsible physician.
type ExamResultRequest struct {
	Result        string `json:"result" validate:"required"`
	MedicalReport string `json:"medical_report" validate:"omitempty"`
}

type ExamResponse struct {
	ID                  uint       `json:"id"`
	PatientID           uint       `json:"patient_id"`
	PhysicianID         uint       `json:"physician_id"`
	NurseID             *uint      `json:"nurse_id,omitempty"`
	Name                string     `json:"name"`
	Kind                string     `json:"kind"`
	Description         string     `json:"description,omitempty"`
	ScheduledAt         time.Time  `json:"scheduled_at"`
	PerformedAt         *time.Time `json:"performed_at,omitempty"`
	ResultAt            *time.Time `json:"result_at,omitempty"`
	Status              string     `json:"status"`
	Notes               string     `json:"notes,omitempty"`
	RequiredPreparation string     `json:"required_preparation,omitempty"`
	Result              string     `json:"result,omitempty"`
	MedicalReport       string     `json:"medical_report,omitempty"`
	Price               string     `json:"price,omitempty"`
	Insurance           string     `json:"insurance,omitempty"`
	PatientName         string     `json:"patient_name,omitempty"`
	PhysicianName       string     `json:"physician_name,omitempty"`
	NurseName           string     `json:"nurse_name,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
