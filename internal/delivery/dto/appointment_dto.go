package dto

import "time"

type CreateAppointmentRequest struct {
	PatientID   uint   `json:"patient_id" validate:"required"`
	PhysicianID uint   `json:"physician_id" validate:"required"`
	ScheduledAt string `json:"scheduled_at" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	Kind        string `json:"kind" validate:"omitempty,oneof=consultation follow_up emergency exam"`
	Reason      string `json:"reason" validate:"omitempty"`
	Notes       string `json:"notes" validate:"omitempty"`
}

// UpdateAppointmentRequest is a partial update. Diagnosis and prescription
// are stripped server-side when a receptionist submits them.
type UpdateAppointmentRequest struct {
	ScheduledAt  *string `json:"scheduled_at" validate:"omitempty,datetime=2006-01-02T15:04:05Z07:00"`
	Kind         *string `json:"kind" validate:"omitempty,oneof=consultation follow_up emergency exam"`
	Status       *string `json:"status" validate:"omitempty,oneof=scheduled confirmed in_progress finished cancelled"`
	Reason       *string `json:"reason" validate:"omitempty"`
	Notes        *string `json:"notes" validate:"omitempty"`
	Diagnosis    *string `json:"diagnosis" validate:"omitempty"`
	Prescription *string `json:"prescription" validate:"omitempty"`
}

type AppointmentResponse struct {
	ID               uint      `json:"id"`
	PatientID        uint      `json:"patient_id"`
	PhysicianID      uint      `json:"physician_id"`
	ReceptionistID   *uint     `json:"receptionist_id,omitempty"`
	ScheduledAt      time.Time `json:"scheduled_at"`
	Kind             string    `json:"kind"`
	Status           string    `json:"status"`
	Reason           string    `json:"reason,omitempty"`
	Notes            string    `json:"notes,omitempty"`
	Diagnosis        string    `json:"diagnosis,omitempty"`
	Prescription     string    `json:"prescription,omitempty"`
	PatientName      string    `json:"patient_name,omitempty"`
	PhysicianName    string    `json:"physician_name,omitempty"`
	ReceptionistName string    `json:"receptionist_name,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}
