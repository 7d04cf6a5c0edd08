package dto

import "time"

type CreateEncounterRequest struct {
	PatientID    uint   `json:"patient_id" validate:"required"`
	NurseID      uint   `json:"nurse_id" validate:"required"`
	SupervisorID *uint  `json:"supervisor_id" validate:"omitempty"`
	Kind         string `json:"kind" validate:"omitempty,oneof=triage emergency admission outpatient home_care procedure"`
	Reason       string `json:"reason" validate:"required,max=500"`
	Sector       string `json:"sector" validate:"omitempty,max=100"`
	Bed          string `json:"bed" validate:"omitempty,max=20"`
}

// TriageRequest creates a triage encounter with its vitals in one call.
type TriageRequest struct {
	PatientID        uint     `json:"patient_id" validate:"required"`
	NurseID          uint     `json:"nurse_id" validate:"required"`
	Reason           string   `json:"reason" validate:"required,max=500"`
	BloodPressure    string   `json:"blood_pressure" validate:"omitempty,max=20"`
	Temperature      *float64 `json:"temperature" validate:"omitempty,gte=25,lte=45"`
	HeartRate        *int     `json:"heart_rate" validate:"omitempty,gte=0,lte=300"`
	OxygenSaturation *float64 `json:"oxygen_saturation" validate:"omitempty,gte=0,lte=100"`
	WeightKG         *float64 `json:"weight_kg" validate:"omitempty,gt=0"`
	HeightCM         *float64 `json:"height_cm" validate:"omitempty,gt=0"`
	PainScale        *int     `json:"pain_scale" validate:"omitempty,gte=0,lte=10"`
	MainComplaints   string   `json:"main_complaints" validate:"omitempty"`
	NursingNotes     string   `json:"nursing_notes" validate:"omitempty"`
}

type UpdateEncounterRequest struct {
	SupervisorID        *uint    `json:"supervisor_id" validate:"omitempty"`
	Kind                *string  `json:"kind" validate:"omitempty,oneof=triage emergency admission outpatient home_care procedure"`
	Reason              *string  `json:"reason" validate:"omitempty,max=500"`
	Status              *string  `json:"status" validate:"omitempty,oneof=waiting in_progress finished interrupted transferred"`
	BloodPressure       *string  `json:"blood_pressure" validate:"omitempty,max=20"`
	Temperature         *float64 `json:"temperature" validate:"omitempty,gte=25,lte=45"`
	HeartRate           *int     `json:"heart_rate" validate:"omitempty,gte=0,lte=300"`
	RespiratoryRate     *int     `json:"respiratory_rate" validate:"omitempty,gte=0,lte=120"`
	OxygenSaturation    *float64 `json:"oxygen_saturation" validate:"omitempty,gte=0,lte=100"`
	WeightKG            *float64 `json:"weight_kg" validate:"omitempty,gt=0"`
	HeightCM            *float64 `json:"height_cm" validate:"omitempty,gt=0"`
	PainScale           *int     `json:"pain_scale" validate:"omitempty,gte=0,lte=10"`
	MainComplaints      *string  `json:"main_complaints" validate:"omitempty"`
	CurrentHistory      *string  `json:"current_history" validate:"omitempty"`
	Procedures          *string  `json:"procedures" validate:"omitempty"`
	MedicationsGiven    *string  `json:"medications_given" validate:"omitempty"`
	NursingNotes        *string  `json:"nursing_notes" validate:"omitempty"`
	PatientGuidance     *string  `json:"patient_guidance" validate:"omitempty"`
	DischargeConditions *string  `json:"discharge_conditions" validate:"omitempty"`
	Referrals           *string  `json:"referrals" validate:"omitempty"`
	FollowUpNeeded      *string  `json:"follow_up_needed" validate:"omitempty,max=255"`
	Sector              *string  `json:"sector" validate:"omitempty,max=100"`
	Bed                 *string  `json:"bed" validate:"omitempty,max=20"`
}

// VitalsRequest updates only the triage vitals.
type VitalsRequest struct {
	BloodPressure    *string  `json:"blood_pressure" validate:"omitempty,max=20"`
	Temperature      *float64 `json:"temperature" validate:"omitempty,gte=25,lte=45"`
	HeartRate        *int     `json:"heart_rate" validate:"omitempty,gte=0,lte=300"`
	RespiratoryRate  *int     `json:"respiratory_rate" validate:"omitempty,gte=0,lte=120"`
	OxygenSaturation *float64 `json:"oxygen_saturation" validate:"omitempty,gte=0,lte=100"`
	WeightKG         *float64 `json:"weight_kg" validate:"omitempty,gt=0"`
	HeightCM         *float64 `json:"height_cm" validate:"omitempty,gt=0"`
	PainScale        *int     `json:"pain_scale" validate:"omitempty,gte=0,lte=10"`
}

// EncounterResponse includes BMI and duration derived at response-assembly
// time, never stored.
type EncounterResponse struct {
	ID                  uint       `json:"id"`
	PatientID           uint       `json:"patient_id"`
	NurseID             uint       `json:"nurse_id"`
	SupervisorID        *uint      `json:"supervisor_id,omitempty"`
	Kind                string     `json:"kind"`
	Reason              string     `json:"reason"`
	StartedAt           time.Time  `json:"started_at"`
	EndedAt             *time.Time `json:"ended_at,omitempty"`
	DurationMinutes     int        `json:"duration_minutes,omitempty"`
	Status              string     `json:"status"`
	BloodPressure       string     `json:"blood_pressure,omitempty"`
	Temperature         *float64   `json:"temperature,omitempty"`
	HeartRate           *int       `json:"heart_rate,omitempty"`
	RespiratoryRate     *int       `json:"respiratory_rate,omitempty"`
	OxygenSaturation    *float64   `json:"oxygen_saturation,omitempty"`
	WeightKG            *float64   `json:"weight_kg,omitempty"`
	HeightCM            *float64   `json:"height_cm,omitempty"`
	BMI                 float64    `json:"bmi,omitempty"`
	PainScale           *int       `json:"pain_scale,omitempty"`
	MainComplaints      string     `json:"main_complaints,omitempty"`
	CurrentHistory      string     `json:"current_history,omitempty"`
	Procedures          string     `json:"procedures,omitempty"`
	MedicationsGiven    string     `json:"medications_given,omitempty"`
	NursingNotes        string     `json:"nursing_notes,omitempty"`
	PatientGuidance     string     `json:"patient_guidance,omitempty"`
	DischargeConditions string     `json:"discharge_conditions,omitempty"`
	Referrals           string     `json:"referrals,omitempty"`
	FollowUpNeeded      string     `json:"follow_up_needed,omitempty"`
	Sector              string     `json:"sector,omitempty"`
	Bed                 string     `json:"bed,omitempty"`
	PatientName         string     `json:"patient_name,omitempty"`
	NurseName           string     `json:"nurse_name,omitempty"`
	SupervisorName      string     `json:"supervisor_name,omitempty"`
	CreatedAt           time.Time  `json:"created_at"`
	UpdatedAt           time.Time  `json:"updated_at"`
}
