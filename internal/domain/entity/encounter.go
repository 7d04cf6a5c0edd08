package entity

import (
	"math"
	"time"
)

// EncounterKind classifies a nursing encounter.
type EncounterKind string

const (
	EncounterKindTriage     EncounterKind = "triage"
	EncounterKindEmergency  EncounterKind = "emergency"
	EncounterKindAdmission  EncounterKind = "admission"
	EncounterKindOutpatient EncounterKind = "outpatient"
	EncounterKindHomeCare   EncounterKind = "home_care"
	EncounterKindProcedure  EncounterKind = "procedure"
)

// EncounterStatus represents the encounter lifecycle.
type EncounterStatus string

const (
	EncounterStatusWaiting     EncounterStatus = "waiting"
	EncounterStatusInProgress  EncounterStatus = "in_progress"
	EncounterStatusFinished    EncounterStatus = "finished"
	EncounterStatusInterrupted EncounterStatus = "interrupted"
	EncounterStatusTransferred EncounterStatus = "transferred"
)

// NursingEncounter records nursing care given to a patient, including triage
// vitals. NurseID is the responsible nurse; SupervisorID the supervising
// physician, when any.
type NursingEncounter struct {
	ID           uint            `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID    uint            `gorm:"not null;index" json:"patient_id"`
	NurseID      uint            `gorm:"not null;index" json:"nurse_id"`
	SupervisorID *uint           `gorm:"index" json:"supervisor_id,omitempty"`
	Kind         EncounterKind   `gorm:"type:varchar(20);not null;default:'outpatient'" json:"kind"`
	Reason       string          `gorm:"type:varchar(500);not null" json:"reason"`
	StartedAt    time.Time       `gorm:"not null;index" json:"started_at"`
	EndedAt      *time.Time      `json:"ended_at,omitempty"`
	Status       EncounterStatus `gorm:"type:varchar(20);not null;default:'waiting';index" json:"status"`

	// Triage vitals
	BloodPressure    string   `gorm:"type:varchar(20)" json:"blood_pressure,omitempty"`
	Temperature      *float64 `json:"temperature,omitempty"`
	HeartRate        *int     `json:"heart_rate,omitempty"`
	RespiratoryRate  *int     `json:"respiratory_rate,omitempty"`
	OxygenSaturation *float64 `json:"oxygen_saturation,omitempty"`
	WeightKG         *float64 `gorm:"column:weight_kg" json:"weight_kg,omitempty"`
	HeightCM         *float64 `gorm:"column:height_cm" json:"height_cm,omitempty"`
	PainScale        *int     `json:"pain_scale,omitempty"`

	// Nursing record
	MainComplaints   string `gorm:"type:text" json:"main_complaints,omitempty"`
	CurrentHistory   string `gorm:"type:text" json:"current_history,omitempty"`
	Procedures       string `gorm:"type:text" json:"procedures,omitempty"`
	MedicationsGiven string `gorm:"type:text" json:"medications_given,omitempty"`
	NursingNotes     string `gorm:"type:text" json:"nursing_notes,omitempty"`
	PatientGuidance  string `gorm:"type:text" json:"patient_guidance,omitempty"`

	// Outcome
	DischargeConditions string `gorm:"type:text" json:"discharge_conditions,omitempty"`
	Referrals           string `gorm:"type:text" json:"referrals,omitempty"`
	FollowUpNeeded      string `gorm:"type:varchar(255)" json:"follow_up_needed,omitempty"`

	// Location
	Sector string `gorm:"type:varchar(100)" json:"sector,omitempty"`
	Bed    string `gorm:"type:varchar(20)" json:"bed,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient    *Patient  `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Nurse      *Employee `gorm:"foreignKey:NurseID" json:"nurse,omitempty"`
	Supervisor *Employee `gorm:"foreignKey:SupervisorID" json:"supervisor,omitempty"`
}

func (NursingEncounter) TableName() string {
	return "nursing_encounters"
}

// BMI computes the body mass index from the recorded weight (kg) and height
// (cm), rounded to two decimals. Returns 0 when either is missing.
func (e *NursingEncounter) BMI() float64 {
	if e.WeightKG == nil || e.HeightCM == nil || *e.HeightCM == 0 {
		return 0
	}
	heightMeters := *e.HeightCM / 100
	return math.Round(*e.WeightKG/(heightMeters*heightMeters)*100) / 100
}

// DurationMinutes derives the encounter duration; zero while still open.
func (e *NursingEncounter) DurationMinutes() int {
	if e.EndedAt == nil {
		return 0
	}
	return int(e.EndedAt.Sub(e.StartedAt).Minutes())
}

// SupervisingPhysicianID returns the supervisor id, zero when unassigned.
func (e *NursingEncounter) SupervisingPhysicianID() uint {
	if e.SupervisorID == nil {
		return 0
	}
	return *e.SupervisorID
}
