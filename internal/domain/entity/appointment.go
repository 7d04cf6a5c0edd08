package entity

import "time"

// AppointmentStatus represents the scheduling lifecycle of an appointment.
type AppointmentStatus string

const (
	AppointmentStatusScheduled  AppointmentStatus = "scheduled"
	AppointmentStatusConfirmed  AppointmentStatus = "confirmed"
	AppointmentStatusInProgress AppointmentStatus = "in_progress"
	AppointmentStatusFinished   AppointmentStatus = "finished"
	AppointmentStatusCancelled  AppointmentStatus = "cancelled"
)

// AppointmentKind classifies the visit.
type AppointmentKind string

const (
	AppointmentKindConsultation AppointmentKind = "consultation"
	AppointmentKindFollowUp     AppointmentKind = "follow_up"
	AppointmentKindEmergency    AppointmentKind = "emergency"
	AppointmentKindExam         AppointmentKind = "exam"
)

// Appointment is a medical appointment between a patient and a physician.
// ReceptionistID records who scheduled it when a receptionist did.
type Appointment struct {
	ID             uint              `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID      uint              `gorm:"not null;index" json:"patient_id"`
	PhysicianID    uint              `gorm:"not null;index" json:"physician_id"`
	ReceptionistID *uint             `gorm:"index" json:"receptionist_id,omitempty"`
	ScheduledAt    time.Time         `gorm:"not null;index" json:"scheduled_at"`
	Kind           AppointmentKind   `gorm:"type:varchar(20);not null;default:'consultation'" json:"kind"`
	Status         AppointmentStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Reason         string            `gorm:"type:text" json:"reason,omitempty"`
	Notes          string            `gorm:"type:text" json:"notes,omitempty"`
	Diagnosis      string            `gorm:"type:text" json:"diagnosis,omitempty"`
	Prescription   string            `gorm:"type:text" json:"prescription,omitempty"`
	CreatedAt      time.Time         `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt      time.Time         `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient      *Patient  `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Physician    *Employee `gorm:"foreignKey:PhysicianID" json:"physician,omitempty"`
	Receptionist *Employee `gorm:"foreignKey:ReceptionistID" json:"receptionist,omitempty"`
}

func (Appointment) TableName() string {
	return "appointments"
}

// IsCancelled reports whether the appointment was cancelled.
func (a *Appointment) IsCancelled() bool {
	return a.Status == AppointmentStatusCancelled
}

// Cancel marks the appointment as cancelled.
func (a *Appointment) Cancel() {
	a.Status = AppointmentStatusCancelled
}
