package entity

import "time"

// ExamKind classifies an exam.
type ExamKind string

const (
	ExamKindLaboratory    ExamKind = "laboratory"
	ExamKindImaging       ExamKind = "imaging"
	ExamKindCardiology    ExamKind = "cardiology"
	ExamKindNeurology     ExamKind = "neurology"
	ExamKindOphthalmology ExamKind = "ophthalmology"
	ExamKindAudiology     ExamKind = "audiology"
	ExamKindOther         ExamKind = "other"
)

// ExamStatus represents the exam lifecycle.
type ExamStatus string

const (
	ExamStatusScheduled       ExamStatus = "scheduled"
	ExamStatusInPreparation   ExamStatus = "in_preparation"
	ExamStatusInProgress      ExamStatus = "in_progress"
	ExamStatusFinished        ExamStatus = "finished"
	ExamStatusCancelled       ExamStatus = "cancelled"
	ExamStatusResultAvailable ExamStatus = "result_available"
)

// IsValid reports whether s is a known exam status.
func (s ExamStatus) IsValid() bool {
	switch s {
	case ExamStatusScheduled, ExamStatusInPreparation, ExamStatusInProgress,
		ExamStatusFinished, ExamStatusCancelled, ExamStatusResultAvailable:
		return true
	}
	return false
}

// Exam is a medical exam ordered for a patient. PhysicianID is the
// responsible physician, the only employee allowed to enter results.
// NurseID is the nurse assigned to execute it, when any.
type Exam struct {
	ID                  uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	PatientID           uint       `gorm:"not null;index" json:"patient_id"`
	PhysicianID         uint       `gorm:"not null;index" json:"physician_id"`
	NurseID             *uint      `gorm:"index" json:"nurse_id,omitempty"`
	Name                string     `gorm:"type:varchar(255);not null;index" json:"name"`
	Kind                ExamKind   `gorm:"type:varchar(20);not null;default:'laboratory'" json:"kind"`
	Description         string     `gorm:"type:text" json:"description,omitempty"`
	ScheduledAt         time.Time  `gorm:"not null;index" json:"scheduled_at"`
	PerformedAt         *time.Time `json:"performed_at,omitempty"`
	ResultAt            *time.Time `json:"result_at,omitempty"`
	Status              ExamStatus `gorm:"type:varchar(20);not null;default:'scheduled';index" json:"status"`
	Notes               string     `gorm:"type:text" json:"notes,omitempty"`
	RequiredPreparation string     `gorm:"type:text" json:"required_preparation,omitempty"`
	Result              string     `gorm:"type:text" json:"result,omitempty"`
	MedicalReport       string     `gorm:"type:text" json:"medical_report,omitempty"`
	Price               string     `gorm:"type:varchar(20)" json:"price,omitempty"`
	Insurance           string     `gorm:"type:varchar(100)" json:"insurance,omitempty"`
	CreatedAt           time.Time  `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt           time.Time  `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Patient   *Patient  `gorm:"foreignKey:PatientID" json:"patient,omitempty"`
	Physician *Employee `gorm:"foreignKey:PhysicianID" json:"physician,omitempty"`
	Nurse     *Employee `gorm:"foreignKey:NurseID" json:"nurse,omitempty"`
}

func (Exam) TableName() string {
	return "exams"
}

// AssignedNurseID returns the responsible nurse id, zero when unassigned.
func (e *Exam) AssignedNurseID() uint {
	if e.NurseID == nil {
		return 0
	}
	return *e.NurseID
}
