package entity

import "time"

// Patient is a clinic patient. CPF and RG are nationally unique documents.
type Patient struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(100);not null" json:"name"`
	RG        string    `gorm:"type:varchar(20);uniqueIndex;not null" json:"rg"`
	CPF       string    `gorm:"type:varchar(14);uniqueIndex;not null" json:"cpf"`
	Sex       string    `gorm:"type:char(1);not null" json:"sex"`
	BirthDate time.Time `gorm:"type:date;not null" json:"birth_date"`
	Phone     string    `gorm:"type:varchar(15)" json:"phone,omitempty"`
	Email     string    `gorm:"type:varchar(100)" json:"email,omitempty"`
	CityState string    `gorm:"type:varchar(100)" json:"city_state,omitempty"`
	Address   string    `gorm:"type:text" json:"address,omitempty"`
	Pathology string    `gorm:"type:text" json:"pathology,omitempty"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`

	// Relationships
	Exams      []Exam             `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"exams,omitempty"`
	Encounters []NursingEncounter `gorm:"foreignKey:PatientID;constraint:OnDelete:CASCADE" json:"encounters,omitempty"`
}

func (Patient) TableName() string {
	return "patients"
}

// Sex constants
const (
	SexMale   = "M"
	SexFemale = "F"
)

// Age computes full years elapsed since the birth date.
func (p *Patient) Age(now time.Time) int {
	years := now.Year() - p.BirthDate.Year()
	anniversary := p.BirthDate.AddDate(years, 0, 0)
	if anniversary.After(now) {
		years--
	}
	if years < 0 {
		return 0
	}
	return years
}
