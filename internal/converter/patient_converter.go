package converter

import (
	"time"

	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO.
// Age is derived from the birth date at conversion time, never stored.
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:        patient.ID,
		Name:      patient.Name,
		RG:        patient.RG,
		CPF:       patient.CPF,
		Sex:       patient.Sex,
		BirthDate: patient.BirthDate.Format("2006-01-02"),
		Age:       patient.Age(time.Now()),
		Phone:     patient.Phone,
		Email:     patient.Email,
		CityState: patient.CityState,
		Address:   patient.Address,
		Pathology: patient.Pathology,
		CreatedAt: patient.CreatedAt,
		UpdatedAt: patient.UpdatedAt,
	}
}

// PatientsToResponses converts a slice of Patient entities to slice of PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i, patient := range patients {
		resp := PatientToResponse(&patient)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
