package converter

import (
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
)

// EncounterToResponse converts a NursingEncounter entity to EncounterResponse DTO.
// BMI and duration are derived at conversion time, never stored.
func EncounterToResponse(encounter *entity.NursingEncounter) *dto.EncounterResponse {
	if encounter == nil {
		return nil
	}

	response := &dto.EncounterResponse{
		ID:                  encounter.ID,
		PatientID:           encounter.PatientID,
		NurseID:             encounter.NurseID,
		SupervisorID:        encounter.SupervisorID,
		Kind:                string(encounter.Kind),
		Reason:              encounter.Reason,
		StartedAt:           encounter.StartedAt,
		EndedAt:             encounter.EndedAt,
		DurationMinutes:     encounter.DurationMinutes(),
		Status:              string(encounter.Status),
		BloodPressure:       encounter.BloodPressure,
		Temperature:         encounter.Temperature,
		HeartRate:           encounter.HeartRate,
		RespiratoryRate:     encounter.RespiratoryRate,
		OxygenSaturation:    encounter.OxygenSaturation,
		WeightKG:            encounter.WeightKG,
		HeightCM:            encounter.HeightCM,
		BMI:                 encounter.BMI(),
		PainScale:           encounter.PainScale,
		MainComplaints:      encounter.MainComplaints,
		CurrentHistory:      encounter.CurrentHistory,
		Procedures:          encounter.Procedures,
		MedicationsGiven:    encounter.MedicationsGiven,
		NursingNotes:        encounter.NursingNotes,
		PatientGuidance:     encounter.PatientGuidance,
		DischargeConditions: encounter.DischargeConditions,
		Referrals:           encounter.Referrals,
		FollowUpNeeded:      encounter.FollowUpNeeded,
		Sector:              encounter.Sector,
		Bed:                 encounter.Bed,
		CreatedAt:           encounter.CreatedAt,
		UpdatedAt:           encounter.UpdatedAt,
	}

	// Include names when the relationships were preloaded
	if encounter.Patient != nil {
		response.PatientName = encounter.Patient.Name
	}
	if encounter.Nurse != nil {
		response.NurseName = encounter.Nurse.Name
	}
	if encounter.Supervisor != nil {
		response.SupervisorName = encounter.Supervisor.Name
	}

	return response
}

// EncountersToResponses converts a slice of NursingEncounter entities to slice of EncounterResponse DTOs
func EncountersToResponses(encounters []entity.NursingEncounter) []dto.EncounterResponse {
	responses := make([]dto.EncounterResponse, len(encounters))
	for i, encounter := range encounters {
		resp := EncounterToResponse(&encounter)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
