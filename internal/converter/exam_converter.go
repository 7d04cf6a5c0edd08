package converter

import (
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
)

// ExamToResponse converts an Exam entity to ExamResponse DTO
func ExamToResponse(exam *entity.Exam) *dto.ExamResponse {
	if exam == nil {
		return nil
	}

	response := &dto.ExamResponse{
		ID:                  exam.ID,
		PatientID:           exam.PatientID,
		PhysicianID:         exam.PhysicianID,
		NurseID:             exam.NurseID,
		Name:                exam.Name,
		Kind:                string(exam.Kind),
		Description:         exam.Description,
		ScheduledAt:         exam.ScheduledAt,
		PerformedAt:         exam.PerformedAt,
		ResultAt:            exam.ResultAt,
		Status:              string(exam.Status),
		Notes:               exam.Notes,
		RequiredPreparation: exam.RequiredPreparation,
		Result:              exam.Result,
		MedicalReport:       exam.MedicalReport,
		Price:               exam.Price,
		Insurance:           exam.Insurance,
		CreatedAt:           exam.CreatedAt,
		UpdatedAt:           exam.UpdatedAt,
	}

	// Include names when the relationships were preloaded
	if exam.Patient != nil {
		response.PatientName = exam.Patient.Name
	}
	if exam.Physician != nil {
		response.PhysicianName = exam.Physician.Name
	}
	if exam.Nurse != nil {
		response.NurseName = exam.Nurse.Name
	}

	return response
}

// ExamsToResponses converts a slice of Exam entities to slice of ExamResponse DTOs
func ExamsToResponses(exams []entity.Exam) []dto.ExamResponse {
	responses := make([]dto.ExamResponse, len(exams))
	for i, exam := range exams {
		resp := ExamToResponse(&exam)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
