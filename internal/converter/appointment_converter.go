package converter

import (
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
)

// AppointmentToResponse converts an Appointment entity to AppointmentResponse DTO
func AppointmentToResponse(appointment *entity.Appointment) *dto.AppointmentResponse {
	if appointment == nil {
		return nil
	}

	response := &dto.AppointmentResponse{
		ID:             appointment.ID,
		PatientID:      appointment.PatientID,
		PhysicianID:    appointment.PhysicianID,
		ReceptionistID: appointment.ReceptionistID,
		ScheduledAt:    appointment.ScheduledAt,
		Kind:           string(appointment.Kind),
		Status:         string(appointment.Status),
		Reason:         appointment.Reason,
		Notes:          appointment.Notes,
		Diagnosis:      appointment.Diagnosis,
		Prescription:   appointment.Prescription,
		CreatedAt:      appointment.CreatedAt,
		UpdatedAt:      appointment.UpdatedAt,
	}

	// Include names when the relationships were preloaded
	if appointment.Patient != nil {
		response.PatientName = appointment.Patient.Name
	}
	if appointment.Physician != nil {
		response.PhysicianName = appointment.Physician.Name
	}
	if appointment.Receptionist != nil {
		response.ReceptionistName = appointment.Receptionist.Name
	}

	return response
}

// AppointmentsToResponses converts a slice of Appointment entities to slice of AppointmentResponse DTOs
func AppointmentsToResponses(appointments []entity.Appointment) []dto.AppointmentResponse {
	responses := make([]dto.AppointmentResponse, len(appointments))
	for i, appointment := range appointments {
		resp := AppointmentToResponse(&appointment)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
