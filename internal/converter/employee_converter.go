package converter

import (
	"clinic-management-api/internal/delivery/dto"
	"clinic-management-api/internal/domain/entity"
)

// EmployeeToResponse converts an Employee entity to EmployeeResponse DTO
func EmployeeToResponse(employee *entity.Employee) *dto.EmployeeResponse {
	if employee == nil {
		return nil
	}

	return &dto.EmployeeResponse{
		ID:        employee.ID,
		Name:      employee.Name,
		Login:     employee.Login,
		Email:     employee.Email,
		Phone:     employee.Phone,
		Role:      string(employee.Role),
		CRM:       employee.CRM,
		Specialty: employee.Specialty,
		COREN:     employee.COREN,
		CRF:       employee.CRF,
		Sector:    employee.Sector,
		CreatedAt: employee.CreatedAt,
		UpdatedAt: employee.UpdatedAt,
	}
}

// EmployeesToResponses converts a slice of Employee entities to slice of EmployeeResponse DTOs
func EmployeesToResponses(employees []entity.Employee) []dto.EmployeeResponse {
	responses := make([]dto.EmployeeResponse, len(employees))
	for i, employee := range employees {
		resp := EmployeeToResponse(&employee)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}

// EmployeeToCurrentUser converts an Employee entity to the compact identity
// payload returned by the me endpoint.
func EmployeeToCurrentUser(employee *entity.Employee) *dto.CurrentUserResponse {
	if employee == nil {
		return nil
	}

	return &dto.CurrentUserResponse{
		ID:    employee.ID,
		Name:  employee.Name,
		Login: employee.Login,
		Role:  string(employee.Role),
		Email: employee.Email,
	}
}

// EmployeeToPhysician converts an Employee entity to the compact directory entry.
func EmployeeToPhysician(employee *entity.Employee) *dto.PhysicianResponse {
	if employee == nil {
		return nil
	}

	return &dto.PhysicianResponse{
		ID:        employee.ID,
		Name:      employee.Name,
		CRM:       employee.CRM,
		Specialty: employee.Specialty,
	}
}

// EmployeesToPhysicians converts a slice of Employee entities to directory entries
func EmployeesToPhysicians(employees []entity.Employee) []dto.PhysicianResponse {
	responses := make([]dto.PhysicianResponse, len(employees))
	for i, employee := range employees {
		resp := EmployeeToPhysician(&employee)
		if resp != nil {
			responses[i] = *resp
		}
	}
	return responses
}
