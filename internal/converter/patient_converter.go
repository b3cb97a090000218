package converter

import (
	"careconnect-api/internal/delivery/dto"
	"careconnect-api/internal/domain/entity"
)

// PatientToResponse converts a Patient entity to PatientResponse DTO
func PatientToResponse(patient *entity.Patient) *dto.PatientResponse {
	if patient == nil {
		return nil
	}

	return &dto.PatientResponse{
		ID:               patient.ID,
		UserID:           patient.UserID,
		Name:             patient.Name,
		DateOfBirth:      patient.DateOfBirth.Format("2006-01-02"),
		Gender:           patient.Gender,
		BloodGroup:       patient.BloodGroup,
		Address:          patient.Address,
		PhoneNumber:      patient.PhoneNumber,
		EmergencyContact: patient.EmergencyContact,
		CreatedAt:        patient.CreatedAt,
	}
}

// PatientsToResponses converts a slice of Patient entities to PatientResponse DTOs
func PatientsToResponses(patients []entity.Patient) []dto.PatientResponse {
	responses := make([]dto.PatientResponse, len(patients))
	for i := range patients {
		responses[i] = *PatientToResponse(&patients[i])
	}
	return responses
}
