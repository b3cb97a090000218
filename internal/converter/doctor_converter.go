package converter

import (
	"careconnect-api/internal/delivery/dto"
	"careconnect-api/internal/domain/entity"
)

// DoctorProfileToResponse converts a DoctorProfile entity to DoctorResponse DTO
func DoctorProfileToResponse(profile *entity.DoctorProfile) *dto.DoctorResponse {
	if profile == nil {
		return nil
	}

	clinics := make([]dto.ClinicResponse, len(profile.Clinics))
	for i, c := range profile.Clinics {
		clinics[i] = dto.ClinicResponse{
			ID:         c.ID,
			ClinicName: c.ClinicName,
			Address:    c.Address,
			City:       c.City,
			State:      c.State,
			Country:    c.Country,
			PostalCode: c.PostalCode,
			Phone:      c.Phone,
		}
	}

	availability := make([]dto.AvailabilityResponse, len(profile.Availability))
	for i, a := range profile.Availability {
		availability[i] = dto.AvailabilityResponse{
			ID:        a.ID,
			DayOfWeek: a.DayOfWeek,
			StartTime: a.StartTime,
			EndTime:   a.EndTime,
		}
	}

	fees := make([]dto.ConsultationFeeResponse, len(profile.ConsultationFees))
	for i, f := range profile.ConsultationFees {
		fees[i] = dto.ConsultationFeeResponse{
			ID:       f.ID,
			Mode:     f.Mode,
			Fee:      f.Fee,
			Currency: f.Currency,
		}
	}

	stints := make([]dto.HospitalStintResponse, len(profile.HospitalStints))
	for i, s := range profile.HospitalStints {
		stints[i] = dto.HospitalStintResponse{
			Hospital: s.Hospital,
			Period:   s.Period,
		}
	}

	return &dto.DoctorResponse{
		ID:               profile.UserID,
		Email:            profile.User.Email,
		FullName:         profile.User.FullName,
		PhoneNumber:      profile.User.PhoneNumber,
		ProfileImage:     profile.User.ProfileImage,
		IsVerified:       profile.User.IsVerified,
		Status:           string(profile.User.Status),
		Biography:        profile.Biography,
		Languages:        profile.Languages,
		Specializations:  profile.Specializations,
		ExpertiseAreas:   profile.ExpertiseAreas,
		Degree:           profile.Degree,
		Institution:      profile.Institution,
		GraduationYear:   profile.GraduationYear,
		HospitalStints:   stints,
		Clinics:          clinics,
		Availability:     availability,
		ConsultationFees: fees,
	}
}

// DoctorProfilesToResponses converts a slice of DoctorProfile entities to DoctorResponse DTOs
func DoctorProfilesToResponses(profiles []entity.DoctorProfile) []dto.DoctorResponse {
	responses := make([]dto.DoctorResponse, len(profiles))
	for i := range profiles {
		responses[i] = *DoctorProfileToResponse(&profiles[i])
	}
	return responses
}
