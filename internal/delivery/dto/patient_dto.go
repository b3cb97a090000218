package dto

import (
	"time"

	"github.com/google/uuid"
)

// Request DTOs

type CreatePatientRequest struct {
	Name             string `json:"name" validate:"required,min=2"`
	DateOfBirth      string `json:"date_of_birth" validate:"required"` // Format: YYYY-MM-DD
	Gender           string `json:"gender" validate:"required,oneof=MALE FEMALE OTHER"`
	BloodGroup       string `json:"blood_group" validate:"omitempty,oneof=A_POS A_NEG B_POS B_NEG AB_POS AB_NEG O_POS O_NEG"`
	Address          string `json:"address" validate:"omitempty"`
	PhoneNumber      string `json:"phone_number" validate:"omitempty,min=10,max=20"`
	EmergencyContact string `json:"emergency_contact" validate:"omitempty"`
}

type UpdatePatientRequest struct {
	Name             string `json:"name" validate:"omitempty,min=2"`
	DateOfBirth      string `json:"date_of_birth" validate:"omitempty"`
	Gender           string `json:"gender" validate:"omitempty,oneof=MALE FEMALE OTHER"`
	BloodGroup       string `json:"blood_group" validate:"omitempty,oneof=A_POS A_NEG B_POS B_NEG AB_POS AB_NEG O_POS O_NEG"`
	Address          string `json:"address" validate:"omitempty"`
	PhoneNumber      string `json:"phone_number" validate:"omitempty,min=10,max=20"`
	EmergencyContact string `json:"emergency_contact" validate:"omitempty"`
}

// Response DTOs

type PatientResponse struct {
	ID               uuid.UUID `json:"id"`
	UserID           uuid.UUID `json:"user_id"`
	Name             string    `json:"name"`
	DateOfBirth      string    `json:"date_of_birth"`
	Gender           string    `json:"gender"`
	BloodGroup       string    `json:"blood_group,omitempty"`
	Address          string    `json:"address,omitempty"`
	PhoneNumber      string    `json:"phone_number,omitempty"`
	EmergencyContact string    `json:"emergency_contact,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
}

type PatientListResponse struct {
	Patients []PatientResponse `json:"patients"`
	Total    int               `json:"total"`
}
