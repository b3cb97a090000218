package dto

import (
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Request DTOs

type ClinicRequest struct {
	ClinicName string `json:"clinic_name" validate:"required,min=2"`
	Address    string `json:"address" validate:"omitempty"`
	City       string `json:"city" validate:"required"`
	State      string `json:"state" validate:"omitempty"`
	Country    string `json:"country" validate:"omitempty"`
	PostalCode string `json:"postal_code" validate:"omitempty,max=20"`
	Phone      string `json:"phone" validate:"omitempty,min=7,max=20"`
}

type AvailabilityRequest struct {
	DayOfWeek string `json:"day_of_week" validate:"required,oneof=Monday Tuesday Wednesday Thursday Friday Saturday Sunday"`
	StartTime string `json:"start_time" validate:"required"`
	EndTime   string `json:"end_time" validate:"required"`
}

type ConsultationFeeRequest struct {
	Mode     string          `json:"mode" validate:"required,oneof=In-person Online"`
	Fee      decimal.Decimal `json:"fee" validate:"required"`
	Currency string          `json:"currency" validate:"required,len=3"`
}

type HospitalStintRequest struct {
	Hospital string `json:"hospital" validate:"required"`
	Period   string `json:"period" validate:"required"`
}

// RegisterDoctorRequest is the multi-step doctor registration payload
type RegisterDoctorRequest struct {
	FullName         string                   `json:"full_name" validate:"required,min=2"`
	Email            string                   `json:"email" validate:"required,email"`
	Password         string                   `json:"password" validate:"required,min=6"`
	ConfirmPassword  string                   `json:"confirm_password" validate:"required"`
	PhoneNumber      string                   `json:"phone_number" validate:"omitempty,min=10,max=20"`
	Biography        string                   `json:"biography" validate:"omitempty"`
	Languages        []string                 `json:"languages" validate:"omitempty,dive,min=2"`
	Specializations  []string                 `json:"specializations" validate:"required,min=1,dive,min=2"`
	ExpertiseAreas   []string                 `json:"expertise_areas" validate:"omitempty,dive,min=2"`
	Degree           string                   `json:"degree" validate:"required"`
	Institution      string                   `json:"institution" validate:"required"`
	GraduationYear   int                      `json:"graduation_year" validate:"required,gte=1950"`
	HospitalStints   []HospitalStintRequest   `json:"hospital_stints" validate:"omitempty,dive"`
	Clinics          []ClinicRequest          `json:"clinics" validate:"required,min=1,dive"`
	Availability     []AvailabilityRequest    `json:"availability" validate:"required,min=1,dive"`
	ConsultationFees []ConsultationFeeRequest `json:"consultation_fees" validate:"required,min=1,dive"`
}

// UpdateDoctorProfileRequest supports partial scalar updates; a supplied
// collection replaces all existing children, a nil one leaves them untouched
type UpdateDoctorProfileRequest struct {
	FullName         string                    `json:"full_name" validate:"omitempty,min=2"`
	PhoneNumber      string                    `json:"phone_number" validate:"omitempty,min=10,max=20"`
	Biography        string                    `json:"biography" validate:"omitempty"`
	Languages        []string                  `json:"languages" validate:"omitempty,dive,min=2"`
	Specializations  []string                  `json:"specializations" validate:"omitempty,min=1,dive,min=2"`
	ExpertiseAreas   []string                  `json:"expertise_areas" validate:"omitempty,dive,min=2"`
	Degree           string                    `json:"degree" validate:"omitempty"`
	Institution      string                    `json:"institution" validate:"omitempty"`
	GraduationYear   int                       `json:"graduation_year" validate:"omitempty,gte=1950"`
	HospitalStints   []HospitalStintRequest    `json:"hospital_stints" validate:"omitempty,dive"`
	Clinics          *[]ClinicRequest          `json:"clinics" validate:"omitempty,min=1,dive"`
	Availability     *[]AvailabilityRequest    `json:"availability" validate:"omitempty,min=1,dive"`
	ConsultationFees *[]ConsultationFeeRequest `json:"consultation_fees" validate:"omitempty,min=1,dive"`
}

type VerifyOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
	OTP   string `json:"otp" validate:"required,len=6"`
}

type ResendOTPRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

type ResetPasswordRequest struct {
	Email       string `json:"email" validate:"required,email"`
	NewPassword string `json:"new_password" validate:"required,min=6"`
}

// Response DTOs

type ClinicResponse struct {
	ID         int    `json:"id"`
	ClinicName string `json:"clinic_name"`
	Address    string `json:"address,omitempty"`
	City       string `json:"city,omitempty"`
	State      string `json:"state,omitempty"`
	Country    string `json:"country,omitempty"`
	PostalCode string `json:"postal_code,omitempty"`
	Phone      string `json:"phone,omitempty"`
}

type AvailabilityResponse struct {
	ID        int    `json:"id"`
	DayOfWeek string `json:"day_of_week"`
	StartTime string `json:"start_time"`
	EndTime   string `json:"end_time"`
}

type ConsultationFeeResponse struct {
	ID       int             `json:"id"`
	Mode     string          `json:"mode"`
	Fee      decimal.Decimal `json:"fee"`
	Currency string          `json:"currency"`
}

type HospitalStintResponse struct {
	Hospital string `json:"hospital"`
	Period   string `json:"period"`
}

type DoctorResponse struct {
	ID               uuid.UUID                 `json:"id"`
	Email            string                    `json:"email"`
	FullName         string                    `json:"full_name"`
	PhoneNumber      string                    `json:"phone_number,omitempty"`
	ProfileImage     *string                   `json:"profile_image,omitempty"`
	IsVerified       bool                      `json:"is_verified"`
	Status           string                    `json:"status"`
	Biography        string                    `json:"biography,omitempty"`
	Languages        []string                  `json:"languages,omitempty"`
	Specializations  []string                  `json:"specializations,omitempty"`
	ExpertiseAreas   []string                  `json:"expertise_areas,omitempty"`
	Degree           string                    `json:"degree,omitempty"`
	Institution      string                    `json:"institution,omitempty"`
	GraduationYear   int                       `json:"graduation_year,omitempty"`
	HospitalStints   []HospitalStintResponse   `json:"hospital_stints,omitempty"`
	Clinics          []ClinicResponse          `json:"clinics,omitempty"`
	Availability     []AvailabilityResponse    `json:"availability,omitempty"`
	ConsultationFees []ConsultationFeeResponse `json:"consultation_fees,omitempty"`
}

type DoctorListResponse struct {
	Doctors []DoctorResponse `json:"doctors"`
	Total   int              `json:"total"`
}
