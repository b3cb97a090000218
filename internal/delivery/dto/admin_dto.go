package dto

// Request DTOs for the administrative account-management endpoints.
// Image files arrive as a separate multipart part, not in these payloads.

type AdminCreateUserRequest struct {
	Email       string `json:"email" validate:"required,email"`
	Password    string `json:"password" validate:"required,min=6"`
	FullName    string `json:"full_name" validate:"required,min=2"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=10,max=20"`
}

type AdminUpdateUserRequest struct {
	Email       string `json:"email" validate:"omitempty,email"`
	Password    string `json:"password" validate:"omitempty,min=6"`
	FullName    string `json:"full_name" validate:"omitempty,min=2"`
	PhoneNumber string `json:"phone_number" validate:"omitempty,min=10,max=20"`
}

type AdminCreateDoctorRequest struct {
	Email           string   `json:"email" validate:"required,email"`
	Password        string   `json:"password" validate:"required,min=6"`
	FullName        string   `json:"full_name" validate:"required,min=2"`
	PhoneNumber     string   `json:"phone_number" validate:"omitempty,min=10,max=20"`
	Biography       string   `json:"biography" validate:"omitempty"`
	Specializations []string `json:"specializations" validate:"omitempty,dive,min=2"`
	Degree          string   `json:"degree" validate:"omitempty"`
	Institution     string   `json:"institution" validate:"omitempty"`
	GraduationYear  int      `json:"graduation_year" validate:"omitempty,gte=1950"`
}

type AdminUpdateDoctorRequest struct {
	UpdateDoctorProfileRequest
	Email    string `json:"email" validate:"omitempty,email"`
	Password string `json:"password" validate:"omitempty,min=6"`
}

type ListUsersRequest struct {
	Search string `json:"search"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}
