package converter

import (
	"careconnect-api/internal/delivery/dto"
	"careconnect-api/internal/domain/entity"
)

func roleName(roleID int) string {
	switch roleID {
	case entity.RoleIDAdmin:
		return entity.RoleAdmin
	case entity.RoleIDDoctor:
		return entity.RoleDoctor
	default:
		return entity.RoleUser
	}
}

// UserToResponse converts a User entity to UserResponse DTO
func UserToResponse(user *entity.User) *dto.UserResponse {
	if user == nil {
		return nil
	}

	return &dto.UserResponse{
		ID:           user.ID,
		Email:        user.Email,
		FullName:     user.FullName,
		PhoneNumber:  user.PhoneNumber,
		ProfileImage: user.ProfileImage,
		Role:         roleName(user.RoleID),
		IsVerified:   user.IsVerified,
		Status:       string(user.Status),
		CreatedAt:    user.CreatedAt,
		UpdatedAt:    user.UpdatedAt,
	}
}

// UsersToResponses converts a slice of User entities to UserResponse DTOs
func UsersToResponses(users []entity.User) []dto.UserResponse {
	responses := make([]dto.UserResponse, len(users))
	for i := range users {
		responses[i] = *UserToResponse(&users[i])
	}
	return responses
}
