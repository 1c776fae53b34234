package dto

import (
	"github.com/taskflow/taskflow-api/internal/models"
)

// UserDTO represents a user in API responses
type UserDTO struct {
	ID         string   `json:"id"`
	Email      string   `json:"email"`
	FirstName  string   `json:"first_name"`
	LastName   string   `json:"last_name"`
	Role       string   `json:"role"`
	ProjectIDs []string `json:"project_ids"`
	OwnerOf    []string `json:"owner_of"`
	TaskIDs    []string `json:"task_ids"`
}

// LoginResponse carries the issued token alongside the greeting fields the
// frontend shows after login.
type LoginResponse struct {
	Token     string `json:"token"`
	Message   string `json:"message"`
	FirstName string `json:"firstName"`
}

// RegisterResponse reports a created account and, for admin-created
// accounts, any failed follow-up update to the admin's record.
type RegisterResponse struct {
	User              UserDTO  `json:"user"`
	SecondaryFailures []string `json:"secondary_failures,omitempty"`
}

// ToUserDTO converts a User model to UserDTO
func ToUserDTO(user models.User) UserDTO {
	return UserDTO{
		ID:         user.ID.Hex(),
		Email:      user.Email,
		FirstName:  user.FirstName,
		LastName:   user.LastName,
		Role:       user.Role,
		ProjectIDs: hexIDs(user.ProjectIDs),
		OwnerOf:    hexIDs(user.OwnerOf),
		TaskIDs:    hexIDs(user.TaskIDs),
	}
}

// ToUserDTOs converts a slice of users
func ToUserDTOs(users []models.User) []UserDTO {
	dtos := make([]UserDTO, len(users))
	for i, user := range users {
		dtos[i] = ToUserDTO(user)
	}
	return dtos
}
