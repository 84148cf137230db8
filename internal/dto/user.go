package dto

import "github.com/yukikurage/task-approval-api/internal/models"

// UserDTO represents the authenticated user in API responses
type UserDTO struct {
	ID   string      `json:"id"`
	Name string      `json:"name"`
	Role models.Role `json:"role"`
}

// SubmitterDTO is an entry of the submitter picker
type SubmitterDTO struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

func ToUserDTO(user models.User) UserDTO {
	return UserDTO{ID: user.ID, Name: user.Name, Role: user.Role}
}

func ToSubmitterDTOs(users []models.User) []SubmitterDTO {
	out := make([]SubmitterDTO, len(users))
	for i, u := range users {
		out[i] = SubmitterDTO{ID: u.ID, Name: u.Name}
	}
	return out
}
