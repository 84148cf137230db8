package dto

import (
	"time"

	"github.com/yukikurage/task-approval-api/internal/models"
	"github.com/yukikurage/task-approval-api/internal/services"
)

// UserRefDTO is a resolved user reference on a task
type UserRefDTO struct {
	ID   string      `json:"id"`
	Name string      `json:"name,omitempty"`
	Role models.Role `json:"role,omitempty"`
}

// TaskDTO represents a task in API responses
type TaskDTO struct {
	ID          string            `json:"id"`
	Title       string            `json:"title"`
	Description *string           `json:"description,omitempty"`
	Status      models.TaskStatus `json:"status"`
	CreatedBy   *UserRefDTO       `json:"createdBy"`
	UpdatedBy   *UserRefDTO       `json:"updatedBy,omitempty"`
	CreatedAt   time.Time         `json:"createdAt"`
	UpdatedAt   time.Time         `json:"updatedAt"`
}

// TaskDraftDTO is a suggested task that has not been created
type TaskDraftDTO struct {
	Title       string `json:"title"`
	Description string `json:"description"`
}

func toUserRefDTO(ref *services.UserRef) *UserRefDTO {
	if ref == nil {
		return nil
	}
	return &UserRefDTO{ID: ref.ID, Name: ref.Name, Role: ref.Role}
}

// ToTaskDTO converts a resolved task view to TaskDTO
func ToTaskDTO(view services.TaskView) TaskDTO {
	return TaskDTO{
		ID:          view.Task.ID,
		Title:       view.Task.Title,
		Description: view.Task.Description,
		Status:      view.Task.Status,
		CreatedBy:   toUserRefDTO(view.CreatedBy),
		UpdatedBy:   toUserRefDTO(view.UpdatedBy),
		CreatedAt:   view.Task.CreatedAt,
		UpdatedAt:   view.Task.UpdatedAt,
	}
}

// ToTaskDTOs converts a slice of views, never returning nil
func ToTaskDTOs(views []services.TaskView) []TaskDTO {
	out := make([]TaskDTO, len(views))
	for i, v := range views {
		out[i] = ToTaskDTO(v)
	}
	return out
}

// ToTaskDraftDTOs converts suggested drafts
func ToTaskDraftDTOs(drafts []services.TaskDraft) []TaskDraftDTO {
	out := make([]TaskDraftDTO, len(drafts))
	for i, d := range drafts {
		out[i] = TaskDraftDTO{Title: d.Title, Description: d.Description}
	}
	return out
}
