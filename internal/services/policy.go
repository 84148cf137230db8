package services

import (
	"strings"

	"github.com/yukikurage/task-approval-api/internal/models"
)

// UpdateTaskInput carries the optional fields of a task update.
type UpdateTaskInput struct {
	Title       *string
	Description *string
	Status      *string
}

func (in UpdateTaskInput) hasContent() bool {
	return in.Title != nil || in.Description != nil
}

// requestedStatus returns the status asked for, treating an empty value as absent.
func (in UpdateTaskInput) requestedStatus() (models.TaskStatus, bool) {
	if in.Status == nil || *in.Status == "" {
		return "", false
	}
	return models.TaskStatus(*in.Status), true
}

// taskChange describes what an update did to a task in memory.
type taskChange struct {
	content bool
	status  bool
	from    models.TaskStatus
}

func (c taskChange) any() bool {
	return c.content || c.status
}

// taskPolicy holds the per-role rules for task operations.
type taskPolicy interface {
	listScope(identity Identity) map[string]any
	canCreate() error
	canView(identity Identity, task *models.Task) error
	applyUpdate(identity Identity, task *models.Task, in UpdateTaskInput) (taskChange, error)
	canDelete(identity Identity, task *models.Task) error
}

var errUnknownRole = newError(KindForbidden, "Access denied")

func policyFor(role models.Role) (taskPolicy, error) {
	switch role {
	case models.RoleSubmitter:
		return submitterPolicy{}, nil
	case models.RoleApprover:
		return approverPolicy{}, nil
	default:
		return nil, errUnknownRole
	}
}

type submitterPolicy struct{}

func (submitterPolicy) listScope(identity Identity) map[string]any {
	return map[string]any{"created_by_id": identity.ID}
}

func (submitterPolicy) canCreate() error {
	return nil
}

func (submitterPolicy) canView(identity Identity, task *models.Task) error {
	if task.CreatedByID != identity.ID {
		return ErrTaskViewDenied
	}
	return nil
}

func (submitterPolicy) applyUpdate(identity Identity, task *models.Task, in UpdateTaskInput) (taskChange, error) {
	if task.CreatedByID != identity.ID {
		return taskChange{}, ErrNotTaskOwner
	}
	if task.Status != models.TaskStatusPending {
		return taskChange{}, ErrEditNotPending
	}
	if status, ok := in.requestedStatus(); ok && status != models.TaskStatusPending {
		return taskChange{}, ErrSubmitterStatus
	}

	if in.Title != nil {
		title := strings.TrimSpace(*in.Title)
		if title == "" {
			return taskChange{}, ErrTitleEmpty
		}
		task.Title = title
	}
	if in.Description != nil {
		description := *in.Description
		task.Description = &description
	}

	return taskChange{content: in.hasContent()}, nil
}

func (submitterPolicy) canDelete(identity Identity, task *models.Task) error {
	if task.CreatedByID != identity.ID {
		return ErrNotTaskOwner
	}
	if task.Status != models.TaskStatusPending {
		return ErrDeleteNotPending
	}
	return nil
}

type approverPolicy struct{}

func (approverPolicy) listScope(Identity) map[string]any {
	return map[string]any{}
}

func (approverPolicy) canCreate() error {
	return ErrOnlySubmitterCreate
}

func (approverPolicy) canView(Identity, *models.Task) error {
	return nil
}

func (approverPolicy) applyUpdate(identity Identity, task *models.Task, in UpdateTaskInput) (taskChange, error) {
	if in.hasContent() {
		return taskChange{}, ErrApproverContent
	}

	next, ok := in.requestedStatus()
	if !ok {
		return taskChange{}, nil
	}
	if !task.Status.CanTransitionTo(next) {
		return taskChange{}, ErrInvalidTransition
	}

	change := taskChange{status: true, from: task.Status}
	task.Status = next
	updatedBy := identity.ID
	task.UpdatedByID = &updatedBy
	return change, nil
}

func (approverPolicy) canDelete(Identity, *models.Task) error {
	return ErrOnlySubmitterDelete
}
