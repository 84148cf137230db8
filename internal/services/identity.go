package services

import "github.com/yukikurage/task-approval-api/internal/models"

// Identity is the authenticated principal attached to every request.
type Identity struct {
	ID   string
	Name string
	Role models.Role
}

func (i Identity) IsSubmitter() bool {
	return i.Role == models.RoleSubmitter
}

func (i Identity) IsApprover() bool {
	return i.Role == models.RoleApprover
}
