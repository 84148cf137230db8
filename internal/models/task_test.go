package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestTaskStatus_CanTransitionTo(t *testing.T) {
	all := []TaskStatus{TaskStatusPending, TaskStatusApproved, TaskStatusRejected, TaskStatusDone}
	legal := map[[2]TaskStatus]bool{
		{TaskStatusPending, TaskStatusApproved}: true,
		{TaskStatusPending, TaskStatusRejected}: true,
		{TaskStatusApproved, TaskStatusDone}:    true,
	}

	for _, from := range all {
		for _, to := range all {
			want := legal[[2]TaskStatus{from, to}]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}
}

func TestTaskStatus_UnknownTarget(t *testing.T) {
	assert.False(t, TaskStatusPending.CanTransitionTo("archived"))
	assert.False(t, TaskStatus("archived").CanTransitionTo(TaskStatusDone))
}

func TestParseRole(t *testing.T) {
	role, err := ParseRole("approver")
	assert.NoError(t, err)
	assert.Equal(t, RoleApprover, role)

	_, err = ParseRole("admin")
	assert.Error(t, err)
}

func TestNotificationTypeFor(t *testing.T) {
	kind, ok := NotificationTypeFor(TaskStatusDone)
	assert.True(t, ok)
	assert.Equal(t, NotificationTaskDone, kind)

	_, ok = NotificationTypeFor(TaskStatusPending)
	assert.False(t, ok)
}

func TestLogStatusDeletedIsNotATaskStatus(t *testing.T) {
	assert.False(t, TaskStatus(LogStatusDeleted).Valid())
}
