package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type TaskStatus string

const (
	TaskStatusPending  TaskStatus = "pending"
	TaskStatusApproved TaskStatus = "approved"
	TaskStatusRejected TaskStatus = "rejected"
	TaskStatusDone     TaskStatus = "done"
)

// transitions lists the only legal status edges. Terminal states have no entry.
var transitions = map[TaskStatus][]TaskStatus{
	TaskStatusPending:  {TaskStatusApproved, TaskStatusRejected},
	TaskStatusApproved: {TaskStatusDone},
}

// CanTransitionTo reports whether moving from s to next is a legal edge.
// Same-state moves are never legal.
func (s TaskStatus) CanTransitionTo(next TaskStatus) bool {
	for _, allowed := range transitions[s] {
		if allowed == next {
			return true
		}
	}
	return false
}

func (s TaskStatus) Valid() bool {
	switch s {
	case TaskStatusPending, TaskStatusApproved, TaskStatusRejected, TaskStatusDone:
		return true
	}
	return false
}

type Task struct {
	ID          string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	Title       string     `gorm:"type:varchar(255);not null" json:"title"`
	Description *string    `gorm:"type:text" json:"description,omitempty"`
	Status      TaskStatus `gorm:"type:varchar(20);not null;default:'pending';index" json:"status"`
	CreatedByID string     `gorm:"type:varchar(36);not null;index" json:"createdBy"`
	UpdatedByID *string    `gorm:"type:varchar(36)" json:"updatedBy,omitempty"`
	CreatedAt   time.Time  `gorm:"index" json:"createdAt"`
	UpdatedAt   time.Time  `json:"updatedAt"`
}

func (t *Task) BeforeCreate(tx *gorm.DB) error {
	if t.ID == "" {
		t.ID = uuid.NewString()
	}
	return nil
}
