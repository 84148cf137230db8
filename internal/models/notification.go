package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type NotificationType string

const (
	NotificationTaskApproved NotificationType = "task_approved"
	NotificationTaskRejected NotificationType = "task_rejected"
	NotificationTaskDone     NotificationType = "task_done"
)

// NotificationTypeFor maps a status reached by an approver to the notification kind.
func NotificationTypeFor(s TaskStatus) (NotificationType, bool) {
	switch s {
	case TaskStatusApproved:
		return NotificationTaskApproved, true
	case TaskStatusRejected:
		return NotificationTaskRejected, true
	case TaskStatusDone:
		return NotificationTaskDone, true
	}
	return "", false
}

type Notification struct {
	ID         string           `gorm:"type:varchar(36);primaryKey" json:"id"`
	UserID     string           `gorm:"type:varchar(36);not null;index" json:"userId"`
	TaskID     string           `gorm:"type:varchar(36);not null" json:"taskId"`
	TaskTitle  string           `gorm:"type:varchar(255);not null" json:"taskTitle"`
	Message    string           `gorm:"type:text;not null" json:"message"`
	ActionType NotificationType `gorm:"type:varchar(20);not null" json:"actionType"`
	ActorName  string           `gorm:"type:varchar(255);not null" json:"actorName"`
	CreatedAt  time.Time        `gorm:"index" json:"createdAt"`
}

func (n *Notification) BeforeCreate(tx *gorm.DB) error {
	if n.ID == "" {
		n.ID = uuid.NewString()
	}
	return nil
}
