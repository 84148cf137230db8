package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type LogAction string

const (
	LogActionCreate       LogAction = "create"
	LogActionUpdate       LogAction = "update"
	LogActionStatusChange LogAction = "status_change"
	LogActionDelete       LogAction = "delete"
)

// LogStatus is the status recorded on an audit entry. It covers every TaskStatus
// plus LogStatusDeleted, which never appears on a Task.
type LogStatus string

const LogStatusDeleted LogStatus = "deleted"

func LogStatusOf(s TaskStatus) LogStatus {
	return LogStatus(s)
}

// LogStatusPtr is a convenience for the optional fromStatus column.
func LogStatusPtr(s TaskStatus) *LogStatus {
	ls := LogStatusOf(s)
	return &ls
}

// Log is an append-only audit record of a task mutation.
type Log struct {
	ID         string     `gorm:"type:varchar(36);primaryKey" json:"id"`
	TaskID     string     `gorm:"type:varchar(36);not null;index" json:"taskId"`
	TaskTitle  string     `gorm:"type:varchar(255);not null" json:"taskTitle"`
	UserID     string     `gorm:"type:varchar(36);not null;index" json:"userId"`
	UserName   string     `gorm:"type:varchar(255);not null" json:"userName"`
	FromStatus *LogStatus `gorm:"type:varchar(20)" json:"fromStatus,omitempty"`
	ToStatus   LogStatus  `gorm:"type:varchar(20);not null" json:"toStatus"`
	Action     LogAction  `gorm:"type:varchar(20);not null;index" json:"action"`
	Timestamp  time.Time  `gorm:"not null;index" json:"timestamp"`
}

func (l *Log) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	return nil
}
