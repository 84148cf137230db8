package repository

import (
	"github.com/yukikurage/task-approval-api/internal/models"
	"gorm.io/gorm"
)

// TaskRepository defines the interface for task data access
type TaskRepository interface {
	Store[models.Task]
}

// LogRepository defines the interface for audit log data access
type LogRepository interface {
	Store[models.Log]
}

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	Store[models.Notification]
}

// UserRepository defines the interface for user data access
type UserRepository interface {
	Store[models.User]

	// FindByUsername finds a user by username
	FindByUsername(username string) (*models.User, error)

	// FindByIDs returns the users whose ids are in ids. Unknown ids are skipped.
	FindByIDs(ids []string) ([]models.User, error)
}

// NewTaskRepository creates a new TaskRepository
func NewTaskRepository(db *gorm.DB) TaskRepository {
	return NewGormStore[models.Task](db)
}

// NewLogRepository creates a new LogRepository
func NewLogRepository(db *gorm.DB) LogRepository {
	return NewGormStore[models.Log](db)
}

// NewNotificationRepository creates a new NotificationRepository
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return NewGormStore[models.Notification](db)
}
