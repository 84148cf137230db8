package services

import (
	"errors"

	"github.com/yukikurage/task-approval-api/internal/models"
	"github.com/yukikurage/task-approval-api/internal/repository"
)

var errStoreDown = errors.New("store unavailable")

// failingLogRepo rejects every append while reads pass through.
type failingLogRepo struct {
	repository.LogRepository
}

func (failingLogRepo) Create(*models.Log) error {
	return errStoreDown
}

// failingNotificationRepo rejects every insert.
type failingNotificationRepo struct {
	repository.NotificationRepository
}

func (failingNotificationRepo) Create(*models.Notification) error {
	return errStoreDown
}

func strPtr(s string) *string {
	return &s
}
