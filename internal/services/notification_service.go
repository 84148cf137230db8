package services

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/task-approval-api/internal/constants"
	"github.com/yukikurage/task-approval-api/internal/metrics"
	"github.com/yukikurage/task-approval-api/internal/models"
	"github.com/yukikurage/task-approval-api/internal/repository"
	"github.com/yukikurage/task-approval-api/internal/utils"
)

// NotificationService stores and serves per-user notifications.
type NotificationService struct {
	repo repository.NotificationRepository
	log  *logrus.Entry
}

// NewNotificationService creates a new NotificationService
func NewNotificationService(repo repository.NotificationRepository, log *logrus.Logger) *NotificationService {
	return &NotificationService{
		repo: repo,
		log:  logrus.NewEntry(log),
	}
}

// Create appends a notification. The creation time is assigned on insert.
func (s *NotificationService) Create(n *models.Notification) error {
	if err := s.repo.Create(n); err != nil {
		return fmt.Errorf("failed to create notification: %w", err)
	}
	metrics.NotificationsCreated.WithLabelValues(string(n.ActionType)).Inc()
	return nil
}

// NotificationPage is one page of notifications.
type NotificationPage struct {
	Notifications []models.Notification
	Pagination    utils.PaginationResponse
}

// List returns userID's notifications, newest first.
func (s *NotificationService) List(userID string, page, limit int) (*NotificationPage, error) {
	const op = "services.NotificationService.List"

	filter := repository.Filter{Equal: map[string]any{"user_id": userID}}
	params := utils.NewPaginationParams(page, limit, constants.DefaultNotificationSize)

	total, err := s.repo.Count(filter)
	if err != nil {
		s.log.WithField("operation", op).WithError(err).Error("failed to count notifications")
		return nil, wrapInternal("failed to count notifications", err)
	}

	items, err := s.repo.Find(filter,
		repository.Sort{Column: "created_at", Desc: true},
		repository.Page{Offset: params.Offset, Limit: params.Limit},
	)
	if err != nil {
		s.log.WithField("operation", op).WithError(err).Error("failed to list notifications")
		return nil, wrapInternal("failed to list notifications", err)
	}

	return &NotificationPage{
		Notifications: items,
		Pagination:    utils.NewPaginationResponse(params, total),
	}, nil
}

// ClearAll deletes every notification owned by userID. Clearing an empty set succeeds.
func (s *NotificationService) ClearAll(userID string) (int64, error) {
	removed, err := s.repo.DeleteWhere(repository.Filter{Equal: map[string]any{"user_id": userID}})
	if err != nil {
		s.log.WithField("operation", "services.NotificationService.ClearAll").WithError(err).Error("failed to clear notifications")
		return 0, wrapInternal("failed to clear notifications", err)
	}
	return removed, nil
}
