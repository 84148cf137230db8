package services

import (
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/task-approval-api/internal/constants"
	"github.com/yukikurage/task-approval-api/internal/models"
	"github.com/yukikurage/task-approval-api/internal/repository"
	"github.com/yukikurage/task-approval-api/internal/utils"
)

// AuditService appends and queries task audit records.
type AuditService struct {
	logRepo  repository.LogRepository
	userRepo repository.UserRepository
	log      *logrus.Entry
	now      func() time.Time
}

// NewAuditService creates a new AuditService
func NewAuditService(logRepo repository.LogRepository, userRepo repository.UserRepository, log *logrus.Logger) *AuditService {
	return &AuditService{
		logRepo:  logRepo,
		userRepo: userRepo,
		log:      logrus.NewEntry(log),
		now:      time.Now,
	}
}

// Record persists entry, stamping the current time when none is set.
func (s *AuditService) Record(entry *models.Log) error {
	if entry.Timestamp.IsZero() {
		entry.Timestamp = s.now().UTC()
	}
	if err := s.logRepo.Create(entry); err != nil {
		return fmt.Errorf("failed to append log: %w", err)
	}
	return nil
}

// LogQuery holds the filters accepted by Query. Empty strings are ignored.
type LogQuery struct {
	TaskID      string
	UserID      string
	SubmitterID string
	Action      string
	FromStatus  string
	ToStatus    string
	Start       *time.Time
	End         *time.Time
	Page        int
	Limit       int
}

// LogPage is one page of audit records.
type LogPage struct {
	Logs       []models.Log
	Pagination utils.PaginationResponse
}

// Query lists audit records newest first. Submitters only ever see their own entries;
// approvers may scope by submitter, with an explicit user id taking precedence.
func (s *AuditService) Query(identity Identity, q LogQuery) (*LogPage, error) {
	const op = "services.AuditService.Query"

	equal := map[string]any{}
	switch {
	case identity.IsSubmitter():
		equal["user_id"] = identity.ID
	case q.UserID != "":
		equal["user_id"] = q.UserID
	case q.SubmitterID != "":
		equal["user_id"] = q.SubmitterID
	}

	for column, value := range map[string]string{
		"task_id":     q.TaskID,
		"action":      q.Action,
		"from_status": q.FromStatus,
		"to_status":   q.ToStatus,
	} {
		if value != "" {
			equal[column] = value
		}
	}

	filter := repository.Filter{Equal: equal}
	if q.Start != nil || q.End != nil {
		filter.Ranges = []repository.Range{{Column: "timestamp", From: q.Start, To: q.End}}
	}

	params := utils.NewPaginationParams(q.Page, q.Limit, constants.DefaultLogPageSize)

	total, err := s.logRepo.Count(filter)
	if err != nil {
		s.log.WithField("operation", op).WithError(err).Error("failed to count logs")
		return nil, wrapInternal("failed to count logs", err)
	}

	logs, err := s.logRepo.Find(filter,
		repository.Sort{Column: "timestamp", Desc: true},
		repository.Page{Offset: params.Offset, Limit: params.Limit},
	)
	if err != nil {
		s.log.WithField("operation", op).WithError(err).Error("failed to list logs")
		return nil, wrapInternal("failed to list logs", err)
	}

	return &LogPage{
		Logs:       logs,
		Pagination: utils.NewPaginationResponse(params, total),
	}, nil
}

// ListSubmitters returns every submitter ordered by name. Approvers only.
func (s *AuditService) ListSubmitters(identity Identity) ([]models.User, error) {
	if !identity.IsApprover() {
		return nil, ErrApproversOnly
	}

	users, err := s.userRepo.Find(
		repository.Filter{Equal: map[string]any{"role": models.RoleSubmitter}},
		repository.Sort{Column: "name"},
		repository.Page{},
	)
	if err != nil {
		return nil, wrapInternal("failed to list submitters", err)
	}
	return users, nil
}
