package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/yukikurage/task-approval-api/internal/constants"
	"github.com/yukikurage/task-approval-api/internal/metrics"
	"github.com/yukikurage/task-approval-api/internal/models"
	"github.com/yukikurage/task-approval-api/internal/repository"
)

// TaskService handles task business logic
type TaskService struct {
	taskRepo      repository.TaskRepository
	userRepo      repository.UserRepository
	audit         *AuditService
	notifications *NotificationService
	suggester     TaskSuggester
	locks         *keyedMutex
	log           *logrus.Entry
}

// NewTaskService creates a new TaskService. suggester may be nil.
func NewTaskService(
	taskRepo repository.TaskRepository,
	userRepo repository.UserRepository,
	audit *AuditService,
	notifications *NotificationService,
	suggester TaskSuggester,
	log *logrus.Logger,
) *TaskService {
	return &TaskService{
		taskRepo:      taskRepo,
		userRepo:      userRepo,
		audit:         audit,
		notifications: notifications,
		suggester:     suggester,
		locks:         newKeyedMutex(),
		log:           logrus.NewEntry(log),
	}
}

// UserRef is the read-time projection of a referenced user.
type UserRef struct {
	ID   string
	Name string
	Role models.Role
}

// TaskView is a task with its user references resolved.
type TaskView struct {
	Task      models.Task
	CreatedBy *UserRef
	UpdatedBy *UserRef
}

// CreateTaskInput represents input for creating a task
type CreateTaskInput struct {
	Title       string
	Description *string
}

// ListTasks returns the tasks visible to identity, newest first. status is
// matched exactly when non-empty; an unknown status matches nothing.
func (s *TaskService) ListTasks(identity Identity, status string) ([]TaskView, error) {
	policy, err := policyFor(identity.Role)
	if err != nil {
		return nil, err
	}

	equal := policy.listScope(identity)
	if status != "" {
		if !models.TaskStatus(status).Valid() {
			return []TaskView{}, nil
		}
		equal["status"] = status
	}

	tasks, err := s.taskRepo.Find(
		repository.Filter{Equal: equal},
		repository.Sort{Column: "created_at", Desc: true},
		repository.Page{},
	)
	if err != nil {
		return nil, wrapInternal("failed to list tasks", err)
	}

	return s.resolveRefs(tasks)
}

// CreateTask creates a pending task owned by identity and records it.
func (s *TaskService) CreateTask(identity Identity, input CreateTaskInput) (*TaskView, error) {
	const op = "services.TaskService.CreateTask"

	policy, err := policyFor(identity.Role)
	if err != nil {
		return nil, err
	}
	if err := policy.canCreate(); err != nil {
		return nil, err
	}

	title := strings.TrimSpace(input.Title)
	if title == "" {
		return nil, ErrTitleRequired
	}

	task := &models.Task{
		Title:       title,
		Description: input.Description,
		Status:      models.TaskStatusPending,
		CreatedByID: identity.ID,
	}
	if err := s.taskRepo.Create(task); err != nil {
		return nil, wrapInternal("failed to create task", err)
	}

	err = s.audit.Record(&models.Log{
		TaskID:    task.ID,
		TaskTitle: task.Title,
		UserID:    identity.ID,
		UserName:  identity.Name,
		ToStatus:  models.LogStatusOf(task.Status),
		Action:    models.LogActionCreate,
	})
	if err != nil {
		s.log.WithField("operation", op).WithField("task_id", task.ID).WithError(err).Error("task created without audit record")
		return nil, wrapInternal("failed to record task creation", err)
	}

	return s.resolveRef(task)
}

// GetTask returns a single task if identity may see it.
func (s *TaskService) GetTask(identity Identity, taskID string) (*TaskView, error) {
	policy, err := policyFor(identity.Role)
	if err != nil {
		return nil, err
	}

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}
	if err := policy.canView(identity, task); err != nil {
		return nil, err
	}

	return s.resolveRef(task)
}

// UpdateTask applies a content edit or a status transition. The task is saved
// first, then the audit record is appended, then the submitter is notified.
// A failed notification is logged and does not fail the update.
func (s *TaskService) UpdateTask(identity Identity, taskID string, input UpdateTaskInput) (*TaskView, error) {
	const op = "services.TaskService.UpdateTask"
	log := s.log.WithField("operation", op).WithField("task_id", taskID)

	policy, err := policyFor(identity.Role)
	if err != nil {
		return nil, err
	}

	unlock := s.locks.Lock(taskID)
	defer unlock()

	task, err := s.findTask(taskID)
	if err != nil {
		return nil, err
	}

	change, err := policy.applyUpdate(identity, task, input)
	if err != nil {
		return nil, err
	}
	if !change.any() {
		return s.resolveRef(task)
	}

	if err := s.taskRepo.Update(task); err != nil {
		return nil, wrapInternal("failed to update task", err)
	}

	entry := &models.Log{
		TaskID:    task.ID,
		TaskTitle: task.Title,
		UserID:    identity.ID,
		UserName:  identity.Name,
		ToStatus:  models.LogStatusOf(task.Status),
		Action:    models.LogActionUpdate,
	}
	if change.status {
		entry.Action = models.LogActionStatusChange
		entry.FromStatus = models.LogStatusPtr(change.from)
	}
	auditErr := s.audit.Record(entry)

	if change.status {
		metrics.TaskTransitions.WithLabelValues(string(change.from), string(task.Status)).Inc()
		log.WithFields(logrus.Fields{"from": change.from, "to": task.Status, "actor": identity.ID}).Info("task status changed")
		s.notifySubmitter(identity, task)
	}

	if auditErr != nil {
		log.WithError(auditErr).Error("task updated without audit record")
		return nil, wrapInternal("failed to record task update", auditErr)
	}

	return s.resolveRef(task)
}

// DeleteTask removes a pending task owned by identity. The audit record is
// written first; if that fails the task is left in place.
func (s *TaskService) DeleteTask(identity Identity, taskID string) error {
	const op = "services.TaskService.DeleteTask"

	policy, err := policyFor(identity.Role)
	if err != nil {
		return err
	}

	unlock := s.locks.Lock(taskID)
	defer unlock()

	task, err := s.findTask(taskID)
	if err != nil {
		return err
	}
	if err := policy.canDelete(identity, task); err != nil {
		return err
	}

	err = s.audit.Record(&models.Log{
		TaskID:     task.ID,
		TaskTitle:  task.Title,
		UserID:     identity.ID,
		UserName:   identity.Name,
		FromStatus: models.LogStatusPtr(task.Status),
		ToStatus:   models.LogStatusDeleted,
		Action:     models.LogActionDelete,
	})
	if err != nil {
		s.log.WithField("operation", op).WithField("task_id", taskID).WithError(err).Error("delete aborted")
		return wrapInternal("failed to record task deletion", err)
	}

	if err := s.taskRepo.Delete(task.ID); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrTaskNotFound
		}
		return wrapInternal("failed to delete task", err)
	}
	return nil
}

// SuggestTasks drafts tasks from free text without persisting them.
func (s *TaskService) SuggestTasks(ctx context.Context, identity Identity, text string) ([]TaskDraft, error) {
	if !identity.IsSubmitter() {
		return nil, ErrOnlySubmitterSuggest
	}
	if s.suggester == nil {
		return nil, ErrAIServiceNotConfigured
	}

	text = strings.TrimSpace(text)
	if text == "" {
		return nil, ErrTextRequired
	}

	drafts, err := s.suggester.SuggestTasks(ctx, text)
	if err != nil {
		s.log.WithField("operation", "services.TaskService.SuggestTasks").WithError(err).Error("suggestion failed")
		return nil, wrapInternal("failed to suggest tasks", err)
	}

	valid := make([]TaskDraft, 0, len(drafts))
	for _, d := range drafts {
		d.Title = strings.TrimSpace(d.Title)
		if d.Title == "" {
			continue
		}
		d.Description = strings.TrimSpace(d.Description)
		valid = append(valid, d)
		if len(valid) == constants.MaxSuggestedTasks {
			break
		}
	}
	if len(valid) == 0 {
		return nil, ErrAINoTasksGenerated
	}
	return valid, nil
}

func (s *TaskService) findTask(taskID string) (*models.Task, error) {
	task, err := s.taskRepo.FindByID(taskID)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrTaskNotFound
		}
		return nil, wrapInternal("failed to find task", err)
	}
	return task, nil
}

// notifySubmitter tells the task's creator about a status change. Creators that
// no longer resolve to a user are skipped.
func (s *TaskService) notifySubmitter(actor Identity, task *models.Task) {
	log := s.log.WithField("operation", "services.TaskService.notifySubmitter").WithField("task_id", task.ID)

	actionType, ok := models.NotificationTypeFor(task.Status)
	if !ok {
		return
	}

	creator, err := s.userRepo.FindByID(task.CreatedByID)
	if err != nil {
		if !errors.Is(err, repository.ErrNotFound) {
			log.WithError(err).Warn("could not resolve task creator")
		}
		return
	}

	err = s.notifications.Create(&models.Notification{
		UserID:     creator.ID,
		TaskID:     task.ID,
		TaskTitle:  task.Title,
		Message:    notificationMessage(actor.Name, actionType, task.Title),
		ActionType: actionType,
		ActorName:  actor.Name,
	})
	if err != nil {
		log.WithError(err).Warn("notification not delivered")
	}
}

func notificationMessage(actor string, kind models.NotificationType, title string) string {
	switch kind {
	case models.NotificationTaskApproved:
		return fmt.Sprintf("%s approved your task \"%s\"", actor, title)
	case models.NotificationTaskRejected:
		return fmt.Sprintf("%s rejected your task \"%s\"", actor, title)
	default:
		return fmt.Sprintf("%s marked your task \"%s\" as done", actor, title)
	}
}

func (s *TaskService) resolveRef(task *models.Task) (*TaskView, error) {
	views, err := s.resolveRefs([]models.Task{*task})
	if err != nil {
		return nil, err
	}
	return &views[0], nil
}

// resolveRefs batch-loads the users referenced by tasks. Ids with no matching
// user resolve to a reference carrying only the id.
func (s *TaskService) resolveRefs(tasks []models.Task) ([]TaskView, error) {
	seen := map[string]bool{}
	ids := []string{}
	for _, t := range tasks {
		for _, id := range []*string{&t.CreatedByID, t.UpdatedByID} {
			if id != nil && *id != "" && !seen[*id] {
				seen[*id] = true
				ids = append(ids, *id)
			}
		}
	}

	users, err := s.userRepo.FindByIDs(ids)
	if err != nil {
		return nil, wrapInternal("failed to resolve task users", err)
	}
	byID := make(map[string]models.User, len(users))
	for _, u := range users {
		byID[u.ID] = u
	}

	ref := func(id string) *UserRef {
		if u, ok := byID[id]; ok {
			return &UserRef{ID: u.ID, Name: u.Name, Role: u.Role}
		}
		return &UserRef{ID: id}
	}

	views := make([]TaskView, len(tasks))
	for i, t := range tasks {
		views[i] = TaskView{Task: t, CreatedBy: ref(t.CreatedByID)}
		if t.UpdatedByID != nil {
			views[i].UpdatedBy = ref(*t.UpdatedByID)
		}
	}
	return views, nil
}
