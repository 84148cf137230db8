package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/task-approval-api/internal/dto"
	apierrors "github.com/yukikurage/task-approval-api/internal/errors"
	"github.com/yukikurage/task-approval-api/internal/middleware"
	"github.com/yukikurage/task-approval-api/internal/services"
)

type TaskHandler struct {
	taskService *services.TaskService
	log         *logrus.Entry
}

func NewTaskHandler(taskService *services.TaskService, log *logrus.Logger) *TaskHandler {
	return &TaskHandler{
		taskService: taskService,
		log:         logrus.NewEntry(log),
	}
}

// ListTasks returns the tasks visible to the caller, optionally filtered by status
func (h *TaskHandler) ListTasks(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	views, err := h.taskService.ListTasks(identity, c.Query("status"))
	if err != nil {
		respondError(c, h.log, "handlers.TaskHandler.ListTasks", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTOs(views))
}

// CreateTask creates a new pending task
func (h *TaskHandler) CreateTask(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req struct {
		Title       string  `json:"title"`
		Description *string `json:"description"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.taskService.CreateTask(identity, services.CreateTaskInput{
		Title:       req.Title,
		Description: req.Description,
	})
	if err != nil {
		respondError(c, h.log, "handlers.TaskHandler.CreateTask", err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToTaskDTO(*view))
}

// GetTask returns a specific task by ID
func (h *TaskHandler) GetTask(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	view, err := h.taskService.GetTask(identity, c.Param("id"))
	if err != nil {
		respondError(c, h.log, "handlers.TaskHandler.GetTask", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*view))
}

// UpdateTask edits content (submitters) or moves the status (approvers)
func (h *TaskHandler) UpdateTask(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req struct {
		Title       *string `json:"title"`
		Description *string `json:"description"`
		Status      *string `json:"status"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	view, err := h.taskService.UpdateTask(identity, c.Param("id"), services.UpdateTaskInput{
		Title:       req.Title,
		Description: req.Description,
		Status:      req.Status,
	})
	if err != nil {
		respondError(c, h.log, "handlers.TaskHandler.UpdateTask", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToTaskDTO(*view))
}

// DeleteTask removes a pending task
func (h *TaskHandler) DeleteTask(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	if err := h.taskService.DeleteTask(identity, c.Param("id")); err != nil {
		respondError(c, h.log, "handlers.TaskHandler.DeleteTask", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Task deleted successfully"})
}

// SuggestTasks drafts tasks from free text
func (h *TaskHandler) SuggestTasks(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req struct {
		Text string `json:"text" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Text is required")
		return
	}

	drafts, err := h.taskService.SuggestTasks(c.Request.Context(), identity, req.Text)
	if err != nil {
		respondError(c, h.log, "handlers.TaskHandler.SuggestTasks", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"tasks": dto.ToTaskDraftDTOs(drafts)})
}
