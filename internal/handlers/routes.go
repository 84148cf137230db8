package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/task-approval-api/internal/auth"
	"github.com/yukikurage/task-approval-api/internal/middleware"
	"github.com/yukikurage/task-approval-api/internal/models"
	"github.com/yukikurage/task-approval-api/internal/ratelimit"
)

// Router bundles the handlers and middleware collaborators needed to mount the API.
type Router struct {
	Auth          *AuthHandler
	Tasks         *TaskHandler
	Logs          *LogHandler
	Notifications *NotificationHandler

	Tokens           *auth.TokenManager
	Limiter          ratelimit.Limiter
	CreateTaskLimit  int
	CreateTaskWindow time.Duration
	Log              *logrus.Logger
}

const createTaskLimitMessage = "Too many task creation attempts, please try again later."

// Register mounts every route on r.
func (rt *Router) Register(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":  "ok",
			"message": "Task Approval API is running",
		})
	})
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	requireAuth := middleware.RequireAuth(rt.Tokens)
	taskID := middleware.RequireIDParam("Task not found")
	submittersOnly := middleware.RequireRole("Only submitters can create tasks", models.RoleSubmitter)
	createLimit := middleware.RateLimitPerUser(rt.Limiter, "create_task", rt.CreateTaskLimit, rt.CreateTaskWindow, createTaskLimitMessage, rt.Log)

	api := r.Group("/api")
	{
		authRoutes := api.Group("/auth")
		{
			authRoutes.POST("/register", rt.Auth.Register)
			authRoutes.POST("/login", rt.Auth.Login)
			authRoutes.POST("/logout", rt.Auth.Logout)
			authRoutes.GET("/me", requireAuth, rt.Auth.GetCurrentUser)
		}

		tasks := api.Group("/tasks")
		tasks.Use(requireAuth)
		{
			tasks.GET("", rt.Tasks.ListTasks)
			tasks.POST("", submittersOnly, createLimit, rt.Tasks.CreateTask)
			tasks.POST("/create", submittersOnly, createLimit, rt.Tasks.CreateTask)
			tasks.POST("/suggest", rt.Tasks.SuggestTasks)
			tasks.GET("/:id", taskID, rt.Tasks.GetTask)
			tasks.PUT("/:id", taskID, rt.Tasks.UpdateTask)
			tasks.DELETE("/:id", taskID, rt.Tasks.DeleteTask)
		}

		logs := api.Group("/logs")
		logs.Use(requireAuth)
		{
			logs.GET("", rt.Logs.ListLogs)
			logs.GET("/submitters", rt.Logs.ListSubmitters)
		}

		notifications := api.Group("/notifications")
		notifications.Use(requireAuth)
		{
			notifications.GET("", rt.Notifications.ListNotifications)
			notifications.POST("/clear", rt.Notifications.ClearNotifications)
			notifications.DELETE("/clear", rt.Notifications.ClearNotifications)
			notifications.DELETE("/clear-all", rt.Notifications.ClearNotifications)
		}
	}
}
