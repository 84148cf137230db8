package constants

import "time"

// Context and session keys
const (
	ContextKeyIdentity = "identity"

	SessionCookieName = "task_session"
	SessionKeyUserID  = "user_id"
	SessionKeyName    = "name"
	SessionKeyRole    = "role"
)

// Pagination
const (
	MinPageSize             = 1
	MaxPageSize             = 1000
	DefaultLogPageSize      = 100
	DefaultNotificationSize = 20
)

// Auth
const (
	MinPasswordLength  = 8
	DefaultTokenExpiry = 24 * time.Hour
	TokenIssuer        = "task-approval-api"
)

// Task creation throttling
const (
	DefaultCreateTaskRateLimit  = 5
	DefaultCreateTaskRateWindow = time.Minute
	MaxSuggestedTasks           = 20
)
