package services

import (
	"errors"
	"fmt"
)

// Kind classifies a service failure so transports can map it to a response.
type Kind int

const (
	KindInternal Kind = iota
	KindForbidden
	KindInvalidTransition
	KindNotFound
	KindUnauthenticated
	KindInvalidInput
	KindUnavailable
)

// Error is a classified failure with a caller-safe message.
type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func newError(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// KindOf returns the kind of err, or KindInternal if err is not a *Error.
func KindOf(err error) Kind {
	var svcErr *Error
	if errors.As(err, &svcErr) {
		return svcErr.Kind
	}
	return KindInternal
}

var (
	ErrTaskNotFound         = newError(KindNotFound, "Task not found")
	ErrOnlySubmitterCreate  = newError(KindForbidden, "Only submitters can create tasks")
	ErrTaskViewDenied       = newError(KindForbidden, "Access denied - you do not have permission to view this task")
	ErrNotTaskOwner         = newError(KindForbidden, "Access denied - not your task")
	ErrEditNotPending       = newError(KindForbidden, "Can only edit pending tasks")
	ErrSubmitterStatus      = newError(KindForbidden, "Submitters cannot change task status")
	ErrApproverContent      = newError(KindForbidden, "Approvers cannot modify task content")
	ErrInvalidTransition    = newError(KindInvalidTransition, "Invalid status transition")
	ErrOnlySubmitterDelete  = newError(KindForbidden, "Only submitters can delete tasks")
	ErrDeleteNotPending     = newError(KindForbidden, "Can only delete pending tasks")
	ErrApproversOnly        = newError(KindForbidden, "Access denied - approvers only")
	ErrOnlySubmitterSuggest = newError(KindForbidden, "Only submitters can request task suggestions")
	ErrTitleRequired        = newError(KindInvalidInput, "Title is required")
	ErrTitleEmpty           = newError(KindInvalidInput, "Title cannot be empty")
	ErrTextRequired         = newError(KindInvalidInput, "Text is required")

	ErrUsernameTaken      = newError(KindInvalidInput, "Username already exists")
	ErrUsernameRequired   = newError(KindInvalidInput, "Username is required")
	ErrNameRequired       = newError(KindInvalidInput, "Name is required")
	ErrInvalidRole        = newError(KindInvalidInput, "Role must be either submitter or approver")
	ErrPasswordRequired   = newError(KindInvalidInput, "Password is required.")
	ErrWeakPassword       = newError(KindInvalidInput, "Password does not meet minimum requirements.")
	ErrInvalidCredentials = newError(KindUnauthenticated, "Invalid credentials")
	ErrUserNotFound       = newError(KindNotFound, "User not found")

	ErrAIServiceNotConfigured = newError(KindUnavailable, "AI service is not configured")
	ErrAINoTasksGenerated     = newError(KindInternal, "AI did not generate any tasks")
)

// wrapInternal attaches a cause to an internal failure. The cause is logged,
// never rendered to callers.
func wrapInternal(message string, cause error) error {
	return fmt.Errorf("%s: %w", message, cause)
}
