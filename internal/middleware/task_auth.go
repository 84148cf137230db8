package middleware

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	apierrors "github.com/yukikurage/task-approval-api/internal/errors"
)

// RequireIDParam rejects requests whose :id is not a UUID. Malformed ids cannot
// name an existing record, so they are reported as missing.
func RequireIDParam(notFoundMessage string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := uuid.Parse(c.Param("id")); err != nil {
			apierrors.NotFound(c, notFoundMessage)
			return
		}
		c.Next()
	}
}
