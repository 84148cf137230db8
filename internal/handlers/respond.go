package handlers

import (
	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	apierrors "github.com/yukikurage/task-approval-api/internal/errors"
	"github.com/yukikurage/task-approval-api/internal/services"
)

// respondError maps a service failure onto the API error envelope. Internal
// failures are logged and rendered with a generic message.
func respondError(c *gin.Context, log *logrus.Entry, op string, err error) {
	switch services.KindOf(err) {
	case services.KindForbidden:
		apierrors.Forbidden(c, err.Error())
	case services.KindInvalidTransition:
		apierrors.InvalidTransition(c, err.Error())
	case services.KindNotFound:
		apierrors.NotFound(c, err.Error())
	case services.KindUnauthenticated:
		apierrors.Unauthorized(c, err.Error())
	case services.KindInvalidInput:
		apierrors.BadRequest(c, err.Error())
	case services.KindUnavailable:
		apierrors.ServiceUnavailable(c, err.Error())
	default:
		log.WithField("operation", op).WithError(err).Error("request failed")
		apierrors.InternalError(c, "")
	}
}
