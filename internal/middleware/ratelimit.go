package middleware

import (
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	apierrors "github.com/yukikurage/task-approval-api/internal/errors"
	"github.com/yukikurage/task-approval-api/internal/metrics"
	"github.com/yukikurage/task-approval-api/internal/ratelimit"
)

// RateLimitPerUser allows at most max requests per window for each authenticated
// user. Limiter errors fail open. Must run after RequireAuth.
func RateLimitPerUser(limiter ratelimit.Limiter, name string, max int, window time.Duration, message string, log *logrus.Logger) gin.HandlerFunc {
	entry := logrus.NewEntry(log).WithField("operation", "middleware.RateLimitPerUser").WithField("limit", name)

	return func(c *gin.Context) {
		identity, ok := GetIdentity(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			return
		}

		allowed, err := limiter.Allow(c.Request.Context(), name+":"+identity.ID, max, window)
		if err != nil {
			entry.WithError(err).Warn("rate limiter unavailable")
			c.Header("X-RateLimit-Error", "limiter-error")
			c.Next()
			return
		}

		c.Header("X-RateLimit-Limit", strconv.Itoa(max))

		if !allowed {
			metrics.RLBlocked.WithLabelValues(name).Inc()
			c.Header("Retry-After", strconv.Itoa(int(window.Seconds())))
			apierrors.TooManyRequests(c, message)
			return
		}

		metrics.RLRequests.WithLabelValues(name).Inc()
		c.Next()
	}
}
