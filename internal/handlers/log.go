package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/task-approval-api/internal/constants"
	"github.com/yukikurage/task-approval-api/internal/dto"
	apierrors "github.com/yukikurage/task-approval-api/internal/errors"
	"github.com/yukikurage/task-approval-api/internal/middleware"
	"github.com/yukikurage/task-approval-api/internal/services"
	"github.com/yukikurage/task-approval-api/internal/utils"
)

type LogHandler struct {
	auditService *services.AuditService
	log          *logrus.Entry
}

func NewLogHandler(auditService *services.AuditService, log *logrus.Logger) *LogHandler {
	return &LogHandler{
		auditService: auditService,
		log:          logrus.NewEntry(log),
	}
}

// ListLogs returns a page of audit records
func (h *LogHandler) ListLogs(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	start, err := parseDateParam(c.Query("startDate"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid startDate")
		return
	}
	end, err := parseDateParam(c.Query("endDate"))
	if err != nil {
		apierrors.BadRequest(c, "Invalid endDate")
		return
	}

	params := utils.GetPaginationParams(c, constants.DefaultLogPageSize)

	result, err := h.auditService.Query(identity, services.LogQuery{
		TaskID:      c.Query("taskId"),
		UserID:      c.Query("userId"),
		SubmitterID: c.Query("submitterId"),
		Action:      c.Query("action"),
		FromStatus:  c.Query("fromStatus"),
		ToStatus:    c.Query("toStatus"),
		Start:       start,
		End:         end,
		Page:        params.Page,
		Limit:       params.Limit,
	})
	if err != nil {
		respondError(c, h.log, "handlers.LogHandler.ListLogs", err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"logs":       result.Logs,
		"pagination": result.Pagination,
	})
}

// ListSubmitters returns every submitter for the approver filter picker
func (h *LogHandler) ListSubmitters(c *gin.Context) {
	identity, ok := middleware.GetIdentity(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	users, err := h.auditService.ListSubmitters(identity)
	if err != nil {
		respondError(c, h.log, "handlers.LogHandler.ListSubmitters", err)
		return
	}

	c.JSON(http.StatusOK, dto.ToSubmitterDTOs(users))
}

// parseDateParam accepts RFC 3339 timestamps or plain dates. Empty means unset.
func parseDateParam(raw string) (*time.Time, error) {
	if raw == "" {
		return nil, nil
	}
	for _, layout := range []string{time.RFC3339Nano, "2006-01-02"} {
		if t, err := time.Parse(layout, raw); err == nil {
			t = t.UTC()
			return &t, nil
		}
	}
	return nil, fmt.Errorf("invalid date %q", raw)
}
