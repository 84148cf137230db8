package handlers

import (
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/stretchr/testify/suite"
	apierrors "github.com/yukikurage/task-approval-api/internal/errors"
	"github.com/yukikurage/task-approval-api/internal/models"
)

type TaskHandlerTestSuite struct {
	apiSuite
	alice, bob, carol          *models.User
	aliceTok, bobTok, carolTok string
}

func (suite *TaskHandlerTestSuite) SetupTest() {
	suite.apiSuite.SetupTest()
	suite.alice, suite.aliceTok = suite.createUser("Alice", models.RoleSubmitter)
	suite.bob, suite.bobTok = suite.createUser("Bob", models.RoleSubmitter)
	suite.carol, suite.carolTok = suite.createUser("Carol", models.RoleApprover)
}

func (suite *TaskHandlerTestSuite) TestRequiresAuth() {
	w := suite.do(http.MethodGet, "/api/tasks", "", nil)
	suite.Equal(http.StatusUnauthorized, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask() {
	task := suite.createTask(suite.aliceTok, "Buy milk")

	suite.Equal("pending", task.Status)
	suite.Equal(suite.alice.ID, task.CreatedBy.ID)
	suite.Equal("Alice", task.CreatedBy.Name)
	suite.Nil(task.UpdatedBy)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_Alias() {
	w := suite.do(http.MethodPost, "/api/tasks/create", suite.aliceTok, gin.H{"title": "Alias", "description": "via create"})
	suite.Equal(http.StatusCreated, w.Code)
}

func (suite *TaskHandlerTestSuite) TestCreateTask_ApproverForbidden() {
	w := suite.do(http.MethodPost, "/api/tasks", suite.carolTok, gin.H{"title": "Nope"})
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("Only submitters can create tasks", suite.message(w))
}

func (suite *TaskHandlerTestSuite) TestCreateTask_MissingTitle() {
	w := suite.do(http.MethodPost, "/api/tasks", suite.aliceTok, gin.H{"description": "no title"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Title is required", suite.message(w))
}

func (suite *TaskHandlerTestSuite) TestCreateTask_RateLimited() {
	for i := 0; i < 5; i++ {
		suite.createTask(suite.aliceTok, "Burst")
	}

	w := suite.do(http.MethodPost, "/api/tasks", suite.aliceTok, gin.H{"title": "One too many"})
	suite.Equal(http.StatusTooManyRequests, w.Code)
	suite.Equal("Too many task creation attempts, please try again later.", suite.message(w))

	suite.createTask(suite.bobTok, "Other user unaffected")
}

func (suite *TaskHandlerTestSuite) TestListTasks() {
	suite.createTask(suite.aliceTok, "A1")
	suite.createTask(suite.bobTok, "B1")

	w := suite.do(http.MethodGet, "/api/tasks", suite.aliceTok, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var mine []taskBody
	suite.decode(w, &mine)
	suite.Require().Len(mine, 1)
	suite.Equal("A1", mine[0].Title)

	w = suite.do(http.MethodGet, "/api/tasks", suite.carolTok, nil)
	var all []taskBody
	suite.decode(w, &all)
	suite.Len(all, 2)

	w = suite.do(http.MethodGet, "/api/tasks?status=approved", suite.carolTok, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())

	w = suite.do(http.MethodGet, "/api/tasks?status=archived", suite.carolTok, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.JSONEq(`[]`, w.Body.String())
}

func (suite *TaskHandlerTestSuite) TestGetTask() {
	task := suite.createTask(suite.aliceTok, "Mine")

	w := suite.do(http.MethodGet, "/api/tasks/"+task.ID, suite.carolTok, nil)
	suite.Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodGet, "/api/tasks/"+task.ID, suite.bobTok, nil)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("Access denied - you do not have permission to view this task", suite.message(w))

	w = suite.do(http.MethodGet, "/api/tasks/"+uuid.NewString(), suite.aliceTok, nil)
	suite.Equal(http.StatusNotFound, w.Code)
	suite.Equal("Task not found", suite.message(w))

	w = suite.do(http.MethodGet, "/api/tasks/not-an-id", suite.aliceTok, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestApprovalFlow() {
	task := suite.createTask(suite.aliceTok, "Buy milk")
	url := "/api/tasks/" + task.ID

	w := suite.do(http.MethodPut, url, suite.carolTok, gin.H{"status": "approved"})
	suite.Require().Equal(http.StatusOK, w.Code, w.Body.String())
	var updated taskBody
	suite.decode(w, &updated)
	suite.Equal("approved", updated.Status)
	suite.Require().NotNil(updated.UpdatedBy)
	suite.Equal("Carol", updated.UpdatedBy.Name)

	w = suite.do(http.MethodPut, url, suite.carolTok, gin.H{"status": "done"})
	suite.Require().Equal(http.StatusOK, w.Code)

	w = suite.do(http.MethodPut, url, suite.carolTok, gin.H{"status": "rejected"})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.Equal("Invalid status transition", suite.message(w))
	suite.Equal(apierrors.ErrCodeInvalidTransition, suite.code(w))

	w = suite.do(http.MethodGet, "/api/notifications", suite.aliceTok, nil)
	suite.Require().Equal(http.StatusOK, w.Code)
	var notes struct {
		Notifications []models.Notification `json:"notifications"`
		Pagination    struct {
			Total int `json:"total"`
		} `json:"pagination"`
	}
	suite.decode(w, &notes)
	suite.Equal(2, notes.Pagination.Total)
	var kinds []models.NotificationType
	for _, n := range notes.Notifications {
		suite.Equal(suite.alice.ID, n.UserID)
		kinds = append(kinds, n.ActionType)
	}
	suite.ElementsMatch([]models.NotificationType{models.NotificationTaskApproved, models.NotificationTaskDone}, kinds)
}

func (suite *TaskHandlerTestSuite) TestSubmitterCannotChangeStatus() {
	task := suite.createTask(suite.bobTok, "Own task")

	w := suite.do(http.MethodPut, "/api/tasks/"+task.ID, suite.bobTok, gin.H{"status": "approved"})
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("Submitters cannot change task status", suite.message(w))
}

func (suite *TaskHandlerTestSuite) TestUpdateRules() {
	task := suite.createTask(suite.aliceTok, "Draft")
	url := "/api/tasks/" + task.ID

	w := suite.do(http.MethodPut, url, suite.bobTok, gin.H{"title": "Mine now"})
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("Access denied - not your task", suite.message(w))

	w = suite.do(http.MethodPut, url, suite.carolTok, gin.H{"description": "edited"})
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("Approvers cannot modify task content", suite.message(w))

	w = suite.do(http.MethodPut, url, suite.carolTok, gin.H{"description": "", "status": "approved"})
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("Approvers cannot modify task content", suite.message(w))

	w = suite.do(http.MethodPut, url, suite.aliceTok, gin.H{"title": "Final"})
	suite.Require().Equal(http.StatusOK, w.Code)
	var edited taskBody
	suite.decode(w, &edited)
	suite.Equal("Final", edited.Title)

	suite.do(http.MethodPut, url, suite.carolTok, gin.H{"status": "rejected"})
	w = suite.do(http.MethodPut, url, suite.aliceTok, gin.H{"title": "Too late"})
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("Can only edit pending tasks", suite.message(w))
}

func (suite *TaskHandlerTestSuite) TestDeleteTask() {
	task := suite.createTask(suite.aliceTok, "Temp")
	url := "/api/tasks/" + task.ID

	w := suite.do(http.MethodDelete, url, suite.carolTok, nil)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("Only submitters can delete tasks", suite.message(w))

	w = suite.do(http.MethodDelete, url, suite.bobTok, nil)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("Access denied - not your task", suite.message(w))

	w = suite.do(http.MethodDelete, url, suite.aliceTok, nil)
	suite.Equal(http.StatusOK, w.Code)
	suite.Equal("Task deleted successfully", suite.message(w))

	w = suite.do(http.MethodGet, url, suite.aliceTok, nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *TaskHandlerTestSuite) TestDeleteNonPending() {
	task := suite.createTask(suite.aliceTok, "Approved")
	suite.do(http.MethodPut, "/api/tasks/"+task.ID, suite.carolTok, gin.H{"status": "approved"})

	w := suite.do(http.MethodDelete, "/api/tasks/"+task.ID, suite.aliceTok, nil)
	suite.Equal(http.StatusForbidden, w.Code)
	suite.Equal("Can only delete pending tasks", suite.message(w))
}

func (suite *TaskHandlerTestSuite) TestSuggestWithoutAI() {
	w := suite.do(http.MethodPost, "/api/tasks/suggest", suite.aliceTok, gin.H{"text": "we need milk"})
	suite.Equal(http.StatusServiceUnavailable, w.Code)
}

func TestTaskHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(TaskHandlerTestSuite))
}
