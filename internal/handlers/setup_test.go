package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/suite"
	"github.com/yukikurage/task-approval-api/internal/auth"
	"github.com/yukikurage/task-approval-api/internal/constants"
	"github.com/yukikurage/task-approval-api/internal/database"
	"github.com/yukikurage/task-approval-api/internal/logger"
	"github.com/yukikurage/task-approval-api/internal/models"
	"github.com/yukikurage/task-approval-api/internal/ratelimit"
	"github.com/yukikurage/task-approval-api/internal/repository"
	"github.com/yukikurage/task-approval-api/internal/services"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

// apiSuite wires the full router against an in-memory database.
type apiSuite struct {
	suite.Suite
	db     *gorm.DB
	router *gin.Engine
	tokens *auth.TokenManager
	users  repository.UserRepository
}

func (suite *apiSuite) SetupTest() {
	var err error
	suite.db, err = database.NewInMemory()
	suite.Require().NoError(err)

	gin.SetMode(gin.TestMode)
	log := logger.Discard()

	suite.tokens = auth.NewTokenManager("test-secret", time.Hour)
	suite.users = repository.NewUserRepository(suite.db)
	logRepo := repository.NewLogRepository(suite.db)

	audit := services.NewAuditService(logRepo, suite.users, log)
	notifications := services.NewNotificationService(repository.NewNotificationRepository(suite.db), log)
	taskService := services.NewTaskService(repository.NewTaskRepository(suite.db), suite.users, audit, notifications, nil, log)
	authService := services.NewAuthService(suite.users, auth.NewPasswordManager(bcrypt.MinCost), suite.tokens)

	suite.router = gin.New()
	suite.router.Use(sessions.Sessions(constants.SessionCookieName, cookie.NewStore([]byte("test-session"))))

	rt := &Router{
		Auth:             NewAuthHandler(authService, log),
		Tasks:            NewTaskHandler(taskService, log),
		Logs:             NewLogHandler(audit, log),
		Notifications:    NewNotificationHandler(notifications, log),
		Tokens:           suite.tokens,
		Limiter:          ratelimit.NewMemoryLimiter(),
		CreateTaskLimit:  constants.DefaultCreateTaskRateLimit,
		CreateTaskWindow: constants.DefaultCreateTaskRateWindow,
		Log:              log,
	}
	rt.Register(suite.router)
}

func (suite *apiSuite) TearDownTest() {
	sqlDB, err := suite.db.DB()
	suite.Require().NoError(err)
	sqlDB.Close()
}

// createUser stores a user directly and returns a bearer token for it.
func (suite *apiSuite) createUser(name string, role models.Role) (*models.User, string) {
	user := &models.User{Name: name, Username: name, PasswordHash: "unused", Role: role}
	suite.Require().NoError(suite.users.Create(user))

	token, err := suite.tokens.Generate(user.ID, user.Name, string(user.Role))
	suite.Require().NoError(err)
	return user, token
}

func (suite *apiSuite) do(method, url, token string, body interface{}) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		suite.Require().NoError(err)
		reader = bytes.NewReader(raw)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, url, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}

	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

func (suite *apiSuite) decode(w *httptest.ResponseRecorder, v interface{}) {
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), v))
}

func (suite *apiSuite) message(w *httptest.ResponseRecorder) string {
	var body struct {
		Message string `json:"message"`
	}
	suite.decode(w, &body)
	return body.Message
}

func (suite *apiSuite) code(w *httptest.ResponseRecorder) string {
	var body struct {
		Code string `json:"code"`
	}
	suite.decode(w, &body)
	return body.Code
}

type taskBody struct {
	ID          string  `json:"id"`
	Title       string  `json:"title"`
	Description *string `json:"description"`
	Status      string  `json:"status"`
	CreatedBy   struct {
		ID   string `json:"id"`
		Name string `json:"name"`
		Role string `json:"role"`
	} `json:"createdBy"`
	UpdatedBy *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"updatedBy"`
}

func (suite *apiSuite) createTask(token, title string) taskBody {
	w := suite.do(http.MethodPost, "/api/tasks", token, gin.H{"title": title})
	suite.Require().Equal(http.StatusCreated, w.Code, w.Body.String())
	var task taskBody
	suite.decode(w, &task)
	return task
}
