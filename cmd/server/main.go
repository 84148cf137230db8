package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-contrib/sessions"
	"github.com/gin-contrib/sessions/cookie"
	redisStore "github.com/gin-contrib/sessions/redis"
	"github.com/gin-gonic/gin"
	redis "github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/yukikurage/task-approval-api/internal/auth"
	"github.com/yukikurage/task-approval-api/internal/config"
	"github.com/yukikurage/task-approval-api/internal/constants"
	"github.com/yukikurage/task-approval-api/internal/database"
	"github.com/yukikurage/task-approval-api/internal/handlers"
	"github.com/yukikurage/task-approval-api/internal/logger"
	"github.com/yukikurage/task-approval-api/internal/ratelimit"
	"github.com/yukikurage/task-approval-api/internal/repository"
	"github.com/yukikurage/task-approval-api/internal/services"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	// Load configuration
	cfg := config.Load()
	log := logger.New(cfg.LogLevel, cfg.LogFormat)

	gin.SetMode(cfg.GinMode)

	db, err := database.Connect(cfg, log)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}
	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("Failed to run migrations")
	}

	r := gin.New()
	r.Use(gin.Logger(), gin.Recovery())
	r.Use(sessions.Sessions(constants.SessionCookieName, newSessionStore(cfg, log)))

	tokens := auth.NewTokenManager(cfg.JWTSecret, cfg.JWTExpiresIn)
	passwords := auth.NewPasswordManager(bcrypt.DefaultCost)

	userRepo := repository.NewUserRepository(db)
	taskRepo := repository.NewTaskRepository(db)
	logRepo := repository.NewLogRepository(db)
	notificationRepo := repository.NewNotificationRepository(db)

	// Suggestions stay disabled without an API key
	var suggester services.TaskSuggester
	if cfg.OpenAIAPIKey != "" {
		suggester = services.NewAIService(cfg.OpenAIAPIKey)
	}

	auditService := services.NewAuditService(logRepo, userRepo, log)
	notificationService := services.NewNotificationService(notificationRepo, log)
	taskService := services.NewTaskService(taskRepo, userRepo, auditService, notificationService, suggester, log)
	authService := services.NewAuthService(userRepo, passwords, tokens)

	router := &handlers.Router{
		Auth:             handlers.NewAuthHandler(authService, log),
		Tasks:            handlers.NewTaskHandler(taskService, log),
		Logs:             handlers.NewLogHandler(auditService, log),
		Notifications:    handlers.NewNotificationHandler(notificationService, log),
		Tokens:           tokens,
		Limiter:          newLimiter(cfg, log),
		CreateTaskLimit:  cfg.CreateTaskRateLimit,
		CreateTaskWindow: cfg.CreateTaskRateWindow,
		Log:              log,
	}
	router.Register(r)

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           r,
		ReadHeaderTimeout: 10 * time.Second,
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	go func() {
		log.WithField("port", cfg.Port).Info("Server starting")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	<-ctx.Done()
	log.Info("Shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.WithError(err).Error("Graceful shutdown failed")
	}
}

// newSessionStore prefers Redis and falls back to signed cookies when it is unreachable.
func newSessionStore(cfg *config.Config, log *logrus.Logger) sessions.Store {
	var store sessions.Store
	if addr := cfg.RedisAddr(); addr != "" {
		s, err := redisStore.NewStore(10, "tcp", addr, "", cfg.RedisPassword, []byte(cfg.SessionSecret))
		if err != nil {
			log.WithError(err).Warn("Redis session store unavailable, using cookie sessions")
		} else {
			store = s
		}
	}
	if store == nil {
		store = cookie.NewStore([]byte(cfg.SessionSecret))
	}

	store.Options(sessions.Options{
		Path:     "/",
		MaxAge:   86400 * 7,
		HttpOnly: true,
		Secure:   cfg.IsProduction(),
		SameSite: http.SameSiteLaxMode,
	})
	return store
}

// newLimiter returns a Redis-backed limiter when Redis answers a ping, else an in-process one.
func newLimiter(cfg *config.Config, log *logrus.Logger) ratelimit.Limiter {
	addr := cfg.RedisAddr()
	if addr == "" {
		return ratelimit.NewMemoryLimiter()
	}

	client := redis.NewClient(&redis.Options{Addr: addr, Password: cfg.RedisPassword})
	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		log.WithError(err).Warn("Redis unavailable, using in-memory rate limiting")
		client.Close()
		return ratelimit.NewMemoryLimiter()
	}
	return ratelimit.NewRedisLimiter(client, "rl:")
}
