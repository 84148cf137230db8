package services

import (
	"errors"
	"fmt"
	"strings"

	"github.com/yukikurage/task-approval-api/internal/auth"
	"github.com/yukikurage/task-approval-api/internal/models"
	"github.com/yukikurage/task-approval-api/internal/repository"
)

// AuthService handles authentication related business logic.
type AuthService struct {
	userRepo  repository.UserRepository
	passwords *auth.PasswordManager
	tokens    *auth.TokenManager
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, passwords *auth.PasswordManager, tokens *auth.TokenManager) *AuthService {
	return &AuthService{
		userRepo:  userRepo,
		passwords: passwords,
		tokens:    tokens,
	}
}

// RegisterInput represents the required information to create a new user.
type RegisterInput struct {
	Name     string
	Username string
	Password string
	Role     string
}

// Register creates a new user with a hashed password.
func (s *AuthService) Register(input RegisterInput) (*models.User, error) {
	name := strings.TrimSpace(input.Name)
	if name == "" {
		return nil, ErrNameRequired
	}
	username := strings.TrimSpace(input.Username)
	if username == "" {
		return nil, ErrUsernameRequired
	}
	role, err := models.ParseRole(input.Role)
	if err != nil {
		return nil, ErrInvalidRole
	}

	hashed, err := s.passwords.Hash(input.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrPasswordRequired):
			return nil, ErrPasswordRequired
		case errors.Is(err, auth.ErrWeakPassword):
			return nil, ErrWeakPassword
		default:
			return nil, wrapInternal("failed to hash password", err)
		}
	}

	if _, err := s.userRepo.FindByUsername(username); err == nil {
		return nil, ErrUsernameTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, wrapInternal("failed to check username", err)
	}

	user := &models.User{
		Name:         name,
		Username:     username,
		PasswordHash: hashed,
		Role:         role,
	}
	if err := s.userRepo.Create(user); err != nil {
		return nil, wrapInternal("failed to create user", err)
	}

	return user, nil
}

// LoginInput holds the credentials for authentication.
type LoginInput struct {
	Username string
	Password string
	Role     string
}

// LoginResult is an authenticated user with a freshly issued token.
type LoginResult struct {
	Token string
	User  *models.User
}

// Login verifies credentials and the requested role, then issues a token.
func (s *AuthService) Login(input LoginInput) (*LoginResult, error) {
	user, err := s.userRepo.FindByUsername(strings.TrimSpace(input.Username))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, wrapInternal("failed to find user", err)
	}

	if !s.passwords.Compare(user.PasswordHash, input.Password) {
		return nil, ErrInvalidCredentials
	}

	if input.Role != "" && models.Role(input.Role) != user.Role {
		return nil, newError(KindForbidden, fmt.Sprintf(
			"You don't have access as %s. Your account is registered as a %s.", input.Role, user.Role))
	}

	token, err := s.tokens.Generate(user.ID, user.Name, string(user.Role))
	if err != nil {
		return nil, wrapInternal("failed to issue token", err)
	}

	return &LoginResult{Token: token, User: user}, nil
}

// GetUser retrieves a user by ID.
func (s *AuthService) GetUser(id string) (*models.User, error) {
	user, err := s.userRepo.FindByID(id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, wrapInternal("failed to find user", err)
	}

	return user, nil
}
