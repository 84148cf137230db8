package auth

import (
	"errors"
	"fmt"
	"strings"
	"unicode"

	"github.com/yukikurage/task-approval-api/internal/constants"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrPasswordRequired = errors.New("password is required")
	ErrWeakPassword     = errors.New("password does not meet requirements")
)

// specialChars is the set a password must draw at least one character from.
const specialChars = `!@#$%^&*(),.?":{}|<>`

// PasswordManager handles password hashing and policy checks.
type PasswordManager struct {
	minLength int
	cost      int
}

// NewPasswordManager returns a manager hashing at the given bcrypt cost.
// Costs outside bcrypt's range fall back to bcrypt.DefaultCost.
func NewPasswordManager(cost int) *PasswordManager {
	if cost < bcrypt.MinCost || cost > bcrypt.MaxCost {
		cost = bcrypt.DefaultCost
	}
	return &PasswordManager{
		minLength: constants.MinPasswordLength,
		cost:      cost,
	}
}

// Validate checks length, upper, lower, digit and special character requirements.
func (pm *PasswordManager) Validate(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < pm.minLength {
		return fmt.Errorf("%w: minimum length is %d characters", ErrWeakPassword, pm.minLength)
	}

	var hasUpper, hasLower, hasDigit, hasSpecial bool
	for _, char := range password {
		switch {
		case unicode.IsUpper(char):
			hasUpper = true
		case unicode.IsLower(char):
			hasLower = true
		case unicode.IsDigit(char):
			hasDigit = true
		case strings.ContainsRune(specialChars, char):
			hasSpecial = true
		}
	}

	if !hasUpper || !hasLower || !hasDigit || !hasSpecial {
		return ErrWeakPassword
	}
	return nil
}

// Hash validates and hashes a password.
func (pm *PasswordManager) Hash(password string) (string, error) {
	if err := pm.Validate(password); err != nil {
		return "", err
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), pm.cost)
	if err != nil {
		return "", fmt.Errorf("hash password: %w", err)
	}
	return string(hashed), nil
}

// Compare reports whether password matches hashed.
func (pm *PasswordManager) Compare(hashed, password string) bool {
	return bcrypt.CompareHashAndPassword([]byte(hashed), []byte(password)) == nil
}
