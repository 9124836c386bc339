package services

import (
	"context"
	"errors"
	"fmt"
	"net/mail"
	"strings"
	"time"

	"github.com/terraincognita07/femora/internal/models"
	"golang.org/x/crypto/bcrypt"
)

var (
	ErrUserExists              = errors.New("user already exists")
	ErrInvalidCredentials      = errors.New("invalid email or password")
	ErrCurrentPasswordMismatch = errors.New("current password is incorrect")
	ErrUserNotFound            = errors.New("user not found")
)

type AuthUserRepository interface {
	ExistsByNormalizedEmail(ctx context.Context, email string) (bool, error)
	FindByNormalizedEmail(ctx context.Context, email string) (models.User, error)
	FindByID(ctx context.Context, userID uint) (models.User, error)
	Create(ctx context.Context, user *models.User) error
	UpdatePassword(ctx context.Context, userID uint, passwordHash string, mustChangePassword bool) error
}

type RegisterInput struct {
	Name        string
	Email       string
	Password    string
	DateOfBirth *time.Time
}

type AuthService struct {
	users        AuthUserRepository
	isNotFound   func(error) bool
	passwordCost int
}

// NewAuthService takes a predicate that recognizes the repository's not-found error.
func NewAuthService(users AuthUserRepository, isNotFound func(error) bool) *AuthService {
	return &AuthService{users: users, isNotFound: isNotFound, passwordCost: bcrypt.DefaultCost}
}

func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

func (service *AuthService) Register(ctx context.Context, input RegisterInput) (models.User, error) {
	name := strings.TrimSpace(input.Name)
	email := NormalizeEmail(input.Email)
	if name == "" {
		return models.User{}, newValidationError("name", "Name is required")
	}
	if email == "" {
		return models.User{}, newValidationError("email", "Email is required")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return models.User{}, newValidationError("email", "Email address is invalid")
	}
	if err := ValidatePasswordStrength(input.Password); err != nil {
		return models.User{}, newValidationError("password", fmt.Sprintf("Password must be at least %d characters long", MinPasswordLength))
	}

	exists, err := service.users.ExistsByNormalizedEmail(ctx, email)
	if err != nil {
		return models.User{}, fmt.Errorf("check email: %w", err)
	}
	if exists {
		return models.User{}, ErrUserExists
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), service.passwordCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}

	user := models.User{
		Name:         name,
		Email:        email,
		PasswordHash: string(hash),
		DateOfBirth:  input.DateOfBirth,
	}
	if err := service.users.Create(ctx, &user); err != nil {
		return models.User{}, fmt.Errorf("create user: %w", err)
	}
	return user, nil
}

func (service *AuthService) Authenticate(ctx context.Context, email string, password string) (models.User, error) {
	user, err := service.users.FindByNormalizedEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if service.isNotFound(err) {
			return models.User{}, ErrInvalidCredentials
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)) != nil {
		return models.User{}, ErrInvalidCredentials
	}
	return user, nil
}

func (service *AuthService) FindByID(ctx context.Context, userID uint) (models.User, error) {
	user, err := service.users.FindByID(ctx, userID)
	if err != nil {
		if service.isNotFound(err) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}
	return user, nil
}

// ChangePassword replaces the password and clears any forced-change flag.
func (service *AuthService) ChangePassword(ctx context.Context, userID uint, currentPassword string, newPassword string) error {
	if currentPassword == "" || newPassword == "" {
		return newValidationError("", "Current password and new password are required")
	}
	if err := ValidatePasswordStrength(newPassword); err != nil {
		return newValidationError("newPassword", fmt.Sprintf("New password must be at least %d characters long", MinPasswordLength))
	}

	user, err := service.FindByID(ctx, userID)
	if err != nil {
		return err
	}
	if bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(currentPassword)) != nil {
		return ErrCurrentPasswordMismatch
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), service.passwordCost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}
	if err := service.users.UpdatePassword(ctx, userID, string(hash), false); err != nil {
		return fmt.Errorf("update password: %w", err)
	}
	return nil
}

// ResetPassword stores a temporary password that must be changed at next login.
func (service *AuthService) ResetPassword(ctx context.Context, email string, temporaryPassword string) (models.User, error) {
	user, err := service.users.FindByNormalizedEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if service.isNotFound(err) {
			return models.User{}, ErrUserNotFound
		}
		return models.User{}, fmt.Errorf("find user: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(temporaryPassword), service.passwordCost)
	if err != nil {
		return models.User{}, fmt.Errorf("hash password: %w", err)
	}
	if err := service.users.UpdatePassword(ctx, user.ID, string(hash), true); err != nil {
		return models.User{}, fmt.Errorf("update password: %w", err)
	}
	user.PasswordHash = string(hash)
	user.MustChangePassword = true
	return user, nil
}
