package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow/taskflow-api/internal/constants"
	"github.com/taskflow/taskflow-api/internal/logger"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/repository"
)

var (
	ErrEmailTaken             = errors.New("email already registered")
	ErrInvalidCredentials     = errors.New("invalid email or password")
	ErrInvalidCurrentPassword = errors.New("current password is incorrect")
	ErrPasswordTooShort       = errors.New("password too short")
	ErrEmailRequired          = errors.New("email is required")
	ErrUserNotFound           = errors.New("user not found")
	ErrFailedToHashPassword   = errors.New("failed to hash password")
)

// RolePolicy decides which role a new account receives depending on how it
// was created. The two paths intentionally differ: self-registration creates
// an admin, admin-created accounts are plain users.
type RolePolicy struct {
	SelfRegister string
	AdminCreated string
}

// AuthService owns credential storage and verification.
type AuthService struct {
	userRepo repository.UserRepository
	policy   RolePolicy
}

// NewAuthService creates a new AuthService.
func NewAuthService(userRepo repository.UserRepository, policy RolePolicy) *AuthService {
	return &AuthService{
		userRepo: userRepo,
		policy:   policy,
	}
}

// RegisterInput represents the required information to create a new account.
type RegisterInput struct {
	Email     string
	Password  string
	FirstName string
	LastName  string
}

// Register creates a new self-registered account. The plaintext password is
// hashed with bcrypt and discarded.
func (s *AuthService) Register(ctx context.Context, input RegisterInput) (*models.User, error) {
	return s.register(ctx, input, s.policy.SelfRegister)
}

// RegisterSubordinateResult reports the created user plus any failed
// follow-up update to the admin's record.
type RegisterSubordinateResult struct {
	User              *models.User
	SecondaryFailures []SecondaryFailure
}

// RegisterSubordinate creates an account on behalf of an admin and records
// the new user in the admin's ownerOf list. The ownership append runs after
// the insert and is best-effort: when it fails the account still exists and
// the failure is reported, not rolled back.
func (s *AuthService) RegisterSubordinate(ctx context.Context, adminID primitive.ObjectID, input RegisterInput) (*RegisterSubordinateResult, error) {
	user, err := s.register(ctx, input, s.policy.AdminCreated)
	if err != nil {
		return nil, err
	}

	result := &RegisterSubordinateResult{User: user}
	if err := s.userRepo.AddOwned(ctx, adminID, user.ID); err != nil {
		logger.Warn("subordinate registered but owner update failed",
			zap.String("admin_id", adminID.Hex()),
			zap.String("user_id", user.ID.Hex()),
			zap.Error(err))
		result.SecondaryFailures = append(result.SecondaryFailures, SecondaryFailure{
			Step: "append subordinate to admin ownerOf",
			Err:  err,
		})
	}

	return result, nil
}

func (s *AuthService) register(ctx context.Context, input RegisterInput, role string) (*models.User, error) {
	email := strings.ToLower(strings.TrimSpace(input.Email))
	if email == "" {
		return nil, ErrEmailRequired
	}
	if len(input.Password) < constants.MinPasswordLength {
		return nil, ErrPasswordTooShort
	}

	if _, err := s.userRepo.FindByEmail(ctx, email); err == nil {
		return nil, ErrEmailTaken
	} else if !errors.Is(err, repository.ErrNotFound) {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, ErrFailedToHashPassword
	}

	user := &models.User{
		Email:        email,
		PasswordHash: string(hash),
		FirstName:    input.FirstName,
		LastName:     input.LastName,
		Role:         role,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// The unique index can still fire under a concurrent register.
		if errors.Is(err, repository.ErrDuplicateEmail) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return user, nil
}

// VerifyCredentials checks an email/password pair. An unknown email and a
// wrong password return the identical error so callers cannot probe which
// addresses are registered.
func (s *AuthService) VerifyCredentials(ctx context.Context, email, password string) (*models.User, error) {
	user, err := s.userRepo.FindByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// ChangePassword verifies the current password and stores a hash of the new one.
func (s *AuthService) ChangePassword(ctx context.Context, userID primitive.ObjectID, current, newPassword string) error {
	user, err := s.GetUser(ctx, userID)
	if err != nil {
		return err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(current)); err != nil {
		return ErrInvalidCurrentPassword
	}
	if len(newPassword) < constants.MinPasswordLength {
		return ErrPasswordTooShort
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(newPassword), bcrypt.DefaultCost)
	if err != nil {
		return ErrFailedToHashPassword
	}

	if err := s.userRepo.UpdatePassword(ctx, userID, string(hash)); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}
	return nil
}

// GetUser retrieves a user by id.
func (s *AuthService) GetUser(ctx context.Context, id primitive.ObjectID) (*models.User, error) {
	user, err := s.userRepo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find user: %w", err)
	}
	return user, nil
}

// ListUsers lists every account.
func (s *AuthService) ListUsers(ctx context.Context) ([]models.User, error) {
	users, err := s.userRepo.FindAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return users, nil
}

// DeleteUser removes an account. References to it elsewhere are left alone.
func (s *AuthService) DeleteUser(ctx context.Context, id primitive.ObjectID) error {
	if err := s.userRepo.Delete(ctx, id); err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return ErrUserNotFound
		}
		return fmt.Errorf("failed to delete user: %w", err)
	}
	return nil
}
