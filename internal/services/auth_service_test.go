package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/taskflow/taskflow-api/internal/constants"
	"github.com/taskflow/taskflow-api/internal/repository/inmemory"
)

func newAuthService() (*AuthService, *inmemory.UserStorage) {
	users := inmemory.NewUserStorage()
	svc := NewAuthService(users, RolePolicy{
		SelfRegister: constants.RoleAdmin,
		AdminCreated: constants.RoleUser,
	})
	return svc, users
}

func registerInput(email string) RegisterInput {
	return RegisterInput{
		Email:     email,
		Password:  "supersecret",
		FirstName: "Ada",
		LastName:  "Lovelace",
	}
}

func TestAuthService_Register(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, registerInput("ada@example.com"))
	require.NoError(t, err)
	require.False(t, user.ID.IsZero())
	require.Equal(t, constants.RoleAdmin, user.Role)

	// Stored hash verifies against the plaintext and is not the plaintext.
	require.NotEqual(t, "supersecret", user.PasswordHash)
	require.NoError(t, bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte("supersecret")))
}

func TestAuthService_Register_DuplicateEmail(t *testing.T) {
	svc, users := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("ada@example.com"))
	require.NoError(t, err)

	_, err = svc.Register(ctx, registerInput("ada@example.com"))
	require.ErrorIs(t, err, ErrEmailTaken)

	all, err := users.FindAll(ctx)
	require.NoError(t, err)
	require.Len(t, all, 1)
}

func TestAuthService_Register_EmailNormalized(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("Ada@Example.com "))
	require.NoError(t, err)

	_, err = svc.VerifyCredentials(ctx, "ada@example.com", "supersecret")
	require.NoError(t, err)
}

func TestAuthService_VerifyCredentials_NoExistenceLeak(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	_, err := svc.Register(ctx, registerInput("ada@example.com"))
	require.NoError(t, err)

	_, wrongPassword := svc.VerifyCredentials(ctx, "ada@example.com", "wrong-password")
	_, unknownEmail := svc.VerifyCredentials(ctx, "nobody@example.com", "supersecret")

	// Wrong password and unknown email must be indistinguishable.
	require.ErrorIs(t, wrongPassword, ErrInvalidCredentials)
	require.ErrorIs(t, unknownEmail, ErrInvalidCredentials)
	require.Equal(t, wrongPassword.Error(), unknownEmail.Error())
}

func TestAuthService_ChangePassword(t *testing.T) {
	svc, _ := newAuthService()
	ctx := context.Background()

	user, err := svc.Register(ctx, registerInput("ada@example.com"))
	require.NoError(t, err)

	err = svc.ChangePassword(ctx, user.ID, "wrong-password", "new-password-123")
	require.ErrorIs(t, err, ErrInvalidCurrentPassword)

	err = svc.ChangePassword(ctx, user.ID, "supersecret", "new-password-123")
	require.NoError(t, err)

	_, err = svc.VerifyCredentials(ctx, "ada@example.com", "supersecret")
	require.ErrorIs(t, err, ErrInvalidCredentials)

	_, err = svc.VerifyCredentials(ctx, "ada@example.com", "new-password-123")
	require.NoError(t, err)
}

func TestAuthService_RegisterSubordinate(t *testing.T) {
	svc, users := newAuthService()
	ctx := context.Background()

	admin, err := svc.Register(ctx, registerInput("admin@example.com"))
	require.NoError(t, err)

	result, err := svc.RegisterSubordinate(ctx, admin.ID, registerInput("worker@example.com"))
	require.NoError(t, err)
	require.Empty(t, result.SecondaryFailures)
	require.Equal(t, constants.RoleUser, result.User.Role)

	stored, err := users.FindByID(ctx, admin.ID)
	require.NoError(t, err)
	require.Contains(t, stored.OwnerOf, result.User.ID)
}

func TestAuthService_RegisterSubordinate_OwnerUpdateFails(t *testing.T) {
	users := inmemory.NewUserStorage()
	svc := NewAuthService(&failingUserRepo{UserRepository: users, failAddOwned: true}, RolePolicy{
		SelfRegister: constants.RoleAdmin,
		AdminCreated: constants.RoleUser,
	})
	ctx := context.Background()

	admin, err := svc.Register(ctx, registerInput("admin@example.com"))
	require.NoError(t, err)

	result, err := svc.RegisterSubordinate(ctx, admin.ID, registerInput("worker@example.com"))
	require.NoError(t, err)
	require.Len(t, result.SecondaryFailures, 1)

	// The account itself exists despite the failed ownership append.
	_, err = users.FindByEmail(ctx, "worker@example.com")
	require.NoError(t, err)
}
