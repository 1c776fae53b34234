package services

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskflow/taskflow-api/internal/constants"
	"github.com/taskflow/taskflow-api/internal/models"
)

const testSecret = "test-secret-key"

func testUser() *models.User {
	return &models.User{
		ID:    primitive.NewObjectID(),
		Email: "user@example.com",
	}
}

func TestTokenService_IssueAndValidate(t *testing.T) {
	svc := NewTokenService(testSecret)
	user := testUser()

	token, err := svc.Issue(user)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	userID, err := svc.Validate(token)
	require.NoError(t, err)
	require.Equal(t, user.ID, userID)
}

func TestTokenService_Validate_Expired(t *testing.T) {
	svc := NewTokenService(testSecret)
	user := testUser()

	claims := &Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(time.Now().Add(-2 * constants.TokenLifetime)),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(-time.Hour)),
		},
	}
	expired, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Validate(expired)
	require.ErrorIs(t, err, ErrTokenExpired)
}

func TestTokenService_Validate_WrongSecret(t *testing.T) {
	issuer := NewTokenService("other-secret")
	validator := NewTokenService(testSecret)

	token, err := issuer.Issue(testUser())
	require.NoError(t, err)

	_, err = validator.Validate(token)
	require.ErrorIs(t, err, ErrTokenSignature)
}

func TestTokenService_Validate_Malformed(t *testing.T) {
	svc := NewTokenService(testSecret)

	_, err := svc.Validate("not-a-token")
	require.ErrorIs(t, err, ErrTokenMalformed)
}

func TestTokenService_Validate_MissingSubject(t *testing.T) {
	svc := NewTokenService(testSecret)

	claims := &Claims{
		Email: "user@example.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(testSecret))
	require.NoError(t, err)

	_, err = svc.Validate(token)
	require.ErrorIs(t, err, ErrTokenMissingSubject)
}

func TestTokenService_Extract_CookieFirst(t *testing.T) {
	svc := NewTokenService(testSecret)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: constants.TokenCookieName, Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer header-token")

	token, ok := svc.Extract(req)
	require.True(t, ok)
	require.Equal(t, "cookie-token", token)
}

func TestTokenService_Extract_BearerFallback(t *testing.T) {
	svc := NewTokenService(testSecret)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bEaReR   header-token  ")

	token, ok := svc.Extract(req)
	require.True(t, ok)
	require.Equal(t, "header-token", token)
}

func TestTokenService_Extract_Absent(t *testing.T) {
	svc := NewTokenService(testSecret)

	req := httptest.NewRequest(http.MethodGet, "/", nil)

	_, ok := svc.Extract(req)
	require.False(t, ok)
}
