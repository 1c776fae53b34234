package services

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskflow/taskflow-api/internal/constants"
	"github.com/taskflow/taskflow-api/internal/models"
)

var (
	ErrTokenExpired        = errors.New("token has expired")
	ErrTokenSignature      = errors.New("token signature is invalid")
	ErrTokenMalformed      = errors.New("token is malformed")
	ErrTokenMissingSubject = errors.New("token has no subject claim")
)

// Claims carried by a session token. Subject holds the user id.
type Claims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// TokenService issues and validates signed session tokens. Tokens are never
// stored server-side; possession of a valid token is the whole session.
type TokenService struct {
	secret []byte
}

// NewTokenService creates a new TokenService signing with the given secret.
func NewTokenService(secret string) *TokenService {
	return &TokenService{secret: []byte(secret)}
}

// Issue builds a signed token for the user, valid for seven days.
func (s *TokenService) Issue(user *models.User) (string, error) {
	now := time.Now()
	claims := &Claims{
		Email: user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   user.ID.Hex(),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(constants.TokenLifetime)),
		},
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
}

// Validate verifies signature and expiry (no clock-skew leeway) and returns
// the user id from the subject claim. Each failure mode has its own sentinel.
func (s *TokenService) Validate(tokenStr string) (primitive.ObjectID, error) {
	token, err := jwt.ParseWithClaims(tokenStr, &Claims{}, func(t *jwt.Token) (interface{}, error) {
		return s.secret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		switch {
		case errors.Is(err, jwt.ErrTokenExpired):
			return primitive.NilObjectID, ErrTokenExpired
		case errors.Is(err, jwt.ErrTokenSignatureInvalid):
			return primitive.NilObjectID, ErrTokenSignature
		default:
			return primitive.NilObjectID, ErrTokenMalformed
		}
	}

	claims, ok := token.Claims.(*Claims)
	if !ok || !token.Valid {
		return primitive.NilObjectID, ErrTokenMalformed
	}
	if claims.Subject == "" {
		return primitive.NilObjectID, ErrTokenMissingSubject
	}

	userID, err := primitive.ObjectIDFromHex(claims.Subject)
	if err != nil {
		return primitive.NilObjectID, ErrTokenMissingSubject
	}

	return userID, nil
}

// Extract pulls a token out of the request: the session cookie first, then
// the Authorization bearer header. Absence is not an error.
func (s *TokenService) Extract(r *http.Request) (string, bool) {
	if cookie, err := r.Cookie(constants.TokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value, true
	}

	header := r.Header.Get("Authorization")
	if len(header) > len(constants.BearerPrefix) &&
		strings.EqualFold(header[:len(constants.BearerPrefix)], constants.BearerPrefix) {
		token := strings.TrimSpace(header[len(constants.BearerPrefix):])
		if token != "" {
			return token, true
		}
	}

	return "", false
}
