package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskflow/taskflow-api/internal/constants"
	apierrors "github.com/taskflow/taskflow-api/internal/errors"
	"github.com/taskflow/taskflow-api/internal/models"
	"github.com/taskflow/taskflow-api/internal/services"
)

// RequireAuth resolves the acting identity from the request token. A missing
// token, an invalid/expired token and a token without a subject each get
// their own 401 reason; absence is never conflated with invalidity.
func RequireAuth(tokens *services.TokenService) gin.HandlerFunc {
	return func(c *gin.Context) {
		tokenStr, ok := tokens.Extract(c.Request)
		if !ok {
			apierrors.Unauthorized(c, "Authentication token is missing")
			c.Abort()
			return
		}

		userID, err := tokens.Validate(tokenStr)
		if err != nil {
			switch {
			case errors.Is(err, services.ErrTokenExpired):
				apierrors.Unauthorized(c, "Token has expired")
			case errors.Is(err, services.ErrTokenMissingSubject):
				apierrors.Unauthorized(c, "Token has no subject claim")
			default:
				apierrors.Unauthorized(c, "Token is invalid")
			}
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUserID, userID)
		c.Next()
	}
}

// RequireRole gates an already-authenticated route on the acting user's
// role. A valid identity with the wrong role is forbidden, not unauthorized.
func RequireRole(auth *services.AuthService, role string) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID, ok := GetUserID(c)
		if !ok {
			apierrors.Unauthorized(c, "")
			c.Abort()
			return
		}

		user, err := auth.GetUser(c.Request.Context(), userID)
		if err != nil {
			apierrors.Unauthorized(c, "Acting user no longer exists")
			c.Abort()
			return
		}

		if user.Role != role {
			apierrors.Forbidden(c, "Requires "+role+" role")
			c.Abort()
			return
		}

		c.Set(constants.ContextKeyUser, user)
		c.Next()
	}
}

// GetUserID retrieves the current user id from context
func GetUserID(c *gin.Context) (primitive.ObjectID, bool) {
	value, exists := c.Get(constants.ContextKeyUserID)
	if !exists {
		return primitive.NilObjectID, false
	}
	id, ok := value.(primitive.ObjectID)
	return id, ok
}

// GetUser retrieves the loaded user record from context (set by RequireRole)
func GetUser(c *gin.Context) (*models.User, bool) {
	value, exists := c.Get(constants.ContextKeyUser)
	if !exists {
		return nil, false
	}
	user, ok := value.(*models.User)
	return user, ok
}
