package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/taskflow/taskflow-api/internal/constants"
	"github.com/taskflow/taskflow-api/internal/dto"
	apierrors "github.com/taskflow/taskflow-api/internal/errors"
	"github.com/taskflow/taskflow-api/internal/middleware"
	"github.com/taskflow/taskflow-api/internal/services"
)

// UserHandler coordinates account and session HTTP handlers.
type UserHandler struct {
	authService  *services.AuthService
	tokens       *services.TokenService
	cookieSecure bool
}

// NewUserHandler creates a new UserHandler.
func NewUserHandler(authService *services.AuthService, tokens *services.TokenService, cookieSecure bool) *UserHandler {
	return &UserHandler{
		authService:  authService,
		tokens:       tokens,
		cookieSecure: cookieSecure,
	}
}

type registerRequest struct {
	Email     string `json:"email" binding:"required,email"`
	Password  string `json:"password" binding:"required"`
	FirstName string `json:"first_name" binding:"required"`
	LastName  string `json:"last_name" binding:"required"`
}

// Register creates a self-registered account.
func (h *UserHandler) Register(c *gin.Context) {
	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.Register(c.Request.Context(), services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{User: dto.ToUserDTO(*user)})
}

// RegisterByAdmin creates an account on behalf of the acting admin. The
// route is gated on the admin role by middleware.
func (h *UserHandler) RegisterByAdmin(c *gin.Context) {
	adminID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	var req registerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	result, err := h.authService.RegisterSubordinate(c.Request.Context(), adminID, services.RegisterInput{
		Email:     req.Email,
		Password:  req.Password,
		FirstName: req.FirstName,
		LastName:  req.LastName,
	})
	if err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.RegisterResponse{
		User:              dto.ToUserDTO(*result.User),
		SecondaryFailures: services.Messages(result.SecondaryFailures),
	})
}

// Login verifies credentials, issues a token and sets the session cookie.
func (h *UserHandler) Login(c *gin.Context) {
	type loginRequest struct {
		Email    string `json:"email" binding:"required"`
		Password string `json:"password" binding:"required"`
	}

	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	user, err := h.authService.VerifyCredentials(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	token, err := h.tokens.Issue(user)
	if err != nil {
		apierrors.InternalError(c, "Failed to issue token")
		return
	}

	h.setTokenCookie(c, token, int(constants.TokenLifetime.Seconds()))
	c.JSON(http.StatusOK, dto.LoginResponse{
		Token:     token,
		Message:   "User authenticated successfully.",
		FirstName: user.FirstName,
	})
}

// Logout clears the session cookie. The token itself stays valid until it
// expires; there is no server-side revocation.
func (h *UserHandler) Logout(c *gin.Context) {
	h.setTokenCookie(c, "", -1)
	c.JSON(http.StatusOK, gin.H{"message": "Logged out successfully."})
}

// ChangePassword re-hashes and stores a new password for the acting user.
func (h *UserHandler) ChangePassword(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	type changePasswordRequest struct {
		CurrentPassword    string `json:"current_password" binding:"required"`
		NewPassword        string `json:"new_password" binding:"required"`
		ConfirmNewPassword string `json:"confirm_new_password" binding:"required,eqfield=NewPassword"`
	}

	var req changePasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		apierrors.BadRequest(c, "Invalid request body")
		return
	}

	if err := h.authService.ChangePassword(c.Request.Context(), userID, req.CurrentPassword, req.NewPassword); err != nil {
		respondAuthError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password changed successfully."})
}

// ListUsers returns every account.
func (h *UserHandler) ListUsers(c *gin.Context) {
	users, err := h.authService.ListUsers(c.Request.Context())
	if err != nil {
		apierrors.StoreError(c, "Failed to list users")
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTOs(users))
}

// GetUser returns one account by id.
func (h *UserHandler) GetUser(c *gin.Context) {
	id, ok := parseObjectID(c, c.Param("id"))
	if !ok {
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), id)
	if err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.ToUserDTO(*user))
}

// OwnerOf returns the ids of entities the acting user owns.
func (h *UserHandler) OwnerOf(c *gin.Context) {
	userID, ok := middleware.GetUserID(c)
	if !ok {
		apierrors.Unauthorized(c, "")
		return
	}

	user, err := h.authService.GetUser(c.Request.Context(), userID)
	if err != nil {
		respondAuthError(c, err)
		return
	}

	dtoUser := dto.ToUserDTO(*user)
	c.JSON(http.StatusOK, gin.H{"owner_of": dtoUser.OwnerOf})
}

// DeleteUser removes an account by the id query parameter.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	id, ok := parseObjectID(c, c.Query("id"))
	if !ok {
		return
	}

	if err := h.authService.DeleteUser(c.Request.Context(), id); err != nil {
		respondAuthError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "User deleted successfully."})
}

// setTokenCookie writes the session cookie. SameSite=None keeps it usable
// from a frontend on another origin; browsers then require the Secure flag,
// which production config enables.
func (h *UserHandler) setTokenCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteNoneMode)
	c.SetCookie(constants.TokenCookieName, token, maxAge, "/", "", h.cookieSecure, true)
}

func respondAuthError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, services.ErrEmailRequired),
		errors.Is(err, services.ErrPasswordTooShort):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrEmailTaken):
		apierrors.Conflict(c, err.Error())
	case errors.Is(err, services.ErrInvalidCredentials):
		apierrors.RespondWithError(c, http.StatusUnauthorized,
			apierrors.NewAPIError(apierrors.ErrCodeInvalidCredentials, err.Error()))
	case errors.Is(err, services.ErrInvalidCurrentPassword):
		apierrors.BadRequest(c, err.Error())
	case errors.Is(err, services.ErrUserNotFound):
		apierrors.NotFound(c, err.Error())
	case errors.Is(err, services.ErrFailedToHashPassword):
		apierrors.InternalError(c, err.Error())
	default:
		apierrors.StoreError(c, "")
	}
}

func parseObjectID(c *gin.Context, raw string) (primitive.ObjectID, bool) {
	id, err := primitive.ObjectIDFromHex(raw)
	if err != nil {
		apierrors.BadRequest(c, "Invalid id")
		return primitive.NilObjectID, false
	}
	return id, true
}
