package constants

import "time"

// Context keys used by middleware and handlers
const (
	ContextKeyUserID = "user_id"
	ContextKeyUser   = "user"
)

// Authentication
const (
	// TokenCookieName is the cookie the session token travels in.
	// The bearer header is the fallback.
	TokenCookieName = "JWT"
	BearerPrefix    = "Bearer "

	// TokenLifetime is how long an issued token stays valid.
	TokenLifetime = 7 * 24 * time.Hour

	MinPasswordLength = 8
)

// Roles
const (
	RoleAdmin = "admin"
	RoleUser  = "user"
)
