package config

import (
	"errors"
	"time"

	"github.com/spf13/viper"
)

// RepositoryType selects the persistence backend.
const (
	RepositoryMongo    = "mongodb"
	RepositoryInMemory = "inmemory"
)

type Config struct {
	Port          string
	GinMode       string
	MongoURI      string
	MongoDatabase string
	// JWTSecret signs session tokens. It has no default on purpose:
	// startup fails when it is not supplied.
	JWTSecret      string
	RepositoryType string
	// Role policy: which role a self-registered account gets versus an
	// account created through the admin endpoint.
	SelfRegisterRole string
	AdminCreatedRole string
	// ArchiveInterval drives the background archival worker. Zero disables it.
	ArchiveInterval time.Duration
	CookieSecure    bool
	LogDevelopment  bool
}

var ErrMissingJWTSecret = errors.New("config: JWT_SECRET is required")

func Load() (*Config, error) {
	v := viper.New()
	v.AutomaticEnv()

	v.SetDefault("PORT", "8080")
	v.SetDefault("GIN_MODE", "debug")
	v.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	v.SetDefault("MONGO_DATABASE", "taskflow")
	v.SetDefault("REPOSITORY_TYPE", RepositoryMongo)
	v.SetDefault("SELF_REGISTER_ROLE", "admin")
	v.SetDefault("ADMIN_CREATED_ROLE", "user")
	v.SetDefault("ARCHIVE_INTERVAL", time.Duration(0))
	v.SetDefault("COOKIE_SECURE", false)
	v.SetDefault("LOG_DEVELOPMENT", true)

	cfg := &Config{
		Port:             v.GetString("PORT"),
		GinMode:          v.GetString("GIN_MODE"),
		MongoURI:         v.GetString("MONGO_URI"),
		MongoDatabase:    v.GetString("MONGO_DATABASE"),
		JWTSecret:        v.GetString("JWT_SECRET"),
		RepositoryType:   v.GetString("REPOSITORY_TYPE"),
		SelfRegisterRole: v.GetString("SELF_REGISTER_ROLE"),
		AdminCreatedRole: v.GetString("ADMIN_CREATED_ROLE"),
		ArchiveInterval:  v.GetDuration("ARCHIVE_INTERVAL"),
		CookieSecure:     v.GetBool("COOKIE_SECURE"),
		LogDevelopment:   v.GetBool("LOG_DEVELOPMENT"),
	}

	if cfg.JWTSecret == "" {
		return nil, ErrMissingJWTSecret
	}

	return cfg, nil
}
