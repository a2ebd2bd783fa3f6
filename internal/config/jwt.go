package config

import (
	"fmt"
	"os"
	"strings"
)

// AdminConfig holds the single admin account and the JWT settings for its tokens.
type AdminConfig struct {
	Email           string
	PasswordHash    string
	Secret          string
	Issuer          string
	ExpirationHours int
}

// NewAdminConfig reads ADMIN_EMAIL, ADMIN_PASSWORD_HASH and JWT_SECRET (all required),
// JWT_ISSUER (default: cloudflex-assistant) and JWT_EXPIRATION_HOURS (default: 8).
func NewAdminConfig() (*AdminConfig, error) {
	expirationHours, err := envInt("JWT_EXPIRATION_HOURS", 8)
	if err != nil {
		return nil, err
	}

	config := &AdminConfig{
		Email:           strings.ToLower(strings.TrimSpace(os.Getenv("ADMIN_EMAIL"))),
		PasswordHash:    os.Getenv("ADMIN_PASSWORD_HASH"),
		Secret:          os.Getenv("JWT_SECRET"),
		Issuer:          envString("JWT_ISSUER", "cloudflex-assistant"),
		ExpirationHours: expirationHours,
	}

	if err := config.normalize(); err != nil {
		return nil, err
	}

	return config, nil
}

func (c *AdminConfig) normalize() error {
	if c.Email == "" {
		return fmt.Errorf("ADMIN_EMAIL is required but not set")
	}
	if c.PasswordHash == "" {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is required but not set")
	}
	if !strings.HasPrefix(c.PasswordHash, "$2") {
		return fmt.Errorf("ADMIN_PASSWORD_HASH is not a bcrypt hash")
	}
	if c.Secret == "" {
		return fmt.Errorf("JWT_SECRET is required but not set")
	}
	if len(c.Secret) < 16 {
		return fmt.Errorf("JWT_SECRET must be at least 16 characters")
	}
	if c.ExpirationHours < 1 {
		return fmt.Errorf("JWT_EXPIRATION_HOURS must be at least 1 hour, got: %d", c.ExpirationHours)
	}
	return nil
}
