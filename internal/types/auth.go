// Package types provides request and response types shared by the HTTP API, the CLI and the MCP tools.
package types

import (
	"time"

	"github.com/go-playground/validator/v10"
)

// AdminLoginRequest represents the admin login request.
type AdminLoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
}

// AdminLoginResponse carries the issued token and its expiry.
type AdminLoginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
}

// Validate validates the AdminLoginRequest using the validator.
func (r *AdminLoginRequest) Validate() error {
	validate := validator.New()
	return validate.Struct(r)
}
