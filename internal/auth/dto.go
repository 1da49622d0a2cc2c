package auth

import (
	"time"

	"github.com/vendaflow/backoffice/internal/users"
)

// LoginRequest captures the credentials sent to the login endpoint.
type LoginRequest struct {
	Username string `json:"username" validate:"required,max=100"`
	Password string `json:"password" validate:"required,max=200"`
}

// LoginResponse carries the opaque session token and the sanitized user.
type LoginResponse struct {
	Token     string         `json:"token"`
	ExpiresAt time.Time      `json:"expires_at"`
	User      *users.UserDTO `json:"user"`
}
