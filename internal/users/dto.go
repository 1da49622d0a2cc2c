package users

import (
	"time"

	"github.com/vendaflow/backoffice/pkg/db/models"
)

// UserDTO is the transport shape that omits the password digest.
type UserDTO struct {
	ID          int64      `json:"id"`
	TenantID    int64      `json:"tenant_id"`
	Username    string     `json:"username"`
	FullName    string     `json:"full_name"`
	Email       *string    `json:"email,omitempty"`
	Role        string     `json:"role"`
	IsActive    bool       `json:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
}

func FromModel(u *models.User) *UserDTO {
	if u == nil {
		return nil
	}

	return &UserDTO{
		ID:          u.ID,
		TenantID:    u.TenantID,
		Username:    u.Username,
		FullName:    u.FullName,
		Email:       u.Email,
		Role:        u.Role,
		IsActive:    u.IsActive,
		LastLoginAt: u.LastLoginAt,
		CreatedAt:   u.CreatedAt,
	}
}

func FromModels(list []models.User) []UserDTO {
	out := make([]UserDTO, 0, len(list))
	for i := range list {
		out = append(out, *FromModel(&list[i]))
	}
	return out
}
