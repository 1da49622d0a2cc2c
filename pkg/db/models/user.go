package models

import "time"

const (
	RoleAdmin    = "admin"
	RoleManager  = "manager"
	RoleOperator = "operator"
)

// User is an operator account. PasswordHash never leaves the service layer.
type User struct {
	ID           int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TenantID     int64      `gorm:"column:tenant_id" json:"tenant_id"`
	Username     string     `gorm:"column:username;not null;uniqueIndex" json:"username"`
	PasswordHash string     `gorm:"column:password_hash;not null" json:"-"`
	FullName     string     `gorm:"column:full_name" json:"full_name"`
	Email        *string    `gorm:"column:email" json:"email"`
	Role         string     `gorm:"column:role" json:"role"`
	IsActive     bool       `gorm:"column:is_active;not null;default:true" json:"is_active"`
	LastLoginAt  *time.Time `gorm:"column:last_login_at" json:"last_login_at"`
	CreatedAt    time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	UpdatedAt    time.Time  `gorm:"column:updated_at;autoUpdateTime" json:"updated_at"`
}

func (User) TableName() string { return "users" }
