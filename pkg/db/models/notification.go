package models

import "time"

const (
	NotificationInfo    = "info"
	NotificationWarning = "warning"
	NotificationSuccess = "success"
	NotificationError   = "error"

	PriorityLow    = "low"
	PriorityNormal = "normal"
	PriorityHigh   = "high"
)

// Notification is an in-app message for a tenant, optionally addressed to one user.
type Notification struct {
	ID        int64      `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	TenantID  int64      `gorm:"column:tenant_id" json:"tenant_id"`
	UserID    *int64     `gorm:"column:user_id" json:"user_id"`
	Title     string     `gorm:"column:title;not null" json:"title"`
	Message   string     `gorm:"column:message;not null" json:"message"`
	Type      string     `gorm:"column:type" json:"type"`
	Priority  string     `gorm:"column:priority" json:"priority"`
	IsRead    bool       `gorm:"column:is_read;not null;default:false" json:"is_read"`
	Metadata  *string    `gorm:"column:metadata" json:"metadata"`
	CreatedAt time.Time  `gorm:"column:created_at;autoCreateTime" json:"created_at"`
	ReadAt    *time.Time `gorm:"column:read_at" json:"read_at"`
}

func (Notification) TableName() string { return "notifications" }
