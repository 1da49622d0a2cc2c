package models

import "time"

// UserSession is an opaque bearer token with an absolute expiry.
type UserSession struct {
	ID           int64     `gorm:"column:id;primaryKey;autoIncrement" json:"id"`
	UserID       int64     `gorm:"column:user_id;not null" json:"user_id"`
	SessionToken string    `gorm:"column:session_token;not null;uniqueIndex" json:"session_token"`
	ExpiresAt    time.Time `gorm:"column:expires_at;not null" json:"expires_at"`
	IPAddress    *string   `gorm:"column:ip_address" json:"ip_address"`
	UserAgent    *string   `gorm:"column:user_agent" json:"user_agent"`
	CreatedAt    time.Time `gorm:"column:created_at;autoCreateTime" json:"created_at"`
}

func (UserSession) TableName() string { return "user_sessions" }

// Expired reports whether the session is past its absolute expiry at now.
func (s UserSession) Expired(now time.Time) bool {
	return !s.ExpiresAt.After(now)
}
