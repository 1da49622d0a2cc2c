package session

import (
	"context"
	"time"

	"github.com/vendaflow/backoffice/pkg/db/models"
	"gorm.io/gorm"
)

// Store persists sessions in the user_sessions table.
type Store struct {
	db *gorm.DB
}

func NewStore(db *gorm.DB) *Store {
	return &Store{db: db}
}

func (s *Store) Create(ctx context.Context, sess *models.UserSession) error {
	return s.db.WithContext(ctx).Create(sess).Error
}

// FindActive loads the session matching token together with its user, provided
// the session has not expired at now and the user is active.
func (s *Store) FindActive(ctx context.Context, token string, now time.Time) (*models.UserSession, *models.User, error) {
	var sess models.UserSession
	err := s.db.WithContext(ctx).
		Where("session_token = ? AND expires_at > ?", token, now).
		Take(&sess).Error
	if err != nil {
		return nil, nil, err
	}

	var user models.User
	err = s.db.WithContext(ctx).
		Where("id = ? AND is_active = ?", sess.UserID, true).
		Take(&user).Error
	if err != nil {
		return nil, nil, err
	}
	return &sess, &user, nil
}

func (s *Store) DeleteByToken(ctx context.Context, token string) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("session_token = ?", token).
		Delete(&models.UserSession{})
	return res.RowsAffected, res.Error
}

// DeleteExpired removes every session whose expiry is at or before now.
func (s *Store) DeleteExpired(ctx context.Context, now time.Time) (int64, error) {
	res := s.db.WithContext(ctx).
		Where("expires_at <= ?", now).
		Delete(&models.UserSession{})
	return res.RowsAffected, res.Error
}
