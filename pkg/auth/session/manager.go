package session

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vendaflow/backoffice/pkg/db/models"
	"gorm.io/gorm"
)

const tokenBytes = 32

// ErrInvalidSession covers unknown, expired and inactive-user sessions alike.
var ErrInvalidSession = errors.New("invalid session")

type sessionStore interface {
	Create(ctx context.Context, sess *models.UserSession) error
	FindActive(ctx context.Context, token string, now time.Time) (*models.UserSession, *models.User, error)
	DeleteByToken(ctx context.Context, token string) (int64, error)
	DeleteExpired(ctx context.Context, now time.Time) (int64, error)
}

// Manager issues and resolves opaque bearer tokens with an absolute expiry.
type Manager struct {
	store sessionStore
	ttl   time.Duration
	now   func() time.Time
}

// Resolver exposes the read-only surface needed by middleware.
type Resolver interface {
	Resolve(ctx context.Context, token string) (*models.User, error)
}

// NewManager constructs a session manager backed by the provided store.
func NewManager(store sessionStore, ttl time.Duration) (*Manager, error) {
	if store == nil {
		return nil, fmt.Errorf("session store is required")
	}
	if ttl <= 0 {
		return nil, fmt.Errorf("session ttl must be positive")
	}
	return &Manager{
		store: store,
		ttl:   ttl,
		now:   func() time.Time { return time.Now().UTC() },
	}, nil
}

// Metadata is the request information stored next to a session.
type Metadata struct {
	IPAddress string
	UserAgent string
}

// Create mints a token for userID and persists it with expires_at = now + ttl.
func (m *Manager) Create(ctx context.Context, userID int64, meta Metadata) (*models.UserSession, error) {
	if userID <= 0 {
		return nil, fmt.Errorf("user id is required")
	}
	token, err := NewToken()
	if err != nil {
		return nil, err
	}
	now := m.now()
	sess := &models.UserSession{
		UserID:       userID,
		SessionToken: token,
		ExpiresAt:    now.Add(m.ttl),
		IPAddress:    optional(meta.IPAddress),
		UserAgent:    optional(meta.UserAgent),
		CreatedAt:    now,
	}
	if err := m.store.Create(ctx, sess); err != nil {
		return nil, fmt.Errorf("persist session: %w", err)
	}
	return sess, nil
}

// Resolve returns the active user owning token. Expiry is checked at read time.
func (m *Manager) Resolve(ctx context.Context, token string) (*models.User, error) {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil, ErrInvalidSession
	}
	_, user, err := m.store.FindActive(ctx, token, m.now())
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidSession
		}
		return nil, err
	}
	return user, nil
}

// Revoke deletes the session for token. Unknown tokens are not an error.
func (m *Manager) Revoke(ctx context.Context, token string) error {
	token = strings.TrimSpace(token)
	if token == "" {
		return nil
	}
	_, err := m.store.DeleteByToken(ctx, token)
	return err
}

// SweepExpired deletes sessions that expired at or before now.
func (m *Manager) SweepExpired(ctx context.Context, now time.Time) (int64, error) {
	return m.store.DeleteExpired(ctx, now)
}

// NewToken returns 32 random bytes encoded as unpadded base64url.
func NewToken() (string, error) {
	buf := make([]byte, tokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}

func optional(value string) *string {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}
	return &value
}
