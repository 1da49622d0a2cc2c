package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/vendaflow/backoffice/internal/users"
	"github.com/vendaflow/backoffice/pkg/auth/session"
	"github.com/vendaflow/backoffice/pkg/config"
	"github.com/vendaflow/backoffice/pkg/db/models"
	pkgerrors "github.com/vendaflow/backoffice/pkg/errors"
	"github.com/vendaflow/backoffice/pkg/security"
	"gorm.io/gorm"
)

const invalidCredentialsMessage = "invalid credentials"

// decoyPassword is hashed once at startup so unknown usernames pay the same
// argon2id cost as known ones.
const decoyPassword = "decoy-password-never-matches"

// Service defines the behavior needed by the auth controller.
type Service interface {
	Login(ctx context.Context, req LoginRequest, meta session.Metadata) (*LoginResponse, error)
	Me(ctx context.Context, userID int64) (*users.UserDTO, error)
	Logout(ctx context.Context, token string) error
}

type service struct {
	users     userRepository
	session   sessionManager
	decoyHash string
	verify    func(password, encoded string) (bool, error)
	now       func() time.Time
}

type userRepository interface {
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	FindByID(ctx context.Context, id int64) (*models.User, error)
	UpdateLastLogin(ctx context.Context, id int64, at time.Time) error
}

type sessionManager interface {
	Create(ctx context.Context, userID int64, meta session.Metadata) (*models.UserSession, error)
	Revoke(ctx context.Context, token string) error
}

// ServiceParams bundles the dependencies required to build an auth service.
type ServiceParams struct {
	UserRepo       userRepository
	SessionManager sessionManager
	Password       config.PasswordConfig
}

// NewService constructs a login service with the provided dependencies.
func NewService(params ServiceParams) (Service, error) {
	if params.UserRepo == nil {
		return nil, fmt.Errorf("user repository is required")
	}
	if params.SessionManager == nil {
		return nil, fmt.Errorf("session manager is required")
	}
	decoy, err := security.HashPassword(decoyPassword, params.Password)
	if err != nil {
		return nil, fmt.Errorf("hash decoy password: %w", err)
	}
	return &service{
		users:     params.UserRepo,
		session:   params.SessionManager,
		decoyHash: decoy,
		verify:    security.VerifyPassword,
		now:       func() time.Time { return time.Now().UTC() },
	}, nil
}

func (s *service) Login(ctx context.Context, req LoginRequest, meta session.Metadata) (*LoginResponse, error) {
	user, err := s.authenticate(ctx, req.Username, req.Password)
	if err != nil {
		return nil, err
	}

	sess, err := s.session.Create(ctx, user.ID, meta)
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "create session")
	}

	now := s.now()
	if err := s.users.UpdateLastLogin(ctx, user.ID, now); err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "update last login")
	}
	user.LastLoginAt = &now

	return &LoginResponse{
		Token:     sess.SessionToken,
		ExpiresAt: sess.ExpiresAt,
		User:      users.FromModel(user),
	}, nil
}

func (s *service) Me(ctx context.Context, userID int64) (*users.UserDTO, error) {
	user, err := s.users.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}
	return users.FromModel(user), nil
}

func (s *service) Logout(ctx context.Context, token string) error {
	if err := s.session.Revoke(ctx, token); err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "revoke session")
	}
	return nil
}

// authenticate fails every credential problem with the same error so callers
// cannot tell an unknown user from a wrong password.
func (s *service) authenticate(ctx context.Context, username, password string) (*models.User, error) {
	input := strings.TrimSpace(username)
	if input == "" || password == "" {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	user, err := s.users.FindByUsername(ctx, input)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			_, _ = s.verify(password, s.decoyHash)
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "lookup user")
	}

	valid, err := s.verify(password, user.PasswordHash)
	if err != nil {
		if errors.Is(err, security.ErrInvalidHash) {
			return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "verify password")
	}
	if !valid || !user.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeUnauthorized, invalidCredentialsMessage)
	}
	return user, nil
}
