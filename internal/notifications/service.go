package notifications

import (
	"context"
	"time"

	"github.com/vendaflow/backoffice/pkg/db/models"
	pkgerrors "github.com/vendaflow/backoffice/pkg/errors"
)

const (
	DefaultLimit = 50
	MaxLimit     = 200
)

// Service defines notification list/read operations. Marking as read is the
// only state transition a notification has.
type Service interface {
	List(ctx context.Context, params ListParams) (*ListResult, error)
	MarkRead(ctx context.Context, tenantID, userID, notificationID int64) error
	MarkAllRead(ctx context.Context, tenantID, userID int64) (int64, error)
}

type service struct {
	repo Repository
	now  func() time.Time
}

type ListParams struct {
	TenantID   int64
	UserID     int64
	Limit      int
	UnreadOnly bool
}

type ListResult struct {
	Items       []models.Notification `json:"items"`
	UnreadCount int                   `json:"unread_count"`
}

// NewService wires notifications dependencies.
func NewService(repo Repository) (Service, error) {
	if repo == nil {
		return nil, pkgerrors.New(pkgerrors.CodeInternal, "notifications repository required")
	}
	return &service{repo: repo, now: func() time.Time { return time.Now().UTC() }}, nil
}

func (s *service) List(ctx context.Context, params ListParams) (*ListResult, error) {
	if params.TenantID <= 0 {
		return nil, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	limit := params.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}
	if limit > MaxLimit {
		limit = MaxLimit
	}

	rows, err := s.repo.List(ctx, listNotificationsParams{
		Scope:      recipientScope{TenantID: params.TenantID, UserID: params.UserID},
		Limit:      limit,
		UnreadOnly: params.UnreadOnly,
	})
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list notifications")
	}
	if rows == nil {
		rows = []models.Notification{}
	}

	unread := 0
	for _, n := range rows {
		if !n.IsRead {
			unread++
		}
	}
	return &ListResult{Items: rows, UnreadCount: unread}, nil
}

func (s *service) MarkRead(ctx context.Context, tenantID, userID, notificationID int64) error {
	if tenantID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}
	if notificationID <= 0 {
		return pkgerrors.New(pkgerrors.CodeValidation, "notification id required")
	}

	result, err := s.repo.MarkRead(ctx, recipientScope{TenantID: tenantID, UserID: userID}, notificationID, s.now())
	if err != nil {
		return pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark notification read")
	}
	if !result.Found {
		return pkgerrors.New(pkgerrors.CodeNotFound, "notification not found")
	}
	return nil
}

func (s *service) MarkAllRead(ctx context.Context, tenantID, userID int64) (int64, error) {
	if tenantID <= 0 {
		return 0, pkgerrors.New(pkgerrors.CodeValidation, "tenant id required")
	}

	count, err := s.repo.MarkAllRead(ctx, recipientScope{TenantID: tenantID, UserID: userID}, s.now())
	if err != nil {
		return 0, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "mark notifications read")
	}
	return count, nil
}
