package notifications

import (
	"context"
	"time"

	"github.com/vendaflow/backoffice/pkg/db/models"
	"gorm.io/gorm"
)

// Repository exposes persistence helpers for notifications.
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	Create(ctx context.Context, notification *models.Notification) error
	List(ctx context.Context, params listNotificationsParams) ([]models.Notification, error)
	MarkRead(ctx context.Context, scope recipientScope, notificationID int64, now time.Time) (notificationMarkResult, error)
	MarkAllRead(ctx context.Context, scope recipientScope, now time.Time) (int64, error)
}

type repositoryImpl struct {
	db *gorm.DB
}

// NewRepository returns a notifications repository bound to the provided database.
func NewRepository(db *gorm.DB) Repository {
	return &repositoryImpl{db: db}
}

// recipientScope selects tenant-wide notifications plus those addressed to UserID.
type recipientScope struct {
	TenantID int64
	UserID   int64
}

type listNotificationsParams struct {
	Scope      recipientScope
	Limit      int
	UnreadOnly bool
}

type notificationMarkResult struct {
	Updated bool
	Found   bool
}

func (r *repositoryImpl) WithTx(tx *gorm.DB) Repository {
	if tx == nil {
		return r
	}
	return &repositoryImpl{db: tx}
}

func (r *repositoryImpl) scoped(ctx context.Context, scope recipientScope) *gorm.DB {
	return r.db.WithContext(ctx).
		Model(&models.Notification{}).
		Where("tenant_id = ?", scope.TenantID).
		Where("(user_id IS NULL OR user_id = ?)", scope.UserID)
}

func (r *repositoryImpl) Create(ctx context.Context, notification *models.Notification) error {
	return r.db.WithContext(ctx).Create(notification).Error
}

func (r *repositoryImpl) List(ctx context.Context, params listNotificationsParams) ([]models.Notification, error) {
	query := r.scoped(ctx, params.Scope)
	if params.UnreadOnly {
		query = query.Where("is_read = ?", false)
	}

	var notifications []models.Notification
	if err := query.Order("created_at DESC, id DESC").Limit(params.Limit).Find(&notifications).Error; err != nil {
		return nil, err
	}
	return notifications, nil
}

func (r *repositoryImpl) MarkRead(ctx context.Context, scope recipientScope, notificationID int64, now time.Time) (notificationMarkResult, error) {
	result := r.scoped(ctx, scope).
		Where("id = ? AND is_read = ?", notificationID, false).
		UpdateColumns(map[string]any{"is_read": true, "read_at": now})
	if result.Error != nil {
		return notificationMarkResult{}, result.Error
	}

	mark := notificationMarkResult{Updated: result.RowsAffected > 0}
	if result.RowsAffected > 0 {
		mark.Found = true
		return mark, nil
	}

	var count int64
	if err := r.scoped(ctx, scope).Where("id = ?", notificationID).Count(&count).Error; err != nil {
		return notificationMarkResult{}, err
	}
	mark.Found = count > 0
	return mark, nil
}

func (r *repositoryImpl) MarkAllRead(ctx context.Context, scope recipientScope, now time.Time) (int64, error) {
	result := r.scoped(ctx, scope).
		Where("is_read = ?", false).
		UpdateColumns(map[string]any{"is_read": true, "read_at": now})
	if result.Error != nil {
		return 0, result.Error
	}
	return result.RowsAffected, nil
}
