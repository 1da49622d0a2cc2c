package notifications

import (
	"context"
	"time"

	"github.com/vendaflow/backoffice/pkg/db/models"
	"gorm.io/gorm"
)

// Retention prunes read notifications. It runs inside the caller's transaction.
type Retention struct{}

func NewRetention() *Retention {
	return &Retention{}
}

func (Retention) DeleteReadBefore(ctx context.Context, tx *gorm.DB, cutoff time.Time) (int64, error) {
	result := tx.WithContext(ctx).
		Where("is_read = ? AND created_at < ?", true, cutoff).
		Delete(&models.Notification{})
	return result.RowsAffected, result.Error
}
