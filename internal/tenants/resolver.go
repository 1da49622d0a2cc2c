package tenants

import (
	"context"
	"errors"

	"github.com/vendaflow/backoffice/pkg/db/models"
	pkgerrors "github.com/vendaflow/backoffice/pkg/errors"
	"gorm.io/gorm"
)

// Resolver maps an authenticated user onto the tenant its requests operate on.
type Resolver interface {
	Resolve(ctx context.Context, user *models.User) (*models.Tenant, error)
}

type resolver struct {
	db        *gorm.DB
	defaultID int64
}

// NewResolver returns a Resolver falling back to defaultID for users without
// a tenant.
func NewResolver(db *gorm.DB, defaultID int64) Resolver {
	if defaultID <= 0 {
		defaultID = 1
	}
	return &resolver{db: db, defaultID: defaultID}
}

func (r *resolver) Resolve(ctx context.Context, user *models.User) (*models.Tenant, error) {
	tenantID := r.defaultID
	if user != nil && user.TenantID > 0 {
		tenantID = user.TenantID
	}

	var tenant models.Tenant
	err := r.db.WithContext(ctx).Where("id = ?", tenantID).First(&tenant).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, pkgerrors.New(pkgerrors.CodeForbidden, "tenant not available")
		}
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "load tenant")
	}
	if !tenant.IsActive {
		return nil, pkgerrors.New(pkgerrors.CodeForbidden, "tenant not available")
	}
	return &tenant, nil
}
