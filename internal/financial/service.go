package financial

import (
	"context"
	"strings"

	"github.com/vendaflow/backoffice/pkg/db/models"
	pkgerrors "github.com/vendaflow/backoffice/pkg/errors"
	"gorm.io/gorm"
)

var validStatuses = map[string]struct{}{
	models.AccountStatusPending: {},
	models.AccountStatusPaid:    {},
	models.AccountStatusOverdue: {},
}

// Service lists receivable and payable accounts for a tenant.
type Service struct {
	db *gorm.DB
}

func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// List returns accounts ordered by due date, undated ones last. An empty
// status returns every account.
func (s *Service) List(ctx context.Context, tenantID int64, status string) ([]models.FinancialAccount, error) {
	status = strings.ToLower(strings.TrimSpace(status))
	if status != "" {
		if _, ok := validStatuses[status]; !ok {
			return nil, pkgerrors.New(pkgerrors.CodeValidation, "invalid status").
				WithDetails(map[string]string{"status": "must be one of pendente, pago, vencido"})
		}
	}

	query := s.db.WithContext(ctx).Where("tenant_id = ?", tenantID)
	if status != "" {
		query = query.Where("status = ?", status)
	}

	accounts := []models.FinancialAccount{}
	err := query.
		Order("CASE WHEN due_date IS NULL THEN 1 ELSE 0 END").
		Order("due_date ASC").
		Order("id ASC").
		Find(&accounts).Error
	if err != nil {
		return nil, pkgerrors.Wrap(pkgerrors.CodeInternal, err, "list financial accounts")
	}
	return accounts, nil
}
