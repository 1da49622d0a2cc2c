package reports

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendaflow/backoffice/pkg/db/dbtest"
	"github.com/vendaflow/backoffice/pkg/db/models"
	pkgerrors "github.com/vendaflow/backoffice/pkg/errors"
)

func TestDailySales(t *testing.T) {
	conn := dbtest.Open(t).DB()
	now := time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)

	insert := func(tenantID int64, at time.Time, amount string, status string) {
		sale := models.Sale{
			TenantID:      tenantID,
			TotalAmount:   decimal.RequireFromString(amount),
			TotalItems:    1,
			PaymentMethod: models.PaymentCash,
			Status:        status,
			SaleDate:      &at,
		}
		dbtest.MustCreate(t, conn, &sale)
	}
	insert(1, now.Add(-2*time.Hour), "10", models.SaleStatusCompleted)
	insert(1, now.Add(-3*time.Hour), "5", models.SaleStatusCompleted)
	insert(1, now.Add(-4*time.Hour), "99", models.SaleStatusCanceled)
	insert(1, now.AddDate(0, 0, -1), "7", models.SaleStatusCompleted)
	insert(1, now.AddDate(0, 0, -40), "100", models.SaleStatusCompleted)
	insert(2, now, "50", models.SaleStatusCompleted)

	svc := NewService(conn)
	svc.now = func() time.Time { return now }

	rows, err := svc.DailySales(context.Background(), 1, 0)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, "2026-10-19", rows[0].Day)
	assert.Equal(t, int64(2), rows[0].SalesCount)
	assert.True(t, rows[0].TotalAmount.Equal(decimal.RequireFromString("15")), rows[0].TotalAmount.String())
	assert.Equal(t, "2026-10-18", rows[1].Day)

	rows, err = svc.DailySales(context.Background(), 1, 1)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestDailySalesRejectsRange(t *testing.T) {
	svc := NewService(nil)
	for _, days := range []int{-1, MaxDays + 1} {
		_, err := svc.DailySales(context.Background(), 1, days)
		require.Error(t, err)
		assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
	}
}
