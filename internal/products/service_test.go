package product

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vendaflow/backoffice/pkg/db/dbtest"
	"github.com/vendaflow/backoffice/pkg/db/models"
	pkgerrors "github.com/vendaflow/backoffice/pkg/errors"
	"gorm.io/gorm"
)

func newTestService(t *testing.T) (Service, *gorm.DB) {
	t.Helper()
	conn := dbtest.Open(t).DB()
	svc, err := NewService(NewRepository(conn))
	require.NoError(t, err)
	return svc, conn
}

func seedProduct(t *testing.T, conn *gorm.DB, tenantID int64, name, category string, stock, minStock int, active bool) *models.Product {
	t.Helper()
	p := &models.Product{
		TenantID:      tenantID,
		Name:          name,
		Price:         decimal.RequireFromString("9.90"),
		StockQuantity: stock,
		MinStock:      minStock,
		Category:      &category,
		IsActive:      true,
	}
	dbtest.MustCreate(t, conn, p)
	if !active {
		require.NoError(t, conn.Model(p).Update("is_active", false).Error)
	}
	return p
}

func TestServiceListFilters(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	require.NoError(t, conn.Create(&models.Tenant{ID: 2, Name: "Filial", Slug: "filial", IsActive: true}).Error)
	seedProduct(t, conn, 1, "Arroz Tipo 1", "Alimentação", 10, 5, true)
	seedProduct(t, conn, 1, "Feijão Preto", "Alimentação", 2, 5, true)
	seedProduct(t, conn, 1, "Detergente", "Limpeza", 30, 5, true)
	seedProduct(t, conn, 1, "Arroz Integral", "Alimentação", 10, 5, false)
	seedProduct(t, conn, 2, "Arroz da filial", "Alimentação", 10, 5, true)

	all, err := svc.List(ctx, ListInput{TenantID: 1})
	require.NoError(t, err)
	assert.Len(t, all, 3, "inactive and foreign-tenant rows are hidden")

	food, err := svc.List(ctx, ListInput{TenantID: 1, Category: "Alimentação"})
	require.NoError(t, err)
	assert.Len(t, food, 2)

	rice, err := svc.List(ctx, ListInput{TenantID: 1, Query: "ARROZ"})
	require.NoError(t, err)
	require.Len(t, rice, 1)
	assert.Equal(t, "Arroz Tipo 1", rice[0].Name)

	limited, err := svc.List(ctx, ListInput{TenantID: 1, Limit: 1})
	require.NoError(t, err)
	assert.Len(t, limited, 1)

	_, err = svc.List(ctx, ListInput{TenantID: 1, Limit: 201})
	assert.Equal(t, pkgerrors.CodeValidation, pkgerrors.CodeOf(err))
}

func TestServiceListSearchIsLiteral(t *testing.T) {
	svc, conn := newTestService(t)
	ctx := context.Background()

	promo := seedProduct(t, conn, 1, "Sabão 50% grátis", "Limpeza", 10, 5, true)
	seedProduct(t, conn, 1, "Sabão 500g", "Limpeza", 10, 5, true)
	seedProduct(t, conn, 1, "Cabo_USB", "Eletrônicos", 10, 5, true)
	seedProduct(t, conn, 1, "Cabos HDMI", "Eletrônicos", 10, 5, true)
	require.NoError(t, conn.Model(promo).Update("barcode", "ABC-789x").Error)

	cases := []struct {
		query string
		want  []string
	}{
		{query: "50%", want: []string{"Sabão 50% grátis"}},
		{query: "cabo_", want: []string{"Cabo_USB"}},
		{query: "%", want: []string{"Sabão 50% grátis"}},
		{query: `\`, want: nil},
		{query: "ABC-789x", want: []string{"Sabão 50% grátis"}},
		{query: "abc-789x", want: nil},
	}
	for _, tc := range cases {
		t.Run(tc.query, func(t *testing.T) {
			rows, err := svc.List(ctx, ListInput{TenantID: 1, Query: tc.query})
			require.NoError(t, err)
			var names []string
			for _, row := range rows {
				names = append(names, row.Name)
			}
			assert.Equal(t, tc.want, names)
		})
	}
}

func TestServiceGet(t *testing.T) {
	svc, conn := newTestService(t)
	p := seedProduct(t, conn, 1, "Café 500g", "Alimentação", 3, 5, true)

	got, err := svc.Get(context.Background(), 1, p.ID)
	require.NoError(t, err)
	assert.True(t, got.LowStock)
	assert.True(t, got.Price.Equal(decimal.RequireFromString("9.9")))

	_, err = svc.Get(context.Background(), 2, p.ID)
	assert.Equal(t, pkgerrors.CodeNotFound, pkgerrors.CodeOf(err))
}

func TestServiceCreateAssignsCategory(t *testing.T) {
	svc, _ := newTestService(t)
	ctx := context.Background()

	created, err := svc.Create(ctx, 1, CreateProductRequest{Name: "Refrigerante Laranja 2L", Price: decimal.RequireFromString("7.499"), StockQuantity: 12})
	require.NoError(t, err)
	assert.Equal(t, "Bebidas", created.Category)
	assert.Equal(t, defaultMinStock, created.MinStock)
	assert.Equal(t, "7.5", created.Price.String())

	plain, err := svc.Create(ctx, 1, CreateProductRequest{Name: "Vela", Price: decimal.NewFromInt(3)})
	require.NoError(t, err)
	assert.Equal(t, models.DefaultCategory, plain.Category)

	explicit, err := svc.Create(ctx, 1, CreateProductRequest{Name: "Suco", Category: "Promoções", Price: decimal.NewFromInt(3)})
	require.NoError(t, err)
	assert.Equal(t, "Promoções", explicit.Category)

	got, err := svc.Get(ctx, 1, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Refrigerante Laranja 2L", got.Name)
}

func TestServiceLowStock(t *testing.T) {
	svc, conn := newTestService(t)
	seedProduct(t, conn, 1, "Leite", "Alimentação", 5, 5, true)
	seedProduct(t, conn, 1, "Pão", "Alimentação", 1, 5, true)
	seedProduct(t, conn, 1, "Sabão", "Limpeza", 20, 5, true)

	low, err := svc.LowStock(context.Background(), 1)
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "Pão", low[0].Name)
	assert.Equal(t, "Leite", low[1].Name)
}
