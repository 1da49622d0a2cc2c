package client

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
)

// ErrNoDemoData is returned when no local or demo payload exists for an endpoint.
var ErrNoDemoData = errors.New("no demo data for endpoint")

// Endpoint is one of the read endpoints the client knows how to fetch and
// synthesize offline.
type Endpoint string

const (
	EndpointHealth        Endpoint = "/health"
	EndpointMe            Endpoint = "/api/auth/me"
	EndpointDashboard     Endpoint = "/api/dashboard"
	EndpointProducts      Endpoint = "/api/produtos"
	EndpointLowStock      Endpoint = "/api/produtos/low-stock"
	EndpointSales         Endpoint = "/api/vendas"
	EndpointNotifications Endpoint = "/api/notificacoes"
	EndpointFinancial     Endpoint = "/api/financeiro"
	EndpointDailySales    Endpoint = "/api/relatorios/vendas-diarias"
)

// Endpoints lists every known endpoint.
func Endpoints() []Endpoint {
	return []Endpoint{
		EndpointHealth,
		EndpointMe,
		EndpointDashboard,
		EndpointProducts,
		EndpointLowStock,
		EndpointSales,
		EndpointNotifications,
		EndpointFinancial,
		EndpointDailySales,
	}
}

// DemoUser is the profile served while the client runs without a backend.
var DemoUser = User{
	ID:       1,
	TenantID: 1,
	Username: "demo",
	FullName: "Usuário Demonstração",
	Role:     "admin",
	IsActive: true,
}

func demoResponse(endpoint Endpoint, now time.Time) (any, error) {
	switch endpoint {
	case EndpointHealth:
		return Health{Status: "ok", Timestamp: now, Version: "demo"}, nil
	case EndpointMe:
		return DemoUser, nil
	case EndpointDashboard:
		return demoDashboard(now), nil
	case EndpointProducts:
		return demoProducts(), nil
	case EndpointLowStock:
		var low []Product
		for _, p := range demoProducts() {
			if p.StockQuantity <= p.MinStock {
				low = append(low, p)
			}
		}
		return low, nil
	case EndpointSales:
		return demoSales(now), nil
	case EndpointNotifications:
		return NotificationList{
			Items: []Notification{
				{ID: 1, Title: "Modo demonstração", Message: "Os dados exibidos são fictícios.", Type: "info", Priority: "normal", CreatedAt: now},
				{ID: 2, Title: "Estoque baixo", Message: "Detergente Neutro 500ml abaixo do mínimo.", Type: "warning", Priority: "high", CreatedAt: now.Add(-2 * time.Hour)},
			},
			UnreadCount: 2,
		}, nil
	case EndpointFinancial:
		due := now.AddDate(0, 0, 7)
		return []FinancialAccount{
			{ID: 1, Description: "Aluguel da loja", Type: "payable", Amount: decimal.NewFromInt(2500), DueDate: &due, Status: "pendente"},
			{ID: 2, Description: "Venda a prazo", Type: "receivable", Amount: decimal.RequireFromString("349.90"), DueDate: &due, Status: "pendente"},
		}, nil
	case EndpointDailySales:
		rows := make([]DailySales, 0, 7)
		for i := 0; i < 7; i++ {
			day := now.AddDate(0, 0, -i)
			rows = append(rows, DailySales{
				Day:         day.Format("2006-01-02"),
				SalesCount:  int64(10 + i),
				TotalItems:  int64(25 + 2*i),
				TotalAmount: decimal.NewFromInt(int64(800 + 35*i)),
			})
		}
		return rows, nil
	default:
		return nil, ErrNoDemoData
	}
}

func demoProducts() []Product {
	category := func(s string) *string { return &s }
	return []Product{
		{ID: 1, Name: "Smartphone Galaxy A15", Price: decimal.RequireFromString("1299.90"), StockQuantity: 12, MinStock: 5, Category: category("Eletrônicos"), IsActive: true},
		{ID: 2, Name: "Arroz Tipo 1 5kg", Price: decimal.RequireFromString("27.90"), StockQuantity: 40, MinStock: 10, Category: category("Alimentação"), IsActive: true},
		{ID: 3, Name: "Detergente Neutro 500ml", Price: decimal.RequireFromString("2.99"), StockQuantity: 3, MinStock: 5, Category: category("Limpeza"), IsActive: true},
		{ID: 4, Name: "Refrigerante Cola 2L", Price: decimal.RequireFromString("9.49"), StockQuantity: 24, MinStock: 6, Category: category("Bebidas"), IsActive: true},
	}
}

func demoSales(now time.Time) []Sale {
	code := func(s string) *string { return &s }
	earlier := now.Add(-90 * time.Minute)
	return []Sale{
		{ID: 2, SaleCode: code("V0002"), TotalAmount: decimal.RequireFromString("37.39"), TotalItems: 2, PaymentMethod: "pix", Status: "concluida", SaleDate: &now},
		{ID: 1, SaleCode: code("V0001"), TotalAmount: decimal.RequireFromString("1299.90"), TotalItems: 1, PaymentMethod: "cartao", Status: "concluida", SaleDate: &earlier},
	}
}

func demoDashboard(now time.Time) DashboardSummary {
	sales := demoSales(now)
	revenue := decimal.Zero
	for _, s := range sales {
		revenue = revenue.Add(s.TotalAmount)
	}
	return DashboardSummary{
		ProductCount:        int64(len(demoProducts())),
		LowStockCount:       1,
		TodaySalesCount:     int64(len(sales)),
		TodayRevenue:        revenue,
		UnreadNotifications: 2,
		RecentSales:         sales,
	}
}
