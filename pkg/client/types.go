package client

import (
	"time"

	"github.com/shopspring/decimal"
)

// User is the profile returned by login and /api/auth/me.
type User struct {
	ID          int64      `json:"id" yaml:"id"`
	TenantID    int64      `json:"tenant_id" yaml:"tenant_id"`
	Username    string     `json:"username" yaml:"username"`
	FullName    string     `json:"full_name" yaml:"full_name"`
	Email       *string    `json:"email,omitempty" yaml:"email,omitempty"`
	Role        string     `json:"role" yaml:"role"`
	IsActive    bool       `json:"is_active" yaml:"is_active"`
	LastLoginAt *time.Time `json:"last_login_at,omitempty" yaml:"last_login_at,omitempty"`
}

// Session is the data payload of a successful login.
type Session struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expires_at"`
	User      *User     `json:"user"`
}

type Product struct {
	ID            int64           `json:"id"`
	Name          string          `json:"name"`
	Description   *string         `json:"description"`
	Price         decimal.Decimal `json:"price"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	StockQuantity int             `json:"stock_quantity"`
	MinStock      int             `json:"min_stock"`
	Category      *string         `json:"category"`
	Barcode       *string         `json:"barcode"`
	IsActive      bool            `json:"is_active"`
}

type Sale struct {
	ID            int64           `json:"id"`
	SaleCode      *string         `json:"sale_code"`
	TotalAmount   decimal.Decimal `json:"total_amount"`
	TotalItems    int             `json:"total_items"`
	PaymentMethod string          `json:"payment_method"`
	Status        string          `json:"status"`
	SaleDate      *time.Time      `json:"sale_date"`
}

type DashboardSummary struct {
	ProductCount        int64           `json:"product_count"`
	LowStockCount       int64           `json:"low_stock_count"`
	TodaySalesCount     int64           `json:"today_sales_count"`
	TodayRevenue        decimal.Decimal `json:"today_revenue"`
	UnreadNotifications int64           `json:"unread_notifications"`
	RecentSales         []Sale          `json:"recent_sales"`
}

type Notification struct {
	ID        int64     `json:"id"`
	Title     string    `json:"title"`
	Message   string    `json:"message"`
	Type      string    `json:"type"`
	Priority  string    `json:"priority"`
	IsRead    bool      `json:"is_read"`
	CreatedAt time.Time `json:"created_at"`
}

type NotificationList struct {
	Items       []Notification `json:"items"`
	UnreadCount int64          `json:"unread_count"`
}

type FinancialAccount struct {
	ID          int64           `json:"id"`
	Description string          `json:"description"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	DueDate     *time.Time      `json:"due_date"`
	Status      string          `json:"status"`
}

type DailySales struct {
	Day         string          `json:"day"`
	SalesCount  int64           `json:"sales_count"`
	TotalItems  int64           `json:"total_items"`
	TotalAmount decimal.Decimal `json:"total_amount"`
}

type Health struct {
	Status    string    `json:"status"`
	Timestamp time.Time `json:"timestamp"`
	Version   string    `json:"version"`
}
