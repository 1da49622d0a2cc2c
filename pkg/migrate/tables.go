package migrate

import (
	"time"

	"github.com/shopspring/decimal"
)

// Snapshot structs describe tables as they are first created. They are frozen:
// later columns arrive through columnPlan so old and new databases converge on
// the same shape. Runtime code uses pkg/db/models instead.

type tenantTable struct {
	ID        int64     `gorm:"primaryKey;autoIncrement"`
	Name      string    `gorm:"type:varchar(150);not null"`
	Slug      string    `gorm:"type:varchar(80);not null;uniqueIndex:idx_tenants_slug"`
	IsActive  bool      `gorm:"not null;default:true"`
	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}

func (tenantTable) TableName() string { return "tenants" }

type userTable struct {
	ID           int64     `gorm:"primaryKey;autoIncrement"`
	Username     string    `gorm:"type:varchar(80);not null;uniqueIndex:idx_users_username"`
	PasswordHash string    `gorm:"type:varchar(255);not null"`
	FullName     string    `gorm:"type:varchar(150)"`
	IsActive     bool      `gorm:"not null;default:true"`
	CreatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt    time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}

func (userTable) TableName() string { return "users" }

type categoryTable struct {
	ID          int64     `gorm:"primaryKey;autoIncrement"`
	Name        string    `gorm:"type:varchar(100);not null;uniqueIndex:idx_categories_name"`
	Description *string   `gorm:"type:text"`
	CreatedAt   time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}

func (categoryTable) TableName() string { return "categories" }

type productTable struct {
	ID            int64           `gorm:"primaryKey;autoIncrement"`
	Name          string          `gorm:"type:varchar(200);not null"`
	Description   *string         `gorm:"type:text"`
	Price         decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	StockQuantity int             `gorm:"not null;default:0"`
	CreatedAt     time.Time       `gorm:"default:CURRENT_TIMESTAMP"`
}

func (productTable) TableName() string { return "products" }

type saleTable struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	TotalAmount decimal.Decimal `gorm:"type:decimal(10,2);not null;default:0"`
	CreatedAt   time.Time       `gorm:"default:CURRENT_TIMESTAMP"`
}

func (saleTable) TableName() string { return "sales" }

type saleItemTable struct {
	ID         int64           `gorm:"primaryKey;autoIncrement"`
	SaleID     int64           `gorm:"not null;index:idx_sale_items_sale_id"`
	Sale       *saleTable      `gorm:"foreignKey:SaleID;constraint:OnDelete:CASCADE"`
	ProductID  int64           `gorm:"not null"`
	Quantity   int             `gorm:"not null"`
	UnitPrice  decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	TotalPrice decimal.Decimal `gorm:"type:decimal(10,2);not null"`
}

func (saleItemTable) TableName() string { return "sale_items" }

type financialAccountTable struct {
	ID          int64           `gorm:"primaryKey;autoIncrement"`
	TenantID    int64           `gorm:"default:1"`
	Description string          `gorm:"type:varchar(255);not null"`
	Type        string          `gorm:"type:varchar(20);not null"`
	Amount      decimal.Decimal `gorm:"type:decimal(10,2);not null"`
	DueDate     *time.Time      `gorm:"type:date"`
	Status      string          `gorm:"type:varchar(20);default:'pendente'"`
	CreatedAt   *time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
	UpdatedAt   *time.Time      `gorm:"default:CURRENT_TIMESTAMP"`
}

func (financialAccountTable) TableName() string { return "financial_accounts" }

type notificationTable struct {
	ID        int64      `gorm:"primaryKey;autoIncrement"`
	TenantID  int64      `gorm:"default:1"`
	UserID    *int64
	Title     string     `gorm:"type:varchar(200);not null"`
	Message   string     `gorm:"type:text;not null"`
	Type      string     `gorm:"type:varchar(20);default:'info'"`
	Priority  string     `gorm:"type:varchar(20);default:'normal'"`
	IsRead    bool       `gorm:"not null;default:false"`
	Metadata  *string    `gorm:"type:text"`
	CreatedAt time.Time  `gorm:"default:CURRENT_TIMESTAMP"`
	ReadAt    *time.Time
}

func (notificationTable) TableName() string { return "notifications" }

type userSessionTable struct {
	ID           int64      `gorm:"primaryKey;autoIncrement"`
	UserID       int64      `gorm:"not null"`
	User         *userTable `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE"`
	SessionToken string     `gorm:"type:varchar(255);not null;uniqueIndex:idx_user_sessions_token"`
	ExpiresAt    time.Time  `gorm:"not null"`
	IPAddress    *string    `gorm:"type:varchar(64)"`
	UserAgent    *string    `gorm:"type:text"`
	CreatedAt    time.Time  `gorm:"default:CURRENT_TIMESTAMP"`
}

func (userSessionTable) TableName() string { return "user_sessions" }

type reportTable struct {
	ID         int64     `gorm:"primaryKey;autoIncrement"`
	TenantID   int64     `gorm:"default:1"`
	Name       string    `gorm:"type:varchar(200);not null"`
	Type       string    `gorm:"type:varchar(50);not null"`
	Parameters *string   `gorm:"type:text"`
	CreatedBy  *int64
	CreatedAt  time.Time `gorm:"default:CURRENT_TIMESTAMP"`
}

func (reportTable) TableName() string { return "reports" }

// baseTables are created by Bootstrap; newTables by the incremental migrator.
func baseTables() []any {
	return []any{&tenantTable{}, &userTable{}, &categoryTable{}, &productTable{}, &saleTable{}, &saleItemTable{}}
}

func newTables() []any {
	return []any{&notificationTable{}, &userSessionTable{}, &saleItemTable{}, &reportTable{}, &financialAccountTable{}}
}
