package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CartAddEvent is an append-only record, one row per add-to-cart.
// Written fire-and-forget; the dashboard aggregates it with a group
// count.
type CartAddEvent struct {
	ID          uint      `gorm:"primaryKey;autoIncrement"     json:"id"`
	ProductID   string    `gorm:"type:char(36);not null;index" json:"product_id"`
	ProductName string    `gorm:"size:255;not null"            json:"product_name"`
	Quantity    int       `gorm:"not null;default:1"           json:"quantity"`
	SessionID   string    `gorm:"size:64;index"                json:"session_id"`
	CreatedAt   time.Time `json:"created_at"`
}

func (CartAddEvent) TableName() string { return "cart_add_tracking" }

// PageView is an upsert-or-increment counter per storefront page.
type PageView struct {
	ID           uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Page         string    `gorm:"size:255;uniqueIndex;not null" json:"page"`
	Count        int64     `gorm:"not null;default:0"            json:"count"`
	LastViewedAt time.Time `json:"last_viewed_at"`
}

func (PageView) TableName() string { return "page_tracking" }

// MenuItemView counts detail views per menu item.
type MenuItemView struct {
	ID           uint      `gorm:"primaryKey;autoIncrement"           json:"id"`
	ProductID    string    `gorm:"type:char(36);uniqueIndex;not null" json:"product_id"`
	ProductName  string    `gorm:"size:255;not null"                  json:"product_name"`
	Count        int64     `gorm:"not null;default:0"                 json:"count"`
	LastViewedAt time.Time `json:"last_viewed_at"`
}

func (MenuItemView) TableName() string { return "menu_item_views" }

// MenuItemOrderStat is the per-item sales rollup, recomputed from
// order_items after each checkout.
type MenuItemOrderStat struct {
	ID            uint            `gorm:"primaryKey;autoIncrement"           json:"id"`
	ProductID     string          `gorm:"type:char(36);uniqueIndex;not null" json:"product_id"`
	ProductName   string          `gorm:"size:255;not null"                  json:"product_name"`
	Category      string          `gorm:"size:100;index"                     json:"category"`
	TotalOrdered  int64           `gorm:"not null;default:0"                 json:"total_ordered"`
	TotalQuantity int64           `gorm:"not null;default:0"                 json:"total_quantity"`
	TotalRevenue  decimal.Decimal `gorm:"type:decimal(14,2);not null"        json:"total_revenue"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

func (MenuItemOrderStat) TableName() string { return "menu_item_order_stats" }

// TableUsage counts checkouts per physical table (QR table tokens).
type TableUsage struct {
	ID         uint      `gorm:"primaryKey;autoIncrement"      json:"id"`
	Table      string    `gorm:"size:100;uniqueIndex;not null;column:table_name" json:"table"`
	Count      int64     `gorm:"not null;default:0"            json:"count"`
	LastUsedAt time.Time `json:"last_used_at"`
}

func (TableUsage) TableName() string { return "table_usage" }
