package models

import "github.com/shopspring/decimal"

// Product is a single menu item. Display order is controlled by the
// admin through Position: the list is always sorted position asc with
// created_at desc breaking ties, and positions are kept dense (0..n-1)
// after every successful reorder.
type Product struct {
	Base
	Name        string          `gorm:"size:255;not null;index"     json:"name"`
	Category    string          `gorm:"size:100;not null;index"     json:"category"`
	Price       decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"price"`
	Description string          `gorm:"type:text"                   json:"description"`
	ImageURL    string          `gorm:"size:500"                    json:"image_url"`
	Position    int             `gorm:"not null;default:0;index"    json:"position"`
}

// TableName keeps the storefront naming.
func (Product) TableName() string { return "menu_items" }
