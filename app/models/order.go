package models

import "github.com/shopspring/decimal"

// Order statuses. Orders are handed to WhatsApp after creation, so the
// lifecycle here is deliberately short.
const (
	OrderStatusPending = "pending"
	OrderStatusDone    = "done"
)

// Order is a placed order. Item rows snapshot name and price at the
// time of checkout so later menu edits never rewrite history.
type Order struct {
	Base
	Table  string          `gorm:"size:100"                    json:"table,omitempty"`
	Total  decimal.Decimal `gorm:"type:decimal(12,2);not null" json:"total"`
	Status string          `gorm:"size:50;default:pending"     json:"status"`
	Items  []OrderItem     `gorm:"foreignKey:OrderID"          json:"items,omitempty"`
}

// ShortID returns the 8-character order reference used in the
// WhatsApp message.
func (o Order) ShortID() string {
	if len(o.ID) < 8 {
		return o.ID
	}
	return o.ID[:8]
}

// OrderItem is one line of an order.
type OrderItem struct {
	Base
	OrderID   string          `gorm:"type:char(36);not null;index" json:"order_id"`
	ProductID string          `gorm:"type:char(36);not null;index" json:"product_id"`
	Name      string          `gorm:"size:255;not null"            json:"name"`
	Price     decimal.Decimal `gorm:"type:decimal(12,2);not null"  json:"price"`
	Quantity  int             `gorm:"not null"                     json:"quantity"`
	Subtotal  decimal.Decimal `gorm:"type:decimal(12,2);not null"  json:"subtotal"`
}

func (OrderItem) TableName() string { return "order_items" }
