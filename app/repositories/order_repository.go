package repositories

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/putrawardana/warungsaji/app/models"
	"github.com/putrawardana/warungsaji/pkg/orm"
)

// ErrOrderNotFound is returned when no order matches the lookup.
var ErrOrderNotFound = errors.New("order not found")

// OrderRepository handles database operations for orders.
type OrderRepository struct{}

func NewOrderRepository() *OrderRepository {
	return &OrderRepository{}
}

// CreateWithItems persists the order, then its items, without a
// transaction. If the item write fails the order row stays behind as
// an orphan; callers surface a generic error and the orphan is
// harmless (it carries the total but no lines).
func (r *OrderRepository) CreateWithItems(order *models.Order, items []models.OrderItem) error {
	if err := orm.DB().Create(order); err != nil {
		return fmt.Errorf("orders: create: %w", err)
	}

	for i := range items {
		items[i].OrderID = order.ID
	}
	if err := orm.DB().Create(&items); err != nil {
		return fmt.Errorf("orders: create items: %w", err)
	}
	return nil
}

// FindByID returns one order with its items.
func (r *OrderRepository) FindByID(id string) (models.Order, error) {
	var order models.Order
	err := orm.DB().Model(&models.Order{}).Preload("Items").Where("id = ?", id).First(&order)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return order, ErrOrderNotFound
	}
	return order, err
}

// Recent returns the newest orders with items, newest first.
func (r *OrderRepository) Recent(limit int) ([]models.Order, error) {
	if limit <= 0 {
		limit = 20
	}
	var orders []models.Order
	err := orm.DB().Model(&models.Order{}).
		Preload("Items").
		Order("created_at desc").
		Limit(limit).
		Get(&orders)
	return orders, err
}

// Count returns the total number of orders.
func (r *OrderRepository) Count() (int64, error) {
	var n int64
	err := orm.DB().Model(&models.Order{}).Count(&n)
	return n, err
}
