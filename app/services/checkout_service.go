package services

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/putrawardana/warungsaji/app/cart"
	"github.com/putrawardana/warungsaji/app/models"
	"github.com/putrawardana/warungsaji/pkg/collection"
	"github.com/putrawardana/warungsaji/pkg/metrics"
	"github.com/putrawardana/warungsaji/pkg/wa"
)

// ErrEmptyCart rejects checkouts with nothing in the cart.
var ErrEmptyCart = errors.New("cart is empty")

// OrderWriter is the slice of OrderRepository checkout needs.
type OrderWriter interface {
	CreateWithItems(order *models.Order, items []models.OrderItem) error
}

// UsageTracker records table usage at checkout.
type UsageTracker interface {
	TableUsage(table string)
}

// CheckoutResult is what the storefront needs to hand the customer to
// WhatsApp.
type CheckoutResult struct {
	OrderID  string          `json:"order_id"`
	ShortID  string          `json:"short_id"`
	Total    decimal.Decimal `json:"total"`
	Message  string          `json:"message"`
	ShareURI string          `json:"share_uri"`
}

// CheckoutService turns a session cart into a persisted order plus a
// WhatsApp share link.
type CheckoutService struct {
	orders  OrderWriter
	tracker UsageTracker
	phone   string // restaurant WhatsApp number, international format

	// afterCreate hooks run once the order is persisted: stats job
	// dispatch, order.created event, live feed broadcast.
	afterCreate []func(models.Order)
}

func NewCheckoutService(orders OrderWriter, tracker UsageTracker, phone string, afterCreate ...func(models.Order)) *CheckoutService {
	return &CheckoutService{
		orders:      orders,
		tracker:     tracker,
		phone:       phone,
		afterCreate: afterCreate,
	}
}

// Checkout persists the cart as an order, clears the cart, and returns
// the share link. The order row and its item rows are written in two
// steps without a transaction; a failure between them leaves an orphan
// order and surfaces a generic error.
func (s *CheckoutService) Checkout(c *cart.Cart, table string) (CheckoutResult, error) {
	lines := c.Lines()
	if len(lines) == 0 {
		return CheckoutResult{}, ErrEmptyCart
	}

	total := c.Subtotal()
	order := models.Order{
		Table:  table,
		Total:  total,
		Status: models.OrderStatusPending,
	}
	items := collection.Map(lines, func(l cart.Line) models.OrderItem {
		return models.OrderItem{
			ProductID: l.ProductID,
			Name:      l.Name,
			Price:     l.Price,
			Quantity:  l.Quantity,
			Subtotal:  l.Subtotal(),
		}
	})

	if err := s.orders.CreateWithItems(&order, items); err != nil {
		return CheckoutResult{}, fmt.Errorf("checkout: %w", err)
	}

	c.Clear()
	metrics.OrdersCreated.Inc()
	if table != "" {
		s.tracker.TableUsage(table)
	}

	order.Items = items
	for _, hook := range s.afterCreate {
		hook(order)
	}

	waItems := collection.Map(lines, func(l cart.Line) wa.Item {
		return wa.Item{Name: l.Name, Price: l.Price, Quantity: l.Quantity}
	})
	message := wa.BuildOrderMessage(order.ID, waItems, total, table)

	return CheckoutResult{
		OrderID:  order.ID,
		ShortID:  order.ShortID(),
		Total:    total,
		Message:  message,
		ShareURI: wa.ShareURI(s.phone, message),
	}, nil
}
