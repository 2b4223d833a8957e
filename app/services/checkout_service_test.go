package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/putrawardana/warungsaji/app/cart"
	"github.com/putrawardana/warungsaji/app/models"
)

type fakeOrderWriter struct {
	order *models.Order
	items []models.OrderItem
	err   error
}

func (f *fakeOrderWriter) CreateWithItems(order *models.Order, items []models.OrderItem) error {
	if f.err != nil {
		return f.err
	}
	order.ID = "abcdef1234567890"
	for i := range items {
		items[i].OrderID = order.ID
	}
	f.order = order
	f.items = items
	return nil
}

type fakeUsageTracker struct{ tables []string }

func (f *fakeUsageTracker) TableUsage(table string) { f.tables = append(f.tables, table) }

func checkoutCart() *cart.Cart {
	c := cart.New()
	c.Add(cart.Line{ProductID: "p1", Name: "Nasi Goreng", Price: decimal.NewFromInt(15000)}, 2)
	c.Add(cart.Line{ProductID: "p2", Name: "Es Teh", Price: decimal.NewFromInt(5000)}, 1)
	return c
}

func TestCheckout(t *testing.T) {
	writer := &fakeOrderWriter{}
	tracker := &fakeUsageTracker{}
	var hooked []models.Order
	svc := NewCheckoutService(writer, tracker, "6281226821148", func(o models.Order) {
		hooked = append(hooked, o)
	})

	c := checkoutCart()
	result, err := svc.Checkout(c, "A3")
	require.NoError(t, err)

	assert.Equal(t, "abcdef1234567890", result.OrderID)
	assert.Equal(t, "abcdef12", result.ShortID)
	assert.True(t, result.Total.Equal(decimal.NewFromInt(35000)))

	// The order total equals the sum of item subtotals.
	sum := decimal.Zero
	for _, it := range writer.items {
		sum = sum.Add(it.Subtotal)
	}
	assert.True(t, writer.order.Total.Equal(sum))
	require.Len(t, writer.items, 2)
	assert.Equal(t, "Nasi Goreng", writer.items[0].Name)
	assert.Equal(t, 2, writer.items[0].Quantity)

	assert.Contains(t, result.Message, "#abcdef12")
	assert.Contains(t, result.Message, "(2x)")
	assert.Contains(t, result.Message, "Rp 30.000")
	assert.Contains(t, result.Message, "Rp 35.000")
	assert.Contains(t, result.ShareURI, "https://wa.me/6281226821148?text=")

	assert.True(t, c.IsEmpty(), "cart is cleared after checkout")
	assert.Equal(t, []string{"A3"}, tracker.tables)
	require.Len(t, hooked, 1)
	assert.Len(t, hooked[0].Items, 2)
}

func TestCheckoutEmptyCart(t *testing.T) {
	svc := NewCheckoutService(&fakeOrderWriter{}, &fakeUsageTracker{}, "628")

	_, err := svc.Checkout(cart.New(), "")
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestCheckoutPersistFailureKeepsCart(t *testing.T) {
	writer := &fakeOrderWriter{err: errors.New("db down")}
	tracker := &fakeUsageTracker{}
	svc := NewCheckoutService(writer, tracker, "628")

	c := checkoutCart()
	_, err := svc.Checkout(c, "A3")
	require.Error(t, err)

	assert.False(t, c.IsEmpty(), "cart survives a failed checkout")
	assert.Empty(t, tracker.tables)
}

func TestCheckoutWithoutTableSkipsUsage(t *testing.T) {
	writer := &fakeOrderWriter{}
	tracker := &fakeUsageTracker{}
	svc := NewCheckoutService(writer, tracker, "628")

	_, err := svc.Checkout(checkoutCart(), "")
	require.NoError(t, err)
	assert.Empty(t, tracker.tables)
}
