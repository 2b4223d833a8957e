// Package cart holds the session-scoped shopping cart. Carts live in
// memory only; the durable artifact of a session is the Order written
// at checkout.
package cart

import (
	"sync"
	"time"

	"github.com/shopspring/decimal"
)

// Line is one product entry in a cart. Name, price, and image are
// snapshots taken at add time.
type Line struct {
	ProductID string          `json:"product_id"`
	Name      string          `json:"name"`
	Price     decimal.Decimal `json:"price"`
	ImageURL  string          `json:"image_url,omitempty"`
	Quantity  int             `json:"quantity"`
}

// Subtotal returns price * quantity for this line.
func (l Line) Subtotal() decimal.Decimal {
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity)))
}

// Cart is a mutable cart guarded by a mutex. All methods are safe for
// concurrent use; each keeps the two invariants: no duplicate product
// lines, no quantity below 1 (a line that would drop to 0 is removed).
type Cart struct {
	mu      sync.Mutex
	lines   []Line
	touched time.Time
}

// New returns an empty cart.
func New() *Cart {
	return &Cart{touched: time.Now()}
}

// Add merges qty units of the product into the cart. An existing line
// for the same product has its quantity increased; otherwise a new
// line is appended. qty values below 1 count as 1.
func (c *Cart) Add(line Line, qty int) {
	if qty < 1 {
		qty = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	for i := range c.lines {
		if c.lines[i].ProductID == line.ProductID {
			c.lines[i].Quantity += qty
			return
		}
	}

	line.Quantity = qty
	c.lines = append(c.lines, line)
}

// Increment adds one unit to the product's line. It reports false
// when no line exists for the product, so the caller can re-insert a
// fresh snapshot via Add.
func (c *Cart) Increment(productID string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity++
			return true
		}
	}
	return false
}

// Decrement removes one unit from the product's line, deleting the
// line when the quantity reaches zero.
func (c *Cart) Decrement(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines[i].Quantity--
			if c.lines[i].Quantity <= 0 {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
			}
			return
		}
	}
}

// SetQuantity sets the product's line to n units; n <= 0 removes the
// line. Missing lines are ignored.
func (c *Cart) SetQuantity(productID string, n int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			if n <= 0 {
				c.lines = append(c.lines[:i], c.lines[i+1:]...)
			} else {
				c.lines[i].Quantity = n
			}
			return
		}
	}
}

// Remove deletes the product's line regardless of quantity.
func (c *Cart) Remove(productID string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()

	for i := range c.lines {
		if c.lines[i].ProductID == productID {
			c.lines = append(c.lines[:i], c.lines[i+1:]...)
			return
		}
	}
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.touch()
	c.lines = nil
}

// Lines returns a copy of the cart contents in insertion order.
func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()

	out := make([]Line, len(c.lines))
	copy(out, c.lines)
	return out
}

// Subtotal sums price * quantity over all lines using exact decimal
// arithmetic.
func (c *Cart) Subtotal() decimal.Decimal {
	c.mu.Lock()
	defer c.mu.Unlock()

	total := decimal.Zero
	for _, l := range c.lines {
		total = total.Add(l.Subtotal())
	}
	return total
}

// TotalQuantity returns the number of units across all lines.
func (c *Cart) TotalQuantity() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	n := 0
	for _, l := range c.lines {
		n += l.Quantity
	}
	return n
}

// IsEmpty reports whether the cart has no lines.
func (c *Cart) IsEmpty() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.lines) == 0
}

// LastTouched returns when the cart was last mutated.
func (c *Cart) LastTouched() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.touched
}

// touch must be called with c.mu held.
func (c *Cart) touch() { c.touched = time.Now() }
