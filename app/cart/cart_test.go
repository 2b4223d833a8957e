package cart

import (
	"fmt"
	"math/rand"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(id string, price int64) Line {
	return Line{ProductID: id, Name: "Item " + id, Price: decimal.NewFromInt(price)}
}

func TestAddMergesIntoSingleLine(t *testing.T) {
	c := New()
	const n = 7
	for i := 0; i < n; i++ {
		c.Add(line("p1", 15000), 1)
	}

	require.Len(t, c.Lines(), 1)
	assert.Equal(t, n, c.TotalQuantity())
	assert.Equal(t, n, c.Lines()[0].Quantity)
}

func TestAddWithQuantity(t *testing.T) {
	c := New()
	c.Add(line("p1", 15000), 3)
	c.Add(line("p1", 15000), 2)

	require.Len(t, c.Lines(), 1)
	assert.Equal(t, 5, c.TotalQuantity())

	// qty below 1 counts as 1
	c.Add(line("p2", 5000), 0)
	assert.Equal(t, 6, c.TotalQuantity())
}

func TestDecrementToZeroRemovesLine(t *testing.T) {
	c := New()
	c.Add(line("p1", 15000), 1)
	c.Decrement("p1")

	assert.True(t, c.IsEmpty())
	assert.Equal(t, 0, c.TotalQuantity())

	// A later Add re-inserts at quantity 1.
	c.Add(line("p1", 15000), 1)
	require.Len(t, c.Lines(), 1)
	assert.Equal(t, 1, c.Lines()[0].Quantity)
}

func TestIncrementReportsMissingLine(t *testing.T) {
	c := New()
	c.Add(line("p1", 15000), 1)
	c.Decrement("p1")

	assert.False(t, c.Increment("p1"), "removed line cannot be incremented in place")
	assert.True(t, c.IsEmpty())

	c.Add(line("p1", 15000), 1)
	assert.True(t, c.Increment("p1"))
	assert.Equal(t, 2, c.TotalQuantity())
}

func TestSetQuantity(t *testing.T) {
	c := New()
	c.Add(line("p1", 15000), 2)

	c.SetQuantity("p1", 5)
	assert.Equal(t, 5, c.TotalQuantity())

	c.SetQuantity("p1", 0)
	assert.True(t, c.IsEmpty())

	// missing product is a no-op
	c.SetQuantity("ghost", 3)
	assert.True(t, c.IsEmpty())
}

func TestRemoveAndClear(t *testing.T) {
	c := New()
	c.Add(line("p1", 15000), 2)
	c.Add(line("p2", 5000), 1)

	c.Remove("p1")
	require.Len(t, c.Lines(), 1)
	assert.Equal(t, "p2", c.Lines()[0].ProductID)

	c.Clear()
	assert.True(t, c.IsEmpty())
}

func TestSubtotal(t *testing.T) {
	c := New()
	c.Add(line("p1", 15000), 2)
	c.Add(line("p2", 5000), 1)

	assert.True(t, c.Subtotal().Equal(decimal.NewFromInt(35000)),
		"got %s", c.Subtotal())
}

// Subtotal stays exact across a long random sequence of operations,
// checked against an independently maintained model.
func TestSubtotalExactUnderRandomOps(t *testing.T) {
	rng := rand.New(rand.NewSource(42))
	c := New()

	prices := make(map[string]decimal.Decimal)
	quantities := make(map[string]int)
	ids := make([]string, 10)
	for i := range ids {
		ids[i] = fmt.Sprintf("p%d", i)
		prices[ids[i]] = decimal.NewFromInt(int64(500 * (i + 1))).Add(decimal.New(int64(rng.Intn(100)), -2))
	}

	for op := 0; op < 1000; op++ {
		id := ids[rng.Intn(len(ids))]
		switch rng.Intn(5) {
		case 0:
			qty := 1 + rng.Intn(3)
			c.Add(Line{ProductID: id, Name: id, Price: prices[id]}, qty)
			quantities[id] += qty
		case 1:
			if quantities[id] > 0 {
				c.Increment(id)
				quantities[id]++
			}
		case 2:
			c.Decrement(id)
			if quantities[id] > 0 {
				quantities[id]--
			}
		case 3:
			n := rng.Intn(6)
			if quantities[id] > 0 {
				c.SetQuantity(id, n)
				if n <= 0 {
					quantities[id] = 0
				} else {
					quantities[id] = n
				}
			}
		case 4:
			c.Remove(id)
			quantities[id] = 0
		}
	}

	want := decimal.Zero
	total := 0
	for id, q := range quantities {
		want = want.Add(prices[id].Mul(decimal.NewFromInt(int64(q))))
		total += q
	}

	assert.True(t, c.Subtotal().Equal(want), "subtotal %s, want %s", c.Subtotal(), want)
	assert.Equal(t, total, c.TotalQuantity())

	for _, l := range c.Lines() {
		assert.Greater(t, l.Quantity, 0, "line %s must not linger at zero", l.ProductID)
	}
}

func TestStoreGetCreatesOnce(t *testing.T) {
	s := NewStore(time.Hour)

	a := s.Get("sess-1")
	b := s.Get("sess-1")
	assert.Same(t, a, b)
	assert.Equal(t, 1, s.Len())

	s.Delete("sess-1")
	assert.Equal(t, 0, s.Len())
}

func TestStorePurgeExpired(t *testing.T) {
	s := NewStore(10 * time.Millisecond)

	old := s.Get("stale")
	old.Add(line("p1", 1000), 1)
	time.Sleep(20 * time.Millisecond)

	fresh := s.Get("fresh")
	fresh.Add(line("p2", 2000), 1)

	purged := s.PurgeExpired()
	assert.Equal(t, 1, purged)
	assert.Equal(t, 1, s.Len())

	// The stale session gets a brand-new cart on next access.
	assert.True(t, s.Get("stale").IsEmpty())
}
