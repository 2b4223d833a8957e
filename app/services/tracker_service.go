package services

import (
	"errors"

	"github.com/putrawardana/warungsaji/app/models"
	"github.com/putrawardana/warungsaji/pkg/logger"
	"github.com/putrawardana/warungsaji/pkg/metrics"
	"github.com/putrawardana/warungsaji/pkg/workerpool"
)

// TrackingStore is the write-side slice of TrackingRepository.
type TrackingStore interface {
	RecordCartAdd(event models.CartAddEvent) error
	IncrementPageView(page string) error
	IncrementMenuItemView(productID, productName string) error
	IncrementTableUsage(table string) error
}

// Tracker funnels analytics writes through a bounded worker pool.
// Every call is fire-and-forget: a full pool drops the event (counted
// in metrics) and a failed write is only logged. Storefront latency
// never waits on the tracking tables.
type Tracker struct {
	store TrackingStore
	pool  *workerpool.Pool
}

// NewTracker creates a Tracker with the given number of workers.
func NewTracker(store TrackingStore, workers int) *Tracker {
	return &Tracker{store: store, pool: workerpool.New(workers)}
}

// CartAdd records one add-to-cart event.
func (t *Tracker) CartAdd(event models.CartAddEvent) {
	t.submit("cart_add", func() error { return t.store.RecordCartAdd(event) })
}

// PageView bumps a page counter.
func (t *Tracker) PageView(page string) {
	if page == "" {
		return
	}
	t.submit("page_view", func() error { return t.store.IncrementPageView(page) })
}

// MenuItemView bumps a menu item view counter.
func (t *Tracker) MenuItemView(productID, productName string) {
	t.submit("menu_item_view", func() error {
		return t.store.IncrementMenuItemView(productID, productName)
	})
}

// TableUsage bumps a table usage counter.
func (t *Tracker) TableUsage(table string) {
	if table == "" {
		return
	}
	t.submit("table_usage", func() error { return t.store.IncrementTableUsage(table) })
}

// Close drains in-flight writes. Call on shutdown.
func (t *Tracker) Close() { t.pool.Shutdown() }

func (t *Tracker) submit(kind string, write func() error) {
	err := t.pool.Submit(func() {
		if err := write(); err != nil {
			logger.Warn("tracking: write failed", "kind", kind, "error", err)
		}
	})
	if err != nil {
		if errors.Is(err, workerpool.ErrPoolFull) {
			metrics.TrackingDropped.Inc()
		}
		logger.Warn("tracking: dropped", "kind", kind, "error", err)
	}
}
