// Package jobs defines the background jobs processed by the queue
// workers.
package jobs

import (
	"fmt"

	"github.com/putrawardana/warungsaji/app/repositories"
	"github.com/putrawardana/warungsaji/pkg/logger"
	"github.com/putrawardana/warungsaji/pkg/queue"
)

// OrderStatsJob rebuilds the per-item sales rollups after a checkout.
// The recompute covers the whole table, so the OrderID only serves
// logging and dedup inspection.
type OrderStatsJob struct {
	OrderID string `json:"order_id"`
}

// Handle recomputes menu_item_order_stats from order_items.
func (j *OrderStatsJob) Handle() error {
	logger.Info("jobs: recomputing order stats", "order_id", j.OrderID)
	return repositories.NewTrackingRepository().RecomputeOrderStats()
}

// Register makes every job type known to the queue for
// deserialization. Call once at boot.
func Register() {
	queue.Register(fmt.Sprintf("%T", &OrderStatsJob{}), func() queue.Job {
		return &OrderStatsJob{}
	})
}
