package repositories

import (
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/putrawardana/warungsaji/app/models"
	"github.com/putrawardana/warungsaji/pkg/orm"
)

// TrackingRepository writes the analytics tables and serves the
// dashboard aggregations. Writers are best-effort: callers dispatch
// them fire-and-forget and only log failures.
type TrackingRepository struct{}

func NewTrackingRepository() *TrackingRepository {
	return &TrackingRepository{}
}

// RecordCartAdd appends one add-to-cart event.
func (r *TrackingRepository) RecordCartAdd(event models.CartAddEvent) error {
	return orm.DB().Create(&event)
}

// IncrementPageView bumps the counter for a storefront page.
func (r *TrackingRepository) IncrementPageView(page string) error {
	row := models.PageView{Page: page, Count: 1, LastViewedAt: time.Now()}
	return orm.DB().UpsertAssign(&row, "page", map[string]interface{}{
		"count":          gorm.Expr("count + 1"),
		"last_viewed_at": time.Now(),
	})
}

// IncrementMenuItemView bumps the detail-view counter for a menu item.
func (r *TrackingRepository) IncrementMenuItemView(productID, productName string) error {
	row := models.MenuItemView{
		ProductID:    productID,
		ProductName:  productName,
		Count:        1,
		LastViewedAt: time.Now(),
	}
	return orm.DB().UpsertAssign(&row, "product_id", map[string]interface{}{
		"count":          gorm.Expr("count + 1"),
		"product_name":   productName,
		"last_viewed_at": time.Now(),
	})
}

// IncrementTableUsage bumps the checkout counter for a table.
func (r *TrackingRepository) IncrementTableUsage(table string) error {
	row := models.TableUsage{Table: table, Count: 1, LastUsedAt: time.Now()}
	return orm.DB().UpsertAssign(&row, "table_name", map[string]interface{}{
		"count":        gorm.Expr("count + 1"),
		"last_used_at": time.Now(),
	})
}

// RecomputeOrderStats rebuilds menu_item_order_stats from order_items.
// Runs as a queue job after each checkout; recomputing the whole table
// keeps the job idempotent.
func (r *TrackingRepository) RecomputeOrderStats() error {
	type statRow struct {
		ProductID     string
		ProductName   string
		Category      string
		TotalOrdered  int64
		TotalQuantity int64
		TotalRevenue  decimal.Decimal
	}

	var rows []statRow
	err := orm.DB().Raw(`
		SELECT oi.product_id                    AS product_id,
		       MAX(oi.name)                     AS product_name,
		       COALESCE(MAX(mi.category), '')   AS category,
		       COUNT(DISTINCT oi.order_id)      AS total_ordered,
		       SUM(oi.quantity)                 AS total_quantity,
		       SUM(oi.subtotal)                 AS total_revenue
		FROM order_items oi
		LEFT JOIN menu_items mi ON mi.id = oi.product_id
		GROUP BY oi.product_id`).Scan(&rows)
	if err != nil {
		return err
	}
	if len(rows) == 0 {
		return nil
	}

	stats := make([]models.MenuItemOrderStat, len(rows))
	now := time.Now()
	for i, row := range rows {
		stats[i] = models.MenuItemOrderStat{
			ProductID:     row.ProductID,
			ProductName:   row.ProductName,
			Category:      row.Category,
			TotalOrdered:  row.TotalOrdered,
			TotalQuantity: row.TotalQuantity,
			TotalRevenue:  row.TotalRevenue,
			UpdatedAt:     now,
		}
	}
	return orm.DB().Upsert(&stats, "product_id")
}

// ------------------- Dashboard queries -------------------

// TopPages returns the most visited pages.
func (r *TrackingRepository) TopPages(limit int) ([]models.PageView, error) {
	var pages []models.PageView
	err := orm.DB().Model(&models.PageView{}).
		Order("count desc").Limit(clampLimit(limit)).Get(&pages)
	return pages, err
}

// MostViewed returns the most viewed menu items.
func (r *TrackingRepository) MostViewed(limit int) ([]models.MenuItemView, error) {
	var views []models.MenuItemView
	err := orm.DB().Model(&models.MenuItemView{}).
		Order("count desc").Limit(clampLimit(limit)).Get(&views)
	return views, err
}

// BestSellers returns items ranked by the number of orders containing
// them.
func (r *TrackingRepository) BestSellers(limit int) ([]models.MenuItemOrderStat, error) {
	var stats []models.MenuItemOrderStat
	err := orm.DB().Model(&models.MenuItemOrderStat{}).
		Order("total_ordered desc, total_quantity desc").
		Limit(clampLimit(limit)).Get(&stats)
	return stats, err
}

// TopRevenue returns items ranked by revenue.
func (r *TrackingRepository) TopRevenue(limit int) ([]models.MenuItemOrderStat, error) {
	var stats []models.MenuItemOrderStat
	err := orm.DB().Model(&models.MenuItemOrderStat{}).
		Order("total_revenue desc").
		Limit(clampLimit(limit)).Get(&stats)
	return stats, err
}

// CartAddStat is a most-added-to-cart ranking row.
type CartAddStat struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	TotalAdds   int64  `json:"total_adds"`
}

// MostAdded groups the raw add-to-cart events per product.
func (r *TrackingRepository) MostAdded(limit int) ([]CartAddStat, error) {
	var stats []CartAddStat
	err := orm.DB().Raw(`
		SELECT product_id,
		       MAX(product_name) AS product_name,
		       COUNT(*)          AS total_adds
		FROM cart_add_tracking
		GROUP BY product_id
		ORDER BY total_adds DESC
		LIMIT ?`, clampLimit(limit)).Scan(&stats)
	return stats, err
}

// CategoryStat aggregates sales per menu category.
type CategoryStat struct {
	Category      string          `json:"category"`
	Items         int64           `json:"items"`
	TotalQuantity int64           `json:"total_quantity"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
}

// CategoryStats returns per-category sales, highest revenue first.
func (r *TrackingRepository) CategoryStats() ([]CategoryStat, error) {
	var stats []CategoryStat
	err := orm.DB().Raw(`
		SELECT category,
		       COUNT(*)                        AS items,
		       COALESCE(SUM(total_quantity),0) AS total_quantity,
		       COALESCE(SUM(total_revenue),0)  AS total_revenue
		FROM menu_item_order_stats
		GROUP BY category
		ORDER BY total_revenue DESC`).Scan(&stats)
	return stats, err
}

// DashboardTotals is the headline block of the admin dashboard.
type DashboardTotals struct {
	Orders       int64           `json:"orders"`
	Revenue      decimal.Decimal `json:"revenue"`
	ItemsSold    int64           `json:"items_sold"`
	PageViews    int64           `json:"page_views"`
	MenuItems    int64           `json:"menu_items"`
	CartAdds     int64           `json:"cart_adds"`
	TablesServed int64           `json:"tables_served"`
}

// Totals computes the aggregate dashboard numbers.
func (r *TrackingRepository) Totals() (DashboardTotals, error) {
	var t DashboardTotals

	if err := orm.DB().Model(&models.Order{}).Count(&t.Orders); err != nil {
		return t, err
	}
	if err := orm.DB().Raw("SELECT COALESCE(SUM(total),0) FROM orders").Scan(&t.Revenue); err != nil {
		return t, err
	}
	if err := orm.DB().Raw("SELECT COALESCE(SUM(quantity),0) FROM order_items").Scan(&t.ItemsSold); err != nil {
		return t, err
	}
	if err := orm.DB().Raw("SELECT COALESCE(SUM(count),0) FROM page_tracking").Scan(&t.PageViews); err != nil {
		return t, err
	}
	if err := orm.DB().Model(&models.Product{}).Count(&t.MenuItems); err != nil {
		return t, err
	}
	if err := orm.DB().Model(&models.CartAddEvent{}).Count(&t.CartAdds); err != nil {
		return t, err
	}
	if err := orm.DB().Model(&models.TableUsage{}).Count(&t.TablesServed); err != nil {
		return t, err
	}
	return t, nil
}

func clampLimit(n int) int {
	if n <= 0 || n > 100 {
		return 10
	}
	return n
}
