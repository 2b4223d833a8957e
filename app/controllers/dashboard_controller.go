package controllers

import (
	"net/http"
	"strconv"

	"github.com/putrawardana/warungsaji/app/models"
	"github.com/putrawardana/warungsaji/app/repositories"
	"github.com/putrawardana/warungsaji/pkg/response"
)

// DashboardStore is the read-side slice of TrackingRepository the
// dashboard needs.
type DashboardStore interface {
	Totals() (repositories.DashboardTotals, error)
	TopPages(limit int) ([]models.PageView, error)
	MostViewed(limit int) ([]models.MenuItemView, error)
	BestSellers(limit int) ([]models.MenuItemOrderStat, error)
	TopRevenue(limit int) ([]models.MenuItemOrderStat, error)
	MostAdded(limit int) ([]repositories.CartAddStat, error)
	CategoryStats() ([]repositories.CategoryStat, error)
}

// RecentOrders lists the latest orders for the dashboard feed.
type RecentOrders interface {
	Recent(limit int) ([]models.Order, error)
}

// DashboardController serves the admin analytics endpoints.
type DashboardController struct {
	stats  DashboardStore
	orders RecentOrders
}

func NewDashboardController(stats DashboardStore, orders RecentOrders) *DashboardController {
	return &DashboardController{stats: stats, orders: orders}
}

func limitParam(r *http.Request) int {
	n, _ := strconv.Atoi(r.URL.Query().Get("limit"))
	return n
}

// Overview handles GET /api/admin/dashboard: headline totals plus the
// latest orders.
func (c *DashboardController) Overview(w http.ResponseWriter, r *http.Request) {
	totals, err := c.stats.Totals()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	orders, err := c.orders.Recent(10)
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if orders == nil {
		orders = []models.Order{}
	}

	response.Success(w, map[string]interface{}{
		"totals":        totals,
		"recent_orders": orders,
	})
}

// TopPages handles GET /api/admin/dashboard/top-pages.
func (c *DashboardController) TopPages(w http.ResponseWriter, r *http.Request) {
	rows, err := c.stats.TopPages(limitParam(r))
	writeStats(w, rows, err)
}

// MostViewed handles GET /api/admin/dashboard/most-viewed.
func (c *DashboardController) MostViewed(w http.ResponseWriter, r *http.Request) {
	rows, err := c.stats.MostViewed(limitParam(r))
	writeStats(w, rows, err)
}

// BestSellers handles GET /api/admin/dashboard/best-sellers.
func (c *DashboardController) BestSellers(w http.ResponseWriter, r *http.Request) {
	rows, err := c.stats.BestSellers(limitParam(r))
	writeStats(w, rows, err)
}

// TopRevenue handles GET /api/admin/dashboard/top-revenue.
func (c *DashboardController) TopRevenue(w http.ResponseWriter, r *http.Request) {
	rows, err := c.stats.TopRevenue(limitParam(r))
	writeStats(w, rows, err)
}

// MostAdded handles GET /api/admin/dashboard/most-added.
func (c *DashboardController) MostAdded(w http.ResponseWriter, r *http.Request) {
	rows, err := c.stats.MostAdded(limitParam(r))
	writeStats(w, rows, err)
}

// Categories handles GET /api/admin/dashboard/categories.
func (c *DashboardController) Categories(w http.ResponseWriter, r *http.Request) {
	rows, err := c.stats.CategoryStats()
	writeStats(w, rows, err)
}

// writeStats collapses the repeated fetch-then-respond shape of the
// stat endpoints.
func writeStats[T any](w http.ResponseWriter, rows []T, err error) {
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if rows == nil {
		rows = []T{}
	}
	response.Success(w, rows)
}
