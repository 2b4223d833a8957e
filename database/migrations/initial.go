package migrations

import (
	"gorm.io/gorm"

	"github.com/putrawardana/warungsaji/app/models"
	"github.com/putrawardana/warungsaji/pkg/migration"
)

func init() {
	migration.Register("20260301000000_create_users_table", &CreateUsersTable{})
	migration.Register("20260301000001_create_menu_items_table", &CreateMenuItemsTable{})
	migration.Register("20260301000002_create_orders_tables", &CreateOrdersTables{})
	migration.Register("20260301000003_create_tracking_tables", &CreateTrackingTables{})
}

// -------- 0000: users --------

type CreateUsersTable struct{}

func (m *CreateUsersTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.User{})
}

func (m *CreateUsersTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("users")
}

// -------- 0001: menu items --------

type CreateMenuItemsTable struct{}

func (m *CreateMenuItemsTable) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Product{})
}

func (m *CreateMenuItemsTable) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("menu_items")
}

// -------- 0002: orders --------

type CreateOrdersTables struct{}

func (m *CreateOrdersTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(&models.Order{}, &models.OrderItem{})
}

func (m *CreateOrdersTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable("order_items", "orders")
}

// -------- 0003: analytics --------

type CreateTrackingTables struct{}

func (m *CreateTrackingTables) Up(db *gorm.DB) error {
	return db.AutoMigrate(
		&models.CartAddEvent{},
		&models.PageView{},
		&models.MenuItemView{},
		&models.MenuItemOrderStat{},
		&models.TableUsage{},
	)
}

func (m *CreateTrackingTables) Down(db *gorm.DB) error {
	return db.Migrator().DropTable(
		"cart_add_tracking",
		"page_tracking",
		"menu_item_views",
		"menu_item_order_stats",
		"table_usage",
	)
}
