package seeders

import (
	"github.com/shopspring/decimal"
	"gorm.io/gorm"

	"github.com/putrawardana/warungsaji/app/models"
	"github.com/putrawardana/warungsaji/config"
	"github.com/putrawardana/warungsaji/pkg/auth"
)

func init() {
	Register("admin_user", SeedAdminUser)
	Register("menu_items", SeedMenuItems)
}

// SeedAdminUser creates the default admin account if no user exists.
// Credentials come from ADMIN_EMAIL / ADMIN_PASSWORD; change them in
// production.
func SeedAdminUser(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.User{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	hash, err := auth.HashPassword(config.Get("ADMIN_PASSWORD", "warungsaji-admin"))
	if err != nil {
		return err
	}

	return db.Create(&models.User{
		Name:     "Admin",
		Email:    config.Get("ADMIN_EMAIL", "admin@warungsaji.local"),
		Password: hash,
		Role:     "admin",
	}).Error
}

// SeedMenuItems inserts a small starter menu on an empty database.
func SeedMenuItems(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.Product{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		return nil
	}

	rp := decimal.NewFromInt
	items := []models.Product{
		{Name: "Nasi Goreng Spesial", Category: "Makanan", Price: rp(18000), Description: "Nasi goreng dengan telur dan ayam", Position: 0},
		{Name: "Mie Ayam Bakso", Category: "Makanan", Price: rp(15000), Description: "Mie ayam dengan bakso sapi", Position: 1},
		{Name: "Ayam Geprek", Category: "Makanan", Price: rp(17000), Description: "Ayam goreng sambal bawang", Position: 2},
		{Name: "Es Teh Manis", Category: "Minuman", Price: rp(5000), Description: "Teh manis dingin", Position: 3},
		{Name: "Es Jeruk", Category: "Minuman", Price: rp(7000), Description: "Jeruk peras dingin", Position: 4},
		{Name: "Pisang Goreng", Category: "Snack", Price: rp(10000), Description: "Pisang goreng crispy, 5 pcs", Position: 5},
		{Name: "Es Campur", Category: "Dessert", Price: rp(12000), Description: "Es serut dengan buah dan sirup", Position: 6},
	}
	return db.Create(&items).Error
}
