package services

import (
	"github.com/putrawardana/warungsaji/app/models"
	"github.com/putrawardana/warungsaji/pkg/collection"
)

// Category is a storefront filter tab.
type Category struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// AllCategories is the pseudo-category selecting the whole menu. It is
// always first in the list.
const AllCategories = "Semua"

var categoryIcons = map[string]string{
	AllCategories: "🍽️",
	"Makanan":     "🍛",
	"Minuman":     "🥤",
	"Snack":       "🍟",
	"Dessert":     "🍨",
}

// CategoryIcon returns the icon for a category, falling back to the
// generic plate.
func CategoryIcon(name string) string {
	if icon, ok := categoryIcons[name]; ok {
		return icon
	}
	return categoryIcons[AllCategories]
}

// MenuStore is the read-side slice of ProductRepository.
type MenuStore interface {
	CachedAll() ([]models.Product, error)
	Search(category, q string, limit, offset int) ([]models.Product, error)
	FindByID(id string) (models.Product, error)
	Categories() ([]string, error)
}

// ViewTracker records menu item detail views.
type ViewTracker interface {
	MenuItemView(productID, productName string)
}

// MenuService serves the public storefront menu.
type MenuService struct {
	products MenuStore
	tracker  ViewTracker
}

func NewMenuService(products MenuStore, tracker ViewTracker) *MenuService {
	return &MenuService{products: products, tracker: tracker}
}

// List returns menu items in display order, optionally filtered by
// category ("Semua" and "" both mean all) and a name search term.
func (s *MenuService) List(category, q string, limit, offset int) ([]models.Product, error) {
	if category == AllCategories {
		category = ""
	}

	// The unfiltered full menu is the hot path; serve it cached.
	if category == "" && q == "" && limit <= 0 {
		return s.products.CachedAll()
	}
	return s.products.Search(category, q, limit, offset)
}

// Categories returns "Semua" followed by the distinct menu categories,
// each with its icon.
func (s *MenuService) Categories() ([]Category, error) {
	names, err := s.products.Categories()
	if err != nil {
		return nil, err
	}

	out := []Category{{Name: AllCategories, Icon: CategoryIcon(AllCategories)}}
	out = append(out, collection.Map(names, func(name string) Category {
		return Category{Name: name, Icon: CategoryIcon(name)}
	})...)
	return out, nil
}

// Detail returns one menu item and records the view fire-and-forget.
func (s *MenuService) Detail(id string) (models.Product, error) {
	item, err := s.products.FindByID(id)
	if err != nil {
		return item, err
	}
	s.tracker.MenuItemView(item.ID, item.Name)
	return item, nil
}
