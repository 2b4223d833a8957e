package repositories

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/putrawardana/warungsaji/app/models"
	"github.com/putrawardana/warungsaji/pkg/cache"
	"github.com/putrawardana/warungsaji/pkg/orm"
)

// ErrProductNotFound is returned when no menu item matches the lookup.
var ErrProductNotFound = errors.New("product not found")

// menuCacheKey caches the full ordered menu for storefront reads.
const (
	menuCacheKey = "warungsaji:menu:all"
	menuCacheTTL = 60 * time.Second
)

// displayOrder is the canonical menu sort: admin-controlled position
// first, newest first among equal positions.
const displayOrder = "position asc, created_at desc"

// ProductRepository handles database operations for menu items.
type ProductRepository struct{}

func NewProductRepository() *ProductRepository {
	return &ProductRepository{}
}

// All returns every menu item in display order.
func (r *ProductRepository) All() ([]models.Product, error) {
	var items []models.Product
	err := orm.DB().Model(&models.Product{}).Order(displayOrder).Get(&items)
	return items, err
}

// Search returns menu items filtered by category and/or a name substring,
// in display order. Empty filters match everything. limit <= 0 means no
// limit.
func (r *ProductRepository) Search(category, q string, limit, offset int) ([]models.Product, error) {
	query := orm.DB().Model(&models.Product{})
	if category != "" {
		query = query.Where("category = ?", category)
	}
	if q != "" {
		query = query.Where("name LIKE ?", "%"+q+"%")
	}
	if limit > 0 {
		query = query.Limit(limit).Offset(offset)
	}

	var items []models.Product
	err := query.Order(displayOrder).Get(&items)
	return items, err
}

// FindByID looks up one menu item.
func (r *ProductRepository) FindByID(id string) (models.Product, error) {
	var item models.Product
	err := orm.DB().Model(&models.Product{}).Where("id = ?", id).First(&item)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return item, ErrProductNotFound
	}
	return item, err
}

// Categories returns the distinct category names in alphabetical order.
func (r *ProductRepository) Categories() ([]string, error) {
	var categories []string
	err := orm.DB().
		Raw("SELECT DISTINCT category FROM menu_items ORDER BY category ASC").
		Scan(&categories)
	return categories, err
}

// Create appends the item to the end of the menu and persists it.
func (r *ProductRepository) Create(item *models.Product) error {
	maxPos, err := r.maxPosition()
	if err != nil {
		return err
	}
	item.Position = maxPos + 1

	if err := orm.DB().Create(item); err != nil {
		return err
	}
	r.invalidateCache()
	return nil
}

// Update persists changes to an existing item.
func (r *ProductRepository) Update(item *models.Product) error {
	if err := orm.DB().Save(item); err != nil {
		return err
	}
	r.invalidateCache()
	return nil
}

// Delete removes the item. Remaining positions keep their values;
// density is restored on the next reorder.
func (r *ProductRepository) Delete(id string) error {
	item, err := r.FindByID(id)
	if err != nil {
		return err
	}
	if err := orm.DB().Delete(&item); err != nil {
		return err
	}
	r.invalidateCache()
	return nil
}

// PersistOrder writes the given display order: position is set to the
// slice index and every row is bulk-upserted with all fields intact,
// so a concurrent edit is never partially overwritten with zeroes.
func (r *ProductRepository) PersistOrder(items []models.Product) error {
	if len(items) == 0 {
		return nil
	}
	for i := range items {
		items[i].Position = i
	}

	if err := orm.DB().Upsert(&items, "id"); err != nil {
		return err
	}
	r.invalidateCache()
	return nil
}

// CachedAll is All backed by the short-lived menu cache.
func (r *ProductRepository) CachedAll() ([]models.Product, error) {
	var items []models.Product
	if cache.Get(menuCacheKey, &items) {
		return items, nil
	}
	items, err := r.All()
	if err != nil {
		return nil, err
	}
	cache.Set(menuCacheKey, items, menuCacheTTL) //nolint:errcheck
	return items, nil
}

func (r *ProductRepository) maxPosition() (int, error) {
	var max *int
	err := orm.DB().Raw("SELECT MAX(position) FROM menu_items").Scan(&max)
	if err != nil || max == nil {
		return -1, err
	}
	return *max, nil
}

func (r *ProductRepository) invalidateCache() {
	cache.Forget(menuCacheKey) //nolint:errcheck
}
