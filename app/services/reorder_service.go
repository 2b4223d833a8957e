package services

import (
	"errors"
	"fmt"

	"github.com/putrawardana/warungsaji/app/models"
	"github.com/putrawardana/warungsaji/pkg/logger"
	"github.com/putrawardana/warungsaji/pkg/metrics"
)

// ErrUnknownProduct is returned when a reorder request names an ID
// that is not on the menu.
var ErrUnknownProduct = errors.New("unknown product in reorder request")

// Move returns a copy of items with the source element dropped into
// the target element's slot, exactly like drag and drop in the admin
// list: an upward drag lands before the target, a downward drag after
// it. It reports false (and returns the input order) when source and
// target are the same or either ID is absent.
func Move(items []models.Product, sourceID, targetID string) ([]models.Product, bool) {
	if sourceID == targetID {
		return items, false
	}

	src, dst := -1, -1
	for i := range items {
		switch items[i].ID {
		case sourceID:
			src = i
		case targetID:
			dst = i
		}
	}
	if src < 0 || dst < 0 {
		return items, false
	}

	out := make([]models.Product, 0, len(items))
	out = append(out, items...)

	// Remove at src, then insert at the target's index in the shrunk
	// slice. On a downward drag that index now names the slot just
	// past the target, which is where the dragged card lands.
	moved := out[src]
	out = append(out[:src], out[src+1:]...)
	out = append(out[:dst], append([]models.Product{moved}, out[dst:]...)...)
	return out, true
}

// ProductOrderStore is the slice of ProductRepository the reorder
// service needs.
type ProductOrderStore interface {
	All() ([]models.Product, error)
	PersistOrder(items []models.Product) error
}

// ReorderService applies admin drag-and-drop reorders to the menu.
type ReorderService struct {
	products ProductOrderStore
}

func NewReorderService(products ProductOrderStore) *ReorderService {
	return &ReorderService{products: products}
}

// MoveProduct loads the current order, drops source into target's
// slot, and persists dense positions. A no-op drag returns the
// unchanged list without touching the store.
func (s *ReorderService) MoveProduct(sourceID, targetID string) ([]models.Product, error) {
	items, err := s.products.All()
	if err != nil {
		return nil, fmt.Errorf("reorder: load menu: %w", err)
	}

	moved, changed := Move(items, sourceID, targetID)
	if !changed {
		return items, nil
	}

	return s.persist(moved)
}

// ApplyOrder persists an explicit full ordering. orderedIDs must name
// every menu item exactly once.
func (s *ReorderService) ApplyOrder(orderedIDs []string) ([]models.Product, error) {
	items, err := s.products.All()
	if err != nil {
		return nil, fmt.Errorf("reorder: load menu: %w", err)
	}

	byID := make(map[string]models.Product, len(items))
	for _, it := range items {
		byID[it.ID] = it
	}
	if len(orderedIDs) != len(items) {
		return nil, fmt.Errorf("%w: got %d ids, menu has %d items",
			ErrUnknownProduct, len(orderedIDs), len(items))
	}

	ordered := make([]models.Product, 0, len(orderedIDs))
	for _, id := range orderedIDs {
		it, ok := byID[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrUnknownProduct, id)
		}
		delete(byID, id)
		ordered = append(ordered, it)
	}

	return s.persist(ordered)
}

// persist writes the new order. On failure the list is reloaded from
// the store so the caller (and the admin UI behind it) sees the
// persisted truth, not the in-memory attempt.
func (s *ReorderService) persist(ordered []models.Product) ([]models.Product, error) {
	if err := s.products.PersistOrder(ordered); err != nil {
		logger.Error("reorder: persist failed", "error", err)
		current, loadErr := s.products.All()
		if loadErr != nil {
			return nil, fmt.Errorf("reorder: persist: %w", err)
		}
		return current, fmt.Errorf("reorder: persist: %w", err)
	}

	metrics.Reorders.Inc()
	return ordered, nil
}
