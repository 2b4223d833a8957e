package services

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/putrawardana/warungsaji/app/models"
)

func menuOf(ids ...string) []models.Product {
	items := make([]models.Product, len(ids))
	for i, id := range ids {
		items[i] = models.Product{
			Base:        models.Base{ID: id},
			Name:        "Item " + id,
			Category:    "Makanan",
			Price:       decimal.NewFromInt(15000),
			Description: "desc " + id,
			ImageURL:    "https://img.example.com/" + id + ".jpg",
			Position:    i,
		}
	}
	return items
}

func idsOf(items []models.Product) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.ID
	}
	return out
}

func TestMoveUpwardLandsBeforeTarget(t *testing.T) {
	items := menuOf("A", "B", "C", "D")

	moved, changed := Move(items, "C", "A")
	require.True(t, changed)
	assert.Equal(t, []string{"C", "A", "B", "D"}, idsOf(moved))
}

func TestMoveDownwardLandsAfterTarget(t *testing.T) {
	items := menuOf("A", "B", "C", "D")

	moved, changed := Move(items, "A", "C")
	require.True(t, changed)
	assert.Equal(t, []string{"B", "C", "A", "D"}, idsOf(moved))
}

// Dragging onto the last row must place the item last.
func TestMoveToLastSlot(t *testing.T) {
	items := menuOf("A", "B", "C", "D")

	moved, changed := Move(items, "A", "D")
	require.True(t, changed)
	assert.Equal(t, []string{"B", "C", "D", "A"}, idsOf(moved))
}

func TestMoveSelfIsNoOp(t *testing.T) {
	items := menuOf("A", "B", "C", "D")

	moved, changed := Move(items, "A", "A")
	assert.False(t, changed)
	assert.Equal(t, []string{"A", "B", "C", "D"}, idsOf(moved))
}

func TestMoveUnknownIDIsNoOp(t *testing.T) {
	items := menuOf("A", "B")

	_, changed := Move(items, "A", "ghost")
	assert.False(t, changed)
	_, changed = Move(items, "ghost", "B")
	assert.False(t, changed)
}

func TestMoveDoesNotMutateInput(t *testing.T) {
	items := menuOf("A", "B", "C", "D")

	_, changed := Move(items, "C", "A")
	require.True(t, changed)
	assert.Equal(t, []string{"A", "B", "C", "D"}, idsOf(items))
}

// fakeOrderStore implements ProductOrderStore in memory.
type fakeOrderStore struct {
	items      []models.Product
	persisted  [][]models.Product
	persistErr error
}

func (f *fakeOrderStore) All() ([]models.Product, error) {
	out := make([]models.Product, len(f.items))
	copy(out, f.items)
	return out, nil
}

func (f *fakeOrderStore) PersistOrder(items []models.Product) error {
	if f.persistErr != nil {
		return f.persistErr
	}
	for i := range items {
		items[i].Position = i
	}
	saved := make([]models.Product, len(items))
	copy(saved, items)
	f.persisted = append(f.persisted, saved)
	f.items = saved
	return nil
}

func TestMoveProductPersistsDensePositions(t *testing.T) {
	store := &fakeOrderStore{items: menuOf("A", "B", "C", "D")}
	svc := NewReorderService(store)

	items, err := svc.MoveProduct("C", "A")
	require.NoError(t, err)
	require.Equal(t, []string{"C", "A", "B", "D"}, idsOf(items))

	require.Len(t, store.persisted, 1)
	for i, it := range store.persisted[0] {
		assert.Equal(t, i, it.Position)
	}
}

// Every non-position field must ride along unchanged in the persisted
// payload.
func TestMoveProductKeepsFieldsIntact(t *testing.T) {
	original := menuOf("A", "B", "C", "D")
	store := &fakeOrderStore{items: menuOf("A", "B", "C", "D")}
	svc := NewReorderService(store)

	_, err := svc.MoveProduct("C", "A")
	require.NoError(t, err)

	byID := map[string]models.Product{}
	for _, it := range original {
		byID[it.ID] = it
	}
	for _, saved := range store.persisted[0] {
		want := byID[saved.ID]
		assert.Equal(t, want.Name, saved.Name)
		assert.Equal(t, want.Category, saved.Category)
		assert.True(t, want.Price.Equal(saved.Price))
		assert.Equal(t, want.Description, saved.Description)
		assert.Equal(t, want.ImageURL, saved.ImageURL)
	}
}

func TestMoveProductNoOpSkipsPersist(t *testing.T) {
	store := &fakeOrderStore{items: menuOf("A", "B")}
	svc := NewReorderService(store)

	items, err := svc.MoveProduct("A", "A")
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B"}, idsOf(items))
	assert.Empty(t, store.persisted)
}

// On persist failure the service reports the stored order, not the
// attempted one.
func TestMoveProductPersistFailureReloads(t *testing.T) {
	store := &fakeOrderStore{
		items:      menuOf("A", "B", "C", "D"),
		persistErr: errors.New("connection reset"),
	}
	svc := NewReorderService(store)

	items, err := svc.MoveProduct("C", "A")
	require.Error(t, err)
	assert.Equal(t, []string{"A", "B", "C", "D"}, idsOf(items))
}

func TestApplyOrder(t *testing.T) {
	store := &fakeOrderStore{items: menuOf("A", "B", "C")}
	svc := NewReorderService(store)

	items, err := svc.ApplyOrder([]string{"B", "C", "A"})
	require.NoError(t, err)
	assert.Equal(t, []string{"B", "C", "A"}, idsOf(items))
}

func TestApplyOrderRejectsBadIDSets(t *testing.T) {
	store := &fakeOrderStore{items: menuOf("A", "B", "C")}
	svc := NewReorderService(store)

	_, err := svc.ApplyOrder([]string{"A", "B"})
	assert.ErrorIs(t, err, ErrUnknownProduct)

	_, err = svc.ApplyOrder([]string{"A", "B", "ghost"})
	assert.ErrorIs(t, err, ErrUnknownProduct)

	_, err = svc.ApplyOrder([]string{"A", "B", "B"})
	assert.ErrorIs(t, err, ErrUnknownProduct)
	assert.Empty(t, store.persisted)
}
