package controllers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/putrawardana/warungsaji/app/models"
	"github.com/putrawardana/warungsaji/app/services"
	"github.com/putrawardana/warungsaji/pkg/router"
	"github.com/putrawardana/warungsaji/pkg/testkit"
)

type fakeReorderer struct {
	moved   [][2]string
	applied [][]string
	result  []models.Product
	err     error
}

func (f *fakeReorderer) MoveProduct(sourceID, targetID string) ([]models.Product, error) {
	f.moved = append(f.moved, [2]string{sourceID, targetID})
	return f.result, f.err
}

func (f *fakeReorderer) ApplyOrder(orderedIDs []string) ([]models.Product, error) {
	f.applied = append(f.applied, orderedIDs)
	return f.result, f.err
}

type fakeAdminStore struct {
	items   map[string]models.Product
	created []models.Product
}

func (f *fakeAdminStore) All() ([]models.Product, error) { return nil, nil }

func (f *fakeAdminStore) FindByID(id string) (models.Product, error) {
	if p, ok := f.items[id]; ok {
		return p, nil
	}
	return models.Product{}, errors.New("not found")
}

func (f *fakeAdminStore) Create(item *models.Product) error {
	item.ID = "created-id"
	f.created = append(f.created, *item)
	return nil
}

func (f *fakeAdminStore) Update(item *models.Product) error { return nil }
func (f *fakeAdminStore) Delete(id string) error            { return nil }

func newProductAPI(store ProductAdminStore, reorder Reorderer) http.Handler {
	ctrl := NewProductController(store, reorder, nil)

	r := router.New()
	r.Get("/api/admin/products", "admin.products.index", ctrl.List)
	r.Post("/api/admin/products", "admin.products.create", ctrl.Create)
	r.Put("/api/admin/products/reorder", "admin.products.reorder", ctrl.Reorder)
	return r.Handler()
}

func TestReorderByDrag(t *testing.T) {
	reorder := &fakeReorderer{result: []models.Product{
		{Base: models.Base{ID: "C"}}, {Base: models.Base{ID: "A"}},
	}}
	h := newProductAPI(&fakeAdminStore{}, reorder)

	rec := testkit.Do(h, http.MethodPut, "/api/admin/products/reorder",
		testkit.JSONBody(map[string]any{"source_id": "C", "target_id": "A"}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	require.Len(t, reorder.moved, 1)
	assert.Equal(t, [2]string{"C", "A"}, reorder.moved[0])
	assert.Empty(t, reorder.applied)

	var items []models.Product
	testkit.DecodeData(t, rec, &items)
	require.Len(t, items, 2)
	assert.Equal(t, "C", items[0].ID)
}

func TestReorderByExplicitOrder(t *testing.T) {
	reorder := &fakeReorderer{}
	h := newProductAPI(&fakeAdminStore{}, reorder)

	rec := testkit.Do(h, http.MethodPut, "/api/admin/products/reorder",
		testkit.JSONBody(map[string]any{"ordered_ids": []string{"B", "A"}}))
	require.Equal(t, http.StatusOK, rec.Code)

	require.Len(t, reorder.applied, 1)
	assert.Equal(t, []string{"B", "A"}, reorder.applied[0])
	assert.Empty(t, reorder.moved)
}

func TestReorderRequiresIDs(t *testing.T) {
	reorder := &fakeReorderer{}
	h := newProductAPI(&fakeAdminStore{}, reorder)

	rec := testkit.Do(h, http.MethodPut, "/api/admin/products/reorder",
		testkit.JSONBody(map[string]any{"source_id": "C"}))
	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, reorder.moved)
	assert.Empty(t, reorder.applied)
}

func TestReorderUnknownProduct(t *testing.T) {
	reorder := &fakeReorderer{err: services.ErrUnknownProduct}
	h := newProductAPI(&fakeAdminStore{}, reorder)

	rec := testkit.Do(h, http.MethodPut, "/api/admin/products/reorder",
		testkit.JSONBody(map[string]any{"ordered_ids": []string{"ghost"}}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	env := testkit.DecodeEnvelope(t, rec)
	assert.Contains(t, env.Errors, "ordered_ids")
}

func TestCreateProduct(t *testing.T) {
	store := &fakeAdminStore{}
	h := newProductAPI(store, &fakeReorderer{})

	rec := testkit.Do(h, http.MethodPost, "/api/admin/products",
		testkit.JSONBody(map[string]any{
			"name":     "Mie Ayam",
			"category": "Makanan",
			"price":    18000,
		}))
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	require.Len(t, store.created, 1)
	assert.Equal(t, "Mie Ayam", store.created[0].Name)
	assert.True(t, store.created[0].Price.Equal(decimal.NewFromInt(18000)))
}

func TestCreateProductValidation(t *testing.T) {
	store := &fakeAdminStore{}
	h := newProductAPI(store, &fakeReorderer{})

	rec := testkit.Do(h, http.MethodPost, "/api/admin/products",
		testkit.JSONBody(map[string]any{"category": "Makanan", "price": -1}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	env := testkit.DecodeEnvelope(t, rec)
	assert.Contains(t, env.Errors, "name")
	assert.Contains(t, env.Errors, "price")
	assert.Empty(t, store.created)
}
