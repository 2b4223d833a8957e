package controllers

import (
	"errors"
	"net/http"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/putrawardana/warungsaji/app/models"
	"github.com/putrawardana/warungsaji/app/repositories"
	"github.com/putrawardana/warungsaji/app/services"
	"github.com/putrawardana/warungsaji/pkg/router"
	"github.com/putrawardana/warungsaji/pkg/testkit"
)

type fakeMenuProvider struct {
	items []models.Product
	err   error

	category string
	q        string
	limit    int
}

func (f *fakeMenuProvider) List(category, q string, limit, offset int) ([]models.Product, error) {
	f.category, f.q, f.limit = category, q, limit
	return f.items, f.err
}

func (f *fakeMenuProvider) Categories() ([]services.Category, error) {
	if f.err != nil {
		return nil, f.err
	}
	return []services.Category{{Name: services.AllCategories}}, nil
}

func (f *fakeMenuProvider) Detail(id string) (models.Product, error) {
	for _, it := range f.items {
		if it.ID == id {
			return it, nil
		}
	}
	return models.Product{}, repositories.ErrProductNotFound
}

type fakePageTracker struct{ pages []string }

func (f *fakePageTracker) PageView(page string) { f.pages = append(f.pages, page) }

func newMenuAPI(menu MenuProvider, tracker PageTracker) http.Handler {
	ctrl := NewMenuController(menu, tracker)

	r := router.New()
	r.Get("/api/menu", "menu.index", ctrl.List)
	r.Get("/api/menu/categories", "menu.categories", ctrl.Categories)
	r.Get("/api/menu/{id}", "menu.show", ctrl.Detail)
	r.Post("/api/track/page", "track.page", ctrl.TrackPage)
	return r.Handler()
}

func TestMenuListPassesFilters(t *testing.T) {
	menu := &fakeMenuProvider{items: []models.Product{{Base: models.Base{ID: "a"}, Name: "Sate"}}}
	h := newMenuAPI(menu, &fakePageTracker{})

	rec := testkit.Do(h, http.MethodGet, "/api/menu?category=Makanan&q=sate&limit=5")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Makanan", menu.category)
	assert.Equal(t, "sate", menu.q)
	assert.Equal(t, 5, menu.limit)

	var items []models.Product
	testkit.DecodeData(t, rec, &items)
	assert.Len(t, items, 1)
}

// Storefront reads never error out to the customer. A broken store
// serves an empty menu with a 200.
func TestMenuListDegradesToEmpty(t *testing.T) {
	menu := &fakeMenuProvider{err: errors.New("db down")}
	h := newMenuAPI(menu, &fakePageTracker{})

	rec := testkit.Do(h, http.MethodGet, "/api/menu")
	require.Equal(t, http.StatusOK, rec.Code)

	var items []models.Product
	testkit.DecodeData(t, rec, &items)
	assert.NotNil(t, items)
	assert.Empty(t, items)

	rec = testkit.Do(h, http.MethodGet, "/api/menu/categories")
	require.Equal(t, http.StatusOK, rec.Code)
	var cats []services.Category
	testkit.DecodeData(t, rec, &cats)
	assert.Empty(t, cats)
}

func TestMenuDetailNotFound(t *testing.T) {
	h := newMenuAPI(&fakeMenuProvider{}, &fakePageTracker{})

	rec := testkit.Do(h, http.MethodGet, "/api/menu/ghost")
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestTrackPage(t *testing.T) {
	tracker := &fakePageTracker{}
	h := newMenuAPI(&fakeMenuProvider{}, tracker)

	rec := testkit.Do(h, http.MethodPost, "/api/track/page",
		testkit.JSONBody(map[string]any{"page": "/menu"}))
	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, []string{"/menu"}, tracker.pages)

	rec = testkit.Do(h, http.MethodPost, "/api/track/page",
		testkit.JSONBody(map[string]any{}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Len(t, tracker.pages, 1)
}
