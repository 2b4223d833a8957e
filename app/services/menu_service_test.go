package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/putrawardana/warungsaji/app/models"
	"github.com/putrawardana/warungsaji/app/repositories"
)

type fakeMenuStore struct {
	items      []models.Product
	categories []string

	searchCategory string
	searchQ        string
	cachedCalls    int
}

func (f *fakeMenuStore) CachedAll() ([]models.Product, error) {
	f.cachedCalls++
	return f.items, nil
}

func (f *fakeMenuStore) Search(category, q string, limit, offset int) ([]models.Product, error) {
	f.searchCategory = category
	f.searchQ = q
	return f.items, nil
}

func (f *fakeMenuStore) FindByID(id string) (models.Product, error) {
	for _, it := range f.items {
		if it.ID == id {
			return it, nil
		}
	}
	return models.Product{}, repositories.ErrProductNotFound
}

func (f *fakeMenuStore) Categories() ([]string, error) { return f.categories, nil }

type fakeViewTracker struct{ viewed []string }

func (f *fakeViewTracker) MenuItemView(productID, productName string) {
	f.viewed = append(f.viewed, productID)
}

func TestListUsesCacheForFullMenu(t *testing.T) {
	store := &fakeMenuStore{items: menuOf("A", "B")}
	svc := NewMenuService(store, &fakeViewTracker{})

	_, err := svc.List("", "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 1, store.cachedCalls)

	// "Semua" means no category filter, still the cached path.
	_, err = svc.List(AllCategories, "", 0, 0)
	require.NoError(t, err)
	assert.Equal(t, 2, store.cachedCalls)
}

func TestListFiltersGoToSearch(t *testing.T) {
	store := &fakeMenuStore{items: menuOf("A")}
	svc := NewMenuService(store, &fakeViewTracker{})

	_, err := svc.List("Minuman", "teh", 10, 0)
	require.NoError(t, err)
	assert.Equal(t, 0, store.cachedCalls)
	assert.Equal(t, "Minuman", store.searchCategory)
	assert.Equal(t, "teh", store.searchQ)
}

func TestCategoriesPrependsSemua(t *testing.T) {
	store := &fakeMenuStore{categories: []string{"Makanan", "Minuman", "Sushi"}}
	svc := NewMenuService(store, &fakeViewTracker{})

	cats, err := svc.Categories()
	require.NoError(t, err)
	require.Len(t, cats, 4)

	assert.Equal(t, AllCategories, cats[0].Name)
	assert.Equal(t, "Makanan", cats[1].Name)
	assert.Equal(t, "🍛", cats[1].Icon)
	// Unknown categories fall back to the generic icon.
	assert.Equal(t, CategoryIcon(AllCategories), cats[3].Icon)
}

func TestDetailTracksView(t *testing.T) {
	store := &fakeMenuStore{items: menuOf("A", "B")}
	tracker := &fakeViewTracker{}
	svc := NewMenuService(store, tracker)

	item, err := svc.Detail("B")
	require.NoError(t, err)
	assert.Equal(t, "B", item.ID)
	assert.Equal(t, []string{"B"}, tracker.viewed)
}

func TestDetailNotFoundDoesNotTrack(t *testing.T) {
	tracker := &fakeViewTracker{}
	svc := NewMenuService(&fakeMenuStore{}, tracker)

	_, err := svc.Detail("ghost")
	assert.ErrorIs(t, err, repositories.ErrProductNotFound)
	assert.Empty(t, tracker.viewed)
}
