package controllers

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/putrawardana/warungsaji/app/cart"
	"github.com/putrawardana/warungsaji/app/models"
	"github.com/putrawardana/warungsaji/app/repositories"
	"github.com/putrawardana/warungsaji/pkg/router"
	"github.com/putrawardana/warungsaji/pkg/session"
	"github.com/putrawardana/warungsaji/pkg/testkit"
)

const (
	nasiID = "0f8fad5b-d9cb-469f-a165-70867728950e"
	tehID  = "7c9e6679-7425-40de-944b-e07fc1f90ae7"
)

type fakeProductFinder struct{ items map[string]models.Product }

func (f *fakeProductFinder) FindByID(id string) (models.Product, error) {
	if p, ok := f.items[id]; ok {
		return p, nil
	}
	return models.Product{}, repositories.ErrProductNotFound
}

type fakeCartTracker struct{ events []models.CartAddEvent }

func (f *fakeCartTracker) CartAdd(e models.CartAddEvent) { f.events = append(f.events, e) }

func menuFinder() *fakeProductFinder {
	return &fakeProductFinder{items: map[string]models.Product{
		nasiID: {
			Base:     models.Base{ID: nasiID},
			Name:     "Nasi Goreng",
			Price:    decimal.NewFromInt(15000),
			ImageURL: "https://img.example.com/nasi.jpg",
		},
		tehID: {
			Base:  models.Base{ID: tehID},
			Name:  "Es Teh",
			Price: decimal.NewFromInt(5000),
		},
	}}
}

func newCartAPI(tracker *fakeCartTracker) http.Handler {
	ctrl := NewCartController(cart.NewStore(0), menuFinder(), tracker)

	r := router.New()
	r.Use(session.Middleware(session.DefaultOptions()))
	r.Get("/api/cart", "cart.show", ctrl.Show)
	r.Delete("/api/cart", "cart.clear", ctrl.Clear)
	r.Post("/api/cart/items", "cart.items.add", ctrl.AddItem)
	r.Patch("/api/cart/items/{productID}", "cart.items.update", ctrl.UpdateItem)
	r.Delete("/api/cart/items/{productID}", "cart.items.remove", ctrl.RemoveItem)
	return r.Handler()
}

type cartViewOut struct {
	Lines         []cart.Line     `json:"lines"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalQuantity int             `json:"total_quantity"`
}

// sessionOf extracts the session cookie handed out on the first request
// so follow-up requests land on the same cart.
func sessionOf(t *testing.T, rec *httptest.ResponseRecorder) testkit.Option {
	t.Helper()
	for _, c := range rec.Result().Cookies() {
		if c.Name == "warungsaji_session" {
			return testkit.Cookie(c.Name, c.Value)
		}
	}
	t.Fatal("no session cookie issued")
	return nil
}

func TestCartAddMergeAndUpdate(t *testing.T) {
	tracker := &fakeCartTracker{}
	h := newCartAPI(tracker)

	rec := testkit.Do(h, http.MethodPost, "/api/cart/items",
		testkit.JSONBody(map[string]any{"product_id": nasiID}))
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	sess := sessionOf(t, rec)

	var view cartViewOut
	testkit.DecodeData(t, rec, &view)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, "Nasi Goreng", view.Lines[0].Name)
	assert.Equal(t, 1, view.Lines[0].Quantity, "omitted quantity counts as 1")

	// Adding the same product again merges into the existing line.
	rec = testkit.Do(h, http.MethodPost, "/api/cart/items",
		testkit.JSONBody(map[string]any{"product_id": nasiID, "quantity": 2}), sess)
	require.Equal(t, http.StatusOK, rec.Code)
	testkit.DecodeData(t, rec, &view)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 3, view.Lines[0].Quantity)
	assert.True(t, view.Subtotal.Equal(decimal.NewFromInt(45000)))

	rec = testkit.Do(h, http.MethodPatch, "/api/cart/items/"+nasiID,
		testkit.JSONBody(map[string]any{"op": "decrement"}), sess)
	require.Equal(t, http.StatusOK, rec.Code)
	testkit.DecodeData(t, rec, &view)
	assert.Equal(t, 2, view.Lines[0].Quantity)

	// Setting the quantity to zero removes the line entirely.
	rec = testkit.Do(h, http.MethodPatch, "/api/cart/items/"+nasiID,
		testkit.JSONBody(map[string]any{"quantity": 0}), sess)
	require.Equal(t, http.StatusOK, rec.Code)
	testkit.DecodeData(t, rec, &view)
	assert.Empty(t, view.Lines)
	assert.Equal(t, 0, view.TotalQuantity)

	require.Len(t, tracker.events, 2)
	assert.Equal(t, 1, tracker.events[0].Quantity)
	assert.Equal(t, 2, tracker.events[1].Quantity)
	assert.NotEmpty(t, tracker.events[0].SessionID)
}

// The plus button keeps working after a line is decremented away: the
// increment op re-inserts the product at quantity 1.
func TestCartIncrementAfterRemovalReinserts(t *testing.T) {
	h := newCartAPI(&fakeCartTracker{})

	rec := testkit.Do(h, http.MethodPost, "/api/cart/items",
		testkit.JSONBody(map[string]any{"product_id": nasiID}))
	require.Equal(t, http.StatusOK, rec.Code)
	sess := sessionOf(t, rec)

	rec = testkit.Do(h, http.MethodPatch, "/api/cart/items/"+nasiID,
		testkit.JSONBody(map[string]any{"op": "decrement"}), sess)
	require.Equal(t, http.StatusOK, rec.Code)
	var view cartViewOut
	testkit.DecodeData(t, rec, &view)
	require.Empty(t, view.Lines)

	rec = testkit.Do(h, http.MethodPatch, "/api/cart/items/"+nasiID,
		testkit.JSONBody(map[string]any{"op": "increment"}), sess)
	require.Equal(t, http.StatusOK, rec.Code)
	testkit.DecodeData(t, rec, &view)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, 1, view.Lines[0].Quantity)
	assert.Equal(t, "Nasi Goreng", view.Lines[0].Name, "re-insert takes a fresh snapshot")
	assert.Equal(t, 1, view.TotalQuantity)
}

func TestCartIncrementUnknownProduct(t *testing.T) {
	h := newCartAPI(&fakeCartTracker{})

	rec := testkit.Do(h, http.MethodPatch,
		"/api/cart/items/5bd9bb5f-0000-4000-8000-000000000000",
		testkit.JSONBody(map[string]any{"op": "increment"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartAddUnknownProduct(t *testing.T) {
	h := newCartAPI(&fakeCartTracker{})

	rec := testkit.Do(h, http.MethodPost, "/api/cart/items",
		testkit.JSONBody(map[string]any{"product_id": "5bd9bb5f-0000-4000-8000-000000000000"}))
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestCartAddValidatesProductID(t *testing.T) {
	tracker := &fakeCartTracker{}
	h := newCartAPI(tracker)

	rec := testkit.Do(h, http.MethodPost, "/api/cart/items",
		testkit.JSONBody(map[string]any{"product_id": "not-a-uuid"}))
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)

	env := testkit.DecodeEnvelope(t, rec)
	assert.Contains(t, env.Errors, "product_id")
	assert.Empty(t, tracker.events)
}

func TestCartIsolatedPerSession(t *testing.T) {
	h := newCartAPI(&fakeCartTracker{})

	rec := testkit.Do(h, http.MethodPost, "/api/cart/items",
		testkit.JSONBody(map[string]any{"product_id": nasiID}))
	require.Equal(t, http.StatusOK, rec.Code)
	first := sessionOf(t, rec)

	// A request without the cookie starts a fresh, empty cart.
	rec = testkit.Do(h, http.MethodGet, "/api/cart")
	require.Equal(t, http.StatusOK, rec.Code)
	var view cartViewOut
	testkit.DecodeData(t, rec, &view)
	assert.Empty(t, view.Lines)

	rec = testkit.Do(h, http.MethodGet, "/api/cart", first)
	testkit.DecodeData(t, rec, &view)
	assert.Len(t, view.Lines, 1)
}

func TestCartRemoveAndClear(t *testing.T) {
	h := newCartAPI(&fakeCartTracker{})

	rec := testkit.Do(h, http.MethodPost, "/api/cart/items",
		testkit.JSONBody(map[string]any{"product_id": nasiID}))
	sess := sessionOf(t, rec)
	testkit.Do(h, http.MethodPost, "/api/cart/items",
		testkit.JSONBody(map[string]any{"product_id": tehID}), sess)

	rec = testkit.Do(h, http.MethodDelete, "/api/cart/items/"+nasiID, sess)
	require.Equal(t, http.StatusOK, rec.Code)
	var view cartViewOut
	testkit.DecodeData(t, rec, &view)
	require.Len(t, view.Lines, 1)
	assert.Equal(t, tehID, view.Lines[0].ProductID)

	rec = testkit.Do(h, http.MethodDelete, "/api/cart", sess)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = testkit.Do(h, http.MethodGet, "/api/cart", sess)
	testkit.DecodeData(t, rec, &view)
	assert.Empty(t, view.Lines)
}
