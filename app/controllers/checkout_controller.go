package controllers

import (
	"errors"
	"net/http"

	"github.com/putrawardana/warungsaji/app/cart"
	"github.com/putrawardana/warungsaji/app/services"
	"github.com/putrawardana/warungsaji/pkg/logger"
	"github.com/putrawardana/warungsaji/pkg/response"
	"github.com/putrawardana/warungsaji/pkg/session"
)

// sessionTableKey is where the claimed table name lives in the session.
const sessionTableKey = "table"

// OrderPlacer is what the controller needs from the checkout service.
type OrderPlacer interface {
	Checkout(c *cart.Cart, table string) (services.CheckoutResult, error)
}

// CheckoutController turns the session cart into an order.
type CheckoutController struct {
	store    *cart.Store
	checkout OrderPlacer
}

func NewCheckoutController(store *cart.Store, checkout OrderPlacer) *CheckoutController {
	return &CheckoutController{store: store, checkout: checkout}
}

// Checkout handles POST /api/checkout.
func (c *CheckoutController) Checkout(w http.ResponseWriter, r *http.Request) {
	sess := session.FromCtx(r)
	table, _ := sess.GetString(sessionTableKey)

	result, err := c.checkout.Checkout(c.store.Get(sess.ID()), table)
	if err != nil {
		if errors.Is(err, services.ErrEmptyCart) {
			response.BadRequest(w, "Cart is empty")
			return
		}
		logger.Error("checkout: failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Checkout failed, please try again")
		return
	}

	response.Created(w, result)
}

// ClaimTable handles GET /api/table/claim?t=. The token comes from the
// QR code on the table; a valid claim sticks to the session until it
// expires.
func (c *CheckoutController) ClaimTable(w http.ResponseWriter, r *http.Request) {
	token := r.URL.Query().Get("t")
	if token == "" {
		response.BadRequest(w, "Missing table token")
		return
	}

	table, err := services.DecodeTableToken(token)
	if err != nil {
		response.BadRequest(w, "Invalid table token")
		return
	}

	sess := session.FromCtx(r)
	sess.Set(sessionTableKey, table)
	if err := sess.Save(w); err != nil {
		logger.Warn("table claim: session save failed", "error", err)
	}

	response.Success(w, map[string]string{"table": table})
}
