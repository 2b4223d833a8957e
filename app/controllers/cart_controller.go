package controllers

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/putrawardana/warungsaji/app/cart"
	"github.com/putrawardana/warungsaji/app/models"
	"github.com/putrawardana/warungsaji/app/repositories"
	"github.com/putrawardana/warungsaji/pkg/bind"
	"github.com/putrawardana/warungsaji/pkg/metrics"
	"github.com/putrawardana/warungsaji/pkg/response"
	"github.com/putrawardana/warungsaji/pkg/router"
	"github.com/putrawardana/warungsaji/pkg/session"
)

// ProductFinder resolves products for cart snapshots.
type ProductFinder interface {
	FindByID(id string) (models.Product, error)
}

// CartAddTracker records add-to-cart events.
type CartAddTracker interface {
	CartAdd(event models.CartAddEvent)
}

// CartController manages the session cart.
type CartController struct {
	store    *cart.Store
	products ProductFinder
	tracker  CartAddTracker
}

func NewCartController(store *cart.Store, products ProductFinder, tracker CartAddTracker) *CartController {
	return &CartController{store: store, products: products, tracker: tracker}
}

// cartView is the JSON shape of the cart.
type cartView struct {
	Lines         []cart.Line     `json:"lines"`
	Subtotal      decimal.Decimal `json:"subtotal"`
	TotalQuantity int             `json:"total_quantity"`
}

func viewOf(c *cart.Cart) cartView {
	lines := c.Lines()
	if lines == nil {
		lines = []cart.Line{}
	}
	return cartView{
		Lines:         lines,
		Subtotal:      c.Subtotal(),
		TotalQuantity: c.TotalQuantity(),
	}
}

func (c *CartController) cartFor(r *http.Request) *cart.Cart {
	return c.store.Get(session.FromCtx(r).ID())
}

// Show handles GET /api/cart.
func (c *CartController) Show(w http.ResponseWriter, r *http.Request) {
	response.Success(w, viewOf(c.cartFor(r)))
}

type addItemInput struct {
	ProductID string `json:"product_id" validate:"required,uuid"`
	Quantity  int    `json:"quantity"`
}

// AddItem handles POST /api/cart/items. The product snapshot (name,
// price, image) is taken here, so later menu edits do not change carts.
func (c *CartController) AddItem(w http.ResponseWriter, r *http.Request) {
	var in addItemInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	product, err := c.products.FindByID(in.ProductID)
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			response.NotFound(w)
			return
		}
		response.Error(w, http.StatusInternalServerError, "Menu is unavailable")
		return
	}

	ct := c.cartFor(r)
	ct.Add(cart.Line{
		ProductID: product.ID,
		Name:      product.Name,
		Price:     product.Price,
		ImageURL:  product.ImageURL,
	}, in.Quantity)

	metrics.CartAdds.Inc()
	qty := in.Quantity
	if qty < 1 {
		qty = 1
	}
	c.tracker.CartAdd(models.CartAddEvent{
		ProductID:   product.ID,
		ProductName: product.Name,
		Quantity:    qty,
		SessionID:   session.FromCtx(r).ID(),
	})

	response.Success(w, viewOf(ct))
}

type updateItemInput struct {
	Op       string `json:"op" validate:"nullable,in=set,increment,decrement"`
	Quantity int    `json:"quantity"`
}

// UpdateItem handles PATCH /api/cart/items/{productID}. Either an op
// ("increment"/"decrement") or an absolute quantity ("set", the
// default); setting zero or below removes the line. Incrementing a
// product whose line was removed re-inserts it at quantity 1 with a
// fresh snapshot, so the storefront plus button keeps working after a
// decrement to zero.
func (c *CartController) UpdateItem(w http.ResponseWriter, r *http.Request) {
	var in updateItemInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	ct := c.cartFor(r)
	id := router.Param(r, "productID")

	switch in.Op {
	case "increment":
		if !ct.Increment(id) {
			product, err := c.products.FindByID(id)
			if err != nil {
				if errors.Is(err, repositories.ErrProductNotFound) {
					response.NotFound(w)
					return
				}
				response.Error(w, http.StatusInternalServerError, "Menu is unavailable")
				return
			}
			ct.Add(cart.Line{
				ProductID: product.ID,
				Name:      product.Name,
				Price:     product.Price,
				ImageURL:  product.ImageURL,
			}, 1)
		}
	case "decrement":
		ct.Decrement(id)
	default:
		ct.SetQuantity(id, in.Quantity)
	}

	response.Success(w, viewOf(ct))
}

// RemoveItem handles DELETE /api/cart/items/{productID}.
func (c *CartController) RemoveItem(w http.ResponseWriter, r *http.Request) {
	ct := c.cartFor(r)
	ct.Remove(router.Param(r, "productID"))
	response.Success(w, viewOf(ct))
}

// Clear handles DELETE /api/cart.
func (c *CartController) Clear(w http.ResponseWriter, r *http.Request) {
	c.cartFor(r).Clear()
	response.NoContent(w)
}
