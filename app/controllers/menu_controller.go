package controllers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/putrawardana/warungsaji/app/models"
	"github.com/putrawardana/warungsaji/app/repositories"
	"github.com/putrawardana/warungsaji/app/services"
	"github.com/putrawardana/warungsaji/pkg/bind"
	"github.com/putrawardana/warungsaji/pkg/logger"
	"github.com/putrawardana/warungsaji/pkg/response"
	"github.com/putrawardana/warungsaji/pkg/router"
)

// MenuProvider is what the storefront controller needs from the menu
// service.
type MenuProvider interface {
	List(category, q string, limit, offset int) ([]models.Product, error)
	Categories() ([]services.Category, error)
	Detail(id string) (models.Product, error)
}

// PageTracker records page accesses.
type PageTracker interface {
	PageView(page string)
}

// MenuController serves the public menu endpoints. Storefront reads
// degrade to an empty list on store failure so the customer-facing UI
// keeps rendering.
type MenuController struct {
	menu    MenuProvider
	tracker PageTracker
}

func NewMenuController(menu MenuProvider, tracker PageTracker) *MenuController {
	return &MenuController{menu: menu, tracker: tracker}
}

// List handles GET /api/menu.
func (c *MenuController) List(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	limit, _ := strconv.Atoi(q.Get("limit"))
	offset, _ := strconv.Atoi(q.Get("offset"))

	items, err := c.menu.List(q.Get("category"), q.Get("q"), limit, offset)
	if err != nil {
		logger.Warn("menu: list degraded to empty", "error", err)
		response.Success(w, []models.Product{})
		return
	}
	if items == nil {
		items = []models.Product{}
	}
	response.Success(w, items)
}

// Categories handles GET /api/menu/categories.
func (c *MenuController) Categories(w http.ResponseWriter, r *http.Request) {
	categories, err := c.menu.Categories()
	if err != nil {
		logger.Warn("menu: categories degraded to empty", "error", err)
		response.Success(w, []services.Category{})
		return
	}
	response.Success(w, categories)
}

// Detail handles GET /api/menu/{id}.
func (c *MenuController) Detail(w http.ResponseWriter, r *http.Request) {
	item, err := c.menu.Detail(router.Param(r, "id"))
	if err != nil {
		if errors.Is(err, repositories.ErrProductNotFound) {
			response.NotFound(w)
			return
		}
		logger.Warn("menu: detail failed", "error", err)
		response.Error(w, http.StatusInternalServerError, "Menu is unavailable")
		return
	}
	response.Success(w, item)
}

type trackPageInput struct {
	Page string `json:"page" validate:"required,max=255"`
}

// TrackPage handles POST /api/track/page. Best effort; the client gets
// 204 either way once the payload parses.
func (c *MenuController) TrackPage(w http.ResponseWriter, r *http.Request) {
	var in trackPageInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	c.tracker.PageView(in.Page)
	response.NoContent(w)
}
