package controllers

import (
	"errors"
	"net/http"

	"github.com/shopspring/decimal"

	"github.com/putrawardana/warungsaji/app/models"
	"github.com/putrawardana/warungsaji/app/repositories"
	"github.com/putrawardana/warungsaji/app/services"
	"github.com/putrawardana/warungsaji/pkg/bind"
	"github.com/putrawardana/warungsaji/pkg/response"
	"github.com/putrawardana/warungsaji/pkg/router"
)

// ProductAdminStore is the admin CRUD slice of ProductRepository.
type ProductAdminStore interface {
	All() ([]models.Product, error)
	FindByID(id string) (models.Product, error)
	Create(item *models.Product) error
	Update(item *models.Product) error
	Delete(id string) error
}

// Reorderer applies drag-and-drop reorders.
type Reorderer interface {
	MoveProduct(sourceID, targetID string) ([]models.Product, error)
	ApplyOrder(orderedIDs []string) ([]models.Product, error)
}

// ProductController is the admin menu management API. Unlike the
// storefront, admin errors are surfaced to the operator.
type ProductController struct {
	products ProductAdminStore
	reorder  Reorderer
	images   *services.ImageService
}

func NewProductController(products ProductAdminStore, reorder Reorderer, images *services.ImageService) *ProductController {
	return &ProductController{products: products, reorder: reorder, images: images}
}

// List handles GET /api/admin/products.
func (c *ProductController) List(w http.ResponseWriter, r *http.Request) {
	items, err := c.products.All()
	if err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	if items == nil {
		items = []models.Product{}
	}
	response.Success(w, items)
}

type productInput struct {
	Name        string  `json:"name" validate:"required,max=255"`
	Category    string  `json:"category" validate:"required,max=100"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description" validate:"nullable,max=2000"`
	ImageURL    string  `json:"image_url" validate:"nullable,url"`
}

func (in productInput) apply(item *models.Product) {
	item.Name = in.Name
	item.Category = in.Category
	item.Price = decimal.NewFromFloat(in.Price)
	item.Description = in.Description
	item.ImageURL = in.ImageURL
}

// Create handles POST /api/admin/products. New items are appended to
// the end of the menu.
func (c *ProductController) Create(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	var item models.Product
	in.apply(&item)
	if err := c.products.Create(&item); err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Created(w, item)
}

// Show handles GET /api/admin/products/{id}.
func (c *ProductController) Show(w http.ResponseWriter, r *http.Request) {
	item, err := c.products.FindByID(router.Param(r, "id"))
	if err != nil {
		c.writeStoreError(w, err)
		return
	}
	response.Success(w, item)
}

// Update handles PUT /api/admin/products/{id}.
func (c *ProductController) Update(w http.ResponseWriter, r *http.Request) {
	var in productInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	item, err := c.products.FindByID(router.Param(r, "id"))
	if err != nil {
		c.writeStoreError(w, err)
		return
	}

	in.apply(&item)
	if err := c.products.Update(&item); err != nil {
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(w, item)
}

// Delete handles DELETE /api/admin/products/{id}.
func (c *ProductController) Delete(w http.ResponseWriter, r *http.Request) {
	if err := c.products.Delete(router.Param(r, "id")); err != nil {
		c.writeStoreError(w, err)
		return
	}
	response.NoContent(w)
}

type reorderInput struct {
	SourceID   string   `json:"source_id"`
	TargetID   string   `json:"target_id"`
	OrderedIDs []string `json:"ordered_ids"`
}

// Reorder handles PUT /api/admin/products/reorder. The body carries
// either a drag completion {source_id, target_id} or a full explicit
// order {ordered_ids}. The response is the persisted order.
func (c *ProductController) Reorder(w http.ResponseWriter, r *http.Request) {
	var in reorderInput
	if _, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	}

	var (
		items []models.Product
		err   error
	)
	switch {
	case len(in.OrderedIDs) > 0:
		items, err = c.reorder.ApplyOrder(in.OrderedIDs)
	case in.SourceID != "" && in.TargetID != "":
		items, err = c.reorder.MoveProduct(in.SourceID, in.TargetID)
	default:
		response.BadRequest(w, "Provide source_id and target_id, or ordered_ids")
		return
	}

	if err != nil {
		if errors.Is(err, services.ErrUnknownProduct) {
			response.ValidationError(w, map[string]string{"ordered_ids": err.Error()})
			return
		}
		response.Error(w, http.StatusInternalServerError, err.Error())
		return
	}
	response.Success(w, items)
}

// UploadImage handles POST /api/admin/products/{id}/image (multipart
// field "image").
func (c *ProductController) UploadImage(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(services.MaxImageSize); err != nil {
		response.BadRequest(w, "Invalid multipart payload")
		return
	}

	file, header, err := r.FormFile("image")
	if err != nil {
		response.BadRequest(w, "Missing image file")
		return
	}
	defer file.Close()

	url, err := c.images.Upload(router.Param(r, "id"), header.Filename, header.Size, file)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrImageTooLarge), errors.Is(err, services.ErrImageType):
			response.ValidationError(w, map[string]string{"image": err.Error()})
		case errors.Is(err, repositories.ErrProductNotFound):
			response.NotFound(w)
		default:
			response.Error(w, http.StatusInternalServerError, err.Error())
		}
		return
	}

	response.Success(w, map[string]string{"image_url": url})
}

func (c *ProductController) writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, repositories.ErrProductNotFound) {
		response.NotFound(w)
		return
	}
	response.Error(w, http.StatusInternalServerError, err.Error())
}
