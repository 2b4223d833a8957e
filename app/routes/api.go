package routes

import (
	"net/http"

	"github.com/putrawardana/warungsaji/app/controllers"
	"github.com/putrawardana/warungsaji/pkg/middleware"
	"github.com/putrawardana/warungsaji/pkg/rbac"
	"github.com/putrawardana/warungsaji/pkg/router"
)

// Controllers bundles every controller the API needs. Assembled in
// internal/kernel.
type Controllers struct {
	Menu      *controllers.MenuController
	Cart      *controllers.CartController
	Checkout  *controllers.CheckoutController
	Auth      *controllers.AuthController
	Products  *controllers.ProductController
	Dashboard *controllers.DashboardController
	QR        *controllers.QRController
	GraphQL   http.HandlerFunc
}

// RegisterAPI mounts the public storefront and admin route groups.
func RegisterAPI(r *router.Router, c Controllers) {
	api := r.Group("/api")

	// Public storefront.
	api.Get("/menu", "menu.list", c.Menu.List)
	api.Get("/menu/categories", "menu.categories", c.Menu.Categories)
	api.Get("/menu/{id}", "menu.detail", c.Menu.Detail)
	api.Post("/track/page", "track.page", c.Menu.TrackPage)
	api.Post("/graphql", "graphql", c.GraphQL)

	api.Get("/cart", "cart.show", c.Cart.Show)
	api.Post("/cart/items", "cart.add", c.Cart.AddItem)
	api.Patch("/cart/items/{productID}", "cart.update", c.Cart.UpdateItem)
	api.Delete("/cart/items/{productID}", "cart.remove", c.Cart.RemoveItem)
	api.Delete("/cart", "cart.clear", c.Cart.Clear)

	api.Post("/checkout", "checkout", c.Checkout.Checkout)
	api.Get("/table/claim", "table.claim", c.Checkout.ClaimTable)

	// Admin.
	admin := api.Group("/admin")
	admin.Post("/login", "admin.login", c.Auth.Login, rbac.Guest)

	protected := admin.Group("", middleware.Auth, rbac.HasRole("admin"))
	protected.Post("/logout", "admin.logout", c.Auth.Logout)
	protected.Get("/me", "admin.me", c.Auth.Me)

	protected.Get("/products", "admin.products.list", c.Products.List)
	protected.Post("/products", "admin.products.create", c.Products.Create)
	// Register before /products/{id} so chi never swallows "reorder"
	// as an id.
	protected.Put("/products/reorder", "admin.products.reorder", c.Products.Reorder)
	protected.Get("/products/{id}", "admin.products.show", c.Products.Show)
	protected.Put("/products/{id}", "admin.products.update", c.Products.Update)
	protected.Delete("/products/{id}", "admin.products.delete", c.Products.Delete)
	protected.Post("/products/{id}/image", "admin.products.image", c.Products.UploadImage)

	protected.Get("/dashboard", "admin.dashboard", c.Dashboard.Overview)
	protected.Get("/dashboard/top-pages", "admin.dashboard.top_pages", c.Dashboard.TopPages)
	protected.Get("/dashboard/most-viewed", "admin.dashboard.most_viewed", c.Dashboard.MostViewed)
	protected.Get("/dashboard/best-sellers", "admin.dashboard.best_sellers", c.Dashboard.BestSellers)
	protected.Get("/dashboard/top-revenue", "admin.dashboard.top_revenue", c.Dashboard.TopRevenue)
	protected.Get("/dashboard/most-added", "admin.dashboard.most_added", c.Dashboard.MostAdded)
	protected.Get("/dashboard/categories", "admin.dashboard.categories", c.Dashboard.Categories)

	protected.Get("/qr", "admin.qr", c.QR.Generate)
}
