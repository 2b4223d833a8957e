// Package kernel assembles the HTTP application: repositories,
// services, controllers, middleware stack, and routes.
package kernel

import (
	"encoding/json"
	"net/http"
	"time"

	"github.com/putrawardana/warungsaji/app/cart"
	"github.com/putrawardana/warungsaji/app/controllers"
	"github.com/putrawardana/warungsaji/app/jobs"
	"github.com/putrawardana/warungsaji/app/models"
	"github.com/putrawardana/warungsaji/app/repositories"
	"github.com/putrawardana/warungsaji/app/routes"
	"github.com/putrawardana/warungsaji/app/services"
	"github.com/putrawardana/warungsaji/config"
	"github.com/putrawardana/warungsaji/pkg/event"
	"github.com/putrawardana/warungsaji/pkg/logger"
	"github.com/putrawardana/warungsaji/pkg/metrics"
	"github.com/putrawardana/warungsaji/pkg/middleware"
	"github.com/putrawardana/warungsaji/pkg/notification"
	"github.com/putrawardana/warungsaji/pkg/queue"
	"github.com/putrawardana/warungsaji/pkg/reqid"
	"github.com/putrawardana/warungsaji/pkg/router"
	"github.com/putrawardana/warungsaji/pkg/session"
	"github.com/putrawardana/warungsaji/pkg/storage"
	"github.com/putrawardana/warungsaji/pkg/ws"
)

// trackingWorkers bounds concurrent analytics writes.
const trackingWorkers = 16

// Kernel holds the assembled application and the long-lived pieces the
// server needs for scheduling and shutdown.
type Kernel struct {
	router  *router.Router
	Carts   *cart.Store
	Tracker *services.Tracker
	Hub     *ws.Hub
}

// New wires the whole application together.
func New() (*Kernel, error) {
	productRepo := repositories.NewProductRepository()
	orderRepo := repositories.NewOrderRepository()
	trackingRepo := repositories.NewTrackingRepository()
	userRepo := repositories.NewUserRepository()

	tracker := services.NewTracker(trackingRepo, trackingWorkers)
	carts := cart.NewStore(config.CartTTL())
	hub := ws.NewHub()

	menuSvc := services.NewMenuService(productRepo, tracker)
	reorderSvc := services.NewReorderService(productRepo)
	imageSvc := services.NewImageService(productRepo)
	authSvc := services.NewAuthService(userRepo)
	checkoutSvc := services.NewCheckoutService(
		orderRepo, tracker, config.WhatsAppNumber(),
		func(order models.Order) {
			if err := queue.Dispatch(&jobs.OrderStatsJob{OrderID: order.ID}); err != nil {
				logger.Warn("checkout: stats job dispatch failed", "error", err)
			}
		},
		func(order models.Order) {
			event.FireAsync("order.created", order)
		},
	)

	registerOrderListeners(hub)

	graphqlHandler, err := controllers.NewMenuGraphQLHandler(menuSvc)
	if err != nil {
		return nil, err
	}

	r := router.New()

	// Global middleware stack (outermost to innermost):
	//  1. Prometheus metrics, outermost for accurate total latency
	//  2. Recovery, catches panics before they kill the goroutine
	//  3. Request ID, injected before anything logs
	//  4. Logger, logs request_id from context
	//  5. Session, cookie issued on first visit (carts key off it)
	//  6. CORS
	//  7. Rate limiter
	r.Use(metrics.Middleware())
	r.Use(middleware.Recovery)
	r.Use(reqid.Middleware())
	r.Use(middleware.Logger)
	r.Use(session.Middleware(sessionOptions()))
	r.Use(middleware.CORS(middleware.DefaultCORSOptions()))
	r.Use(middleware.RateLimit(200, time.Minute))

	routes.RegisterAPI(r, routes.Controllers{
		Menu:      controllers.NewMenuController(menuSvc, tracker),
		Cart:      controllers.NewCartController(carts, productRepo, tracker),
		Checkout:  controllers.NewCheckoutController(carts, checkoutSvc),
		Auth:      controllers.NewAuthController(authSvc),
		Products:  controllers.NewProductController(productRepo, reorderSvc, imageSvc),
		Dashboard: controllers.NewDashboardController(trackingRepo, orderRepo),
		QR:        controllers.NewQRController(),
		GraphQL:   graphqlHandler,
	})

	// Prometheus endpoint, outside the /api groups.
	r.Get("/metrics", "metrics", metrics.Handler())

	// Admin live order feed.
	r.Get("/ws/admin/orders", "ws.orders", func(w http.ResponseWriter, req *http.Request) {
		ws.Upgrade(w, req, hub)
	})

	// Locally stored product images.
	r.Mount("/storage", http.StripPrefix("/storage/",
		http.FileServer(http.Dir(storage.LocalRoot()))))

	return &Kernel{router: r, Carts: carts, Tracker: tracker, Hub: hub}, nil
}

// Handler returns the assembled HTTP handler.
func (k *Kernel) Handler() http.Handler { return k.router.Handler() }

// Routes exposes the route table for the route:list command.
func (k *Kernel) Routes() []router.RouteInfo { return k.router.Routes() }

func sessionOptions() session.Options {
	opts := session.DefaultOptions()
	opts.TTL = config.CartTTL()
	opts.Secure = config.AppEnv() == "production"
	return opts
}

// registerOrderListeners fans a created order out to the admin
// WebSocket feed and, when configured, the order webhook.
func registerOrderListeners(hub *ws.Hub) {
	event.Listen("order.created", func(payload interface{}) {
		order, ok := payload.(models.Order)
		if !ok {
			return
		}

		if raw, err := json.Marshal(map[string]interface{}{
			"event": "order.created",
			"order": order,
		}); err == nil {
			hub.Broadcast <- raw
		}

		if config.OrderWebhookURL() != "" {
			notification.SendAsync(&orderCreatedNotification{Order: order})
		}
	})
}

type orderCreatedNotification struct {
	Order models.Order
}

func (n *orderCreatedNotification) Via() []string { return []string{"webhook"} }

func (n *orderCreatedNotification) ToWebhook() notification.WebhookData {
	return notification.WebhookData{
		URL: config.OrderWebhookURL(),
		Payload: map[string]interface{}{
			"event": "order.created",
			"order": n.Order,
		},
	}
}
