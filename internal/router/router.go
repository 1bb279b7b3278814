package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/spicetable/api/internal/cart"
	"github.com/spicetable/api/internal/checkout"
	"github.com/spicetable/api/internal/config"
	"github.com/spicetable/api/internal/enum"
	"github.com/spicetable/api/internal/handler"
	mw "github.com/spicetable/api/internal/middleware"
	"github.com/spicetable/api/internal/order"
	"github.com/spicetable/api/internal/storage"
	"github.com/spicetable/api/internal/ws"
)

// New creates a Chi router with all application routes wired up. Customer
// routes are public; the admin group sits behind JWT authentication.
func New(cfg *config.Config, kv storage.KV, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Stores and services
	carts := cart.New(kv)
	orders := order.New(kv)
	checkoutSvc := checkout.New(carts, orders)

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok","version":"1.0.0"}`))
	})

	handler.NewAuthHandler(cfg.AdminUsername, cfg.AdminPasswordHash, cfg.JWTSecret).RegisterRoutes(r)
	handler.NewMenuHandler().RegisterRoutes(r)
	handler.NewCartHandler(carts).RegisterRoutes(r)
	handler.NewCheckoutHandler(checkoutSvc, hub).RegisterRoutes(r)
	handler.NewOrderHandler(orders).RegisterRoutes(r)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Admin routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))
		r.Use(mw.RequireRole(enum.RoleAdmin))

		handler.NewAdminHandler(orders, hub).RegisterRoutes(r)
	})

	return r
}
