package router

import (
	"net/http"

	"github.com/comanda-pos/api/internal/config"
	"github.com/comanda-pos/api/internal/handler"
	mw "github.com/comanda-pos/api/internal/middleware"
	"github.com/comanda-pos/api/internal/policy"
	"github.com/comanda-pos/api/internal/service"
	"github.com/comanda-pos/api/internal/store"
	"github.com/comanda-pos/api/internal/ws"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// New creates a Chi router with all application routes wired up.
// Authentication and capability middleware gate everything except the
// health check, login/register, the public menu listing and the WebSocket
// handshake (which validates its token itself).
func New(cfg *config.Config, st *store.Store, hub *ws.Hub) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.CORSOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	// Public routes
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// Auth routes (public)
	authHandler := handler.NewAuthHandler(st, cfg.JWTSecret)
	authHandler.RegisterRoutes(r)

	// Menu listing is public so the ordering screen can load before login.
	menuHandler := handler.NewMenuHandler(st)
	r.Get("/menu", menuHandler.List)

	// WebSocket route (handles auth internally via query param)
	r.Get("/ws/orders", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, cfg.JWTSecret, w, r)
	})

	// Protected routes (require authentication)
	r.Group(func(r chi.Router) {
		r.Use(mw.Authenticate(cfg.JWTSecret))

		// Menu management
		r.Group(func(r chi.Router) {
			r.Use(mw.RequireCapability(policy.CapManageMenu))
			r.Post("/menu", menuHandler.Create)
			r.Put("/menu/{id}", menuHandler.Update)
			r.Delete("/menu/{id}", menuHandler.Delete)
		})

		// Orders
		orderService := service.NewOrderService(st)
		orderHandler := handler.NewOrderHandler(orderService, st, hub)
		r.Route("/orders", func(r chi.Router) {
			r.With(mw.RequireCapability(policy.CapViewOrders)).Get("/", orderHandler.List)
			r.With(mw.RequireCapability(policy.CapViewOrders)).Get("/{id}", orderHandler.Get)
			r.With(mw.RequireCapability(policy.CapPlaceOrders)).Post("/", orderHandler.Create)
			r.With(mw.RequireCapability(policy.CapUpdateOrderStatus)).Put("/{id}/status", orderHandler.UpdateStatus)
		})

		// Dashboard
		dashboardHandler := handler.NewDashboardHandler(service.NewDashboard(st))
		r.Route("/dashboard", func(r chi.Router) {
			r.Use(mw.RequireCapability(policy.CapViewDashboard))
			dashboardHandler.RegisterRoutes(r)
		})

		// User management
		userHandler := handler.NewUserHandler(st)
		r.Route("/users", func(r chi.Router) {
			r.Use(mw.RequireCapability(policy.CapManageUsers))
			userHandler.RegisterRoutes(r)
		})
	})

	return r
}
