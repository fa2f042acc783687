package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/cocoa-pos/api/internal/config"
	"github.com/cocoa-pos/api/internal/handler"
	"github.com/cocoa-pos/api/internal/menu"
	mw "github.com/cocoa-pos/api/internal/middleware"
	"github.com/cocoa-pos/api/internal/service"
	"github.com/cocoa-pos/api/internal/ws"
)

// New creates a Chi router with all application routes wired up.
func New(cfg *config.Config, catalog *menu.Catalog, floor *service.Floor, hub *ws.Hub, pub *ws.Publisher) chi.Router {
	r := chi.NewRouter()

	// Standard middleware
	r.Use(mw.RequestLogger)
	r.Use(middleware.Recoverer)

	// CORS configuration
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type"},
		AllowCredentials: true,
		MaxAge:           300, // 5 minutes
	}))

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"status":"ok"}`))
	})

	// WebSocket route: one room per screen, snapshot pushed on connect.
	r.Get("/ws/screens/{screen}", func(w http.ResponseWriter, r *http.Request) {
		ws.ServeWS(hub, pub, w, r)
	})

	// Menu
	menuHandler := handler.NewMenuHandler(catalog)
	r.Route("/menu", menuHandler.RegisterRoutes)

	// Tables
	tableHandler := handler.NewTableHandler(floor)
	r.Route("/tables", func(r chi.Router) {
		tableHandler.RegisterRoutes(r)

		r.Route("/{id}", func(r chi.Router) {
			// Line items
			orderHandler := handler.NewOrderHandler(floor)
			r.Route("/orders", orderHandler.RegisterRoutes)

			// Payments and settlement
			paymentHandler := handler.NewPaymentHandler(floor)
			paymentHandler.RegisterRoutes(r)
		})
	})

	// Kitchen and service screens
	stationHandler := handler.NewStationHandler(floor)
	r.Route("/stations", stationHandler.RegisterRoutes)

	// Sales log
	salesHandler := handler.NewSalesHandler(floor)
	r.Route("/sales", salesHandler.RegisterRoutes)

	return r
}
