package server

import (
	"log"
	"net/http"
	"time"

	"gorm.io/gorm"

	"beverage-backend/internal/handlers"
	"beverage-backend/internal/httpx"
	"beverage-backend/internal/services"
)

// New constructs the root http.Handler. Services are built and passed in
// here explicitly; nothing is resolved from globals.
func New(db *gorm.DB) http.Handler {
	catalog := services.NewCatalogService(db)
	pricing := services.NewPricingService(db, catalog)
	orders := services.NewOrderService(db, pricing, nil)

	ch := handlers.NewCatalogHandler(catalog)
	ph := handlers.NewPricingHandler(pricing)
	oh := handlers.NewOrderHandler(orders)

	mux := http.NewServeMux()

	// --- Health endpoints ---
	//revive:disable:unused-parameter simple handlers intentionally ignore *http.Request
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		if err := db.Exec("SELECT 1").Error; err != nil {
			httpx.JSON(w, http.StatusServiceUnavailable, map[string]string{"status": "degraded"})
			return
		}
		httpx.JSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	//revive:enable:unused-parameter

	// Catalog
	mux.HandleFunc("POST /beverage-types", ch.CreateType)
	mux.HandleFunc("GET /beverage-types", ch.ListTypes)
	mux.HandleFunc("GET /beverage-types/{id}", ch.GetType)
	mux.HandleFunc("PATCH /beverage-types/{id}", ch.UpdateType)
	mux.HandleFunc("DELETE /beverage-types/{id}", ch.DeleteType)

	mux.HandleFunc("POST /beverage-sizes", ch.CreateSize)
	mux.HandleFunc("GET /beverage-sizes", ch.ListSizes)
	mux.HandleFunc("GET /beverage-sizes/{id}", ch.GetSize)
	mux.HandleFunc("PATCH /beverage-sizes/{id}", ch.UpdateSize)
	mux.HandleFunc("DELETE /beverage-sizes/{id}", ch.DeleteSize)

	// Price matrix. The (type, size) lookup stays internal to the order
	// service; it is deliberately not routed.
	mux.HandleFunc("POST /price-links", ph.Create)
	mux.HandleFunc("GET /price-links", ph.List)
	mux.HandleFunc("GET /price-links/{id}", ph.Get)
	mux.HandleFunc("PATCH /price-links/{id}", ph.Update)
	mux.HandleFunc("DELETE /price-links/{id}", ph.Delete)

	// Orders: create and read only, orders are immutable once placed.
	mux.HandleFunc("POST /orders", oh.Create)
	mux.HandleFunc("GET /orders", oh.List)
	mux.HandleFunc("GET /orders/{id}", oh.Get)

	// OpenAPI spec
	mux.HandleFunc("GET /openapi.yaml", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/yaml")
		http.ServeFile(w, r, "openapi.yaml")
	})

	return withRecover(withLogging(mux))
}

func withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		log.Printf("%s %s %s", r.Method, r.URL.Path, time.Since(start))
	})
}

func withRecover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				log.Printf("panic serving %s %s: %v", r.Method, r.URL.Path, rec)
				httpx.JSONError(w, http.StatusInternalServerError, "internal_error", nil)
			}
		}()
		next.ServeHTTP(w, r)
	})
}
