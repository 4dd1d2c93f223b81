package http

import (
	"context"
	"net/http"
	"time"

	"github.com/gorilla/mux"

	"dronehub-backend/internal/config"
	"dronehub-backend/internal/security"
	"dronehub-backend/internal/service"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Dependencies are the services the router dispatches to.
type Dependencies struct {
	Storefront   service.StorefrontService
	Drones       service.DroneService
	TokenManager security.TokenManager
	Health       Pinger
}

// NewRouter registers every route under its configured name.
func NewRouter(deps Dependencies) *mux.Router {
	store := NewStorefrontHandler(deps.Storefront)
	admin := NewAdminHandler(deps.Drones)
	auth := NewAuthMiddleware(deps.TokenManager)

	router := mux.NewRouter()
	router.Use(requestLogger, auth.Handle)
	router.NotFoundHandler = http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusNotFound, &ProblemDetails{
			Type:     "about:blank",
			Title:    http.StatusText(http.StatusNotFound),
			Status:   http.StatusNotFound,
			Code:     "not_found",
			Instance: r.URL.Path,
		})
	})

	router.HandleFunc("/healthz", healthHandler(deps.Health)).Methods("GET").Name(config.RouteHealth)

	s := router.PathPrefix("/store/{countryCode}").Subrouter()
	s.HandleFunc("/copy", store.GetCopy).Methods("GET").Name(config.RouteStoreCopy)
	s.HandleFunc("/products", store.ListProducts).Methods("GET").Name(config.RouteListProducts)
	s.HandleFunc("/products/{handle}", store.GetProduct).Methods("GET").Name(config.RouteGetProduct)
	s.HandleFunc("/products/{handle}/evaluate", store.EvaluateOffer).Methods("POST").Name(config.RouteEvaluateOffer)
	s.HandleFunc("/carts/totals", store.CartTotals).Methods("POST").Name(config.RouteCartTotals)
	s.HandleFunc("/carts/{cartId}/line-items", store.AddLineItem).Methods("POST").Name(config.RouteAddLineItem)

	a := router.PathPrefix("/admin").Subrouter()
	a.HandleFunc("/products/{productId}/drone", admin.CreateDrone).Methods("POST").Name(config.RouteCreateDrone)
	a.HandleFunc("/drones/{droneId}", admin.DeleteDrone).Methods("DELETE").Name(config.RouteDeleteDrone)
	a.HandleFunc("/hooks/products-created", admin.ProductsCreated).Methods("POST").Name(config.RouteProductsCreated)

	return router
}

func healthHandler(p Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if p != nil {
			ctx, cancel := context.WithTimeout(r.Context(), 2*time.Second)
			defer cancel()
			if err := p.Ping(ctx); err != nil {
				writeJSON(w, http.StatusServiceUnavailable, map[string]string{"status": "unavailable", "error": err.Error()})
				return
			}
		}
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
