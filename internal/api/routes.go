package api

import (
	"net/http"

	"github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/cors"
)

// SetupRoutes configures all API routes
func SetupRoutes(handler *Handler) *mux.Router {
	r := mux.NewRouter()

	// Health check
	r.HandleFunc("/health", handler.HealthCheck).Methods("GET")

	api := r.PathPrefix("/api").Subrouter()
	api.HandleFunc("/", handler.Root).Methods("GET")
	api.HandleFunc("/search/{query}", handler.Search).Methods("GET")
	api.HandleFunc("/watchlist", handler.AddToWatchlist).Methods("POST")
	api.HandleFunc("/watchlist", handler.GetWatchlist).Methods("GET")
	api.HandleFunc("/watchlist/{symbol}", handler.RemoveFromWatchlist).Methods("DELETE")
	api.HandleFunc("/quote/{symbol}", handler.Quote).Methods("GET")
	api.HandleFunc("/historical/{symbol}", handler.Historical).Methods("GET")
	api.HandleFunc("/comparison", handler.Comparison).Methods("GET")

	return r
}

// NewServerHandler wraps the router with CORS, compression, request IDs, access logging and panic recovery
func NewServerHandler(handler *Handler) http.Handler {
	var h http.Handler = SetupRoutes(handler)
	h = Recovery(h)
	h = Logging(h)
	h = RequestID(h)
	h = handlers.CompressHandler(h)

	c := cors.New(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{http.MethodGet, http.MethodPost, http.MethodPut, http.MethodDelete, http.MethodOptions},
		AllowedHeaders:   []string{"*"},
		ExposedHeaders:   []string{RequestIDHeader},
		AllowCredentials: false,
	})
	return c.Handler(h)
}
