package router

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	httpSwagger "github.com/swaggo/http-swagger/v2"

	_ "github.com/FACorreiaa/go-travel-recommendation/docs"
	"github.com/FACorreiaa/go-travel-recommendation/internal/api/destination"
)

// Config contains dependencies needed for the router setup
type Config struct {
	DestinationHandler destination.Handler
	AllowedOrigins     []string
}

// SetupRouter builds the API router. Server-wide middleware (request ID,
// logging, recoverer) is applied by the caller before mounting it.
func SetupRouter(cfg *Config) chi.Router {
	r := chi.NewRouter()

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "OPTIONS"},
		AllowedHeaders: []string{"Accept", "Content-Type"},
		MaxAge:         300,
	}))

	r.Get("/ping", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("pong"))
	})

	r.Get("/swagger/*", httpSwagger.Handler(httpSwagger.URL("/swagger/doc.json")))

	r.Route("/api/v1", func(r chi.Router) {
		r.Route("/destinations", func(r chi.Router) {
			r.Get("/", cfg.DestinationHandler.ListDestinations)
			r.Post("/query", cfg.DestinationHandler.QueryDestinations)
			r.Get("/{destinationID}", cfg.DestinationHandler.GetDestination)
		})
		r.Get("/search", cfg.DestinationHandler.SearchDestinations)
		r.Get("/tags", cfg.DestinationHandler.GetTags)

		r.Get("/catalog", cfg.DestinationHandler.GetCatalog)
		r.Post("/catalog/reload", cfg.DestinationHandler.ReloadCatalog)
	})

	return r
}
