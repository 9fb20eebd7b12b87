package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/Lixing-Zhang/icecream-api/internal/config"
	"github.com/Lixing-Zhang/icecream-api/internal/handlers"
	"github.com/Lixing-Zhang/icecream-api/internal/middleware"
	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

const requestTimeout = 60 * time.Second

// NewRouter wires middleware and routes for the product API
func NewRouter(cfg config.CORSConfig, log *slog.Logger, products *handlers.ProductHandler, health *handlers.HealthHandler) http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(middleware.Logger(log))
	r.Use(chimiddleware.Recoverer)
	r.Use(chimiddleware.Timeout(requestTimeout))

	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   cfg.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "X-Request-Id"},
		ExposedHeaders:   []string{"Location"},
		AllowCredentials: false,
		MaxAge:           300,
	}))

	r.Get("/health", health.ServeHTTP)

	r.Route("/products", func(r chi.Router) {
		r.Get("/", products.ListProducts)
		r.Post("/", products.CreateProduct)
		r.Get("/{id}", products.GetProduct)
		r.Delete("/{id}", products.DeleteProduct)
	})

	return r
}
