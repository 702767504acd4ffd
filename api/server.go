/*
server.go - HTTP router and middleware configuration

PURPOSE:
  Configures the chi router, middleware stack, and route definitions.
  This is the wiring layer that connects URLs to handlers.

MIDDLEWARE STACK:
  1. Logger:     Request logging
  2. Recoverer:  Panic recovery (500 instead of crash)
  3. RequestID:  Unique ID per request for tracing
  4. httprate:   Per-IP request throttling
  5. CORS:       Cross-origin requests for a frontend

SECURITY NOTE:
  No authentication middleware. This is a single-user tool; put it behind
  something if it ever leaves localhost.

SEE ALSO:
  - handlers.go: Handler implementations
  - cmd/server/main.go: Server startup
*/
package api

import (
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
)

// RouterOptions tunes the middleware stack.
type RouterOptions struct {
	AllowedOrigins    []string
	RequestsPerMinute int
}

// NewRouter creates a new router with all routes configured.
func NewRouter(h *Handler, opts RouterOptions) *chi.Mux {
	r := chi.NewRouter()

	// Middleware
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	if opts.RequestsPerMinute > 0 {
		r.Use(httprate.LimitByIP(opts.RequestsPerMinute, time.Minute))
	}
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   opts.AllowedOrigins,
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: true,
	}))

	// API routes
	r.Route("/api", func(r chi.Router) {
		r.Route("/products", func(r chi.Router) {
			r.Get("/", h.ListProducts)
			r.Post("/", h.CreateProduct)
			r.Get("/search", h.SearchProducts)
			r.Get("/{code}", h.GetProduct)
			r.Put("/{code}", h.UpdateProduct)
			r.Delete("/{code}", h.DeleteProduct)
		})

		r.Route("/sales", func(r chi.Router) {
			r.Get("/", h.ListSales)
			r.Post("/", h.RecordSale)
			r.Post("/undo", h.UndoSale)
		})

		r.Get("/reports/{window}", h.GetReport)

		r.Post("/save", h.Save)
	})

	return r
}
