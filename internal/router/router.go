// Package router sets up all HTTP routes and middleware chains for the
// online library. Browsing routes are open; the add-book form sits behind
// CSRF protection and, for submissions, the rate limiter.
package router

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"onlinelibrary/internal/handlers"
	"onlinelibrary/internal/middleware"
)

// Counter reports how many records the catalog holds.
type Counter interface {
	Len() int
}

// Options toggles the optional parts of the router.
type Options struct {
	// Limiter throttles add-book submissions per client. Nil disables it.
	Limiter *middleware.RateLimiter
	// SecureCookies marks the CSRF cookie HTTPS-only.
	SecureCookies bool
	// Metrics exposes Prometheus metrics on /metrics.
	Metrics bool
}

// New creates and returns the configured Chi router with all middleware
// and route groups wired up.
func New(lib *handlers.Library, books Counter, opts Options) chi.Router {
	r := chi.NewRouter()

	// Global middleware, applied to every request.
	r.Use(middleware.Recoverer)
	r.Use(middleware.Logger)
	r.Use(middleware.SecureHeaders)
	r.Use(middleware.Metrics)

	r.Get("/health", healthHandler(books))
	if opts.Metrics {
		r.Handle("/metrics", promhttp.Handler())
	}

	r.Get("/", lib.Home)
	r.Get("/books/{category}", lib.Browse)
	r.Get("/book/{id}", lib.Book)

	r.Group(func(r chi.Router) {
		r.Use(middleware.NewCSRF(opts.SecureCookies))

		r.Get("/add-book", lib.AddBookPage)

		post := http.Handler(http.HandlerFunc(lib.AddBookSubmit))
		if opts.Limiter != nil {
			post = opts.Limiter.Middleware(post)
		}
		r.Method(http.MethodPost, "/add-book", post)
	})

	r.NotFound(lib.NotFound)

	return r
}

// healthHandler returns a JSON health check response with the catalog size.
func healthHandler(books Counter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusOK)
		json.NewEncoder(w).Encode(struct {
			Status string `json:"status"`
			Books  int    `json:"books"`
		}{"ok", books.Len()})
	}
}
