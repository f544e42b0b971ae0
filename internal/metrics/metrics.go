// Package metrics declares the Prometheus collectors exported on /metrics.
package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// HTTPRequests counts served requests by method, route pattern and status.
	HTTPRequests = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "onlinelibrary",
		Subsystem: "http",
		Name:      "requests_total",
		Help:      "HTTP requests served, by method, route and status code.",
	}, []string{"method", "route", "status"})

	// HTTPDuration observes request latency by method and route pattern.
	HTTPDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "onlinelibrary",
		Subsystem: "http",
		Name:      "request_duration_seconds",
		Help:      "HTTP request latency in seconds.",
		Buckets:   prometheus.DefBuckets,
	}, []string{"method", "route"})

	// Panics counts handler panics caught by the recovery middleware.
	Panics = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "onlinelibrary",
		Subsystem: "http",
		Name:      "panics_total",
		Help:      "Handler panics recovered.",
	})

	// CatalogBooks reports the number of records in the catalog.
	CatalogBooks = promauto.NewGauge(prometheus.GaugeOpts{
		Namespace: "onlinelibrary",
		Subsystem: "catalog",
		Name:      "books",
		Help:      "Records currently in the catalog.",
	})

	// BooksAdded counts records created through the add-book form.
	BooksAdded = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "onlinelibrary",
		Subsystem: "catalog",
		Name:      "books_added_total",
		Help:      "Records added through the add-book form.",
	})

	// ValidationFailures counts rejected add-book submissions per field.
	ValidationFailures = promauto.NewCounterVec(prometheus.CounterOpts{
		Namespace: "onlinelibrary",
		Subsystem: "catalog",
		Name:      "validation_failures_total",
		Help:      "Add-book form fields that failed validation.",
	}, []string{"field"})

	// RedirectedCategories counts browse requests for unknown category slugs.
	RedirectedCategories = promauto.NewCounter(prometheus.CounterOpts{
		Namespace: "onlinelibrary",
		Subsystem: "catalog",
		Name:      "unknown_category_redirects_total",
		Help:      "Browse requests redirected because the category slug matched no record.",
	})
)
