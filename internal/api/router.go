// xbrld - XBRL Instance Validation Service
// Copyright 2026 M. Verhaert
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/mverhaert/xbrld

package api

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/httprate"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/mverhaert/xbrld/internal/middleware"
)

// RouterConfig holds the tunables for the HTTP surface.
type RouterConfig struct {
	MaxBodyBytes      int64
	RateLimitRequests int
	RateLimitWindow   time.Duration
	RateLimitDisabled bool
	CORSOrigins       []string
}

// Router wires the handlers into a Chi routing tree.
type Router struct {
	handler *Handler
	config  RouterConfig
}

// NewRouter creates a Router for the given validation handler.
func NewRouter(handler *Handler, config RouterConfig) *Router {
	return &Router{handler: handler, config: config}
}

// chiMiddleware adapts http.HandlerFunc middleware to Chi's
// func(http.Handler) http.Handler so it can be used with r.Use().
func chiMiddleware(mw func(http.HandlerFunc) http.HandlerFunc) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return mw(next.ServeHTTP)
	}
}

// Setup configures all HTTP routes.
func (router *Router) Setup() http.Handler {
	r := chi.NewRouter()

	// Global middleware, applied to all routes in order.
	r.Use(chiMiddleware(middleware.RequestID)) // X-Request-ID plus logging context
	r.Use(chimiddleware.RealIP)                // real IP from X-Forwarded-For
	r.Use(chimiddleware.Recoverer)             // recover from panics

	// CORS is global so OPTIONS preflight is handled before routing.
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: router.config.CORSOrigins,
		AllowedMethods: []string{"POST", "OPTIONS"},
		AllowedHeaders: []string{"Content-Type", "X-Request-ID"},
		MaxAge:         86400,
	}))

	r.Route("/validate", func(r chi.Router) {
		r.Use(router.rateLimit())
		r.Use(chiMiddleware(middleware.RequestLogging))
		r.Use(chiMiddleware(middleware.PrometheusMetrics))
		r.Use(chiMiddleware(middleware.Compression))
		r.Post("/", router.handler.Validate)
	})

	// Prometheus scrape endpoint; not rate limited.
	r.Get("/metrics", promhttp.Handler().ServeHTTP)

	return r
}

// rateLimit returns an IP-keyed rate limiter, or a no-op middleware when
// rate limiting is disabled.
func (router *Router) rateLimit() func(http.Handler) http.Handler {
	if router.config.RateLimitDisabled {
		return func(next http.Handler) http.Handler {
			return next
		}
	}

	return httprate.Limit(
		router.config.RateLimitRequests,
		router.config.RateLimitWindow,
		httprate.WithKeyFuncs(httprate.KeyByIP),
	)
}
