package http

import (
	"net/http"
	"strings"

	"github.com/shortlyhq/shortly/internal/config"
	"github.com/shortlyhq/shortly/internal/infrastructure/auth"
	"github.com/shortlyhq/shortly/internal/infrastructure/telemetry"
	"github.com/shortlyhq/shortly/internal/processing/billing"
	"github.com/shortlyhq/shortly/internal/processing/shortener"
	"github.com/shortlyhq/shortly/internal/processing/users"
	"github.com/shortlyhq/shortly/internal/transport/http/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

var spanNames = map[string]string{
	"GET /health":              "health",
	"GET /metrics":             "metrics",
	"POST /api/users/register": "users.register",
	"POST /api/users/login":    "users.login",
	"POST /api/links":          "links.create",
	"GET /api/links/quota":     "links.quota",
	"GET /api/packages":        "packages.list",
	"POST /api/packages":       "packages.create",
	"PATCH /api/packages/{id}": "packages.update",
	"GET /{token}":             "links.redirect",
}

type RouterOptions struct {
	EnableCORS    bool
	EnableLogging bool
	EnableMetrics bool
}

func DefaultRouterOptions() RouterOptions {
	return RouterOptions{
		EnableCORS:    true,
		EnableLogging: true,
		EnableMetrics: true,
	}
}

type RouterDeps struct {
	Shortener *shortener.Service
	Users     *users.Service
	Billing   *billing.Service
	Tokens    auth.TokenService
	Clicks    ClickPublisher
}

func NewRouter(cfg *config.Config, deps RouterDeps) http.Handler {
	return NewRouterWithOptions(cfg, deps, DefaultRouterOptions())
}

func NewRouterWithOptions(cfg *config.Config, deps RouterDeps, opts RouterOptions) http.Handler {
	mux := http.NewServeMux()

	healthHandler := NewHealthHandler()
	linksHandler := NewLinksHandler(cfg, deps.Shortener, deps.Clicks)
	usersHandler := NewUsersHandler(deps.Users)
	packagesHandler := NewPackagesHandler(deps.Billing)

	mux.HandleFunc("GET /health", healthHandler.Health)
	mux.Handle("GET /metrics", healthHandler.Metrics())

	mux.HandleFunc("POST /api/users/register", usersHandler.Register)
	mux.HandleFunc("POST /api/users/login", usersHandler.Login)

	authMiddlewares := []func(http.Handler) http.Handler{
		middleware.JWTAuth(deps.Tokens),
	}

	mux.Handle("POST /api/links", middleware.Chain(
		http.HandlerFunc(linksHandler.Create),
		authMiddlewares...,
	))
	mux.Handle("GET /api/links/quota", middleware.Chain(
		http.HandlerFunc(linksHandler.Quota),
		authMiddlewares...,
	))

	mux.Handle("GET /api/packages", middleware.Chain(
		http.HandlerFunc(packagesHandler.List),
		authMiddlewares...,
	))
	mux.Handle("POST /api/packages", middleware.Chain(
		http.HandlerFunc(packagesHandler.Create),
		authMiddlewares...,
	))
	mux.Handle("PATCH /api/packages/{id}", middleware.Chain(
		http.HandlerFunc(packagesHandler.Update),
		authMiddlewares...,
	))

	mux.HandleFunc("GET /{token}", linksHandler.Redirect)

	var innerHandler http.Handler = mux
	if opts.EnableCORS {
		innerHandler = middleware.CORSMiddleware(innerHandler)
	}
	if opts.EnableLogging {
		innerHandler = middleware.LoggingMiddleware(innerHandler)
	}
	if opts.EnableMetrics {
		innerHandler = middleware.MetricsMiddleware(innerHandler)
	}

	otelOptions := []otelhttp.Option{
		otelhttp.WithSpanNameFormatter(func(operation string, r *http.Request) string {
			key := r.Method + " " + r.Pattern
			if name, ok := spanNames[key]; ok {
				return name
			}
			if r.Pattern != "" {
				return r.Pattern
			}
			path := strings.TrimSpace(r.URL.Path)
			if path == "" {
				path = "/"
			}
			return path
		}),
	}

	if telemetry.TracerProvider != nil {
		otelOptions = append(otelOptions, otelhttp.WithTracerProvider(telemetry.TracerProvider))
	}

	return otelhttp.NewHandler(innerHandler, cfg.App.Name, otelOptions...)
}
