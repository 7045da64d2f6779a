package http

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/fjod/go_cart/checkout-function/internal/metrics"
	"github.com/fjod/go_cart/checkout-function/internal/service"
)

type RouterConfig struct {
	RequestTimeout     time.Duration
	MaxRequestBodySize int64
}

func NewRouter(
	h *service.Handler,
	cfg RouterConfig,
	logger *slog.Logger,
	m *metrics.Metrics,
	gatherer prometheus.Gatherer,
) http.Handler {
	checkoutHandler := NewCheckoutHandler(h, cfg.MaxRequestBodySize)
	productHandler := NewProductHandler(h)

	r := chi.NewRouter()

	r.Use(middleware.Recoverer)
	r.Use(RequestIDMiddleware)
	r.Use(AccessLogMiddleware(logger, m))
	if cfg.RequestTimeout > 0 {
		r.Use(middleware.Timeout(cfg.RequestTimeout))
	}

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		respond(w, h.Health())
	})
	if gatherer != nil {
		r.Method(http.MethodGet, "/metrics", metrics.Handler(gatherer))
	}

	r.Get("/products", productHandler.Get)
	r.Options("/products", checkoutHandler.Preflight)
	r.Post("/checkout", checkoutHandler.CreateSession)
	r.Options("/checkout", checkoutHandler.Preflight)

	return r
}
