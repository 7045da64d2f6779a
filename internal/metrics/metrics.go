package metrics

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Outcome labels for the checkout counter.
const (
	OutcomeSuccess          = "success"
	OutcomeMalformedRequest = "malformed_request"
	OutcomeProductNotFound  = "product_not_found"
	OutcomeProviderError    = "provider_error"
)

// Metrics is safe to use as a nil pointer; every method is then a no-op.
type Metrics struct {
	Requests        *prometheus.CounterVec
	Checkouts       *prometheus.CounterVec
	ProviderLatency *prometheus.HistogramVec
	LineItems       prometheus.Histogram
}

func New(reg prometheus.Registerer, service string) *Metrics {
	requests := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: service,
		Name:      "http_requests_total",
		Help:      "Total number of HTTP requests.",
	}, []string{"handler", "status"})
	checkouts := prometheus.NewCounterVec(prometheus.CounterOpts{
		Namespace: "storefront",
		Subsystem: service,
		Name:      "checkouts_total",
		Help:      "Checkout attempts by outcome.",
	}, []string{"outcome"})
	latency := prometheus.NewHistogramVec(prometheus.HistogramOpts{
		Namespace: "storefront",
		Subsystem: service,
		Name:      "provider_request_duration_ms",
		Help:      "Payment provider session creation latency in milliseconds.",
		Buckets:   []float64{25, 50, 100, 250, 500, 1000, 2500, 5000, 10000},
	}, []string{"result"})
	lineItems := prometheus.NewHistogram(prometheus.HistogramOpts{
		Namespace: "storefront",
		Subsystem: service,
		Name:      "checkout_line_items",
		Help:      "Number of line items sent per checkout session, shipping included.",
		Buckets:   prometheus.LinearBuckets(1, 2, 8),
	})

	reg.MustRegister(requests, checkouts, latency, lineItems)
	return &Metrics{
		Requests:        requests,
		Checkouts:       checkouts,
		ProviderLatency: latency,
		LineItems:       lineItems,
	}
}

func (m *Metrics) ObserveRequest(handler string, status int) {
	if m == nil {
		return
	}
	m.Requests.WithLabelValues(handler, strconv.Itoa(status)).Inc()
}

func (m *Metrics) ObserveCheckout(outcome string) {
	if m == nil {
		return
	}
	m.Checkouts.WithLabelValues(outcome).Inc()
}

func (m *Metrics) ObserveProvider(d time.Duration, err error) {
	if m == nil {
		return
	}
	result := "ok"
	if err != nil {
		result = "error"
	}
	m.ProviderLatency.WithLabelValues(result).Observe(float64(d.Milliseconds()))
}

func (m *Metrics) ObserveLineItems(n int) {
	if m == nil {
		return
	}
	m.LineItems.Observe(float64(n))
}

func Handler(g prometheus.Gatherer) http.Handler {
	return promhttp.HandlerFor(g, promhttp.HandlerOpts{})
}
