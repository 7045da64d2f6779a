package app

import (
	"fmt"
	"log/slog"

	"github.com/fjod/go_cart/checkout-function/internal/catalog"
	"github.com/fjod/go_cart/checkout-function/internal/config"
	"github.com/fjod/go_cart/checkout-function/internal/metrics"
	"github.com/fjod/go_cart/checkout-function/internal/payment"
	"github.com/fjod/go_cart/checkout-function/internal/service"
	"github.com/fjod/go_cart/checkout-function/pkg/circuitbreaker"
)

// NewHandler wires catalog, payment provider and checkout service from cfg.
// m may be nil.
func NewHandler(cfg *config.Config, logger *slog.Logger, m *metrics.Metrics) (*service.Handler, error) {
	products, err := catalog.Load(cfg.CatalogPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load catalog: %w", err)
	}
	logger.Info("catalog loaded", "products", products.Len(), "path", cfg.CatalogPath)

	stripeClient, err := payment.NewStripeClient(payment.StripeConfig{
		SecretKey:         cfg.StripeSecretKey,
		MaxNetworkRetries: cfg.StripeMaxNetworkRetries,
		Logger:            logger,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create payment client: %w", err)
	}

	provider := payment.NewBreakingCreator(stripeClient, circuitbreaker.Settings{
		Name:                "stripe",
		ConsecutiveFailures: cfg.BreakerFailures,
		Timeout:             cfg.BreakerTimeout,
		OnStateChange: func(name, from, to string) {
			logger.Warn("circuit breaker state changed", "breaker", name, "from", from, "to", to)
		},
	})

	checkoutCfg := service.DefaultCheckoutConfig()
	checkoutCfg.SuccessURL = cfg.SuccessURL
	checkoutCfg.CancelURL = cfg.CancelURL
	checkoutCfg.ShippingCountries = cfg.ShippingCountries
	checkoutCfg.ProviderTimeout = cfg.ProviderTimeout

	if cfg.PermissiveCORS() {
		logger.Warn("ALLOWED_ORIGIN is \"*\": any site can create checkout sessions; restrict it in production")
	}

	svc := service.NewCheckoutService(products, provider, checkoutCfg, logger, m)
	return service.NewHandler(svc, products, cfg.AllowedOrigin, logger), nil
}
