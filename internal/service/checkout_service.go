package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/fjod/go_cart/checkout-function/internal/domain"
	"github.com/fjod/go_cart/checkout-function/internal/metrics"
	"github.com/fjod/go_cart/checkout-function/internal/payment"
)

const tracerName = "github.com/fjod/go_cart/checkout-function/internal/service"

// ShippingFee is the flat handling charge added to every session.
func ShippingFee() domain.LineItem {
	return domain.LineItem{
		Currency:           "USD",
		UnitAmount:         350,
		ProductName:        "Shipping fee",
		ProductDescription: "Handling and shipping fee for global delivery",
		Quantity:           1,
	}
}

type CheckoutConfig struct {
	SuccessURL        string
	CancelURL         string
	ShippingCountries []string
	Shipping          domain.LineItem
	// ProviderTimeout bounds the session creation call. Zero means no extra bound.
	ProviderTimeout time.Duration
}

func DefaultCheckoutConfig() CheckoutConfig {
	return CheckoutConfig{
		SuccessURL:        "http://localhost:3000/success",
		CancelURL:         "http://localhost:3000",
		ShippingCountries: []string{"US", "CA"},
		Shipping:          ShippingFee(),
		ProviderTimeout:   10 * time.Second,
	}
}

type CheckoutService struct {
	catalog  ProductLookup
	provider payment.SessionCreator
	cfg      CheckoutConfig
	logger   *slog.Logger
	metrics  *metrics.Metrics
}

func NewCheckoutService(
	catalog ProductLookup,
	provider payment.SessionCreator,
	cfg CheckoutConfig,
	logger *slog.Logger,
	m *metrics.Metrics,
) *CheckoutService {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &CheckoutService{
		catalog:  catalog,
		provider: provider,
		cfg:      cfg,
		logger:   logger,
		metrics:  m,
	}
}

// CreateSession turns a raw cart body into a provider checkout session.
// Every failure is one of *MalformedRequestError, *ProductNotFoundError or
// *ProviderError. Identical bodies create distinct sessions.
func (s *CheckoutService) CreateSession(ctx context.Context, body []byte) (*payment.Session, error) {
	session, err := s.createSession(ctx, body)
	if err != nil {
		s.metrics.ObserveCheckout(KindOf(err).String())
		s.logger.WarnContext(ctx, "checkout failed", "kind", KindOf(err).String(), "error", err)
		return nil, err
	}
	s.metrics.ObserveCheckout(metrics.OutcomeSuccess)
	return session, nil
}

func (s *CheckoutService) createSession(ctx context.Context, body []byte) (*payment.Session, error) {
	cart, err := domain.ParseCart(body)
	if err != nil {
		return nil, &MalformedRequestError{Err: err}
	}

	lineItems, err := BuildLineItems(s.catalog, cart)
	if err != nil {
		return nil, err
	}
	lineItems = append(lineItems, s.cfg.Shipping)

	req := &payment.SessionRequest{
		Mode:                     payment.ModePayment,
		PaymentMethodTypes:       []string{payment.PaymentMethodCard},
		BillingAddressCollection: payment.BillingAddressCollection,
		AllowedShippingCountries: s.cfg.ShippingCountries,
		SuccessURL:               s.cfg.SuccessURL,
		CancelURL:                s.cfg.CancelURL,
		LineItems:                lineItems,
	}

	s.metrics.ObserveLineItems(len(lineItems))
	s.logger.DebugContext(ctx, "creating checkout session",
		"cart_entries", len(cart),
		"line_items", len(lineItems),
		"amount", totalAmount(lineItems))

	return s.callProvider(ctx, req)
}

func (s *CheckoutService) callProvider(ctx context.Context, req *payment.SessionRequest) (*payment.Session, error) {
	ctx, span := otel.Tracer(tracerName).Start(ctx, "payment.CreateSession")
	defer span.End()
	span.SetAttributes(attribute.Int("checkout.line_items", len(req.LineItems)))

	if s.cfg.ProviderTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.cfg.ProviderTimeout)
		defer cancel()
	}

	start := time.Now()
	session, err := s.provider.CreateSession(ctx, req)
	s.metrics.ObserveProvider(time.Since(start), err)

	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, "session creation failed")
		return nil, toProviderError(err)
	}
	if session == nil || session.ID == "" {
		err := errors.New("payment provider returned no session id")
		span.SetStatus(codes.Error, err.Error())
		return nil, &ProviderError{Message: err.Error(), Err: err}
	}

	span.SetAttributes(attribute.String("checkout.session_id", session.ID))
	return session, nil
}

func toProviderError(err error) *ProviderError {
	if errors.Is(err, context.DeadlineExceeded) {
		return &ProviderError{Message: "payment provider timed out", Err: err}
	}
	if errors.Is(err, context.Canceled) {
		return &ProviderError{Message: "checkout request was canceled", Err: err}
	}
	var perr *payment.Error
	if errors.As(err, &perr) {
		return &ProviderError{Message: perr.Message, Err: err}
	}
	return &ProviderError{Message: fmt.Sprintf("payment provider error: %v", err), Err: err}
}

// totalAmount sums subtotals per currency; used for logging only.
func totalAmount(items []domain.LineItem) map[string]int64 {
	totals := make(map[string]int64)
	for _, item := range items {
		totals[item.Currency] += item.Subtotal()
	}
	return totals
}
