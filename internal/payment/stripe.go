package payment

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/stripe/stripe-go/v81"
	"github.com/stripe/stripe-go/v81/client"
)

var ErrMissingSecretKey = errors.New("stripe secret key is not configured")

type StripeConfig struct {
	SecretKey string
	// MaxNetworkRetries is handed to stripe-go, which retries transient
	// network failures on its own with idempotency keys.
	MaxNetworkRetries int64
	HTTPClient        *http.Client
	// BaseURL overrides the API endpoint; empty means api.stripe.com.
	BaseURL string
	Logger  *slog.Logger
}

type StripeClient struct {
	api *client.API
}

func NewStripeClient(cfg StripeConfig) (*StripeClient, error) {
	if cfg.SecretKey == "" {
		return nil, ErrMissingSecretKey
	}

	backendCfg := &stripe.BackendConfig{
		MaxNetworkRetries: stripe.Int64(cfg.MaxNetworkRetries),
		EnableTelemetry:   stripe.Bool(false),
	}
	if cfg.HTTPClient != nil {
		backendCfg.HTTPClient = cfg.HTTPClient
	}
	if cfg.BaseURL != "" {
		backendCfg.URL = stripe.String(cfg.BaseURL)
	}
	if cfg.Logger != nil {
		backendCfg.LeveledLogger = &leveledLogger{log: cfg.Logger}
	}

	backend := stripe.GetBackendWithConfig(stripe.APIBackend, backendCfg)
	backends := &stripe.Backends{
		API:     backend,
		Connect: backend,
		Uploads: stripe.GetBackendWithConfig(stripe.UploadsBackend, backendCfg),
	}

	return &StripeClient{api: client.New(cfg.SecretKey, backends)}, nil
}

func (c *StripeClient) CreateSession(ctx context.Context, req *SessionRequest) (*Session, error) {
	params := toCheckoutSessionParams(req)
	params.Context = ctx

	s, err := c.api.CheckoutSessions.New(params)
	if err != nil {
		return nil, convertError(err)
	}
	return &Session{ID: s.ID}, nil
}

func toCheckoutSessionParams(req *SessionRequest) *stripe.CheckoutSessionParams {
	lineItems := make([]*stripe.CheckoutSessionLineItemParams, 0, len(req.LineItems))
	for _, item := range req.LineItems {
		productData := &stripe.CheckoutSessionLineItemPriceDataProductDataParams{
			Name: stripe.String(item.ProductName),
		}
		if item.ProductDescription != "" {
			productData.Description = stripe.String(item.ProductDescription)
		}
		if len(item.ProductImages) > 0 {
			productData.Images = stripe.StringSlice(item.ProductImages)
		}

		lineItems = append(lineItems, &stripe.CheckoutSessionLineItemParams{
			PriceData: &stripe.CheckoutSessionLineItemPriceDataParams{
				Currency:    stripe.String(item.Currency),
				UnitAmount:  stripe.Int64(item.UnitAmount),
				ProductData: productData,
			},
			Quantity: stripe.Int64(item.Quantity),
		})
	}

	return &stripe.CheckoutSessionParams{
		Mode:                     stripe.String(req.Mode),
		PaymentMethodTypes:       stripe.StringSlice(req.PaymentMethodTypes),
		BillingAddressCollection: stripe.String(req.BillingAddressCollection),
		ShippingAddressCollection: &stripe.CheckoutSessionShippingAddressCollectionParams{
			AllowedCountries: stripe.StringSlice(req.AllowedShippingCountries),
		},
		SuccessURL: stripe.String(req.SuccessURL),
		CancelURL:  stripe.String(req.CancelURL),
		LineItems:  lineItems,
	}
}

func convertError(err error) error {
	var stripeErr *stripe.Error
	if !errors.As(err, &stripeErr) {
		return &Error{
			Type:    ErrorTypeUnavailable,
			Message: fmt.Sprintf("payment provider unreachable: %v", err),
			Err:     err,
		}
	}

	msg := stripeErr.Msg
	if msg == "" {
		msg = fmt.Sprintf("payment provider returned status %d", stripeErr.HTTPStatusCode)
	}

	var t ErrorType
	switch stripeErr.Type {
	case stripe.ErrorTypeInvalidRequest:
		t = ErrorTypeInvalidRequest
	case stripe.ErrorTypeCard:
		t = ErrorTypeCard
	default:
		t = ErrorTypeAPI
	}
	switch stripeErr.HTTPStatusCode {
	case http.StatusUnauthorized:
		t = ErrorTypeAuthentication
	case http.StatusTooManyRequests:
		t = ErrorTypeRateLimit
	}

	return &Error{Type: t, Message: msg, Err: err}
}

// leveledLogger routes stripe-go's internal logging (retries, request ids) to slog.
type leveledLogger struct {
	log *slog.Logger
}

func (l *leveledLogger) Debugf(format string, v ...interface{}) {
	l.log.Debug(fmt.Sprintf(format, v...), "component", "stripe")
}

func (l *leveledLogger) Infof(format string, v ...interface{}) {
	l.log.Info(fmt.Sprintf(format, v...), "component", "stripe")
}

func (l *leveledLogger) Warnf(format string, v ...interface{}) {
	l.log.Warn(fmt.Sprintf(format, v...), "component", "stripe")
}

func (l *leveledLogger) Errorf(format string, v ...interface{}) {
	l.log.Error(fmt.Sprintf(format, v...), "component", "stripe")
}
