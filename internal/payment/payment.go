package payment

import (
	"context"
	"errors"

	"github.com/fjod/go_cart/checkout-function/internal/domain"
)

const (
	ModePayment              = "payment"
	PaymentMethodCard        = "card"
	BillingAddressCollection = "auto"
)

// SessionRequest is everything the provider needs to open a hosted checkout page.
type SessionRequest struct {
	Mode                     string
	PaymentMethodTypes       []string
	BillingAddressCollection string
	AllowedShippingCountries []string
	SuccessURL               string
	CancelURL                string
	LineItems                []domain.LineItem
}

type Session struct {
	ID string
}

type SessionCreator interface {
	CreateSession(ctx context.Context, req *SessionRequest) (*Session, error)
}

// ErrorType classifies provider failures.
type ErrorType string

const (
	ErrorTypeInvalidRequest ErrorType = "invalid_request"
	ErrorTypeCard           ErrorType = "card"
	ErrorTypeAuthentication ErrorType = "authentication"
	ErrorTypeRateLimit      ErrorType = "rate_limit"
	ErrorTypeAPI            ErrorType = "api"
	ErrorTypeUnavailable    ErrorType = "unavailable"
)

// Error is returned by SessionCreator implementations. Message is safe to show
// to the shopper.
type Error struct {
	Type    ErrorType
	Message string
	Err     error
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Rejected reports whether the provider answered and refused the request, as
// opposed to being unreachable or failing internally.
func (e *Error) Rejected() bool {
	switch e.Type {
	case ErrorTypeInvalidRequest, ErrorTypeCard:
		return true
	}
	return false
}

// IsRejected reports whether err is an *Error the provider returned deliberately.
func IsRejected(err error) bool {
	var perr *Error
	return errors.As(err, &perr) && perr.Rejected()
}
