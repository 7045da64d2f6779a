package payment

import (
	"context"
	"errors"

	"github.com/fjod/go_cart/checkout-function/pkg/circuitbreaker"
)

// BreakingCreator stops calling the provider after repeated transport or
// server-side failures. Rejections (bad params, declined cards) and callers
// that gave up on their own request do not count.
type BreakingCreator struct {
	next    SessionCreator
	breaker *circuitbreaker.Breaker[*Session]
}

func NewBreakingCreator(next SessionCreator, settings circuitbreaker.Settings) *BreakingCreator {
	if settings.Name == "" {
		settings.Name = "payment-provider"
	}
	settings.IsSuccessful = func(err error) bool {
		return err == nil || IsRejected(err) || errors.Is(err, context.Canceled)
	}
	return &BreakingCreator{
		next:    next,
		breaker: circuitbreaker.New[*Session](settings),
	}
}

func (b *BreakingCreator) CreateSession(ctx context.Context, req *SessionRequest) (*Session, error) {
	session, err := b.breaker.Execute(func() (*Session, error) {
		return b.next.CreateSession(ctx, req)
	})
	if err != nil && circuitbreaker.IsOpen(err) {
		return nil, &Error{
			Type:    ErrorTypeUnavailable,
			Message: "payment provider temporarily unavailable, please try again later",
			Err:     err,
		}
	}
	return session, err
}

func (b *BreakingCreator) State() string {
	return b.breaker.State()
}
