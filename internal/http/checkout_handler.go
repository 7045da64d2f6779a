package http

import (
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/fjod/go_cart/checkout-function/internal/service"
)

type CheckoutHandler struct {
	handler     *service.Handler
	maxBodySize int64
}

func NewCheckoutHandler(handler *service.Handler, maxBodySize int64) *CheckoutHandler {
	return &CheckoutHandler{
		handler:     handler,
		maxBodySize: maxBodySize,
	}
}

// POST /checkout
func (h *CheckoutHandler) CreateSession(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodySize))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			err = fmt.Errorf("body exceeds %d bytes", tooLarge.Limit)
		}
		respond(w, h.handler.Fail(&service.MalformedRequestError{Err: err}))
		return
	}

	// The provider call gets the request context, so a client disconnect or the
	// router timeout abandons it.
	respond(w, h.handler.Checkout(r.Context(), body))
}

// OPTIONS /checkout, OPTIONS /products
func (h *CheckoutHandler) Preflight(w http.ResponseWriter, _ *http.Request) {
	respond(w, h.handler.Preflight())
}
