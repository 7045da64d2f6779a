package http

import (
	"net/http"

	"github.com/fjod/go_cart/checkout-function/internal/service"
)

type ProductHandler struct {
	handler *service.Handler
}

func NewProductHandler(handler *service.Handler) *ProductHandler {
	return &ProductHandler{handler: handler}
}

// GET /products
func (h *ProductHandler) Get(w http.ResponseWriter, _ *http.Request) {
	respond(w, h.handler.Products())
}
