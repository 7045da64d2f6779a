package service

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"

	"github.com/fjod/go_cart/checkout-function/internal/domain"
	"github.com/fjod/go_cart/checkout-function/internal/payment"
)

const (
	HeaderAllowOrigin  = "Access-Control-Allow-Origin"
	HeaderAllowMethods = "Access-Control-Allow-Methods"
	HeaderAllowHeaders = "Access-Control-Allow-Headers"
	HeaderContentType  = "Content-Type"

	// PermissiveOrigin lets any site call the API. Restrict it in production.
	PermissiveOrigin = "*"
)

// Response is a transport-neutral reply, shaped like an API Gateway proxy response.
type Response struct {
	StatusCode int
	Headers    map[string]string
	Body       string
}

type SessionCreator interface {
	CreateSession(ctx context.Context, body []byte) (*payment.Session, error)
}

type ProductLister interface {
	Products() []domain.Product
}

type CheckoutResponseDTO struct {
	SessionID string `json:"sessionId"`
}

type HealthDTO struct {
	Status string `json:"status"`
}

type ProductDTO struct {
	SKU         string `json:"sku"`
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
	Price       int64  `json:"price"`
	Currency    string `json:"currency"`
	Image       string `json:"image,omitempty"`
	Attribution string `json:"attribution,omitempty"`
}

type ProductsResponseDTO struct {
	Products []ProductDTO `json:"products"`
}

type Handler struct {
	checkout      SessionCreator
	products      ProductLister
	allowedOrigin string
	logger        *slog.Logger
}

func NewHandler(checkout SessionCreator, products ProductLister, allowedOrigin string, logger *slog.Logger) *Handler {
	if allowedOrigin == "" {
		allowedOrigin = PermissiveOrigin
	}
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{
		checkout:      checkout,
		products:      products,
		allowedOrigin: allowedOrigin,
		logger:        logger,
	}
}

// Checkout answers 200 {"sessionId": ...} or 400 "[Error]: <message>".
func (h *Handler) Checkout(ctx context.Context, body []byte) Response {
	session, err := h.checkout.CreateSession(ctx, body)
	if err != nil {
		return h.Fail(err)
	}
	return h.json(http.StatusOK, CheckoutResponseDTO{SessionID: session.ID})
}

// Fail renders any checkout error the same way: 400 with the error text.
func (h *Handler) Fail(err error) Response {
	return Response{
		StatusCode: http.StatusBadRequest,
		Headers: map[string]string{
			HeaderAllowOrigin: h.allowedOrigin,
			HeaderContentType: "text/plain; charset=utf-8",
		},
		Body: "[Error]: " + err.Error(),
	}
}

func (h *Handler) Products() Response {
	products := h.products.Products()
	dto := make([]ProductDTO, len(products))
	for i, p := range products {
		dto[i] = ProductDTO{
			SKU:         p.SKU,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Currency:    p.Currency,
			Image:       p.Image,
			Attribution: p.Attribution,
		}
	}
	return h.json(http.StatusOK, ProductsResponseDTO{Products: dto})
}

func (h *Handler) Health() Response {
	return h.json(http.StatusOK, HealthDTO{Status: "ok"})
}

// Preflight answers CORS OPTIONS requests.
func (h *Handler) Preflight() Response {
	return Response{
		StatusCode: http.StatusNoContent,
		Headers: map[string]string{
			HeaderAllowOrigin:  h.allowedOrigin,
			HeaderAllowMethods: "GET, POST, OPTIONS",
			HeaderAllowHeaders: "Content-Type",
		},
	}
}

func (h *Handler) MethodNotAllowed() Response {
	return Response{
		StatusCode: http.StatusMethodNotAllowed,
		Headers: map[string]string{
			HeaderAllowOrigin: h.allowedOrigin,
			"Allow":           "GET, POST, OPTIONS",
		},
		Body: "[Error]: method not allowed",
	}
}

func (h *Handler) json(status int, v any) Response {
	data, err := json.Marshal(v)
	if err != nil {
		h.logger.Error("failed to encode response", "error", err)
		return Response{
			StatusCode: http.StatusInternalServerError,
			Headers:    map[string]string{HeaderAllowOrigin: h.allowedOrigin},
			Body:       "[Error]: internal error",
		}
	}
	return Response{
		StatusCode: status,
		Headers: map[string]string{
			HeaderAllowOrigin: h.allowedOrigin,
			HeaderContentType: "application/json",
		},
		Body: string(data),
	}
}
