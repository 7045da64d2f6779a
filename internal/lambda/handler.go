package lambda

import (
	"context"
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/http"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/propagation"

	"github.com/fjod/go_cart/checkout-function/internal/service"
)

// Handler serves API Gateway proxy events: POST creates a checkout session,
// GET lists products, OPTIONS answers CORS preflight.
type Handler struct {
	handler *service.Handler
	logger  *slog.Logger
}

func NewHandler(handler *service.Handler, logger *slog.Logger) *Handler {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Handler{handler: handler, logger: logger}
}

// Handle never returns an error: failures are rendered as 400 responses so
// API Gateway passes them through to the storefront.
func (h *Handler) Handle(ctx context.Context, req events.APIGatewayProxyRequest) (events.APIGatewayProxyResponse, error) {
	ctx = otel.GetTextMapPropagator().Extract(ctx, requestHeaders(req))

	logger := h.logger
	if lc, ok := lambdacontext.FromContext(ctx); ok {
		logger = logger.With("aws_request_id", lc.AwsRequestID)
	}

	var resp service.Response
	switch req.HTTPMethod {
	case http.MethodOptions:
		resp = h.handler.Preflight()
	case http.MethodGet:
		resp = h.handler.Products()
	case http.MethodPost:
		body, err := decodeBody(req)
		if err != nil {
			resp = h.handler.Fail(&service.MalformedRequestError{Err: err})
			break
		}
		resp = h.handler.Checkout(ctx, body)
	default:
		resp = h.handler.MethodNotAllowed()
	}

	logger.InfoContext(ctx, "api gateway request",
		"method", req.HTTPMethod,
		"path", req.Path,
		"status", resp.StatusCode,
	)

	return events.APIGatewayProxyResponse{
		StatusCode: resp.StatusCode,
		Headers:    resp.Headers,
		Body:       resp.Body,
	}, nil
}

func decodeBody(req events.APIGatewayProxyRequest) ([]byte, error) {
	if !req.IsBase64Encoded {
		return []byte(req.Body), nil
	}
	body, err := base64.StdEncoding.DecodeString(req.Body)
	if err != nil {
		return nil, fmt.Errorf("body is not valid base64: %w", err)
	}
	return body, nil
}

// requestHeaders canonicalizes API Gateway's header maps so propagators find
// traceparent whatever case the client used.
func requestHeaders(req events.APIGatewayProxyRequest) propagation.HeaderCarrier {
	header := make(http.Header, len(req.Headers)+len(req.MultiValueHeaders))
	for k, vs := range req.MultiValueHeaders {
		for _, v := range vs {
			header.Add(k, v)
		}
	}
	for k, v := range req.Headers {
		if header.Get(k) == "" {
			header.Set(k, v)
		}
	}
	return propagation.HeaderCarrier(header)
}
