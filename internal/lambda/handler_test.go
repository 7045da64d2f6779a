package lambda

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"log/slog"
	"net/http"
	"strings"
	"testing"

	"github.com/aws/aws-lambda-go/events"
	"github.com/aws/aws-lambda-go/lambdacontext"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel"

	"github.com/fjod/go_cart/checkout-function/internal/app"
	"github.com/fjod/go_cart/checkout-function/internal/catalog"
	"github.com/fjod/go_cart/checkout-function/internal/payment"
	"github.com/fjod/go_cart/checkout-function/internal/service"
	"github.com/fjod/go_cart/checkout-function/pkg/logger"
)

type providerMock struct {
	calls int
}

func (p *providerMock) CreateSession(context.Context, *payment.SessionRequest) (*payment.Session, error) {
	p.calls++
	return &payment.Session{ID: "cs_test_lambda"}, nil
}

func setup() (*Handler, *providerMock) {
	provider := &providerMock{}
	svc := service.NewCheckoutService(catalog.Default(), provider, service.DefaultCheckoutConfig(), nil, nil)
	return NewHandler(service.NewHandler(svc, catalog.Default(), "", nil), nil), provider
}

func TestHandle_Checkout(t *testing.T) {
	h, provider := setup()

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodPost,
		Path:       "/checkout",
		Body:       `{"sku_GBJ2Ep8246qeeT":{"quantity":2}}`,
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
	assert.JSONEq(t, `{"sessionId":"cs_test_lambda"}`, resp.Body)
	assert.Equal(t, 1, provider.calls)
}

func TestHandle_Base64Body(t *testing.T) {
	h, provider := setup()

	lc := &lambdacontext.LambdaContext{AwsRequestID: "aws-req-1"}
	ctx := lambdacontext.NewContext(context.Background(), lc)

	resp, err := h.Handle(ctx, events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Body:            base64.StdEncoding.EncodeToString([]byte(`{"sku_GBJ2WWfMaGNC2Z":{"quantity":1}}`)),
		IsBase64Encoded: true,
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, 1, provider.calls)
}

func TestHandle_InvalidBase64(t *testing.T) {
	h, provider := setup()

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod:      http.MethodPost,
		Body:            "%%%",
		IsBase64Encoded: true,
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.True(t, strings.HasPrefix(resp.Body, "[Error]: invalid request body: body is not valid base64"))
	assert.Zero(t, provider.calls)
}

func TestHandle_Failures(t *testing.T) {
	tests := []struct {
		name string
		body string
		want string
	}{
		{"unknown sku", `{"Z":{"quantity":1}}`, "[Error]: product not found: Z"},
		{"malformed", `not json`, "[Error]: invalid request body: body is not valid JSON"},
		{"bad quantity", `{"sku_GBJ2WWfMaGNC2Z":{"quantity":-1}}`, "[Error]: invalid request body: cart entry sku_GBJ2WWfMaGNC2Z: quantity must be a positive integer"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h, provider := setup()

			resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
				HTTPMethod: http.MethodPost,
				Body:       tt.body,
			})

			require.NoError(t, err)
			assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
			assert.Equal(t, tt.want, resp.Body)
			assert.Equal(t, "*", resp.Headers["Access-Control-Allow-Origin"])
			assert.Zero(t, provider.calls)
		})
	}
}

func TestHandle_Products(t *testing.T) {
	h, _ := setup()

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodGet, Path: "/products"})

	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body service.ProductsResponseDTO
	require.NoError(t, json.Unmarshal([]byte(resp.Body), &body))
	assert.Len(t, body.Products, 2)
}

func TestHandle_PreflightAndUnsupported(t *testing.T) {
	h, _ := setup()

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodOptions})
	require.NoError(t, err)
	assert.Equal(t, http.StatusNoContent, resp.StatusCode)

	resp, err = h.Handle(context.Background(), events.APIGatewayProxyRequest{HTTPMethod: http.MethodDelete})
	require.NoError(t, err)
	assert.Equal(t, http.StatusMethodNotAllowed, resp.StatusCode)
}

func TestHandle_TraceparentReachesLogs(t *testing.T) {
	prev := otel.GetTextMapPropagator()
	t.Cleanup(func() { otel.SetTextMapPropagator(prev) })
	app.SetupTracing()

	var logs bytes.Buffer
	logg := logger.New(&logs, "checkout-lambda", slog.LevelInfo)
	provider := &providerMock{}
	svc := service.NewCheckoutService(catalog.Default(), provider, service.DefaultCheckoutConfig(), logg, nil)
	h := NewHandler(service.NewHandler(svc, catalog.Default(), "", logg), logg)

	resp, err := h.Handle(context.Background(), events.APIGatewayProxyRequest{
		HTTPMethod: http.MethodGet,
		Path:       "/products",
		Headers:    map[string]string{"Traceparent": "00-4bf92f3577b34da6a3ce929d0e0e4736-00f067aa0ba902b7-01"},
	})

	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, logs.String(), `"trace_id":"4bf92f3577b34da6a3ce929d0e0e4736"`)
}

func TestRequestHeaders_CanonicalizesKeys(t *testing.T) {
	carrier := requestHeaders(events.APIGatewayProxyRequest{
		Headers:           map[string]string{"traceparent": "tp-single"},
		MultiValueHeaders: map[string][]string{"baggage": {"k=v"}},
	})

	assert.Equal(t, "tp-single", carrier.Get("Traceparent"))
	assert.Equal(t, "k=v", carrier.Get("baggage"))
}
