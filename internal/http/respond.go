package http

import (
	"log"
	"net/http"

	"github.com/fjod/go_cart/checkout-function/internal/service"
)

func respond(w http.ResponseWriter, resp service.Response) {
	for k, v := range resp.Headers {
		w.Header().Set(k, v)
	}
	w.WriteHeader(resp.StatusCode)
	if resp.Body == "" {
		return
	}
	if _, err := w.Write([]byte(resp.Body)); err != nil {
		log.Printf("failed to write response: %v", err)
	}
}
