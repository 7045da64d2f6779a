package service

import (
	"errors"
	"fmt"
)

// ErrorKind identifies which stage of a checkout failed.
type ErrorKind int

const (
	KindUnknown ErrorKind = iota
	KindMalformedRequest
	KindProductNotFound
	KindProvider
)

func (k ErrorKind) String() string {
	switch k {
	case KindMalformedRequest:
		return "malformed_request"
	case KindProductNotFound:
		return "product_not_found"
	case KindProvider:
		return "provider_error"
	default:
		return "unknown"
	}
}

// MalformedRequestError means the body could not be read as a cart.
type MalformedRequestError struct {
	Err error
}

func (e *MalformedRequestError) Error() string {
	return fmt.Sprintf("invalid request body: %v", e.Err)
}

func (e *MalformedRequestError) Unwrap() error   { return e.Err }
func (e *MalformedRequestError) Kind() ErrorKind { return KindMalformedRequest }

// ProductNotFoundError means the cart referenced a sku missing from the catalog.
type ProductNotFoundError struct {
	SKU string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("product not found: %s", e.SKU)
}

func (e *ProductNotFoundError) Kind() ErrorKind { return KindProductNotFound }

// ProviderError wraps a failed session creation. Message is the provider's
// human-readable explanation.
type ProviderError struct {
	Message string
	Err     error
}

func (e *ProviderError) Error() string   { return e.Message }
func (e *ProviderError) Unwrap() error   { return e.Err }
func (e *ProviderError) Kind() ErrorKind { return KindProvider }

// KindOf returns the kind of the first checkout error in err's chain.
func KindOf(err error) ErrorKind {
	var k interface{ Kind() ErrorKind }
	if errors.As(err, &k) {
		return k.Kind()
	}
	return KindUnknown
}
