package domain

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
)

var (
	ErrInvalidJSON      = errors.New("body is not valid JSON")
	ErrCartNotObject    = errors.New("cart must be a JSON object keyed by sku")
	ErrInvalidQuantity  = errors.New("quantity must be a positive integer")
	ErrDuplicateCartSKU = errors.New("duplicate sku in cart")
)

type CartEntry struct {
	SKU      string
	Quantity int64
}

// Cart keeps entries in the order their keys appeared in the request body.
type Cart []CartEntry

// quantityField is the only per-sku key read. The storefront cart library sends
// the whole product alongside it; the rest is ignored. Keys match exactly.
const quantityField = "quantity"

// ParseCart decodes a body shaped as {"<sku>": {"quantity": n}, ...}.
func ParseCart(data []byte) (Cart, error) {
	if !json.Valid(data) {
		return nil, ErrInvalidJSON
	}

	dec := json.NewDecoder(bytes.NewReader(data))

	tok, err := dec.Token()
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	if delim, ok := tok.(json.Delim); !ok || delim != '{' {
		return nil, ErrCartNotObject
	}

	cart := Cart{}
	seen := make(map[string]struct{})
	for dec.More() {
		tok, err := dec.Token()
		if err != nil {
			return nil, fmt.Errorf("read cart key: %w", err)
		}
		sku, ok := tok.(string)
		if !ok {
			return nil, ErrCartNotObject
		}
		if _, dup := seen[sku]; dup {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateCartSKU, sku)
		}
		seen[sku] = struct{}{}

		var entry map[string]json.RawMessage
		if err := dec.Decode(&entry); err != nil {
			return nil, fmt.Errorf("cart entry %s: %w", sku, err)
		}
		qty, err := parseQuantity(entry[quantityField])
		if err != nil {
			return nil, fmt.Errorf("cart entry %s: %w", sku, err)
		}
		cart = append(cart, CartEntry{SKU: sku, Quantity: qty})
	}

	return cart, nil
}

// parseQuantity accepts only a bare JSON integer literal; quoted numbers,
// fractions and exponents are rejected.
func parseQuantity(raw json.RawMessage) (int64, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || (raw[0] != '-' && (raw[0] < '0' || raw[0] > '9')) {
		return 0, ErrInvalidQuantity
	}
	qty, err := strconv.ParseInt(string(raw), 10, 64)
	if err != nil || qty <= 0 {
		return 0, ErrInvalidQuantity
	}
	return qty, nil
}
