package service

import (
	"context"
	"fmt"
	"sync"

	"github.com/fjod/go_cart/checkout-function/internal/domain"
	"github.com/fjod/go_cart/checkout-function/internal/payment"
)

// MockProvider implements payment.SessionCreator and records every request.
type MockProvider struct {
	mu       sync.Mutex
	Requests []*payment.SessionRequest
	Err      error
	// Block makes CreateSession wait for ctx to be done.
	Block bool
	next  int
}

func (m *MockProvider) CreateSession(ctx context.Context, req *payment.SessionRequest) (*payment.Session, error) {
	m.mu.Lock()
	m.Requests = append(m.Requests, req)
	m.next++
	id := m.next
	m.mu.Unlock()

	if m.Block {
		<-ctx.Done()
		return nil, ctx.Err()
	}
	if m.Err != nil {
		return nil, m.Err
	}
	return &payment.Session{ID: fmt.Sprintf("cs_test_%d", id)}, nil
}

func (m *MockProvider) Calls() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.Requests)
}

// MockCatalog implements ProductLookup and ProductLister over a slice, so
// tests can include duplicates that catalog.New would reject.
type MockCatalog []domain.Product

func (c MockCatalog) Lookup(sku string) (domain.Product, bool) {
	for _, p := range c {
		if p.SKU == sku {
			return p, true
		}
	}
	return domain.Product{}, false
}

func (c MockCatalog) Products() []domain.Product {
	return c
}

// MockSessionCreator implements SessionCreator for handler tests.
type MockSessionCreator struct {
	Session *payment.Session
	Err     error
	Bodies  [][]byte
}

func (m *MockSessionCreator) CreateSession(_ context.Context, body []byte) (*payment.Session, error) {
	m.Bodies = append(m.Bodies, body)
	return m.Session, m.Err
}

var testCatalog = MockCatalog{
	{SKU: "A", Name: "Bananas", Price: 400, Currency: "USD"},
	{SKU: "B", Name: "Tangerines", Description: "Sweet", Price: 100, Currency: "USD", Image: "https://example.com/t.jpg"},
	{SKU: "C", Name: "Kiwis", Price: 250, Currency: "EUR", Image: "https://example.com/k.jpg", Attribution: "Photo by someone"},
}
