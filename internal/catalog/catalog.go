package catalog

import (
	"errors"
	"fmt"

	"github.com/fjod/go_cart/checkout-function/internal/domain"
)

var (
	ErrEmptySKU      = errors.New("product sku is empty")
	ErrDuplicateSKU  = errors.New("duplicate product sku")
	ErrInvalidPrice  = errors.New("product price must be positive")
	ErrEmptyCurrency = errors.New("product currency is empty")
	ErrEmptyName     = errors.New("product name is empty")
)

// Catalog is an immutable, ordered set of products keyed by sku.
// It is never mutated after New returns, so concurrent reads need no locking.
type Catalog struct {
	products []domain.Product
	bySKU    map[string]int
}

func New(products []domain.Product) (*Catalog, error) {
	c := &Catalog{
		products: make([]domain.Product, len(products)),
		bySKU:    make(map[string]int, len(products)),
	}
	copy(c.products, products)

	for i, p := range c.products {
		if err := validate(p); err != nil {
			return nil, fmt.Errorf("product %d: %w", i, err)
		}
		if _, exists := c.bySKU[p.SKU]; exists {
			return nil, fmt.Errorf("%w: %s", ErrDuplicateSKU, p.SKU)
		}
		c.bySKU[p.SKU] = i
	}
	return c, nil
}

func validate(p domain.Product) error {
	switch {
	case p.SKU == "":
		return ErrEmptySKU
	case p.Name == "":
		return fmt.Errorf("%w: %s", ErrEmptyName, p.SKU)
	case p.Price <= 0:
		return fmt.Errorf("%w: %s", ErrInvalidPrice, p.SKU)
	case p.Currency == "":
		return fmt.Errorf("%w: %s", ErrEmptyCurrency, p.SKU)
	}
	return nil
}

// Lookup finds a product by exact sku match.
func (c *Catalog) Lookup(sku string) (domain.Product, bool) {
	i, ok := c.bySKU[sku]
	if !ok {
		return domain.Product{}, false
	}
	return c.products[i], true
}

// Products returns a copy of the catalog in its original order.
func (c *Catalog) Products() []domain.Product {
	out := make([]domain.Product, len(c.products))
	copy(out, c.products)
	return out
}

func (c *Catalog) Len() int {
	return len(c.products)
}
