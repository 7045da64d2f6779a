package catalog

import (
	"fmt"
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/fjod/go_cart/checkout-function/internal/domain"
)

// fileProduct is one [[products]] table of a catalog file:
//
//	[[products]]
//	sku = "sku_123"
//	name = "Bananas"
//	price = 400
//	currency = "USD"
type fileProduct struct {
	SKU         string `toml:"sku"`
	Name        string `toml:"name"`
	Description string `toml:"description"`
	Price       int64  `toml:"price"`
	Currency    string `toml:"currency"`
	Image       string `toml:"image"`
	Attribution string `toml:"attribution"`
}

type file struct {
	Products []fileProduct `toml:"products"`
}

// Load returns the catalog stored at path, or the built-in catalog when path is empty.
func Load(path string) (*Catalog, error) {
	if path == "" {
		return Default(), nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read catalog file: %w", err)
	}
	return Parse(data)
}

func Parse(data []byte) (*Catalog, error) {
	var f file
	if err := toml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("failed to parse catalog: %w", err)
	}

	products := make([]domain.Product, len(f.Products))
	for i, p := range f.Products {
		products[i] = domain.Product{
			SKU:         p.SKU,
			Name:        p.Name,
			Description: p.Description,
			Price:       p.Price,
			Currency:    p.Currency,
			Image:       p.Image,
			Attribution: p.Attribution,
		}
	}
	return New(products)
}
