package service

import "github.com/fjod/go_cart/checkout-function/internal/domain"

// ProductLookup resolves a sku to its catalog record.
type ProductLookup interface {
	Lookup(sku string) (domain.Product, bool)
}

// BuildLineItems prices every cart entry against the catalog, in cart order.
// It is all-or-nothing: an unknown sku yields a *ProductNotFoundError and no items.
// Quantities are copied as-is; validating them is the parser's job.
func BuildLineItems(catalog ProductLookup, cart domain.Cart) ([]domain.LineItem, error) {
	lineItems := make([]domain.LineItem, 0, len(cart))

	for _, entry := range cart {
		product, ok := catalog.Lookup(entry.SKU)
		if !ok {
			return nil, &ProductNotFoundError{SKU: entry.SKU}
		}

		item := domain.LineItem{
			Currency:           product.Currency,
			UnitAmount:         product.Price,
			ProductName:        product.Name,
			ProductDescription: product.Description,
			Quantity:           entry.Quantity,
		}
		if product.Image != "" {
			item.ProductImages = []string{product.Image}
		}
		lineItems = append(lineItems, item)
	}

	return lineItems, nil
}
