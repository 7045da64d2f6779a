package catalog

import "github.com/fjod/go_cart/checkout-function/internal/domain"

// defaultProducts is the demo storefront inventory.
var defaultProducts = []domain.Product{
	{
		SKU:         "sku_GBJ2Ep8246qeeT",
		Name:        "Bananas",
		Description: "Yummy yellow fruit",
		Price:       400,
		Currency:    "USD",
		Image:       "https://images.unsplash.com/photo-1574226516831-e1dff420e562?ixlib=rb-1.2.1&ixid=eyJhcHBfaWQiOjEyMDd9&auto=format&fit=crop&w=225&q=80",
		Attribution: "Photo by Priscilla Du Preez on Unsplash",
	},
	{
		SKU:         "sku_GBJ2WWfMaGNC2Z",
		Name:        "Tangerines",
		Price:       100,
		Currency:    "USD",
		Image:       "https://images.unsplash.com/photo-1482012792084-a0c3725f289f?ixlib=rb-1.2.1&ixid=eyJhcHBfaWQiOjEyMDd9&auto=format&fit=crop&w=225&q=80",
		Attribution: "Photo by Jonathan Pielmayer on Unsplash",
	},
}

// Default returns the built-in demo catalog.
func Default() *Catalog {
	c, err := New(defaultProducts)
	if err != nil {
		panic(err) // built-in data is validated by tests
	}
	return c
}
