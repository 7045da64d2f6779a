package catalog

import (
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fjod/go_cart/checkout-function/internal/domain"
)

func TestDefault(t *testing.T) {
	c := Default()

	require.Equal(t, 2, c.Len())
	products := c.Products()
	assert.Equal(t, "Bananas", products[0].Name)
	assert.Equal(t, "Tangerines", products[1].Name)

	bananas, ok := c.Lookup("sku_GBJ2Ep8246qeeT")
	require.True(t, ok)
	assert.Equal(t, int64(400), bananas.Price)
	assert.Equal(t, "USD", bananas.Currency)
	assert.Equal(t, "Yummy yellow fruit", bananas.Description)

	tangerines, ok := c.Lookup("sku_GBJ2WWfMaGNC2Z")
	require.True(t, ok)
	assert.Empty(t, tangerines.Description)
}

func TestLookup_ExactMatchOnly(t *testing.T) {
	c := Default()

	_, ok := c.Lookup("SKU_GBJ2EP8246QEET")
	assert.False(t, ok)
	_, ok = c.Lookup("sku_GBJ2Ep8246qee")
	assert.False(t, ok)
	_, ok = c.Lookup("")
	assert.False(t, ok)
}

func TestNew_CopiesInput(t *testing.T) {
	products := []domain.Product{{SKU: "A", Name: "Apple", Price: 50, Currency: "USD"}}
	c, err := New(products)
	require.NoError(t, err)

	products[0].Price = 1
	p, _ := c.Lookup("A")
	assert.Equal(t, int64(50), p.Price)

	listed := c.Products()
	listed[0].Name = "changed"
	p, _ = c.Lookup("A")
	assert.Equal(t, "Apple", p.Name)
}

func TestNew_Validation(t *testing.T) {
	valid := domain.Product{SKU: "A", Name: "Apple", Price: 50, Currency: "USD"}

	tests := []struct {
		name     string
		products []domain.Product
		wantErr  error
	}{
		{"empty sku", []domain.Product{{Name: "x", Price: 1, Currency: "USD"}}, ErrEmptySKU},
		{"empty name", []domain.Product{{SKU: "A", Price: 1, Currency: "USD"}}, ErrEmptyName},
		{"zero price", []domain.Product{{SKU: "A", Name: "x", Currency: "USD"}}, ErrInvalidPrice},
		{"negative price", []domain.Product{{SKU: "A", Name: "x", Price: -5, Currency: "USD"}}, ErrInvalidPrice},
		{"empty currency", []domain.Product{{SKU: "A", Name: "x", Price: 1}}, ErrEmptyCurrency},
		{"duplicate sku", []domain.Product{valid, valid}, ErrDuplicateSKU},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, err := New(tt.products)
			assert.ErrorIs(t, err, tt.wantErr)
			assert.Nil(t, c)
		})
	}
}

func TestLoad_EmptyPathReturnsDefault(t *testing.T) {
	c, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default().Products(), c.Products())
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "catalog.toml")
	content := `
[[products]]
sku = "sku_apple"
name = "Apples"
description = "Crunchy"
price = 250
currency = "EUR"
image = "https://example.com/apple.jpg"

[[products]]
sku = "sku_pear"
name = "Pears"
price = 300
currency = "EUR"
`
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	c, err := Load(path)
	require.NoError(t, err)
	require.Equal(t, 2, c.Len())

	apple, ok := c.Lookup("sku_apple")
	require.True(t, ok)
	assert.Equal(t, domain.Product{
		SKU:         "sku_apple",
		Name:        "Apples",
		Description: "Crunchy",
		Price:       250,
		Currency:    "EUR",
		Image:       "https://example.com/apple.jpg",
	}, apple)
	assert.Equal(t, "sku_pear", c.Products()[1].SKU)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to read catalog file")
}

func TestParse_Invalid(t *testing.T) {
	_, err := Parse([]byte("[[products]\nsku = "))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to parse catalog")

	_, err = Parse([]byte("[[products]]\nsku = \"a\"\nname = \"A\"\nprice = 0\ncurrency = \"USD\"\n"))
	assert.ErrorIs(t, err, ErrInvalidPrice)
}

func TestCatalog_ConcurrentReads(t *testing.T) {
	c := Default()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, ok := c.Lookup("sku_GBJ2WWfMaGNC2Z")
			assert.True(t, ok)
			assert.Len(t, c.Products(), 2)
		}()
	}
	wg.Wait()
}
