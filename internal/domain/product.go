package domain

// Product is a catalog record. Price is in the currency's minor unit (cents for USD).
type Product struct {
	SKU         string
	Name        string
	Description string
	Price       int64
	Currency    string
	Image       string
	Attribution string
}

type LineItem struct {
	Currency           string
	UnitAmount         int64
	ProductName        string
	ProductDescription string
	ProductImages      []string
	Quantity           int64
}

// Subtotal returns UnitAmount * Quantity.
func (l LineItem) Subtotal() int64 {
	return l.UnitAmount * l.Quantity
}
