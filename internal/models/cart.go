package models

// LineItem is one cart entry. Name, price and image are copied from the
// product when it is first added; ProductID may dangle once the product is
// deleted from the catalog.
type LineItem struct {
	ProductID int     `json:"id"`
	Name      string  `json:"name"`
	Price     float64 `json:"price"`
	Image     string  `json:"image"`
	Quantity  int     `json:"quantity"`
}

// Subtotal is price times quantity.
func (li LineItem) Subtotal() float64 {
	return li.Price * float64(li.Quantity)
}
