package cart

import "errors"

var (
	ErrCustomerIDRequired = errors.New("cart: customer id is required")
	ErrInvalidQuantity    = errors.New("cart: quantity must be zero or greater")
)

// Item is a single cart line. It has no identity beyond its field values;
// appending the same item twice yields two lines.
type Item struct {
	ProductID string `json:"product_id"`
	Quantity  int32  `json:"quantity"`
}

// Cart is the ordered item list for one customer. Items appear in the order
// their appends were accepted by the store.
type Cart struct {
	CustomerID string `json:"user_id"`
	Items      []Item `json:"items"`
}
