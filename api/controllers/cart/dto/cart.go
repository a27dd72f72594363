package cartdto

import "encoding/json"

// Cart is the cart snapshot exposed through the API. Amounts are JSON numbers.
type Cart struct {
	Items      []CartItem  `json:"items"`
	ItemsCount int         `json:"items_count"`
	Total      json.Number `json:"total"`
	Currency   string      `json:"currency"`
	IsOpen     bool        `json:"is_open"`
}

// CartItem is one line of the cart. Price and line total are null when the price is unknown.
type CartItem struct {
	ID        int64        `json:"id"`
	Name      string       `json:"name"`
	Price     *json.Number `json:"price"`
	Quantity  int          `json:"quantity"`
	Image     *string      `json:"image"`
	LineTotal *json.Number `json:"line_total"`
}

// CheckoutLink carries the WhatsApp deep link for the current cart.
type CheckoutLink struct {
	URL    string `json:"url"`
	Locale string `json:"locale"`
}
