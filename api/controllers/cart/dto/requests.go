package cartdto

import "encoding/json"

// AddItemRequest is the product stub posted by a product card.
type AddItemRequest struct {
	ID    int64        `json:"id" validate:"required,gte=1"`
	Name  string       `json:"name" validate:"required,max=200"`
	Price *json.Number `json:"price"`
	Image *string      `json:"image" validate:"omitempty,max=2048"`
}

// SetQuantityRequest accepts any JSON value; non-numeric input counts as 1.
type SetQuantityRequest struct {
	Quantity any `json:"quantity"`
}
