// Package cart holds the shopper cart: line items, derived totals, persistence and the
// WhatsApp order link.
package cart

import (
	"github.com/shopspring/decimal"
)

// LineItem is one product line. Quantity is always at least 1.
type LineItem struct {
	ID       int64
	Name     string
	Price    *decimal.Decimal
	Quantity int
	Image    *string
}

// LineTotal returns price × quantity, or false when the price is unknown.
func (l LineItem) LineTotal() (decimal.Decimal, bool) {
	if l.Price == nil {
		return decimal.Zero, false
	}
	return l.Price.Mul(decimal.NewFromInt(int64(l.Quantity))), true
}

// ProductStub is what a product card hands to AddItem.
type ProductStub struct {
	ID    int64
	Name  string
	Price *decimal.Decimal
	Image *string
}

// Snapshot is an immutable copy of the cart state.
type Snapshot struct {
	Items      []LineItem
	ItemsCount int
	Total      decimal.Decimal
	Currency   string
	IsOpen     bool
}

// ItemsCount sums the quantities of items.
func ItemsCount(items []LineItem) int {
	count := 0
	for _, item := range items {
		count += item.Quantity
	}
	return count
}

// Total sums price × quantity over items, counting a missing price as zero.
func Total(items []LineItem) decimal.Decimal {
	total := decimal.Zero
	for _, item := range items {
		if line, ok := item.LineTotal(); ok {
			total = total.Add(line)
		}
	}
	return total
}

func cloneItems(items []LineItem) []LineItem {
	out := make([]LineItem, len(items))
	for i, item := range items {
		out[i] = item.clone()
	}
	return out
}

func (l LineItem) clone() LineItem {
	if l.Price != nil {
		p := *l.Price
		l.Price = &p
	}
	if l.Image != nil {
		img := *l.Image
		l.Image = &img
	}
	return l
}

func indexOf(items []LineItem, id int64) int {
	for i := range items {
		if items[i].ID == id {
			return i
		}
	}
	return -1
}
