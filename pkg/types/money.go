package types

import (
	"encoding/json"
	"fmt"

	"github.com/shopspring/decimal"
)

// NumberOf renders d as a JSON number literal.
func NumberOf(d decimal.Decimal) json.Number {
	return json.Number(d.String())
}

// DecimalOf parses a JSON number into a decimal.
func DecimalOf(n json.Number) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(n.String())
	if err != nil {
		return decimal.Zero, fmt.Errorf("invalid amount %q: %w", n, err)
	}
	return d, nil
}

// OptionalNumber maps a nil amount to a nil number.
func OptionalNumber(d *decimal.Decimal) *json.Number {
	if d == nil {
		return nil
	}
	n := NumberOf(*d)
	return &n
}

// OptionalDecimal maps a nil number to a nil amount.
func OptionalDecimal(n *json.Number) (*decimal.Decimal, error) {
	if n == nil {
		return nil, nil
	}
	d, err := DecimalOf(*n)
	if err != nil {
		return nil, err
	}
	return &d, nil
}
