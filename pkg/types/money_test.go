package types

import (
	"encoding/json"
	"testing"

	"github.com/shopspring/decimal"
)

func TestNumberRoundTrip(t *testing.T) {
	d := decimal.RequireFromString("149.50")
	n := NumberOf(d)
	if n.String() != "149.5" {
		t.Fatalf("expected 149.5, got %s", n)
	}
	back, err := DecimalOf(n)
	if err != nil {
		t.Fatalf("DecimalOf: %v", err)
	}
	if !back.Equal(d) {
		t.Fatalf("expected %s, got %s", d, back)
	}
}

func TestDecimalOfRejectsGarbage(t *testing.T) {
	if _, err := DecimalOf(json.Number("abc")); err == nil {
		t.Fatal("expected error for non-numeric amount")
	}
}

func TestOptionalHelpers(t *testing.T) {
	if OptionalNumber(nil) != nil {
		t.Fatal("expected nil number for nil amount")
	}
	if d, err := OptionalDecimal(nil); err != nil || d != nil {
		t.Fatalf("expected nil amount, got %v %v", d, err)
	}

	zero := decimal.Zero
	n := OptionalNumber(&zero)
	if n == nil || n.String() != "0" {
		t.Fatalf("expected 0, got %v", n)
	}
	d, err := OptionalDecimal(n)
	if err != nil || d == nil || !d.IsZero() {
		t.Fatalf("expected zero amount, got %v %v", d, err)
	}
}
