package cart

import (
	"encoding/json"
	"math"
	"testing"
)

func TestClampQuantity(t *testing.T) {
	cases := map[float64]int{
		-5:   1,
		0:    1,
		1:    1,
		1.99: 1,
		42:   42,
		999:  999,
		1000: 999,
		5000: 999,
	}
	for in, want := range cases {
		if got := ClampQuantity(in); got != want {
			t.Fatalf("ClampQuantity(%v): expected %d, got %d", in, want, got)
		}
	}
	if got := ClampQuantity(math.NaN()); got != 1 {
		t.Fatalf("NaN should clamp to 1, got %d", got)
	}
}

func TestParseQuantity(t *testing.T) {
	if got := ParseQuantity(float64(3)); got != 3 {
		t.Fatalf("expected 3, got %v", got)
	}
	if got := ParseQuantity(json.Number("7.5")); got != 7.5 {
		t.Fatalf("expected 7.5, got %v", got)
	}
	if got := ParseQuantity(" 12 "); got != 12 {
		t.Fatalf("expected 12, got %v", got)
	}
	for _, v := range []any{nil, "abc", true, map[string]any{}} {
		if got := ClampQuantity(ParseQuantity(v)); got != 1 {
			t.Fatalf("non-numeric %v should clamp to 1, got %d", v, got)
		}
	}
}
