package cart

import (
	"encoding/json"
	"math"
	"strconv"
	"strings"
)

const (
	MinQuantity = 1
	MaxQuantity = 999
)

// ClampQuantity floors q into [MinQuantity, MaxQuantity]. NaN and zero become MinQuantity.
func ClampQuantity(q float64) int {
	if math.IsNaN(q) || q == 0 {
		return MinQuantity
	}
	f := math.Floor(q)
	if f < MinQuantity {
		return MinQuantity
	}
	if f > MaxQuantity {
		return MaxQuantity
	}
	return int(f)
}

// ParseQuantity coerces a loosely typed value into a float for ClampQuantity.
// Anything that is not a number or a numeric string yields NaN.
func ParseQuantity(v any) float64 {
	switch q := v.(type) {
	case float64:
		return q
	case float32:
		return float64(q)
	case int:
		return float64(q)
	case int64:
		return float64(q)
	case json.Number:
		if f, err := q.Float64(); err == nil {
			return f
		}
	case string:
		if f, err := strconv.ParseFloat(strings.TrimSpace(q), 64); err == nil {
			return f
		}
	}
	return math.NaN()
}
