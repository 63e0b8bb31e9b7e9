package domain

import (
	"math"
	"strings"

	"github.com/govalues/decimal"
)

// NormalizeAmount coerces a heterogeneous numeric input (number, numeric
// string, nil) into a decimal. Unparsable or missing input normalizes to
// zero so downstream arithmetic never sees a string or a NaN.
func NormalizeAmount(value any) decimal.Decimal {
	switch v := value.(type) {
	case nil:
		return decimal.Zero
	case decimal.Decimal:
		return v
	case string:
		return parseAmountString(v)
	case float64:
		d, err := decimal.NewFromFloat64(v)
		if err != nil {
			return decimal.Zero
		}
		return d
	case float32:
		d, err := decimal.NewFromFloat64(float64(v))
		if err != nil {
			return decimal.Zero
		}
		return d
	case int:
		return decimal.MustNew(int64(v), 0)
	case int32:
		return decimal.MustNew(int64(v), 0)
	case int64:
		return decimal.MustNew(v, 0)
	case uint64:
		if v > math.MaxInt64 {
			return decimal.Zero
		}
		d, err := decimal.New(int64(v), 0)
		if err != nil {
			return decimal.Zero
		}
		return d
	default:
		return decimal.Zero
	}
}

// NormalizeCount is NormalizeAmount truncated to a whole number, for item
// counts and quantities.
func NormalizeCount(value any) int {
	d := NormalizeAmount(value)
	whole, _, ok := d.Int64(0)
	if !ok {
		return 0
	}
	return int(whole)
}

func parseAmountString(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}

	// tolerate locale formatting: grouping spaces and a decimal comma
	s = strings.ReplaceAll(s, " ", "")
	s = strings.ReplaceAll(s, " ", "")
	if strings.Contains(s, ",") && !strings.Contains(s, ".") {
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.Parse(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}
