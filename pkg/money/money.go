// Package money holds the fixed-precision helpers used for fiscal amounts
// (trillion yen) and rates (fractions).
package money

import (
	"github.com/shopspring/decimal"
)

// StatePrecision is the number of decimal places carried between projection years.
const StatePrecision int32 = 10

var hundred = decimal.NewFromInt(100)

// Round rounds a value to StatePrecision places.
func Round(d decimal.Decimal) decimal.Decimal {
	return d.Round(StatePrecision)
}

// FloorZero clamps negative values to zero.
func FloorZero(d decimal.Decimal) decimal.Decimal {
	if d.IsNegative() {
		return decimal.Zero
	}
	return d
}

// Max returns the larger of two values
func Max(a, b decimal.Decimal) decimal.Decimal {
	if a.GreaterThan(b) {
		return a
	}
	return b
}

// Min returns the smaller of two values
func Min(a, b decimal.Decimal) decimal.Decimal {
	if a.LessThan(b) {
		return a
	}
	return b
}

// FromPercent converts a percentage (2.5) to a fraction (0.025).
func FromPercent(p decimal.Decimal) decimal.Decimal {
	return p.Div(hundred)
}

// ToPercent converts a fraction (0.025) to a percentage (2.5).
func ToPercent(f decimal.Decimal) decimal.Decimal {
	return f.Mul(hundred)
}

// PercentOf returns 100 * num / den rounded to StatePrecision, or zero when den is zero.
func PercentOf(num, den decimal.Decimal) decimal.Decimal {
	if den.IsZero() {
		return decimal.Zero
	}
	return Round(num.Mul(hundred).Div(den))
}

// GrowthFactor returns 1 + rate*elasticity.
func GrowthFactor(rate, elasticity decimal.Decimal) decimal.Decimal {
	return decimal.NewFromInt(1).Add(rate.Mul(elasticity))
}

// Sum adds all values.
func Sum(values ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, v := range values {
		total = total.Add(v)
	}
	return total
}

// MustParse parses a decimal literal and panics on malformed input. Intended for
// package-level constants and presets.
func MustParse(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}
