// Package statutory computes Indian statutory payroll contributions:
// provident fund, employee state insurance and state professional tax.
//
// All calculators are total. Missing or invalid numeric input (NaN, infinity,
// negative values) is treated as zero and never produces an error.
package statutory

import (
	"math"

	"github.com/shopspring/decimal"
)

func sanitize(v float64) float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return 0
	}
	return v
}

func toDecimal(v float64) decimal.Decimal {
	return decimal.NewFromFloat(sanitize(v))
}

// roundHalfUp rounds a non-negative amount to whole currency units.
func roundHalfUp(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}

func ceilUnits(d decimal.Decimal) int64 {
	return d.Ceil().IntPart()
}
