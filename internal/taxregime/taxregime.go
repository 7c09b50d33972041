// Package taxregime compares annual income tax under India's old and new regimes.
package taxregime

import (
	"math"

	"github.com/shopspring/decimal"
)

type Regime string

const (
	RegimeNew Regime = "NEW"
	RegimeOld Regime = "OLD"
)

type Exemptions struct {
	Section80C float64 `json:"section_80c"`
	Section80D float64 `json:"section_80d"`
	HRA        float64 `json:"hra_exemption"`
	Other      float64 `json:"other_exemptions"`
}

type RegimeResult struct {
	TaxableIncome float64 `json:"taxable_income"`
	Tax           float64 `json:"tax"`
	Cess          float64 `json:"cess"`
	TotalTax      float64 `json:"total_tax"`
}

type Comparison struct {
	AnnualGross  float64      `json:"annual_gross"`
	NewRegime    RegimeResult `json:"new_regime"`
	OldRegime    RegimeResult `json:"old_regime"`
	BetterRegime Regime       `json:"better_regime"`
	Savings      float64      `json:"savings"`
}

type band struct {
	from decimal.Decimal
	to   decimal.Decimal // zero means unbounded
	rate decimal.Decimal
}

func newBand(from, to int64, rate string) band {
	return band{from: decimal.NewFromInt(from), to: decimal.NewFromInt(to), rate: decimal.RequireFromString(rate)}
}

var (
	newRegimeBands = []band{
		newBand(0, 300000, "0"),
		newBand(300000, 700000, "0.05"),
		newBand(700000, 1000000, "0.10"),
		newBand(1000000, 1200000, "0.15"),
		newBand(1200000, 1500000, "0.20"),
		newBand(1500000, 0, "0.30"),
	}
	oldRegimeBands = []band{
		newBand(0, 250000, "0"),
		newBand(250000, 500000, "0.05"),
		newBand(500000, 1000000, "0.20"),
		newBand(1000000, 0, "0.30"),
	}

	newRegimeStandardDeduction = decimal.NewFromInt(75000)
	newRegimeRebateLimit       = decimal.NewFromInt(700000)
	oldRegimeStandardDeduction = decimal.NewFromInt(50000)
	oldRegimeRebateLimit       = decimal.NewFromInt(500000)
	section80CCap              = decimal.NewFromInt(150000)
	cessRate                   = decimal.RequireFromString("0.04")
)

// CompareTaxRegimes computes the tax owed on annualGross under both regimes and
// picks the cheaper one. Ties go to the new regime.
func CompareTaxRegimes(annualGross float64, ex Exemptions) Comparison {
	gross := toDecimal(annualGross)

	newTaxable := decimal.Max(decimal.Zero, gross.Sub(newRegimeStandardDeduction))
	newResult := regimeTax(newTaxable, newRegimeRebateLimit, newRegimeBands)

	deductible := decimal.Min(toDecimal(ex.Section80C), section80CCap).
		Add(toDecimal(ex.Section80D)).
		Add(toDecimal(ex.HRA)).
		Add(toDecimal(ex.Other)).
		Add(oldRegimeStandardDeduction)
	oldTaxable := decimal.Max(decimal.Zero, gross.Sub(deductible))
	oldResult := regimeTax(oldTaxable, oldRegimeRebateLimit, oldRegimeBands)

	better := RegimeNew
	if oldResult.total.LessThan(newResult.total) {
		better = RegimeOld
	}

	return Comparison{
		AnnualGross:  money(gross),
		NewRegime:    newResult.toResult(),
		OldRegime:    oldResult.toResult(),
		BetterRegime: better,
		Savings:      money(newResult.total.Sub(oldResult.total).Abs()),
	}
}

type computed struct {
	taxable, tax, cess, total decimal.Decimal
}

func (c computed) toResult() RegimeResult {
	return RegimeResult{
		TaxableIncome: money(c.taxable),
		Tax:           money(c.tax),
		Cess:          money(c.cess),
		TotalTax:      money(c.total),
	}
}

func regimeTax(taxable, rebateLimit decimal.Decimal, bands []band) computed {
	tax := decimal.Zero
	if taxable.GreaterThan(rebateLimit) {
		tax = slabTax(taxable, bands)
	}
	cess := tax.Mul(cessRate)
	return computed{taxable: taxable, tax: tax, cess: cess, total: tax.Add(cess)}
}

// slabTax sums the marginal tax of every band the income reaches.
func slabTax(income decimal.Decimal, bands []band) decimal.Decimal {
	tax := decimal.Zero
	for _, b := range bands {
		if income.LessThanOrEqual(b.from) {
			break
		}
		upper := income
		if !b.to.IsZero() && income.GreaterThan(b.to) {
			upper = b.to
		}
		tax = tax.Add(upper.Sub(b.from).Mul(b.rate))
	}
	return tax
}

func toDecimal(v float64) decimal.Decimal {
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return decimal.Zero
	}
	return decimal.NewFromFloat(v)
}

func money(d decimal.Decimal) float64 {
	return d.Round(2).InexactFloat64()
}
