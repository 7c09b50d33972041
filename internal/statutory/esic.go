package statutory

import "github.com/shopspring/decimal"

const ESICGrossCeiling = 21000

var (
	esicGrossCeiling = decimal.NewFromInt(ESICGrossCeiling)
	esicEmployeeRate = decimal.RequireFromString("0.0075")
	esicEmployerRate = decimal.RequireFromString("0.0325")
)

type ESICResult struct {
	Eligible      bool  `json:"eligible"`
	EmployeeShare int64 `json:"employee_share"`
	EmployerShare int64 `json:"employer_share"`
}

// CalculateESIC returns the insurance contribution on gross monthly earnings.
// Both shares round up to the next whole unit.
func CalculateESIC(gross float64, applicable bool) ESICResult {
	g := toDecimal(gross)
	if !applicable || g.GreaterThan(esicGrossCeiling) {
		return ESICResult{}
	}

	return ESICResult{
		Eligible:      true,
		EmployeeShare: ceilUnits(g.Mul(esicEmployeeRate)),
		EmployerShare: ceilUnits(g.Mul(esicEmployerRate)),
	}
}
