package statutory

import "github.com/shopspring/decimal"

const PFWageCeiling = 15000

var (
	pfWageCeiling = decimal.NewFromInt(PFWageCeiling)
	pfRate        = decimal.RequireFromString("0.12")
	epsRate       = decimal.RequireFromString("0.0833")
)

type PFResult struct {
	Applicable    bool  `json:"applicable"`
	Wage          int64 `json:"wage"`
	EmployeeShare int64 `json:"employee_share"`
	EmployerShare int64 `json:"employer_share"`
	EmployerEPS   int64 `json:"employer_eps"`
	EmployerEPF   int64 `json:"employer_epf"`
}

// CalculatePF splits the provident fund contribution on a month's basic salary.
// The employer share is divided into the pension part (EPS, always capped at the
// statutory ceiling) and the remainder credited to EPF.
func CalculatePF(basic float64, applicable, restrictToCeiling bool) PFResult {
	if !applicable {
		return PFResult{}
	}

	wage := toDecimal(basic)
	if restrictToCeiling && wage.GreaterThan(pfWageCeiling) {
		wage = pfWageCeiling
	}

	employee := roundHalfUp(wage.Mul(pfRate))
	employer := roundHalfUp(wage.Mul(pfRate))
	eps := roundHalfUp(decimal.Min(wage, pfWageCeiling).Mul(epsRate))

	return PFResult{
		Applicable:    true,
		Wage:          roundHalfUp(wage),
		EmployeeShare: employee,
		EmployerShare: employer,
		EmployerEPS:   eps,
		EmployerEPF:   employer - eps,
	}
}
