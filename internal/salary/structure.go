// Package salary holds an employee's payslip structure and resolves it into
// concrete amounts for one pay period.
package salary

import (
	"fmt"
	"math"
	"strings"

	salaryerrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salary/errors"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/apperror"

	"github.com/shopspring/decimal"
)

type SalaryType string

const (
	SalaryTypeMonthly SalaryType = "MONTHLY"
	SalaryTypePerDay  SalaryType = "PER_DAY"
)

type ComponentKind string

const (
	KindEarning   ComponentKind = "EARNING"
	KindDeduction ComponentKind = "DEDUCTION"
)

type CalculationMode string

const (
	ModePercentage CalculationMode = "PERCENTAGE"
	ModeFixed      CalculationMode = "FIXED"
	ModeComputed   CalculationMode = "COMPUTED"
)

type BaseReference string

const (
	BaseBasic BaseReference = "BASIC"
	BaseGross BaseReference = "GROSS"
)

type StatutoryCode string

const (
	StatutoryPF   StatutoryCode = "PF"
	StatutoryESIC StatutoryCode = "ESIC"
	StatutoryPT   StatutoryCode = "PT"
)

// ComponentLine is a snapshot of a component definition inside an employee's
// structure. Later edits to the master definition do not change it.
type ComponentLine struct {
	Name          string          `json:"name"`
	Kind          ComponentKind   `json:"kind"`
	Mode          CalculationMode `json:"calculation_mode"`
	BaseReference BaseReference   `json:"base_reference,omitempty"`
	Percentage    float64         `json:"percentage,omitempty"`
	FixedAmount   float64         `json:"fixed_amount,omitempty"`
	StatutoryCode StatutoryCode   `json:"statutory_code,omitempty"`
	Formula       string          `json:"formula,omitempty"`
	Taxable       bool            `json:"taxable"`
}

func (l ComponentLine) base() BaseReference {
	if l.BaseReference == "" {
		return BaseBasic
	}
	return l.BaseReference
}

type Structure struct {
	SalaryType      SalaryType      `json:"salary_type"`
	BasicSalary     float64         `json:"basic_salary"`
	Earnings        []ComponentLine `json:"earnings"`
	Deductions      []ComponentLine `json:"deductions"`
	TotalEarnings   int64           `json:"total_earnings"`
	TotalDeductions int64           `json:"total_deductions"`
	NetSalary       int64           `json:"net_salary"`
}

// RecomputeTotals refreshes the stored totals from the declared basic salary.
// Fixed lines count their amount, percentage lines count their share of the base,
// computed lines count zero because they depend on the pay period.
func (s *Structure) RecomputeTotals() {
	basic := decimal.NewFromFloat(s.BasicSalary)

	earnings := roundUnits(basic)
	for _, l := range s.Earnings {
		earnings += staticAmount(l, basic, decimal.Zero)
	}

	gross := decimal.NewFromInt(earnings)
	var deductions int64
	for _, l := range s.Deductions {
		deductions += staticAmount(l, basic, gross)
	}

	s.TotalEarnings = earnings
	s.TotalDeductions = deductions
	s.NetSalary = earnings - deductions
}

func staticAmount(l ComponentLine, basic, gross decimal.Decimal) int64 {
	switch l.Mode {
	case ModeFixed:
		return roundUnits(decimal.NewFromFloat(l.FixedAmount))
	case ModePercentage:
		base := basic
		if l.base() == BaseGross {
			base = gross
		}
		return roundUnits(percentOf(base, l.Percentage))
	default:
		return 0
	}
}

// Validate reports the first structural problem, wrapped in ErrMalformedStructure.
func (s *Structure) Validate() error {
	if s == nil {
		return salaryerrors.ErrMissingStructure
	}
	switch s.SalaryType {
	case SalaryTypeMonthly, SalaryTypePerDay:
	default:
		return malformed("unknown salary type %q", s.SalaryType)
	}
	if !(s.BasicSalary > 0) || math.IsInf(s.BasicSalary, 1) {
		return malformed("basic salary must be a positive finite amount")
	}

	seen := make(map[string]struct{}, len(s.Earnings)+len(s.Deductions))
	for _, l := range s.Earnings {
		if err := validateLine(l, KindEarning, seen); err != nil {
			return err
		}
	}
	for _, l := range s.Deductions {
		if err := validateLine(l, KindDeduction, seen); err != nil {
			return err
		}
	}
	return nil
}

// Validate checks a single line on its own, as done for master component definitions.
func (l ComponentLine) Validate() error {
	kind := l.Kind
	if kind != KindEarning && kind != KindDeduction {
		return malformed("component %q has unknown kind %q", l.Name, l.Kind)
	}
	return validateLine(l, kind, map[string]struct{}{})
}

// NaN fails every comparison, so it is rejected along with the infinities.
func nonNegativeFinite(v float64) bool {
	return v >= 0 && !math.IsInf(v, 1)
}

func validateLine(l ComponentLine, kind ComponentKind, seen map[string]struct{}) error {
	name := strings.TrimSpace(l.Name)
	if name == "" {
		return malformed("%s component without a name", strings.ToLower(string(kind)))
	}
	key := strings.ToLower(name)
	if _, dup := seen[key]; dup {
		return malformed("component %q appears twice", name)
	}
	seen[key] = struct{}{}

	if l.Kind != "" && l.Kind != kind {
		return malformed("component %q is a %s listed as a %s", name, l.Kind, kind)
	}

	switch l.base() {
	case BaseBasic:
	case BaseGross:
		if kind == KindEarning {
			return malformed("earning %q cannot be based on gross", name)
		}
	default:
		return malformed("component %q has unknown base reference %q", name, l.BaseReference)
	}

	switch l.Mode {
	case ModePercentage:
		if !nonNegativeFinite(l.Percentage) {
			return malformed("component %q needs a finite, non-negative percentage", name)
		}
	case ModeFixed:
		if !nonNegativeFinite(l.FixedAmount) {
			return malformed("component %q needs a finite, non-negative fixed amount", name)
		}
	case ModeComputed:
		return validateComputed(l, kind, name)
	default:
		return malformed("component %q has unknown calculation mode %q", name, l.Mode)
	}
	return nil
}

func validateComputed(l ComponentLine, kind ComponentKind, name string) error {
	if l.StatutoryCode != "" {
		if kind != KindDeduction {
			return malformed("statutory component %q must be a deduction", name)
		}
		switch l.StatutoryCode {
		case StatutoryPF, StatutoryESIC, StatutoryPT:
			return nil
		default:
			return malformed("component %q has unknown statutory code %q", name, l.StatutoryCode)
		}
	}
	if strings.TrimSpace(l.Formula) == "" {
		return malformed("computed component %q needs a statutory code or a formula", name)
	}
	if _, err := compileFormula(l.Formula, kind); err != nil {
		return malformed("component %q: %v", name, err)
	}
	return nil
}

func malformed(format string, args ...any) error {
	return apperror.WithCause(salaryerrors.ErrMalformedStructure, fmt.Errorf(format, args...))
}

var hundred = decimal.NewFromInt(100)

func percentOf(base decimal.Decimal, pct float64) decimal.Decimal {
	return base.Mul(decimal.NewFromFloat(pct)).Div(hundred)
}

func roundUnits(d decimal.Decimal) int64 {
	return d.Round(0).IntPart()
}
