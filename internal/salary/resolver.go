package salary

import (
	salaryerrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salary/errors"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/statutory"

	"github.com/shopspring/decimal"
)

const BasicLineName = "Basic Salary"

// StatutoryProfile carries the employee facts the statutory calculators need.
type StatutoryProfile struct {
	State               string
	Gender              string
	PFApplicable        bool
	PFRestrictToCeiling bool
	ESICApplicable      bool
}

type Period struct {
	Month       int
	Year        int
	WorkingDays int
	LOPDays     int
	Profile     StatutoryProfile
}

type LineItem struct {
	Type            ComponentKind   `json:"type"`
	Name            string          `json:"name"`
	Amount          int64           `json:"amount"`
	CalculationMode CalculationMode `json:"calculation_mode"`
	Percentage      float64         `json:"percentage,omitempty"`
	StatutoryCode   StatutoryCode   `json:"statutory_code,omitempty"`
	Source          string          `json:"source,omitempty"`
}

type Resolution struct {
	SalaryType      SalaryType
	DeclaredBasic   float64
	ResolvedBasic   int64
	WorkingDays     int
	PayableDays     int
	LOPDays         int
	Earnings        []LineItem
	Deductions      []LineItem
	Gross           int64
	TotalDeductions int64
	Net             int64

	EmployerPF   int64
	EmployerESIC int64
}

// AddEarning appends an extra earning line and keeps the totals consistent.
func (r *Resolution) AddEarning(item LineItem) {
	item.Type = KindEarning
	r.Earnings = append(r.Earnings, item)
	r.Gross += item.Amount
	r.Net = r.Gross - r.TotalDeductions
}

// AddDeduction appends an extra deduction line and keeps the totals consistent.
func (r *Resolution) AddDeduction(item LineItem) {
	item.Type = KindDeduction
	r.Deductions = append(r.Deductions, item)
	r.TotalDeductions += item.Amount
	r.Net = r.Gross - r.TotalDeductions
}

// Resolve turns a structure into the amounts owed for one period.
//
// The basic salary is prorated for loss-of-pay days: a monthly salary is scaled by
// payable/working days, a per-day salary is multiplied by payable days. Every line
// is rounded half up to whole units and the totals are sums of rounded lines, so
// Net always equals Gross minus TotalDeductions.
func Resolve(s *Structure, p Period) (Resolution, error) {
	if err := s.Validate(); err != nil {
		return Resolution{}, err
	}
	if p.WorkingDays <= 0 {
		return Resolution{}, salaryerrors.ErrInvalidPeriod
	}

	lop := p.LOPDays
	if lop < 0 {
		lop = 0
	}
	if lop > p.WorkingDays {
		lop = p.WorkingDays
	}
	payable := p.WorkingDays - lop

	declared := decimal.NewFromFloat(s.BasicSalary)
	var basic decimal.Decimal
	if s.SalaryType == SalaryTypePerDay {
		basic = declared.Mul(decimal.NewFromInt(int64(payable)))
	} else {
		basic = declared.Mul(decimal.NewFromInt(int64(payable))).Div(decimal.NewFromInt(int64(p.WorkingDays)))
	}
	resolvedBasic := roundUnits(basic)

	res := Resolution{
		SalaryType:    s.SalaryType,
		DeclaredBasic: s.BasicSalary,
		ResolvedBasic: resolvedBasic,
		WorkingDays:   p.WorkingDays,
		PayableDays:   payable,
		LOPDays:       lop,
	}
	res.AddEarning(LineItem{Name: BasicLineName, Amount: resolvedBasic, CalculationMode: ModeFixed})

	params := map[string]any{
		varBasic:         float64(resolvedBasic),
		varDeclaredBasic: s.BasicSalary,
		varWorkingDays:   float64(p.WorkingDays),
		varPayableDays:   float64(payable),
		varLOPDays:       float64(lop),
	}

	basicUnits := decimal.NewFromInt(resolvedBasic)
	for _, l := range s.Earnings {
		amount, err := resolveEarning(l, basicUnits, params)
		if err != nil {
			return Resolution{}, err
		}
		res.AddEarning(lineItem(l, amount))
	}

	params[varGross] = float64(res.Gross)
	grossUnits := decimal.NewFromInt(res.Gross)
	for _, l := range s.Deductions {
		var amount int64
		switch {
		case l.Mode == ModeComputed && l.StatutoryCode != "":
			amount = res.applyStatutory(l.StatutoryCode, p)
		default:
			var err error
			amount, err = resolveDeduction(l, basicUnits, grossUnits, params)
			if err != nil {
				return Resolution{}, err
			}
		}
		res.AddDeduction(lineItem(l, amount))
	}

	return res, nil
}

func resolveEarning(l ComponentLine, basic decimal.Decimal, params map[string]any) (int64, error) {
	switch l.Mode {
	case ModePercentage:
		return roundUnits(percentOf(basic, l.Percentage)), nil
	case ModeFixed:
		return roundUnits(decimal.NewFromFloat(l.FixedAmount)), nil
	default:
		v, err := evaluateFormula(l.Formula, KindEarning, params)
		if err != nil {
			return 0, malformed("earning %q: %v", l.Name, err)
		}
		return roundUnits(v), nil
	}
}

func resolveDeduction(l ComponentLine, basic, gross decimal.Decimal, params map[string]any) (int64, error) {
	switch l.Mode {
	case ModePercentage:
		base := basic
		if l.base() == BaseGross {
			base = gross
		}
		return roundUnits(percentOf(base, l.Percentage)), nil
	case ModeFixed:
		return roundUnits(decimal.NewFromFloat(l.FixedAmount)), nil
	default:
		v, err := evaluateFormula(l.Formula, KindDeduction, params)
		if err != nil {
			return 0, malformed("deduction %q: %v", l.Name, err)
		}
		return roundUnits(v), nil
	}
}

func (r *Resolution) applyStatutory(code StatutoryCode, p Period) int64 {
	switch code {
	case StatutoryPF:
		pf := statutory.CalculatePF(float64(r.ResolvedBasic), p.Profile.PFApplicable, p.Profile.PFRestrictToCeiling)
		r.EmployerPF = pf.EmployerShare
		return pf.EmployeeShare
	case StatutoryESIC:
		esic := statutory.CalculateESIC(float64(r.Gross), p.Profile.ESICApplicable)
		r.EmployerESIC = esic.EmployerShare
		return esic.EmployeeShare
	case StatutoryPT:
		return statutory.CalculatePT(p.Profile.State, float64(r.Gross), p.Profile.Gender, p.Month)
	}
	return 0
}

func lineItem(l ComponentLine, amount int64) LineItem {
	item := LineItem{
		Name:            l.Name,
		Amount:          amount,
		CalculationMode: l.Mode,
		StatutoryCode:   l.StatutoryCode,
	}
	if l.Mode == ModePercentage {
		item.Percentage = l.Percentage
	}
	return item
}
