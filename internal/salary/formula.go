package salary

import (
	"fmt"
	"math"

	"github.com/Knetic/govaluate"
	"github.com/shopspring/decimal"
)

// Variables available to formula components. Earnings cannot read gross
// because gross is the sum of earnings.
const (
	varBasic         = "basic"
	varDeclaredBasic = "declared_basic"
	varGross         = "gross"
	varWorkingDays   = "working_days"
	varPayableDays   = "payable_days"
	varLOPDays       = "lop_days"
)

var earningVars = map[string]bool{
	varBasic:         true,
	varDeclaredBasic: true,
	varWorkingDays:   true,
	varPayableDays:   true,
	varLOPDays:       true,
}

func compileFormula(formula string, kind ComponentKind) (*govaluate.EvaluableExpression, error) {
	expr, err := govaluate.NewEvaluableExpression(formula)
	if err != nil {
		return nil, fmt.Errorf("invalid formula: %w", err)
	}
	for _, v := range expr.Vars() {
		if earningVars[v] || (kind == KindDeduction && v == varGross) {
			continue
		}
		return nil, fmt.Errorf("formula uses unknown variable %q", v)
	}
	return expr, nil
}

func evaluateFormula(formula string, kind ComponentKind, params map[string]any) (decimal.Decimal, error) {
	expr, err := compileFormula(formula, kind)
	if err != nil {
		return decimal.Zero, err
	}

	out, err := expr.Evaluate(params)
	if err != nil {
		return decimal.Zero, fmt.Errorf("evaluate formula: %w", err)
	}

	v, ok := out.(float64)
	if !ok {
		return decimal.Zero, fmt.Errorf("formula must produce a number, got %T", out)
	}
	if math.IsNaN(v) || math.IsInf(v, 0) || v < 0 {
		return decimal.Zero, fmt.Errorf("formula produced %v", v)
	}
	return decimal.NewFromFloat(v), nil
}
