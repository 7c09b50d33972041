package statutory

import (
	"strings"
	"time"
)

type ptRule func(gross float64, female bool, month int) int64

var ptRules = map[string]ptRule{
	"maharashtra": maharashtraPT,
	"karnataka":   karnatakaPT,
	"tamil nadu":  tamilNaduPT,
	"west bengal": westBengalPT,
	"telangana":   telanganaPT,
	"gujarat":     gujaratPT,
	"delhi":       noPT,
	"haryana":     noPT,
}

// CalculatePT returns the professional tax deducted for one month.
// States without a levy, and unknown states, return 0.
func CalculatePT(state string, gross float64, gender string, month int) int64 {
	rule, ok := ptRules[strings.ToLower(strings.TrimSpace(state))]
	if !ok {
		return 0
	}
	return rule(sanitize(gross), isFemale(gender), month)
}

func isFemale(gender string) bool {
	g := strings.ToLower(strings.TrimSpace(gender))
	return g == "female" || g == "f"
}

func isFebruary(month int) bool {
	return month == int(time.February)
}

func maharashtraPT(gross float64, female bool, month int) int64 {
	if female {
		if gross <= 25000 {
			return 0
		}
	} else {
		switch {
		case gross <= 7500:
			return 0
		case gross <= 10000:
			return 175
		}
	}
	if isFebruary(month) {
		return 300
	}
	return 200
}

func karnatakaPT(gross float64, _ bool, month int) int64 {
	if gross < 25000 {
		return 0
	}
	if isFebruary(month) {
		return 300
	}
	return 200
}

// Tamil Nadu levies half-yearly, collected in March and September on six months of income.
func tamilNaduPT(gross float64, _ bool, month int) int64 {
	if month != int(time.March) && month != int(time.September) {
		return 0
	}

	halfYear := gross * 6
	switch {
	case halfYear <= 21000:
		return 0
	case halfYear <= 30000:
		return 180
	case halfYear <= 45000:
		return 425
	case halfYear <= 60000:
		return 930
	case halfYear <= 75000:
		return 1025
	default:
		return 1250
	}
}

func westBengalPT(gross float64, _ bool, _ int) int64 {
	switch {
	case gross <= 10000:
		return 0
	case gross <= 15000:
		return 110
	case gross <= 25000:
		return 130
	case gross <= 40000:
		return 150
	default:
		return 200
	}
}

func telanganaPT(gross float64, _ bool, _ int) int64 {
	switch {
	case gross <= 15000:
		return 0
	case gross <= 20000:
		return 150
	default:
		return 200
	}
}

func gujaratPT(gross float64, _ bool, _ int) int64 {
	if gross < 12000 {
		return 0
	}
	return 200
}

func noPT(float64, bool, int) int64 {
	return 0
}
