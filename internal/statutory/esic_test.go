package statutory_test

import (
	"math"
	"testing"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/statutory"

	"github.com/stretchr/testify/assert"
)

func TestCalculateESIC(t *testing.T) {
	tests := []struct {
		name       string
		gross      float64
		applicable bool
		want       statutory.ESICResult
	}{
		{name: "just above an exact amount rounds up", gross: 20001, applicable: true, want: statutory.ESICResult{Eligible: true, EmployeeShare: 151, EmployerShare: 651}},
		{name: "exact amounts stay", gross: 20000, applicable: true, want: statutory.ESICResult{Eligible: true, EmployeeShare: 150, EmployerShare: 650}},
		{name: "ceiling is inclusive", gross: 21000, applicable: true, want: statutory.ESICResult{Eligible: true, EmployeeShare: 158, EmployerShare: 683}},
		{name: "above ceiling", gross: 21001, applicable: true, want: statutory.ESICResult{}},
		{name: "half units round up", gross: 15000, applicable: true, want: statutory.ESICResult{Eligible: true, EmployeeShare: 113, EmployerShare: 488}},
		{name: "not applicable", gross: 15000, applicable: false, want: statutory.ESICResult{}},
		{name: "invalid gross treated as zero", gross: math.Inf(1), applicable: true, want: statutory.ESICResult{Eligible: true}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, statutory.CalculateESIC(tt.gross, tt.applicable))
		})
	}
}

func TestCalculateESIC_IneligibleMeansZeroShares(t *testing.T) {
	for gross := 21000.5; gross < 100000; gross += 1234.5 {
		got := statutory.CalculateESIC(gross, true)
		assert.False(t, got.Eligible)
		assert.Zero(t, got.EmployeeShare)
		assert.Zero(t, got.EmployerShare)
	}
}
