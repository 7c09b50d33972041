package payslip_test

import (
	"sync"
	"testing"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payslip"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm/schema"
)

func TestPayslip_NumberIsUniquePerOrganization(t *testing.T) {
	s, err := schema.Parse(&payslip.Payslip{}, &sync.Map{}, schema.NamingStrategy{})
	require.NoError(t, err)

	idx := s.LookIndex("uq_payslip_number")
	require.NotNil(t, idx)
	assert.Equal(t, "UNIQUE", idx.Class)

	cols := make([]string, 0, len(idx.Fields))
	for _, f := range idx.Fields {
		cols = append(cols, f.DBName)
	}
	assert.Equal(t, []string{"organization_id", "payslip_number"}, cols)
}
