package salarycomponent_test

import (
	"context"
	"testing"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salary"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salarycomponent"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func TestSalaryComponentRepository_CreateKeepsFalseFlags(t *testing.T) {
	sqlDB, _, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{
		DryRun:                 true,
		SkipDefaultTransaction: true,
	})
	require.NoError(t, err)

	got := map[string]any{}
	require.NoError(t, db.Callback().Create().After("gorm:create").Register("test:capture_values", func(tx *gorm.DB) {
		if c, ok := tx.Statement.Clauses["VALUES"]; ok {
			if values, ok := c.Expression.(clause.Values); ok && len(values.Values) > 0 {
				for i, col := range values.Columns {
					got[col.Name] = values.Values[0][i]
				}
			}
		}
	}))

	component := &salarycomponent.SalaryComponent{
		ID:              uuid.New(),
		OrganizationID:  uuid.New(),
		Name:            "Meal Voucher",
		Kind:            salary.KindEarning,
		CalculationMode: salary.ModeFixed,
		DefaultValue:    2200,
		Taxable:         false,
		Enabled:         false,
	}

	err = salarycomponent.NewRepository(db).Create(context.Background(), component)

	require.NoError(t, err)
	for _, col := range []string{"taxable", "enabled", "statutory"} {
		v, ok := got[col]
		require.True(t, ok, "column %s not inserted", col)
		assert.Equal(t, false, v, col)
	}
	assert.False(t, component.Taxable)
	assert.False(t, component.Enabled)
}
