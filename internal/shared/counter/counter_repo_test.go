package counter_test

import (
	"context"
	"testing"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/counter"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

func TestRepository_GetNextValueInsideTx(t *testing.T) {
	sqlDB, mock, err := sqlmock.New()
	require.NoError(t, err)
	defer sqlDB.Close()

	db, err := gorm.Open(postgres.New(postgres.Config{Conn: sqlDB}), &gorm.Config{SkipDefaultTransaction: true})
	require.NoError(t, err)

	mock.ExpectBegin()
	mock.ExpectQuery(`INSERT INTO organization_counters`).
		WithArgs("org-1", counter.PayslipNumber).
		WillReturnRows(sqlmock.NewRows([]string{"last_value"}).AddRow(int64(12)))
	mock.ExpectRollback()

	tx, err := sqlDB.Begin()
	require.NoError(t, err)

	next, err := counter.NewRepository(db).WithTx(tx).GetNextValue(context.Background(), "org-1", counter.PayslipNumber)
	require.NoError(t, err)
	require.NoError(t, tx.Rollback())

	assert.Equal(t, int64(12), next)
	assert.NoError(t, mock.ExpectationsWereMet())
}
