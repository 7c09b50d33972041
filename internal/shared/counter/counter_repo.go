package counter

import (
	"context"
	"database/sql"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/connection"

	"gorm.io/gorm"
)

const (
	EmployeeCode  = "employee_code"
	PayslipNumber = "payslip_number"
)

//go:generate mockgen -source=counter_repo.go -destination=mock/counter_repo_mock.go -package=mock
type Repository interface {
	// WithTx binds the increment to tx so a rolled back caller returns its value.
	WithTx(tx *sql.Tx) Repository
	GetNextValue(ctx context.Context, organizationID string, counterType string) (int64, error)
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

func (r *repository) WithTx(tx *sql.Tx) Repository {
	return &repository{db: connection.GormTx(r.db, tx)}
}

func (r *repository) GetNextValue(ctx context.Context, organizationID string, counterType string) (int64, error) {
	var nextValue int64

	// atomic upsert and increment per organization and counter type
	err := r.db.WithContext(ctx).Raw(`
		INSERT INTO organization_counters (organization_id, counter_type, last_value, updated_at)
		VALUES (?, ?, 1, now())
		ON CONFLICT (organization_id, counter_type) DO UPDATE
		SET last_value = organization_counters.last_value + 1, updated_at = now()
		RETURNING last_value
	`, organizationID, counterType).Scan(&nextValue).Error

	if err != nil {
		return 0, err
	}

	return nextValue, nil
}
