package payroll

import (
	"context"
	"database/sql"

	payrollerrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payroll/errors"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/connection"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/tenant"

	"gorm.io/gorm"
)

type ListFilter struct {
	Year   int
	Status RunStatus
}

//go:generate mockgen -source=payroll_repo.go -destination=mock/payroll_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, run *PayrollRun) error
	FindAllByOrganization(ctx context.Context, organizationID string, filter ListFilter) ([]PayrollRun, error)
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*PayrollRun, error)
	FindByPeriod(ctx context.Context, organizationID string, month, year int) (*PayrollRun, error)
	Update(ctx context.Context, run *PayrollRun) error
	// UpdateIfStatus saves run only while the stored row still has status expected.
	UpdateIfStatus(ctx context.Context, run *PayrollRun, expected RunStatus) error
	Delete(ctx context.Context, organizationID, id string) error
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

func (r *repository) Create(ctx context.Context, run *PayrollRun) error {
	return r.db.WithContext(ctx).Create(run).Error
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID string, filter ListFilter) ([]PayrollRun, error) {
	q := r.db.WithContext(ctx).
		Omit("logs").
		Scopes(tenant.Scope(organizationID))
	if filter.Year > 0 {
		q = q.Where("year = ?", filter.Year)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var runs []PayrollRun
	err := q.Order("year DESC, month DESC").Find(&runs).Error
	return runs, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*PayrollRun, error) {
	var run PayrollRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *repository) FindByPeriod(ctx context.Context, organizationID string, month, year int) (*PayrollRun, error) {
	var run PayrollRun
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID), tenant.Period(month, year)).
		First(&run).Error
	if err != nil {
		return nil, err
	}
	return &run, nil
}

func (r *repository) Update(ctx context.Context, run *PayrollRun) error {
	return r.db.WithContext(ctx).Save(run).Error
}

func (r *repository) UpdateIfStatus(ctx context.Context, run *PayrollRun, expected RunStatus) error {
	res := r.db.WithContext(ctx).
		Model(run).
		Where("status = ?", expected).
		Select("*").
		Omit("id", "organization_id", "created_at").
		Updates(run)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return payrollerrors.ErrRunStatusChanged
	}
	return nil
}

func (r *repository) Delete(ctx context.Context, organizationID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		Delete(&PayrollRun{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
