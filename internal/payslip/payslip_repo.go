package payslip

import (
	"context"
	"database/sql"
	"time"

	paysliperrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payslip/errors"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/connection"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/tenant"

	"gorm.io/gorm"
)

type ListFilter struct {
	EmployeeID   string
	PayrollRunID string
	Month        int
	Year         int
	Status       Status
}

//go:generate mockgen -source=payslip_repo.go -destination=mock/payslip_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	FindByEmployeePeriod(ctx context.Context, organizationID, employeeID string, month, year int) (*Payslip, error)
	Create(ctx context.Context, p *Payslip) error
	Update(ctx context.Context, p *Payslip) error
	DeleteDraftsByPeriod(ctx context.Context, organizationID string, month, year int) (int64, error)
	DeleteDraft(ctx context.Context, organizationID, id string) error
	LockByPeriod(ctx context.Context, organizationID string, month, year int, at time.Time) (int64, error)
	MarkPaid(ctx context.Context, organizationID, id string, at time.Time) error
	FindAllByOrganization(ctx context.Context, organizationID string, filter ListFilter) ([]Payslip, error)
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*Payslip, error)
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

func (r *repository) FindByEmployeePeriod(ctx context.Context, organizationID, employeeID string, month, year int) (*Payslip, error) {
	var p Payslip
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID), tenant.Period(month, year)).
		Where("employee_id = ?", employeeID).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *repository) Create(ctx context.Context, p *Payslip) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(p).Error
}

// Update rewrites a DRAFT payslip; locked and paid rows are never touched.
func (r *repository) Update(ctx context.Context, p *Payslip) error {
	res := r.db.WithContext(ctx).
		Model(&Payslip{}).
		Scopes(tenant.Scope(p.OrganizationID.String())).
		Where("id = ?", p.ID).
		Where("status = ?", StatusDraft).
		Omit("Employee", "ID", "OrganizationID", "EmployeeID", "PayslipNumber", "Month", "Year", "Status", "CreatedAt").
		Select("*").
		Updates(p)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *repository) DeleteDraftsByPeriod(ctx context.Context, organizationID string, month, year int) (int64, error) {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID), tenant.Period(month, year)).
		Where("status = ?", StatusDraft).
		Delete(&Payslip{})
	return res.RowsAffected, res.Error
}

func (r *repository) DeleteDraft(ctx context.Context, organizationID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ? AND status = ?", id, StatusDraft).
		Delete(&Payslip{})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return paysliperrors.ErrPayslipNotFound
	}
	return nil
}

func (r *repository) LockByPeriod(ctx context.Context, organizationID string, month, year int, at time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&Payslip{}).
		Scopes(tenant.Scope(organizationID), tenant.Period(month, year)).
		Where("status = ?", StatusDraft).
		Updates(map[string]any{
			"status":     StatusLocked,
			"locked_at":  at,
			"updated_at": at,
		})
	return res.RowsAffected, res.Error
}

func (r *repository) MarkPaid(ctx context.Context, organizationID, id string, at time.Time) error {
	res := r.db.WithContext(ctx).
		Model(&Payslip{}).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ? AND status = ?", id, StatusLocked).
		Updates(map[string]any{
			"status":     StatusPaid,
			"paid_at":    at,
			"updated_at": at,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return paysliperrors.ErrPayslipNotLocked
	}
	return nil
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID string, filter ListFilter) ([]Payslip, error) {
	q := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(organizationID))
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.PayrollRunID != "" {
		q = q.Where("payroll_run_id = ?", filter.PayrollRunID)
	}
	if filter.Month > 0 {
		q = q.Scopes(tenant.Period(filter.Month, filter.Year))
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var rows []Payslip
	err := q.Order("year DESC, month DESC, payslip_number ASC").Find(&rows).Error
	return rows, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*Payslip, error) {
	var p Payslip
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		First(&p).Error
	if err != nil {
		return nil, err
	}
	return &p, nil
}
