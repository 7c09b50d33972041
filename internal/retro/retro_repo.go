package retro

import (
	"context"
	"database/sql"
	"time"

	retroerrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/retro/errors"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/connection"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/tenant"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type ListFilter struct {
	EmployeeID string
	Status     Status
}

//go:generate mockgen -source=retro_repo.go -destination=mock/retro_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, adj *RetroAdjustment) error
	FindAllByOrganization(ctx context.Context, organizationID string, filter ListFilter) ([]RetroAdjustment, error)
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*RetroAdjustment, error)
	FindPendingForEmployee(ctx context.Context, organizationID, employeeID string, month, year int) ([]RetroAdjustment, error)
	MarkApplied(ctx context.Context, organizationID string, ids []uuid.UUID, month, year int) error
	ResetAppliedForPeriod(ctx context.Context, organizationID string, month, year int) (int64, error)
	ResetAppliedForEmployeePeriod(ctx context.Context, organizationID, employeeID string, month, year int) (int64, error)
	Cancel(ctx context.Context, organizationID, id string, actorID uuid.UUID) error
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

func (r *repository) Create(ctx context.Context, adj *RetroAdjustment) error {
	return r.db.WithContext(ctx).Omit("Employee").Create(adj).Error
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID string, filter ListFilter) ([]RetroAdjustment, error) {
	q := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(organizationID))
	if filter.EmployeeID != "" {
		q = q.Where("employee_id = ?", filter.EmployeeID)
	}
	if filter.Status != "" {
		q = q.Where("status = ?", filter.Status)
	}

	var adjs []RetroAdjustment
	err := q.Order("created_at DESC").Find(&adjs).Error
	return adjs, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*RetroAdjustment, error) {
	var adj RetroAdjustment
	err := r.db.WithContext(ctx).
		Preload("Employee").
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		First(&adj).Error
	if err != nil {
		return nil, err
	}
	return &adj, nil
}

// FindPendingForEmployee returns pending adjustments whose target period is at or
// before (month, year), oldest first.
func (r *repository) FindPendingForEmployee(ctx context.Context, organizationID, employeeID string, month, year int) ([]RetroAdjustment, error) {
	var adjs []RetroAdjustment
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusPending).
		Where("(target_year * 12 + target_month) <= ?", year*12+month).
		Order("created_at ASC").
		Find(&adjs).Error
	return adjs, err
}

// MarkApplied stamps the adjustments with the run period. It fails when any of them
// is no longer pending so a concurrent consumer cannot apply one twice.
func (r *repository) MarkApplied(ctx context.Context, organizationID string, ids []uuid.UUID, month, year int) error {
	if len(ids) == 0 {
		return nil
	}
	res := r.db.WithContext(ctx).
		Model(&RetroAdjustment{}).
		Scopes(tenant.Scope(organizationID)).
		Where("id IN ?", ids).
		Where("status = ?", StatusPending).
		Updates(map[string]any{
			"status":        StatusApplied,
			"applied_month": month,
			"applied_year":  year,
			"updated_at":    time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected != int64(len(ids)) {
		return retroerrors.ErrRetroAdjustmentAlreadyConsumed
	}
	return nil
}

// ResetAppliedForPeriod returns every adjustment applied in (month, year) to PENDING.
func (r *repository) ResetAppliedForPeriod(ctx context.Context, organizationID string, month, year int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&RetroAdjustment{}).
		Scopes(tenant.Scope(organizationID)).
		Where("status = ?", StatusApplied).
		Where("applied_month = ? AND applied_year = ?", month, year).
		Updates(map[string]any{
			"status":        StatusPending,
			"applied_month": gorm.Expr("NULL"),
			"applied_year":  gorm.Expr("NULL"),
			"updated_at":    time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

// ResetAppliedForEmployeePeriod releases one employee's adjustments so a rewrite
// of that employee's draft payslip picks them up again.
func (r *repository) ResetAppliedForEmployeePeriod(ctx context.Context, organizationID, employeeID string, month, year int) (int64, error) {
	res := r.db.WithContext(ctx).
		Model(&RetroAdjustment{}).
		Scopes(tenant.Scope(organizationID)).
		Where("employee_id = ?", employeeID).
		Where("status = ?", StatusApplied).
		Where("applied_month = ? AND applied_year = ?", month, year).
		Updates(map[string]any{
			"status":        StatusPending,
			"applied_month": gorm.Expr("NULL"),
			"applied_year":  gorm.Expr("NULL"),
			"updated_at":    time.Now().UTC(),
		})
	return res.RowsAffected, res.Error
}

func (r *repository) Cancel(ctx context.Context, organizationID, id string, actorID uuid.UUID) error {
	res := r.db.WithContext(ctx).
		Model(&RetroAdjustment{}).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		Where("status = ?", StatusPending).
		Updates(map[string]any{
			"status":       StatusCancelled,
			"cancelled_by": actorID,
			"updated_at":   time.Now().UTC(),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return retroerrors.ErrRetroAdjustmentNotPending
	}
	return nil
}
