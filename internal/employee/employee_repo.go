package employee

import (
	"context"
	"database/sql"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salary"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/connection"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_repo.go -destination=mock/employee_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, empl *Employee) error
	FindAllByOrganization(ctx context.Context, organizationID string) ([]Employee, error)
	FindActiveByOrganization(ctx context.Context, organizationID string) ([]Employee, error)
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*Employee, error)
	Update(ctx context.Context, empl *Employee) error
	UpdateStructure(ctx context.Context, organizationID, id string, structure *salary.Structure) error
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

func (r *repository) Create(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).Create(empl).Error
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Order("employee_code").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindActiveByOrganization(ctx context.Context, organizationID string) ([]Employee, error) {
	var empls []Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("status = ?", StatusActive).
		Order("employee_code").
		Find(&empls).Error
	return empls, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*Employee, error) {
	var empl Employee
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&empl, "id = ?", id).Error
	if err != nil {
		return nil, err
	}
	return &empl, nil
}

func (r *repository) Update(ctx context.Context, empl *Employee) error {
	return r.db.WithContext(ctx).
		Model(empl).
		Select("FullName", "Email", "Gender", "WorkState", "Status",
			"PFApplicable", "PFRestrictToCeiling", "ESICApplicable", "UpdatedAt").
		Updates(empl).Error
}

func (r *repository) UpdateStructure(ctx context.Context, organizationID, id string, structure *salary.Structure) error {
	res := r.db.WithContext(ctx).
		Model(&Employee{}).
		Scopes(tenant.Scope(organizationID)).
		Where("id = ?", id).
		Select("PayslipStructure").
		Updates(&Employee{PayslipStructure: structure})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
