package salarycomponent

import (
	"context"
	"database/sql"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/connection"
	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/tenant"

	"gorm.io/gorm"
)

//go:generate mockgen -source=salary_component_repo.go -destination=mock/salary_component_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, component *SalaryComponent) error
	FindAllByOrganization(ctx context.Context, organizationID string) ([]SalaryComponent, error)
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*SalaryComponent, error)
	FindByIDs(ctx context.Context, organizationID string, ids []string) ([]SalaryComponent, error)
	Update(ctx context.Context, component *SalaryComponent) error
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

func (r *repository) Create(ctx context.Context, component *SalaryComponent) error {
	return r.db.WithContext(ctx).Create(component).Error
}

func (r *repository) FindAllByOrganization(ctx context.Context, organizationID string) ([]SalaryComponent, error) {
	var components []SalaryComponent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Order("kind ASC, display_order ASC, name ASC").
		Find(&components).Error
	return components, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*SalaryComponent, error) {
	var component SalaryComponent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		First(&component, "id = ?", id).Error
	return &component, err
}

func (r *repository) FindByIDs(ctx context.Context, organizationID string, ids []string) ([]SalaryComponent, error) {
	var components []SalaryComponent
	err := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Where("id IN ?", ids).
		Order("display_order ASC, name ASC").
		Find(&components).Error
	return components, err
}

func (r *repository) Update(ctx context.Context, component *SalaryComponent) error {
	return r.db.WithContext(ctx).Save(component).Error
}

func (r *repository) Delete(ctx context.Context, organizationID, id string) error {
	res := r.db.WithContext(ctx).
		Scopes(tenant.Scope(organizationID)).
		Delete(&SalaryComponent{}, "id = ?", id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}
