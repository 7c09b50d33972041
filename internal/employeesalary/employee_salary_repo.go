package employeesalary

import (
	"context"
	"database/sql"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/connection"

	"gorm.io/gorm"
)

//go:generate mockgen -source=employee_salary_repo.go -destination=mock/employee_salary_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *sql.Tx) Repository
	Create(ctx context.Context, revision *EmployeeSalary) error
	FindAllByOrganization(ctx context.Context, organizationID, employeeID string) ([]EmployeeSalary, error)
	FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*EmployeeSalary, error)
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

func (r *repository) Create(ctx context.Context, revision *EmployeeSalary) error {
	return r.db.WithContext(ctx).Create(revision).Error
}

// FindAllByOrganization lists revisions newest first; employeeID narrows to one employee when set.
func (r *repository) FindAllByOrganization(ctx context.Context, organizationID, employeeID string) ([]EmployeeSalary, error) {
	var revisions []EmployeeSalary
	q := r.db.WithContext(ctx).
		Table("employee_salaries").
		Select("employee_salaries.*, employees.full_name AS employee_name").
		Joins("JOIN employees ON employees.id = employee_salaries.employee_id").
		Where("employee_salaries.organization_id = ?", organizationID)
	if employeeID != "" {
		q = q.Where("employee_salaries.employee_id = ?", employeeID)
	}
	err := q.Order("employees.full_name ASC").
		Order("employee_salaries.effective_date DESC").
		Order("employee_salaries.created_at DESC").
		Find(&revisions).Error
	return revisions, err
}

func (r *repository) FindByIDAndOrganization(ctx context.Context, organizationID, id string) (*EmployeeSalary, error) {
	var revision EmployeeSalary
	err := r.db.WithContext(ctx).
		Table("employee_salaries").
		Select("employee_salaries.*, employees.full_name AS employee_name").
		Joins("JOIN employees ON employees.id = employee_salaries.employee_id").
		Where("employee_salaries.id = ?", id).
		Where("employee_salaries.organization_id = ?", organizationID).
		First(&revision).Error
	if err != nil {
		return nil, err
	}
	return &revision, nil
}
