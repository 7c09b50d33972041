package employeesalary

import (
	"errors"

	employeeerrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/employee/errors"
	employeesalaryerrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/employeesalary/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

const (
	pgUniqueViolation     = "23505"
	pgForeignKeyViolation = "23503"
)

// mapRepositoryError turns revision-table failures into API sentinels. A
// revision pointing at a deleted employee surfaces as employee not found.
func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeesalaryerrors.ErrEmployeeSalaryNotFound
	}

	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch {
	case pgErr.Code == pgUniqueViolation && pgErr.ConstraintName == "uq_employee_salary_effective":
		return employeesalaryerrors.ErrSalaryEffectiveDateAlreadyExists
	case pgErr.Code == pgForeignKeyViolation && pgErr.ConstraintName == "fk_employee_salary_employee":
		return employeeerrors.ErrEmployeeNotFound
	}
	return err
}
