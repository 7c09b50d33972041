package salarycomponent

import (
	"errors"
	"strings"

	salarycomponenterrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/salarycomponent/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return salarycomponenterrors.ErrSalaryComponentNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_salary_component_name" {
		return salarycomponenterrors.ErrSalaryComponentAlreadyExists
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_salary_component_name") {
		return salarycomponenterrors.ErrSalaryComponentAlreadyExists
	}

	return err
}
