package payroll

import (
	"errors"
	"strings"

	payrollerrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payroll/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return payrollerrors.ErrPayrollRunNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "uq_payroll_run_period" {
		return payrollerrors.ErrPayrollRunAlreadyExists
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_payroll_run_period") {
		return payrollerrors.ErrPayrollRunAlreadyExists
	}

	return err
}
