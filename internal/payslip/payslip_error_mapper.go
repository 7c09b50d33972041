package payslip

import (
	"errors"
	"strings"

	paysliperrors "github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/payslip/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

// MapRepositoryError turns store errors into payslip sentinels. The payroll
// processor reuses it for per-employee failure messages.
func MapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return paysliperrors.ErrPayslipNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		switch pgErr.ConstraintName {
		case "uq_payslip_employee_period":
			return paysliperrors.ErrPayslipAlreadyExists
		case "uq_payslip_number":
			return paysliperrors.ErrPayslipNumberAlreadyExists
		}
	}

	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") && strings.Contains(errMsg, "uq_payslip_employee_period") {
		return paysliperrors.ErrPayslipAlreadyExists
	}

	return err
}
