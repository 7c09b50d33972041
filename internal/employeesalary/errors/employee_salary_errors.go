package employeesalaryerrors

import (
	"net/http"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/apperror"
)

var (
	ErrSalaryEffectiveDateAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Salary for this employee and effective date already exists",
		http.StatusConflict,
	)
	ErrEmployeeSalaryNotFound = apperror.New(
		apperror.CodeNotFound,
		"Salary revision not found",
		http.StatusNotFound,
	)
	ErrInvalidEffectiveDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid effective_date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid actor ID",
		http.StatusBadRequest,
	)
	ErrComponentNotFound = apperror.New(
		apperror.CodeUnprocessable,
		"One or more salary components do not exist in this organization",
		http.StatusUnprocessableEntity,
	)
	ErrComponentDisabled = apperror.New(
		apperror.CodeUnprocessable,
		"Disabled salary components cannot be assigned",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidPreviewPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"month must be 1-12 and year must be positive",
		http.StatusBadRequest,
	)
)
