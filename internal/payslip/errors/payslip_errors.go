package paysliperrors

import (
	"net/http"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/apperror"
)

var (
	ErrPayslipNotFound = apperror.New(
		apperror.CodeNotFound,
		"payslip not found",
		http.StatusNotFound,
	)
	ErrPayslipAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"payslip already exists for this employee and period",
		http.StatusConflict,
	)
	ErrPayslipNumberAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"payslip number already exists",
		http.StatusConflict,
	)
	ErrPayslipNotLocked = apperror.New(
		apperror.CodeInvalidState,
		"only locked payslips can be marked as paid",
		http.StatusConflict,
	)
	ErrInvalidPeriodFilter = apperror.New(
		apperror.CodeInvalidInput,
		"month and year must be given together",
		http.StatusBadRequest,
	)
)
