package salaryerrors

import (
	"net/http"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/apperror"
)

var (
	ErrMalformedStructure = apperror.New(
		apperror.CodeUnprocessable,
		"salary structure is malformed",
		http.StatusUnprocessableEntity,
	)
	ErrMissingStructure = apperror.New(
		apperror.CodeUnprocessable,
		"employee has no salary structure",
		http.StatusUnprocessableEntity,
	)
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"working days in month must be positive",
		http.StatusBadRequest,
	)
)
