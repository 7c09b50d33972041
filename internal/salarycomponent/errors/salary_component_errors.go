package salarycomponenterrors

import (
	"net/http"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/apperror"
)

var (
	ErrSalaryComponentNotFound = apperror.New(
		apperror.CodeNotFound,
		"salary component not found",
		http.StatusNotFound,
	)
	ErrSalaryComponentAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"salary component with the same name already exists",
		http.StatusConflict,
	)
	ErrInvalidOrganizationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid organization id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidSalaryComponent = apperror.New(
		apperror.CodeInvalidInput,
		"invalid salary component definition",
		http.StatusBadRequest,
	)
)
