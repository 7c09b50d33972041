package payrollerrors

import (
	"net/http"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/apperror"
)

var (
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
	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"month must be between 1 and 12 and year must be 2000 or later",
		http.StatusBadRequest,
	)
	ErrPayrollRunNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll run not found",
		http.StatusNotFound,
	)
	ErrPayrollRunAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"payroll run already exists for this period",
		http.StatusConflict,
	)
	ErrRunInProgress = apperror.New(
		apperror.CodeRunInProgress,
		"payroll run for this period is already being processed",
		http.StatusConflict,
	)
	ErrRunNotProcessable = apperror.New(
		apperror.CodeInvalidState,
		"payroll run is locked or cancelled and cannot be processed",
		http.StatusConflict,
	)
	ErrRunStatusChanged = apperror.New(
		apperror.CodeConflict,
		"payroll run status changed while it was being processed",
		http.StatusConflict,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"invalid payroll run status transition",
		http.StatusConflict,
	)
	ErrRunNotEditable = apperror.New(
		apperror.CodeInvalidState,
		"payroll run is locked or cancelled and cannot be edited",
		http.StatusConflict,
	)
	ErrRollbackLockedRun = apperror.New(
		apperror.CodeInvalidState,
		"locked payroll runs cannot be rolled back",
		http.StatusConflict,
	)
	ErrLoadEmployeesFailed = apperror.New(
		apperror.CodeInternalError,
		"failed to load active employees",
		http.StatusInternalServerError,
	)
)
