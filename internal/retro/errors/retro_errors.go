package retroerrors

import (
	"net/http"

	"github.com/VISAM2529/hr-and-payroll-mgt-system-sub004/internal/shared/apperror"
)

var (
	ErrRetroAdjustmentNotFound = apperror.New(
		apperror.CodeNotFound,
		"retro adjustment not found",
		http.StatusNotFound,
	)
	ErrRetroAdjustmentNotPending = apperror.New(
		apperror.CodeInvalidState,
		"only pending retro adjustments can be cancelled",
		http.StatusConflict,
	)
	ErrRetroAdjustmentAlreadyConsumed = apperror.New(
		apperror.CodeConflict,
		"retro adjustment was already applied by another run",
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
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
)
