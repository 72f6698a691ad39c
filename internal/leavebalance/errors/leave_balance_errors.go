package leavebalanceerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrInsufficientBalance = apperror.New(
		apperror.CodeConflict,
		"insufficient leave balance for this request",
		http.StatusConflict,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type id",
		http.StatusBadRequest,
	)
	ErrBalanceNotVisible = apperror.New(
		apperror.CodeForbidden,
		"you do not have permission to view this employee's balances",
		http.StatusForbidden,
	)
)
