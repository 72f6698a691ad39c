package leavetypeerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave type not found",
		http.StatusNotFound,
	)
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type id",
		http.StatusBadRequest,
	)
	ErrLeaveTypeNameExists = apperror.New(
		apperror.CodeConflict,
		"a leave type with this name already exists",
		http.StatusConflict,
	)
	ErrLeaveTypeInUse = apperror.New(
		apperror.CodeConflict,
		"leave type is referenced by existing leave requests",
		http.StatusConflict,
	)
)
