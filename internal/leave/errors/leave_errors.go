package leaveerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrInvalidLeaveID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave id",
		http.StatusBadRequest,
	)
	ErrInvalidActorID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid actor id",
		http.StatusBadRequest,
	)
	ErrInvalidLeaveTypeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid leave type id",
		http.StatusBadRequest,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrLeaveOverlap = apperror.New(
		apperror.CodeConflict,
		"leave already exists in overlapping period",
		http.StatusConflict,
	)
	ErrLeaveNotFound = apperror.New(
		apperror.CodeNotFound,
		"leave not found",
		http.StatusNotFound,
	)
	ErrInvalidStatusTransition = apperror.New(
		apperror.CodeInvalidState,
		"leave is not in a state that allows this transition",
		http.StatusConflict,
	)
	ErrApprovalNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"you do not have permission to review leave requests",
		http.StatusForbidden,
	)
	ErrSelfReview = apperror.New(
		apperror.CodeForbidden,
		"you cannot review your own leave request",
		http.StatusForbidden,
	)
	ErrNotRequester = apperror.New(
		apperror.CodeForbidden,
		"only the requester may perform this action",
		http.StatusForbidden,
	)
	ErrDeleteNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"you do not have permission to delete this leave request",
		http.StatusForbidden,
	)
)
