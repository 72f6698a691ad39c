package employeeerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"employee not found",
		http.StatusNotFound,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid employee id",
		http.StatusBadRequest,
	)
	ErrInvalidManagerID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid manager id",
		http.StatusBadRequest,
	)
	ErrManagerNotFound = apperror.New(
		apperror.CodeInvalidInput,
		"referenced manager does not exist",
		http.StatusBadRequest,
	)
	ErrEmailAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"an employee with this email already exists",
		http.StatusConflict,
	)
	ErrUnknownRole = apperror.New(
		apperror.CodeInvalidInput,
		"unknown role",
		http.StatusBadRequest,
	)
	ErrSelfManager = apperror.New(
		apperror.CodeInvalidInput,
		"an employee cannot be their own manager",
		http.StatusBadRequest,
	)
)
