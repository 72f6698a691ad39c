package notificationerrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrNotificationNotFound = apperror.New(
		apperror.CodeNotFound,
		"notification not found",
		http.StatusNotFound,
	)
	ErrInvalidNotificationID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid notification id",
		http.StatusBadRequest,
	)
)
