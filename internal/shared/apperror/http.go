package apperror

import (
	"errors"
	"net/http"
)

// HTTPError is the flattened shape handlers feed into the response envelope.
type HTTPError struct {
	Status  int
	Code    string
	Message string
	Details any
}

// ToHTTP converts any error into an HTTPError. Unknown errors become a
// generic 500 so internal details never reach the client.
func ToHTTP(err error) HTTPError {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return HTTPError{
			Status:  appErr.HTTPStatus,
			Code:    appErr.Code,
			Message: appErr.Message,
		}
	}
	return HTTPError{
		Status:  http.StatusInternalServerError,
		Code:    CodeInternalError,
		Message: "An unexpected error occurred",
	}
}
