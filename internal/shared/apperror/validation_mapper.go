package apperror

import (
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

func RequiredField(field string) *AppError {
	return New(
		CodeInvalidInput,
		fmt.Sprintf("%s is required", field),
		http.StatusBadRequest,
	)
}

func InvalidField(field string) *AppError {
	return New(
		CodeInvalidInput,
		fmt.Sprintf("%s is invalid", field),
		http.StatusBadRequest,
	)
}

// MapValidationError turns the first binding failure into an AppError with
// a human readable field name.
func MapValidationError(err error) error {
	if errs, ok := err.(validator.ValidationErrors); ok {
		e := errs[0]
		field := formatFieldName(e.Field())

		switch e.Tag() {
		case "required":
			return RequiredField(field)
		default:
			return InvalidField(field)
		}
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
}
