package documenterrors

import (
	"net/http"

	"leavedesk/internal/shared/apperror"
)

var (
	ErrDocumentNotFound = apperror.New(
		apperror.CodeNotFound,
		"document not found",
		http.StatusNotFound,
	)
	ErrInvalidDocumentID = apperror.New(
		apperror.CodeInvalidInput,
		"invalid document id",
		http.StatusBadRequest,
	)
	ErrAttachNotAllowed = apperror.New(
		apperror.CodeForbidden,
		"only the requester may attach documents to a leave request",
		http.StatusForbidden,
	)
)
