package projecterrors

import (
	"ak-attendance/internal/shared/apperror"
	"net/http"
)

var (
	ErrClientNotFound = apperror.New(
		apperror.CodeNotFound,
		"Project site not found",
		http.StatusNotFound,
	)
	ErrClientNameExists = apperror.New(
		apperror.CodeConflict,
		"Project site with this name already exists",
		http.StatusConflict,
	)
	ErrNameTooLong = apperror.New(
		apperror.CodeInvalidInput,
		"Name is required and max 15 chars",
		http.StatusBadRequest,
	)
	ErrLocationTooLong = apperror.New(
		apperror.CodeInvalidInput,
		"Location is required and max 15 chars",
		http.StatusBadRequest,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidClientID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid client ID",
		http.StatusBadRequest,
	)
)
