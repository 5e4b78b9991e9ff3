package employeeerrors

import (
	"ak-attendance/internal/shared/apperror"
	"net/http"
)

var (
	ErrEmployeeNotFound = apperror.New(
		apperror.CodeNotFound,
		"Employee not found",
		http.StatusNotFound,
	)
	ErrNameAlreadyExists = apperror.New(
		apperror.CodeConflict,
		"Employee name already exists",
		http.StatusConflict,
	)
	ErrNameTooLong = apperror.New(
		apperror.CodeInvalidInput,
		"Name must be 15 characters or less",
		http.StatusBadRequest,
	)
	ErrPinGenerationFailed = apperror.New(
		apperror.CodeInternalError,
		"Could not allocate a unique PIN",
		http.StatusInternalServerError,
	)
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
)
