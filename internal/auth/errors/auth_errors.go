package autherrors

import (
	"ak-attendance/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidPin = apperror.New(
		apperror.CodeUnauthorized,
		"Invalid PIN",
		http.StatusUnauthorized,
	)
	ErrPinFormat = apperror.New(
		apperror.CodeInvalidInput,
		"PIN must be exactly 4 digits",
		http.StatusBadRequest,
	)
	ErrCurrentPinMismatch = apperror.New(
		apperror.CodeUnauthorized,
		"Current PIN is incorrect",
		http.StatusUnauthorized,
	)
)
