package attendanceerrors

import (
	"ak-attendance/internal/shared/apperror"
	"net/http"
)

var (
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidMultiplier = apperror.New(
		apperror.CodeInvalidInput,
		"Multiplier must be one of 0.5, 1.0, 1.5, 2.0, 3.0",
		http.StatusBadRequest,
	)
	ErrInvalidMonth = apperror.New(
		apperror.CodeInvalidInput,
		"Month must be between 0 and 11",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Amount must be a number",
		http.StatusBadRequest,
	)
	ErrBatchCommitFailed = apperror.New(
		apperror.CodeCommitFailed,
		"Batch save failed, nothing was applied",
		http.StatusInternalServerError,
	)
	ErrEmptyBatch = apperror.New(
		apperror.CodeInvalidInput,
		"Batch contains no changes",
		http.StatusBadRequest,
	)
)
