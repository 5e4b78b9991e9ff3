package expenseerrors

import (
	"ak-attendance/internal/shared/apperror"
	"net/http"
)

var (
	ErrExpenseNotFound = apperror.New(
		apperror.CodeNotFound,
		"Expense not found",
		http.StatusNotFound,
	)
	ErrPresetNotFound = apperror.New(
		apperror.CodeNotFound,
		"Expense preset not found",
		http.StatusNotFound,
	)
	ErrInvalidDate = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid date, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidAmount = apperror.New(
		apperror.CodeInvalidInput,
		"Amount must be a non-negative number",
		http.StatusBadRequest,
	)
	ErrNameRequired = apperror.New(
		apperror.CodeInvalidInput,
		"Expense name is required",
		http.StatusBadRequest,
	)
)
