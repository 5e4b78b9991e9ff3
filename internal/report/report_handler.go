package report

import (
	"bytes"
	"fmt"
	"net/http"
	"strconv"

	"ak-attendance/internal/shared/apperror"
	"ak-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
)

const xlsxMime = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) MonthlySummary(c *gin.Context) {
	year, errYear := strconv.Atoi(c.Query("year"))
	month, errMonth := strconv.Atoi(c.Query("month"))
	if errYear != nil || errMonth != nil {
		mapped := apperror.ToHTTP(apperror.InvalidField("Year/Month"))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	// Render ke buffer dulu supaya error tidak bocor setelah header terkirim
	var buf bytes.Buffer
	if err := h.service.WriteMonthlySummary(c.Request.Context(), year, month, &buf); err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	filename := fmt.Sprintf("attendance-%d-%02d.xlsx", year, month+1)
	c.Header("Content-Disposition", "attachment; filename="+filename)
	c.Data(http.StatusOK, xlsxMime, buf.Bytes())
}
