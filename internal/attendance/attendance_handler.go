package attendance

import (
	"net/http"
	"strconv"

	"ak-attendance/internal/shared/apperror"
	"ak-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
)

type Handler struct {
	service Service
}

func NewHandler(service Service) *Handler {
	return &Handler{service: service}
}

func writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetMonthly(c *gin.Context) {
	year, err := strconv.Atoi(c.Query("year"))
	if err != nil {
		writeServiceError(c, apperror.InvalidField("Year"))
		return
	}
	month, err := strconv.Atoi(c.Query("month"))
	if err != nil {
		writeServiceError(c, apperror.InvalidField("Month"))
		return
	}

	resp, err := h.service.GetMonthlyData(c.Request.Context(), year, month)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Toggle(c *gin.Context) {
	var req AttendanceUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	if err := h.service.ToggleAttendance(c.Request.Context(), req); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"saved": true}, nil)
}

func (h *Handler) LogAdvance(c *gin.Context) {
	var req AdvanceUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	if err := h.service.LogAdvance(c.Request.Context(), req); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"saved": true}, nil)
}

func (h *Handler) LogMonthlyAdvance(c *gin.Context) {
	var req MonthlyAdvanceUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	if err := h.service.LogMonthlyAdvance(c.Request.Context(), req); err != nil {
		writeServiceError(c, err)
		return
	}
	response.Success(c, http.StatusOK, gin.H{"saved": true}, nil)
}

func (h *Handler) SaveBatch(c *gin.Context) {
	var req BatchSaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	if err := h.service.SaveBatch(c.Request.Context(), req); err != nil {
		writeServiceError(c, err)
		return
	}

	total := len(req.Attendance) + len(req.Advances) + len(req.MonthlyAdvances)
	response.Success(c, http.StatusOK, gin.H{"committed": total}, nil)
}
