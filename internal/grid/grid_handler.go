package grid

import (
	"net/http"

	"ak-attendance/internal/attendance"
	"ak-attendance/internal/shared/apperror"
	"ak-attendance/internal/shared/response"

	"github.com/gin-gonic/gin"
)

// Handler exposes the draft buffer over HTTP: edits accumulate per
// session and only hit the store when the session commits (or the idle
// timer fires server-side).
type Handler struct {
	manager *Manager
}

func NewHandler(manager *Manager) *Handler {
	return &Handler{manager: manager}
}

// sessionID scopes a draft buffer. Lebih dari satu tab boleh share satu
// session asal header-nya sama.
func sessionID(c *gin.Context) string {
	if sid := c.GetHeader("X-Grid-Session"); sid != "" {
		return sid
	}
	return "default"
}

func (h *Handler) RecordAttendance(c *gin.Context) {
	var req attendance.AttendanceUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	acc := h.manager.Get(sessionID(c))
	acc.RecordAttendance(req)
	response.Success(c, http.StatusOK, gin.H{"pending": acc.PendingCount()}, nil)
}

func (h *Handler) RecordAdvance(c *gin.Context) {
	var req attendance.AdvanceUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	acc := h.manager.Get(sessionID(c))
	acc.RecordAdvance(req)
	response.Success(c, http.StatusOK, gin.H{"pending": acc.PendingCount()}, nil)
}

func (h *Handler) RecordMonthlyAdvance(c *gin.Context) {
	var req attendance.MonthlyAdvanceUpdate
	if err := c.ShouldBindJSON(&req); err != nil {
		mapped := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, mapped.Status, mapped.Code, mapped.Message, nil)
		return
	}

	acc := h.manager.Get(sessionID(c))
	acc.RecordMonthlyAdvance(req)
	response.Success(c, http.StatusOK, gin.H{"pending": acc.PendingCount()}, nil)
}

// GetPending lets the UI warn before navigation while edits are buffered.
func (h *Handler) GetPending(c *gin.Context) {
	acc := h.manager.Get(sessionID(c))
	response.Success(c, http.StatusOK, gin.H{
		"pending": acc.PendingCount(),
		"changes": acc.Changes(),
	}, nil)
}

func (h *Handler) Commit(c *gin.Context) {
	acc := h.manager.Get(sessionID(c))
	pending := acc.PendingCount()

	if err := acc.Commit(c.Request.Context()); err != nil {
		// Edits tetap tertahan di buffer, user tinggal retry
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, gin.H{"pending": acc.PendingCount()})
		return
	}
	response.Success(c, http.StatusOK, gin.H{"committed": pending}, nil)
}

func (h *Handler) Discard(c *gin.Context) {
	h.manager.Drop(sessionID(c))
	response.Success(c, http.StatusOK, gin.H{"pending": 0}, nil)
}
