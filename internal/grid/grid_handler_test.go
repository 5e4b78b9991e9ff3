package grid_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"ak-attendance/internal/attendance"
	"ak-attendance/internal/grid"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
)

func record(t *testing.T, h *grid.Handler, session, body string) *httptest.ResponseRecorder {
	t.Helper()
	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodPost, "/grid/attendance", strings.NewReader(body))
	c.Request.Header.Set("Content-Type", "application/json")
	if session != "" {
		c.Request.Header.Set("X-Grid-Session", session)
	}
	h.RecordAttendance(c)
	return w
}

func TestHandler_RecordAndCommit(t *testing.T) {
	gin.SetMode(gin.TestMode)

	var committed attendance.BatchSaveRequest
	m := grid.NewManager(func(ctx context.Context, req attendance.BatchSaveRequest) error {
		committed = req
		return nil
	}, 0)
	h := grid.NewHandler(m)

	w := record(t, h, "s1", `{"employee_id":1,"date":"2024-03-02","present":true}`)
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"pending":1`)

	// Edit kedua di sel yang sama menimpa, bukan menambah
	w = record(t, h, "s1", `{"employee_id":1,"date":"2024-03-02","present":false}`)
	assert.Contains(t, w.Body.String(), `"pending":1`)

	cw := httptest.NewRecorder()
	cc, _ := gin.CreateTestContext(cw)
	cc.Request = httptest.NewRequest(http.MethodPost, "/grid/commit", nil)
	cc.Request.Header.Set("X-Grid-Session", "s1")
	h.Commit(cc)

	assert.Equal(t, http.StatusOK, cw.Code)
	assert.Contains(t, cw.Body.String(), `"committed":1`)
	assert.Len(t, committed.Attendance, 1)
	assert.False(t, committed.Attendance[0].Present)
}

func TestHandler_CommitFailureKeepsPending(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := grid.NewManager(func(ctx context.Context, req attendance.BatchSaveRequest) error {
		return errors.New("db down")
	}, 0)
	h := grid.NewHandler(m)

	record(t, h, "s1", `{"employee_id":1,"date":"2024-03-02","present":true}`)

	cw := httptest.NewRecorder()
	cc, _ := gin.CreateTestContext(cw)
	cc.Request = httptest.NewRequest(http.MethodPost, "/grid/commit", nil)
	cc.Request.Header.Set("X-Grid-Session", "s1")
	h.Commit(cc)

	assert.Equal(t, http.StatusInternalServerError, cw.Code)
	assert.Equal(t, 1, m.Get("s1").PendingCount())
}

func TestHandler_SessionsDoNotShareBuffers(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := grid.NewManager(func(ctx context.Context, req attendance.BatchSaveRequest) error {
		return nil
	}, 0)
	h := grid.NewHandler(m)

	record(t, h, "alice", `{"employee_id":1,"date":"2024-03-02","present":true}`)
	w := record(t, h, "bob", `{"employee_id":2,"date":"2024-03-02","present":true}`)

	assert.Contains(t, w.Body.String(), `"pending":1`)
	assert.Equal(t, 1, m.Get("alice").PendingCount())
	assert.Equal(t, 1, m.Get("bob").PendingCount())
}

func TestHandler_DiscardEmptiesBuffer(t *testing.T) {
	gin.SetMode(gin.TestMode)

	m := grid.NewManager(nil, 0)
	h := grid.NewHandler(m)

	record(t, h, "s1", `{"employee_id":1,"date":"2024-03-02","present":true}`)

	dw := httptest.NewRecorder()
	dc, _ := gin.CreateTestContext(dw)
	dc.Request = httptest.NewRequest(http.MethodPost, "/grid/discard", nil)
	dc.Request.Header.Set("X-Grid-Session", "s1")
	h.Discard(dc)

	assert.Equal(t, http.StatusOK, dw.Code)
	assert.Equal(t, 0, m.Get("s1").PendingCount())
}
