// Package grid buffers attendance edits so a whole month of changes can
// be committed in one transaction instead of one request per cell.
package grid

import (
	"context"
	"sort"
	"sync"
	"time"

	"ak-attendance/internal/attendance"

	"go.uber.org/zap"
)

// DefaultIdleTimeout is how long an editing session may sit untouched
// before its buffered edits are committed automatically.
const DefaultIdleTimeout = 5 * time.Minute

type cellKey struct {
	EmployeeID uint
	Date       string
}

type monthKey struct {
	EmployeeID uint
	Year       int
	Month      int
}

// CommitFunc applies a snapshot of buffered edits atomically.
type CommitFunc func(ctx context.Context, req attendance.BatchSaveRequest) error

// Accumulator collects uncommitted grid edits for one editing session.
// Entries shadow the stored values for the same key; recording the same
// key twice just overwrites the pending entry.
type Accumulator struct {
	mu              sync.Mutex
	attendanceEdits map[cellKey]attendance.AttendanceUpdate
	advanceEdits    map[cellKey]attendance.AdvanceUpdate
	monthlyEdits    map[monthKey]attendance.MonthlyAdvanceUpdate

	commit      CommitFunc
	idleTimeout time.Duration
	timer       *time.Timer
	logger      *zap.Logger

	// onIdle runs after a successful idle auto-commit so the owner can
	// retire the session. Set once before the accumulator is shared.
	onIdle func()
}

// NewAccumulator creates an empty buffer. idleTimeout <= 0 disables the
// inactivity auto-commit; callers then drive Commit themselves.
func NewAccumulator(commit CommitFunc, idleTimeout time.Duration) *Accumulator {
	return &Accumulator{
		attendanceEdits: make(map[cellKey]attendance.AttendanceUpdate),
		advanceEdits:    make(map[cellKey]attendance.AdvanceUpdate),
		monthlyEdits:    make(map[monthKey]attendance.MonthlyAdvanceUpdate),
		commit:          commit,
		idleTimeout:     idleTimeout,
		logger:          zap.L().Named("grid.accumulator"),
	}
}

func (a *Accumulator) RecordAttendance(u attendance.AttendanceUpdate) {
	a.mu.Lock()
	a.attendanceEdits[cellKey{u.EmployeeID, u.Date}] = u
	a.resetTimerLocked()
	a.mu.Unlock()
}

func (a *Accumulator) RecordAdvance(u attendance.AdvanceUpdate) {
	a.mu.Lock()
	a.advanceEdits[cellKey{u.EmployeeID, u.Date}] = u
	a.resetTimerLocked()
	a.mu.Unlock()
}

func (a *Accumulator) RecordMonthlyAdvance(u attendance.MonthlyAdvanceUpdate) {
	a.mu.Lock()
	a.monthlyEdits[monthKey{u.EmployeeID, u.Year, u.Month}] = u
	a.resetTimerLocked()
	a.mu.Unlock()
}

// Attendance returns the pending edit shadowing (employeeID, date), if any.
func (a *Accumulator) Attendance(employeeID uint, date string) (attendance.AttendanceUpdate, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	u, ok := a.attendanceEdits[cellKey{employeeID, date}]
	return u, ok
}

// Advance returns the pending advance edit for (employeeID, date), if any.
func (a *Accumulator) Advance(employeeID uint, date string) (attendance.AdvanceUpdate, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()
	u, ok := a.advanceEdits[cellKey{employeeID, date}]
	return u, ok
}

// PendingCount is the number of keys that would be written on commit.
func (a *Accumulator) PendingCount() int {
	a.mu.Lock()
	defer a.mu.Unlock()
	return len(a.attendanceEdits) + len(a.advanceEdits) + len(a.monthlyEdits)
}

// Changes snapshots the buffer as a batch request, in a stable order so
// commits are reproducible.
func (a *Accumulator) Changes() attendance.BatchSaveRequest {
	a.mu.Lock()
	defer a.mu.Unlock()
	return a.changesLocked()
}

func (a *Accumulator) changesLocked() attendance.BatchSaveRequest {
	req := attendance.BatchSaveRequest{
		Attendance:      make([]attendance.AttendanceUpdate, 0, len(a.attendanceEdits)),
		Advances:        make([]attendance.AdvanceUpdate, 0, len(a.advanceEdits)),
		MonthlyAdvances: make([]attendance.MonthlyAdvanceUpdate, 0, len(a.monthlyEdits)),
	}

	for _, u := range a.attendanceEdits {
		req.Attendance = append(req.Attendance, u)
	}
	sort.Slice(req.Attendance, func(i, j int) bool {
		if req.Attendance[i].Date != req.Attendance[j].Date {
			return req.Attendance[i].Date < req.Attendance[j].Date
		}
		return req.Attendance[i].EmployeeID < req.Attendance[j].EmployeeID
	})

	for _, u := range a.advanceEdits {
		req.Advances = append(req.Advances, u)
	}
	sort.Slice(req.Advances, func(i, j int) bool {
		if req.Advances[i].Date != req.Advances[j].Date {
			return req.Advances[i].Date < req.Advances[j].Date
		}
		return req.Advances[i].EmployeeID < req.Advances[j].EmployeeID
	})

	for _, u := range a.monthlyEdits {
		req.MonthlyAdvances = append(req.MonthlyAdvances, u)
	}
	sort.Slice(req.MonthlyAdvances, func(i, j int) bool {
		return req.MonthlyAdvances[i].EmployeeID < req.MonthlyAdvances[j].EmployeeID
	})

	return req
}

// Commit pushes a snapshot of the buffer through the CommitFunc. On
// success only the snapshotted entries are dropped: a cell edited again
// while the commit was in flight was never written and stays pending.
// On failure every pending edit stays put so the user can retry. Either
// way the inactivity timer is cancelled — a retry only arms it again by
// making another edit.
func (a *Accumulator) Commit(ctx context.Context) error {
	a.mu.Lock()
	attSnap := make(map[cellKey]attendance.AttendanceUpdate, len(a.attendanceEdits))
	for k, v := range a.attendanceEdits {
		attSnap[k] = v
	}
	advSnap := make(map[cellKey]attendance.AdvanceUpdate, len(a.advanceEdits))
	for k, v := range a.advanceEdits {
		advSnap[k] = v
	}
	monSnap := make(map[monthKey]attendance.MonthlyAdvanceUpdate, len(a.monthlyEdits))
	for k, v := range a.monthlyEdits {
		monSnap[k] = v
	}
	req := a.changesLocked()
	a.stopTimerLocked()
	a.mu.Unlock()

	if req.Empty() {
		return nil
	}

	if err := a.commit(ctx, req); err != nil {
		a.logger.Warn("commit failed, keeping pending edits",
			zap.Int("pending", len(req.Attendance)+len(req.Advances)+len(req.MonthlyAdvances)),
			zap.Error(err),
		)
		return err
	}

	// Buang hanya entri yang ikut ter-commit; edit baru yang masuk
	// selama commit berjalan tetap di buffer.
	a.mu.Lock()
	for k, v := range attSnap {
		if cur, ok := a.attendanceEdits[k]; ok && cur == v {
			delete(a.attendanceEdits, k)
		}
	}
	for k, v := range advSnap {
		if cur, ok := a.advanceEdits[k]; ok && cur == v {
			delete(a.advanceEdits, k)
		}
	}
	for k, v := range monSnap {
		if cur, ok := a.monthlyEdits[k]; ok && cur == v {
			delete(a.monthlyEdits, k)
		}
	}
	a.mu.Unlock()
	return nil
}

// Discard drops every pending edit without writing anything.
func (a *Accumulator) Discard() {
	a.mu.Lock()
	a.clearLocked()
	a.stopTimerLocked()
	a.mu.Unlock()
}

func (a *Accumulator) clearLocked() {
	a.attendanceEdits = make(map[cellKey]attendance.AttendanceUpdate)
	a.advanceEdits = make(map[cellKey]attendance.AdvanceUpdate)
	a.monthlyEdits = make(map[monthKey]attendance.MonthlyAdvanceUpdate)
}

// resetTimerLocked re-arms the single-shot inactivity timer. Setiap edit
// menggeser deadline auto-save 5 menit ke depan.
func (a *Accumulator) resetTimerLocked() {
	if a.idleTimeout <= 0 {
		return
	}
	if a.timer != nil {
		a.timer.Stop()
	}
	a.timer = time.AfterFunc(a.idleTimeout, func() {
		if err := a.Commit(context.Background()); err != nil {
			a.logger.Error("idle auto-commit failed", zap.Error(err))
			return
		}
		if a.onIdle != nil {
			a.onIdle()
		}
	})
}

func (a *Accumulator) stopTimerLocked() {
	if a.timer != nil {
		a.timer.Stop()
		a.timer = nil
	}
}
