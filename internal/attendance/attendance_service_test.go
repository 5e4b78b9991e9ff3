package attendance

import (
	"context"
	"encoding/json"
	"errors"
	"testing"
	"time"

	attendanceerrors "ak-attendance/internal/attendance/errors"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/go-redis/redismock/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

type fakeRepo struct {
	withTxFn           func(tx *gorm.DB) Repository
	findCellFn         func(ctx context.Context, employeeID uint, date time.Time) (*Attendance, error)
	findRangeFn        func(ctx context.Context, start, end time.Time) ([]Attendance, error)
	findAdvanceRangeFn func(ctx context.Context, start, end time.Time) ([]Advance, error)
	findMonthlyFn      func(ctx context.Context, year, month int) ([]MonthlyAdvance, error)
	upsertAttendanceFn func(ctx context.Context, employeeID uint, date time.Time, present bool, multiplier decimal.Decimal) error
	upsertAdvanceFn    func(ctx context.Context, employeeID uint, date time.Time, amount decimal.Decimal, note *string) error
	upsertMonthlyFn    func(ctx context.Context, employeeID uint, year, month int, amount decimal.Decimal) error
}

func (f *fakeRepo) WithTx(tx *gorm.DB) Repository {
	if f.withTxFn != nil {
		return f.withTxFn(tx)
	}
	return f
}
func (f *fakeRepo) FindCell(ctx context.Context, employeeID uint, date time.Time) (*Attendance, error) {
	return f.findCellFn(ctx, employeeID, date)
}
func (f *fakeRepo) FindRange(ctx context.Context, start, end time.Time) ([]Attendance, error) {
	return f.findRangeFn(ctx, start, end)
}
func (f *fakeRepo) FindAdvanceRange(ctx context.Context, start, end time.Time) ([]Advance, error) {
	return f.findAdvanceRangeFn(ctx, start, end)
}
func (f *fakeRepo) FindMonthlyAdvances(ctx context.Context, year, month int) ([]MonthlyAdvance, error) {
	return f.findMonthlyFn(ctx, year, month)
}
func (f *fakeRepo) UpsertAttendance(ctx context.Context, employeeID uint, date time.Time, present bool, multiplier decimal.Decimal) error {
	return f.upsertAttendanceFn(ctx, employeeID, date, present, multiplier)
}
func (f *fakeRepo) UpsertAdvance(ctx context.Context, employeeID uint, date time.Time, amount decimal.Decimal, note *string) error {
	return f.upsertAdvanceFn(ctx, employeeID, date, amount, note)
}
func (f *fakeRepo) UpsertMonthlyAdvance(ctx context.Context, employeeID uint, year, month int, amount decimal.Decimal) error {
	return f.upsertMonthlyFn(ctx, employeeID, year, month, amount)
}

func newTestGorm(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	t.Helper()
	db, mock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	gormDB, err := gorm.Open(postgres.New(postgres.Config{
		Conn:                 db,
		PreferSimpleProtocol: true,
	}), &gorm.Config{DisableAutomaticPing: true})
	assert.NoError(t, err)
	return gormDB, mock
}

func TestService_SaveBatch_CommitsEverything(t *testing.T) {
	gormDB, mock := newTestGorm(t)

	var attCalls, advCalls, mAdvCalls int
	repo := &fakeRepo{}
	repo.upsertAttendanceFn = func(ctx context.Context, employeeID uint, date time.Time, present bool, multiplier decimal.Decimal) error {
		attCalls++
		return nil
	}
	repo.upsertAdvanceFn = func(ctx context.Context, employeeID uint, date time.Time, amount decimal.Decimal, note *string) error {
		advCalls++
		return nil
	}
	repo.upsertMonthlyFn = func(ctx context.Context, employeeID uint, year, month int, amount decimal.Decimal) error {
		mAdvCalls++
		return nil
	}

	svc := NewService(gormDB, repo)

	mock.ExpectBegin()
	mock.ExpectCommit()

	err := svc.SaveBatch(context.Background(), BatchSaveRequest{
		Attendance: []AttendanceUpdate{
			{EmployeeID: 1, Date: "2024-03-02", Present: true, Multiplier: 1.5},
			{EmployeeID: 2, Date: "2024-03-02", Present: false},
		},
		Advances: []AdvanceUpdate{
			{EmployeeID: 1, Date: "2024-03-05", Amount: "250"},
		},
		MonthlyAdvances: []MonthlyAdvanceUpdate{
			{EmployeeID: 2, Year: 2024, Month: 2, Amount: "1000"},
		},
	})

	assert.NoError(t, err)
	assert.Equal(t, 2, attCalls)
	assert.Equal(t, 1, advCalls)
	assert.Equal(t, 1, mAdvCalls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SaveBatch_RollsBackOnFailure(t *testing.T) {
	gormDB, mock := newTestGorm(t)

	calls := 0
	repo := &fakeRepo{}
	repo.upsertAttendanceFn = func(ctx context.Context, employeeID uint, date time.Time, present bool, multiplier decimal.Decimal) error {
		calls++
		if calls == 2 {
			return errors.New("disk on fire")
		}
		return nil
	}

	svc := NewService(gormDB, repo)

	mock.ExpectBegin()
	mock.ExpectRollback()

	err := svc.SaveBatch(context.Background(), BatchSaveRequest{
		Attendance: []AttendanceUpdate{
			{EmployeeID: 1, Date: "2024-03-02", Present: true},
			{EmployeeID: 2, Date: "2024-03-02", Present: true},
			{EmployeeID: 3, Date: "2024-03-02", Present: true},
		},
	})

	assert.ErrorIs(t, err, attendanceerrors.ErrBatchCommitFailed)
	// Entry ketiga tidak pernah dicoba setelah yang kedua gagal
	assert.Equal(t, 2, calls)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SaveBatch_RejectsBeforeTouchingDB(t *testing.T) {
	gormDB, mock := newTestGorm(t)
	repo := &fakeRepo{}
	svc := NewService(gormDB, repo)

	err := svc.SaveBatch(context.Background(), BatchSaveRequest{
		Attendance: []AttendanceUpdate{
			{EmployeeID: 1, Date: "2024-03-02", Present: true},
			{EmployeeID: 2, Date: "2024-03-02", Present: true, Multiplier: 2.5},
		},
	})

	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidMultiplier)
	// Tidak ada Begin sama sekali
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestService_SaveBatch_EmptyBatch(t *testing.T) {
	gormDB, _ := newTestGorm(t)
	svc := NewService(gormDB, &fakeRepo{})

	err := svc.SaveBatch(context.Background(), BatchSaveRequest{})
	assert.ErrorIs(t, err, attendanceerrors.ErrEmptyBatch)
}

func TestService_LogAdvance_AmountRules(t *testing.T) {
	gormDB, _ := newTestGorm(t)

	var saved decimal.Decimal
	repo := &fakeRepo{}
	repo.upsertAdvanceFn = func(ctx context.Context, employeeID uint, date time.Time, amount decimal.Decimal, note *string) error {
		saved = amount
		return nil
	}
	svc := NewService(gormDB, repo)
	ctx := context.Background()

	// Input kosong berarti nol
	err := svc.LogAdvance(ctx, AdvanceUpdate{EmployeeID: 1, Date: "2024-03-02", Amount: ""})
	assert.NoError(t, err)
	assert.True(t, saved.IsZero())

	// Di atas sejuta di-clamp ke cap
	err = svc.LogAdvance(ctx, AdvanceUpdate{EmployeeID: 1, Date: "2024-03-02", Amount: "2500000"})
	assert.NoError(t, err)
	assert.True(t, saved.Equal(decimal.NewFromInt(1_000_000)))

	err = svc.LogAdvance(ctx, AdvanceUpdate{EmployeeID: 1, Date: "2024-03-02", Amount: "abc"})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidAmount)

	err = svc.LogAdvance(ctx, AdvanceUpdate{EmployeeID: 1, Date: "03/02/2024", Amount: "10"})
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidDate)
}

func TestService_ToggleAttendance_DefaultsMultiplier(t *testing.T) {
	gormDB, _ := newTestGorm(t)

	var saved decimal.Decimal
	repo := &fakeRepo{}
	repo.upsertAttendanceFn = func(ctx context.Context, employeeID uint, date time.Time, present bool, multiplier decimal.Decimal) error {
		saved = multiplier
		return nil
	}
	svc := NewService(gormDB, repo)

	err := svc.ToggleAttendance(context.Background(), AttendanceUpdate{
		EmployeeID: 7, Date: "2024-03-02", Present: true,
	})
	assert.NoError(t, err)
	assert.True(t, saved.Equal(decimal.NewFromInt(1)))
}

func TestService_GetMonthlyData_InvalidMonth(t *testing.T) {
	gormDB, _ := newTestGorm(t)
	svc := NewService(gormDB, &fakeRepo{})

	_, err := svc.GetMonthlyData(context.Background(), 2024, 12)
	assert.ErrorIs(t, err, attendanceerrors.ErrInvalidMonth)
}

func TestService_GetMonthlyData_CacheRoundTrip(t *testing.T) {
	gormDB, _ := newTestGorm(t)
	rdb, rmock := redismock.NewClientMock()

	repoHits := 0
	repo := &fakeRepo{}
	repo.findRangeFn = func(ctx context.Context, start, end time.Time) ([]Attendance, error) {
		repoHits++
		return nil, nil
	}
	repo.findAdvanceRangeFn = func(ctx context.Context, start, end time.Time) ([]Advance, error) {
		return nil, nil
	}
	repo.findMonthlyFn = func(ctx context.Context, year, month int) ([]MonthlyAdvance, error) {
		return nil, nil
	}

	svc := NewServiceWithOutbox(gormDB, repo, nil, rdb)
	ctx := context.Background()
	key := MonthlyCacheKey(2024, 2)

	expected := MonthlyDataResponse{
		Attendance:      []AttendanceResponse{},
		Advances:        []AdvanceResponse{},
		MonthlyAdvances: []MonthlyAdvanceResponse{},
	}
	cached, err := json.Marshal(expected)
	assert.NoError(t, err)

	// Miss pertama membangun cache
	rmock.ExpectGet(key).RedisNil()
	rmock.ExpectSet(key, cached, monthlyCacheTTL).SetVal("OK")

	resp, err := svc.GetMonthlyData(ctx, 2024, 2)
	assert.NoError(t, err)
	assert.Equal(t, expected, resp)
	assert.Equal(t, 1, repoHits)

	// Hit kedua dilayani dari cache tanpa sentuh repo
	rmock.ExpectGet(key).SetVal(string(cached))

	resp, err = svc.GetMonthlyData(ctx, 2024, 2)
	assert.NoError(t, err)
	assert.Equal(t, expected, resp)
	assert.Equal(t, 1, repoHits)

	assert.NoError(t, rmock.ExpectationsWereMet())
}
