package attendance

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	attendanceerrors "ak-attendance/internal/attendance/errors"
	"ak-attendance/internal/billing"
	"ak-attendance/internal/events"
	"ak-attendance/internal/messaging/kafka"
	"ak-attendance/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const monthlyCacheTTL = 10 * time.Minute

var maxAmount = decimal.NewFromInt(1_000_000)

func MonthlyCacheKey(year, month int) string {
	return fmt.Sprintf("attendance:monthly:%d:%d", year, month)
}

//go:generate mockgen -source=attendance_service.go -destination=mock/attendance_service_mock.go -package=mock
type Service interface {
	GetMonthlyData(ctx context.Context, year, month int) (MonthlyDataResponse, error)
	ToggleAttendance(ctx context.Context, req AttendanceUpdate) error
	LogAdvance(ctx context.Context, req AdvanceUpdate) error
	LogMonthlyAdvance(ctx context.Context, req MonthlyAdvanceUpdate) error
	SaveBatch(ctx context.Context, req BatchSaveRequest) error
}

type service struct {
	db     *gorm.DB
	repo   Repository
	outbox kafka.OutboxRepository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(db *gorm.DB, repo Repository) Service {
	return NewServiceWithOutbox(db, repo, nil, nil)
}

func NewServiceWithOutbox(
	db *gorm.DB,
	repo Repository,
	outbox kafka.OutboxRepository,
	rdb *redis.Client,
) Service {
	return &service{
		db:     db,
		repo:   repo,
		outbox: outbox,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: zap.L().Named("attendance.service"),
	}
}

func (s *service) GetMonthlyData(ctx context.Context, year, month int) (MonthlyDataResponse, error) {
	if month < 0 || month > 11 {
		return MonthlyDataResponse{}, attendanceerrors.ErrInvalidMonth
	}

	cacheKey := MonthlyCacheKey(year, month)

	// 1. Cek Redis dulu, grid di-refresh terus oleh UI
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, cacheKey).Result(); err == nil {
			var resp MonthlyDataResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	// 2. Singleflight supaya rebuild cache tidak dobel saat ramai
	v, err, _ := s.sf.Do(cacheKey, func() (interface{}, error) {
		start, end := billing.PeriodBounds(year, month)

		attendance, err := s.repo.FindRange(ctx, start, end)
		if err != nil {
			return MonthlyDataResponse{}, err
		}
		advances, err := s.repo.FindAdvanceRange(ctx, start, end)
		if err != nil {
			return MonthlyDataResponse{}, err
		}
		monthlyAdvances, err := s.repo.FindMonthlyAdvances(ctx, year, month)
		if err != nil {
			return MonthlyDataResponse{}, err
		}

		resp := MonthlyDataResponse{
			Attendance:      make([]AttendanceResponse, 0, len(attendance)),
			Advances:        make([]AdvanceResponse, 0, len(advances)),
			MonthlyAdvances: make([]MonthlyAdvanceResponse, 0, len(monthlyAdvances)),
		}
		for _, a := range attendance {
			resp.Attendance = append(resp.Attendance, AttendanceResponse{
				EmployeeID: a.EmployeeID,
				Date:       a.Date.Format(billing.DateLayout),
				Present:    a.Present,
				Multiplier: a.Multiplier.StringFixed(1),
			})
		}
		for _, a := range advances {
			resp.Advances = append(resp.Advances, AdvanceResponse{
				EmployeeID: a.EmployeeID,
				Date:       a.Date.Format(billing.DateLayout),
				Amount:     a.Amount.StringFixed(2),
				Note:       a.Note,
			})
		}
		for _, m := range monthlyAdvances {
			resp.MonthlyAdvances = append(resp.MonthlyAdvances, MonthlyAdvanceResponse{
				EmployeeID: m.EmployeeID,
				Year:       m.Year,
				Month:      m.Month,
				Amount:     m.Amount.StringFixed(2),
			})
		}

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				s.rdb.Set(ctx, cacheKey, jsonData, monthlyCacheTTL)
			}
		}

		return resp, nil
	})

	if err != nil {
		return MonthlyDataResponse{}, err
	}
	return v.(MonthlyDataResponse), nil
}

func (s *service) ToggleAttendance(ctx context.Context, req AttendanceUpdate) error {
	date, multiplier, err := validateAttendanceUpdate(req)
	if err != nil {
		return err
	}

	if err := s.repo.UpsertAttendance(ctx, req.EmployeeID, date, req.Present, multiplier); err != nil {
		return err
	}

	s.invalidatePeriod(ctx, date)
	s.logger.Debug("attendance cell saved",
		zap.Uint("employee_id", req.EmployeeID),
		zap.String("date", req.Date),
		zap.Bool("present", req.Present),
	)
	return nil
}

func (s *service) LogAdvance(ctx context.Context, req AdvanceUpdate) error {
	date, err := parseDate(req.Date)
	if err != nil {
		return err
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return err
	}

	if err := s.repo.UpsertAdvance(ctx, req.EmployeeID, date, amount, req.Note); err != nil {
		return err
	}

	s.invalidatePeriod(ctx, date)
	return nil
}

func (s *service) LogMonthlyAdvance(ctx context.Context, req MonthlyAdvanceUpdate) error {
	if req.Month < 0 || req.Month > 11 {
		return attendanceerrors.ErrInvalidMonth
	}
	amount, err := parseAmount(req.Amount)
	if err != nil {
		return err
	}

	if err := s.repo.UpsertMonthlyAdvance(ctx, req.EmployeeID, req.Year, req.Month, amount); err != nil {
		return err
	}

	s.invalidateKey(ctx, MonthlyCacheKey(req.Year, req.Month))
	return nil
}

// SaveBatch applies every buffered grid edit inside one transaction.
// Validation runs up front: kalau satu entry saja rusak, tidak ada yang
// ditulis sama sekali. A partial batch is never observable.
func (s *service) SaveBatch(ctx context.Context, req BatchSaveRequest) error {
	rid := contextutil.GetRequestID(ctx)
	if req.Empty() {
		return attendanceerrors.ErrEmptyBatch
	}

	type attRow struct {
		employeeID uint
		date       time.Time
		present    bool
		multiplier decimal.Decimal
	}
	type advRow struct {
		employeeID uint
		date       time.Time
		amount     decimal.Decimal
		note       *string
	}
	type mAdvRow struct {
		employeeID  uint
		year, month int
		amount      decimal.Decimal
	}

	attRows := make([]attRow, 0, len(req.Attendance))
	periods := map[string]bool{}
	for _, u := range req.Attendance {
		date, multiplier, err := validateAttendanceUpdate(u)
		if err != nil {
			return err
		}
		attRows = append(attRows, attRow{u.EmployeeID, date, u.Present, multiplier})
		y, m := billing.PeriodOf(date)
		periods[MonthlyCacheKey(y, m)] = true
	}

	advRows := make([]advRow, 0, len(req.Advances))
	for _, u := range req.Advances {
		date, err := parseDate(u.Date)
		if err != nil {
			return err
		}
		amount, err := parseAmount(u.Amount)
		if err != nil {
			return err
		}
		advRows = append(advRows, advRow{u.EmployeeID, date, amount, u.Note})
		y, m := billing.PeriodOf(date)
		periods[MonthlyCacheKey(y, m)] = true
	}

	mAdvRows := make([]mAdvRow, 0, len(req.MonthlyAdvances))
	for _, u := range req.MonthlyAdvances {
		if u.Month < 0 || u.Month > 11 {
			return attendanceerrors.ErrInvalidMonth
		}
		amount, err := parseAmount(u.Amount)
		if err != nil {
			return err
		}
		mAdvRows = append(mAdvRows, mAdvRow{u.EmployeeID, u.Year, u.Month, amount})
		periods[MonthlyCacheKey(u.Year, u.Month)] = true
	}

	total := len(attRows) + len(advRows) + len(mAdvRows)
	s.logger.Info("batch save started",
		zap.String("request_id", rid),
		zap.Int("updates", total),
	)

	err := s.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		qtx := s.repo.WithTx(tx)

		for _, row := range attRows {
			if err := qtx.UpsertAttendance(ctx, row.employeeID, row.date, row.present, row.multiplier); err != nil {
				return err
			}
		}
		for _, row := range advRows {
			if err := qtx.UpsertAdvance(ctx, row.employeeID, row.date, row.amount, row.note); err != nil {
				return err
			}
		}
		for _, row := range mAdvRows {
			if err := qtx.UpsertMonthlyAdvance(ctx, row.employeeID, row.year, row.month, row.amount); err != nil {
				return err
			}
		}

		return s.appendInvalidationEvents(ctx, tx, rid, periods, total)
	})
	if err != nil {
		s.logger.Error("batch save rolled back",
			zap.String("request_id", rid),
			zap.Int("updates", total),
			zap.Error(err),
		)
		return attendanceerrors.ErrBatchCommitFailed
	}

	for key := range periods {
		s.invalidateKey(ctx, key)
	}

	s.logger.Info("batch save committed",
		zap.String("request_id", rid),
		zap.Int("updates", total),
	)
	return nil
}

// appendInvalidationEvents writes one outbox row per touched billing
// period, inside the same transaction as the upserts.
func (s *service) appendInvalidationEvents(ctx context.Context, tx *gorm.DB, rid string, periods map[string]bool, total int) error {
	if s.outbox == nil {
		return nil
	}

	otx := s.outbox.WithTx(tx)
	for key := range periods {
		var year, month int
		if _, err := fmt.Sscanf(key, "attendance:monthly:%d:%d", &year, &month); err != nil {
			continue
		}

		payload, err := json.Marshal(events.GridInvalidatedEvent{
			EventType:  "grid.invalidated",
			Year:       year,
			Month:      month,
			CellCount:  total,
			OccurredAt: time.Now().UTC(),
		})
		if err != nil {
			return err
		}

		event := kafka.OutboxEvent{
			ID:            uuid.New().String(),
			RequestID:     rid,
			AggregateType: "attendance_grid",
			AggregateID:   fmt.Sprintf("%d-%d", year, month),
			EventType:     "grid.invalidated",
			Topic:         events.GridInvalidationTopic,
			Payload:       payload,
			Status:        kafka.OutboxStatusPending,
		}
		if err := otx.Create(ctx, event); err != nil {
			return err
		}
	}
	return nil
}

func (s *service) invalidatePeriod(ctx context.Context, date time.Time) {
	year, month := billing.PeriodOf(date)
	s.invalidateKey(ctx, MonthlyCacheKey(year, month))
}

func (s *service) invalidateKey(ctx context.Context, key string) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, key).Err(); err != nil {
		s.logger.Error("failed to invalidate monthly cache",
			zap.String("key", key),
			zap.Error(err),
		)
	}
}

func validateAttendanceUpdate(req AttendanceUpdate) (time.Time, decimal.Decimal, error) {
	date, err := parseDate(req.Date)
	if err != nil {
		return time.Time{}, decimal.Decimal{}, err
	}

	multiplier := decimal.NewFromFloat(req.Multiplier)
	if req.Multiplier == 0 {
		multiplier = decimal.NewFromInt(1)
	}
	if !ValidMultiplier(multiplier) {
		return time.Time{}, decimal.Decimal{}, attendanceerrors.ErrInvalidMultiplier
	}
	return date, multiplier, nil
}

func parseDate(raw string) (time.Time, error) {
	date, err := time.Parse(billing.DateLayout, raw)
	if err != nil {
		return time.Time{}, attendanceerrors.ErrInvalidDate
	}
	return date, nil
}

// parseAmount maps the grid's free-text money input to a stored value.
// Empty input means 0, anything above 1,000,000 is clamped to the cap.
func parseAmount(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}

	v, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Decimal{}, attendanceerrors.ErrInvalidAmount
	}
	if v.GreaterThan(maxAmount) {
		v = maxAmount
	}
	return v, nil
}
