package attendance

import (
	"context"
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

//go:generate mockgen -source=attendance_repo.go -destination=mock/attendance_repo_mock.go -package=mock
type Repository interface {
	WithTx(tx *gorm.DB) Repository
	FindCell(ctx context.Context, employeeID uint, date time.Time) (*Attendance, error)
	FindRange(ctx context.Context, start, end time.Time) ([]Attendance, error)
	FindAdvanceRange(ctx context.Context, start, end time.Time) ([]Advance, error)
	FindMonthlyAdvances(ctx context.Context, year, month int) ([]MonthlyAdvance, error)
	UpsertAttendance(ctx context.Context, employeeID uint, date time.Time, present bool, multiplier decimal.Decimal) error
	UpsertAdvance(ctx context.Context, employeeID uint, date time.Time, amount decimal.Decimal, note *string) error
	UpsertMonthlyAdvance(ctx context.Context, employeeID uint, year, month int, amount decimal.Decimal) error
}

type repository struct {
	db *gorm.DB
}

func NewRepository(db *gorm.DB) Repository {
	return &repository{db: db}
}

// WithTx binds the repository to a transaction handle so a whole batch
// of upserts commits or rolls back as one unit.
func (r *repository) WithTx(tx *gorm.DB) Repository {
	return &repository{db: tx}
}

func (r *repository) FindCell(ctx context.Context, employeeID uint, date time.Time) (*Attendance, error) {
	var a Attendance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format("2006-01-02")).
		First(&a).Error
	return &a, err
}

func (r *repository) FindRange(ctx context.Context, start, end time.Time) ([]Attendance, error) {
	var rows []Attendance
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("date ASC, employee_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindAdvanceRange(ctx context.Context, start, end time.Time) ([]Advance, error) {
	var rows []Advance
	err := r.db.WithContext(ctx).
		Where("date >= ? AND date <= ?", start.Format("2006-01-02"), end.Format("2006-01-02")).
		Order("date ASC, employee_id ASC").
		Find(&rows).Error
	return rows, err
}

func (r *repository) FindMonthlyAdvances(ctx context.Context, year, month int) ([]MonthlyAdvance, error) {
	var rows []MonthlyAdvance
	err := r.db.WithContext(ctx).
		Where("year = ? AND month = ?", year, month).
		Find(&rows).Error
	return rows, err
}

// UpsertAttendance overwrites the cell in place when it exists, so the
// same call applied twice leaves exactly one row with the last values.
func (r *repository) UpsertAttendance(ctx context.Context, employeeID uint, date time.Time, present bool, multiplier decimal.Decimal) error {
	existing, err := r.FindCell(ctx, employeeID, date)
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err == nil {
		existing.Present = present
		existing.Multiplier = multiplier
		return r.db.WithContext(ctx).Save(existing).Error
	}

	row := &Attendance{
		EmployeeID: employeeID,
		Date:       date,
		Present:    present,
		Multiplier: multiplier,
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) UpsertAdvance(ctx context.Context, employeeID uint, date time.Time, amount decimal.Decimal, note *string) error {
	var existing Advance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("date = ?", date.Format("2006-01-02")).
		First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err == nil {
		existing.Amount = amount
		existing.Note = note
		return r.db.WithContext(ctx).Save(&existing).Error
	}

	row := &Advance{
		EmployeeID: employeeID,
		Date:       date,
		Amount:     amount,
		Note:       note,
	}
	return r.db.WithContext(ctx).Create(row).Error
}

func (r *repository) UpsertMonthlyAdvance(ctx context.Context, employeeID uint, year, month int, amount decimal.Decimal) error {
	var existing MonthlyAdvance
	err := r.db.WithContext(ctx).
		Where("employee_id = ?", employeeID).
		Where("year = ? AND month = ?", year, month).
		First(&existing).Error
	if err != nil && !errors.Is(err, gorm.ErrRecordNotFound) {
		return err
	}

	if err == nil {
		existing.Amount = amount
		return r.db.WithContext(ctx).Save(&existing).Error
	}

	row := &MonthlyAdvance{
		EmployeeID: employeeID,
		Year:       year,
		Month:      month,
		Amount:     amount,
	}
	return r.db.WithContext(ctx).Create(row).Error
}
