package report

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"ak-attendance/internal/attendance"
	"ak-attendance/internal/billing"
	"ak-attendance/internal/employee"
	"ak-attendance/internal/shared/apperror"

	attendanceerrors "ak-attendance/internal/attendance/errors"

	"github.com/shopspring/decimal"
	"github.com/xuri/excelize/v2"
	"go.uber.org/zap"
)

//go:generate mockgen -source=report_service.go -destination=mock/report_service_mock.go -package=mock
type Service interface {
	WriteMonthlySummary(ctx context.Context, year, month int, w io.Writer) error
}

type service struct {
	attendance attendance.Repository
	employees  employee.Repository
	logger     *zap.Logger
}

func NewService(attendanceRepo attendance.Repository, employees employee.Repository) Service {
	return &service{
		attendance: attendanceRepo,
		employees:  employees,
		logger:     zap.L().Named("report.service"),
	}
}

type cellKey struct {
	employeeID uint
	date       string
}

// WriteMonthlySummary renders one billing period as a spreadsheet:
// billing dates down the side, workers across the top, presence
// multipliers in the cells, and pay totals in the footer.
func (s *service) WriteMonthlySummary(ctx context.Context, year, month int, w io.Writer) error {
	if month < 0 || month > 11 {
		return attendanceerrors.ErrInvalidMonth
	}

	workers, err := s.employees.FindActive(ctx)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to fetch workers", http.StatusInternalServerError)
	}

	start, end := billing.PeriodBounds(year, month)
	rows, err := s.attendance.FindRange(ctx, start, end)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to fetch attendance", http.StatusInternalServerError)
	}
	advances, err := s.attendance.FindAdvanceRange(ctx, start, end)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to fetch advances", http.StatusInternalServerError)
	}
	monthlyAdvances, err := s.attendance.FindMonthlyAdvances(ctx, year, month)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to fetch monthly advances", http.StatusInternalServerError)
	}

	cells := make(map[cellKey]attendance.Attendance, len(rows))
	for _, a := range rows {
		cells[cellKey{a.EmployeeID, a.Date.Format(billing.DateLayout)}] = a
	}
	dailyAdvance := map[uint]decimal.Decimal{}
	for _, a := range advances {
		dailyAdvance[a.EmployeeID] = dailyAdvance[a.EmployeeID].Add(a.Amount)
	}
	lumpAdvance := map[uint]decimal.Decimal{}
	for _, m := range monthlyAdvances {
		lumpAdvance[m.EmployeeID] = lumpAdvance[m.EmployeeID].Add(m.Amount)
	}

	f := excelize.NewFile()
	defer f.Close()

	sheet := fmt.Sprintf("Period %d-%02d", year, month+1)
	index, err := f.NewSheet(sheet)
	if err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to create sheet", http.StatusInternalServerError)
	}
	f.SetActiveSheet(index)
	f.DeleteSheet("Sheet1")

	f.SetCellValue(sheet, "A1", "Date")
	for i, worker := range workers {
		col, _ := excelize.ColumnNumberToName(i + 2)
		f.SetCellValue(sheet, col+"1", worker.Name)
	}

	dates := billing.Dates(year, month)
	daysWorked := make([]int, len(workers))
	gross := make([]decimal.Decimal, len(workers))

	for r, date := range dates {
		row := fmt.Sprint(r + 2)
		f.SetCellValue(sheet, "A"+row, date.Format(billing.DateLayout))

		for i, worker := range workers {
			col, _ := excelize.ColumnNumberToName(i + 2)
			cell, ok := cells[cellKey{worker.ID, date.Format(billing.DateLayout)}]
			if !ok {
				continue
			}
			if !cell.Present {
				f.SetCellValue(sheet, col+row, "A")
				continue
			}
			f.SetCellValue(sheet, col+row, "x"+cell.Multiplier.StringFixed(1))
			daysWorked[i]++
			gross[i] = gross[i].Add(cell.Multiplier.Mul(worker.DailyWage))
		}
	}

	footerStart := len(dates) + 2
	writeFooter := func(offset int, label string, value func(i int, worker employee.Employee) string) {
		row := fmt.Sprint(footerStart + offset)
		f.SetCellValue(sheet, "A"+row, label)
		for i, worker := range workers {
			col, _ := excelize.ColumnNumberToName(i + 2)
			f.SetCellValue(sheet, col+row, value(i, worker))
		}
	}

	writeFooter(0, "Days worked", func(i int, _ employee.Employee) string {
		return fmt.Sprint(daysWorked[i])
	})
	writeFooter(1, "Gross pay", func(i int, _ employee.Employee) string {
		return gross[i].StringFixed(2)
	})
	writeFooter(2, "Advances", func(i int, worker employee.Employee) string {
		return totalAdvance(worker, dailyAdvance, lumpAdvance).StringFixed(2)
	})
	writeFooter(3, "Net pay", func(i int, worker employee.Employee) string {
		return gross[i].Sub(totalAdvance(worker, dailyAdvance, lumpAdvance)).StringFixed(2)
	})

	if err := f.Write(w); err != nil {
		return apperror.Wrap(err, apperror.CodeInternalError, "failed to write workbook", http.StatusInternalServerError)
	}

	s.logger.Info("monthly summary exported",
		zap.Int("year", year),
		zap.Int("month", month),
		zap.Int("workers", len(workers)),
	)
	return nil
}

// totalAdvance = seluruh kasbon harian + kasbon bulanan + sisa bulan lalu
func totalAdvance(worker employee.Employee, daily, lump map[uint]decimal.Decimal) decimal.Decimal {
	return daily[worker.ID].
		Add(lump[worker.ID]).
		Add(worker.PreviousAdvance)
}
