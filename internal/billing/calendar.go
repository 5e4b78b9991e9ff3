// Package billing implements the pay-period calendar.
//
// Gaji dihitung per "billing period": tanggal 2 bulan berjalan sampai
// tanggal 1 bulan berikutnya, bukan bulan kalender biasa.
package billing

import "time"

const DateLayout = "2006-01-02"

// Dates returns every billable date of the period for (year, month).
// month is 0-indexed (0 = January) to match the stored MonthlyAdvance rows.
// The sequence runs from the 2nd of the month through the last day of the
// month, then the 1st of the following month, so its length always equals
// the number of days in the calendar month.
func Dates(year, month int) []time.Time {
	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	lastDay := first.AddDate(0, 1, -1).Day()

	dates := make([]time.Time, 0, lastDay)
	for d := 2; d <= lastDay; d++ {
		dates = append(dates, time.Date(year, time.Month(month+1), d, 0, 0, 0, 0, time.UTC))
	}
	// Tanggal 1 bulan berikutnya menutup periode
	dates = append(dates, first.AddDate(0, 1, 0))
	return dates
}

// PeriodBounds returns the inclusive [start, end] range of the billing
// period: start is the 2nd of the month, end is the 1st of the next month.
// December rolls over into January of the following year.
func PeriodBounds(year, month int) (start, end time.Time) {
	start = time.Date(year, time.Month(month+1), 2, 0, 0, 0, 0, time.UTC)
	end = time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC).AddDate(0, 1, 0)
	return start, end
}

// PeriodOf maps a calendar date back to the billing period that owns it.
// The 1st of a month belongs to the previous month's period; every other
// day belongs to its own month. Returns a 0-indexed month.
func PeriodOf(date time.Time) (year, month int) {
	if date.Day() == 1 {
		date = date.AddDate(0, -1, 0)
	}
	return date.Year(), int(date.Month()) - 1
}

// DaysInMonth returns the number of calendar days in the 0-indexed month.
func DaysInMonth(year, month int) int {
	first := time.Date(year, time.Month(month+1), 1, 0, 0, 0, 0, time.UTC)
	return first.AddDate(0, 1, -1).Day()
}
