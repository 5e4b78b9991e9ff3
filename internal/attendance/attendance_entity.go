package attendance

import (
	"time"

	"github.com/shopspring/decimal"
)

// Attendance is one grid cell: at most one row per (employee, date).
// No row at all means "unmarked", which is not the same as present=false.
type Attendance struct {
	ID         uint            `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeID uint            `gorm:"column:employee_id;not null;uniqueIndex:uq_attendance_cell"`
	Date       time.Time       `gorm:"column:date;type:date;not null;uniqueIndex:uq_attendance_cell"`
	Present    bool            `gorm:"column:present;not null;default:true"`
	Multiplier decimal.Decimal `gorm:"column:multiplier;type:decimal(3,1);not null;default:1.0"`
}

func (Attendance) TableName() string {
	return "attendance"
}

type Advance struct {
	ID         uint            `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeID uint            `gorm:"column:employee_id;not null;uniqueIndex:uq_advance_cell"`
	Date       time.Time       `gorm:"column:date;type:date;not null;uniqueIndex:uq_advance_cell"`
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(10,2);not null"`
	Note       *string         `gorm:"column:note"`
}

func (Advance) TableName() string {
	return "advances"
}

// MonthlyAdvance is a lump advance booked against the whole billing
// period. Month is 0-indexed to line up with the calendar package.
type MonthlyAdvance struct {
	ID         uint            `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeID uint            `gorm:"column:employee_id;not null;uniqueIndex:uq_monthly_advance"`
	Year       int             `gorm:"column:year;not null;uniqueIndex:uq_monthly_advance"`
	Month      int             `gorm:"column:month;not null;uniqueIndex:uq_monthly_advance"`
	Amount     decimal.Decimal `gorm:"column:amount;type:decimal(10,2);not null;default:0"`
}

func (MonthlyAdvance) TableName() string {
	return "monthly_advances"
}
