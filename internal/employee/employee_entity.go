package employee

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	StatusActive   = "active"
	StatusArchived = "archived"
)

type Employee struct {
	ID              uint            `gorm:"column:id;primaryKey;autoIncrement"`
	Name            string          `gorm:"column:name;type:varchar(15);not null;uniqueIndex:uq_employee_name"`
	DailyWage       decimal.Decimal `gorm:"column:daily_wage;type:decimal(10,2);not null"`
	Phone           *string         `gorm:"column:phone;type:varchar(20)"`
	PreviousAdvance decimal.Decimal `gorm:"column:previous_advance;type:decimal(10,2);default:0"`
	Status          string          `gorm:"column:status;type:varchar(10);not null;default:active"`
	Pin             string          `gorm:"column:pin;type:char(4);uniqueIndex:uq_employee_pin"`
	CreatedAt       time.Time       `gorm:"column:created_at"`
	UpdatedAt       time.Time       `gorm:"column:updated_at"`
}

func (Employee) TableName() string {
	return "employees"
}
