package project

import (
	"time"

	"github.com/shopspring/decimal"
)

// Client is a project site. UpdatedAt doubles as the "recently active"
// sort key: every financial mutation bumps it.
type Client struct {
	ID        uint      `gorm:"column:id;primaryKey;autoIncrement"`
	Name      string    `gorm:"column:name;type:varchar(15);not null"`
	Location  string    `gorm:"column:location;type:varchar(15);not null"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (Client) TableName() string {
	return "clients"
}

// WorkAssignment: the row itself is the fact. Cost is derived from the
// employee's current daily wage at query time, not stored here.
type WorkAssignment struct {
	ID         uint      `gorm:"column:id;primaryKey;autoIncrement"`
	EmployeeID uint      `gorm:"column:employee_id;not null;uniqueIndex:uq_assignment"`
	ClientID   uint      `gorm:"column:client_id;not null;uniqueIndex:uq_assignment"`
	Date       time.Time `gorm:"column:date;type:date;not null;uniqueIndex:uq_assignment"`
}

func (WorkAssignment) TableName() string {
	return "work_assignments"
}

type MoneyTaken struct {
	ID       uint            `gorm:"column:id;primaryKey;autoIncrement"`
	ClientID uint            `gorm:"column:client_id;not null;uniqueIndex:uq_money_taken"`
	Date     time.Time       `gorm:"column:date;type:date;not null;uniqueIndex:uq_money_taken"`
	Amount   decimal.Decimal `gorm:"column:amount;type:decimal(10,2);not null"`
}

func (MoneyTaken) TableName() string {
	return "money_taken"
}
