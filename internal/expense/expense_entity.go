package expense

import (
	"time"

	"github.com/shopspring/decimal"
)

// ProjectExpense is an ad hoc cost line on a client site. Several
// expenses may land on the same client and day, so there is no natural
// key beyond the row id.
type ProjectExpense struct {
	ID        uint            `gorm:"column:id;primaryKey;autoIncrement"`
	ClientID  uint            `gorm:"column:client_id;not null;index:idx_project_expense_client"`
	Date      time.Time       `gorm:"column:date;type:date;not null"`
	Name      string          `gorm:"column:name;type:varchar(30);not null"`
	Amount    decimal.Decimal `gorm:"column:amount;type:decimal(10,2);not null"`
	CreatedAt time.Time       `gorm:"column:created_at"`
}

func (ProjectExpense) TableName() string {
	return "project_expenses"
}

// CommonExpense is a reusable preset (name + default amount) offered
// when logging a project expense.
type CommonExpense struct {
	ID     uint            `gorm:"column:id;primaryKey;autoIncrement"`
	Name   string          `gorm:"column:name;type:varchar(30);not null"`
	Amount decimal.Decimal `gorm:"column:amount;type:decimal(10,2);not null"`
}

func (CommonExpense) TableName() string {
	return "common_expenses"
}
