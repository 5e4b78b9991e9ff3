package project

type CreateClientRequest struct {
	Name     string `json:"name" binding:"required,max=15"`
	Location string `json:"location" binding:"required,max=15"`
}

type UpdateClientRequest struct {
	Name     *string `json:"name" binding:"omitempty,max=15"`
	Location *string `json:"location" binding:"omitempty,max=15"`
}

type AssignWorkRequest struct {
	EmployeeID uint   `json:"employee_id" binding:"required"`
	ClientID   uint   `json:"client_id" binding:"required"`
	Date       string `json:"date" binding:"required"`
}

type UpdateWorkforceRequest struct {
	ClientID    uint   `json:"client_id" binding:"required"`
	Date        string `json:"date" binding:"required"`
	EmployeeIDs []uint `json:"employee_ids"`
}

type LogMoneyRequest struct {
	ClientID uint    `json:"client_id" binding:"required"`
	Date     string  `json:"date" binding:"required"`
	Amount   float64 `json:"amount"`
}

type DeleteEntryRequest struct {
	ClientID uint   `json:"client_id" binding:"required"`
	Date     string `json:"date" binding:"required"`
}

type ClientResponse struct {
	ID        uint   `json:"id"`
	Name      string `json:"name"`
	Location  string `json:"location"`
	UpdatedAt string `json:"updated_at"`
}

type AssignmentResponse struct {
	EmployeeID   uint   `json:"employee_id"`
	EmployeeName string `json:"employee_name"`
	ClientID     uint   `json:"client_id"`
	Date         string `json:"date"`
	DailyWage    string `json:"daily_wage"`
}

type MoneyTakenResponse struct {
	ClientID uint   `json:"client_id"`
	Date     string `json:"date"`
	Amount   string `json:"amount"`
}

type ExpenseLineResponse struct {
	ID       uint   `json:"id"`
	ClientID uint   `json:"client_id"`
	Date     string `json:"date"`
	Name     string `json:"name"`
	Amount   string `json:"amount"`
}

// ClientSummary is the per-site P&L rollup for the requested period.
type ClientSummary struct {
	ClientID   uint   `json:"client_id"`
	Received   string `json:"received"`
	LaborCost  string `json:"labor_cost"`
	Expenses   string `json:"expenses"`
	Profit     string `json:"profit"`
	WorkerDays int    `json:"worker_days"`
}

type ClientMonthlyDataResponse struct {
	Assignments []AssignmentResponse  `json:"assignments"`
	MoneyTaken  []MoneyTakenResponse  `json:"money_taken"`
	Expenses    []ExpenseLineResponse `json:"expenses"`
	Summaries   []ClientSummary       `json:"summaries"`
}
