package expense

type AddExpenseRequest struct {
	ClientID uint    `json:"client_id" binding:"required"`
	Date     string  `json:"date" binding:"required"`
	Name     string  `json:"name" binding:"required,max=30"`
	Amount   float64 `json:"amount" binding:"gte=0"`
}

type PresetRequest struct {
	Name   string  `json:"name" binding:"required,max=30"`
	Amount float64 `json:"amount" binding:"gte=0"`
}

type ExpenseResponse struct {
	ID       uint   `json:"id"`
	ClientID uint   `json:"client_id"`
	Date     string `json:"date"`
	Name     string `json:"name"`
	Amount   string `json:"amount"`
}

type PresetResponse struct {
	ID     uint   `json:"id"`
	Name   string `json:"name"`
	Amount string `json:"amount"`
}
