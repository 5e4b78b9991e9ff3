package employee

type CreateEmployeeRequest struct {
	Name      string  `json:"name" binding:"required,max=15"`
	DailyWage float64 `json:"daily_wage" binding:"required,gt=0"`
	Phone     *string `json:"phone"`
}

type UpdateEmployeeRequest struct {
	Name      *string  `json:"name" binding:"omitempty,max=15"`
	DailyWage *float64 `json:"daily_wage" binding:"omitempty,gt=0"`
	Phone     *string  `json:"phone"`
}

type EmployeeResponse struct {
	ID              uint    `json:"id"`
	Name            string  `json:"name"`
	DailyWage       string  `json:"daily_wage"`
	Phone           *string `json:"phone,omitempty"`
	PreviousAdvance string  `json:"previous_advance"`
	Status          string  `json:"status"`
	Pin             string  `json:"pin,omitempty"`
}
